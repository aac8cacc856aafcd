package models

import (
	"time"

	"github.com/google/uuid"
)

// TOTPDevice represents a time-based one-time-password authenticator bound
// to exactly one user account. A user has at most one device; repeated
// enrollment attempts reuse the existing record (get-or-create semantics).
type TOTPDevice struct {
	// DeviceID is the internal identifier of the device row.
	DeviceID int64 `json:"-"`

	// UserID is the owning account. Devices are cascade-deleted with the
	// user and are never shared between accounts.
	UserID uuid.UUID `json:"-"`

	// Secret is the base32-encoded shared TOTP secret.
	Secret string `json:"-"`

	// Confirmed reports whether the user has proven possession of the
	// secret by submitting a valid code. Set once during registration.
	Confirmed bool `json:"confirmed"`

	// LastCounter is the highest 30-second time-step counter for which a
	// code has been accepted. Codes at or below this counter are rejected,
	// so a captured code cannot be replayed inside the skew window.
	LastCounter int64 `json:"-"`

	// CreatedAt is the device enrollment timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the TOTPDevice model.
func (d TOTPDevice) TableName() string {
	return "totp_devices"
}
