package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionKind distinguishes the two ephemeral protocol records that can
// live in a client session. At most one live transaction of each kind exists
// per session; a transaction is consumed on successful completion or expiry.
type TransactionKind string

const (
	// KindRegistration keys the multi-step enrollment transaction.
	KindRegistration TransactionKind = "registration"

	// KindLogin keys the two-step authentication transaction.
	KindLogin TransactionKind = "login"
)

// RegistrationTransaction carries enrollment state between the three
// registration steps. Nothing is persisted to the user directory until the
// flow completes: the pending account lives entirely in this record, so an
// abandoned registration leaves no orphaned rows behind.
type RegistrationTransaction struct {
	// UserID is the candidate account identifier minted at step 1 and
	// finalized at completion.
	UserID uuid.UUID `json:"user_id"`

	// AuthWords is the first half of the generated word set. Its hash
	// becomes the stored authentication credential.
	AuthWords []string `json:"auth_words"`

	// HMACWords is the second half of the generated word set. Space-joined,
	// it keys the wrapped-key integrity check at completion.
	HMACWords []string `json:"hmac_words"`

	// TOTPSecret is the base32 secret of the pending authenticator device.
	// The confirmed device row is created only at completion.
	TOTPSecret string `json:"totp_secret"`

	// TOTPVerified flips to true once the user submits a valid code.
	// Completion is refused while it is false.
	TOTPVerified bool `json:"totp_verified"`

	// LastCounter is the highest TOTP counter already accepted during
	// enrollment. Seeds the confirmed device's replay window at completion.
	LastCounter int64 `json:"last_counter"`

	// CreatedAt is the transaction creation time, used for expiry checks.
	CreatedAt time.Time `json:"created_at"`
}

// LoginTransaction carries authentication state between the two login steps.
type LoginTransaction struct {
	// UserID is the account resolved during the identify step.
	UserID uuid.UUID `json:"user_id"`

	// LoginToken is the single-use token issued at identify and consumed at
	// the TOTP step.
	LoginToken string `json:"login_token"`

	// CreatedAt is the transaction creation time. Login transactions
	// hard-expire 900 seconds after it.
	CreatedAt time.Time `json:"created_at"`
}

// Age returns how long ago the transaction was created, measured at now.
func (t LoginTransaction) Age(now time.Time) time.Duration {
	return now.Sub(t.CreatedAt)
}

// Age returns how long ago the transaction was created, measured at now.
func (t RegistrationTransaction) Age(now time.Time) time.Duration {
	return now.Sub(t.CreatedAt)
}
