package models

import (
	"time"

	"github.com/google/uuid"
)

// VaultItem is a single encrypted record in a user's vault. The ciphertext
// is produced and consumed entirely client-side; the server stores and
// returns it verbatim.
type VaultItem struct {
	// ItemID is the primary identifier of the item.
	ItemID uuid.UUID `json:"id"`

	// UserID is the owning account. All reads, updates and deletes must
	// match this owner; a mismatch is reported as "not found".
	UserID uuid.UUID `json:"-"`

	// EncryptedData is the opaque base64 blob (IV + ciphertext) produced by
	// the client. Never inspected server-side.
	EncryptedData string `json:"encrypted_data"`

	// Name is a short display label. It is the only plaintext metadata the
	// item carries.
	Name string `json:"name"`

	// CreatedAt is the item creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is refreshed on every payload or name update. Listings are
	// ordered by this field, most recent first.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the VaultItem model.
func (i VaultItem) TableName() string {
	return "vault_items"
}

// VaultItemSummary is the listing projection of a vault item: identifiers,
// display name and timestamps only — never the encrypted payload.
type VaultItemSummary struct {
	ItemID    uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VaultItemUpdate carries the mutable fields of an item update. Nil fields
// are left untouched; UpdatedAt is always refreshed.
type VaultItemUpdate struct {
	// EncryptedData replaces the stored ciphertext when non-nil.
	EncryptedData *string `json:"encrypted_data,omitempty"`

	// Name replaces the display label when non-nil.
	Name *string `json:"name,omitempty"`
}
