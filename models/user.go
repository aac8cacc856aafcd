package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a vault account entity. The server never sees the user's
// master password: every credential-related field below arrives from the
// client already hashed, wrapped, or derived. Sensitive fields must never be
// exposed outside trusted boundaries.
type User struct {
	// ID is the unique account identifier, generated server-side during
	// registration step 1 and returned to the client for safekeeping.
	ID uuid.UUID `json:"id"`

	// Fingerprint is the one-way SHA-512 digest of the username, computed
	// client-side. It is unique across all users and immutable after
	// creation. The clear-text username never reaches the server.
	Fingerprint []byte `json:"-"`

	// WrappedKey is the user's master key, encrypted client-side with a key
	// derived from the master password. Opaque to the server.
	WrappedKey []byte `json:"-"`

	// WrappedKeyHMAC is the integrity tag over WrappedKey, keyed by the
	// user's HMAC words. Always written together with WrappedKey, never
	// independently.
	WrappedKeyHMAC []byte `json:"-"`

	// Algorithm selects the client-side cipher used to unwrap WrappedKey.
	Algorithm UnwrapAlgorithm `json:"algorithm"`

	// AuthWordsHash is the SHA-256 digest of the space-joined authentication
	// words. Stored for verification only, never reversible.
	AuthWordsHash []byte `json:"-"`

	// HMACWordsHash is the SHA-256 digest of the space-joined HMAC words.
	// Doubles as the key material for vault-item integrity checks.
	HMACWordsHash []byte `json:"-"`

	// Verifier is the client-supplied password verifier (already hashed
	// client-side, e.g. Argon2id). Stored verbatim; the server never
	// re-derives or compares it — reserved for a future extension point.
	Verifier string `json:"-"`

	// Email is an optional recovery address. May be empty.
	Email string `json:"email,omitempty"`

	// CreatedAt is the timestamp when the account was finalized.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
