package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/apmod1/password-manager/models"
)

// RegistrationService drives the three-step enrollment protocol. All
// pending state lives in the session transaction store; the user directory
// is written exactly once, at Complete.
type RegistrationService interface {
	// Initiate mints a candidate account: identifier, secret words and a
	// fresh TOTP secret. Replaces any earlier pending registration of the
	// same session.
	Initiate(ctx context.Context, sessionKey string) (models.RegistrationChallenge, error)

	// VerifyTOTP confirms the authenticator with a one-time code.
	// Returns ErrSessionExpired without a pending registration,
	// ErrInvalidCode on a bad code (the registration survives for retry).
	VerifyTOTP(ctx context.Context, sessionKey, code string) error

	// Complete verifies the wrapped-key integrity tag and persists the
	// account and its confirmed authenticator device. Returns the final
	// account identifier.
	Complete(ctx context.Context, sessionKey string, completion models.CompleteRegistration) (uuid.UUID, error)
}

// LoginService drives the two-step authentication protocol.
type LoginService interface {
	// Identify resolves the account by identifier or username fingerprint
	// and checks the authentication-words hash. Every failure is reported
	// as ErrInvalidCredentials; on success it returns a single-use login
	// token and records the pending login.
	Identify(ctx context.Context, sessionKey string, identity models.LoginIdentity) (string, error)

	// VerifyTOTPAndComplete consumes the login token, verifies the
	// one-time code against the account's device and returns the key
	// material plus a signed vault access token. The pending login is
	// deleted on success and on expiry, but survives a bad code.
	VerifyTOTPAndComplete(ctx context.Context, sessionKey, loginToken, code string) (models.LoginResult, error)
}

// VaultService manages a user's encrypted items. Every operation is scoped
// to the authenticated owner.
type VaultService interface {
	// ListItems returns metadata of the user's items, most recently
	// updated first. Ciphertext is never included.
	ListItems(ctx context.Context, userID uuid.UUID) ([]models.VaultItemSummary, error)

	// CreateItem stores a new encrypted item. A non-nil tag is verified
	// against the account's HMAC key material before anything is written.
	CreateItem(ctx context.Context, userID uuid.UUID, item models.VaultItem, tag []byte) (models.VaultItem, error)

	// GetItem returns the full item including ciphertext.
	GetItem(ctx context.Context, userID, itemID uuid.UUID) (models.VaultItem, error)

	// UpdateItem applies the non-nil fields of update and refreshes the
	// update timestamp. A non-nil tag is verified against the replacement
	// ciphertext.
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, update models.VaultItemUpdate, tag []byte) (models.VaultItem, error)

	// DeleteItem removes the item permanently.
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error
}
