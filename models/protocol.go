package models

import "github.com/google/uuid"

// Domain-level inputs and outputs of the registration and login protocols.
// Unlike the shapes in http.go these carry decoded binary values; the
// handler layer owns the base64 boundary.

// RegistrationChallenge is the material handed to the client at
// registration step 1. The words and the TOTP secret are shown exactly
// once and exist server-side only inside the pending transaction.
type RegistrationChallenge struct {
	UserID          uuid.UUID
	Words           []string
	TOTPSecret      string
	ProvisioningURI string
}

// CompleteRegistration is the client credential material submitted at
// registration step 3.
type CompleteRegistration struct {
	Fingerprint    []byte
	WrappedKey     []byte
	WrappedKeyHMAC []byte
	Algorithm      UnwrapAlgorithm
	Email          string
	Verifier       string
}

// LoginIdentity identifies the account at login step 1. Exactly one of
// UserID and Fingerprint must be set; AuthHash is the SHA-256 digest of the
// space-joined authentication words.
type LoginIdentity struct {
	UserID      uuid.UUID
	Fingerprint []byte
	AuthHash    []byte
}

// LoginResult is the key material returned once login step 2 succeeds. The
// client unwraps WrappedKey locally; AccessToken authorizes subsequent
// vault calls.
type LoginResult struct {
	WrappedKey     []byte
	WrappedKeyHMAC []byte
	Algorithm      UnwrapAlgorithm
	AccessToken    Token
}
