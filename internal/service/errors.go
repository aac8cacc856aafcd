package service

import "errors"

var (
	// ErrInvalidDataProvided marks malformed or incomplete input rejected
	// at the service boundary.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrSessionExpired means no live transaction exists for the session,
	// either because it was never started or because its window elapsed.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidCode means the submitted one-time code did not verify.
	// The pending transaction survives, so the client may retry.
	ErrInvalidCode = errors.New("invalid one-time code")

	// ErrTotpNotVerified means registration completion was attempted
	// before the authenticator device was confirmed.
	ErrTotpNotVerified = errors.New("authenticator is not verified")

	// ErrIntegrityCheckFailed means an HMAC tag did not match the data it
	// claims to protect. Nothing is persisted when this is returned.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")

	// ErrHMACKeyUnconfigured means an integrity tag was supplied but the
	// account carries no HMAC key material to verify it with.
	ErrHMACKeyUnconfigured = errors.New("no HMAC key configured for account")

	// ErrInvalidCredentials is the single generic answer to every
	// credential-class failure at login identification. It deliberately
	// does not say whether the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidSession means the login token did not match the pending
	// login transaction.
	ErrInvalidSession = errors.New("invalid session")

	// ErrNotFound is returned for vault items that do not exist or do not
	// belong to the caller. The two cases are indistinguishable.
	ErrNotFound = errors.New("not found")
)
