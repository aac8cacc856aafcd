package totp

import "errors"

// Sentinel errors returned by the totp package. Callers should match them
// with [errors.Is]. An invalid or mistyped code is not an error: Verify
// reports it as a false result so callers can produce uniform responses.
var (
	// ErrSecretGenerationFailed is returned when the OS CSPRNG cannot
	// produce random bytes for a new shared secret.
	ErrSecretGenerationFailed = errors.New("failed to generate totp secret")

	// ErrInvalidSecret is returned when a shared secret is not valid
	// unpadded base32.
	ErrInvalidSecret = errors.New("invalid totp secret")

	// ErrMissingIssuer is returned when a provisioning URI is requested
	// without an issuer label.
	ErrMissingIssuer = errors.New("totp issuer is required")

	// ErrMissingAccountName is returned when a provisioning URI is
	// requested without an account label.
	ErrMissingAccountName = errors.New("totp account name is required")
)
