// Package totp implements RFC 4226 (HOTP) and RFC 6238 (TOTP) one-time
// passwords as used by the enrollment and login protocols: 6-digit codes,
// 30-second periods, HMAC-SHA1, base32 shared secrets.
//
// Verification tolerates one period of clock skew in either direction and
// enforces a monotonic counter per device, so a code observed in transit
// cannot be replayed even inside the skew window.
package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// Digits is the number of digits in a generated code.
	Digits = 6

	// Period is the length of one time step in seconds.
	Period = 30

	// SecretBytes is the shared-secret length: 160 bits per RFC 4226.
	SecretBytes = 20

	// skewSteps is how many time steps of clock drift are tolerated on
	// either side of the current one.
	skewSteps = 1
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateSecret mints a fresh base32-encoded 160-bit shared secret from
// the OS CSPRNG.
func GenerateSecret() (string, error) {
	secret := make([]byte, SecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("%w: %w", ErrSecretGenerationFailed, err)
	}

	return b32.EncodeToString(secret), nil
}

// decodeSecret normalises and decodes a base32 shared secret.
func decodeSecret(secret string) ([]byte, error) {
	key, err := b32.DecodeString(strings.ToUpper(strings.TrimSpace(secret)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSecret, err)
	}

	return key, nil
}

// hotp computes the RFC 4226 code for the given counter value.
func hotp(key []byte, counter uint64) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// dynamic truncation per RFC 4226 §5.3
	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	return fmt.Sprintf("%06d", code%1_000_000)
}

// CodeAt returns the code for the time step containing t. Used by tests and
// by clients that need to display the current code.
func CodeAt(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}

	return hotp(key, uint64(t.Unix()/Period)), nil
}

// VerifyAt checks code against the shared secret at time t, accepting the
// previous, current, and next time steps to absorb clock drift.
//
// On success it returns ok=true and the matched time-step counter, which
// callers persist as the device's monotonic verification window. A
// malformed or non-matching code yields ok=false and no error.
func VerifyAt(secret, code string, t time.Time) (ok bool, counter int64, err error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return false, 0, err
	}

	code = strings.TrimSpace(code)
	if len(code) != Digits {
		return false, 0, nil
	}

	step := t.Unix() / Period
	for delta := int64(-skewSteps); delta <= skewSteps; delta++ {
		candidate := step + delta
		if candidate < 0 {
			continue
		}
		expected := hotp(key, uint64(candidate))
		if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1 {
			return true, candidate, nil
		}
	}

	return false, 0, nil
}

// ProvisioningParams describe an otpauth:// URI for authenticator apps,
// following the Key Uri Format used by Google Authenticator and friends.
type ProvisioningParams struct {
	// Secret is the base32 shared secret. Required.
	Secret string

	// Issuer is the service label shown in the authenticator app. Required.
	Issuer string

	// AccountName identifies the account inside the app (the account UUID
	// in this protocol — usernames never reach the server). Required.
	AccountName string
}

// ProvisioningURI renders the otpauth:// URI for QR or manual setup.
func ProvisioningURI(p ProvisioningParams) (string, error) {
	if _, err := decodeSecret(p.Secret); err != nil {
		return "", err
	}
	if p.Issuer == "" {
		return "", ErrMissingIssuer
	}
	if p.AccountName == "" {
		return "", ErrMissingAccountName
	}

	query := url.Values{}
	query.Set("secret", strings.ToUpper(strings.TrimSpace(p.Secret)))
	query.Set("issuer", p.Issuer)
	query.Set("algorithm", "SHA1")
	query.Set("digits", fmt.Sprintf("%d", Digits))
	query.Set("period", fmt.Sprintf("%d", Period))

	label := fmt.Sprintf("%s:%s", url.PathEscape(p.Issuer), url.PathEscape(p.AccountName))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}
