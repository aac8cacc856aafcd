// Package integrity provides keyed HMAC-SHA256 computation and
// constant-time verification for wrapped master keys and vault-item
// payloads.
package integrity

import (
	"crypto/hmac"
	"crypto/sha256"
)

// TagSize is the length in bytes of every tag produced by ComputeHMAC.
const TagSize = sha256.Size

// ComputeHMAC computes an HMAC-SHA256 tag over message keyed by key.
//
// A new HMAC instance is created on each call; keys vary per user, so
// instances cannot be pooled.
//
// Parameters:
//
//	key     - secret key material (e.g. the space-joined HMAC words, or a
//	          stored HMAC-words digest)
//	message - arbitrary byte slice to be authenticated
//
// Returns:
//
//	[]byte - 32-byte HMAC-SHA256 tag
func ComputeHMAC(key, message []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// Verify recomputes the tag for message under key and compares it against
// tag with a constant-time equality check. The comparison cost does not
// depend on the position of the first mismatching byte.
//
// Returns true only for the exact tag produced by ComputeHMAC with the same
// key and message. Length mismatches are rejected without leaking where the
// difference lies.
func Verify(key, message, tag []byte) bool {
	return hmac.Equal(ComputeHMAC(key, message), tag)
}

// DummyCompare performs a constant-time comparison of two fixed values and
// discards the result. Lookup-miss paths call it so that a miss costs
// comparable time to a lookup-hit-but-bad-secret path.
func DummyCompare() {
	var a, b [TagSize]byte
	b[0] = 1
	hmac.Equal(a[:], b[:])
}
