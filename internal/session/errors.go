package session

import "errors"

// Sentinel errors returned by Store implementations. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrRecordNotFound is returned by Get when no live transaction record
	// exists for the requested (session, kind) pair, including records that
	// have passed their TTL.
	ErrRecordNotFound = errors.New("no transaction record found")

	// ErrInvalidSessionKey is returned when an empty session key is used.
	ErrInvalidSessionKey = errors.New("session key must not be empty")

	// ErrInvalidRecord is returned by Get when the destination is nil or a
	// stored record cannot be unmarshalled into it.
	ErrInvalidRecord = errors.New("invalid transaction record")
)
