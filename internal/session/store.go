// Package session holds the ephemeral, session-scoped transaction records
// that carry protocol state between registration and login steps.
//
// Records are opaque JSON values keyed by (session key, transaction kind).
// At most one live record exists per pair; writing replaces any previous
// record. Stores enforce a hard TTL at write time, while the protocol layer
// additionally applies its own read-time expiry rules (the 900-second login
// window). Implementations must provide read-modify-write consistency per
// session key; the protocols themselves do not lock.
package session

import (
	"context"
	"time"

	"github.com/apmod1/password-manager/models"
)

// Store is the session-scoped key-value collaborator used by the
// registration and login protocols.
type Store interface {
	// Put stores record (JSON-marshalled) under (sessionKey, kind),
	// replacing any existing record of the same kind. The record is
	// discarded after ttl; a non-positive ttl keeps it for the life of
	// the store.
	Put(ctx context.Context, sessionKey string, kind models.TransactionKind, record any, ttl time.Duration) error

	// Get unmarshals the record stored under (sessionKey, kind) into
	// record, which must be a non-nil pointer. Returns ErrRecordNotFound
	// when no live record exists.
	Get(ctx context.Context, sessionKey string, kind models.TransactionKind, record any) error

	// Delete removes the record stored under (sessionKey, kind). Deleting
	// an absent record is not an error.
	Delete(ctx context.Context, sessionKey string, kind models.TransactionKind) error
}

// recordKey builds the flat storage key for a (session, kind) pair.
func recordKey(sessionKey string, kind models.TransactionKind) string {
	return sessionKey + "/" + string(kind)
}
