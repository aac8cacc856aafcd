package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/apmod1/password-manager/models"
)

// entry is one stored record plus its expiry deadline. A zero deadline
// means the record never expires on its own.
type entry struct {
	data      []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore is an in-process Store for single-instance deployments and
// tests. Expired entries are dropped lazily on read and swept periodically
// by a background cleanup loop.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]entry

	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// NewMemoryStore constructs a MemoryStore. A positive cleanupInterval
// starts a background sweep of expired entries; pass zero to rely on lazy
// expiry alone (sufficient for tests).
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		records: make(map[string]entry),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		s.ticker = time.NewTicker(cleanupInterval)
		go s.cleanupLoop()
	}

	return s
}

// Put implements [Store].
func (s *MemoryStore) Put(ctx context.Context, sessionKey string, kind models.TransactionKind, record any, ttl time.Duration) error {
	if sessionKey == "" {
		return ErrInvalidSessionKey
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	e := entry{data: data}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.records[recordKey(sessionKey, kind)] = e
	s.mu.Unlock()

	return nil
}

// Get implements [Store].
func (s *MemoryStore) Get(ctx context.Context, sessionKey string, kind models.TransactionKind, record any) error {
	if sessionKey == "" {
		return ErrInvalidSessionKey
	}
	if record == nil {
		return ErrInvalidRecord
	}

	key := recordKey(sessionKey, kind)

	s.mu.RLock()
	e, ok := s.records[key]
	s.mu.RUnlock()

	if !ok {
		return ErrRecordNotFound
	}

	if e.expired(time.Now()) {
		s.mu.Lock()
		delete(s.records, key)
		s.mu.Unlock()
		return ErrRecordNotFound
	}

	if err := json.Unmarshal(e.data, record); err != nil {
		return ErrInvalidRecord
	}

	return nil
}

// Delete implements [Store].
func (s *MemoryStore) Delete(ctx context.Context, sessionKey string, kind models.TransactionKind) error {
	if sessionKey == "" {
		return ErrInvalidSessionKey
	}

	s.mu.Lock()
	delete(s.records, recordKey(sessionKey, kind))
	s.mu.Unlock()

	return nil
}

// Close stops the background cleanup loop. Safe to call more than once.
func (s *MemoryStore) Close() {
	s.once.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
	})
}

func (s *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-s.ticker.C:
			s.sweep(time.Now())
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.records {
		if e.expired(now) {
			delete(s.records, key)
		}
	}
}
