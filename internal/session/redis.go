package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/apmod1/password-manager/models"
)

// keyPrefix namespaces transaction records inside a shared Redis keyspace.
const keyPrefix = "txn:"

// RedisStore is a Redis-backed Store for multi-instance deployments.
// Expiry is delegated to Redis key TTLs.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore constructs a RedisStore on top of an existing client.
// The caller owns the client's lifecycle.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisStoreFromAddr dials addr and verifies connectivity with a ping
// before returning the store.
func NewRedisStoreFromAddr(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis at %s: %w", addr, err)
	}

	return &RedisStore{client: client}, nil
}

// Put implements [Store].
func (s *RedisStore) Put(ctx context.Context, sessionKey string, kind models.TransactionKind, record any, ttl time.Duration) error {
	if sessionKey == "" {
		return ErrInvalidSessionKey
	}

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	if ttl < 0 {
		ttl = 0 // redis treats 0 as "no expiry"
	}

	if err := s.client.Set(ctx, keyPrefix+recordKey(sessionKey, kind), data, ttl).Err(); err != nil {
		return fmt.Errorf("error writing transaction record: %w", err)
	}

	return nil
}

// Get implements [Store].
func (s *RedisStore) Get(ctx context.Context, sessionKey string, kind models.TransactionKind, record any) error {
	if sessionKey == "" {
		return ErrInvalidSessionKey
	}
	if record == nil {
		return ErrInvalidRecord
	}

	data, err := s.client.Get(ctx, keyPrefix+recordKey(sessionKey, kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrRecordNotFound
	}
	if err != nil {
		return fmt.Errorf("error reading transaction record: %w", err)
	}

	if err := json.Unmarshal(data, record); err != nil {
		return ErrInvalidRecord
	}

	return nil
}

// Delete implements [Store].
func (s *RedisStore) Delete(ctx context.Context, sessionKey string, kind models.TransactionKind) error {
	if sessionKey == "" {
		return ErrInvalidSessionKey
	}

	if err := s.client.Del(ctx, keyPrefix+recordKey(sessionKey, kind)).Err(); err != nil {
		return fmt.Errorf("error deleting transaction record: %w", err)
	}

	return nil
}

// Close releases the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
