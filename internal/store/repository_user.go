package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"

	"github.com/apmod1/password-manager/internal/logger"
	"github.com/apmod1/password-manager/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account finalization and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists the finalized account record produced at registration
// completion and returns the fully populated [models.User] with the
// server-assigned CreatedAt.
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the new account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrFingerprintAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → wrapped [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.ID, user.Fingerprint, user.WrappedKey, user.WrappedKeyHMAC,
		user.Algorithm.String(), user.AuthWordsHash, user.HMACWordsHash,
		user.Verifier, user.Email)

	var saved models.User
	if err := row.Scan(&saved.ID, &saved.Fingerprint, &saved.WrappedKey, &saved.WrappedKeyHMAC,
		&saved.Algorithm, &saved.AuthWordsHash, &saved.HMACWordsHash,
		&saved.Verifier, &saved.Email, &saved.CreatedAt); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: fingerprint collision")
			return models.User{}, ErrFingerprintAlreadyExists
		}

		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return saved, nil
}

// FindUserByID retrieves the account record whose primary identifier
// matches id.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoUserWasFound].
//   - Any other failure → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return r.findUser(ctx, findUserByID, id)
}

// FindUserByFingerprint retrieves the account record whose username
// fingerprint matches fingerprint.
//
// Error handling mirrors [userRepository.FindUserByID].
func (r *userRepository) FindUserByFingerprint(ctx context.Context, fingerprint []byte) (models.User, error) {
	return r.findUser(ctx, findUserByFingerprint, fingerprint)
}

// findUser runs one of the single-row user lookup queries and scans the
// result.
func (r *userRepository) findUser(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.db.QueryRowContext(ctx, query, arg)

	if err := row.Scan(&found.ID, &found.Fingerprint, &found.WrappedKey, &found.WrappedKeyHMAC,
		&found.Algorithm, &found.AuthWordsHash, &found.HMACWordsHash,
		&found.Verifier, &found.Email, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.findUser").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}
