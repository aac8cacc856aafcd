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

// deviceRepository is the PostgreSQL-backed implementation of
// [DeviceRepository] over the "totp_devices" table.
type deviceRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDeviceRepository constructs a [DeviceRepository] backed by the provided
// database connection and logger.
func NewDeviceRepository(db *DB, logger *logger.Logger) DeviceRepository {
	logger.Debug().Msg("creating totp device repository")
	return &deviceRepository{
		db:     db,
		logger: logger,
	}
}

// CreateDevice persists a new TOTP device row and returns it with the
// server-assigned DeviceID and CreatedAt.
//
// The unique constraint on user_id enforces the one-device-per-user
// contract at the database level.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrDeviceAlreadyExists];
//     get-or-create callers re-read on this error.
//   - Scan failure → wrapped [ErrScanningRow].
func (r *deviceRepository) CreateDevice(ctx context.Context, device models.TOTPDevice) (models.TOTPDevice, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createDevice,
		device.UserID, device.Secret, device.Confirmed, device.LastCounter)

	var saved models.TOTPDevice
	if err := row.Scan(&saved.DeviceID, &saved.UserID, &saved.Secret,
		&saved.Confirmed, &saved.LastCounter, &saved.CreatedAt); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.TOTPDevice{}, ErrDeviceAlreadyExists
		}

		log.Err(err).Str("func", "*deviceRepository.CreateDevice").Msg("error: scanning error")
		return models.TOTPDevice{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return saved, nil
}

// FindDeviceByUser retrieves the device owned by userID.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrNoDeviceWasFound].
//   - Any other failure → wrapped as "unexpected DB error".
func (r *deviceRepository) FindDeviceByUser(ctx context.Context, userID uuid.UUID) (models.TOTPDevice, error) {
	log := logger.FromContext(ctx)

	var found models.TOTPDevice
	row := r.db.QueryRowContext(ctx, findDeviceByUser, userID)

	if err := row.Scan(&found.DeviceID, &found.UserID, &found.Secret,
		&found.Confirmed, &found.LastCounter, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TOTPDevice{}, ErrNoDeviceWasFound
		}

		log.Err(err).Str("func", "*deviceRepository.FindDeviceByUser").Msg("error: scanning error")
		return models.TOTPDevice{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// UpdateDeviceCounter advances the device's monotonic verification window
// to counter and marks the device confirmed. The WHERE clause refuses to
// move the window backwards, so a replayed code can never re-arm an older
// counter.
//
// Returns [ErrNoDeviceWasFound] when no row was updated (unknown device or
// counter not strictly greater than the stored one).
func (r *deviceRepository) UpdateDeviceCounter(ctx context.Context, deviceID int64, counter int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateDeviceCounter, deviceID, counter)
	if err != nil {
		log.Err(err).Str("func", "*deviceRepository.UpdateDeviceCounter").Msg("error: executing update")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoDeviceWasFound
	}

	return nil
}
