package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/apmod1/password-manager/internal/logger"
	"github.com/apmod1/password-manager/models"
)

// itemRepository is the PostgreSQL-backed implementation of [ItemRepository]
// over the "vault_items" table. Every query carries the owner's user_id in
// its WHERE clause, so an ownership mismatch and a missing row are the same
// empty result.
type itemRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewItemRepository constructs an [ItemRepository] backed by the provided
// database connection and logger.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating vault item repository")
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

// ListItems returns the metadata projection of all items owned by userID,
// most recently updated first. The encrypted payload never leaves the
// database on this path.
func (r *itemRepository) ListItems(ctx context.Context, userID uuid.UUID) ([]models.VaultItemSummary, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listItems, userID)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.ListItems").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	summaries := make([]models.VaultItemSummary, 0)
	for rows.Next() {
		var s models.VaultItemSummary
		if err := rows.Scan(&s.ItemID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*itemRepository.ListItems").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return summaries, nil
}

// CreateItem persists a new vault item and returns it with server-assigned
// timestamps.
func (r *itemRepository) CreateItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createItem,
		item.ItemID, item.UserID, item.EncryptedData, item.Name)

	var saved models.VaultItem
	if err := row.Scan(&saved.ItemID, &saved.UserID, &saved.EncryptedData,
		&saved.Name, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*itemRepository.CreateItem").Msg("error: scanning error")
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return saved, nil
}

// GetItem retrieves the full record (including ciphertext) of the item
// identified by itemID and owned by userID.
//
// Returns [ErrItemNotFound] when the item does not exist or belongs to a
// different user.
func (r *itemRepository) GetItem(ctx context.Context, userID, itemID uuid.UUID) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	var found models.VaultItem
	row := r.db.QueryRowContext(ctx, getItem, itemID, userID)

	if err := row.Scan(&found.ItemID, &found.UserID, &found.EncryptedData,
		&found.Name, &found.CreatedAt, &found.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VaultItem{}, ErrItemNotFound
		}

		log.Err(err).Str("func", "*itemRepository.GetItem").Msg("error: scanning error")
		return models.VaultItem{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// UpdateItem applies the non-nil fields of update to the item identified by
// itemID and owned by userID, refreshing updated_at, and returns the updated
// record.
//
// The UPDATE is built dynamically with squirrel so that only supplied fields
// appear in the SET clause.
//
// Returns [ErrItemNotFound] when the item does not exist or belongs to a
// different user.
func (r *itemRepository) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, update models.VaultItemUpdate) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	builder := sq.Update("vault_items").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"item_id": itemID, "user_id": userID}).
		Suffix("RETURNING item_id, user_id, encrypted_data, name, created_at, updated_at").
		PlaceholderFormat(sq.Dollar)

	if update.EncryptedData != nil {
		builder = builder.Set("encrypted_data", *update.EncryptedData)
	}
	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.UpdateItem").Msg("error: building update query")
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.VaultItem
	row := r.db.QueryRowContext(ctx, query, args...)

	if err := row.Scan(&updated.ItemID, &updated.UserID, &updated.EncryptedData,
		&updated.Name, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.VaultItem{}, ErrItemNotFound
		}

		log.Err(err).Str("func", "*itemRepository.UpdateItem").Msg("error: scanning error")
		return models.VaultItem{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// DeleteItem removes the item identified by itemID and owned by userID.
//
// Returns [ErrItemNotFound] when no row was deleted, so a repeated delete
// reports the same result as deleting a foreign item.
func (r *itemRepository) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteItem, itemID, userID)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.DeleteItem").Msg("error: executing delete")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrItemNotFound
	}

	return nil
}
