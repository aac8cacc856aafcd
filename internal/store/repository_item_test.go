package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apmod1/password-manager/internal/logger"
	"github.com/apmod1/password-manager/models"
)

func newTestItemRepo(t *testing.T) (*itemRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &itemRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func itemColumns() []string {
	return []string{"item_id", "user_id", "encrypted_data", "name", "created_at", "updated_at"}
}

func TestListItems_ReturnsSummariesOnly(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	userID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{"item_id", "name", "created_at", "updated_at"}).
		AddRow(uuid.New(), "newest", now, now).
		AddRow(uuid.New(), "older", now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM vault_items").
		WithArgs(userID).
		WillReturnRows(rows)

	summaries, err := repo.ListItems(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "newest", summaries[0].Name)
	assert.Equal(t, "older", summaries[1].Name)
}

func TestListItems_EmptyVault(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM vault_items").
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "name", "created_at", "updated_at"}))

	summaries, err := repo.ListItems(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, summaries)
	assert.NotNil(t, summaries)
}

func TestCreateItem_Success(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	item := models.VaultItem{
		ItemID:        uuid.New(),
		UserID:        uuid.New(),
		EncryptedData: "b64-ciphertext",
		Name:          "bank login",
	}
	now := time.Now()

	rows := sqlmock.NewRows(itemColumns()).
		AddRow(item.ItemID, item.UserID, item.EncryptedData, item.Name, now, now)

	mock.ExpectQuery("INSERT INTO vault_items").
		WithArgs(item.ItemID, item.UserID, item.EncryptedData, item.Name).
		WillReturnRows(rows)

	saved, err := repo.CreateItem(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, item.ItemID, saved.ItemID)
	assert.Equal(t, item.EncryptedData, saved.EncryptedData)
	assert.WithinDuration(t, now, saved.CreatedAt, time.Second)
}

func TestGetItem_Success(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	userID := uuid.New()
	itemID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows(itemColumns()).
		AddRow(itemID, userID, "b64-ciphertext", "bank login", now, now)

	mock.ExpectQuery("SELECT (.+) FROM vault_items").
		WithArgs(itemID, userID).
		WillReturnRows(rows)

	found, err := repo.GetItem(context.Background(), userID, itemID)
	require.NoError(t, err)
	assert.Equal(t, "b64-ciphertext", found.EncryptedData)
}

func TestGetItem_NotFound(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM vault_items").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetItem(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestUpdateItem_AllFields(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	userID := uuid.New()
	itemID := uuid.New()
	data := "new-ciphertext"
	name := "renamed"
	now := time.Now()

	rows := sqlmock.NewRows(itemColumns()).
		AddRow(itemID, userID, data, name, now.Add(-time.Hour), now)

	mock.ExpectQuery("UPDATE vault_items").
		WillReturnRows(rows)

	updated, err := repo.UpdateItem(context.Background(), userID, itemID,
		models.VaultItemUpdate{EncryptedData: &data, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, data, updated.EncryptedData)
	assert.Equal(t, name, updated.Name)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestUpdateItem_NotFound(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE vault_items").
		WillReturnError(sql.ErrNoRows)

	data := "x"
	_, err := repo.UpdateItem(context.Background(), uuid.New(), uuid.New(),
		models.VaultItemUpdate{EncryptedData: &data})
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDeleteItem_Success(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	userID := uuid.New()
	itemID := uuid.New()

	mock.ExpectExec("DELETE FROM vault_items").
		WithArgs(itemID, userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.DeleteItem(context.Background(), userID, itemID))
}

func TestDeleteItem_NotFound(t *testing.T) {
	repo, mock, db := newTestItemRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM vault_items").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteItem(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrItemNotFound)
}
