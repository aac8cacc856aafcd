package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apmod1/password-manager/internal/service"
	"github.com/apmod1/password-manager/internal/utils"
	"github.com/apmod1/password-manager/models"
)

// bearerHeader builds an Authorization header with a freshly signed access
// token for userID.
func bearerHeader(t *testing.T, userID uuid.UUID) map[string]string {
	t.Helper()

	token, err := utils.GenerateJWTToken(testIssuer, userID, time.Hour, testSignKey)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token.SignedString}
}

func TestVaultAuthMiddleware(t *testing.T) {
	router := newTestRouter(&mockRegistrationService{}, &mockLoginService{}, &mockVaultService{})

	t.Run("missing header", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/vault/items", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/vault/items", "", map[string]string{"Authorization": "Bearer"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another key", func(t *testing.T) {
		token, err := utils.GenerateJWTToken(testIssuer, uuid.New(), time.Hour, "another-key")
		require.NoError(t, err)

		w := doRequest(router, http.MethodGet, "/api/vault/items", "", map[string]string{"Authorization": "Bearer " + token.SignedString})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token passes", func(t *testing.T) {
		w := doRequest(router, http.MethodGet, "/api/vault/items", "", bearerHeader(t, uuid.New()))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestListItems(t *testing.T) {
	userID := uuid.New()
	vault := &mockVaultService{
		listItemsFn: func(ctx context.Context, id uuid.UUID) ([]models.VaultItemSummary, error) {
			assert.Equal(t, userID, id)
			return []models.VaultItemSummary{
				{ItemID: uuid.New(), Name: "mail"},
				{ItemID: uuid.New(), Name: "wifi"},
			}, nil
		},
	}
	router := newTestRouter(&mockRegistrationService{}, &mockLoginService{}, vault)

	w := doRequest(router, http.MethodGet, "/api/vault/items", "", bearerHeader(t, userID))
	require.Equal(t, http.StatusOK, w.Code)

	var response models.VaultItemListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Items, 2)
	assert.Equal(t, "mail", response.Items[0].Name)
}

func TestCreateItem(t *testing.T) {
	userID := uuid.New()

	t.Run("with integrity tag", func(t *testing.T) {
		var receivedTag []byte
		vault := &mockVaultService{
			createItemFn: func(ctx context.Context, id uuid.UUID, item models.VaultItem, tag []byte) (models.VaultItem, error) {
				receivedTag = tag
				item.ItemID = uuid.New()
				return item, nil
			},
		}
		router := newTestRouter(&mockRegistrationService{}, &mockLoginService{}, vault)

		header := bearerHeader(t, userID)
		header[hmacHeader] = base64.StdEncoding.EncodeToString([]byte("the-tag"))

		w := doRequest(router, http.MethodPost, "/api/vault/items", `{"encrypted_data":"blob","name":"mail"}`, header)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, []byte("the-tag"), receivedTag)

		var created models.VaultItem
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, "blob", created.EncryptedData)
		assert.NotEqual(t, uuid.Nil, created.ItemID)
	})

	t.Run("without tag", func(t *testing.T) {
		vault := &mockVaultService{
			createItemFn: func(ctx context.Context, id uuid.UUID, item models.VaultItem, tag []byte) (models.VaultItem, error) {
				assert.Nil(t, tag)
				return item, nil
			},
		}
		router := newTestRouter(&mockRegistrationService{}, &mockLoginService{}, vault)

		w := doRequest(router, http.MethodPost, "/api/vault/items", `{"encrypted_data":"blob"}`, bearerHeader(t, userID))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("tampered tag", func(t *testing.T) {
		vault := &mockVaultService{
			createItemFn: func(ctx context.Context, id uuid.UUID, item models.VaultItem, tag []byte) (models.VaultItem, error) {
				return models.VaultItem{}, service.ErrIntegrityCheckFailed
			},
		}
		router := newTestRouter(&mockRegistrationService{}, &mockLoginService{}, vault)

		w := doRequest(router, http.MethodPost, "/api/vault/items", `{"encrypted_data":"blob"}`, bearerHeader(t, userID))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetItem(t *testing.T) {
	userID, itemID := uuid.New(), uuid.New()

	t.Run("found", func(t *testing.T) {
		vault := &mockVaultService{
			getItemFn: func(ctx context.Context, uID, iID uuid.UUID) (models.VaultItem, error) {
				assert.Equal(t, userID, uID)
				assert.Equal(t, itemID, iID)
				return models.VaultItem{ItemID: iID, EncryptedData: "blob"}, nil
			},
		}
		router := newTestRouter(&mockRegistrationService{}, &mockLoginService{}, vault)

		w := doRequest(router, http.MethodGet, fmt.Sprintf("/api/vault/items/%s", itemID), "", bearerHeader(t, userID))
		require.Equal(t, http.StatusOK, w.Code)

		var item models.VaultItem
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
		assert.Equal(t, "blob", item.EncryptedData)
	})

	t.Run("absent or foreign", func(t *testing.T) {
		vault := &mockVaultService{
			getItemFn: func(ctx context.Context, uID, iID uuid.UUID) (models.VaultItem, error) {
				return models.VaultItem{}, service.ErrNotFound
			},
		}
		router := newTestRouter(&mockRegistrationService{}, &mockLoginService{}, vault)

		w := doRequest(router, http.MethodGet, fmt.Sprintf("/api/vault/items/%s", itemID), "", bearerHeader(t, userID))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed item ID", func(t *testing.T) {
		router := newTestRouter(&mockRegistrationService{}, &mockLoginService{}, &mockVaultService{})

		w := doRequest(router, http.MethodGet, "/api/vault/items/not-a-uuid", "", bearerHeader(t, userID))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateItem(t *testing.T) {
	userID, itemID := uuid.New(), uuid.New()

	vault := &mockVaultService{
		updateItemFn: func(ctx context.Context, uID, iID uuid.UUID, update models.VaultItemUpdate, tag []byte) (models.VaultItem, error) {
			require.NotNil(t, update.Name)
			assert.Nil(t, update.EncryptedData)
			return models.VaultItem{ItemID: iID, Name: *update.Name}, nil
		},
	}
	router := newTestRouter(&mockRegistrationService{}, &mockLoginService{}, vault)

	w := doRequest(router, http.MethodPut, fmt.Sprintf("/api/vault/items/%s", itemID), `{"name":"renamed"}`, bearerHeader(t, userID))
	require.Equal(t, http.StatusOK, w.Code)

	var item models.VaultItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, "renamed", item.Name)
}

func TestDeleteItem(t *testing.T) {
	userID, itemID := uuid.New(), uuid.New()

	t.Run("deleted", func(t *testing.T) {
		vault := &mockVaultService{
			deleteItemFn: func(ctx context.Context, uID, iID uuid.UUID) error {
				assert.Equal(t, itemID, iID)
				return nil
			},
		}
		router := newTestRouter(&mockRegistrationService{}, &mockLoginService{}, vault)

		w := doRequest(router, http.MethodDelete, fmt.Sprintf("/api/vault/items/%s", itemID), "", bearerHeader(t, userID))
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("absent or foreign", func(t *testing.T) {
		vault := &mockVaultService{
			deleteItemFn: func(ctx context.Context, uID, iID uuid.UUID) error {
				return service.ErrNotFound
			},
		}
		router := newTestRouter(&mockRegistrationService{}, &mockLoginService{}, vault)

		w := doRequest(router, http.MethodDelete, fmt.Sprintf("/api/vault/items/%s", itemID), "", bearerHeader(t, userID))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
