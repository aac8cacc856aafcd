package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/apmod1/password-manager/internal/integrity"
	"github.com/apmod1/password-manager/internal/words"
	"github.com/apmod1/password-manager/models"
)

// computeTestTag plays the client's role: an HMAC-SHA256 tag over message,
// keyed by the space-joined HMAC words.
func computeTestTag(hmacWords []string, message []byte) []byte {
	return integrity.ComputeHMAC([]byte(words.Join(hmacWords)), message)
}

// computeVaultTag plays the client's role for vault writes: the tag is keyed
// by the SHA-256 digest of the HMAC words, the same value the server stores.
func computeVaultTag(hmacWords []string, payload string) []byte {
	return integrity.ComputeHMAC(words.Hash(hmacWords), []byte(payload))
}

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createUserFn            func(ctx context.Context, user models.User) (models.User, error)
	findUserByIDFn          func(ctx context.Context, id uuid.UUID) (models.User, error)
	findUserByFingerprintFn func(ctx context.Context, fingerprint []byte) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	if m.findUserByIDFn != nil {
		return m.findUserByIDFn(ctx, id)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByFingerprint(ctx context.Context, fingerprint []byte) (models.User, error) {
	if m.findUserByFingerprintFn != nil {
		return m.findUserByFingerprintFn(ctx, fingerprint)
	}
	return models.User{}, nil
}

// ─────────────────────────────────────────────
// Mock: store.DeviceRepository
// ─────────────────────────────────────────────

type mockDeviceRepository struct {
	createDeviceFn        func(ctx context.Context, device models.TOTPDevice) (models.TOTPDevice, error)
	findDeviceByUserFn    func(ctx context.Context, userID uuid.UUID) (models.TOTPDevice, error)
	updateDeviceCounterFn func(ctx context.Context, deviceID int64, counter int64) error
}

func (m *mockDeviceRepository) CreateDevice(ctx context.Context, device models.TOTPDevice) (models.TOTPDevice, error) {
	if m.createDeviceFn != nil {
		return m.createDeviceFn(ctx, device)
	}
	return device, nil
}

func (m *mockDeviceRepository) FindDeviceByUser(ctx context.Context, userID uuid.UUID) (models.TOTPDevice, error) {
	if m.findDeviceByUserFn != nil {
		return m.findDeviceByUserFn(ctx, userID)
	}
	return models.TOTPDevice{}, nil
}

func (m *mockDeviceRepository) UpdateDeviceCounter(ctx context.Context, deviceID int64, counter int64) error {
	if m.updateDeviceCounterFn != nil {
		return m.updateDeviceCounterFn(ctx, deviceID, counter)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.ItemRepository
// ─────────────────────────────────────────────

type mockItemRepository struct {
	listItemsFn  func(ctx context.Context, userID uuid.UUID) ([]models.VaultItemSummary, error)
	createItemFn func(ctx context.Context, item models.VaultItem) (models.VaultItem, error)
	getItemFn    func(ctx context.Context, userID, itemID uuid.UUID) (models.VaultItem, error)
	updateItemFn func(ctx context.Context, userID, itemID uuid.UUID, update models.VaultItemUpdate) (models.VaultItem, error)
	deleteItemFn func(ctx context.Context, userID, itemID uuid.UUID) error
}

func (m *mockItemRepository) ListItems(ctx context.Context, userID uuid.UUID) ([]models.VaultItemSummary, error) {
	if m.listItemsFn != nil {
		return m.listItemsFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockItemRepository) CreateItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	if m.createItemFn != nil {
		return m.createItemFn(ctx, item)
	}
	return item, nil
}

func (m *mockItemRepository) GetItem(ctx context.Context, userID, itemID uuid.UUID) (models.VaultItem, error) {
	if m.getItemFn != nil {
		return m.getItemFn(ctx, userID, itemID)
	}
	return models.VaultItem{}, nil
}

func (m *mockItemRepository) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, update models.VaultItemUpdate) (models.VaultItem, error) {
	if m.updateItemFn != nil {
		return m.updateItemFn(ctx, userID, itemID, update)
	}
	return models.VaultItem{}, nil
}

func (m *mockItemRepository) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if m.deleteItemFn != nil {
		return m.deleteItemFn(ctx, userID, itemID)
	}
	return nil
}
