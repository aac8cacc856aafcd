package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/apmod1/password-manager/models"
)

// UserRepository is the user-directory collaborator. Accounts are written
// exactly once, at registration completion; the wrapped key and its
// integrity tag always travel together inside the same models.User value.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	FindUserByFingerprint(ctx context.Context, fingerprint []byte) (models.User, error)
}

// DeviceRepository is the TOTP-device directory collaborator. At most one
// device exists per user, enforced by a unique constraint.
type DeviceRepository interface {
	CreateDevice(ctx context.Context, device models.TOTPDevice) (models.TOTPDevice, error)
	FindDeviceByUser(ctx context.Context, userID uuid.UUID) (models.TOTPDevice, error)
	// UpdateDeviceCounter advances the monotonic verification window and
	// marks the device confirmed.
	UpdateDeviceCounter(ctx context.Context, deviceID int64, counter int64) error
}

// ItemRepository is the vault-item directory collaborator. Every operation
// is scoped by owner; an owner mismatch surfaces as ErrItemNotFound.
type ItemRepository interface {
	ListItems(ctx context.Context, userID uuid.UUID) ([]models.VaultItemSummary, error)
	CreateItem(ctx context.Context, item models.VaultItem) (models.VaultItem, error)
	GetItem(ctx context.Context, userID, itemID uuid.UUID) (models.VaultItem, error)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, update models.VaultItemUpdate) (models.VaultItem, error)
	DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error
}
