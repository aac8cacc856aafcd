package store

import (
	"context"
	"fmt"

	"github.com/apmod1/password-manager/internal/config"
	"github.com/apmod1/password-manager/internal/logger"
)

// Storages aggregates all repository implementations behind their
// interfaces, ready to be injected into the service layer.
type Storages struct {
	UserRepository   UserRepository
	DeviceRepository DeviceRepository
	ItemRepository   ItemRepository
}

// NewStorages connects to PostgreSQL, applies the embedded migrations, and
// wires up the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error creating database connection: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		UserRepository:   NewUserRepository(db, log),
		DeviceRepository: NewDeviceRepository(db, log),
		ItemRepository:   NewItemRepository(db, log),
	}, nil
}
