package service

import (
	"github.com/apmod1/password-manager/internal/config"
	"github.com/apmod1/password-manager/internal/logger"
	"github.com/apmod1/password-manager/internal/session"
	"github.com/apmod1/password-manager/internal/store"
	"github.com/apmod1/password-manager/internal/validators"
	"github.com/apmod1/password-manager/internal/words"
)

type Services struct {
	RegistrationService RegistrationService
	LoginService        LoginService
	VaultService        VaultService
}

func NewServices(storages store.Storages, transactions session.Store, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	wordGenerator := words.NewGenerator(cfg.App.WordlistPath, logger)
	credentialValidator := validators.NewCredentialValidator()
	itemValidator := validators.NewVaultItemValidator()

	return &Services{
		RegistrationService: NewRegistrationService(storages.UserRepository, storages.DeviceRepository, transactions, wordGenerator, credentialValidator, cfg.App, logger),
		LoginService:        NewLoginService(storages.UserRepository, storages.DeviceRepository, transactions, credentialValidator, cfg.App, logger),
		VaultService:        NewVaultService(storages.UserRepository, storages.ItemRepository, itemValidator, logger),
	}
}
