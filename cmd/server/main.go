package main

import (
	"context"
	"fmt"
	"time"

	"github.com/apmod1/password-manager/internal/config"
	httphandler "github.com/apmod1/password-manager/internal/handler/http"
	"github.com/apmod1/password-manager/internal/logger"
	"github.com/apmod1/password-manager/internal/server"
	"github.com/apmod1/password-manager/internal/service"
	"github.com/apmod1/password-manager/internal/session"
	"github.com/apmod1/password-manager/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("password-manager-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	transactions, closeTransactions, err := newTransactionStore(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating transaction store")
	}
	defer closeTransactions()

	services := service.NewServices(*storages, transactions, *cfg, log)
	handler := httphandler.NewHandler(services, cfg.App, log)

	servers, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	servers.RunServer()
}

// newTransactionStore prefers Redis when an address is configured so that
// pending registrations and logins survive restarts and are shared between
// replicas. Without Redis the process falls back to an in-memory store.
func newTransactionStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (session.Store, func(), error) {
	if cfg.Redis.Address != "" {
		log.Info().Str("address", cfg.Redis.Address).Msg("using redis transaction store")

		redisStore, err := session.NewRedisStoreFromAddr(ctx, cfg.Redis.Address)
		if err != nil {
			return nil, nil, err
		}

		return redisStore, func() {
			if err := redisStore.Close(); err != nil {
				log.Error().Err(err).Msg("error closing redis transaction store")
			}
		}, nil
	}

	log.Info().Msg("using in-memory transaction store")
	memoryStore := session.NewMemoryStore(time.Minute)

	return memoryStore, memoryStore.Close, nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
