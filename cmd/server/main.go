package main

import (
	"context"
	"os"

	"github.com/MKhiriev/go-voting-server/internal/config"
	"github.com/MKhiriev/go-voting-server/internal/handler"
	"github.com/MKhiriev/go-voting-server/internal/logger"
	"github.com/MKhiriev/go-voting-server/internal/server"
	"github.com/MKhiriev/go-voting-server/internal/service"
	"github.com/MKhiriev/go-voting-server/internal/store"
	"github.com/MKhiriev/go-voting-server/internal/utils"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("go-voting-server")
	printBuildInfo(log)

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetGlobalLevel(cfg.Log.Level); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("token_issuer", cfg.App.TokenIssuer).
		Dur("token_duration", cfg.App.TokenDuration).
		Msg("received configs")

	ctx := context.Background()
	hasher := utils.NewBcryptHasher(cfg.App.BcryptCost)

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, hasher, utils.NewUUIDGenerator(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(ctx); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services := service.NewServices(storages, hasher, *cfg, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo(log *logger.Logger) {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	log.Info().
		Str("build_version", buildVersion).
		Str("build_date", buildDate).
		Str("build_commit", buildCommit).
		Msg("starting")
}
