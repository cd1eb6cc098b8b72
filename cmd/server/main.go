package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/MKhiriev/sky-shelf/internal/adapter"
	"github.com/MKhiriev/sky-shelf/internal/config"
	"github.com/MKhiriev/sky-shelf/internal/handler"
	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/server"
	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/internal/store"
	"github.com/MKhiriev/sky-shelf/internal/workers"
	"github.com/MKhiriev/sky-shelf/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("skyshelf-server")
	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	remote, err := adapter.NewXRPCAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating xrpc adapter")
	}

	services, err := service.NewServices(storages, remote, cfg.ClientConfig, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}
	defer services.Orchestrator.Close()

	restoreSession(ctx, services, cfg.App, log)

	w, err := workers.NewWorkers(services, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating workers")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, w, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// restoreSession loads the stored session, or logs in with the configured
// credentials. The API still serves cached collections without a session.
func restoreSession(ctx context.Context, services *service.Services, cfg config.ClientApp, log *logger.Logger) {
	session, err := services.SessionService.Restore(ctx)
	if err == nil {
		log.Info().Str("did", session.DID).Msg("session restored")
		return
	}
	if !errors.Is(err, service.ErrNotAuthenticated) {
		log.Err(err).Msg("error restoring session")
	}

	if cfg.Identifier == "" || cfg.AppPassword == "" {
		log.Warn().Msg("no session: only cached collections can be served")
		return
	}

	session, err = services.SessionService.Login(ctx, models.Credentials{Identifier: cfg.Identifier, Password: cfg.AppPassword})
	if err != nil {
		log.Err(err).Msg("error logging in with configured credentials")
		return
	}
	log.Info().Str("did", session.DID).Msg("logged in")
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
