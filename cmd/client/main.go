package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/sky-shelf/internal/adapter"
	"github.com/MKhiriev/sky-shelf/internal/cli"
	"github.com/MKhiriev/sky-shelf/internal/client"
	"github.com/MKhiriev/sky-shelf/internal/config"
	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/internal/store"
	"github.com/MKhiriev/sky-shelf/internal/tui"
	"github.com/MKhiriev/sky-shelf/internal/workers"
	"github.com/MKhiriev/sky-shelf/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	log := logger.NewClientLogger("skyshelf-client", cfg.App.LogPath)
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("create cache storage: %w", err)
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	remote, err := adapter.NewXRPCAdapter(cfg.Adapter, log)
	if err != nil {
		return fmt.Errorf("create xrpc adapter: %w", err)
	}

	services, err := service.NewServices(storages, remote, *cfg, log)
	if err != nil {
		return fmt.Errorf("create services: %w", err)
	}
	defer services.Orchestrator.Close()

	ui, err := tui.New(services, buildInfo, cfg.App.SearchFuzziness, log)
	if err != nil {
		return fmt.Errorf("create ui: %w", err)
	}

	w, err := workers.NewWorkers(services, cfg.Workers, log)
	if err != nil {
		return fmt.Errorf("create workers: %w", err)
	}

	app, err := client.NewApp(services, ui, w, cfg.App, log)
	if err != nil {
		return fmt.Errorf("init client app: %w", err)
	}

	root := cli.NewRootCommand(cli.Deps{
		Services:    services,
		Client:      app,
		BuildInfo:   buildInfo,
		Credentials: models.Credentials{Identifier: cfg.App.Identifier, Password: cfg.App.AppPassword},
		Logger:      log,
	})
	root.SetArgs(args)

	return root.ExecuteContext(ctx)
}
