package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/sky-shelf/internal/config"
	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/models"
)

var errNoUI = errors.New("client app needs a ui")

type App struct {
	services   *service.Services
	ui         UI
	background Background
	creds      models.Credentials
	logger     *logger.Logger
}

func NewApp(services *service.Services, ui UI, background Background, cfg config.ClientApp, logger *logger.Logger) (*App, error) {
	if ui == nil {
		return nil, errNoUI
	}
	return &App{
		services:   services,
		ui:         ui,
		background: background,
		creds:      models.Credentials{Identifier: strings.TrimSpace(cfg.Identifier), Password: cfg.AppPassword},
		logger:     logger,
	}, nil
}

// Run authenticates, then runs the browser with the background workers
// alongside. A logout from the browser forgets the session and starts over.
func (a *App) Run(ctx context.Context) error {
	for {
		if err := a.authenticate(ctx); err != nil {
			return err
		}

		logout, err := a.runMainLoop(ctx)
		if err != nil {
			return err
		}
		if !logout {
			return nil
		}

		if err = a.services.SessionService.Logout(ctx); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		a.logger.Info().Msg("logged out")
	}
}

func (a *App) runMainLoop(ctx context.Context) (bool, error) {
	if a.background != nil {
		a.background.Run(ctx)
		defer a.background.Stop()
	}
	return a.ui.MainLoop(ctx)
}

// authenticate restores the stored session. Without one it logs in with the
// configured credentials when present, otherwise through the login screen.
func (a *App) authenticate(ctx context.Context) error {
	session, err := a.services.SessionService.Restore(ctx)
	if err == nil {
		a.logger.Info().Str("did", session.DID).Msg("session restored")
		return nil
	}
	if !errors.Is(err, service.ErrNotAuthenticated) {
		a.logger.Err(err).Str("func", "App.authenticate").Msg("error restoring session")
	}

	if a.creds.Identifier != "" && a.creds.Password != "" {
		session, err = a.services.SessionService.Login(ctx, a.creds)
		if err == nil {
			a.logger.Info().Str("did", session.DID).Msg("logged in with configured credentials")
			// configured credentials are used once; a later logout goes
			// through the login screen
			a.creds = models.Credentials{}
			return nil
		}
		a.logger.Err(err).Str("func", "App.authenticate").Msg("error logging in with configured credentials")
	}

	session, err = a.ui.LoginFlow(ctx)
	if err != nil {
		return err
	}
	a.logger.Info().Str("did", session.DID).Msg("logged in")
	return nil
}
