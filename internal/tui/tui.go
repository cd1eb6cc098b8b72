// Package tui implements the terminal collection browser: a login screen and
// a tabbed view over the likes, pins and bookmarks collections.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/models"
)

var errNoServices = errors.New("tui needs services")

type TUI struct {
	services  *service.Services
	buildInfo models.AppBuildInfo
	fuzziness float64
	logger    *logger.Logger
}

func New(services *service.Services, buildInfo models.AppBuildInfo, fuzziness float64, logger *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, errNoServices
	}
	return &TUI{
		services:  services,
		buildInfo: buildInfo,
		fuzziness: fuzziness,
		logger:    logger.GetChildLogger(),
	}, nil
}

// LoginFlow runs the login screen until a session exists. Leaving the
// screen returns ErrUserQuit.
func (t *TUI) LoginFlow(ctx context.Context) (models.Session, error) {
	finalModel, err := tea.NewProgram(NewLoginModel(ctx, t.services.SessionService), tea.WithAltScreen()).Run()
	if err != nil {
		return models.Session{}, err
	}

	result, ok := finalModel.(*LoginModel)
	if !ok {
		return models.Session{}, tea.ErrProgramKilled
	}
	if result.quitByUser {
		return models.Session{}, ErrUserQuit
	}

	return result.session, nil
}

// MainLoop runs the collection browser. It reports whether the user asked
// to log out.
func (t *TUI) MainLoop(ctx context.Context) (logout bool, err error) {
	updates, cancel := t.services.Orchestrator.Subscribe()
	defer cancel()

	active, err := t.services.CacheService.LastTab(ctx)
	if err != nil {
		t.logger.Err(err).Str("func", "TUI.MainLoop").Msg("error reading last tab")
		active = models.Collections[0]
	}
	index, err := t.services.CacheService.CurrentIndex(ctx)
	if err != nil {
		t.logger.Err(err).Str("func", "TUI.MainLoop").Msg("error reading page index")
		index = models.NoPages
	}

	model := newBrowserModel(ctx, t.services, updates, browserOptions{
		active:    active,
		pageIndex: index,
		fuzziness: t.fuzziness,
		buildInfo: t.buildInfo,
	}, t.logger)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return false, err
	}

	result, ok := finalModel.(browserModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return result.logout, nil
}
