package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/sky-shelf/internal/client"
	"github.com/MKhiriev/sky-shelf/internal/logger"
	"github.com/MKhiriev/sky-shelf/internal/service"
	"github.com/MKhiriev/sky-shelf/models"
)

// Deps carries everything the commands run against.
type Deps struct {
	Services  *service.Services
	Client    client.Client
	BuildInfo models.AppBuildInfo

	// Credentials are the configured login credentials; either field may be
	// empty.
	Credentials models.Credentials

	Logger *logger.Logger
}

// NewRootCommand builds the skyshelf command tree. Without a subcommand the
// terminal browser starts.
func NewRootCommand(deps Deps) *cobra.Command {
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}

	root := &cobra.Command{
		Use:   "skyshelf",
		Short: "Browse and search your Bluesky likes, pins and bookmarks",
		Long: `skyshelf keeps a local cache of your Bluesky likes, pinned posts and
bookmarks and lets you search, filter and page through them.

Global configuration flags (-d, -c, -identifier, ...) go before the
command name.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, deps)
		},
	}

	root.AddCommand(
		newLoginCommand(deps),
		newFetchCommand(deps),
		newClearCacheCommand(deps),
		newStatsCommand(deps),
		newUnavailableCommand(deps),
		newTUICommand(deps),
		newVersionCommand(deps),
	)

	return root
}

// authenticate restores the stored session, logging in with the configured
// credentials when nothing is stored.
func authenticate(ctx context.Context, deps Deps) (models.Session, error) {
	sessions := deps.Services.SessionService

	session, err := sessions.Restore(ctx)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, service.ErrNotAuthenticated) {
		return models.Session{}, fmt.Errorf("restore session: %w", err)
	}

	if deps.Credentials.Identifier == "" || deps.Credentials.Password == "" {
		return models.Session{}, ErrLoginRequired
	}

	session, err = sessions.Login(ctx, deps.Credentials)
	if err != nil {
		return models.Session{}, fmt.Errorf("login: %w", err)
	}
	return session, nil
}

// collectionsArg returns the collection named by args, or every collection.
func collectionsArg(args []string) ([]models.Collection, error) {
	if len(args) == 0 {
		return models.Collections, nil
	}
	c, ok := models.ParseCollection(args[0])
	if !ok {
		return nil, fmt.Errorf("%q: %w", args[0], ErrUnknownCollection)
	}
	return []models.Collection{c}, nil
}
