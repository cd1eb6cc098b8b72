package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/sky-shelf/internal/app"
	"github.com/MKhiriev/sky-shelf/models"
)

func newFetchCommand(deps Deps) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "fetch [collection]",
		Short: "Load a collection and print a summary",
		Long: `Loads likes, pins or bookmarks. Without --force the cached copy is used;
with --force the collection is fetched from the network and the cache is
replaced. Without a collection argument every collection is processed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collections, err := collectionsArg(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if force {
				if _, err = authenticate(ctx, deps); err != nil {
					return err
				}
			}

			for _, c := range collections {
				state, err := fetchOne(ctx, deps, c, force)
				if err != nil {
					return fmt.Errorf("fetch %s: %w", c, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), summaryLine(state))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "fetch from the network instead of the cache")

	return cmd
}

func fetchOne(ctx context.Context, deps Deps, c models.Collection, force bool) (models.QueryState, error) {
	if force {
		return deps.Services.Orchestrator.Refetch(ctx, c)
	}
	return deps.Services.Orchestrator.Fetch(ctx, c, models.FetchOptions{})
}

func summaryLine(state models.QueryState) string {
	if !state.HasData() {
		return fmt.Sprintf("%s: %s", state.Collection, app.MsgNotIndexedCLI)
	}

	parts := []string{
		fmt.Sprintf("%d posts", len(state.Data.Posts)),
		fmt.Sprintf("%d authors", len(state.Data.Authors)),
	}
	if n := state.Data.UnavailableCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d unavailable", n))
	}
	if !state.UpdatedAt.IsZero() {
		parts = append(parts, "updated "+state.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return fmt.Sprintf("%s: %s", state.Collection, strings.Join(parts, ", "))
}
