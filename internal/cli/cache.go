package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/sky-shelf/internal/app"
)

func newClearCacheCommand(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache [collection]",
		Short: "Drop cached collection data",
		Long: `Deletes the cached data of one collection, or of every collection when
no argument is given. Clearing an empty cache is not an error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orchestrator := deps.Services.Orchestrator

			if len(args) == 0 {
				if err := orchestrator.ClearAll(cmd.Context()); err != nil {
					return fmt.Errorf("clear caches: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), app.MsgAllCachesCleared)
				return nil
			}

			collections, err := collectionsArg(args)
			if err != nil {
				return err
			}
			if err = orchestrator.Clear(cmd.Context(), collections[0]); err != nil {
				return fmt.Errorf("clear %s cache: %w", collections[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", collections[0], app.MsgCacheCleared)
			return nil
		},
	}
}
