package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUnavailableCommand(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "unavailable",
		Short: "List liked posts that can no longer be loaded",
		Long: `Lists likes whose post was deleted or hidden, with the author profile
when it still resolves and the reason when it does not.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := authenticate(ctx, deps); err != nil {
				return err
			}

			posts, err := deps.Services.StatsService.Unavailable(ctx)
			if err != nil {
				return fmt.Errorf("unavailable likes: %w", err)
			}
			if len(posts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no unavailable likes")
				return nil
			}

			t := newTable("liked at", "author", "post")
			for _, p := range posts {
				author := p.ProfileMissingReason
				if !p.ProfileMissing && p.Profile != nil {
					author = "@" + p.Profile.Handle
				}
				t.Row(p.LikedAt.Local().Format("2006-01-02 15:04"), author, p.URI)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			fmt.Fprintf(cmd.OutOrStdout(), "%d unavailable likes\n", len(posts))
			return nil
		},
	}
}
