package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/sky-shelf/internal/tui"
)

func newTUICommand(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch the terminal browser",
		Long: `Launches the interactive collection browser.

Controls:
  tab/shift+tab  switch collection
  ←/→ h/l        previous / next page
  g              jump to page
  /              search
  a              pick authors
  1-5            toggle embed filters
  f              flip page order
  r              refetch
  x / X          clear this / every cache
  c              copy post link
  L              log out
  q              quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, deps)
		},
	}
}

func runTUI(cmd *cobra.Command, deps Deps) error {
	if deps.Client == nil {
		return ErrNoClient
	}
	err := deps.Client.Run(cmd.Context())
	if errors.Is(err, tui.ErrUserQuit) {
		return nil
	}
	return err
}
