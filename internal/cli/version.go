package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			info := deps.BuildInfo
			fmt.Fprintf(cmd.OutOrStdout(), "skyshelf version %s\n", valueOrNA(info.BuildVersion()))
			fmt.Fprintf(cmd.OutOrStdout(), "build date: %s\n", valueOrNA(info.BuildDate()))
			fmt.Fprintf(cmd.OutOrStdout(), "build commit: %s\n", valueOrNA(info.BuildCommit()))
		},
	}
}

func valueOrNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
