// Package cli implements the constellation command line.
package cli

import (
	"github.com/phanxgames/constellation/internal/ui"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

// NewRootCmd builds the command tree. Each call returns a fresh tree so tests
// can run commands in isolation.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "constellation",
		Short: "A growing force-directed node network",
		Long: ui.Brand.Sprint(ui.Star+" constellation") + ": watch a node-link diagram grow\n" +
			ui.Subtle.Sprint("Spawn nodes over time and lay them out with a live force simulation"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetVersionTemplate("constellation {{ .Version }}\n")

	root.AddCommand(
		runCmd(),
		simulateCmd(),
		defaultsCmd(),
		checkCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
