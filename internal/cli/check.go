package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/phanxgames/constellation/internal/ui"
	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report suspicious configuration values",
		Long: "Resolve the configuration exactly as run and simulate do and report\n" +
			"values the engine accepts but that are unlikely to be intended.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			n := printIssues(out, cfg.Validate())
			if n > 0 {
				return fmt.Errorf("%d configuration issue(s)", n)
			}
			ui.Good.Fprintln(out, "  configuration looks good")
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

// printIssues lists every problem joined into err and returns their count.
func printIssues(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	issues := []error{err}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		issues = joined.Unwrap()
	}
	for _, issue := range issues {
		ui.Warn.Fprintf(w, "  ! %v\n", issue)
	}
	return len(issues)
}
