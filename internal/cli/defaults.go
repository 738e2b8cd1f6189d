package cli

import (
	"github.com/phanxgames/constellation"
	"github.com/spf13/cobra"
)

func defaultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the default configuration as TOML",
		Long: "Print the default configuration as TOML. Save it to a file, edit the\n" +
			"keys you care about and pass it to run or simulate with --config.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := constellation.DefaultConfig().EncodeTOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
