package commands

import (
	"github.com/spf13/cobra"

	isilonsdk "github.com/Isilon/isilon-sdk"
	"github.com/Isilon/isilon-sdk/internal/cliutil"
)

func newVersionCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			if verbose {
				cliutil.Writef(out, "%s\n", isilonsdk.BuildInfo())
				return
			}
			cliutil.Writef(out, "papi2oas v%s\n", isilonsdk.Version())
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include commit, build time and Go version")
	return cmd
}
