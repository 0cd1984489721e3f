package cli

import (
	"fmt"

	"github.com/shaie/browze/pkg/version"
	"github.com/spf13/cobra"
)

func Version() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the browze version",
		RunE: func(cmd *cobra.Command, args []string) error {
			build := version.GetBuild()
			fmt.Fprintf(cmd.OutOrStdout(), "browze %s", build.Version)
			if build.GitSHA != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " (%s)", build.GitSHA)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
