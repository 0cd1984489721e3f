package cli

import (
	"context"

	"github.com/shaie/browze/pkg/browze"
	"github.com/shaie/browze/pkg/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Browse() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [path]",
		Short: "Browse the tree in the terminal",
		Long:  `Open an interactive tree view of the store the daemon is connected to.`,
		Args:  cobra.MaximumNArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			bindFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := browze.GetClient(viper.GetViper())
			if err != nil {
				return err
			}

			start := ""
			if len(args) == 1 {
				start = args[0]
			}
			ctx := context.Background()
			return tui.Run(ctx, tui.NewModel(ctx, client.Logger, client.Navigator, start))
		},
	}
	return cmd
}
