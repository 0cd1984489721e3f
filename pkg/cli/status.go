package cli

import (
	"context"

	"github.com/shaie/browze/pkg/browze"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Status() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show what the daemon is connected to",
		PreRun: func(cmd *cobra.Command, args []string) {
			bindFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := browze.GetClient(viper.GetViper())
			if err != nil {
				return err
			}

			status, err := client.Client.Status(context.Background())
			if err != nil {
				client.UI.Error(err.Error())
				return err
			}
			if status.ConnectString == nil {
				client.UI.Warn("not connected")
				return nil
			}
			client.UI.Output(*status.ConnectString)
			return nil
		},
	}
	return cmd
}
