package cli

import (
	"context"

	"github.com/shaie/browze/pkg/browze"
	"github.com/shaie/browze/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Connect() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect [connectString]",
		Short: "Point the daemon at a store",
		Long: `Ask the daemon to close its current connection and connect to connectString,
` + constants.DefaultZKHost + ` when omitted.`,
		Args: cobra.MaximumNArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			bindFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := browze.GetClient(viper.GetViper())
			if err != nil {
				return err
			}

			connectString := constants.DefaultZKHost
			if len(args) == 1 {
				connectString = args[0]
			}
			result, err := client.Client.Connect(context.Background(), connectString)
			if err != nil {
				client.UI.Error(err.Error())
				return err
			}
			client.UI.Info(result.Msg)
			return nil
		},
	}
	return cmd
}
