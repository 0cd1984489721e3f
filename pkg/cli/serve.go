package cli

import (
	"context"

	"github.com/shaie/browze/pkg/browze"
	"github.com/shaie/browze/pkg/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the api/zoo endpoints",
		Long: `Serve connect, status and browse over HTTP. The daemon starts disconnected
unless --connect is given. Connect strings are host:port[,host:port] for a
ZooKeeper ensemble, or file://<dir> to browse a directory.`,
		PreRun: func(cmd *cobra.Command, args []string) {
			bindFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := browze.GetServer(viper.GetViper())
			if err != nil {
				return err
			}
			return server.Daemon.Serve(context.Background())
		},
	}

	cmd.Flags().Int(constants.FlagAPIPort, constants.DefaultAPIPort, "port to serve the api on")
	cmd.Flags().String(constants.FlagConnect, "", "connect string to dial at startup")
	cmd.Flags().Duration(constants.FlagZKSessionTimeout, constants.DefaultZKSessionTimeout, "ZooKeeper session timeout")
	cmd.Flags().Duration(constants.FlagZKConnectTimeout, constants.DefaultZKConnectTimeout, "how long to wait for a ZooKeeper session")

	return cmd
}
