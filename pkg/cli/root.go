package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shaie/browze/pkg/constants"
	"github.com/shaie/browze/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// RootCmd represents the base command when called without any subcommands
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browze",
		Short: "browse a ZooKeeper tree",
		Long: `browze serves a ZooKeeper ensemble, or a directory standing in for one,
over a small REST API, and browses it from the terminal.
`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			version.Init()
		},
	}
	cobra.OnInitialize(initConfig)

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .browze/browze.yaml)")
	cmd.PersistentFlags().String(constants.FlagLogLevel, "off", "Log level")
	cmd.PersistentFlags().String(constants.FlagLogFormat, "logfmt", "Log format, logfmt or json")
	cmd.PersistentFlags().String(constants.FlagLogFile, "", fmt.Sprintf("Also write a debug log to this file, e.g. %s", constants.BrowzePathInternalLog))
	cmd.PersistentFlags().String(constants.FlagAddress, constants.DefaultAddress, "Address of the browze daemon")
	cmd.PersistentFlags().Duration(constants.FlagRequestTimeout, constants.DefaultRequestTimeout, "Timeout of a single request to the daemon")
	cmd.PersistentFlags().Bool(constants.FlagNoColor, false, "Disable colored output")
	cmd.PersistentFlags().Bool(constants.FlagForceColor, false, "Force colored output")

	_ = viper.BindPFlags(cmd.Flags())
	_ = viper.BindPFlags(cmd.PersistentFlags())

	cmd.AddCommand(Serve())
	cmd.AddCommand(Browse())
	cmd.AddCommand(Get())
	cmd.AddCommand(Connect())
	cmd.AddCommand(Status())
	cmd.AddCommand(Version())
	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig reads in .env, config file and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(constants.EnvFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "Failed to load", constants.EnvFile, err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(constants.BrowzePathInternal)
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/" + constants.BrowzePathInternal)
		}
		viper.SetConfigName(constants.ConfigName)
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func bindFlags(cmd *cobra.Command) {
	_ = viper.BindPFlags(cmd.Flags())
	_ = viper.BindPFlags(cmd.PersistentFlags())
}
