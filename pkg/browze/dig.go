// Package browze wires the server and client components together.
package browze

import (
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/mitchellh/cli"
	"github.com/pkg/errors"
	"github.com/shaie/browze/pkg/daemon"
	"github.com/shaie/browze/pkg/fs"
	"github.com/shaie/browze/pkg/logger"
	"github.com/shaie/browze/pkg/navigator"
	"github.com/shaie/browze/pkg/ui"
	"github.com/shaie/browze/pkg/zoo"
	"github.com/shaie/browze/pkg/zooclient"
	"github.com/spf13/viper"
	"go.uber.org/dig"
)

func buildInjector(v *viper.Viper) (*dig.Container, error) {
	providers := []interface{}{
		func() *viper.Viper { return v },
		logger.FromViper,
		ui.FromViper,
		fs.NewBaseFilesystem,

		zoo.NewDialer,
		zoo.NewBrowser,
		daemon.NewDaemon,

		zooclient.NewClient,
		func(c *zooclient.Client) navigator.Fetcher { return c },
		navigator.NewReconciler,
		navigator.NewHistory,
		navigator.NewNavigator,
	}

	container := dig.New()

	for _, provider := range providers {
		err := container.Provide(provider)
		if err != nil {
			return nil, errors.Wrap(err, "register providers")
		}
	}

	return container, nil
}

// Server is everything `browze serve` needs
type Server struct {
	dig.In

	Logger log.Logger
	Daemon *daemon.Daemon
}

// Client is everything the client commands need
type Client struct {
	dig.In

	Logger    log.Logger
	Viper     *viper.Viper
	UI        cli.Ui
	Client    *zooclient.Client
	Navigator *navigator.Navigator
}

// GetServer resolves a Server from v
func GetServer(v *viper.Viper) (*Server, error) {
	var server *Server
	err := resolve(v, func(s Server) {
		server = &s
	})
	return server, err
}

// GetClient resolves a Client from v
func GetClient(v *viper.Viper) (*Client, error) {
	var client *Client
	err := resolve(v, func(c Client) {
		client = &c
	})
	return client, err
}

func resolve(v *viper.Viper, fn interface{}) error {
	// who injects the injectors?
	debug := log.With(level.Debug(logger.FromViper(v, fs.NewBaseFilesystem())), "component", "injector", "phase", "instance.get")

	debug.Log("event", "injector.build")
	injector, err := buildInjector(v)
	if err != nil {
		debug.Log("event", "injector.build.fail", "error", err)
		return errors.Wrap(err, "build injector")
	}

	debug.Log("event", "injector.invoke")
	if err := injector.Invoke(fn); err != nil {
		debug.Log("event", "injector.invoke.fail", "err", err)
		return errors.Wrap(err, "resolve dependencies")
	}
	return nil
}
