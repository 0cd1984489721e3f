// Package integration runs a daemon over a directory store and drives it
// through the REST client and the navigator, end to end.
package integration

import (
	"io"
	"net/http/httptest"

	"github.com/ghodss/yaml"
	"github.com/go-kit/kit/log"
	"github.com/mitchellh/cli"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/shaie/browze/pkg/api"
	"github.com/shaie/browze/pkg/constants"
	"github.com/shaie/browze/pkg/daemon"
	"github.com/shaie/browze/pkg/fs"
	"github.com/shaie/browze/pkg/navigator"
	"github.com/shaie/browze/pkg/zoo"
	"github.com/shaie/browze/pkg/zooclient"
	"github.com/spf13/viper"
)

// Env is a served daemon plus a client side pointed at it
type Env struct {
	Server    *httptest.Server
	Daemon    *daemon.Daemon
	Client    *zooclient.Client
	Navigator *navigator.Navigator
}

// NewEnv starts a disconnected daemon on a local port
func NewEnv(out io.Writer) (*Env, error) {
	logger := log.NewLogfmtLogger(out)
	ui := &cli.BasicUi{Writer: out, ErrorWriter: out}
	v := viper.New()

	d := daemon.NewDaemon(logger, v, ui, zoo.NewDialer(logger, fs.NewBaseFilesystem(), v), zoo.NewBrowser(logger))
	server := httptest.NewServer(d.Handler())

	v.Set(constants.FlagAddress, server.URL+"/")
	client, err := zooclient.NewClient(logger, v)
	if err != nil {
		server.Close()
		return nil, errors.Wrap(err, "build client")
	}

	return &Env{
		Server:    server,
		Daemon:    d,
		Client:    client,
		Navigator: navigator.NewNavigator(logger, navigator.NewHistory(), navigator.NewReconciler(logger, client)),
	}, nil
}

// Close stops the server
func (e *Env) Close() {
	e.Server.Close()
}

// DiffTrees returns a unified diff of the yaml renderings of two trees, or
// "" when they are the same.
func DiffTrees(expected, actual *api.Node) (string, error) {
	expectedYAML, err := yaml.Marshal(expected)
	if err != nil {
		return "", errors.Wrap(err, "marshal expected")
	}
	actualYAML, err := yaml.Marshal(actual)
	if err != nil {
		return "", errors.Wrap(err, "marshal actual")
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(expectedYAML)),
		B:        difflib.SplitLines(string(actualYAML)),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
