package zooapi

import (
	"fmt"
	"os"
	"path"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/pact-foundation/pact-go/dsl"
	"github.com/shaie/browze/pkg/constants"
	"github.com/shaie/browze/pkg/zooclient"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

var (
	pact dsl.Pact
)

func TestMain(m *testing.M) {
	pact = createPact()

	pact.Setup(true)

	code := m.Run()

	pact.WritePact()
	pact.Teardown()

	os.Exit(code)
}

func createPact() dsl.Pact {
	dir, _ := os.Getwd()

	pactDir := path.Join(dir, "..", "..", "pacts")
	logDir := path.Join(dir, "..", "..", "logs")

	return dsl.Pact{
		Consumer: "browze-client",
		Provider: "browze-daemon",
		LogDir:   logDir,
		PactDir:  pactDir,
		LogLevel: "debug",
		Host:     "0.0.0.0",
	}
}

// newClient points a client at the pact mock server
func newClient(t *testing.T) *zooclient.Client {
	v := viper.New()
	v.Set(constants.FlagAddress, fmt.Sprintf("http://localhost:%d/", pact.Server.Port))

	client, err := zooclient.NewClient(log.NewNopLogger(), v)
	require.NoError(t, err)
	return client
}
