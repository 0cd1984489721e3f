package daemon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-test/deep"
	"github.com/mitchellh/cli"
	"github.com/shaie/browze/pkg/api"
	"github.com/shaie/browze/pkg/testing/logger"
	"github.com/shaie/browze/pkg/zoo"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func initTestDaemon(t *testing.T) *Daemon {
	req := require.New(t)
	fs := afero.Afero{Fs: afero.NewMemMapFs()}
	req.NoError(fs.MkdirAll("/zoo/a", 0755))
	req.NoError(fs.WriteFile("/zoo/a/b", []byte("hello"), 0644))
	req.NoError(fs.WriteFile("/zoo/c", []byte("see"), 0644))

	log := &logger.TestLogger{T: t}
	v := viper.New()
	return NewDaemon(log, v, cli.NewMockUi(), zoo.NewDialer(log, fs, v), zoo.NewBrowser(log))
}

func get(t *testing.T, d *Daemon, url string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request, err := http.NewRequest("GET", url, nil)
	require.NoError(t, err)
	d.Handler().ServeHTTP(recorder, request)
	return recorder
}

func TestBrowseBeforeConnect(t *testing.T) {
	req := require.New(t)
	d := initTestDaemon(t)

	resp := get(t, d, "/api/zoo/browse/a")
	req.Equal(500, resp.Code)
	req.Equal("Must first /connect to ZK!", resp.Body.String())
	req.Contains(resp.Header().Get("Content-Type"), "text/plain")

	resp = get(t, d, "/api/zoo/status")
	req.Equal(200, resp.Code)
	req.JSONEq(`{"connectString":null}`, resp.Body.String())
}

func TestConnectAndStatus(t *testing.T) {
	req := require.New(t)
	d := initTestDaemon(t)

	resp := get(t, d, "/api/zoo/connect/file:%2F%2F%2Fzoo")
	req.Equal(200, resp.Code)
	req.JSONEq(`{"msg":"Successfully connected to ZooKeeper at file:///zoo"}`, resp.Body.String())

	resp = get(t, d, "/api/zoo/status")
	req.Equal(200, resp.Code)
	req.JSONEq(`{"connectString":"file:///zoo"}`, resp.Body.String())

	resp = get(t, d, "/api/zoo/connect/file:%2F%2F%2Fmissing")
	req.Equal(500, resp.Code)

	// the failed connect dropped the previous store
	resp = get(t, d, "/api/zoo/status")
	req.JSONEq(`{"connectString":null}`, resp.Body.String())
}

func TestBrowseRoutes(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		expectStatus int
		expectTree   *api.Node
		expectData   interface{}
		expectBody   string
	}{
		{
			name:         "shallow leaf",
			url:          "/api/zoo/browse/a/b?full_hierarchy=false",
			expectStatus: 200,
			expectTree:   &api.Node{Label: "b", Parent: "/a", Leaf: true},
			expectData:   "hello",
		},
		{
			name:         "default is shallow",
			url:          "/api/zoo/browse/a",
			expectStatus: 200,
			expectTree: &api.Node{Label: "a", Parent: "/", Children: []*api.Node{
				{Label: "b", Parent: "/a", Leaf: true},
			}},
			expectData: "",
		},
		{
			name:         "full hierarchy",
			url:          "/api/zoo/browse/a/b?full_hierarchy=true",
			expectStatus: 200,
			expectTree: &api.Node{Label: "/", Children: []*api.Node{
				{Label: "a", Parent: "/", Children: []*api.Node{
					{Label: "b", Parent: "/a", Leaf: true},
				}},
				{Label: "c", Parent: "/", Leaf: true},
			}},
			expectData: "hello",
		},
		{
			name:         "not found",
			url:          "/api/zoo/browse/nope/",
			expectStatus: 404,
			expectBody:   "Path not found in ZooKeeper: /nope",
		},
		{
			name:         "bad query",
			url:          "/api/zoo/browse/a?full_hierarchy=maybe",
			expectStatus: 400,
			expectBody:   "invalid full_hierarchy: maybe",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := require.New(t)
			d := initTestDaemon(t)
			req.NoError(d.Connect(context.Background(), "file:///zoo"))

			resp := get(t, d, test.url)
			req.Equal(test.expectStatus, resp.Code, resp.Body.String())

			if test.expectTree == nil {
				req.Equal(test.expectBody, resp.Body.String())
				return
			}

			var node api.ZkNode
			req.NoError(json.Unmarshal(resp.Body.Bytes(), &node))
			if diff := deep.Equal(test.expectTree, node.Tree); diff != nil {
				t.Fatal(diff)
			}
			req.Equal(test.expectData, node.Data)
		})
	}
}

func TestHealthz(t *testing.T) {
	req := require.New(t)
	resp := get(t, initTestDaemon(t), "/healthz")
	req.Equal(200, resp.Code)
	req.Contains(resp.Body.String(), "version")
}

// dials the wrapped dialer once release is closed
type gatedDialer struct {
	zoo.Dialer
	started chan struct{}
	release chan struct{}
}

func (g *gatedDialer) Dial(ctx context.Context, connectString string) (zoo.Store, error) {
	close(g.started)
	<-g.release
	return g.Dialer.Dial(ctx, connectString)
}

func TestStatusServedWhileDialing(t *testing.T) {
	req := require.New(t)
	d := initTestDaemon(t)
	req.NoError(d.Connect(context.Background(), "file:///zoo"))

	gated := &gatedDialer{
		Dialer:  d.Dialer,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	d.Dialer = gated

	done := make(chan error, 1)
	go func() {
		done <- d.Connect(context.Background(), "file:///zoo/a")
	}()
	<-gated.started

	statusDone := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		statusDone <- get(t, d, "/api/zoo/status")
	}()

	select {
	case resp := <-statusDone:
		req.Equal(200, resp.Code)
		req.JSONEq(`{"connectString":"file:///zoo"}`, resp.Body.String())
	case <-time.After(5 * time.Second):
		close(gated.release)
		t.Fatal("status blocked on a pending connect")
	}

	close(gated.release)
	req.NoError(<-done)

	resp := get(t, d, "/api/zoo/status")
	req.JSONEq(`{"connectString":"file:///zoo/a"}`, resp.Body.String())
}
