// Package zooclient talks to the api/zoo endpoints of a browze daemon.
package zooclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/shaie/browze/pkg/api"
	"github.com/shaie/browze/pkg/constants"
	"github.com/spf13/viper"
)

// FetchError is a non-2xx reply. Its message is the response body, verbatim.
type FetchError struct {
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return e.Body
}

// Client is a client for the api/zoo endpoints
type Client struct {
	Logger  log.Logger
	Address *url.URL
	Client  *http.Client
}

// NewClient builds a client using a viper instance
func NewClient(logger log.Logger, v *viper.Viper) (*Client, error) {
	addr := v.GetString(constants.FlagAddress)
	if addr == "" {
		addr = constants.DefaultAddress
	}
	address, err := url.ParseRequestURI(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "parse daemon address %s", addr)
	}
	if !strings.HasSuffix(address.Path, "/") {
		address.Path += "/"
	}

	timeout := v.GetDuration(constants.FlagRequestTimeout)
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	return &Client{
		Logger:  logger,
		Address: address,
		Client:  &http.Client{Timeout: timeout},
	}, nil
}

// Browse fetches the node at path. With fullHierarchy the returned tree
// starts at the root.
func (c *Client) Browse(ctx context.Context, path string, fullHierarchy bool) (*api.ZkNode, error) {
	query := url.Values{}
	query.Set("full_hierarchy", strconv.FormatBool(fullHierarchy))

	node := &api.ZkNode{}
	if err := c.get(ctx, "api/zoo/browse/"+escapePath(path), query, node); err != nil {
		return nil, err
	}
	return node, nil
}

// Connect asks the daemon to connect to connectString
func (c *Client) Connect(ctx context.Context, connectString string) (*api.ConnectResult, error) {
	result := &api.ConnectResult{}
	if err := c.get(ctx, "api/zoo/connect/"+url.PathEscape(connectString), nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Status returns the connect string the daemon is connected to
func (c *Client) Status(ctx context.Context) (*api.Status, error) {
	status := &api.Status{}
	if err := c.get(ctx, "api/zoo/status", nil, status); err != nil {
		return nil, err
	}
	return status, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, result interface{}) error {
	debug := level.Debug(log.With(c.Logger, "method", "get", "endpoint", endpoint))

	ref, err := url.Parse(endpoint)
	if err != nil {
		return errors.Wrapf(err, "parse endpoint %s", endpoint)
	}
	target := c.Address.ResolveReference(ref)
	if query != nil {
		target.RawQuery = query.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, target.String(), nil)
	if err != nil {
		return errors.Wrap(err, "create new request")
	}
	req = req.WithContext(ctx)
	req.Header.Set("Accept", "application/json")

	debug.Log("event", "request.send", "url", target.String())
	resp, err := c.Client.Do(req)
	if err != nil {
		return errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		debug.Log("event", "request.fail", "status", resp.StatusCode)
		return &FetchError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return errors.Wrapf(err, "unmarshal response %s", body)
	}
	return nil
}

// escapes every segment of a store path, dropping the leading '/'
func escapePath(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
