// Package zoo serves browse requests out of a hierarchical store.
package zoo

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shaie/browze/pkg/api"
)

var (
	// ErrNoNode is returned when a path does not exist in the store
	ErrNoNode = errors.New("node does not exist")

	// ErrNotConnected is returned by browse calls made before any connect
	ErrNotConnected = errors.New("Must first /connect to ZK!")
)

//go:generate mockgen -destination=../test-mocks/zoo/store_mock.go -package=zoo github.com/shaie/browze/pkg/zoo Store

// A Store is a read-only view of a hierarchical key/value store.
// Paths are absolute and clean; the root is "/".
type Store interface {
	Get(ctx context.Context, path string) ([]byte, *api.Stat, error)
	Exists(ctx context.Context, path string) (*api.Stat, error)
	Children(ctx context.Context, path string) ([]string, error)
	ConnectString() string
	Close() error
}

// IsNoNode reports whether err, or its cause, is ErrNoNode
func IsNoNode(err error) bool {
	return errors.Cause(err) == ErrNoNode
}
