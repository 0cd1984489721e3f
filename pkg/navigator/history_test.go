package navigator

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestHistory(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	h := NewHistory()

	seen := []string{}
	h.Listen(func(ctx context.Context, path string) error {
		seen = append(seen, path)
		return nil
	})

	req.NoError(h.Push(ctx, "/a"))
	req.NoError(h.Push(ctx, "/a"))
	req.NoError(h.Push(ctx, "/a/b"))
	req.Equal([]string{"/a", "/a/b"}, seen)

	moved, err := h.Back(ctx)
	req.NoError(err)
	req.True(moved)
	req.Equal("/a", h.Path())

	// a push drops the forward stack
	req.NoError(h.Push(ctx, "/c"))
	moved, err = h.Forward(ctx)
	req.NoError(err)
	req.False(moved)

	h.Replace("/d")
	req.Equal("/d", h.Path())
	req.Equal([]string{"/a", "/a/b", "/a", "/c"}, seen, "replace does not notify")

	req.NoError(h.Redirect(ctx, "/e"))
	req.Equal("/e", seen[len(seen)-1])

	moved, err = h.Back(ctx)
	req.NoError(err)
	req.True(moved)
	req.Equal("/a", h.Path())
}

func TestHistoryListenerErrors(t *testing.T) {
	req := require.New(t)
	h := NewHistory()
	h.Listen(func(ctx context.Context, path string) error { return errors.New("first") })
	h.Listen(func(ctx context.Context, path string) error { return nil })
	h.Listen(func(ctx context.Context, path string) error { return errors.New("second") })

	err := h.Push(context.Background(), "/x")
	req.Error(err)
	req.Contains(err.Error(), "first")
	req.Contains(err.Error(), "second")
	req.Equal("/x", h.Path())
}

func TestHistorySingleListenerError(t *testing.T) {
	req := require.New(t)
	h := NewHistory()
	cause := errors.New("Path not found in ZooKeeper: /x")
	h.Listen(func(ctx context.Context, path string) error { return cause })

	req.Equal(cause, h.Push(context.Background(), "/x"))
}
