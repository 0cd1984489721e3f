package zoo

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/shaie/browze/pkg/testing/logger"
	"github.com/shaie/browze/pkg/testing/tmpfs"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestFSStoreOnDisk(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	fs, dir, cleanup := tmpfs.Tmpfs(t)
	defer cleanup()

	tmpfs.WriteTree(t, fs, "/", map[string]string{
		"a/f":    "payload",
		"a/g":    "",
		"empty/": "",
	})
	req.NoError(os.Symlink(filepath.Join(dir, "a", "f"), filepath.Join(dir, "a", "link")))

	store := NewFSStore(&logger.TestLogger{T: t}, afero.Afero{Fs: afero.NewOsFs()}, dir, "file://"+dir)

	children, err := store.Children(ctx, "/a")
	req.NoError(err)
	req.ElementsMatch([]string{"f", "g"}, children, "symlinks are skipped")

	data, stat, err := store.Get(ctx, "/a/f")
	req.NoError(err)
	req.Equal("payload", string(data))
	req.Equal(int32(7), stat.DataLength)
	req.Equal(int32(0), stat.NumChildren)

	data, stat, err = store.Get(ctx, "/a")
	req.NoError(err)
	req.Equal([]byte{}, data)
	req.Equal(int32(2), stat.NumChildren)

	children, err = store.Children(ctx, "/empty")
	req.NoError(err)
	req.Empty(children)

	_, err = store.Exists(ctx, "/nope")
	req.True(IsNoNode(err))
	req.Equal("file://"+dir, store.ConnectString())
	req.NoError(store.Close())
}

func TestFSStoreSymlinksStayInsideRoot(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	outsideFs, outside, cleanupOutside := tmpfs.Tmpfs(t)
	defer cleanupOutside()
	tmpfs.WriteTree(t, outsideFs, "/", map[string]string{"secret": "s3cret"})

	fs, dir, cleanup := tmpfs.Tmpfs(t)
	defer cleanup()
	tmpfs.WriteTree(t, fs, "/", map[string]string{"a/f": "payload"})
	req.NoError(os.Symlink(outside, filepath.Join(dir, "link")))
	req.NoError(os.Symlink(filepath.Join(outside, "secret"), filepath.Join(dir, "a", "filelink")))

	// the root itself may be a link
	rootLink := filepath.Join(outside, "rootlink")
	req.NoError(os.Symlink(dir, rootLink))

	store := NewFSStore(&logger.TestLogger{T: t}, afero.Afero{Fs: afero.NewOsFs()}, rootLink, "file://"+rootLink)

	children, err := store.Children(ctx, "/")
	req.NoError(err)
	req.Equal([]string{"a"}, children)

	for _, path := range []string{"/link", "/link/secret", "/a/filelink"} {
		_, _, err = store.Get(ctx, path)
		req.True(IsNoNode(err), "get %s: %v", path, err)

		_, err = store.Exists(ctx, path)
		req.True(IsNoNode(err), "exists %s: %v", path, err)

		_, err = store.Children(ctx, path)
		req.True(IsNoNode(err), "children %s: %v", path, err)
	}

	_, err = NewBrowser(&logger.TestLogger{T: t}).Browse(ctx, store, "/link/secret", false)
	req.True(IsNoNode(err), "browse through a link: %v", err)

	data, _, err := store.Get(ctx, "/a/f")
	req.NoError(err)
	req.Equal("payload", string(data))
}

func TestFSStoreCapsPayload(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	fs := afero.Afero{Fs: afero.NewMemMapFs()}
	req.NoError(fs.WriteFile("/zoo/big", []byte("0123456789"), 0644))

	store := NewFSStore(&logger.TestLogger{T: t}, fs, "/zoo", "file:///zoo")
	store.MaxData = 4

	data, stat, err := store.Get(ctx, "/big")
	req.NoError(err)
	req.Equal("0123", string(data))
	req.Equal(int32(10), stat.DataLength)
}

func TestDataLength(t *testing.T) {
	tests := []struct {
		name   string
		size   int64
		expect int32
	}{
		{name: "empty", size: 0, expect: 0},
		{name: "small", size: 7, expect: 7},
		{name: "largest", size: math.MaxInt32, expect: math.MaxInt32},
		{name: "two gib", size: 1 << 31, expect: math.MaxInt32},
		{name: "huge", size: 1 << 40, expect: math.MaxInt32},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expect, dataLength(test.size))
		})
	}
}
