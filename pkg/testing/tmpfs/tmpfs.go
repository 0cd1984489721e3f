// Package tmpfs hands out real on-disk filesystems for tests that need what
// afero's MemMapFs cannot do, like symlinks, or that share the directory
// with another process.
package tmpfs

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Tmpdir creates a temporary directory and a func that removes it
func Tmpdir(t require.TestingT) (string, func()) {
	req := require.New(t)
	d, err := ioutil.TempDir("", "browzetest")
	req.NoError(err)

	return d, func() {
		os.RemoveAll(d)
	}
}

// Tmpfs is Tmpdir as a filesystem rooted at the directory
func Tmpfs(t require.TestingT) (afero.Afero, string, func()) {
	dir, cleanup := Tmpdir(t)
	fs := afero.Afero{
		Fs: afero.NewBasePathFs(afero.NewOsFs(), dir),
	}
	return fs, dir, cleanup
}

// WriteTree creates files under root. Keys ending in "/" are directories,
// every other key is a file with the value as contents.
func WriteTree(t require.TestingT, fs afero.Afero, root string, files map[string]string) {
	req := require.New(t)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		full := filepath.Join(root, name)
		if strings.HasSuffix(name, "/") {
			req.NoError(fs.MkdirAll(full, 0755))
			continue
		}
		req.NoError(fs.MkdirAll(filepath.Dir(full), 0755))
		req.NoError(fs.WriteFile(full, []byte(files[name]), 0644))
	}
}
