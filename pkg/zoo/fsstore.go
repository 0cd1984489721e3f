package zoo

import (
	"context"
	"io"
	"io/ioutil"
	"math"
	"os"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/shaie/browze/pkg/api"
	"github.com/shaie/browze/pkg/zkpath"
	"github.com/spf13/afero"
)

// DefaultMaxData caps the payload read from a file, matching the default
// znode size limit of ZooKeeper.
const DefaultMaxData = 1 << 20

// FSStore presents a directory tree as a store. Directories are nodes with
// children and an empty payload, regular files are leaves whose payload is
// the file contents, truncated to MaxData bytes. Symlinks are skipped: they
// are not listed as children and a path through one does not exist.
type FSStore struct {
	Logger        log.Logger
	FS            afero.Afero
	MaxData       int64
	connectString string
}

var _ Store = &FSStore{}

// NewFSStore builds a store rooted at root within fs
func NewFSStore(logger log.Logger, fs afero.Afero, root string, connectString string) *FSStore {
	return &FSStore{
		Logger:        logger,
		FS:            afero.Afero{Fs: afero.NewBasePathFs(fs.Fs, root)},
		MaxData:       DefaultMaxData,
		connectString: connectString,
	}
}

func (s *FSStore) Get(ctx context.Context, path string) ([]byte, *api.Stat, error) {
	info, err := s.lstat(path)
	if err != nil {
		return nil, nil, err
	}

	if info.IsDir() {
		stat, err := s.stat(path, info)
		if err != nil {
			return nil, nil, err
		}
		return []byte{}, stat, nil
	}

	data, err := s.readFile(path)
	if err != nil {
		return nil, nil, err
	}
	stat, err := s.stat(path, info)
	if err != nil {
		return nil, nil, err
	}
	return data, stat, nil
}

func (s *FSStore) Exists(ctx context.Context, path string) (*api.Stat, error) {
	info, err := s.lstat(path)
	if err != nil {
		return nil, err
	}
	return s.stat(path, info)
}

func (s *FSStore) Children(ctx context.Context, path string) ([]string, error) {
	info, err := s.lstat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{}, nil
	}

	files, err := s.FS.ReadDir(path)
	if err != nil {
		return nil, fsError(err, "read dir %s", path)
	}

	names := make([]string, 0, len(files))
	for _, file := range files {
		// no thanks
		if isSymlink(file) {
			level.Debug(s.Logger).Log("event", "symlink.skip", "path", path, "file", file.Name())
			continue
		}
		names = append(names, file.Name())
	}
	return names, nil
}

func (s *FSStore) ConnectString() string {
	return s.connectString
}

func (s *FSStore) Close() error {
	return nil
}

func (s *FSStore) stat(path string, info os.FileInfo) (*api.Stat, error) {
	mtime := info.ModTime().UnixNano() / int64(1e6)
	stat := &api.Stat{
		Ctime: mtime,
		Mtime: mtime,
	}
	if !info.IsDir() {
		stat.DataLength = dataLength(info.Size())
		return stat, nil
	}

	children, err := s.Children(context.Background(), path)
	if err != nil {
		return nil, err
	}
	stat.NumChildren = int32(len(children))
	return stat, nil
}

// lstat stats path without following links. A symlink on any component of
// path reads as ErrNoNode, so a link never leads out of the root.
func (s *FSStore) lstat(path string) (os.FileInfo, error) {
	// the root itself may be reached through a link
	info, err := s.FS.Stat(zkpath.Root)
	if err != nil {
		return nil, fsError(err, "stat %s", zkpath.Root)
	}

	lstater, ok := s.FS.Fs.(afero.Lstater)
	if !ok {
		info, err = s.FS.Stat(path)
		if err != nil {
			return nil, fsError(err, "stat %s", path)
		}
		return info, nil
	}

	current := zkpath.Root
	for _, label := range zkpath.SplitTrim(path, "/") {
		if label == "" {
			continue
		}
		current = zkpath.MakePath(current, label)
		info, _, err = lstater.LstatIfPossible(current)
		if err != nil {
			return nil, fsError(err, "lstat %s", current)
		}
		if isSymlink(info) {
			level.Debug(s.Logger).Log("event", "symlink.refuse", "path", path, "link", current)
			return nil, ErrNoNode
		}
	}
	return info, nil
}

func (s *FSStore) readFile(path string) ([]byte, error) {
	file, err := s.FS.Open(path)
	if err != nil {
		return nil, fsError(err, "open %s", path)
	}
	defer file.Close()

	limit := s.MaxData
	if limit <= 0 {
		limit = DefaultMaxData
	}
	data, err := ioutil.ReadAll(io.LimitReader(file, limit))
	if err != nil {
		return nil, errors.Wrapf(err, "read file %s", path)
	}
	return data, nil
}

// file sizes past what the stat field holds are clamped
func dataLength(size int64) int32 {
	if size > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(size)
}

func isSymlink(file os.FileInfo) bool {
	return file.Mode()&os.ModeSymlink != 0
}

func fsError(err error, format string, args ...interface{}) error {
	if os.IsNotExist(err) {
		return ErrNoNode
	}
	return errors.Wrapf(err, format, args...)
}
