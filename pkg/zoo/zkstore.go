package zoo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-zookeeper/zk"
	"github.com/pkg/errors"
	"github.com/shaie/browze/pkg/api"
)

// ZKStore is a Store backed by a ZooKeeper ensemble
type ZKStore struct {
	Logger        log.Logger
	Conn          *zk.Conn
	connectString string
}

var _ Store = &ZKStore{}

// DialZK opens a session against the ensemble in connectString and blocks
// until the session is established or timeout expires.
func DialZK(ctx context.Context, logger log.Logger, connectString string, sessionTimeout, timeout time.Duration) (*ZKStore, error) {
	debug := level.Debug(log.With(logger, "method", "DialZK"))

	servers := strings.Split(strings.TrimPrefix(connectString, zkScheme), ",")
	debug.Log("event", "zk.connect", "servers", strings.Join(servers, ","))
	conn, events, err := zk.Connect(servers, sessionTimeout, zk.WithLogger(printfLogger{debug}))
	if err != nil {
		return nil, errors.Wrapf(err, "connect to %s", connectString)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil, errors.Errorf("connection to %s closed", connectString)
			}
			debug.Log("event", "zk.state", "state", event.State.String())
			if event.State == zk.StateHasSession {
				go drain(debug, events)
				return &ZKStore{Logger: logger, Conn: conn, connectString: connectString}, nil
			}
		case <-timer.C:
			conn.Close()
			return nil, errors.Errorf("Failed to establish connection with ZooKeeper at [%s] for %s", connectString, timeout)
		case <-ctx.Done():
			conn.Close()
			return nil, errors.Wrap(ctx.Err(), "wait for zk session")
		}
	}
}

// the event channel is closed by Conn.Close
func drain(debug log.Logger, events <-chan zk.Event) {
	for event := range events {
		debug.Log("event", "zk.state", "state", event.State.String(), "path", event.Path)
	}
}

func (s *ZKStore) Get(ctx context.Context, path string) ([]byte, *api.Stat, error) {
	data, stat, err := s.Conn.Get(path)
	if err != nil {
		return nil, nil, zkError(err, "get %s", path)
	}
	return data, fromZKStat(stat), nil
}

func (s *ZKStore) Exists(ctx context.Context, path string) (*api.Stat, error) {
	exists, stat, err := s.Conn.Exists(path)
	if err != nil {
		return nil, zkError(err, "exists %s", path)
	}
	if !exists {
		return nil, ErrNoNode
	}
	return fromZKStat(stat), nil
}

func (s *ZKStore) Children(ctx context.Context, path string) ([]string, error) {
	children, _, err := s.Conn.Children(path)
	if err != nil {
		return nil, zkError(err, "children %s", path)
	}
	return children, nil
}

func (s *ZKStore) ConnectString() string {
	return s.connectString
}

func (s *ZKStore) Close() error {
	s.Conn.Close()
	return nil
}

func zkError(err error, format string, args ...interface{}) error {
	if err == zk.ErrNoNode {
		return ErrNoNode
	}
	return errors.Wrapf(err, format, args...)
}

func fromZKStat(stat *zk.Stat) *api.Stat {
	if stat == nil {
		return nil
	}
	return &api.Stat{
		Czxid:          stat.Czxid,
		Mzxid:          stat.Mzxid,
		Ctime:          stat.Ctime,
		Mtime:          stat.Mtime,
		Version:        stat.Version,
		Cversion:       stat.Cversion,
		Aversion:       stat.Aversion,
		EphemeralOwner: stat.EphemeralOwner,
		DataLength:     stat.DataLength,
		NumChildren:    stat.NumChildren,
		Pzxid:          stat.Pzxid,
	}
}

type printfLogger struct {
	logger log.Logger
}

func (p printfLogger) Printf(format string, args ...interface{}) {
	p.logger.Log("msg", fmt.Sprintf(format, args...))
}
