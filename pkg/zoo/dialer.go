package zoo

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/shaie/browze/pkg/constants"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	zkScheme   = "zk://"
	fileScheme = "file://"
)

// A Dialer opens a Store for a connect string.
//
//   - "file://<dir>" opens the directory tree under dir
//   - "[zk://]host:port[,host:port...]" opens a ZooKeeper session
type Dialer interface {
	Dial(ctx context.Context, connectString string) (Store, error)
}

// NewDialer builds a Dialer from viper settings, used with dig
func NewDialer(logger log.Logger, fs afero.Afero, v *viper.Viper) Dialer {
	return &dialer{
		Logger:         logger,
		FS:             fs,
		SessionTimeout: durationOr(v.GetDuration(constants.FlagZKSessionTimeout), constants.DefaultZKSessionTimeout),
		ConnectTimeout: durationOr(v.GetDuration(constants.FlagZKConnectTimeout), constants.DefaultZKConnectTimeout),
		Retries:        constants.DefaultZKConnectRetries,
		RetryInterval:  constants.DefaultZKRetryInterval,
	}
}

type dialer struct {
	Logger         log.Logger
	FS             afero.Afero
	SessionTimeout time.Duration
	ConnectTimeout time.Duration
	Retries        uint64
	RetryInterval  time.Duration
}

func (d *dialer) Dial(ctx context.Context, connectString string) (Store, error) {
	debug := level.Debug(log.With(d.Logger, "method", "Dial", "connectString", connectString))

	if connectString == "" {
		return nil, errors.New("empty connect string")
	}

	if strings.HasPrefix(connectString, fileScheme) {
		root := strings.TrimPrefix(connectString, fileScheme)
		if root == "" {
			root = "/"
		}
		isDir, err := d.FS.IsDir(root)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", root)
		}
		if !isDir {
			return nil, errors.Errorf("%s is not a directory", root)
		}
		debug.Log("event", "fsstore.open", "root", root)
		return NewFSStore(d.Logger, d.FS, root, connectString), nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = d.RetryInterval
	retry := backoff.WithContext(backoff.WithMaxRetries(policy, d.Retries), ctx)

	var store *ZKStore
	err := backoff.Retry(func() error {
		var err error
		store, err = DialZK(ctx, d.Logger, connectString, d.SessionTimeout, d.ConnectTimeout)
		if err != nil {
			level.Warn(d.Logger).Log("event", "zk.dial.fail", "connectString", connectString, "err", err)
		}
		return err
	}, retry)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
