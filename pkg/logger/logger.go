package logger

import (
	"fmt"
	"io"
	golog "log"
	"os"
	"path/filepath"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-stack/stack"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/shaie/browze/pkg/constants"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

type compositeLogger struct {
	loggers []log.Logger
}

func (c *compositeLogger) Log(keyvals ...interface{}) error {
	var multiErr *multierror.Error
	for _, logger := range c.loggers {
		if err := logger.Log(keyvals...); err != nil {
			multiErr = multierror.Append(multiErr, err)
		}
	}
	return multiErr.ErrorOrNil()
}

// FromViper builds a logger from env using viper. Records go to stderr at
// the configured level and, unless log-file is empty, to a debug log file
// at debug level.
func FromViper(v *viper.Viper, fs afero.Afero) log.Logger {
	return New(v, fs, os.Stderr)
}

// New is FromViper with an explicit console writer
func New(v *viper.Viper, fs afero.Afero, console io.Writer) log.Logger {
	fullPathCaller := pathCaller(6)
	format := v.GetString(constants.FlagLogFormat)

	var consoleLogger log.Logger //nolint:gosimple
	consoleLogger = withFormat(format, console)
	consoleLogger = log.With(consoleLogger, "ts", log.DefaultTimestampUTC)
	consoleLogger = log.With(consoleLogger, "caller", fullPathCaller)
	consoleLogger = withLevel(consoleLogger, v.GetString(constants.FlagLogLevel))

	debugLogFile := v.GetString(constants.FlagLogFile)
	if debugLogFile == "" {
		golog.SetOutput(log.NewStdlibAdapter(level.Debug(consoleLogger)))
		return consoleLogger
	}

	debugLogWriter, err := createLogFile(fs, debugLogFile)
	if err != nil {
		level.Warn(consoleLogger).Log("msg", "failed to initialize debug log file", "path", debugLogFile, "error", err)
		golog.SetOutput(log.NewStdlibAdapter(level.Debug(consoleLogger)))
		return consoleLogger
	}

	var debugLogger log.Logger
	debugLogger = withFormat(format, debugLogWriter)
	debugLogger = log.With(debugLogger, "ts", log.DefaultTimestampUTC)
	debugLogger = log.With(debugLogger, "caller", fullPathCaller)
	debugLogger = withLevel(debugLogger, "debug")

	realLogger := &compositeLogger{
		loggers: []log.Logger{
			consoleLogger,
			debugLogger,
		},
	}

	golog.SetOutput(log.NewStdlibAdapter(level.Debug(realLogger)))
	return realLogger
}

func createLogFile(fs afero.Afero, name string) (afero.File, error) {
	if err := fs.RemoveAll(name); err != nil {
		return nil, err
	}
	if err := fs.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return nil, err
	}
	return fs.Create(name)
}

func withFormat(format string, w io.Writer) log.Logger {
	switch format {
	case "json":
		return log.NewJSONLogger(w)
	case "logfmt":
		return log.NewLogfmtLogger(w)
	default:
		return log.NewLogfmtLogger(w)
	}
}

func withLevel(logger log.Logger, lvl string) log.Logger {
	switch lvl {
	case "debug":
		return level.NewFilter(logger, level.AllowDebug())
	case "info":
		return level.NewFilter(logger, level.AllowInfo())
	case "warn":
		return level.NewFilter(logger, level.AllowWarn())
	case "error":
		return level.NewFilter(logger, level.AllowError())
	case "off", "":
		return level.NewFilter(logger, level.AllowNone())
	default:
		logger.Log("msg", "Unknown log level, using debug", "received", lvl)
		return level.NewFilter(logger, level.AllowDebug())
	}
}

func pathCaller(depth int) log.Valuer {
	return func() interface{} {
		return fmt.Sprintf("%+s", stack.Caller(depth))
	}
}
