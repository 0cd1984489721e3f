package constants

import (
	"path"
	"time"
)

const (
	// BrowzePathInternal is the default folder for browze's own files
	BrowzePathInternal = ".browze"
	// ConfigName is the config file name, without extension, looked up by viper
	ConfigName = "browze"
	// EnvPrefix prefixes every environment variable read by viper
	EnvPrefix = "BROWZE"
	// EnvFile is loaded into the environment when present
	EnvFile = ".env"
)

var (
	// BrowzePathInternalLog is the debug log file written when --log-file is set
	BrowzePathInternalLog = path.Join(BrowzePathInternal, "debug.log")
)

const (
	// DefaultAPIPort is the port the daemon serves on
	DefaultAPIPort = 8800
	// DefaultAddress is where the client commands look for a daemon
	DefaultAddress = "http://localhost:8800/"
	// DefaultZKHost is the ensemble used when no connect string is given
	DefaultZKHost = "127.0.0.1:2181"
	// DefaultZKSessionTimeout is the ZooKeeper session timeout
	DefaultZKSessionTimeout = 30 * time.Second
	// DefaultZKConnectTimeout bounds a single wait for a ZooKeeper session
	DefaultZKConnectTimeout = 10 * time.Second
	// DefaultZKConnectRetries is how many times a failed dial is retried
	DefaultZKConnectRetries = 3
	// DefaultZKRetryInterval is the first backoff interval between dials
	DefaultZKRetryInterval = time.Second
	// DefaultRequestTimeout bounds a single REST call made by the client
	DefaultRequestTimeout = 30 * time.Second
)
