package constants

const (
	// FlagAPIPort is the port the daemon listens on
	FlagAPIPort = "api-port"
	// FlagConnect is a connect string the daemon dials at startup
	FlagConnect = "connect"
	// FlagAddress is the base URL of a running daemon, used by the client commands
	FlagAddress = "address"
	// FlagLogLevel is the stdout log level
	FlagLogLevel = "log-level"
	// FlagLogFormat is logfmt or json
	FlagLogFormat = "log-format"
	// FlagLogFile enables the debug log file
	FlagLogFile = "log-file"
	// FlagZKSessionTimeout is the ZooKeeper session timeout
	FlagZKSessionTimeout = "zk-session-timeout"
	// FlagZKConnectTimeout bounds the wait for a ZooKeeper session
	FlagZKConnectTimeout = "zk-connect-timeout"
	// FlagRequestTimeout bounds a single REST call made by the client
	FlagRequestTimeout = "request-timeout"
	// FlagOutput selects the output format of the get command
	FlagOutput = "output"
	// FlagFullHierarchy asks the get command for the root-to-target tree
	FlagFullHierarchy = "full-hierarchy"
	// FlagNoColor disables colored output
	FlagNoColor = "no-color"
	// FlagForceColor forces colored output
	FlagForceColor = "force-color"
)
