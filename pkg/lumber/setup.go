// Package lumber is the logging facade of covlens. It hides the concrete
// logging backend behind the Logger interface so the binary can switch
// between the zap and logrus implementations through configuration.
package lumber

import "github.com/covlens/covlens/pkg/errs"

// LoggingConfig stores the config for the logger.
// Backends that support a single level across writers use the console level.
type LoggingConfig struct {
	EnableConsole     bool
	ConsoleJSONFormat bool
	ConsoleLevel      string
	EnableFile        bool
	FileJSONFormat    bool
	FileLevel         string
	FileLocation      string
}

// Fields holds the key value pairs attached to a logger through WithFields.
type Fields map[string]interface{}

// Supported log levels, most to least verbose.
const (
	// Debug has verbose message
	Debug = "debug"
	// Info is default log level
	Info = "info"
	// Warn is for logging messages about possible issues
	Warn = "warn"
	// Error is for logging errors
	Error = "error"
	// Fatal is for logging fatal messages. The system shutsdown after logging the message.
	Fatal = "fatal"
)

// List of supported loggers.
const (
	InstanceZapLogger int = iota
	InstanceLogrusLogger
)

// Logger is our contract for the logger
type Logger interface {
	// Debugf logs a message at level Debug.
	Debugf(format string, args ...interface{})
	// Infof logs a message at level Info.
	Infof(format string, args ...interface{})
	// Warnf logs a message at level Warn.
	Warnf(format string, args ...interface{})
	// Errorf logs a message at level Error.
	Errorf(format string, args ...interface{})
	// Fatalf logs a message at level Fatal, then exits with status 1.
	Fatalf(format string, args ...interface{})
	// Panicf logs a message at level Panic.
	Panicf(format string, args ...interface{})
	// WithFields returns a logger that attaches the fields to every entry,
	// used to scope all log lines of a run to its run id.
	WithFields(keyValues Fields) Logger
}

// NewLogger returns an instance of logger
func NewLogger(config LoggingConfig, verbose bool, loggerInstance int) (Logger, error) {
	switch loggerInstance {
	case InstanceZapLogger:
		logger := newZapLogger(config, verbose)
		return logger, nil

	case InstanceLogrusLogger:
		logger, err := newLogrusLogger(config, verbose)
		if err != nil {
			return nil, err
		}
		return logger, nil

	default:
		return nil, errs.ErrInvalidLoggerInstance
	}
}
