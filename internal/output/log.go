// Package output provides terminal output utilities for the fastaccel CLI.
package output

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// logger is the process-wide CLI logger. It is only reconfigured by
// SetupLogging, which the root command calls once per invocation.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

// LogConfig holds the logging settings resolved from flags and config.
type LogConfig struct {
	Verbose bool

	// Timestamps toggles timestamps; nil means on.
	Timestamps *bool
}

// SetupLogging configures the logger.
// Verbose raises the level to debug and forces timestamps on.
func SetupLogging(cfg LogConfig) {
	setupLogging(os.Stderr, cfg)
}

func setupLogging(w io.Writer, cfg LogConfig) {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}

	timestamps := true
	if cfg.Timestamps != nil {
		timestamps = *cfg.Timestamps
	}
	if cfg.Verbose {
		timestamps = true
	}

	logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: timestamps,
		ReportCaller:    cfg.Verbose,
		TimeFormat:      "15:04:05",
	})
}

// BuilderLogger returns a child logger prefixed with a builder name.
func BuilderLogger(name string) *log.Logger {
	return logger.WithPrefix(StyleNoun.Render(name))
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}

// IsVerbose reports whether debug logging is enabled.
func IsVerbose() bool {
	return logger.GetLevel() <= log.DebugLevel
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
