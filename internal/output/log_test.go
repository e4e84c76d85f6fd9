package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

// captureLog sets up the logger to write to a buffer and returns the buffer.
func captureLog(cfg LogConfig) *bytes.Buffer {
	var buf bytes.Buffer
	setupLogging(&buf, cfg)
	return &buf
}

func TestSetupLogging_TimestampDefaultOn(t *testing.T) {
	buf := captureLog(LogConfig{})
	logger.Info("test")
	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}`, strings.TrimSpace(buf.String()))
}

func TestSetupLogging_TimestampExplicitlyDisabled(t *testing.T) {
	buf := captureLog(LogConfig{Timestamps: BoolPtr(false)})
	logger.Info("hello")
	out := buf.String()
	assert.NotRegexp(t, `^\d{1,2}:\d{2}:\d{2}`, strings.TrimSpace(out),
		"output should not start with a timestamp")
	assert.Contains(t, out, "hello")
}

func TestSetupLogging_VerboseForcesTimestampsOn(t *testing.T) {
	buf := captureLog(LogConfig{Verbose: true, Timestamps: BoolPtr(false)})
	logger.Debug("verbose-msg")
	out := buf.String()
	assert.Contains(t, out, "verbose-msg", "debug message should appear in verbose mode")
	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}`, strings.TrimSpace(out))
}

func TestSetupLogging_Levels(t *testing.T) {
	captureLog(LogConfig{Verbose: true})
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
	assert.True(t, IsVerbose())

	captureLog(LogConfig{})
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	assert.False(t, IsVerbose())
}

func TestDebugHiddenAtInfoLevel(t *testing.T) {
	buf := captureLog(LogConfig{Timestamps: BoolPtr(false)})
	Debug("hidden")
	Warn("shown", "path", "main.py")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "path=main.py")
}

func TestBuilderLogger_InheritsLevel(t *testing.T) {
	captureLog(LogConfig{Verbose: true})
	l := BuilderLogger("auth")
	assert.Equal(t, log.DebugLevel, l.GetLevel())
	assert.Contains(t, l.GetPrefix(), "auth")
}

func TestBoolPtr(t *testing.T) {
	assert.True(t, *BoolPtr(true))
	assert.False(t, *BoolPtr(false))
}
