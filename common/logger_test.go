package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, false)

	logger.Info("converted %d file(s)", 3)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} \[INFO\] converted 3 file\(s\)\n$`, buf.String())

	buf.Reset()
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.Warning("careful")
	logger.Error("broken")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[WARNING] careful")
	assert.Contains(t, lines[1], "[ERROR] broken")
}

func TestWriterLoggerDebug(t *testing.T) {
	var buf bytes.Buffer
	NewWriterLogger(&buf, true).Debug("probe %s", "a.mp4")
	assert.Contains(t, buf.String(), "[DEBUG] probe a.mp4")
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Info("ignored")
		logger.Error("ignored")
		assert.NoError(t, logger.Close())
	})
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", FileNameLog)
	logger, err := NewLogger(LogOptions{Path: path})
	require.NoError(t, err)
	assert.Equal(t, path, logger.Path())

	logger.Info("started")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] started")

	_, err = NewLogger(LogOptions{Path: " "})
	assert.Error(t, err)
}

func TestFlushEarlyLogs(t *testing.T) {
	CaptureEarlyLog(SeverityWarning, "before logger %d", 1)

	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, false)
	FlushEarlyLogs(logger)
	assert.Contains(t, buf.String(), "[WARNING] before logger 1")

	buf.Reset()
	FlushEarlyLogs(logger)
	assert.Empty(t, buf.String())
}
