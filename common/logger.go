// common/logger.go

// Package common implements shared functionality used across the MediaConverter application.
// This file contains logging functionality.

package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const logTimeLayout = "2006-01-02 15:04:05"

// earlyLogBuffer stores log messages before logger is initialized
var earlyLogBuffer []string
var earlyLogMutex sync.Mutex

// CaptureEarlyLog captures a log message before the logger is initialized
func CaptureEarlyLog(level Severity, format string, args ...interface{}) {
	earlyLogMutex.Lock()
	defer earlyLogMutex.Unlock()

	earlyLogBuffer = append(earlyLogBuffer, formatLogLine(time.Now(), level, fmt.Sprintf(format, args...)))
}

// FlushEarlyLogs writes all captured early logs to the logger, keeping their original timestamps
func FlushEarlyLogs(logger *Logger) {
	earlyLogMutex.Lock()
	defer earlyLogMutex.Unlock()

	if logger == nil || len(earlyLogBuffer) == 0 {
		return
	}

	logger.mutex.Lock()
	for _, line := range earlyLogBuffer {
		io.WriteString(logger.out, line)
	}
	logger.mutex.Unlock()

	earlyLogBuffer = nil
}

func formatLogLine(ts time.Time, level Severity, message string) string {
	return fmt.Sprintf("%s [%s] %s\n", ts.Format(logTimeLayout), level, message)
}

// LogOptions controls where the log file lives and how it is rotated.
type LogOptions struct {
	Path       string
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
	Compress   bool
	Debug      bool
}

// Logger writes timestamped lines to a rotating log file.
type Logger struct {
	logPath string
	out     io.Writer
	closer  io.Closer
	mutex   sync.Mutex
	debug   bool
}

// NewLogger creates a new logger backed by a size and age rotated file
func NewLogger(opts LogOptions) (*Logger, error) {
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	if opts.MaxAgeDays <= 0 {
		opts.MaxAgeDays = 7
	}
	if opts.MaxBackups <= 0 {
		opts.MaxBackups = 5
	}
	if IsEmptyString(opts.Path) {
		return nil, fmt.Errorf("log path cannot be empty")
	}

	logPath := opts.Path
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		rootLogPath := filepath.Join(".", filepath.Base(logPath))
		CaptureEarlyLog(SeverityWarning, "Failed to create log directory at '%s': %v", filepath.Dir(logPath), err)
		CaptureEarlyLog(SeverityWarning, "Attempting fallback to root directory: %s", rootLogPath)
		logPath = rootLogPath
	}

	// lumberjack opens lazily, probe the file so the fallback decision happens here
	probe, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file '%s': %w", logPath, err)
	}
	probe.Close()

	rotating := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    opts.MaxSizeMB,
		MaxAge:     opts.MaxAgeDays,
		MaxBackups: opts.MaxBackups,
		LocalTime:  true,
		Compress:   opts.Compress,
	}

	return &Logger{
		logPath: logPath,
		out:     rotating,
		closer:  rotating,
		debug:   opts.Debug,
	}, nil
}

// NewWriterLogger creates a logger that writes to w without rotation.
// Used for console output and tests.
func NewWriterLogger(w io.Writer, debug bool) *Logger {
	return &Logger{out: w, debug: debug}
}

// Path returns the file the logger writes to, empty for writer loggers
func (l *Logger) Path() string {
	return l.logPath
}

// Log writes a message to the log file
func (l *Logger) Log(level Severity, format string, args ...interface{}) error {
	if l == nil {
		return nil
	}
	if level == SeverityDebug && !l.debug {
		return nil
	}

	line := formatLogLine(time.Now(), level, fmt.Sprintf(format, args...))

	l.mutex.Lock()
	defer l.mutex.Unlock()

	if _, err := io.WriteString(l.out, line); err != nil {
		return fmt.Errorf("failed to write to log file: %w", err)
	}
	return nil
}

// Debug logs a debug message when debug logging is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	l.Log(SeverityDebug, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(SeverityInfo, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(SeverityWarning, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(SeverityError, format, args...)
}

// Close closes the log file
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// OpenAppLogger opens the named log file using the same location rules as the
// configuration file: an existing file in the working directory wins, then APPDATA,
// then the working directory as fallback.
func OpenAppLogger(fileName string, settings Settings) (*Logger, error) {
	opts := LogOptions{
		MaxSizeMB:  settings.LogMaxSizeMB,
		MaxAgeDays: settings.LogMaxAgeDays,
		MaxBackups: settings.LogMaxBackups,
		Compress:   true,
		Debug:      settings.DebugLog,
	}

	rootLogPath := fileName
	if FileExists(rootLogPath) {
		opts.Path = rootLogPath
		if logger, err := NewLogger(opts); err == nil {
			return logger, nil
		}
	}

	if appDir := AppDataDir(); appDir != "" {
		opts.Path = JoinPaths(appDir, FolderNameLog, fileName)
		if err := EnsureDirectoryExists(filepath.Dir(opts.Path)); err == nil {
			if logger, err := NewLogger(opts); err == nil {
				return logger, nil
			}
		} else {
			CaptureEarlyLog(SeverityWarning, "Failed to prepare log directory in APPDATA: %v", err)
		}
	}

	opts.Path = rootLogPath
	logger, err := NewLogger(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger in any location: %w", err)
	}
	return logger, nil
}
