// common/reporter.go

package common

import (
	"fmt"
	"io"
	"sync"
)

// Reporter receives the human-readable status lines produced by conversions and
// menu registration.
type Reporter interface {
	Report(level Severity, message string)
}

// ReporterFunc adapts a function to the Reporter interface
type ReporterFunc func(level Severity, message string)

// Report implements Reporter
func (f ReporterFunc) Report(level Severity, message string) {
	f(level, message)
}

// Reportf formats and reports a line, ignoring a nil reporter
func Reportf(r Reporter, level Severity, format string, args ...interface{}) {
	if r == nil {
		return
	}
	r.Report(level, fmt.Sprintf(format, args...))
}

// LoggingReporter mirrors every reported line into the log file before forwarding it
func LoggingReporter(logger *Logger, next Reporter) Reporter {
	return ReporterFunc(func(level Severity, message string) {
		logger.Log(level, "%s", message)
		if next != nil {
			next.Report(level, message)
		}
	})
}

// ConsoleReporter writes info lines to out and problems to errOut
type ConsoleReporter struct {
	Out    io.Writer
	ErrOut io.Writer
	mutex  sync.Mutex
}

// Report implements Reporter
func (c *ConsoleReporter) Report(level Severity, message string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	w := c.Out
	if level.IsProblem() && c.ErrOut != nil {
		w = c.ErrOut
	}
	if w != nil {
		fmt.Fprintln(w, message)
	}
}

// StatusLine is one queued status message
type StatusLine struct {
	Level   Severity
	Message string
}

// LineQueue serializes status lines from any number of goroutines to a single consumer.
// Producers never touch the sink, the consumer goroutine is the only writer.
type LineQueue struct {
	lines   chan StatusLine
	done    chan struct{}
	closeMu sync.RWMutex
	closed  bool
}

// NewLineQueue starts the consumer goroutine. consume is called for every line, in send order.
func NewLineQueue(buffer int, consume func(StatusLine)) *LineQueue {
	if buffer <= 0 {
		buffer = 256
	}
	q := &LineQueue{
		lines: make(chan StatusLine, buffer),
		done:  make(chan struct{}),
	}
	go func() {
		defer close(q.done)
		for line := range q.lines {
			consume(line)
		}
	}()
	return q
}

// Report implements Reporter. Lines reported after Close are dropped.
func (q *LineQueue) Report(level Severity, message string) {
	q.closeMu.RLock()
	defer q.closeMu.RUnlock()
	if q.closed {
		return
	}
	q.lines <- StatusLine{Level: level, Message: message}
}

// Close stops accepting lines and waits until the consumer drained the queue
func (q *LineQueue) Close() {
	q.closeMu.Lock()
	if !q.closed {
		q.closed = true
		close(q.lines)
	}
	q.closeMu.Unlock()
	<-q.done
}
