// common/error_handler.go

package common

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"
)

// ErrorContext provides additional information about an error
type ErrorContext struct {
	Module      string
	Operation   string
	Error       error
	Severity    Severity
	Recoverable bool
	Timestamp   time.Time
	StackTrace  string
}

// NewErrorContext creates a new error context with defaults
func NewErrorContext(module, operation string) ErrorContext {
	return ErrorContext{
		Module:      module,
		Operation:   operation,
		Severity:    SeverityError,
		Recoverable: true,
		Timestamp:   time.Now(),
	}
}

// ErrorNotifier presents an error to the user, e.g. as a dialog
type ErrorNotifier func(ctx ErrorContext)

// ErrorHandler logs application errors and forwards them to the installed notifier
type ErrorHandler struct {
	logger   *Logger
	notifier ErrorNotifier
	mutex    sync.RWMutex
}

// NewErrorHandler creates a new error handler instance
func NewErrorHandler(logger *Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// SetNotifier installs the function used to present errors to the user
func (h *ErrorHandler) SetNotifier(notifier ErrorNotifier) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.notifier = notifier
}

// GetLogger returns the logger instance
func (h *ErrorHandler) GetLogger() *Logger {
	return h.logger
}

// ShowError logs and presents a plain error
func (h *ErrorHandler) ShowError(err error) {
	if err == nil {
		return
	}
	ctx := NewErrorContext("", "")
	ctx.Error = err
	h.ShowErrorWithContext(ctx)
}

// ShowErrorWithContext logs the error with its context and presents it
func (h *ErrorHandler) ShowErrorWithContext(ctx ErrorContext) {
	if ctx.Error == nil {
		return
	}
	if ctx.Timestamp.IsZero() {
		ctx.Timestamp = time.Now()
	}
	if ctx.Severity == "" {
		ctx.Severity = SeverityError
	}

	h.logger.Log(ctx.Severity, "Module: %s, Operation: %s - %v", ctx.Module, ctx.Operation, ctx.Error)
	if ctx.StackTrace != "" {
		h.logger.Log(ctx.Severity, "Stack trace:\n%s", ctx.StackTrace)
	}

	h.mutex.RLock()
	notifier := h.notifier
	h.mutex.RUnlock()
	if notifier != nil {
		notifier(ctx)
	}
}

// ShowStandardError fills the context with err and presents it
func (h *ErrorHandler) ShowStandardError(err error, ctx *ErrorContext) {
	if err == nil {
		return
	}
	if ctx == nil {
		h.ShowError(err)
		return
	}
	ctx.Error = err
	h.ShowErrorWithContext(*ctx)
}

// HandlePanic converts a recovered panic into a critical error report
func (h *ErrorHandler) HandlePanic(module, operation string, recovered interface{}) {
	ctx := NewErrorContext(module, operation)
	ctx.Error = fmt.Errorf("panic: %v", recovered)
	ctx.Severity = SeverityCritical
	ctx.Recoverable = false
	ctx.StackTrace = string(debug.Stack())
	h.ShowErrorWithContext(ctx)
}
