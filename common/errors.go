// common/errors.go

package common

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure a conversion or menu operation can report.
type ErrorKind int

const (
	// KindIOError is the catch-all for failures that fit no other kind
	KindIOError ErrorKind = iota
	KindNotFound
	KindInvalidPath
	KindCorrupt
	KindUnsupportedInput
	KindUnsupportedOutput
	KindHelperNotFound
	KindConversionFailed
	KindPermissionDenied
	KindCancelled
)

var kindNames = map[ErrorKind]string{
	KindIOError:           "IOError",
	KindNotFound:          "NotFound",
	KindInvalidPath:       "InvalidPath",
	KindCorrupt:           "Corrupt",
	KindUnsupportedInput:  "UnsupportedInput",
	KindUnsupportedOutput: "UnsupportedOutput",
	KindHelperNotFound:    "HelperNotFound",
	KindConversionFailed:  "ConversionFailed",
	KindPermissionDenied:  "PermissionDenied",
	KindCancelled:         "Cancelled",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// OperationError is the tagged error returned by converters and the menu registrar.
type OperationError struct {
	Kind   ErrorKind
	Op     string
	Path   string
	Detail string
	Err    error
}

func (e *OperationError) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += fmt.Sprintf(" '%s'", e.Path)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a classified error.
func NewOperationError(kind ErrorKind, op, path, detail string, err error) *OperationError {
	return &OperationError{
		Kind:   kind,
		Op:     op,
		Path:   path,
		Detail: detail,
		Err:    err,
	}
}

// KindOf returns the kind of err. Unclassified errors are IOError.
func KindOf(err error) ErrorKind {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	return KindIOError
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
