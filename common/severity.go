package common

// Severity represents the severity level of a message or error.
// It is shared by the log file, the status panel and the console output.
type Severity string

const (
	// SeverityDebug is only written to the log file
	SeverityDebug Severity = "DEBUG"

	// SeverityInfo represents informational messages, including per-item success lines
	SeverityInfo Severity = "INFO"

	// SeverityWarning represents problems that do not stop the current operation,
	// such as a missing helper binary detected at startup
	SeverityWarning Severity = "WARNING"

	// SeverityError represents a failed item or target. The surrounding batch continues.
	SeverityError Severity = "ERROR"

	// SeverityCritical represents failures that abort a whole operation
	SeverityCritical Severity = "CRITICAL"
)

// IsProblem reports whether the severity should be rendered as a warning or error.
func (s Severity) IsProblem() bool {
	return s == SeverityWarning || s == SeverityError || s == SeverityCritical
}
