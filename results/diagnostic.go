package results

import "fmt"

// Severity classifies a Diagnostic.
type Severity string

const (
	// SeverityWarning marks a recoverable anomaly; a best-effort result was
	// still produced.
	SeverityWarning Severity = "warning"
	// SeverityError marks a part of the input that could not be read at all.
	SeverityError Severity = "error"
)

// Diagnostic is a non-fatal message attached to a result.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// String returns the diagnostic as "severity: message".
func (d Diagnostic) String() string {
	return string(d.Severity) + ": " + d.Message
}

// NewWarning creates a warning diagnostic.
func NewWarning(message string) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Message: message}
}

// Warningf creates a warning diagnostic from a format string.
func Warningf(format string, args ...any) Diagnostic {
	return NewWarning(fmt.Sprintf(format, args...))
}

// NewError creates an error diagnostic.
func NewError(message string) Diagnostic {
	return Diagnostic{Severity: SeverityError, Message: message}
}
