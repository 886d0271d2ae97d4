// Package issues provides the diagnostic type reported by a compilation run.
package issues

import (
	"fmt"

	"github.com/Isilon/isilon-sdk/internal/severity"
)

// Issue represents a single problem found while compiling an endpoint.
type Issue struct {
	// Endpoint is the PAPI URI being processed (e.g., "/3/protocols/nfs/exports")
	Endpoint string `json:"endpoint,omitempty"`
	// Path locates the problem inside the output (e.g., "definitions.NfsExport.properties.zone")
	Path string `json:"path,omitempty"`
	// Message is a human-readable description of the issue
	Message string `json:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity"`
	// Field is the specific schema key that has the issue
	Field string `json:"field,omitempty"`
	// Value is the problematic value (optional)
	Value any `json:"value,omitempty"`
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	where := i.Location()
	if where == "" {
		return fmt.Sprintf("%s %s", symbol, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, where, i.Message)
}

// Location joins the endpoint and the output path, whichever are set.
func (i Issue) Location() string {
	switch {
	case i.Endpoint != "" && i.Path != "":
		return i.Endpoint + " " + i.Path
	case i.Endpoint != "":
		return i.Endpoint
	default:
		return i.Path
	}
}

// List accumulates issues for one compilation run.
type List []Issue

// Add appends an issue.
func (l *List) Add(sev severity.Severity, endpoint, path, msg string) {
	*l = append(*l, Issue{Endpoint: endpoint, Path: path, Message: msg, Severity: sev})
}

// Warnf appends a warning with a formatted message.
func (l *List) Warnf(endpoint, path, format string, args ...any) {
	l.Add(severity.SeverityWarning, endpoint, path, fmt.Sprintf(format, args...))
}

// Count returns how many issues have the given severity.
func (l List) Count(sev severity.Severity) int {
	n := 0
	for _, i := range l {
		if i.Severity == sev {
			n++
		}
	}
	return n
}
