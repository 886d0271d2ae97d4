package builder

import (
	"errors"
	"fmt"
	"strings"
)

// EndpointError records an endpoint that could not be built.
type EndpointError struct {
	// Endpoint is the PAPI URI.
	Endpoint string
	// Method is the verb being built when the error occurred, if any.
	Method string
	// Operation is the operation name ("create", "list", ...), if any.
	Operation string
	// Cause is the underlying error.
	Cause error
}

// Error returns a human-readable error message.
func (e *EndpointError) Error() string {
	var sb strings.Builder
	sb.WriteString("builder: ")
	sb.WriteString(e.Endpoint)
	if e.Method != "" {
		fmt.Fprintf(&sb, " %s", e.Method)
	}
	if e.Operation != "" {
		fmt.Fprintf(&sb, " (%s)", e.Operation)
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying error.
func (e *EndpointError) Unwrap() error {
	return e.Cause
}

var errNotItem = errors.New("item endpoint has no path parameter")
