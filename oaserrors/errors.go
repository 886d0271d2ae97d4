// Package oaserrors provides structured error types for the PAPI to Swagger compiler.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between a broken endpoint that
// was skipped and a run that must be aborted.
//
// # Error Categories
//
//   - ParseError: catalog and describe document decoding failures
//   - SchemaError: an endpoint schema that cannot be normalized (endpoint is skipped)
//   - VersionError: an endpoint URI whose version segment is not a number
//   - DuplicateOperationError: two endpoints map to the same operation identity (run aborts)
//   - ValidationError: the emitted document failed structural validation
//   - ConfigError: invalid configuration or input options
//
// # Usage with errors.As
//
//	result, err := c.Compile(cat)
//	if err != nil {
//	    var dupErr *oaserrors.DuplicateOperationError
//	    if errors.As(err, &dupErr) {
//	        fmt.Println(dupErr.First, dupErr.Second)
//	    }
//	}
package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrSchema indicates an endpoint schema could not be normalized.
	ErrSchema = errors.New("schema error")

	// ErrVersion indicates an endpoint URI carried an unparseable version segment.
	ErrVersion = errors.New("version error")

	// ErrDuplicateOperation indicates two endpoints produced the same operation identity.
	ErrDuplicateOperation = errors.New("duplicate operation")

	// ErrValidation indicates the emitted document is structurally invalid.
	ErrValidation = errors.New("validation error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to decode a catalog or describe document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// SchemaError is raised when an endpoint's schema cannot be normalized, for example
// an array with neither a type nor a $ref, or an object schema whose type is not
// "object". The compiler catches it at the endpoint boundary and skips the endpoint.
type SchemaError struct {
	// Endpoint is the PAPI URI being processed (may be empty deep in the normalizer)
	Endpoint string
	// Definition is the definition name that was being built
	Definition string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	msg := "schema error"
	if e.Endpoint != "" {
		msg += " in " + e.Endpoint
	}
	if e.Definition != "" {
		msg += " for " + e.Definition
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// VersionError reports an endpoint URI whose leading version segment is neither
// an integer nor a float.
type VersionError struct {
	// Endpoint is the offending URI
	Endpoint string
	// Segment is the version segment that failed to parse
	Segment string
}

// Error returns a human-readable error message.
func (e *VersionError) Error() string {
	msg := "version error"
	if e.Endpoint != "" {
		msg += " in " + e.Endpoint
	}
	return msg + fmt.Sprintf(": unparseable version segment %q", e.Segment)
}

// Is reports whether target matches this error type.
func (e *VersionError) Is(target error) bool {
	return target == ErrVersion
}

// DuplicateOperationError reports two endpoints that map to the same
// (api, namespace, object) identity. This aborts the whole run.
type DuplicateOperationError struct {
	// Identity is the colliding "api:namespace:object" key
	Identity string
	// First is the output path that claimed the identity first
	First string
	// Second is the output path that collided with it
	Second string
}

// Error returns a human-readable error message.
func (e *DuplicateOperationError) Error() string {
	return fmt.Sprintf("duplicate operation %s for end points %s and %s", e.Identity, e.First, e.Second)
}

// Is reports whether target matches this error type.
func (e *DuplicateOperationError) Is(target error) bool {
	return target == ErrDuplicateOperation
}

// ValidationError represents a structural problem in an emitted document.
type ValidationError struct {
	// Path is the JSON path to the invalid field, when known
	Path string
	// Message describes the violation
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
