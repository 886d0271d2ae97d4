// Package severity provides severity level constants for diagnostics raised
// while compiling PAPI describe metadata.
//
// The levels map onto the compiler's error tiers:
//   - SeverityInfo: notes about processing choices (excluded endpoints, skipped float versions)
//   - SeverityWarning: schema irregularities that were corrected in place
//   - SeverityError: an endpoint that could not be compiled and was omitted
//   - SeverityCritical: a failure that aborted the run
package severity

// Severity indicates the severity level of a compilation diagnostic.
type Severity int

const (
	// SeverityError indicates an endpoint was dropped from the output.
	SeverityError Severity = iota

	// SeverityWarning indicates an upstream schema bug that was corrected.
	SeverityWarning

	// SeverityInfo indicates informational messages about processing choices.
	SeverityInfo

	// SeverityCritical indicates the whole run was aborted.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name so JSON and YAML reports stay readable.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
