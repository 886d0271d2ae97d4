// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Isilon/isilon-sdk/compiler"
	"github.com/Isilon/isilon-sdk/internal/issues"
	"github.com/Isilon/isilon-sdk/internal/severity"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteIssues writes one issue per line in the order they were raised.
// Warnings and infos are left out unless includeWarnings is set.
// It returns the number of issues written.
func WriteIssues(w io.Writer, list issues.List, includeWarnings bool) int {
	n := 0
	for _, i := range list {
		if !includeWarnings && i.Severity != severity.SeverityError && i.Severity != severity.SeverityCritical {
			continue
		}
		Writef(w, "%s\n", i)
		n++
	}
	return n
}

// WriteStats writes the run summary of a compilation.
func WriteStats(w io.Writer, s compiler.Stats, elapsed time.Duration) {
	Writef(w, "End points successfully processed: %d, failed to process: %d, excluded: %d.\n",
		s.Processed, s.Failed, s.Excluded)
	Writef(w, "Paths: %d, operations: %d, definitions: %d", s.Paths, s.Operations, s.Definitions)
	if s.Rebased > 0 {
		Writef(w, " (%d rebased)", s.Rebased)
	}
	Writef(w, "\n")
	if elapsed > 0 {
		Writef(w, "Compiled in %v\n", elapsed.Round(time.Millisecond))
	}
}
