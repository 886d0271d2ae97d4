// Package fileutil writes compiled documents to disk.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// OwnerReadWrite is the file permission mode for compiled documents, which
// describe a cluster's management API (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// WriteOutput writes data to path with OwnerReadWrite permissions and
// returns the cleaned path it wrote.
func WriteOutput(path string, data []byte) (string, error) {
	clean := filepath.Clean(path)
	if err := os.WriteFile(clean, data, OwnerReadWrite); err != nil {
		return "", fmt.Errorf("writing output: %w", err)
	}
	return clean, nil
}
