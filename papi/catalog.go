package papi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/Isilon/isilon-sdk/oaserrors"
)

// Format is the encoding of a catalog file.
type Format string

const (
	// FormatAuto detects JSON or YAML from the content.
	FormatAuto Format = ""
	// FormatJSON is a JSON catalog.
	FormatJSON Format = "json"
	// FormatYAML is a YAML catalog.
	FormatYAML Format = "yaml"
)

// Catalog is a cached describe bundle: the endpoint directory of a cluster and
// the raw describe document of every endpoint in it.
//
// Describe documents are parsed on demand by Descriptor so that one broken
// endpoint only fails that endpoint.
type Catalog struct {
	// Version is the PAPI generation the directory was read from.
	Version int
	// OneFSVersion is the short release ("8.2") when known.
	OneFSVersion string
	// Directory is the endpoint list in the order the cluster reported it.
	Directory []string

	describe map[string]any
}

// NewCatalog creates an empty catalog for the given PAPI generation and directory.
func NewCatalog(version int, directory []string) *Catalog {
	return &Catalog{Version: version, Directory: directory, describe: make(map[string]any)}
}

// Add records the raw describe document of uri.
func (c *Catalog) Add(uri string, raw any) {
	if c.describe == nil {
		c.describe = make(map[string]any)
	}
	c.describe[uri] = raw
}

// Has reports whether the catalog holds a describe document for uri.
func (c *Catalog) Has(uri string) bool {
	_, ok := c.describe[uri]
	return ok
}

// Len returns the number of describe documents in the catalog.
func (c *Catalog) Len() int {
	return len(c.describe)
}

// Descriptor parses the describe document of uri.
func (c *Catalog) Descriptor(uri string) (*EndpointDescriptor, error) {
	raw, ok := c.describe[uri]
	if !ok {
		return nil, &oaserrors.ParseError{Path: uri, Message: "no describe document in catalog"}
	}
	return ParseDescriptor(uri, raw)
}

// LoadCatalog reads a catalog file. The format is chosen by extension and
// falls back to content detection.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: catalog path is user supplied by design
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "reading catalog", Cause: err}
	}
	format := FormatAuto
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = FormatJSON
	case ".yaml", ".yml":
		format = FormatYAML
	}
	cat, err := ParseCatalog(data, format)
	if err != nil {
		var pe *oaserrors.ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return nil, err
	}
	return cat, nil
}

// ParseCatalog decodes a catalog.
//
// The layout is the one the describe fetcher writes: a "version" number, a
// "directory" list and one key per endpoint URI holding its describe document.
func ParseCatalog(data []byte, format Format) (*Catalog, error) {
	if format == FormatAuto {
		format = DetectFormat(data)
	}

	var doc map[string]any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &oaserrors.ParseError{Message: "decoding JSON catalog", Cause: err}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &oaserrors.ParseError{Message: "decoding YAML catalog", Cause: err}
		}
	default:
		return nil, &oaserrors.ConfigError{Option: "format", Value: format, Message: "expected json or yaml"}
	}
	if doc == nil {
		return nil, &oaserrors.ParseError{Message: "empty catalog"}
	}

	rawDir, ok := doc["directory"].([]any)
	if !ok {
		return nil, &oaserrors.ParseError{Message: `catalog has no "directory" list`}
	}
	cat := NewCatalog(0, make([]string, 0, len(rawDir)))
	for i, v := range rawDir {
		s, ok := v.(string)
		if !ok {
			return nil, &oaserrors.ParseError{Message: fmt.Sprintf("directory entry %d is not a string", i)}
		}
		cat.Directory = append(cat.Directory, s)
	}
	if v, ok := ToFloat(doc["version"]); ok {
		cat.Version = int(v)
	}
	cat.OneFSVersion, _ = doc["onefs_version"].(string)

	for k, v := range doc {
		if strings.HasPrefix(k, "/") {
			cat.describe[k] = v
		}
	}
	return cat, nil
}

// DetectFormat guesses the encoding from the first non-space byte.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}
