package papi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isilon/isilon-sdk/oaserrors"
)

const testCatalogJSON = `{
	"version": 3,
	"onefs_version": "8.0",
	"directory": ["/3/protocols/nfs/exports", "/3/protocols/nfs/exports/<EID>"],
	"/3/protocols/nfs/exports": {
		"GET_args": {"description": "List all exports.", "properties": {"limit": {"type": "int"}}},
		"GET_output_schema": {"type": "object", "properties": {}},
		"POST_args": {"description": "Create a new export."},
		"POST_input_schema": {"type": "object", "properties": {"path": {"type": "string"}}},
		"HEAD_args": {}
	}
}`

func TestParseCatalogJSON(t *testing.T) {
	cat, err := ParseCatalog([]byte(testCatalogJSON), FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, 3, cat.Version)
	assert.Equal(t, "8.0", cat.OneFSVersion)
	assert.Len(t, cat.Directory, 2)
	assert.Equal(t, 1, cat.Len())
	assert.True(t, cat.Has("/3/protocols/nfs/exports"))

	d, err := cat.Descriptor("/3/protocols/nfs/exports")
	require.NoError(t, err)
	assert.True(t, d.Has(MethodGet))
	assert.True(t, d.Has(MethodPost))
	assert.True(t, d.Has(MethodHead))
	assert.False(t, d.Has(MethodPut))

	get := d.Method(MethodGet)
	assert.Equal(t, "List all exports.", get.Args.Description)
	assert.Equal(t, []string{"limit"}, get.Args.PropertyNames())
	assert.Nil(t, get.Input)
	assert.NotNil(t, get.Output)

	post := d.Method(MethodPost)
	assert.NotNil(t, post.Input)
	assert.Nil(t, post.Output)
}

func TestParseCatalogYAML(t *testing.T) {
	data := `
version: 5
directory:
  - /5/cluster/config
/5/cluster/config:
  GET_args:
    description: Retrieve the cluster information.
  GET_output_schema:
    type: object
    properties:
      name:
        type: string
`
	cat, err := ParseCatalog([]byte(data), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, 5, cat.Version)

	d, err := cat.Descriptor("/5/cluster/config")
	require.NoError(t, err)
	out, ok := d.Method(MethodGet).Output.(*ObjectSchema)
	require.True(t, ok)
	assert.Equal(t, []string{"name"}, out.PropertyNames())
}

func TestParseCatalogErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing directory", data: `{"version": 3}`},
		{name: "non-string entry", data: `{"directory": [1]}`},
		{name: "malformed json", data: `{"directory": [`},
		{name: "empty", data: `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.data), FormatJSON)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrParse)
		})
	}
}

func TestCatalogMissingDescriptor(t *testing.T) {
	cat := NewCatalog(3, []string{"/3/a"})
	_, err := cat.Descriptor("/3/a")
	assert.ErrorIs(t, err, oaserrors.ErrParse)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "describe.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogJSON), 0o600))

	cat, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cat.Version)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	var pe *oaserrors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Path, "missing.json")
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat([]byte("  {\"a\": 1}")))
	assert.Equal(t, FormatYAML, DetectFormat([]byte("a: 1")))
}

func TestParseDescriptorRejectsNonObject(t *testing.T) {
	_, err := ParseDescriptor("/3/x", "nope")
	assert.ErrorIs(t, err, oaserrors.ErrParse)
}
