package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isilon/isilon-sdk/internal/testutil"
)

// execute runs the command tree with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCompileCommand_Stdout(t *testing.T) {
	catalog := testutil.WriteTempJSON(t, testutil.NFSExportsCatalog())

	stdout, stderr, err := execute(t, "compile", "--log-level", "error", catalog)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "2.0", doc["swagger"])
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/platform/3/protocols/nfs/exports")
	assert.Contains(t, paths, "/platform/3/protocols/nfs/exports/{NfsExportId}")

	assert.Contains(t, stderr, "End points successfully processed: 2, failed to process: 0, excluded: 0.")
}

func TestCompileCommand_OutputFile(t *testing.T) {
	catalog := testutil.WriteTempJSON(t, testutil.NFSExportsCatalog())
	out := filepath.Join(t.TempDir(), "swagger.yaml")

	stdout, stderr, err := execute(t, "compile", "-q", "--validate", "--log-level", "error", "-o", out, catalog)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "swagger:")
	assert.Contains(t, string(data), "/platform/3/protocols/nfs/exports:")
}

func TestCompileCommand_Issues(t *testing.T) {
	catalog := testutil.WriteTempJSON(t, testutil.NFSExportsCatalog())

	_, stderr, err := execute(t, "compile", "-q", "--issues", "--log-level", "error", catalog)
	require.NoError(t, err)
	assert.Contains(t, stderr, "⚠ /3/protocols/nfs/exports")

	_, stderr, err = execute(t, "compile", "-q", "--issues", "--no-warnings", "--log-level", "error", catalog)
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestCompileCommand_Config(t *testing.T) {
	catalog := testutil.WriteTempJSON(t, testutil.NFSExportsCatalog())
	conf := filepath.Join(t.TempDir(), "papi2oas.yaml")
	require.NoError(t, os.WriteFile(conf, []byte("base_path: /api\noutput_format: yaml\nlog_level: error\n"), 0o600))

	stdout, _, err := execute(t, "compile", "-q", "-c", conf, catalog)
	require.NoError(t, err)
	assert.Contains(t, stdout, "/api/3/protocols/nfs/exports:")
}

func TestCompileCommand_Errors(t *testing.T) {
	catalog := testutil.WriteTempJSON(t, testutil.NFSExportsCatalog())

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "no catalog", args: []string{"compile"}, wantErr: "accepts 1 arg"},
		{name: "missing catalog", args: []string{"compile", filepath.Join(t.TempDir(), "none.json")}, wantErr: "reading catalog"},
		{name: "bad format", args: []string{"compile", "--format", "xml", catalog}, wantErr: "unsupported format"},
		{name: "bad log level", args: []string{"compile", "--log-level", "loud", catalog}, wantErr: "LogLevel"},
		{name: "overwrite input", args: []string{"compile", "-o", catalog, catalog}, wantErr: "would overwrite input file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolveCommand(t *testing.T) {
	catalog := testutil.WriteTempJSON(t, testutil.NFSExportsCatalog())

	stdout, stderr, err := execute(t, "resolve", catalog)
	require.NoError(t, err)
	assert.Equal(t, "/3/protocols/nfs/exports /3/protocols/nfs/exports/<EID>\n", stdout)
	assert.Empty(t, stderr)
}

func TestResolveCommand_JSON(t *testing.T) {
	catalog := testutil.WriteTempJSON(t, testutil.NFSExportsCatalog())

	stdout, _, err := execute(t, "resolve", "--format", "json", catalog)
	require.NoError(t, err)

	var report resolveReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.Equal(t, 3, report.Version)
	require.Len(t, report.Pairs, 1)
	assert.Equal(t, "/3/protocols/nfs/exports/<EID>", report.Pairs[0].Item)

	_, _, err = execute(t, "resolve", "--format", "xml", catalog)
	assert.ErrorContains(t, err, "invalid format")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "papi2oas vdev\n", stdout)

	stdout, _, err = execute(t, "version", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Version: dev")
	assert.Contains(t, stdout, "Go Version: go")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "warn", "json")
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "endpoint", "/3/cluster/config")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = newLogger(&buf, "info", "xml")
	assert.Error(t, err)
	_, err = newLogger(&buf, "loud", "text")
	assert.Error(t, err)
}
