package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearMCPEnv clears all PAPI2OAS_MCP_* env vars to isolate tests from the ambient environment.
func clearMCPEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PAPI2OAS_MCP_CACHE_ENABLED", "PAPI2OAS_MCP_CACHE_MAX_SIZE",
		"PAPI2OAS_MCP_CACHE_FILE_TTL", "PAPI2OAS_MCP_CACHE_CONTENT_TTL",
		"PAPI2OAS_MCP_CACHE_SWEEP_INTERVAL", "PAPI2OAS_MCP_ISSUE_LIMIT",
		"PAPI2OAS_MCP_MAX_LIMIT", "PAPI2OAS_MCP_MAX_INLINE_SIZE",
		"PAPI2OAS_MCP_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearMCPEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 4, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 100, c.IssueLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.Equal(t, int64(32<<20), c.MaxInlineSize)
	assert.Empty(t, c.ConfigFile)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearMCPEnv(t)
	t.Setenv("PAPI2OAS_MCP_CACHE_ENABLED", "false")
	t.Setenv("PAPI2OAS_MCP_CACHE_MAX_SIZE", "8")
	t.Setenv("PAPI2OAS_MCP_CACHE_FILE_TTL", "30m")
	t.Setenv("PAPI2OAS_MCP_CACHE_CONTENT_TTL", "10m")
	t.Setenv("PAPI2OAS_MCP_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("PAPI2OAS_MCP_ISSUE_LIMIT", "20")
	t.Setenv("PAPI2OAS_MCP_MAX_LIMIT", "500")
	t.Setenv("PAPI2OAS_MCP_MAX_INLINE_SIZE", "1024")
	t.Setenv("PAPI2OAS_MCP_CONFIG", "papi2oas.yaml")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 8, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, 20, c.IssueLimit)
	assert.Equal(t, 500, c.MaxLimit)
	assert.Equal(t, int64(1024), c.MaxInlineSize)
	assert.Equal(t, "papi2oas.yaml", c.ConfigFile)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	clearMCPEnv(t)
	t.Setenv("PAPI2OAS_MCP_CACHE_ENABLED", "maybe")
	t.Setenv("PAPI2OAS_MCP_CACHE_MAX_SIZE", "-1")
	t.Setenv("PAPI2OAS_MCP_CACHE_FILE_TTL", "soon")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 4, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
}
