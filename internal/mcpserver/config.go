package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Catalog cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Result limits.
	IssueLimit    int
	MaxLimit      int
	MaxInlineSize int64

	// ConfigFile is the papi2oas config file applied to every compile call
	// that does not name its own.
	ConfigFile string
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from PAPI2OAS_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("PAPI2OAS_MCP_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("PAPI2OAS_MCP_CACHE_MAX_SIZE", 4),
		CacheFileTTL:       envDuration("PAPI2OAS_MCP_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("PAPI2OAS_MCP_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("PAPI2OAS_MCP_CACHE_SWEEP_INTERVAL", 60*time.Second),
		IssueLimit:         envInt("PAPI2OAS_MCP_ISSUE_LIMIT", 100),
		MaxLimit:           envInt("PAPI2OAS_MCP_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("PAPI2OAS_MCP_MAX_INLINE_SIZE", 32<<20)),
		ConfigFile:         os.Getenv("PAPI2OAS_MCP_CONFIG"),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
