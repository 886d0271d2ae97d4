package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Isilon/isilon-sdk/internal/options"
	"github.com/Isilon/isilon-sdk/papi"
)

// catalogInput represents the two ways a describe catalog can be provided
// to a tool. Exactly one of File or Content must be set.
type catalogInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a describe catalog (JSON or YAML) on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline describe catalog content (JSON or YAML)"`
}

// cacheEntry is one parsed catalog. lastUsed orders eviction.
type cacheEntry struct {
	catalog   *papi.Catalog
	lastUsed  time.Time
	expiresAt time.Time
}

// catalogCacheStore keeps parsed catalogs for the lifetime of the server.
// A parsed catalog is immutable, so one *papi.Catalog is handed to every
// tool call that names the same input and no copy is ever made. File
// inputs are keyed by absolute path and modification time, which makes an
// edited file miss; inline content is keyed by its SHA-256.
type catalogCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var catalogCache = &catalogCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns the shared catalog for key, or nil on a miss or expiry.
func (c *catalogCacheStore) get(key string) *papi.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.lastUsed = time.Now()
	return e.catalog
}

// putWithTTL shares cat under key until ttl elapses. A full cache gives up
// the catalog no call has asked for longest.
func (c *catalogCacheStore) putWithTTL(key string, cat *papi.Catalog, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{catalog: cat, lastUsed: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		var stale string
		var staleAt time.Time
		for k, e := range c.entries {
			if stale == "" || e.lastUsed.Before(staleAt) {
				stale, staleAt = k, e.lastUsed
			}
		}
		delete(c.entries, stale)
	}
	c.entries[key] = entry
}

func (c *catalogCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper drops expired catalogs every interval until ctx ends. At most
// one sweeper runs per cache.
func (c *catalogCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

func (c *catalogCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

func (c *catalogCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given catalog input.
func makeCacheKey(in catalogInput) string {
	switch {
	case in.File != "":
		absPath, err := filepath.Abs(in.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case in.Content != "":
		h := sha256.Sum256([]byte(in.Content))
		return fmt.Sprintf("content:%s", hex.EncodeToString(h[:]))
	default:
		return ""
	}
}

// load parses the catalog from whichever input was provided, using the cache.
func (in catalogInput) load() (*papi.Catalog, error) {
	if err := options.ValidateSingleInputSource("catalog",
		"exactly one of file or content must be provided; got neither",
		"exactly one of file or content must be provided; got both",
		in.File != "", in.Content != ""); err != nil {
		return nil, err
	}
	if in.Content != "" && int64(len(in.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set PAPI2OAS_MCP_MAX_INLINE_SIZE to increase",
			len(in.Content), cfg.MaxInlineSize)
	}

	var key string
	ttl := cfg.CacheContentTTL
	if cfg.CacheEnabled {
		key = makeCacheKey(in)
		if in.File != "" {
			ttl = cfg.CacheFileTTL
		}
	}
	if key != "" {
		if cached := catalogCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var (
		cat *papi.Catalog
		err error
	)
	if in.File != "" {
		cat, err = papi.LoadCatalog(in.File)
	} else {
		cat, err = papi.ParseCatalog([]byte(in.Content), papi.FormatAuto)
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		catalogCache.putWithTTL(key, cat, ttl)
	}
	return cat, nil
}
