// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes papi2oas capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	isilonsdk "github.com/Isilon/isilon-sdk"
)

const serverInstructions = `papi2oas MCP server: compiles OneFS PAPI describe catalogs into Swagger 2.0 documents.

A catalog is the JSON or YAML file holding the PAPI "version", the endpoint "directory" and one describe document per endpoint URI.

Configuration: defaults are configurable via PAPI2OAS_MCP_* environment variables set in your MCP client config.

Key settings:
- PAPI2OAS_MCP_CONFIG: papi2oas config file applied to compile calls without their own
- PAPI2OAS_MCP_CACHE_ENABLED (default: true): disable catalog caching entirely
- PAPI2OAS_MCP_CACHE_FILE_TTL (default: 15m): cache TTL for catalog files
- PAPI2OAS_MCP_ISSUE_LIMIT (default: 100): default number of issues returned

Caching: parsed catalogs are cached per session. File entries use path+mtime as key (auto-invalidated on change).`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	return newServer(ctx).Run(ctx, &mcp.StdioTransport{})
}

func newServer(ctx context.Context) *mcp.Server {
	if cfg.CacheEnabled {
		catalogCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "papi2oas", Version: isilonsdk.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "compile",
		Description: "Compile a PAPI describe catalog into a Swagger 2.0 document. Returns run statistics, the endpoints that failed, and the corrected schema irregularities (issues) with their endpoint and definition path. Use output to write the document to a file; otherwise it is returned inline only when include_document=true. Use validate=true to check the result through an OpenAPI 3 conversion. Use offset/limit to paginate issues.",
	}, handleCompile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve",
		Description: "Resolve the endpoint directory of a PAPI describe catalog: select the newest version of every endpoint, pair collections with their items and return them in processing order. Also lists excluded endpoints and unparseable versions. Use offset/limit to paginate pairs.",
	}, handleResolve)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.IssueLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.IssueLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
