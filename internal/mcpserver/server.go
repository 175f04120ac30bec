// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the oastypes pipeline as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/oastypes"
	"github.com/erraggy/oastypes/internal/issues"
	"github.com/erraggy/oastypes/internal/severity"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `oastypes MCP server: resolves the schemas of an OpenAPI 3.x document into a canonical Go type model, lists its operations bound to that model, and generates Go types and client interfaces.

Every tool takes a spec object with exactly one of file, url or content.

Suggested flow: validate first when a document is new, then resolve_types and list_operations to explore, then generate.

Configuration: defaults come from OASTYPES_* environment variables set in your MCP client config.
- OASTYPES_CACHE_ENABLED (default: true): cache parsed documents per session
- OASTYPES_CACHE_FILE_TTL (default: 15m), OASTYPES_CACHE_URL_TTL (default: 5m)
- OASTYPES_LIST_LIMIT (default: 100): default page size of resolve_types and list_operations
- OASTYPES_HTTP_REFS (default: false): follow http(s) $ref values
- OASTYPES_ALLOW_PRIVATE_IPS (default: false): allow URLs that resolve to private addresses
- OASTYPES_DEFAULT_PACKAGE (default: api): package name used by generate
- OASTYPES_GENERATE_STRICT (default: false): fail generate on warnings

Caching: file entries are keyed by path and modification time, so edits are picked up. A background sweeper removes expired entries.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		documents.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := newServer()
	return server.Run(ctx, &mcp.StdioTransport{})
}

func newServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oastypes", Version: oastypes.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Check that a document conforms to OpenAPI 3.x before resolving it. Returns the version, title and operation and schema counts, or the first conformance problem. Set validate_examples to also check example values.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_types",
		Description: "Resolve every schema a document declares or uses into named Go declarations: objects with ordered fields, enums with constants, and aliases. Field types are rendered in Go syntax (e.g. []Pet, map[string]int64, time.Time). Filter by names, or limit_groups to keep only types reachable from operations with those tags. Use offset/limit to paginate. Resolution issues are reported alongside.",
	}, handleResolveTypes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_operations",
		Description: "List the operations of a document grouped by tag, each with its Go method name, parameters, selected request body and selected success response bound to the resolved type model. Filter with group or limit_groups. Use offset/limit to paginate.",
	}, handleListOperations)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate a Go package from a document: types.go, one <group>_api.go interface per tag and metadata.go. Set output_dir to write the files, or include_content to return the source inline. Package name and strict mode default to OASTYPES_DEFAULT_PACKAGE and OASTYPES_GENERATE_STRICT.",
	}, handleGenerate)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
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

// pathPattern matches absolute filesystem paths in error messages.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
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

// issueInfo is the tool form of a resolution or generation issue.
type issueInfo struct {
	Severity  string `json:"severity"`
	Pointer   string `json:"pointer"`
	Operation string `json:"operation,omitempty"`
	Message   string `json:"message"`
}

// issueSummary converts issues and counts them by severity.
func issueSummary(list issues.List) (out []issueInfo, warnings, errors int) {
	out = makeSlice[issueInfo](len(list))
	for _, i := range list {
		out = append(out, issueInfo{
			Severity:  i.Severity.String(),
			Pointer:   i.Pointer,
			Operation: i.Operation,
			Message:   i.Message,
		})
	}
	return out, list.Count(severity.SeverityWarning), list.Count(severity.SeverityError)
}
