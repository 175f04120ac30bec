package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/oastypes"
	"github.com/erraggy/oastypes/oaserrors"
	"go.yaml.in/yaml/v4"
)

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent treats content starting with '{' or '[' as JSON and anything
// else as YAML.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r\uFEFF")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// detectFormatFromURL detects the format from the URL path, then the Content-Type header.
func detectFormatFromURL(urlStr string, contentType string) SourceFormat {
	if u, err := url.Parse(urlStr); err == nil && u.Path != "" {
		if format := detectFormatFromPath(u.Path); format != SourceFormatUnknown {
			return format
		}
	}
	mediaType, _, _ := strings.Cut(strings.ToLower(contentType), ";")
	switch strings.TrimSpace(mediaType) {
	case "application/json":
		return SourceFormatJSON
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return SourceFormatYAML
	}
	return SourceFormatUnknown
}

// isURL determines if the given path is a URL (http:// or https://)
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// fetchURL fetches content from a URL and returns the bytes and Content-Type header.
func (p *Parser) fetchURL(ctx context.Context, urlStr string) ([]byte, string, error) {
	client := p.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to create request: %w", err)
	}
	userAgent := p.UserAgent
	if userAgent == "" {
		userAgent = oastypes.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	p.log().Debug("fetching document", "url", urlStr)
	resp, err := client.Do(req) //nolint:gosec // URL is caller-provided input
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("parser: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", fmt.Errorf("parser: failed to read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, "", &oaserrors.ResourceLimitError{ResourceType: "file_size", Limit: limit, Message: urlStr}
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// decodeNode decodes a document into its root mapping node. JSON goes through the
// streaming fast path unless source locations were requested; the YAML decoder is the
// fallback because it also accepts JSON and reports line numbers on errors.
func (p *Parser) decodeNode(data []byte, format SourceFormat, name string) (*yaml.Node, error) {
	if format == SourceFormatJSON && !p.SourceLocations {
		root, err := decodeJSONNode(data)
		if err == nil {
			if !isMapping(root) {
				return nil, &oaserrors.ParseError{Path: name, Message: "document root must be an object"}
			}
			return root, nil
		}
		p.log().Debug("JSON fast path failed, falling back to YAML decoder", "source", name, "error", err)
	}

	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, &oaserrors.ParseError{Path: name, Message: "failed to decode document", Cause: err}
	}
	root := documentRoot(&n)
	if !isMapping(root) {
		return nil, &oaserrors.ParseError{Path: name, Message: "document root must be a mapping"}
	}
	return root, nil
}

// detectVersion reads the openapi field and rejects Swagger 2.0 and unknown versions.
func detectVersion(root *yaml.Node, name string) (Version, error) {
	if raw := str(root, "openapi"); raw != "" {
		v, err := ParseVersion(raw)
		if err != nil {
			return Version{}, &oaserrors.ParseError{Path: name, Message: fmt.Sprintf("invalid openapi version %q", raw)}
		}
		if !v.Supported() {
			return Version{}, &oaserrors.ParseError{
				Path:    name,
				Message: fmt.Sprintf("unsupported OpenAPI version %s (supported: 3.0.x, 3.1.x, 3.2.x)", raw),
			}
		}
		return v, nil
	}
	if raw := str(root, "swagger"); raw != "" {
		return Version{}, &oaserrors.ParseError{
			Path:    name,
			Message: fmt.Sprintf("Swagger %s documents are not supported; convert to OpenAPI 3.x first", raw),
		}
	}
	return Version{}, &oaserrors.ParseError{
		Path:    name,
		Message: "unable to detect OpenAPI version: document must contain an 'openapi' field",
	}
}
