package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/erraggy/oastypes"
	"github.com/erraggy/oastypes/oaserrors"
)

// Default resource limits.
const (
	DefaultMaxRefDepth        = 100
	DefaultMaxCachedDocuments = 100
	DefaultMaxFileSize        = 50 << 20
)

// Parser loads OpenAPI 3.x documents into read-only Document trees.
type Parser struct {
	// ResolveHTTPRefs allows $ref values pointing at http(s) URLs to be fetched.
	// Disabled by default for SSRF protection.
	ResolveHTTPRefs bool
	// UserAgent is the User-Agent string used when fetching URLs.
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a client with a 30-second timeout is used.
	HTTPClient *http.Client
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger Logger

	// Resource limits (0 means use default)

	// MaxRefDepth bounds $ref chains between parameters, bodies and responses.
	MaxRefDepth int
	// MaxCachedDocuments bounds the number of external documents loaded per parse.
	MaxCachedDocuments int
	// MaxFileSize bounds the size of the root and every external document.
	MaxFileSize int64

	// SourceLocations records line and column on schemas and operations.
	// It disables the JSON fast path.
	SourceLocations bool
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		UserAgent: oastypes.UserAgent(),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

func (p *Parser) maxRefDepth() int {
	if p.MaxRefDepth > 0 {
		return p.MaxRefDepth
	}
	return DefaultMaxRefDepth
}

func (p *Parser) maxCachedDocuments() int {
	if p.MaxCachedDocuments > 0 {
		return p.MaxCachedDocuments
	}
	return DefaultMaxCachedDocuments
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains the parsed document and load metadata.
// Callers should treat it as read-only.
type ParseResult struct {
	// SourcePath is the file path or URL the document was read from. For readers and
	// byte slices it is "ParseReader.<ext>" or "ParseBytes.<ext>".
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Version is the declared openapi version string
	Version string
	// Document is the parsed document
	Document *Document
	// Warnings lists non-fatal problems such as schema refs that could not be resolved.
	// The resolver reports those again, as errors, if it needs them.
	Warnings []string
	// DocumentCount is the number of documents loaded, the root included
	DocumentCount int
	// LoadTime is the time taken to read the source
	LoadTime time.Duration
	// SourceSize is the size of the root source in bytes
	SourceSize int64
}

// Parse parses a document from a file path or an http(s) URL.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	return p.ParseContext(context.Background(), specPath)
}

// ParseContext is Parse with a context governing HTTP fetches.
func (p *Parser) ParseContext(ctx context.Context, specPath string) (*ParseResult, error) {
	start := time.Now()
	if isURL(specPath) {
		data, contentType, err := p.fetchURL(ctx, specPath)
		if err != nil {
			return nil, err
		}
		loadTime := time.Since(start)
		format := detectFormatFromURL(specPath, contentType)
		res, err := p.parse(ctx, data, format, source{dir: ".", url: specPath, name: specPath})
		if err != nil {
			return nil, err
		}
		res.LoadTime = loadTime
		return res, nil
	}

	data, err := p.readFile(specPath)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(start)
	res, err := p.parse(ctx, data, detectFormatFromPath(specPath), source{dir: filepath.Dir(specPath), name: specPath, file: specPath})
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ParseReader parses a document from an io.Reader.
// Relative file references resolve against the current directory.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	start := time.Now()
	data, err := io.ReadAll(io.LimitReader(r, p.maxFileSize()+1))
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	loadTime := time.Since(start)
	res, err := p.parseNamed(context.Background(), data, "ParseReader", ".")
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes parses a document from a byte slice.
// Relative file references resolve against the current directory.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	return p.parseNamed(context.Background(), data, "ParseBytes", ".")
}

func (p *Parser) parseNamed(ctx context.Context, data []byte, name, baseDir string) (*ParseResult, error) {
	format := detectFormatFromContent(data)
	ext := ".yaml"
	if format == SourceFormatJSON {
		ext = ".json"
	}
	return p.parse(ctx, data, format, source{dir: baseDir, name: name + ext})
}

func (p *Parser) readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	if info.Size() > p.maxFileSize() {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        p.maxFileSize(),
			Actual:       info.Size(),
			Message:      path,
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	return data, nil
}

// source describes where a document came from, for resolving relative refs.
type source struct {
	dir  string
	url  string
	name string
	file string
}

func (p *Parser) parse(ctx context.Context, data []byte, format SourceFormat, src source) (*ParseResult, error) {
	if int64(len(data)) > p.maxFileSize() {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        p.maxFileSize(),
			Actual:       int64(len(data)),
			Message:      src.name,
		}
	}
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}

	root, err := p.decodeNode(data, format, src.name)
	if err != nil {
		return nil, err
	}

	version, err := detectVersion(root, src.name)
	if err != nil {
		return nil, err
	}

	absDir, err := filepath.Abs(src.dir)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to resolve base directory: %w", err)
	}

	rootDoc := &rawDoc{root: root, dir: absDir, url: src.url}
	if src.file != "" {
		if abs, err := filepath.Abs(src.file); err == nil {
			rootDoc.file = abs
		}
	}
	l := newLoader(ctx, p, rootDoc)
	doc, err := l.load()
	if err != nil {
		return nil, err
	}
	doc.Version = str(root, "openapi")
	doc.OASVersion = version

	p.log().Debug("parsed document",
		"source", src.name,
		"version", doc.Version,
		"schemas", len(doc.Components.Schemas),
		"paths", len(doc.Paths),
		"documents", len(l.docs),
	)

	return &ParseResult{
		SourcePath:    src.name,
		SourceFormat:  format,
		Version:       doc.Version,
		Document:      doc,
		Warnings:      l.warnings,
		DocumentCount: len(l.docs),
		SourceSize:    int64(len(data)),
	}, nil
}
