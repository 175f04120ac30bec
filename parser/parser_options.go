package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/erraggy/oastypes"
	"github.com/erraggy/oastypes/internal/options"
)

// Option is a function that configures a parse operation
type Option func(*parseConfig) error

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	ctx             context.Context
	resolveHTTPRefs bool
	userAgent       string
	httpClient      *http.Client
	logger          Logger

	// Resource limits (0 means use default)
	maxRefDepth        int
	maxCachedDocuments int
	maxFileSize        int64

	sourceLocations bool

	// Override SourcePath in the result
	sourceName *string
	// Directory relative file refs of reader and byte inputs resolve against
	baseDir string
}

// ParseWithOptions parses an OpenAPI 3.x document using functional options.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("openapi.yaml"),
//	    parser.WithSourceLocations(true),
//	)
func ParseWithOptions(opts ...Option) (*ParseResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parser: invalid options: %w", err)
	}

	p := &Parser{
		ResolveHTTPRefs:    cfg.resolveHTTPRefs,
		UserAgent:          cfg.userAgent,
		HTTPClient:         cfg.httpClient,
		Logger:             cfg.logger,
		MaxRefDepth:        cfg.maxRefDepth,
		MaxCachedDocuments: cfg.maxCachedDocuments,
		MaxFileSize:        cfg.maxFileSize,
		SourceLocations:    cfg.sourceLocations,
	}

	var result *ParseResult
	switch {
	case cfg.filePath != nil:
		result, err = p.ParseContext(cfg.ctx, *cfg.filePath)
	case cfg.reader != nil:
		start := time.Now()
		data, readErr := io.ReadAll(io.LimitReader(cfg.reader, p.maxFileSize()+1))
		if readErr != nil {
			return nil, fmt.Errorf("parser: failed to read data: %w", readErr)
		}
		loadTime := time.Since(start)
		result, err = p.parseNamed(cfg.ctx, data, "ParseReader", cfg.baseDir)
		if result != nil {
			result.LoadTime = loadTime
		}
	default:
		result, err = p.parseNamed(cfg.ctx, cfg.bytes, "ParseBytes", cfg.baseDir)
	}
	if err != nil {
		return nil, err
	}

	if cfg.sourceName != nil {
		result.SourcePath = *cfg.sourceName
	}
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*parseConfig, error) {
	cfg := &parseConfig{
		ctx:       context.Background(),
		userAgent: oastypes.UserAgent(),
		baseDir:   ".",
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"parser", "WithFilePath, WithReader, or WithBytes",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *parseConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *parseConfig) error {
		if r == nil {
			return fmt.Errorf("parser: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *parseConfig) error {
		if data == nil {
			return fmt.Errorf("parser: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithContext sets the context used for HTTP fetches.
func WithContext(ctx context.Context) Option {
	return func(cfg *parseConfig) error {
		if ctx == nil {
			return fmt.Errorf("parser: context cannot be nil")
		}
		cfg.ctx = ctx
		return nil
	}
}

// WithResolveHTTPRefs enables fetching http(s) $ref targets.
// Disabled by default for SSRF protection.
func WithResolveHTTPRefs(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.resolveHTTPRefs = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
func WithUserAgent(ua string) Option {
	return func(cfg *parseConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for fetching URLs.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *parseConfig) error {
		cfg.httpClient = client
		return nil
	}
}

// WithLogger sets a structured logger for debug output.
//
// Example:
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("api.yaml"),
//	    parser.WithLogger(parser.NewSlogAdapter(slog.Default())),
//	)
func WithLogger(l Logger) Option {
	return func(cfg *parseConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxRefDepth bounds $ref chains between parameters, request bodies and responses.
// A value of 0 means use the default (100).
func WithMaxRefDepth(depth int) Option {
	return func(cfg *parseConfig) error {
		if err := options.NonNegative("maxRefDepth", depth); err != nil {
			return err
		}
		cfg.maxRefDepth = depth
		return nil
	}
}

// WithMaxCachedDocuments bounds the number of external documents loaded.
// A value of 0 means use the default (100).
func WithMaxCachedDocuments(count int) Option {
	return func(cfg *parseConfig) error {
		if err := options.NonNegative("maxCachedDocuments", count); err != nil {
			return err
		}
		cfg.maxCachedDocuments = count
		return nil
	}
}

// WithMaxFileSize bounds the size in bytes of every loaded document.
// A value of 0 means use the default (50MiB).
func WithMaxFileSize(size int64) Option {
	return func(cfg *parseConfig) error {
		if err := options.NonNegative("maxFileSize", size); err != nil {
			return err
		}
		cfg.maxFileSize = size
		return nil
	}
}

// WithSourceLocations records line and column numbers on schemas and operations so
// that resolution errors can point at the source.
func WithSourceLocations(enabled bool) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceLocations = enabled
		return nil
	}
}

// WithSourceName overrides SourcePath in the result.
func WithSourceName(name string) Option {
	return func(cfg *parseConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

// WithBaseDir sets the directory that relative file references of reader and byte
// inputs resolve against. File inputs always use their own directory.
func WithBaseDir(dir string) Option {
	return func(cfg *parseConfig) error {
		if dir == "" {
			return fmt.Errorf("parser: base directory cannot be empty")
		}
		cfg.baseDir = dir
		return nil
	}
}
