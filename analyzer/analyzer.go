package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/erraggy/oastypes/internal/issues"
	"github.com/erraggy/oastypes/internal/naming"
	"github.com/erraggy/oastypes/internal/options"
	"github.com/erraggy/oastypes/internal/severity"
	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/parser"
	"github.com/erraggy/oastypes/typemodel"
)

// Analyzer indexes the operations of a document and resolves every schema they use.
type Analyzer struct {
	// LimitGroups restricts indexing to the named groups (tag names or their Go
	// identifiers). When set, only schemas reachable from those operations are resolved.
	LimitGroups []string
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger parser.Logger
}

// New creates a new Analyzer instance with default settings
func New() *Analyzer {
	return &Analyzer{}
}

func (a *Analyzer) log() parser.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return parser.NopLogger{}
}

// AnalyzeParsed indexes a parse result. Parse warnings are carried into the result's
// issues.
func (a *Analyzer) AnalyzeParsed(pr *parser.ParseResult) (*Result, error) {
	if pr == nil || pr.Document == nil {
		return nil, &oaserrors.ConfigError{Option: "input", Message: "analyzer: parse result has no document"}
	}
	res, err := a.Analyze(pr.Document)
	if err != nil {
		return nil, err
	}
	warnings := make(issues.List, 0, len(pr.Warnings)+len(res.issues))
	for _, w := range pr.Warnings {
		pointer, msg, ok := strings.Cut(w, ": ")
		if !ok {
			pointer, msg = "", w
		}
		warnings.Add(severity.SeverityWarning, pointer, "%s", msg)
	}
	res.issues = append(warnings, res.issues...)
	return res, nil
}

// Analyze indexes doc. Component schemas are resolved first in document order unless
// LimitGroups is set, then operations in path order. A schema that cannot be resolved
// on a path the generated signatures depend on fails the run.
func (a *Analyzer) Analyze(doc *parser.Document) (*Result, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{Option: "input", Message: "analyzer: document is nil"}
	}
	resolver := typemodel.NewResolver()
	resolver.Logger = a.Logger

	ix := &indexer{
		doc:      doc,
		resolver: resolver,
		log:      a.log(),
		result: &Result{
			Version:         doc.Version,
			Info:            doc.Info,
			Servers:         doc.Servers,
			SecuritySchemes: doc.Components.SecuritySchemes,
			Groups:          make([]*Group, 0),
			resolver:        resolver,
		},
		groups: make(map[string]*Group),
		limit:  a.limitFilter(),
	}

	if ix.limit == nil {
		for _, s := range doc.Components.Schemas {
			if _, err := resolver.Resolve(s, typemodel.Hint{}); err != nil {
				return nil, fmt.Errorf("analyzer: component %s: %w", s.Name, err)
			}
		}
		ix.log.Debug("resolved components", "schemas", len(doc.Components.Schemas), "declarations", resolver.Registry().Len())
	}

	if err := ix.index(); err != nil {
		return nil, err
	}
	for _, name := range a.LimitGroups {
		if !ix.limitMatched[name] {
			ix.result.issues.Add(severity.SeverityWarning, "#/paths", "no operations are tagged %q", name)
		}
	}

	ix.log.Info("analyzed document",
		"groups", len(ix.result.Groups),
		"operations", ix.operationCount,
		"types", resolver.Registry().Len())
	return ix.result, nil
}

// limitFilter returns the groups to keep keyed by tag name and identifier, or nil.
func (a *Analyzer) limitFilter() map[string]string {
	if len(a.LimitGroups) == 0 {
		return nil
	}
	m := make(map[string]string, 2*len(a.LimitGroups))
	for _, name := range a.LimitGroups {
		m[name] = name
		m[naming.ToTypeIdentifier(name)] = name
	}
	return m
}

// Option is a function that configures an analyze operation
type Option func(*analyzeConfig) error

// analyzeConfig holds configuration for an analyze operation
type analyzeConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult
	document *parser.Document

	ctx             context.Context
	limitGroups     []string
	logger          parser.Logger
	resolveHTTPRefs bool
	userAgent       string
}

// AnalyzeWithOptions indexes a document using functional options.
//
// Example:
//
//	result, err := analyzer.AnalyzeWithOptions(
//	    analyzer.WithFilePath("openapi.yaml"),
//	    analyzer.WithLimitGroups("pets"),
//	)
func AnalyzeWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("analyzer: invalid options: %w", err)
	}

	a := &Analyzer{
		LimitGroups: cfg.limitGroups,
		Logger:      cfg.logger,
	}

	switch {
	case cfg.document != nil:
		return a.Analyze(cfg.document)
	case cfg.parsed != nil:
		return a.AnalyzeParsed(cfg.parsed)
	}

	popts := []parser.Option{
		parser.WithFilePath(*cfg.filePath),
		parser.WithContext(cfg.ctx),
		parser.WithResolveHTTPRefs(cfg.resolveHTTPRefs),
		parser.WithLogger(cfg.logger),
	}
	if cfg.userAgent != "" {
		popts = append(popts, parser.WithUserAgent(cfg.userAgent))
	}
	pr, err := parser.ParseWithOptions(popts...)
	if err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}
	return a.AnalyzeParsed(pr)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*analyzeConfig, error) {
	cfg := &analyzeConfig{ctx: context.Background()}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := options.ValidateSingleInputSource(
		"analyzer", "WithFilePath, WithParseResult, or WithDocument",
		cfg.filePath != nil, cfg.parsed != nil, cfg.document != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a file path or URL to parse as the input source
func WithFilePath(path string) Option {
	return func(cfg *analyzeConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParseResult specifies an already parsed document as the input source
func WithParseResult(pr *parser.ParseResult) Option {
	return func(cfg *analyzeConfig) error {
		if pr == nil {
			return &oaserrors.ConfigError{Option: "WithParseResult", Message: "parse result cannot be nil"}
		}
		cfg.parsed = pr
		return nil
	}
}

// WithDocument specifies a parsed Document as the input source
func WithDocument(doc *parser.Document) Option {
	return func(cfg *analyzeConfig) error {
		if doc == nil {
			return &oaserrors.ConfigError{Option: "WithDocument", Message: "document cannot be nil"}
		}
		cfg.document = doc
		return nil
	}
}

// WithContext sets the context used when the input has to be parsed
func WithContext(ctx context.Context) Option {
	return func(cfg *analyzeConfig) error {
		if ctx == nil {
			return &oaserrors.ConfigError{Option: "WithContext", Message: "context cannot be nil"}
		}
		cfg.ctx = ctx
		return nil
	}
}

// WithLimitGroups restricts indexing to the named groups.
// Default: all groups
func WithLimitGroups(groups ...string) Option {
	return func(cfg *analyzeConfig) error {
		for _, g := range groups {
			if g = strings.TrimSpace(g); g != "" {
				cfg.limitGroups = append(cfg.limitGroups, g)
			}
		}
		return nil
	}
}

// WithLogger sets the logger for the analyzer, its resolver and, for file input, the
// parser
func WithLogger(l parser.Logger) Option {
	return func(cfg *analyzeConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithResolveHTTPRefs allows http(s) $ref values when parsing from a file path
// Default: false
func WithResolveHTTPRefs(enabled bool) Option {
	return func(cfg *analyzeConfig) error {
		cfg.resolveHTTPRefs = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent for URL input
// Default: "" (uses parser default)
func WithUserAgent(ua string) Option {
	return func(cfg *analyzeConfig) error {
		cfg.userAgent = ua
		return nil
	}
}
