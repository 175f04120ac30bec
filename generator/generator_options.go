package generator

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/erraggy/oastypes/analyzer"
	"github.com/erraggy/oastypes/internal/options"
	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/parser"
)

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult
	analysis *analyzer.Result

	packageName     string
	definedTypes    bool
	limitGroups     []string
	strictMode      bool
	includeInfo     bool
	resolveHTTPRefs bool
	userAgent       string
	info            *GenerationInfo
	logger          parser.Logger
}

// GenerateWithOptions generates code from an OpenAPI document using functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("openapi.yaml"),
//	    generator.WithPackageName("petstore"),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := &Generator{
		PackageName:     cfg.packageName,
		DefinedTypes:    cfg.definedTypes,
		LimitGroups:     cfg.limitGroups,
		StrictMode:      cfg.strictMode,
		IncludeInfo:     cfg.includeInfo,
		ResolveHTTPRefs: cfg.resolveHTTPRefs,
		UserAgent:       cfg.userAgent,
		Logger:          cfg.logger,
	}
	if cfg.info != nil {
		g.Info = *cfg.info
	} else {
		g.Info = NewGenerationInfo()
	}

	switch {
	case cfg.filePath != nil:
		return g.Generate(*cfg.filePath)
	case cfg.parsed != nil:
		return g.GenerateParsed(cfg.parsed)
	}
	if len(cfg.limitGroups) > 0 {
		return nil, &oaserrors.ConfigError{
			Option:  "WithLimitGroups",
			Message: "generator: groups are limited when analyzing; pass them to the analyzer instead",
		}
	}
	return g.GenerateAnalysis(cfg.analysis)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		packageName: "api",
		includeInfo: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource(
		"generator", "WithFilePath, WithParsed, or WithAnalysis",
		cfg.filePath != nil, cfg.parsed != nil, cfg.analysis != nil,
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a file path or URL as the input source
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source
func WithParsed(result *parser.ParseResult) Option {
	return func(cfg *generateConfig) error {
		if result == nil {
			return &oaserrors.ConfigError{Option: "WithParsed", Message: "parse result cannot be nil"}
		}
		cfg.parsed = result
		return nil
	}
}

// WithAnalysis specifies an analyzed document as the input source
func WithAnalysis(result *analyzer.Result) Option {
	return func(cfg *generateConfig) error {
		if result == nil {
			return &oaserrors.ConfigError{Option: "WithAnalysis", Message: "analysis result cannot be nil"}
		}
		cfg.analysis = result
		return nil
	}
}

// WithPackageName specifies the Go package name for generated code
// Default: "api"
func WithPackageName(name string) Option {
	return func(cfg *generateConfig) error {
		if err := ValidatePackageName(name); err != nil {
			return err
		}
		cfg.packageName = name
		return nil
	}
}

// ValidatePackageName reports whether name can be used as a Go package name.
func ValidatePackageName(name string) error {
	switch {
	case name == "":
		return &oaserrors.ConfigError{Option: "package", Message: "package name cannot be empty"}
	case !token.IsIdentifier(name) || token.IsKeyword(name):
		return &oaserrors.ConfigError{Option: "package", Value: name, Message: "package name must be a Go identifier"}
	case strings.ToLower(name) != name:
		return &oaserrors.ConfigError{Option: "package", Value: name, Message: "package name must be lower case"}
	}
	return nil
}

// WithDefinedTypes emits named aliases as defined types
// Default: false
func WithDefinedTypes(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.definedTypes = enabled
		return nil
	}
}

// WithLimitGroups restricts generation to the named operation groups
// Default: all groups
func WithLimitGroups(groups ...string) Option {
	return func(cfg *generateConfig) error {
		for _, g := range groups {
			if g = strings.TrimSpace(g); g != "" {
				cfg.limitGroups = append(cfg.limitGroups, g)
			}
		}
		return nil
	}
}

// WithStrictMode enables or disables strict mode (fail on any warnings)
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithIncludeInfo enables or disables informational messages
// Default: true
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// WithResolveHTTPRefs allows http(s) $ref values when parsing
// Default: false
func WithResolveHTTPRefs(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.resolveHTTPRefs = enabled
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "" (uses parser default)
func WithUserAgent(ua string) Option {
	return func(cfg *generateConfig) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithGenerationInfo sets the provenance stamped into metadata.go
// Default: NewGenerationInfo()
func WithGenerationInfo(info GenerationInfo) Option {
	return func(cfg *generateConfig) error {
		cfg.info = &info
		return nil
	}
}

// WithLogger sets the logger for parsing, analysis and generation
func WithLogger(l parser.Logger) Option {
	return func(cfg *generateConfig) error {
		cfg.logger = l
		return nil
	}
}
