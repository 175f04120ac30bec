package generator

import (
	"fmt"
	"time"

	"github.com/erraggy/oastypes"
	"github.com/erraggy/oastypes/analyzer"
	"github.com/erraggy/oastypes/internal/issues"
	"github.com/erraggy/oastypes/internal/severity"
	"github.com/erraggy/oastypes/parser"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates constructs that did not map cleanly
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates problems that make the output unusable
	SeverityError = severity.SeverityError
)

// GenerateIssue represents a single generation issue or limitation
type GenerateIssue = issues.Issue

// GeneratedFile represents a single generated file
type GeneratedFile struct {
	// Name is the file name (e.g., "types.go", "pets_api.go")
	Name string
	// Content is the generated Go source code
	Content []byte
}

// GenerateResult contains the results of generating code from an OpenAPI document
type GenerateResult struct {
	// Files contains all generated files in plan order: types.go, one file per group,
	// metadata.go
	Files []GeneratedFile
	// SourceVersion is the declared openapi version string
	SourceVersion string
	// PackageName is the Go package name used in generation
	PackageName string
	// Issues contains the findings of parsing, analysis and generation
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// ErrorCount is the total number of errors
	ErrorCount int
	// Success is true if generation completed without errors
	Success bool
	// GenerateTime is the time taken to render the files
	GenerateTime time.Duration
	// GeneratedTypes is the count of named declarations emitted
	GeneratedTypes int
	// GeneratedOperations is the count of interface methods emitted
	GeneratedOperations int
}

// HasErrors returns true if there are any error issues
func (r *GenerateResult) HasErrors() bool {
	return r.ErrorCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetFile returns the generated file with the given name, or nil if not found
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// GenerationInfo is the provenance stamped into metadata.go. It is passed in explicitly
// so output is reproducible for a fixed value.
type GenerationInfo struct {
	// Timestamp is the generation time, rendered as RFC 1123 and Unix seconds
	Timestamp time.Time
	// ToolVersion is the oastypes version, e.g. "v1.4.0"
	ToolVersion string
}

// NewGenerationInfo returns provenance for the current time and build.
func NewGenerationInfo() GenerationInfo {
	return GenerationInfo{Timestamp: time.Now(), ToolVersion: oastypes.Version()}
}

// Banner returns the generator banner used in file headers.
func (i GenerationInfo) Banner() string {
	return fmt.Sprintf("oastypes (version %s)", i.ToolVersion)
}

// Generator synthesizes Go declarations from an OpenAPI document: the named types of
// the resolved model and one client interface per operation group.
type Generator struct {
	// PackageName is the Go package name for generated code
	// If empty, defaults to "api"
	PackageName string

	// DefinedTypes emits named aliases as defined types (type X T) instead of
	// aliases (type X = T). Self-referential aliases are always defined types.
	DefinedTypes bool

	// LimitGroups restricts generation to the named operation groups.
	// Only types reachable from those groups are emitted.
	LimitGroups []string

	// StrictMode causes generation to fail on any warnings
	StrictMode bool

	// IncludeInfo determines whether to include informational messages
	IncludeInfo bool

	// ResolveHTTPRefs allows http(s) $ref values when parsing
	ResolveHTTPRefs bool

	// UserAgent is the User-Agent string used when fetching URLs
	UserAgent string

	// Info is stamped into metadata.go
	Info GenerationInfo

	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger parser.Logger
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		PackageName: "api",
		IncludeInfo: true,
		Info:        NewGenerationInfo(),
	}
}

func (g *Generator) log() parser.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return parser.NopLogger{}
}

// Generate generates code from an OpenAPI document file or URL
func (g *Generator) Generate(specPath string) (*GenerateResult, error) {
	p := parser.New()
	p.ResolveHTTPRefs = g.ResolveHTTPRefs
	p.Logger = g.Logger
	if g.UserAgent != "" {
		p.UserAgent = g.UserAgent
	}

	parseResult, err := p.Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to parse document: %w", err)
	}
	return g.GenerateParsed(parseResult)
}

// GenerateParsed generates code from an already-parsed document
func (g *Generator) GenerateParsed(parseResult *parser.ParseResult) (*GenerateResult, error) {
	a := analyzer.New()
	a.LimitGroups = g.LimitGroups
	a.Logger = g.Logger

	res, err := a.AnalyzeParsed(parseResult)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	return g.GenerateAnalysis(res)
}

// GenerateAnalysis generates code from an analyzed document. Every file is rendered in
// memory; nothing is written.
func (g *Generator) GenerateAnalysis(res *analyzer.Result) (*GenerateResult, error) {
	if res == nil {
		return nil, fmt.Errorf("generator: analysis result is nil")
	}
	startTime := time.Now()

	result := &GenerateResult{
		SourceVersion: res.Version,
		PackageName:   g.PackageName,
		Issues:        make([]GenerateIssue, 0),
	}
	if result.PackageName == "" {
		result.PackageName = "api"
	}

	pl := newPlan(g, res, result.PackageName)
	files, err := pl.render()
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	result.Files = files
	result.Issues = append(result.Issues, res.Issues()...)
	result.Issues = append(result.Issues, pl.issues...)
	result.GeneratedTypes = len(pl.decls)
	result.GeneratedOperations = pl.methodCount

	result.GenerateTime = time.Since(startTime)
	g.updateCounts(result)
	result.Success = result.ErrorCount == 0

	g.log().Info("generated code",
		"package", result.PackageName,
		"files", len(result.Files),
		"types", result.GeneratedTypes,
		"operations", result.GeneratedOperations,
		"duration", result.GenerateTime)

	// In strict mode, fail on any issues
	if g.StrictMode && (result.ErrorCount > 0 || result.WarningCount > 0) {
		return result, fmt.Errorf("generator: generation failed in strict mode: %d error(s), %d warning(s)",
			result.ErrorCount, result.WarningCount)
	}

	// Filter info messages if not included
	if !g.IncludeInfo {
		filtered := make([]GenerateIssue, 0, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Severity != SeverityInfo {
				filtered = append(filtered, issue)
			}
		}
		result.Issues = filtered
		result.InfoCount = 0
	}

	return result, nil
}

// updateCounts updates the issue counts in the result
func (g *Generator) updateCounts(result *GenerateResult) {
	list := issues.List(result.Issues)
	result.InfoCount = list.Count(SeverityInfo)
	result.WarningCount = list.Count(SeverityWarning)
	result.ErrorCount = list.Count(SeverityError)
}
