package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"github.com/erraggy/oastypes"
	"github.com/erraggy/oastypes/analyzer"
	"github.com/erraggy/oastypes/generator"
	"github.com/erraggy/oastypes/internal/cliutil"
	"github.com/erraggy/oastypes/internal/preflight"
	"github.com/erraggy/oastypes/parser"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output       string
	PackageName  string
	LimitAPIs    string
	Verbose      bool
	DryRun       bool
	DefinedTypes bool
	Strict       bool
	Validate     bool
	HTTPRefs     bool
	Interactive  bool
	NoInfo       bool
	SourceMap    bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output directory for generated files (required unless --dry-run)")
	fs.StringVar(&flags.Output, "output", "", "output directory for generated files (required unless --dry-run)")
	fs.StringVar(&flags.PackageName, "p", "api", "Go package name for generated code")
	fs.StringVar(&flags.PackageName, "package", "api", "Go package name for generated code")
	fs.StringVar(&flags.LimitAPIs, "l", "", "comma-separated operation groups (tags) to generate")
	fs.StringVar(&flags.LimitAPIs, "limit-apis", "", "comma-separated operation groups (tags) to generate")
	fs.BoolVar(&flags.Verbose, "v", false, "enable debug logging on stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable debug logging on stderr")
	fs.BoolVar(&flags.DryRun, "d", false, "render files and report them without writing anything")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "render files and report them without writing anything")
	fs.BoolVar(&flags.Interactive, "i", false, "choose groups and confirm overwrites interactively")
	fs.BoolVar(&flags.Interactive, "interactive", false, "choose groups and confirm overwrites interactively")
	fs.BoolVar(&flags.DefinedTypes, "defined-types", false, "emit named aliases as defined types instead of type aliases")
	fs.BoolVar(&flags.Strict, "strict", false, "fail on any generation issues (even warnings)")
	fs.BoolVar(&flags.Validate, "validate", false, "check OpenAPI conformance before generating")
	fs.BoolVar(&flags.HTTPRefs, "http-refs", false, "follow http(s) $ref values")
	fs.BoolVar(&flags.NoInfo, "no-info", false, "suppress info messages")
	fs.BoolVar(&flags.SourceMap, "s", false, "include line numbers in issues (IDE-friendly format)")
	fs.BoolVar(&flags.SourceMap, "source-map", false, "include line numbers in issues (IDE-friendly format)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oastypes generate [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Generate Go types and client interfaces from an OpenAPI 3.x document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oastypes generate -o ./api openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oastypes generate -p petstore -o ./petstore -l pets,store petstore.yaml\n")
		cliutil.Writef(fs.Output(), "  oastypes generate --dry-run https://example.com/api/openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oastypes generate --validate --strict -o ./api openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oastypes generate -i -o ./api openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | oastypes generate -o ./api -\n")
		cliutil.Writef(fs.Output(), "\nOutput:\n")
		cliutil.Writef(fs.Output(), "  types.go        named types resolved from the document\n")
		cliutil.Writef(fs.Output(), "  <group>_api.go  one client interface per operation group\n")
		cliutil.Writef(fs.Output(), "  metadata.go     servers, security schemes and provenance\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Operations without tags are generated in the \"default\" group\n")
		cliutil.Writef(fs.Output(), "  - Files are written all-or-nothing\n")
		cliutil.Writef(fs.Output(), "  - Use '-' as the file path to read the document from stdin\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path, URL, or '-' for stdin")
	}
	if flags.Output == "" && !flags.DryRun {
		fs.Usage()
		return fmt.Errorf("output directory is required (use -o or --output, or --dry-run)")
	}
	if err := generator.ValidatePackageName(flags.PackageName); err != nil {
		return err
	}
	if flags.Output != "" {
		if err := ValidateOutputDir(flags.Output); err != nil {
			return err
		}
	}
	if flags.Interactive && fs.Arg(0) == StdinFilePath {
		return fmt.Errorf("--interactive cannot be combined with reading the document from stdin")
	}

	return runGenerate(context.Background(), fs.Arg(0), flags)
}

func runGenerate(ctx context.Context, specPath string, flags *GenerateFlags) error {
	logger := parser.NewTextLogger(stderr, flags.Verbose)
	startTime := time.Now()

	src, err := openSource(specPath)
	if err != nil {
		return err
	}

	if flags.Validate {
		checker := &preflight.Checker{AllowExternalRefs: true, Logger: logger}
		if _, err := src.preflight(ctx, checker); err != nil {
			return fmt.Errorf("validating %s: %w", src.name(), err)
		}
	}

	parseResult, err := src.parse(ctx, parseOptions{
		httpRefs:  flags.HTTPRefs,
		locations: flags.SourceMap,
		logger:    logger,
	})
	if err != nil {
		return err
	}

	groups := cliutil.SplitList(flags.LimitAPIs)
	if flags.Interactive && len(groups) == 0 {
		groups, err = chooseGroups(ctx, parseResult, logger)
		if err != nil {
			return err
		}
	}

	result, genErr := generator.GenerateWithOptions(
		generator.WithParsed(parseResult),
		generator.WithPackageName(flags.PackageName),
		generator.WithDefinedTypes(flags.DefinedTypes),
		generator.WithLimitGroups(groups...),
		generator.WithStrictMode(flags.Strict),
		generator.WithIncludeInfo(!flags.NoInfo),
		generator.WithGenerationInfo(generator.NewGenerationInfo()),
		generator.WithLogger(logger),
	)
	totalTime := time.Since(startTime)
	if result == nil {
		return fmt.Errorf("generating code: %w", genErr)
	}

	printGenerateReport(src, parseResult, result, flags, totalTime)

	if genErr != nil {
		return genErr
	}
	if !result.Success {
		cliutil.Writef(stdout, "✗ Generation completed with %d error(s)", result.ErrorCount)
		if result.WarningCount > 0 {
			cliutil.Writef(stdout, ", %d warning(s)", result.WarningCount)
		}
		cliutil.Writef(stdout, "\n")
		return fmt.Errorf("generation failed with %d error(s)", result.ErrorCount)
	}

	if flags.DryRun {
		printGeneratedFiles(result, "")
		cliutil.Writef(stdout, "Dry run: nothing written\n")
		return nil
	}

	if flags.Interactive {
		ok, err := cliutil.ConfirmOverwrite(ctx, newPrompter(), flags.Output, result.ExistingFiles(flags.Output))
		if err != nil {
			return err
		}
		if !ok {
			cliutil.Writef(stdout, "Nothing written\n")
			return nil
		}
	}

	if err := result.WriteFiles(flags.Output); err != nil {
		return fmt.Errorf("writing files: %w", err)
	}
	printGeneratedFiles(result, flags.Output)

	cliutil.Writef(stdout, "✓ Generation successful")
	if result.InfoCount > 0 || result.WarningCount > 0 {
		cliutil.Writef(stdout, " (%d info, %d warnings)", result.InfoCount, result.WarningCount)
	}
	cliutil.Writef(stdout, "\n")
	return nil
}

// chooseGroups analyzes the whole document once to offer its groups for selection. A
// selection of every group returns nil, meaning no limit.
func chooseGroups(ctx context.Context, pr *parser.ParseResult, logger parser.Logger) ([]string, error) {
	res, err := analyzer.AnalyzeWithOptions(
		analyzer.WithParseResult(pr),
		analyzer.WithContext(ctx),
		analyzer.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("analyzing document: %w", err)
	}
	names := make([]string, 0, len(res.Groups))
	for _, g := range res.OperationsByGroup() {
		names = append(names, g.Name)
	}
	chosen, err := cliutil.ChooseGroups(ctx, newPrompter(), names)
	if err != nil {
		return nil, err
	}
	if len(chosen) == len(names) {
		return nil, nil
	}
	return chosen, nil
}

func printGenerateReport(src source, pr *parser.ParseResult, result *generator.GenerateResult, flags *GenerateFlags, total time.Duration) {
	cliutil.Writef(stdout, "OpenAPI Type Generator\n")
	cliutil.Writef(stdout, "======================\n\n")
	cliutil.Writef(stdout, "oastypes version: %s\n", oastypes.Version())
	cliutil.Writef(stdout, "Specification: %s\n", src.name())
	cliutil.Writef(stdout, "OAS Version: %s\n", result.SourceVersion)
	cliutil.Writef(stdout, "Source Size: %s\n", FormatBytes(pr.SourceSize))
	cliutil.Writef(stdout, "Package: %s\n", result.PackageName)
	cliutil.Writef(stdout, "Types: %d\n", result.GeneratedTypes)
	cliutil.Writef(stdout, "Operations: %d\n", result.GeneratedOperations)
	cliutil.Writef(stdout, "Total Time: %v\n\n", total)

	printIssues(stdout, "Generation Issues", src.name(), result.Issues, flags.SourceMap)
}

func printGeneratedFiles(result *generator.GenerateResult, dir string) {
	cliutil.Writef(stdout, "Generated Files (%d):\n", len(result.Files))
	for _, file := range result.Files {
		name := file.Name
		if dir != "" {
			name = filepath.Join(dir, file.Name)
		}
		cliutil.Writef(stdout, "  - %s (%d bytes)\n", name, len(file.Content))
	}
	cliutil.Writef(stdout, "\n")
}
