package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastypes/internal/cliutil"
	"github.com/erraggy/oastypes/internal/preflight"
	"github.com/erraggy/oastypes/oaserrors"
	"github.com/erraggy/oastypes/parser"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Format       string
	Quiet        bool
	Examples     bool
	ExternalRefs bool
	Verbose      bool
}

// validationOutput is the structured form of a validate run.
type validationOutput struct {
	Source     string `json:"source" yaml:"source"`
	Valid      bool   `json:"valid" yaml:"valid"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
	Title      string `json:"title,omitempty" yaml:"title,omitempty"`
	Operations int    `json:"operations" yaml:"operations"`
	Schemas    int    `json:"schemas" yaml:"schemas"`
	Problem    string `json:"problem,omitempty" yaml:"problem,omitempty"`
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: print nothing, report through the exit code")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: print nothing, report through the exit code")
	fs.BoolVar(&flags.Examples, "examples", false, "also validate example values against their schemas")
	fs.BoolVar(&flags.ExternalRefs, "external-refs", true, "follow file and URL references")
	fs.BoolVar(&flags.Verbose, "v", false, "enable debug logging on stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable debug logging on stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oastypes validate [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Check that a document conforms to OpenAPI 3.x before generating from it.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oastypes validate openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oastypes validate --examples https://example.com/api/openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oastypes validate --format json openapi.yaml | jq '.valid'\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | oastypes validate -q -\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Document conforms\n")
		cliutil.Writef(fs.Output(), "  1    Document does not conform or could not be read\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path, URL, or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	src, err := openSource(fs.Arg(0))
	if err != nil {
		return err
	}
	checker := &preflight.Checker{
		AllowExternalRefs: flags.ExternalRefs,
		ValidateExamples:  flags.Examples,
		Logger:            parser.NewTextLogger(stderr, flags.Verbose),
	}

	out := validationOutput{Source: src.name()}
	report, err := src.preflight(context.Background(), checker)
	switch {
	case err == nil:
		out.Valid = true
		out.Version = report.Version
		out.Title = report.Title
		out.Operations = report.Operations
		out.Schemas = report.Schemas
	case errors.Is(err, oaserrors.ErrValidation) || errors.Is(err, oaserrors.ErrParse):
		out.Problem = err.Error()
	default:
		return err
	}

	if !flags.Quiet {
		if err := printValidation(out, flags.Format); err != nil {
			return err
		}
	}
	if !out.Valid {
		return fmt.Errorf("validation failed")
	}
	return nil
}

func printValidation(out validationOutput, format string) error {
	if format != FormatText {
		return OutputStructured(out, format)
	}
	if !out.Valid {
		cliutil.Writef(stdout, "✗ %s: %s\n", out.Source, out.Problem)
		return nil
	}
	cliutil.Writef(stdout, "✓ %s is valid\n", out.Source)
	cliutil.Writef(stdout, "  OAS Version: %s\n", out.Version)
	if out.Title != "" {
		cliutil.Writef(stdout, "  Title: %s\n", out.Title)
	}
	cliutil.Writef(stdout, "  Operations: %d\n", out.Operations)
	cliutil.Writef(stdout, "  Schemas: %d\n", out.Schemas)
	return nil
}

// OutputStructured writes data to stdout in the given format (json or yaml).
func OutputStructured(data any, format string) error {
	var (
		bytes []byte
		err   error
	)
	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}
	cliutil.Writef(stdout, "%s\n", bytes)
	return nil
}
