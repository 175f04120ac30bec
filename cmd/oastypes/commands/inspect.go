package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/oastypes/analyzer"
	"github.com/erraggy/oastypes/internal/cliutil"
	"github.com/erraggy/oastypes/internal/modeldump"
	"github.com/erraggy/oastypes/parser"
)

// InspectFlags contains flags for the inspect command
type InspectFlags struct {
	Format    string
	LimitAPIs string
	Types     string
	HTTPRefs  bool
	Verbose   bool
}

// SetupInspectFlags creates and configures a FlagSet for the inspect command.
func SetupInspectFlags() (*flag.FlagSet, *InspectFlags) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	flags := &InspectFlags{}

	fs.StringVar(&flags.Format, "f", "yaml", "output format: json or yaml")
	fs.StringVar(&flags.Format, "format", "yaml", "output format: json or yaml")
	fs.StringVar(&flags.LimitAPIs, "l", "", "comma-separated operation groups (tags) to include")
	fs.StringVar(&flags.LimitAPIs, "limit-apis", "", "comma-separated operation groups (tags) to include")
	fs.StringVar(&flags.Types, "t", "", "comma-separated type names to keep in the output")
	fs.StringVar(&flags.Types, "types", "", "comma-separated type names to keep in the output")
	fs.BoolVar(&flags.HTTPRefs, "http-refs", false, "follow http(s) $ref values")
	fs.BoolVar(&flags.Verbose, "v", false, "enable debug logging on stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable debug logging on stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oastypes inspect [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Print the resolved type model and operation groups of an OpenAPI 3.x document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oastypes inspect openapi.yaml\n")
		cliutil.Writef(fs.Output(), "  oastypes inspect --format json -l pets petstore.yaml\n")
		cliutil.Writef(fs.Output(), "  oastypes inspect -t Pet,NewPet petstore.yaml\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yaml | oastypes inspect -\n")
	}

	return fs, flags
}

// HandleInspect executes the inspect command
func HandleInspect(args []string) error {
	fs, flags := SetupInspectFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("inspect command requires exactly one file path, URL, or '-' for stdin")
	}
	format, err := modeldump.ParseFormat(flags.Format)
	if err != nil {
		return err
	}

	ctx := context.Background()
	logger := parser.NewTextLogger(stderr, flags.Verbose)

	src, err := openSource(fs.Arg(0))
	if err != nil {
		return err
	}
	pr, err := src.parse(ctx, parseOptions{httpRefs: flags.HTTPRefs, logger: logger})
	if err != nil {
		return err
	}

	res, err := analyzer.AnalyzeWithOptions(
		analyzer.WithParseResult(pr),
		analyzer.WithContext(ctx),
		analyzer.WithLimitGroups(cliutil.SplitList(flags.LimitAPIs)...),
		analyzer.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", src.name(), err)
	}

	model := modeldump.FromResult(res)
	model.KeepTypes(cliutil.SplitList(flags.Types)...)
	return modeldump.Encode(stdout, model, format)
}
