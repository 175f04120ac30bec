package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oastypes/internal/cliutil"
	"github.com/erraggy/oastypes/internal/mcpserver"
)

// MCPFlags contains flags for the mcp command
type MCPFlags struct {
	Verbose bool
}

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
func SetupMCPFlags() (*flag.FlagSet, *MCPFlags) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	flags := &MCPFlags{}

	fs.BoolVar(&flags.Verbose, "v", false, "log debug output on stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log debug output on stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oastypes mcp [flags]\n\n")
		cliutil.Writef(fs.Output(), "Run a Model Context Protocol server on stdin/stdout.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nTools:\n")
		cliutil.Writef(fs.Output(), "  validate         check OpenAPI conformance\n")
		cliutil.Writef(fs.Output(), "  resolve_types    list the named types of a document\n")
		cliutil.Writef(fs.Output(), "  list_operations  list operation groups and operation signatures\n")
		cliutil.Writef(fs.Output(), "  generate         render Go sources, optionally writing them\n")
		cliutil.Writef(fs.Output(), "\nEnvironment:\n")
		cliutil.Writef(fs.Output(), "  OASTYPES_HTTP_REFS, OASTYPES_DEFAULT_PACKAGE, OASTYPES_GENERATE_STRICT,\n")
		cliutil.Writef(fs.Output(), "  OASTYPES_CACHE_*, OASTYPES_LIST_LIMIT, OASTYPES_MAX_LIMIT,\n")
		cliutil.Writef(fs.Output(), "  OASTYPES_MAX_INLINE_SIZE, OASTYPES_ALLOW_PRIVATE_IPS\n")
	}

	return fs, flags
}

// HandleMCP executes the mcp command. It blocks until the client disconnects or the
// process is interrupted.
func HandleMCP(args []string) error {
	fs, flags := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	// stdout carries the protocol, so logs go to stderr
	level := slog.LevelInfo
	if flags.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := mcpserver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
