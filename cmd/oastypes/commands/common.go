// Package commands provides CLI command handlers for oastypes.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/oastypes"
	"github.com/erraggy/oastypes/internal/cliutil"
	"github.com/erraggy/oastypes/internal/issues"
	"github.com/erraggy/oastypes/internal/pathutil"
	"github.com/erraggy/oastypes/internal/preflight"
	"github.com/erraggy/oastypes/parser"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// stdinName is reported as the source of documents read from stdin.
const stdinName = "<stdin>"

// Process streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// newPrompter returns the prompter used by --interactive.
var newPrompter = func() cliutil.Prompter {
	return &cliutil.SurveyPrompter{}
}

// source is a document read from a path, URL or stdin.
type source struct {
	path string
	data []byte // set only for stdin
}

func (s source) name() string {
	if s.path == StdinFilePath {
		return stdinName
	}
	return s.path
}

// openSource reads stdin eagerly so the same bytes can be checked and parsed. Paths and
// URLs are left to the parser.
func openSource(path string) (source, error) {
	if path != StdinFilePath {
		return source{path: path}, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return source{}, fmt.Errorf("reading stdin: %w", err)
	}
	return source{path: path, data: data}, nil
}

// parseOptions holds the parser settings shared by generate and inspect.
type parseOptions struct {
	httpRefs  bool
	locations bool
	logger    parser.Logger
}

func (s source) parse(ctx context.Context, po parseOptions) (*parser.ParseResult, error) {
	opts := []parser.Option{
		parser.WithContext(ctx),
		parser.WithResolveHTTPRefs(po.httpRefs),
		parser.WithSourceLocations(po.locations),
		parser.WithUserAgent(oastypes.UserAgent()),
		parser.WithLogger(po.logger),
	}
	if s.path == StdinFilePath {
		// relative refs resolve against the working directory
		opts = append(opts, parser.WithBytes(s.data), parser.WithSourceName(stdinName))
	} else {
		opts = append(opts, parser.WithFilePath(s.path))
	}

	pr, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.name(), err)
	}
	return pr, nil
}

// preflight runs the kin-openapi conformance check on s.
func (s source) preflight(ctx context.Context, checker *preflight.Checker) (*preflight.Report, error) {
	if s.path == StdinFilePath {
		return checker.CheckData(ctx, s.data)
	}
	return checker.CheckSource(ctx, s.path)
}

// printIssues lists issues under a heading. With locations set, issues carrying a
// source position are printed as "file:line:column: pointer: message".
func printIssues(w io.Writer, heading, file string, list []issues.Issue, locations bool) {
	if len(list) == 0 {
		return
	}
	cliutil.Writef(w, "%s (%d):\n", heading, len(list))
	for _, issue := range list {
		if locations && issue.Line > 0 {
			cliutil.Writef(w, "  %s:%s: %s: %s\n", file, issue.Location(), issue.Pointer, issue.Message)
			continue
		}
		cliutil.Writef(w, "  %s\n", issue.String())
	}
	cliutil.Writef(w, "\n")
}

// ValidateOutputDir checks that dir can receive generated files: it must not be a
// symlink, and must be a directory if it exists.
func ValidateOutputDir(dir string) error {
	abs, err := pathutil.SanitizeOutputPath(dir)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("commands: output path %s is not a directory", abs)
	}
	return nil
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
