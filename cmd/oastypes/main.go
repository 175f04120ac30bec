package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/erraggy/oastypes"
	"github.com/erraggy/oastypes/cmd/oastypes/commands"
)

// commandNames lists every dispatchable command, for typo suggestions.
var commandNames = []string{"generate", "inspect", "validate", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version", "--version":
		printVersion(args)
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		err = commands.HandleGenerate(args)
	case "inspect":
		err = commands.HandleInspect(args)
	case "validate":
		err = commands.HandleValidate(args)
	case "mcp":
		err = commands.HandleMCP(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion(args []string) {
	if slices.Contains(args, "-v") || slices.Contains(args, "--verbose") {
		fmt.Printf("oastypes\n%s\n", oastypes.BuildInfo())
		return
	}
	fmt.Printf("oastypes %s\n", oastypes.Version())
}

// suggestCommand returns the known command closest to input, or "" when none is within
// an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`oastypes - Go types and client interfaces from OpenAPI 3.x

Usage:
  oastypes <command> [options]

Commands:
  generate    Generate Go types and client interfaces
  inspect     Print the resolved type model as JSON or YAML
  validate    Check OpenAPI conformance with kin-openapi
  mcp         Run the Model Context Protocol server on stdio
  version     Show version information (-v for build details)
  help        Show this help message

Examples:
  oastypes generate -o ./api openapi.yaml
  oastypes generate -p petstore -l pets,store -o ./petstore petstore.yaml
  oastypes inspect --format json https://example.com/api/openapi.yaml
  oastypes validate openapi.yaml

Run 'oastypes <command> --help' for more information on a command.`)
}
