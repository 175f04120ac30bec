package generator

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/erraggy/oastypes/parser"
	"golang.org/x/tools/imports"
)

// formatAndFixImports formats Go source code and adds the standard library imports the
// rendered declarations use (context, io, time) while dropping unused ones.
func formatAndFixImports(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

var serverVariablePattern = regexp.MustCompile(`\{([^{}]+)\}`)

// serverURL expands server variables to their defaults and normalizes the result to end
// in "/". Absolute URLs without an http or https scheme get "http://"; relative paths stay
// relative.
func serverURL(s *parser.Server) string {
	defaults := make(map[string]string, len(s.Variables))
	for _, v := range s.Variables {
		defaults[v.Name] = v.Default
	}
	raw := serverVariablePattern.ReplaceAllStringFunc(strings.TrimSpace(s.URL), func(m string) string {
		if d, ok := defaults[m[1:len(m)-1]]; ok {
			return d
		}
		return m
	})

	switch {
	case raw == "":
		raw = "/"
	case strings.HasPrefix(raw, "/"):
	default:
		if u, err := url.Parse(raw); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			raw = "http://" + strings.TrimPrefix(raw, "//")
		}
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return raw
}
