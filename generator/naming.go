// This file prepares document text for Go comments and literals: HTML stripping,
// whitespace handling and truncation.

package generator

import (
	"html"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// maxDescriptionLength is the maximum length in runes of single-line descriptions
// before truncation.
const maxDescriptionLength = 200

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// textSanitizer returns the shared policy that strips every HTML element.
func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

// stripHTML removes markup and decodes the entities the sanitizer leaves behind.
func stripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	return html.UnescapeString(textSanitizer().Sanitize(s))
}

// cleanDescription prepares a description for a single-line comment: HTML stripped,
// whitespace collapsed and the result truncated to maxDescriptionLength runes.
func cleanDescription(s string) string {
	s = strings.Join(strings.Fields(stripHTML(s)), " ")
	runes := []rune(s)
	if len(runes) > maxDescriptionLength {
		s = strings.TrimSpace(string(runes[:maxDescriptionLength-3])) + "..."
	}
	return s
}

// commentLines splits a description into comment lines with HTML stripped. Blank runs
// collapse to a single empty line; leading and trailing blank lines are dropped.
func commentLines(s string) []string {
	var out []string
	blank := false
	for _, line := range strings.Split(stripHTML(s), "\n") {
		line = strings.TrimRight(strings.ReplaceAll(line, "\t", "    "), " \r")
		if strings.TrimSpace(line) == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}
	return out
}

// docComment renders a doc comment for name. The first description line follows the
// name; extra lines are appended after it.
func docComment(name, description string, extra ...string) []string {
	lines := commentLines(description)
	var out []string
	if len(lines) == 0 {
		out = append(out, name+" is generated from the API description.")
	} else {
		out = append(out, name+" "+strings.TrimSpace(lines[0]))
		out = append(out, lines[1:]...)
	}
	if len(extra) > 0 {
		out = append(out, "")
		out = append(out, extra...)
	}
	return out
}

// structTag returns the json tag literal for a field. Backquotes are used unless the wire
// name contains one.
func structTag(wireName string, required bool) string {
	tag := `json:"` + wireName
	if !required {
		tag += ",omitempty"
	}
	tag += `"`
	if strings.Contains(tag, "`") {
		return strconv.Quote(tag)
	}
	return "`" + tag + "`"
}
