// Package issues provides the issue type collected while resolving schemas and indexing
// operations. Issues never stop a run by themselves; strict mode decides that.
package issues

import (
	"fmt"

	"github.com/erraggy/oastypes/internal/severity"
)

// Issue is a single non-fatal finding.
type Issue struct {
	// Pointer is the JSON pointer of the schema or operation concerned
	Pointer string `json:"pointer" yaml:"pointer"`
	// Message is a human-readable description of the issue
	Message string `json:"message" yaml:"message"`
	// Severity indicates the severity level of the issue
	Severity severity.Severity `json:"severity" yaml:"severity"`
	// Operation is "METHOD /path" when the issue was found while indexing an operation
	Operation string `json:"operation,omitempty" yaml:"operation,omitempty"`
	// Line is the 1-based line number in the source file (0 if unknown)
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
	// Column is the 1-based column number in the source file (0 if unknown)
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
}

// String returns a formatted string representation of the issue.
// Uses "✗" for errors, "⚠" for warnings and "ℹ" for info.
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	where := i.Pointer
	if i.Operation != "" {
		where = fmt.Sprintf("%s (%s)", where, i.Operation)
	}
	if i.Line > 0 {
		return fmt.Sprintf("%s %s (line %d, col %d): %s", symbol, where, i.Line, i.Column, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, where, i.Message)
}

// Location returns "line:column" when known, otherwise the pointer.
func (i Issue) Location() string {
	if i.Line == 0 {
		return i.Pointer
	}
	return fmt.Sprintf("%d:%d", i.Line, i.Column)
}

// List is an ordered collection of issues.
type List []Issue

// Add appends an issue.
func (l *List) Add(sev severity.Severity, pointer, format string, args ...any) {
	*l = append(*l, Issue{Pointer: pointer, Severity: sev, Message: fmt.Sprintf(format, args...)})
}

// Count returns the number of issues at exactly the given severity.
func (l List) Count(sev severity.Severity) int {
	n := 0
	for _, i := range l {
		if i.Severity == sev {
			n++
		}
	}
	return n
}

// AtLeast returns the issues whose severity is sev or higher.
func (l List) AtLeast(sev severity.Severity) List {
	var out List
	for _, i := range l {
		if i.Severity >= sev {
			out = append(out, i)
		}
	}
	return out
}
