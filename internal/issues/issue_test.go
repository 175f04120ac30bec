package issues

import (
	"testing"

	"github.com/erraggy/oastypes/internal/severity"
	"github.com/stretchr/testify/assert"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name:  "warning without location",
			issue: Issue{Pointer: "#/components/schemas/Pet", Message: "degraded", Severity: severity.SeverityWarning},
			want:  "⚠ #/components/schemas/Pet: degraded",
		},
		{
			name:  "error with line",
			issue: Issue{Pointer: "#/a", Message: "bad", Severity: severity.SeverityError, Line: 3, Column: 7},
			want:  "✗ #/a (line 3, col 7): bad",
		},
		{
			name:  "info with operation",
			issue: Issue{Pointer: "#/paths/~1pets/get", Message: "note", Severity: severity.SeverityInfo, Operation: "GET /pets"},
			want:  "ℹ #/paths/~1pets/get (GET /pets): note",
		},
		{
			name:  "unknown severity",
			issue: Issue{Pointer: "#/x", Message: "m", Severity: severity.Severity(42)},
			want:  "? #/x: m",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.issue.String())
		})
	}
}

func TestIssueLocation(t *testing.T) {
	assert.Equal(t, "#/a", Issue{Pointer: "#/a"}.Location())
	assert.Equal(t, "4:2", Issue{Pointer: "#/a", Line: 4, Column: 2}.Location())
}

func TestList(t *testing.T) {
	var l List
	l.Add(severity.SeverityWarning, "#/a", "alternate %s dropped", "text/xml")
	l.Add(severity.SeverityInfo, "#/b", "union collapsed")
	l.Add(severity.SeverityWarning, "#/c", "items missing")

	assert.Len(t, l, 3)
	assert.Equal(t, "alternate text/xml dropped", l[0].Message)
	assert.Equal(t, 2, l.Count(severity.SeverityWarning))
	assert.Equal(t, 1, l.Count(severity.SeverityInfo))
	assert.Len(t, l.AtLeast(severity.SeverityWarning), 2)
	assert.Empty(t, l.AtLeast(severity.SeverityError))
}
