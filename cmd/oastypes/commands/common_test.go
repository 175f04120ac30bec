package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oastypes/internal/issues"
	"github.com/erraggy/oastypes/internal/severity"
	"github.com/erraggy/oastypes/internal/testutil"
	"github.com/erraggy/oastypes/parser"
)

// captureOutput redirects the command streams for the duration of the test and returns
// the buffer receiving stdout.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	savedOut, savedErr := stdout, stderr
	stdout, stderr = &buf, io.Discard
	t.Cleanup(func() { stdout, stderr = savedOut, savedErr })
	return &buf
}

// feedStdin replaces stdin with content for the duration of the test.
func feedStdin(t *testing.T, content string) {
	t.Helper()
	saved := stdin
	stdin = strings.NewReader(content)
	t.Cleanup(func() { stdin = saved })
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1 << 20, "1.0 MiB"},
		{5 << 30, "5.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.n))
		})
	}
}

func TestValidateOutputDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(dir, link))

	assert.NoError(t, ValidateOutputDir(filepath.Join(dir, "new")))
	assert.NoError(t, ValidateOutputDir(dir))

	err := ValidateOutputDir(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")

	err = ValidateOutputDir(link)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symlink")
}

func TestOpenSource(t *testing.T) {
	src, err := openSource("openapi.yaml")
	require.NoError(t, err)
	assert.Equal(t, "openapi.yaml", src.name())
	assert.Nil(t, src.data)

	feedStdin(t, testutil.PetstoreYAML)
	src, err = openSource(StdinFilePath)
	require.NoError(t, err)
	assert.Equal(t, "<stdin>", src.name())
	assert.Equal(t, testutil.PetstoreYAML, string(src.data))

	pr, err := src.parse(context.Background(), parseOptions{logger: parser.NopLogger{}})
	require.NoError(t, err)
	assert.Equal(t, "<stdin>", pr.SourcePath)
	assert.Equal(t, "Petstore", pr.Document.Info.Title)
}

func TestSourceParse_Missing(t *testing.T) {
	src, err := openSource(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	_, err = src.parse(context.Background(), parseOptions{logger: parser.NopLogger{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestPrintIssues(t *testing.T) {
	list := []issues.Issue{
		{Pointer: "#/components/schemas/A", Message: "array without items", Severity: severity.SeverityWarning, Line: 12, Column: 7},
		{Pointer: "#/components/schemas/B", Message: "note", Severity: severity.SeverityInfo},
	}

	var buf bytes.Buffer
	printIssues(&buf, "Issues", "api.yaml", list, true)
	out := buf.String()
	assert.Contains(t, out, "Issues (2):")
	assert.Contains(t, out, "  api.yaml:12:7: #/components/schemas/A: array without items\n")
	assert.Contains(t, out, "#/components/schemas/B: note")

	buf.Reset()
	printIssues(&buf, "Issues", "api.yaml", list, false)
	assert.NotContains(t, buf.String(), "api.yaml:12:7")

	buf.Reset()
	printIssues(&buf, "Issues", "api.yaml", nil, true)
	assert.Empty(t, buf.String())
}
