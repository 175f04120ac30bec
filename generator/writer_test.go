package generator

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oastypes/internal/fileutil"
)

func TestWriteFiles(t *testing.T) {
	result := &GenerateResult{Files: []GeneratedFile{
		{Name: "types.go", Content: []byte("package api\n")},
		{Name: "metadata.go", Content: []byte("package api\n\nconst X = 1\n")},
	}}
	dir := filepath.Join(t.TempDir(), "nested", "api")

	assert.Empty(t, result.ExistingFiles(dir))
	require.NoError(t, result.WriteFiles(dir))

	for _, f := range result.Files {
		data, err := os.ReadFile(filepath.Join(dir, f.Name))
		require.NoError(t, err)
		assert.Equal(t, f.Content, data)

		if runtime.GOOS != "windows" {
			info, err := os.Stat(filepath.Join(dir, f.Name))
			require.NoError(t, err)
			assert.Equal(t, fileutil.ReadableByAll, info.Mode().Perm())
		}
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no staging files should remain")
	assert.Equal(t, []string{"types.go", "metadata.go"}, result.ExistingFiles(dir))
}

func TestWriteFiles_Overwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.go"), []byte("old"), 0o600))

	result := &GenerateResult{Files: []GeneratedFile{{Name: "types.go", Content: []byte("new")}}}
	assert.Equal(t, []string{"types.go"}, result.ExistingFiles(dir))
	require.NoError(t, result.WriteFiles(dir))

	data, err := os.ReadFile(filepath.Join(dir, "types.go"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteFiles_InvalidNames(t *testing.T) {
	tests := []struct {
		name  string
		files []GeneratedFile
	}{
		{"path separator", []GeneratedFile{{Name: "../evil.go"}}},
		{"nested", []GeneratedFile{{Name: "sub/types.go"}}},
		{"empty", []GeneratedFile{{Name: ""}}},
		{"dot", []GeneratedFile{{Name: "."}}},
		{"duplicate", []GeneratedFile{{Name: "a.go"}, {Name: "a.go"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			good := append([]GeneratedFile{{Name: "ok.go", Content: []byte("package api\n")}}, tt.files...)
			result := &GenerateResult{Files: good}

			require.Error(t, result.WriteFiles(dir))
			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "nothing may be written when a name is invalid")
		})
	}
}
