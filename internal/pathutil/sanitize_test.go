package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeOutputPath(t *testing.T) {
	t.Run("existing directory accepted", func(t *testing.T) {
		tmpDir := t.TempDir()
		got, err := SanitizeOutputPath(tmpDir)
		require.NoError(t, err)
		assert.Equal(t, tmpDir, got)
	})

	t.Run("new path accepted and made absolute", func(t *testing.T) {
		got, err := SanitizeOutputPath("generated")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
	})

	t.Run("empty path rejected", func(t *testing.T) {
		_, err := SanitizeOutputPath("")
		require.Error(t, err)
	})

	t.Run("symlink rejected", func(t *testing.T) {
		tmpDir := t.TempDir()
		realDir := filepath.Join(tmpDir, "real")
		link := filepath.Join(tmpDir, "link")
		require.NoError(t, os.Mkdir(realDir, 0o755))
		if err := os.Symlink(realDir, link); err != nil {
			t.Skipf("symlinks not supported: %v", err)
		}
		_, err := SanitizeOutputPath(link)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "symlink")
	})
}

func TestWithinBase(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		target string
		want   bool
	}{
		{name: "child", base: "/specs", target: "/specs/pet.yaml", want: true},
		{name: "nested", base: "/specs", target: "/specs/a/b.yaml", want: true},
		{name: "same", base: "/specs", target: "/specs", want: true},
		{name: "parent", base: "/specs", target: "/etc/passwd", want: false},
		{name: "dot dot", base: "/specs", target: "/specs/../secret.yaml", want: false},
		{name: "dot dot prefix name", base: "/specs", target: "/specs/..data/x.yaml", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinBase(tt.base, tt.target))
		})
	}
}
