package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leftovers(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var hidden []string
	for _, e := range entries {
		if e.Name()[0] == '.' {
			hidden = append(hidden, e.Name())
		}
	}
	return hidden
}

func TestStageCommit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	names := []string{"types.go", "pets_api.go"}
	contents := map[string][]byte{"types.go": []byte("package a\n"), "pets_api.go": []byte("package a\n\n// pets\n")}

	staged, err := Stage(dir, names, contents, ReadableByAll)
	require.NoError(t, err)
	assert.Empty(t, Existing(dir, names), "nothing visible before commit")

	require.NoError(t, staged.Commit())
	for _, name := range names {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, contents[name], got)
	}
	assert.Empty(t, leftovers(t, dir))
}

func TestCommit_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "types.go"), []byte("old"), ReadableByAll))

	staged, err := Stage(dir, []string{"types.go"}, map[string][]byte{"types.go": []byte("new")}, ReadableByAll)
	require.NoError(t, err)
	require.NoError(t, staged.Commit())

	got, err := os.ReadFile(filepath.Join(dir, "types.go"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
	assert.Empty(t, leftovers(t, dir), "backups are removed after a successful commit")
}

func TestCommit_FailureRestoresDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("old a"), ReadableByAll))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c.go"), DirMode))

	names := []string{"a.go", "b.go", "c.go"}
	contents := map[string][]byte{"a.go": []byte("new a"), "b.go": []byte("new b"), "c.go": []byte("new c")}
	staged, err := Stage(dir, names, contents, ReadableByAll)
	require.NoError(t, err)

	err = staged.Commit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing c.go")

	got, err := os.ReadFile(filepath.Join(dir, "a.go"))
	require.NoError(t, err)
	assert.Equal(t, "old a", string(got), "replaced file is restored")
	assert.NoFileExists(t, filepath.Join(dir, "b.go"), "committed new file is removed")
	assert.DirExists(t, filepath.Join(dir, "c.go"))
	assert.Empty(t, leftovers(t, dir))
}

func TestDiscard(t *testing.T) {
	dir := t.TempDir()
	staged, err := Stage(dir, []string{"x.go"}, map[string][]byte{"x.go": []byte("x")}, ReadableByAll)
	require.NoError(t, err)
	staged.Discard()
	assert.Empty(t, leftovers(t, dir))
	assert.Empty(t, Existing(dir, []string{"x.go"}))
}
