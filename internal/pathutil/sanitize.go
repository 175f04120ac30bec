package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SanitizeOutputPath validates and cleans an output path.
// It resolves ".." components via filepath.Clean + filepath.Abs and
// rejects paths that resolve to symlinks. Paths that do not exist yet are
// accepted. Returns the cleaned absolute path.
func SanitizeOutputPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("pathutil: empty output path")
	}
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
		}
	case os.IsNotExist(err):
	default:
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	}
	return abs, nil
}

// WithinBase reports whether target, after cleaning, stays inside base.
func WithinBase(base, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(base), filepath.Clean(target))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
