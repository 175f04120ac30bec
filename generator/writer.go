package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/erraggy/oastypes/internal/fileutil"
)

// WriteFiles writes all generated files to the specified output directory, creating it
// if needed. Files are staged under temporary names and renamed into place only after
// every file was written. A failed rename restores the files it had already replaced,
// so a failure leaves the directory as it was.
func (r *GenerateResult) WriteFiles(outputDir string) error {
	names, err := r.fileNames()
	if err != nil {
		return err
	}
	contents := make(map[string][]byte, len(r.Files))
	for _, f := range r.Files {
		contents[f.Name] = f.Content
	}

	staged, err := fileutil.Stage(outputDir, names, contents, fileutil.ReadableByAll)
	if err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	if err := staged.Commit(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	return nil
}

// ExistingFiles returns the names of generated files already present in outputDir.
func (r *GenerateResult) ExistingFiles(outputDir string) []string {
	names := make([]string, len(r.Files))
	for i, f := range r.Files {
		names[i] = f.Name
	}
	return fileutil.Existing(outputDir, names)
}

// fileNames validates the generated file names: plain, non-empty and unique.
func (r *GenerateResult) fileNames() ([]string, error) {
	seen := make(map[string]bool, len(r.Files))
	names := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		switch {
		case strings.TrimSpace(f.Name) == "" || f.Name == "." || f.Name == "..":
			return nil, fmt.Errorf("generator: invalid file name %q", f.Name)
		case filepath.Base(f.Name) != f.Name || strings.ContainsAny(f.Name, `/\`):
			return nil, fmt.Errorf("generator: invalid file name %q: must not contain path separators", f.Name)
		case seen[f.Name]:
			return nil, fmt.Errorf("generator: duplicate file name %q", f.Name)
		}
		seen[f.Name] = true
		names = append(names, f.Name)
	}
	return names, nil
}
