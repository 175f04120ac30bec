// Package fileutil holds the file modes and staged-write helpers shared by the commands
// that put files on disk.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// OwnerReadWrite is the file permission mode for model dumps, which may carry internal
// API details (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for generated source code
// files intended to be read by build tools and other users.
const ReadableByAll os.FileMode = 0o644

// DirMode is the permission mode for created output directories.
const DirMode os.FileMode = 0o755

// Staged is a set of files written next to their destinations under temporary names.
// Nothing is visible under the final names until Commit.
type Staged struct {
	dir   string
	temps map[string]string
	order []string
}

// Stage writes every file in contents to a temporary file in dir, creating dir if
// needed. On error no temporary file is left behind.
func Stage(dir string, names []string, contents map[string][]byte, mode os.FileMode) (*Staged, error) {
	if err := os.MkdirAll(dir, DirMode); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	s := &Staged{dir: dir, temps: make(map[string]string, len(names))}
	for _, name := range names {
		tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
		if err != nil {
			s.Discard()
			return nil, fmt.Errorf("staging %s: %w", name, err)
		}
		s.temps[name] = tmp.Name()
		s.order = append(s.order, name)

		_, werr := tmp.Write(contents[name])
		cerr := tmp.Close()
		if err := errors.Join(werr, cerr); err != nil {
			s.Discard()
			return nil, fmt.Errorf("staging %s: %w", name, err)
		}
		if err := os.Chmod(tmp.Name(), mode); err != nil {
			s.Discard()
			return nil, fmt.Errorf("staging %s: %w", name, err)
		}
	}
	return s, nil
}

// Commit renames every staged file to its final name. Files that would be replaced are
// first moved aside. When any step fails, the files already committed are removed, the
// replaced ones are restored, the remaining temporary files are deleted and the error is
// returned, so the directory ends up as it was before Commit.
func (s *Staged) Commit() error {
	backups := make(map[string]string)
	var done []string
	for i, name := range s.order {
		if err := s.commitOne(name, backups); err != nil {
			s.rollback(done, backups, s.order[i:])
			return fmt.Errorf("writing %s: %w", name, err)
		}
		done = append(done, name)
	}
	for _, bak := range backups {
		_ = os.Remove(bak)
	}
	return nil
}

func (s *Staged) commitOne(name string, backups map[string]string) error {
	dest := filepath.Join(s.dir, name)
	info, err := os.Lstat(dest)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("%s is a directory", dest)
	case err == nil:
		bak := s.temps[name] + ".orig"
		if err := os.Rename(dest, bak); err != nil {
			return err
		}
		backups[name] = bak
	case !errors.Is(err, os.ErrNotExist):
		return err
	}
	return os.Rename(s.temps[name], dest)
}

func (s *Staged) rollback(done []string, backups map[string]string, pending []string) {
	for _, name := range pending {
		_ = os.Remove(s.temps[name])
	}
	for _, name := range done {
		_ = os.Remove(filepath.Join(s.dir, name))
	}
	for name, bak := range backups {
		_ = os.Rename(bak, filepath.Join(s.dir, name))
	}
}

// Discard removes every staged file.
func (s *Staged) Discard() {
	for _, name := range s.order {
		_ = os.Remove(s.temps[name])
	}
}

// Existing returns the names that already exist in dir, in the given order.
func Existing(dir string, names []string) []string {
	var out []string
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			out = append(out, name)
		}
	}
	return out
}
