package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"github.com/otiai10/copy"
)

// copyOptions follows symlinked sources and writes the file they point to.
var copyOptions = copy.Options{
	PreserveTimes: true,
	OnSymlink:     func(string) copy.SymlinkAction { return copy.Deep },
}

// moveOptions carries a symlink over as a link.
var moveOptions = copy.Options{
	PreserveTimes: true,
	OnSymlink:     func(string) copy.SymlinkAction { return copy.Shallow },
}

// copyFile copies src to dst, creating dst's directories and keeping the
// permission bits and modification time of src. An existing dst is replaced.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return copy.Copy(src, dst, copyOptions)
}

// moveFile renames src to dst, creating dst's directories. Across
// filesystems it copies and then removes src.
func moveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copy.Copy(src, dst, moveOptions); err != nil {
		return fmt.Errorf("cross-device move: %w", err)
	}
	return os.Remove(src)
}

// removeEmptyDirs removes every directory below root that is empty once its
// own subdirectories have been processed, deepest first, so a parent left
// empty by its children goes too. root itself is kept. Symlinks are not
// followed. It returns the removed directories and the removals that failed.
func removeEmptyDirs(root string) ([]string, error) {
	var removed []string
	var problems *multierror.Error
	pruneDir(root, false, &removed, &problems)
	return removed, problems.ErrorOrNil()
}

func pruneDir(dir string, removeSelf bool, removed *[]string, problems **multierror.Error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		*problems = multierror.Append(*problems, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			pruneDir(filepath.Join(dir, entry.Name()), true, removed, problems)
		}
	}
	if !removeSelf {
		return
	}

	entries, err = os.ReadDir(dir)
	if err != nil {
		*problems = multierror.Append(*problems, err)
		return
	}
	if len(entries) > 0 {
		return
	}
	if err := os.Remove(dir); err != nil {
		*problems = multierror.Append(*problems, err)
		return
	}
	*removed = append(*removed, dir)
}
