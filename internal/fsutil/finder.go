// Package fsutil provides file system utility functions.
package fsutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ListBySuffix lists the immediate entries of dir whose names end with the
// specified suffix and which are regular files. It does not recurse into
// subdirectories. The returned paths are full paths in the enumeration order
// produced by os.ReadDir.
func ListBySuffix(dir string, suffix string) ([]string, error) {
	if suffix == "" {
		panic("suffix must not be empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		fullPath := filepath.Join(dir, entry.Name())
		if IsFile(fullPath) {
			files = append(files, fullPath)
		}
	}

	return files, nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is a regular file. Symlinks are
// followed, matching what callers expect when scanning installed codecs.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
