// Package fsutil provides file system utility functions.
package fsutil

import (
	"path/filepath"
)

// FindAncestor walks the ancestors of path outward, starting with the
// directory that contains it, and returns the first one whose base name
// equals name. path must be absolute and clean. The second return value
// is false when no ancestor matches.
func FindAncestor(path string, name string) (string, bool) {
	if name == "" {
		panic("name must not be empty")
	}

	dir := filepath.Dir(path)
	for {
		if filepath.Base(dir) == name {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
