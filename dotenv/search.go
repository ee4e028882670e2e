package dotenv

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Find returns the first path where name exists as a file, checking
// each directory in dirs in order. With parents set, every ancestor of
// a directory is also checked, nearest first, before moving on to the
// next directory in the list. The returned error matches fs.ErrNotExist
// when the search is exhausted.
func Find(name string, dirs []string, parents bool) (string, error) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if parents {
			abs, err := filepath.Abs(dir)
			if err != nil {
				continue
			}
			dir = abs
		}
		for {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
			if !parents {
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	return "", fmt.Errorf("dotenv: %s not found in search path: %w", name, fs.ErrNotExist)
}

// SplitPath splits a path-list string on the platform separator
// (':' on Unix, ';' on Windows), dropping empty elements.
func SplitPath(s string) []string {
	var dirs []string
	for _, dir := range filepath.SplitList(s) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
