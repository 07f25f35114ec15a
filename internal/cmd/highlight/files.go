package highlight

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// findFiles returns the files under root matching any include pattern and
// no exclude pattern, sorted and as paths joined with root.
func findFiles(root string, include, exclude []string) ([]string, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to glob %q: %w", pattern, err)
		}
		for _, rel := range matches {
			if seen[rel] || excluded(rel, exclude) {
				continue
			}
			seen[rel] = true
			files = append(files, rel)
		}
	}

	sort.Strings(files)
	for i, rel := range files {
		files[i] = filepath.Join(root, filepath.FromSlash(rel))
	}
	return files, nil
}

// matches reports whether path, relative to root, is a file the pass
// should process.
func matches(root, path string, include, exclude []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if excluded(rel, exclude) {
		return false
	}
	for _, pattern := range include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func excluded(rel string, exclude []string) bool {
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
