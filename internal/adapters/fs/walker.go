package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker enumerates the directories below a project root.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkDirs yields root and every directory below it. Hidden directories and
// any directory in skip are not entered. Unreadable directories are skipped.
func (w *Walker) WalkDirs(root string, skip []string) iter.Seq[string] {
	skipped := make(map[string]struct{}, len(skip))
	for _, dir := range skip {
		skipped[filepath.Clean(dir)] = struct{}{}
	}

	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != root {
					return filepath.SkipDir
				}
				return err
			}
			if !d.IsDir() {
				return nil
			}

			if path != root && w.shouldSkipDir(path, d.Name(), skipped) {
				return filepath.SkipDir
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) shouldSkipDir(path, name string, skipped map[string]struct{}) bool {
	if len(name) > 1 && name[0] == '.' {
		return true
	}
	_, ok := skipped[filepath.Clean(path)]
	return ok
}
