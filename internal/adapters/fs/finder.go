// Package fs provides file system adapters for discovering translation units
// and walking project directories.
package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/cbuild/internal/core/domain"
	"go.trai.ch/cbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.SourceFinder = (*Finder)(nil)

// Finder lists translation units. Source directories are not searched recursively.
type Finder struct{}

// NewFinder creates a new Finder.
func NewFinder() *Finder {
	return &Finder{}
}

// Find lists the translation units of every directory in dirs, in order,
// followed by files. Directories are read concurrently. A path is reported once.
func (f *Finder) Find(dirs, files, exts []string) ([]string, error) {
	listed := make([][]string, len(dirs))

	var g errgroup.Group
	for i, dir := range dirs {
		g.Go(func() error {
			units, err := listDir(dir, exts)
			if err != nil {
				return err
			}
			listed[i] = units
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var result []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		result = append(result, path)
	}

	for _, units := range listed {
		for _, unit := range units {
			add(unit)
		}
	}
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil || info.IsDir() {
			return nil, zerr.With(domain.ErrFileNotFound, "path", file)
		}
		add(file)
	}

	return result, nil
}

// listDir returns the regular files of dir with a source extension, sorted by name.
func listDir(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDirectoryNotFound.Error()), "path", dir)
	}

	var units []string
	for _, entry := range entries {
		if entry.IsDir() || !domain.IsSourceFile(entry.Name(), exts) {
			continue
		}
		units = append(units, filepath.Join(dir, entry.Name()))
	}
	return units, nil
}
