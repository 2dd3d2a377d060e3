package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cbuild/internal/adapters/fs"
	"go.trai.ch/cbuild/internal/core/domain"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
}

func TestFinder_Find(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	lib := filepath.Join(root, "lib")
	touch(t, filepath.Join(src, "main.c"))
	touch(t, filepath.Join(src, "app.CPP"))
	touch(t, filepath.Join(src, "util.h"))
	touch(t, filepath.Join(src, "nested", "deep.c"))
	touch(t, filepath.Join(lib, "b.cc"))
	touch(t, filepath.Join(lib, "a.c"))
	touch(t, filepath.Join(root, "extra.c"))

	finder := fs.NewFinder()
	got, err := finder.Find(
		[]string{lib, src},
		[]string{filepath.Join(root, "extra.c"), filepath.Join(src, "main.c")},
		domain.SourceExtensions,
	)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(lib, "a.c"),
		filepath.Join(lib, "b.cc"),
		filepath.Join(src, "app.CPP"),
		filepath.Join(src, "main.c"),
		filepath.Join(root, "extra.c"),
	}, got)
}

func TestFinder_Find_CustomExtensions(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "main.c"))
	touch(t, filepath.Join(root, "start.S"))

	got, err := fs.NewFinder().Find([]string{root}, nil, []string{".s"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "start.S")}, got)
}

func TestFinder_Find_DuplicateDirs(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "main.c"))

	got, err := fs.NewFinder().Find([]string{root, root + string(filepath.Separator)}, nil, domain.SourceExtensions)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "main.c")}, got)
}

func TestFinder_Find_Errors(t *testing.T) {
	root := t.TempDir()

	_, err := fs.NewFinder().Find([]string{filepath.Join(root, "missing")}, nil, domain.SourceExtensions)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrDirectoryNotFound.Error())

	_, err = fs.NewFinder().Find(nil, []string{filepath.Join(root, "gone.c")}, domain.SourceExtensions)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrFileNotFound.Error())
}

func TestFinder_Find_Empty(t *testing.T) {
	got, err := fs.NewFinder().Find([]string{t.TempDir()}, nil, domain.SourceExtensions)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWalker_WalkDirs(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"src/core", "include", ".git/objects", "obj/debug", "build"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o750))
	}
	touch(t, filepath.Join(root, "src", "main.c"))

	got := slices.Collect(fs.NewWalker().WalkDirs(root, []string{
		filepath.Join(root, "obj"),
		filepath.Join(root, "build") + string(filepath.Separator),
	}))

	assert.Equal(t, []string{
		root,
		filepath.Join(root, "include"),
		filepath.Join(root, "src"),
		filepath.Join(root, "src", "core"),
	}, got)
}

func TestWalker_WalkDirs_StopsEarly(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b"), 0o750))

	var seen []string
	for dir := range fs.NewWalker().WalkDirs(root, nil) {
		seen = append(seen, dir)
		break
	}
	assert.Equal(t, []string{root}, seen)
}

func TestWalker_WalkDirs_MissingRoot(t *testing.T) {
	got := slices.Collect(fs.NewWalker().WalkDirs(filepath.Join(t.TempDir(), "missing"), nil))
	assert.Empty(t, got)
}
