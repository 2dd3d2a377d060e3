package tracker_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cbuild/internal/core/domain"
	"go.trai.ch/cbuild/internal/core/ports/mocks"
	"go.trai.ch/cbuild/internal/engine/tracker"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	t      *testing.T
	root   string
	objDir string
	table  *domain.TimestampTable
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		t:      t,
		root:   root,
		objDir: filepath.Join(root, "obj"),
		table:  domain.NewTimestampTable(),
	}
	f.table.LastToolchain = domain.ToolchainGCC
	f.table.LastConfig = domain.ConfigDebug
	require.NoError(t, os.MkdirAll(f.objDir, domain.DirPerm))
	return f
}

func (f *fixture) write(rel, content string) string {
	f.t.Helper()
	path := filepath.Join(f.root, rel)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(f.t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

// remember stores the current mtime of every path as if a build had just finished.
func (f *fixture) remember(paths ...string) {
	f.t.Helper()
	for _, p := range paths {
		f.table.Set(domain.ConfigDebug, p, mtime(f.t, p))
	}
}

func (f *fixture) compiled(source string) {
	f.t.Helper()
	f.write(filepath.Join("obj", objectName(source)), "")
}

func (f *fixture) tracker(includeDirs ...string) *tracker.Tracker {
	ctrl := gomock.NewController(f.t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	return tracker.New(tracker.Options{
		Table:       f.table,
		Toolchain:   domain.ToolchainGCC,
		IncludeDirs: includeDirs,
		ObjectPath: func(_ domain.ConfigType, src string) string {
			return filepath.Join(f.objDir, objectName(src))
		},
		Logger: log,
	})
}

func objectName(source string) string {
	base := filepath.Base(source)
	return base[:len(base)-len(filepath.Ext(base))] + domain.ObjectExtension
}

func mtime(t *testing.T, path string) uint64 {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return uint64(info.ModTime().UnixNano())
}

func touch(t *testing.T, path string) {
	t.Helper()
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
}

func paths(records []domain.CheckedFile) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Path)
	}
	return out
}

func TestResolve_UnchangedFileIsUpToDate(t *testing.T) {
	f := newFixture(t)
	header := f.write("src/a.h", "int a(void);\n")
	main := f.write("src/main.c", "#include \"a.h\"\nint main(void) { return a(); }\n")
	f.remember(header, main)
	f.compiled(main)

	tr := f.tracker()
	assert.False(t, tr.Resolve(main, domain.ConfigDebug))

	checked := tr.Checked()
	assert.Equal(t, []string{header, main}, paths(checked))
	assert.Equal(t, mtime(t, main), checked[1].ModTime)
	assert.False(t, checked[1].NeedsRebuild)
}

func TestResolve_NestedHeaderTouchPropagates(t *testing.T) {
	f := newFixture(t)
	inner := f.write("src/b.h", "#define B 1\n")
	outer := f.write("src/a.h", "#include \"b.h\"\n")
	main := f.write("src/main.c", "#include \"a.h\"\n")
	f.remember(inner, outer, main)
	f.compiled(main)

	touch(t, inner)

	tr := f.tracker()
	assert.True(t, tr.Resolve(main, domain.ConfigDebug))

	checked := tr.Checked()
	require.Len(t, checked, 3)
	for _, rec := range checked {
		assert.True(t, rec.NeedsRebuild, rec.Path)
	}
	assert.Equal(t, mtime(t, inner), checked[0].ModTime)
}

func TestResolve_LocalMissFallsBackToIncludeDirs(t *testing.T) {
	f := newFixture(t)
	lib := f.write("include/lib.h", "void lib(void);\n")
	main := f.write("src/main.c", "#include \"lib.h\"\n")
	f.remember(main)
	f.compiled(main)

	tr := f.tracker(filepath.Join(f.root, "include"))
	assert.True(t, tr.Resolve(main, domain.ConfigDebug), "unrecorded header forces a rebuild")
	assert.Equal(t, []string{lib, main}, paths(tr.Checked()))
}

func TestResolve_SystemIncludeSearchesEveryDirectory(t *testing.T) {
	f := newFixture(t)
	first := f.write("one/x.h", "")
	second := f.write("two/x.h", "")
	main := f.write("src/main.c", "#include <x.h>\n#include <absent.h>\n")
	f.remember(first, second, main)
	f.compiled(main)

	tr := f.tracker(filepath.Join(f.root, "one"), filepath.Join(f.root, "two"))
	assert.False(t, tr.Resolve(main, domain.ConfigDebug))
	assert.Equal(t, []string{first, second, main}, paths(tr.Checked()))
}

func TestResolve_IdentityChangesForceRebuild(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*domain.TimestampTable)
	}{
		{
			name:  "toolchain switch",
			setup: func(tbl *domain.TimestampTable) { tbl.LastToolchain = domain.ToolchainClang },
		},
		{
			name:  "config switch",
			setup: func(tbl *domain.TimestampTable) { tbl.LastConfig = domain.ConfigRelease },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			header := f.write("src/a.h", "")
			main := f.write("src/main.c", "#include \"a.h\"\n")
			f.remember(header, main)
			f.compiled(main)
			tt.setup(f.table)

			tr := f.tracker()
			assert.True(t, tr.Resolve(main, domain.ConfigDebug))
			for _, rec := range tr.Checked() {
				assert.True(t, rec.NeedsRebuild, rec.Path)
			}
		})
	}
}

func TestResolve_FirstBuildWithoutLastConfig(t *testing.T) {
	f := newFixture(t)
	main := f.write("src/main.c", "")
	f.remember(main)
	f.compiled(main)
	f.table.LastConfig = domain.ConfigNone

	assert.False(t, f.tracker().Resolve(main, domain.ConfigDebug))
}

func TestResolve_MissingObjectForcesRebuild(t *testing.T) {
	f := newFixture(t)
	header := f.write("src/a.h", "")
	main := f.write("src/main.cpp", "#include \"a.h\"\n")
	f.remember(header, main)

	tr := f.tracker()
	assert.True(t, tr.Resolve(main, domain.ConfigDebug))

	checked := tr.Checked()
	require.Len(t, checked, 2)
	assert.False(t, checked[0].NeedsRebuild, "headers have no object file")
}

func TestResolve_MissingFile(t *testing.T) {
	f := newFixture(t)
	missing := filepath.Join(f.root, "src", "gone.c")

	tr := f.tracker()
	assert.False(t, tr.Resolve(missing, domain.ConfigDebug))
	assert.Equal(t, []domain.CheckedFile{{Path: missing}}, tr.Checked())
}

func TestResolve_IncludeCycleTerminates(t *testing.T) {
	f := newFixture(t)
	a := f.write("src/a.h", "#include \"b.h\"\n")
	b := f.write("src/b.h", "#include \"a.h\"\n")
	self := f.write("src/self.h", "#include \"self.h\"\n")
	main := f.write("src/main.c", "#include \"a.h\"\n#include \"self.h\"\n")
	f.remember(a, b, self, main)
	f.compiled(main)

	tr := f.tracker()
	assert.False(t, tr.Resolve(main, domain.ConfigDebug))
	assert.Equal(t, []string{b, a, self, main}, paths(tr.Checked()))
}

func TestResolve_MemoizesWithinPass(t *testing.T) {
	f := newFixture(t)
	shared := f.write("src/shared.h", "")
	one := f.write("src/one.c", "#include \"shared.h\"\n")
	two := f.write("src/two.c", "#include \"shared.h\"\n")
	f.remember(one, two)
	f.compiled(one)
	f.compiled(two)

	tr := f.tracker()
	assert.True(t, tr.Resolve(one, domain.ConfigDebug))
	assert.True(t, tr.Resolve(two, domain.ConfigDebug))
	assert.Equal(t, []string{shared, one, two}, paths(tr.Checked()))

	assert.True(t, tr.Resolve(one, domain.ConfigDebug))
	assert.Len(t, tr.Checked(), 3)
}

func TestResolve_ConfigChangeStartsNewPass(t *testing.T) {
	f := newFixture(t)
	main := f.write("src/main.c", "")
	f.remember(main)
	f.compiled(main)

	tr := f.tracker()
	assert.False(t, tr.Resolve(main, domain.ConfigDebug))
	require.Len(t, tr.Checked(), 1)

	assert.True(t, tr.Resolve(main, domain.ConfigRelease), "release has no recorded timestamps")
	require.Len(t, tr.Checked(), 1)
	assert.True(t, tr.Checked()[0].NeedsRebuild)

	tr.Reset()
	assert.Empty(t, tr.Checked())
}

func TestResolve_RelativePathIsCanonicalized(t *testing.T) {
	f := newFixture(t)
	main := f.write("main.c", "")
	f.remember(main)
	f.compiled(main)

	t.Chdir(f.root)
	tr := f.tracker()
	assert.False(t, tr.Resolve("main.c", domain.ConfigDebug))
	assert.Equal(t, []string{main}, paths(tr.Checked()))
}
