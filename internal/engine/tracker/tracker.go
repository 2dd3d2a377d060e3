// Package tracker decides which translation units need recompiling by walking
// their include graph and comparing modification times against the persisted
// timestamp table.
package tracker

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/cbuild/internal/core/domain"
	"go.trai.ch/cbuild/internal/core/ports"
	"go.trai.ch/cbuild/internal/engine/cdeps"
)

// Options configures a Tracker.
type Options struct {
	// Table holds the timestamps persisted by the previous build.
	Table *domain.TimestampTable
	// Toolchain is the toolchain of the current build.
	Toolchain domain.ToolchainName
	// IncludeDirs are searched, all of them, for system includes.
	IncludeDirs []string
	// ObjectPath maps a translation unit to its object file.
	ObjectPath func(cfg domain.ConfigType, source string) string
	// SourceExtensions identify translation units. Defaults to domain.SourceExtensions.
	SourceExtensions []string
	Logger           ports.Logger
}

// Tracker memoizes rebuild verdicts for one configuration at a time.
// It is not safe for concurrent use.
type Tracker struct {
	opts Options

	cfg      domain.ConfigType
	started  bool
	memo     map[string]int
	visiting map[string]struct{}
	checked  []domain.CheckedFile
}

// New returns a tracker with an empty pass.
func New(opts Options) *Tracker {
	if opts.Table == nil {
		opts.Table = domain.NewTimestampTable()
	}
	if len(opts.SourceExtensions) == 0 {
		opts.SourceExtensions = domain.SourceExtensions
	}
	t := &Tracker{opts: opts}
	t.Reset()
	return t
}

// Reset discards every verdict of the current pass.
func (t *Tracker) Reset() {
	t.started = false
	t.memo = make(map[string]int)
	t.visiting = make(map[string]struct{})
	t.checked = nil
}

// Checked returns the records of the current pass in completion order.
func (t *Tracker) Checked() []domain.CheckedFile {
	return slices.Clone(t.checked)
}

// Resolve reports whether path, or anything it transitively includes,
// changed since the last build under cfg. Missing and unreadable files
// never need a rebuild.
func (t *Tracker) Resolve(path string, cfg domain.ConfigType) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}

	if !t.started || cfg != t.cfg {
		t.Reset()
		t.cfg = cfg
		t.started = true
	}

	return t.resolve(abs)
}

func (t *Tracker) resolve(path string) bool {
	if idx, ok := t.memo[path]; ok {
		return t.checked[idx].NeedsRebuild
	}
	if _, ok := t.visiting[path]; ok {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		t.record(path, false, 0)
		return false
	}
	modTime := uint64(info.ModTime().UnixNano()) //nolint:gosec // mtimes are after 1970

	needsRebuild := t.seed(path, modTime)

	src, err := os.ReadFile(path)
	if err != nil {
		if t.opts.Logger != nil {
			t.opts.Logger.Debug(fmt.Sprintf("Could not read %s: %v", path, err))
		}
		t.record(path, false, modTime)
		return false
	}

	t.visiting[path] = struct{}{}
	defer delete(t.visiting, path)

	local, system := splitIncludes(cdeps.Lex(src).IncludeTargets())
	dir := filepath.Dir(path)

	for _, name := range local {
		candidate := filepath.Join(dir, name)
		if !isFile(candidate) {
			system = appendUnique(system, name)
			continue
		}
		if candidate == path {
			continue
		}
		if t.resolve(candidate) {
			needsRebuild = true
		}
	}

	for _, name := range system {
		for _, incDir := range t.opts.IncludeDirs {
			candidate, err := filepath.Abs(filepath.Join(incDir, name))
			if err != nil || candidate == path || !isFile(candidate) {
				continue
			}
			if t.resolve(candidate) {
				needsRebuild = true
			}
		}
	}

	t.record(path, needsRebuild, modTime)
	return needsRebuild
}

// seed computes the verdict of path before its includes are considered.
func (t *Tracker) seed(path string, modTime uint64) bool {
	table := t.opts.Table
	if table.LastToolchain != t.opts.Toolchain {
		return true
	}
	if table.LastConfig != domain.ConfigNone && table.LastConfig != t.cfg {
		return true
	}
	if t.opts.ObjectPath != nil && domain.IsSourceFile(path, t.opts.SourceExtensions) {
		if !isFile(t.opts.ObjectPath(t.cfg, path)) {
			return true
		}
	}
	stored, ok := table.Lookup(t.cfg, path)
	return !ok || stored != modTime
}

func (t *Tracker) record(path string, needsRebuild bool, modTime uint64) {
	t.memo[path] = len(t.checked)
	t.checked = append(t.checked, domain.CheckedFile{
		Path:         path,
		NeedsRebuild: needsRebuild,
		ModTime:      modTime,
	})
}

func splitIncludes(targets []cdeps.Include) (local, system []string) {
	for _, inc := range targets {
		if inc.System {
			system = appendUnique(system, inc.Path)
		} else {
			local = appendUnique(local, inc.Path)
		}
	}
	return local, system
}

func appendUnique(list []string, s string) []string {
	if slices.Contains(list, s) {
		return list
	}
	return append(list, s)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
