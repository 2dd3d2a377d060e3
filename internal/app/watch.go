package app

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/cbuild/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/cbuild/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// headerExtensions are the extensions of files a change to which can stale a unit.
var headerExtensions = []string{".h", ".hh", ".hpp", ".hxx", ".h++", ".inl", ".inc"}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	Script        string
	Config        string
	PrintCommands bool
	Verbose       bool
}

// Watch builds the project, then rebuilds it whenever a source, header, the
// script or the settings file changes. Build failures are logged and watching
// continues. It returns when ctx is done.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	a.setVerbose(opts.Verbose)

	s, err := a.load(opts.Script, opts.Config, opts.PrintCommands)
	if err != nil {
		return err
	}
	a.rebuild(ctx, s)

	filter := newChangeFilter(s)
	if err := a.watcher.Start(ctx, filter.roots, filter.skip); err != nil {
		return err
	}
	a.logger.Info("Watching for changes. Press Ctrl+C to stop.")

	triggers := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		a.logger.Debug("Changed: " + strings.Join(paths, ", "))
		select {
		case triggers <- struct{}{}:
		default:
		}
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range a.watcher.Events() {
			if filter.relevant(event.Path) {
				debouncer.Add(event.Path)
			}
		}
		return nil
	})

	g.Go(func() error {
		defer func() { _ = a.watcher.Stop() }()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-triggers:
				next, err := a.load(s.project.Script, opts.Config, opts.PrintCommands)
				if err != nil {
					a.logger.Error(err)
					continue
				}
				a.rebuild(gctx, next)
			}
		}
	})

	return g.Wait()
}

// rebuild builds s and logs the outcome instead of returning it.
func (a *App) rebuild(ctx context.Context, s *session) {
	res, err := a.build(ctx, s, false, false)
	switch {
	case err != nil && ctx.Err() != nil:
	case err != nil:
		a.logger.Error(err)
	case !res.UpToDate && res.Artifact != "":
		a.logger.Info("Built " + relative(s.project.Root, res.Artifact))
	}
}

// changeFilter decides which file system events warrant a rebuild.
type changeFilter struct {
	roots    []string
	skip     []string
	script   string
	settings string
	exts     []string
}

func newChangeFilter(s *session) *changeFilter {
	p := s.project

	exts := s.settings.SourceExtensions
	if len(exts) == 0 {
		exts = domain.SourceExtensions
	}

	f := &changeFilter{
		script:   p.Script,
		settings: filepath.Join(p.Root, domain.SettingsFileName),
		exts:     append(append([]string(nil), exts...), headerExtensions...),
		skip: []string{
			p.ObjectOutput,
			p.BuildOutput,
			filepath.Dir(s.statePath),
		},
	}

	candidates := []string{p.Root}
	candidates = append(candidates, p.SourceDirs.Values()...)
	for _, file := range p.SourceFiles.Values() {
		candidates = append(candidates, filepath.Dir(file))
	}
	for _, dir := range candidates {
		if !f.covered(dir) {
			f.roots = append(f.roots, dir)
		}
	}
	return f
}

// covered reports whether dir lies inside an existing root.
func (f *changeFilter) covered(dir string) bool {
	for _, root := range f.roots {
		if within(root, dir) {
			return true
		}
	}
	return false
}

func (f *changeFilter) relevant(path string) bool {
	for _, dir := range f.skip {
		if within(dir, path) {
			return false
		}
	}
	if path == f.script || path == f.settings {
		return true
	}
	return domain.IsSourceFile(path, f.exts)
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
