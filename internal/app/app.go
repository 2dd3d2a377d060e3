// Package app implements the application layer for cbuild.
package app

import (
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/cbuild/internal/adapters/store"   //nolint:depguard // Wired in app layer
	"go.trai.ch/cbuild/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/cbuild/internal/core/domain"
	"go.trai.ch/cbuild/internal/core/ports"
	"go.trai.ch/cbuild/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// Builder runs one incremental build of a project.
type Builder interface {
	Run(ctx context.Context, project *domain.Project, opts pipeline.Options) (pipeline.Result, error)
}

// App represents the main application logic.
type App struct {
	projects ports.ProjectLoader
	settings ports.SettingsLoader
	builder  Builder
	watcher  ports.Watcher
	logger   ports.Logger
	stdout   io.Writer
	debounce time.Duration
}

// New creates a new App instance.
func New(
	projects ports.ProjectLoader,
	settings ports.SettingsLoader,
	builder Builder,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		projects: projects,
		settings: settings,
		builder:  builder,
		watcher:  w,
		logger:   log,
		stdout:   os.Stdout,
		debounce: watcher.DefaultDebounceWindow,
	}
}

// WithStdout sets where a binary run after the build writes its output.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithDebounce sets how long Watch waits for changes to settle before rebuilding.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	// Script is the build script. Empty selects the first script in the working directory.
	Script string
	// Config overrides the configuration from the settings file when not empty.
	Config        string
	Force         bool
	DryRun        bool
	PrintCommands bool
	Verbose       bool
}

// session is a loaded project together with its effective settings.
type session struct {
	project   *domain.Project
	settings  domain.Settings
	statePath string
}

// Build loads the script and builds its project.
func (a *App) Build(ctx context.Context, opts BuildOptions) (pipeline.Result, error) {
	a.setVerbose(opts.Verbose)

	s, err := a.load(opts.Script, opts.Config, opts.PrintCommands)
	if err != nil {
		return pipeline.Result{}, err
	}
	return a.build(ctx, s, opts.Force, opts.DryRun)
}

func (a *App) build(ctx context.Context, s *session, force, dryRun bool) (pipeline.Result, error) {
	if !s.project.HasSources() {
		a.logger.Info("Nothing to build.")
		return pipeline.Result{UpToDate: true}, nil
	}

	res, err := a.builder.Run(ctx, s.project, pipeline.Options{
		Config:    s.settings.Config,
		Force:     force,
		DryRun:    dryRun,
		StatePath: s.statePath,
		Settings:  s.settings,
		Stdout:    a.stdout,
	})
	if errors.Is(err, domain.ErrNothingToBuild) {
		a.logger.Info("Nothing to build.")
		return res, nil
	}
	return res, err
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Script string
	// All also removes the object and build outputs of every configuration.
	All bool
}

// Clean removes the project's timestamp table and, with All, its build outputs.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	s, err := a.load(opts.Script, "", false)
	if err != nil {
		return err
	}

	var (
		errs    error
		removed int
	)
	remove := func(path string) {
		if _, err := os.Lstat(path); errors.Is(err, iofs.ErrNotExist) {
			return
		}
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", path))
			return
		}
		removed++
		a.logger.Info("Removed " + relative(s.project.Root, path))
	}

	remove(s.statePath)
	if opts.All {
		for _, cfg := range []domain.ConfigType{domain.ConfigDebug, domain.ConfigRelease} {
			remove(s.project.ObjectDir(cfg))
			remove(s.project.BuildDir(cfg))
		}
		if header := pipeline.LocatePCH(s.project); header != "" {
			remove(header + domain.PCHExtension)
		}
	}

	if removed == 0 && errs == nil {
		a.logger.Info("Nothing to clean.")
	}
	return errs
}

// load reads the script and the settings next to it, then applies the overrides.
func (a *App) load(script, config string, printCommands bool) (*session, error) {
	path, err := resolveScript(script)
	if err != nil {
		return nil, err
	}

	project, err := a.projects.Load(path)
	if err != nil {
		return nil, err
	}

	settings, err := a.settings.Load(project.Root)
	if err != nil {
		return nil, err
	}
	if config != "" {
		cfg, err := domain.ParseConfigType(config)
		if err != nil {
			return nil, zerr.With(err, "config", config)
		}
		settings.Config = cfg
	}
	if printCommands {
		settings.PrintCommands = true
	}

	return &session{
		project:   project,
		settings:  settings,
		statePath: store.Path(settings.StateDir, project),
	}, nil
}

// resolveScript returns script, or the first script in the working directory when it is empty.
func resolveScript(script string) (string, error) {
	if script != "" {
		return script, nil
	}
	matches, err := filepath.Glob("*" + domain.ScriptExtension)
	if err != nil || len(matches) == 0 {
		return "", domain.ErrScriptNotFound
	}
	return matches[0], nil
}

func (a *App) setVerbose(enable bool) {
	if l, ok := a.logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(enable)
	}
}

// relative shortens path against root when it lies below it.
func relative(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
