// Package pipeline runs an incremental build of a project: it compiles the
// translation units the tracker reports as stale, links the artifact and
// persists the timestamp table.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/cbuild/internal/core/domain"
	"go.trai.ch/cbuild/internal/core/ports"
	"go.trai.ch/cbuild/internal/engine/tracker"
	"go.trai.ch/zerr"
)

// Options controls a single build.
type Options struct {
	Config domain.ConfigType
	// Force recompiles every translation unit and relinks.
	Force bool
	// DryRun reports what would be compiled without invoking the toolchain
	// or touching the file system.
	DryRun bool
	// StatePath is the timestamp table file.
	StatePath string
	Settings  domain.Settings
	// Stdout receives the output of the artifact when it is run after the build.
	Stdout io.Writer
}

// Result summarizes a build.
type Result struct {
	// Compiled lists the translation units that were (or, in a dry run, would be) compiled.
	Compiled []string
	Artifact string
	// UpToDate is true when nothing was compiled or linked.
	UpToDate bool
}

// Pipeline builds projects.
type Pipeline struct {
	store    ports.TimestampStore
	finder   ports.SourceFinder
	drivers  ports.DriverFactory
	executor ports.Executor
	logger   ports.Logger
}

// New creates a Pipeline.
func New(
	store ports.TimestampStore,
	finder ports.SourceFinder,
	drivers ports.DriverFactory,
	executor ports.Executor,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		store:    store,
		finder:   finder,
		drivers:  drivers,
		executor: executor,
		logger:   logger,
	}
}

type run struct {
	project *domain.Project
	opts    Options
	cfg     domain.ConfigType
	driver  ports.CompilerDriver
	table   *domain.TimestampTable
	tracker *tracker.Tracker

	compiled []string
	pchBuilt bool
}

// Run builds project under opts.Config.
func (p *Pipeline) Run(ctx context.Context, project *domain.Project, opts Options) (Result, error) {
	if !project.HasSources() {
		return Result{UpToDate: true}, domain.ErrNothingToBuild
	}

	cfg := opts.Config
	if cfg == domain.ConfigNone {
		cfg = domain.ConfigDebug
	}
	exts := opts.Settings.SourceExtensions
	if len(exts) == 0 {
		exts = domain.SourceExtensions
	}

	driver, err := p.drivers.New(project, opts.Settings)
	if err != nil {
		return Result{}, err
	}

	table, err := p.store.Load(opts.StatePath)
	if err != nil {
		return Result{}, err
	}

	if !opts.DryRun {
		for _, dir := range []string{project.ObjectDir(cfg), project.BuildDir(cfg)} {
			if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
				return Result{}, zerr.With(zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error()), "path", dir)
			}
		}
	}

	r := &run{
		project: project,
		opts:    opts,
		cfg:     cfg,
		driver:  driver,
		table:   table,
		tracker: tracker.New(tracker.Options{
			Table:            table,
			Toolchain:        project.Toolchain,
			IncludeDirs:      project.IncludeDirs.Values(),
			ObjectPath:       project.ObjectPath,
			SourceExtensions: exts,
			Logger:           p.logger,
		}),
	}

	if err := p.buildPCH(ctx, r); err != nil {
		return Result{}, err
	}

	sources, err := p.finder.Find(project.SourceDirs.Values(), project.SourceFiles.Values(), exts)
	if err != nil {
		return Result{}, zerr.Wrap(err, domain.ErrSourceDiscoveryFailed.Error())
	}
	if len(sources) == 0 {
		return Result{UpToDate: true}, domain.ErrNothingToBuild
	}
	if err := checkObjectPaths(project, cfg, sources); err != nil {
		return Result{}, err
	}

	objects, err := p.compile(ctx, r, sources)
	if err != nil {
		return Result{Compiled: r.compiled}, err
	}

	if opts.DryRun {
		return Result{
			Compiled: r.compiled,
			Artifact: project.ArtifactPath(cfg),
			UpToDate: len(r.compiled) == 0,
		}, nil
	}

	for _, rec := range r.tracker.Checked() {
		if rec.ModTime != 0 {
			table.Set(cfg, rec.Path, rec.ModTime)
		}
	}
	table.LastToolchain = project.Toolchain
	table.LastConfig = cfg

	if len(r.compiled) > 0 || r.pchBuilt {
		if err := p.store.Save(opts.StatePath, table); err != nil {
			return Result{Compiled: r.compiled}, err
		}
	}

	artifact, linked, err := p.link(ctx, r, objects)
	if err != nil {
		return Result{Compiled: r.compiled}, err
	}

	res := Result{
		Compiled: r.compiled,
		Artifact: artifact,
		UpToDate: len(r.compiled) == 0 && !linked,
	}
	if res.UpToDate {
		p.logger.Info("Everything is up-to-date.")
	}

	if project.Kind == domain.BuildBinary && project.RunAfterBuild {
		if err := p.runArtifact(ctx, r, artifact); err != nil {
			return res, err
		}
	}

	return res, nil
}

// buildPCH compiles the precompiled header when it or anything it includes changed.
func (p *Pipeline) buildPCH(ctx context.Context, r *run) error {
	if r.project.PrecompiledHeader == "" {
		return nil
	}

	header := LocatePCH(r.project)
	if header == "" {
		p.logger.Warn(fmt.Sprintf("Precompiled header '%s' not found", r.project.PrecompiledHeader))
		return nil
	}

	output := header + domain.PCHExtension
	stale := r.tracker.Resolve(header, r.cfg)
	if !r.opts.Force && !stale && exists(output) {
		return nil
	}

	if r.opts.DryRun {
		p.logger.Info("Would compile precompiled header " + display(r.project, header))
		return nil
	}

	p.logger.Info("Compiling precompiled header " + display(r.project, header))
	if err := r.driver.CompilePCH(ctx, compileRequest(r, header, output)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPCHCompileFailed.Error()), "header", header)
	}
	r.pchBuilt = true
	return nil
}

// compile compiles every stale unit in order and returns the object list of all units.
func (p *Pipeline) compile(ctx context.Context, r *run, sources []string) ([]string, error) {
	objects := make([]string, 0, len(sources))

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		obj := r.project.ObjectPath(r.cfg, src)
		objects = append(objects, obj)

		stale := r.tracker.Resolve(src, r.cfg)
		if !r.opts.Force && !stale {
			continue
		}

		if r.opts.DryRun {
			p.logger.Info("Would compile " + display(r.project, src))
			r.compiled = append(r.compiled, src)
			continue
		}

		p.logger.Info("Compiling " + display(r.project, src))
		if err := r.driver.CompileUnit(ctx, compileRequest(r, src, obj)); err != nil {
			p.persistPartial(r)
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "source", src)
		}
		r.compiled = append(r.compiled, src)
	}

	return objects, nil
}

// persistPartial saves what is known to be current after a failed compilation:
// files whose verdict was false and the units that compiled successfully.
func (p *Pipeline) persistPartial(r *run) {
	done := make(map[string]struct{}, len(r.compiled))
	for _, src := range r.compiled {
		if abs, err := filepath.Abs(src); err == nil {
			done[abs] = struct{}{}
		}
	}

	for _, rec := range r.tracker.Checked() {
		if rec.ModTime == 0 {
			continue
		}
		if _, ok := done[rec.Path]; ok || !rec.NeedsRebuild {
			r.table.Set(r.cfg, rec.Path, rec.ModTime)
		}
	}

	if err := p.store.Save(r.opts.StatePath, r.table); err != nil {
		p.logger.Error(err)
	}
}

// link produces the artifact when something was compiled, a rebuild was forced,
// or the artifact is missing. It reports whether the toolchain was invoked.
func (p *Pipeline) link(ctx context.Context, r *run, objects []string) (string, bool, error) {
	artifact := r.project.ArtifactPath(r.cfg)
	if len(r.compiled) == 0 && !r.opts.Force && exists(artifact) {
		return artifact, false, nil
	}

	req := domain.LinkRequest{
		Config:      r.cfg,
		Objects:     objects,
		Output:      artifact,
		IncludeDirs: r.project.IncludeDirs.Values(),
		LibraryDirs: r.project.LibraryDirs.Values(),
		StaticLibs:  r.project.StaticLibs.Values(),
	}

	var (
		out string
		err error
	)
	if r.project.Kind == domain.BuildStaticLibrary {
		p.logger.Info("Archiving " + display(r.project, artifact))
		out, err = r.driver.LinkStaticLib(ctx, req)
	} else {
		p.logger.Info("Linking " + display(r.project, artifact))
		out, err = r.driver.LinkBinary(ctx, req)
	}
	if err != nil {
		return "", true, zerr.With(zerr.Wrap(err, domain.ErrLinkFailed.Error()), "artifact", artifact)
	}
	if out == "" {
		out = artifact
	}
	return out, true, nil
}

func (p *Pipeline) runArtifact(ctx context.Context, r *run, artifact string) error {
	p.logger.Info("Running " + display(r.project, artifact))

	var err error
	if runner, ok := r.driver.(ports.ArtifactRunner); ok {
		err = runner.RunArtifact(ctx, artifact)
	} else {
		cmd := domain.Command{
			Args:       []string{artifact},
			WorkingDir: filepath.Dir(artifact),
		}
		err = p.executor.Execute(ctx, cmd, r.opts.Stdout)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRunFailed.Error()), "artifact", artifact)
	}
	return nil
}

// checkObjectPaths fails when two units map to one object file.
func checkObjectPaths(project *domain.Project, cfg domain.ConfigType, sources []string) error {
	owners := make(map[string]string, len(sources))
	for _, src := range sources {
		obj := project.ObjectPath(cfg, src)
		if first, ok := owners[obj]; ok {
			err := zerr.With(domain.ErrObjectCollision, "object", obj)
			err = zerr.With(err, "first", first)
			return zerr.With(err, "second", src)
		}
		owners[obj] = src
	}
	return nil
}

func compileRequest(r *run, source, output string) domain.CompileRequest {
	return domain.CompileRequest{
		Config:      r.cfg,
		Source:      source,
		Output:      output,
		IncludeDirs: r.project.IncludeDirs.Values(),
		LibraryDirs: r.project.LibraryDirs.Values(),
		StaticLibs:  r.project.StaticLibs.Values(),
	}
}

// LocatePCH finds the precompiled header as written, then inside each source
// directory. It returns "" when the project has none or it does not exist.
func LocatePCH(project *domain.Project) string {
	if project.PrecompiledHeader == "" {
		return ""
	}
	if path := project.Resolve(project.PrecompiledHeader); exists(path) {
		return path
	}
	if filepath.IsAbs(project.PrecompiledHeader) {
		return ""
	}
	for _, dir := range project.SourceDirs.Values() {
		if path := filepath.Join(dir, project.PrecompiledHeader); exists(path) {
			return path
		}
	}
	return ""
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// display shortens path relative to the project root when possible.
func display(project *domain.Project, path string) string {
	if rel, err := filepath.Rel(project.Root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
