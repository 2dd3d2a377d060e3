package toolchain

import (
	"context"

	"go.trai.ch/cbuild/internal/core/domain"
)

type profile struct {
	compiler     string
	archiver     string
	debugFlags   []string
	releaseFlags []string
}

var profiles = map[domain.ToolchainName]profile{
	domain.ToolchainGCC: {
		compiler:     "gcc",
		archiver:     "ar",
		debugFlags:   []string{"-Wall", "-g", "-D", "DEBUG"},
		releaseFlags: []string{"-Wall", "-O3", "-D", "NDEBUG"},
	},
	domain.ToolchainClang: {
		compiler:     "clang",
		archiver:     "llvm-ar",
		debugFlags:   []string{"-Wall", "-g"},
		releaseFlags: []string{"-Wall", "-O3"},
	},
}

// GNU drives gcc and clang, which share a command-line syntax.
type GNU struct {
	runner
	profile profile
}

func newGNU(r runner, p profile, s domain.ToolchainSettings) *GNU {
	return &GNU{
		runner: r,
		profile: profile{
			compiler:     pick(s.Compiler, p.compiler),
			archiver:     pick(s.Archiver, p.archiver),
			debugFlags:   pickFlags(s.DebugFlags, p.debugFlags),
			releaseFlags: pickFlags(s.ReleaseFlags, p.releaseFlags),
		},
	}
}

func (g *GNU) flags(cfg domain.ConfigType) []string {
	if cfg == domain.ConfigRelease {
		return g.profile.releaseFlags
	}
	return g.profile.debugFlags
}

// CompileUnit runs `cc <flags> <search> -c -o <obj> <src>`.
func (g *GNU) CompileUnit(ctx context.Context, req domain.CompileRequest) error {
	args := []string{g.tool(g.profile.compiler)}
	args = append(args, g.flags(req.Config)...)
	args = append(args, searchArgs(req.IncludeDirs, req.LibraryDirs, req.StaticLibs)...)
	args = append(args, "-c", "-o", req.Output, req.Source)
	return g.run(ctx, args...)
}

// CompilePCH runs `cc <flags> <search> -c <header> -o <gch>`.
func (g *GNU) CompilePCH(ctx context.Context, req domain.CompileRequest) error {
	args := []string{g.tool(g.profile.compiler)}
	args = append(args, g.flags(req.Config)...)
	args = append(args, searchArgs(req.IncludeDirs, req.LibraryDirs, req.StaticLibs)...)
	args = append(args, "-c", req.Source, "-o", req.Output)
	return g.run(ctx, args...)
}

// LinkBinary runs `cc <flags> <objects> <search> -o <binary>`.
func (g *GNU) LinkBinary(ctx context.Context, req domain.LinkRequest) (string, error) {
	args := []string{g.tool(g.profile.compiler)}
	args = append(args, g.flags(req.Config)...)
	args = append(args, existing(req.Objects)...)
	args = append(args, searchArgs(req.IncludeDirs, req.LibraryDirs, req.StaticLibs)...)
	args = append(args, "-o", req.Output)
	if err := g.run(ctx, args...); err != nil {
		return "", err
	}
	return req.Output, nil
}

// LinkStaticLib runs `ar rcs <library> <objects>`.
func (g *GNU) LinkStaticLib(ctx context.Context, req domain.LinkRequest) (string, error) {
	return archive(ctx, &g.runner, g.profile.archiver, req)
}

func archive(ctx context.Context, r *runner, archiver string, req domain.LinkRequest) (string, error) {
	args := []string{r.tool(archiver), "rcs", req.Output}
	args = append(args, existing(req.Objects)...)
	if err := r.run(ctx, args...); err != nil {
		return "", err
	}
	return req.Output, nil
}
