// Package toolchain turns compile and link requests into compiler invocations
// for gcc, clang and avr-gcc.
package toolchain

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/cbuild/internal/core/domain"
	"go.trai.ch/cbuild/internal/core/ports"
)

// runner executes toolchain programs, optionally from a fixed directory.
type runner struct {
	executor      ports.Executor
	logger        ports.Logger
	dir           string
	printCommands bool
}

// tool returns the path of the named program.
func (r *runner) tool(name string) string {
	if r.dir == "" {
		return name
	}
	return filepath.Join(r.dir, name)
}

func (r *runner) run(ctx context.Context, args ...string) error {
	cmd := domain.Command{Args: args}
	if r.printCommands {
		r.logger.Info(cmd.String())
	} else {
		r.logger.Debug(cmd.String())
	}
	return r.executor.Execute(ctx, cmd, nil)
}

// searchArgs renders include directories, library directories and static libraries.
func searchArgs(includes, libDirs, libs []string) []string {
	args := make([]string, 0, 2*(len(includes)+len(libDirs)+len(libs))+1)
	for _, dir := range includes {
		args = append(args, "-I", dir)
	}
	for _, dir := range libDirs {
		args = append(args, "-L", dir)
	}
	if len(libs) > 0 {
		args = append(args, "-static")
		for _, lib := range libs {
			args = append(args, "-l", lib)
		}
	}
	return args
}

// existing drops objects that were never produced.
func existing(objects []string) []string {
	out := make([]string, 0, len(objects))
	for _, obj := range objects {
		if _, err := os.Stat(obj); err == nil {
			out = append(out, obj)
		}
	}
	return out
}

func pick(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}

func pickFlags(override, fallback []string) []string {
	if len(override) > 0 {
		return override
	}
	return fallback
}
