package toolchain

import (
	"go.trai.ch/cbuild/internal/core/domain"
	"go.trai.ch/cbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory selects the compiler driver matching a project's toolchain.
type Factory struct {
	executor ports.Executor
	logger   ports.Logger
}

var _ ports.DriverFactory = (*Factory)(nil)

// NewFactory creates a Factory whose drivers run commands through executor.
func NewFactory(executor ports.Executor, logger ports.Logger) *Factory {
	return &Factory{executor: executor, logger: logger}
}

// New returns the driver for project.Toolchain configured with settings.
func (f *Factory) New(project *domain.Project, settings domain.Settings) (ports.CompilerDriver, error) {
	r := runner{
		executor:      f.executor,
		logger:        f.logger,
		dir:           project.ToolchainDir,
		printCommands: settings.PrintCommands,
	}
	overrides := settings.Toolchain(project.Toolchain)

	if project.Toolchain == domain.ToolchainAVRGCC {
		return newAVR(r, project, overrides)
	}
	p, ok := profiles[project.Toolchain]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownToolchain, "toolchain", project.Toolchain.String())
	}
	return newGNU(r, p, overrides), nil
}
