package ports

import (
	"context"

	"go.trai.ch/cbuild/internal/core/domain"
)

// CompilerDriver turns compile and link requests into toolchain invocations.
//
//go:generate mockgen -source=driver.go -destination=mocks/mock_driver.go -package=mocks
type CompilerDriver interface {
	// CompileUnit compiles one translation unit into req.Output.
	CompileUnit(ctx context.Context, req domain.CompileRequest) error
	// CompilePCH compiles the precompiled header req.Source into req.Output.
	CompilePCH(ctx context.Context, req domain.CompileRequest) error
	// LinkBinary links req.Objects and returns the path of the produced executable.
	LinkBinary(ctx context.Context, req domain.LinkRequest) (string, error)
	// LinkStaticLib archives req.Objects and returns the path of the produced library.
	LinkStaticLib(ctx context.Context, req domain.LinkRequest) (string, error)
}

// ArtifactRunner is implemented by drivers that know how to run their own artifacts,
// such as uploading firmware to a device.
type ArtifactRunner interface {
	RunArtifact(ctx context.Context, artifact string) error
}

// DriverFactory selects the compiler driver for a project.
type DriverFactory interface {
	New(project *domain.Project, settings domain.Settings) (CompilerDriver, error)
}
