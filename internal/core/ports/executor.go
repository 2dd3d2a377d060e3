package ports

import (
	"context"
	"io"

	"go.trai.ch/cbuild/internal/core/domain"
)

// Executor defines the interface for running external commands.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs cmd and waits for it to complete.
	//
	// Output is streamed to the logger line by line and copied to stdout
	// when it is not nil. It returns an error if the process cannot be
	// started or exits with a non-zero status.
	Execute(ctx context.Context, cmd domain.Command, stdout io.Writer) error
}
