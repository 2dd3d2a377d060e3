package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cbuild/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cbuild/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cbuild/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cbuild/internal/adapters/store"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cbuild/internal/adapters/toolchain" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/cbuild/internal/core/ports"
)

// NodeID is the unique identifier for the build pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			store.NodeID,
			fs.FinderNodeID,
			toolchain.NodeID,
			shell.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			timestamps, err := graft.Dep[ports.TimestampStore](ctx)
			if err != nil {
				return nil, err
			}

			finder, err := graft.Dep[ports.SourceFinder](ctx)
			if err != nil {
				return nil, err
			}

			drivers, err := graft.Dep[ports.DriverFactory](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(timestamps, finder, drivers, executor, log), nil
		},
	})
}
