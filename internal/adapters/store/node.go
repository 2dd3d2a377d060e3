package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cbuild/internal/core/ports"
)

// NodeID is the unique identifier for the timestamp store Graft node.
const NodeID graft.ID = "adapter.timestamp_store"

func init() {
	graft.Register(graft.Node[ports.TimestampStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TimestampStore, error) {
			return New(), nil
		},
	})
}
