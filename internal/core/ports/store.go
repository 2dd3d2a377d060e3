package ports

import "go.trai.ch/cbuild/internal/core/domain"

// TimestampStore persists the timestamp table between builds.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type TimestampStore interface {
	// Load reads the table at path. A missing file yields an empty table.
	Load(path string) (*domain.TimestampTable, error)
	// Save writes the table to path, creating parent directories as needed.
	Save(path string, table *domain.TimestampTable) error
}
