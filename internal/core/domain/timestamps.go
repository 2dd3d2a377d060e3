package domain

import (
	"maps"
	"slices"
)

// TimestampTable is the persisted record of file modification times per configuration.
type TimestampTable struct {
	LastToolchain ToolchainName
	LastConfig    ConfigType
	Entries       map[ConfigType]map[string]uint64
}

// NewTimestampTable returns an empty table.
func NewTimestampTable() *TimestampTable {
	return &TimestampTable{
		Entries: make(map[ConfigType]map[string]uint64),
	}
}

// Lookup returns the recorded timestamp of path under cfg.
func (t *TimestampTable) Lookup(cfg ConfigType, path string) (uint64, bool) {
	ts, ok := t.Entries[cfg][path]
	return ts, ok
}

// Set records the timestamp of path under cfg.
func (t *TimestampTable) Set(cfg ConfigType, path string, ts uint64) {
	if t.Entries == nil {
		t.Entries = make(map[ConfigType]map[string]uint64)
	}
	entries, ok := t.Entries[cfg]
	if !ok {
		entries = make(map[string]uint64)
		t.Entries[cfg] = entries
	}
	entries[path] = ts
}

// Delete removes path from cfg.
func (t *TimestampTable) Delete(cfg ConfigType, path string) {
	delete(t.Entries[cfg], path)
}

// Configs returns the configurations with at least one entry, sorted.
func (t *TimestampTable) Configs() []ConfigType {
	configs := make([]ConfigType, 0, len(t.Entries))
	for cfg, entries := range t.Entries {
		if len(entries) > 0 {
			configs = append(configs, cfg)
		}
	}
	slices.Sort(configs)
	return configs
}

// Paths returns the paths recorded under cfg, sorted.
func (t *TimestampTable) Paths(cfg ConfigType) []string {
	return slices.Sorted(maps.Keys(t.Entries[cfg]))
}

// CheckedFile is the verdict the dependency tracker reached for one file during a pass.
type CheckedFile struct {
	Path         string
	NeedsRebuild bool
	ModTime      uint64
}
