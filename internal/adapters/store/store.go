// Package store persists timestamp tables in the line-oriented .cbuild_config format.
package store

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/cbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	toolchainKey = "last_used_compiler"
	configKey    = "last_used_config_type"
)

// Store implements ports.TimestampStore on the local file system.
type Store struct{}

// New creates a Store.
func New() *Store {
	return &Store{}
}

// FileName returns the table file name for a project: the project name and a
// hash of the script path, so two scripts sharing a state directory never collide.
func FileName(projectName, scriptPath string) string {
	return fmt.Sprintf("%s_%016x%s", projectName, xxhash.Sum64String(scriptPath), domain.StateFileExtension)
}

// Path returns the table file of project under stateDir. A relative stateDir
// is resolved against the project root.
func Path(stateDir string, project *domain.Project) string {
	if stateDir == "" {
		stateDir = domain.DefaultStatePath()
	}
	return filepath.Join(project.Resolve(stateDir), FileName(project.Name, project.Script))
}

// Load reads the table at path. A missing file yields an empty table.
func (s *Store) Load(path string) (*domain.TimestampTable, error) {
	//nolint:gosec // Path is derived from the project root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewTimestampTable(), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", path)
	}
	return Decode(bytes.NewReader(data)), nil
}

// Save writes the table to path through a temporary file in the same directory.
func (s *Store) Save(path string, table *domain.TimestampTable) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := Encode(tmp, table); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	return nil
}

// Encode writes the header lines followed by one block per configuration.
// Configurations and paths are sorted.
func Encode(w io.Writer, table *domain.TimestampTable) error {
	bw := bufio.NewWriter(w)

	if table.LastToolchain != "" {
		fmt.Fprintf(bw, "%s %s\n", toolchainKey, table.LastToolchain)
	}
	if table.LastConfig != domain.ConfigNone {
		fmt.Fprintf(bw, "%s %s\n", configKey, table.LastConfig)
	}

	for _, cfg := range table.Configs() {
		bw.WriteByte('\n')
		for _, path := range table.Paths(cfg) {
			ts, _ := table.Lookup(cfg, path)
			fmt.Fprintf(bw, "%s \"%s\" %d\n", cfg, path, ts)
		}
	}

	return bw.Flush()
}

// Decode parses a table. Lines it cannot parse are skipped, so the entries
// they described count as missing. Lines may be of any length.
func Decode(r io.Reader) *domain.TimestampTable {
	table := domain.NewTimestampTable()

	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if raw == "" && err != nil {
			break
		}

		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if value, ok := strings.CutPrefix(line, toolchainKey+" "); ok {
			if name, ok := domain.ParseToolchain(value); ok {
				table.LastToolchain = name
			}
			continue
		}
		if value, ok := strings.CutPrefix(line, configKey+" "); ok {
			if cfg, err := domain.ParseConfigType(value); err == nil {
				table.LastConfig = cfg
			}
			continue
		}

		if cfg, path, ts, ok := parseEntry(line); ok {
			table.Set(cfg, path, ts)
		}
	}

	return table
}

// parseEntry parses `<config> "<path>" <timestamp>`.
func parseEntry(line string) (domain.ConfigType, string, uint64, bool) {
	open := strings.IndexByte(line, '"')
	closing := strings.LastIndexByte(line, '"')
	if open <= 0 || closing <= open {
		return "", "", 0, false
	}

	cfg, err := domain.ParseConfigType(line[:open])
	if err != nil || cfg == domain.ConfigNone {
		return "", "", 0, false
	}

	path := line[open+1 : closing]
	if path == "" {
		return "", "", 0, false
	}

	ts, err := strconv.ParseUint(strings.TrimSpace(line[closing+1:]), 10, 64)
	if err != nil {
		return "", "", 0, false
	}

	return cfg, path, ts, true
}
