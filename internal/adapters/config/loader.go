// Package config loads the optional cbuild.yaml settings file.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/cbuild/internal/core/domain"
	"go.trai.ch/cbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.SettingsLoader = (*Loader)(nil)

// Loader implements ports.SettingsLoader using a YAML file.
type Loader struct {
	Filename string
	logger   ports.Logger
}

// NewLoader creates a Loader reading domain.SettingsFileName.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Filename: domain.SettingsFileName, logger: logger}
}

// Load reads the settings file in dir. A missing file yields the defaults.
func (l *Loader) Load(dir string) (domain.Settings, error) {
	path := filepath.Join(dir, l.Filename)

	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the script location
	if errors.Is(err, fs.ErrNotExist) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	l.logger.Debug("Using settings from " + path)

	settings, err := Parse(data)
	if err != nil {
		return domain.Settings{}, zerr.With(err, "path", path)
	}
	return settings, nil
}

// Parse decodes a settings document on top of the defaults.
func Parse(data []byte) (domain.Settings, error) {
	settings := domain.DefaultSettings()

	var file Settingsfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return domain.Settings{}, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	if file.Config != "" {
		cfg, err := domain.ParseConfigType(file.Config)
		if err != nil {
			return domain.Settings{}, zerr.With(err, "config", file.Config)
		}
		settings.Config = cfg
	}
	if file.StateDir != "" {
		settings.StateDir = filepath.FromSlash(file.StateDir)
	}
	settings.PrintCommands = file.PrintCommands
	if len(file.SourceExtensions) > 0 {
		settings.SourceExtensions = canonicalizeExtensions(file.SourceExtensions)
	}

	for name, dto := range file.Toolchains {
		toolchain, ok := domain.ParseToolchain(name)
		if !ok {
			return domain.Settings{}, zerr.With(domain.ErrUnknownToolchain, "toolchain", name)
		}
		settings.Toolchains[toolchain] = domain.ToolchainSettings{
			Compiler:     dto.Compiler,
			Archiver:     dto.Archiver,
			DebugFlags:   dto.Flags.Debug,
			ReleaseFlags: dto.Flags.Release,
		}
	}

	return settings, nil
}

// canonicalizeExtensions lower-cases extensions and adds a missing leading dot.
func canonicalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
