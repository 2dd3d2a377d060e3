package domain

// Settings are the tool options read from cbuild.yaml and overridden by flags.
type Settings struct {
	Config           ConfigType
	StateDir         string
	PrintCommands    bool
	SourceExtensions []string
	Toolchains       map[ToolchainName]ToolchainSettings
}

// ToolchainSettings override the programs and flags a compiler driver uses.
type ToolchainSettings struct {
	Compiler     string
	Archiver     string
	DebugFlags   []string
	ReleaseFlags []string
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		Config:           ConfigDebug,
		StateDir:         DefaultStatePath(),
		SourceExtensions: append([]string(nil), SourceExtensions...),
		Toolchains:       make(map[ToolchainName]ToolchainSettings),
	}
}

// Toolchain returns the overrides for name, or the zero value.
func (s Settings) Toolchain(name ToolchainName) ToolchainSettings {
	return s.Toolchains[name]
}
