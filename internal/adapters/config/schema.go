package config

// Settingsfile represents the structure of the cbuild.yaml settings file.
type Settingsfile struct {
	Config           string                  `yaml:"config"`
	StateDir         string                  `yaml:"state_dir"`
	PrintCommands    bool                    `yaml:"print_commands"`
	SourceExtensions []string                `yaml:"source_extensions"`
	Toolchains       map[string]ToolchainDTO `yaml:"toolchains"`
}

// ToolchainDTO overrides the programs and flags of one toolchain.
type ToolchainDTO struct {
	Compiler string   `yaml:"compiler"`
	Archiver string   `yaml:"archiver"`
	Flags    FlagsDTO `yaml:"flags"`
}

// FlagsDTO holds per-configuration compiler flags.
type FlagsDTO struct {
	Debug   []string `yaml:"debug"`
	Release []string `yaml:"release"`
}
