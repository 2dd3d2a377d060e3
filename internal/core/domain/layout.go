package domain

import "path/filepath"

const (
	// StateDirName is the name of the per-project state directory.
	StateDirName = ".cbuild"

	// TimestampsDirName is the name of the directory holding timestamp tables.
	TimestampsDirName = "timestamps"

	// SettingsFileName is the name of the optional settings file next to the script.
	SettingsFileName = "cbuild.yaml"

	// ScriptExtension is appended to script paths given without an extension.
	ScriptExtension = ".cbuild"

	// StateFileExtension is the extension of persisted timestamp tables.
	StateFileExtension = ".cbuild_config"

	// DefaultObjectOutput is the object directory used when the script sets none.
	DefaultObjectOutput = "obj"

	// DefaultBuildOutput is the artifact directory used when the script sets none.
	DefaultBuildOutput = "build"

	// ObjectExtension is the extension of compiled translation units.
	ObjectExtension = ".o"

	// PCHExtension is the extension of compiled precompiled headers.
	PCHExtension = ".gch"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStatePath returns the default directory for timestamp tables.
// It joins .cbuild and timestamps.
func DefaultStatePath() string {
	return filepath.Join(StateDirName, TimestampsDirName)
}

// SourceExtensions are the translation-unit extensions recognized by default.
var SourceExtensions = []string{".c", ".cc", ".cpp", ".cxx", ".c++"}
