package domain

import "go.trai.ch/zerr"

var (
	// ErrUnexpectedSymbol is returned when the script lexer meets a reserved character outside a string.
	ErrUnexpectedSymbol = zerr.New("unexpected symbol")

	// ErrUnterminatedString is returned when a quoted script string is never closed.
	ErrUnterminatedString = zerr.New("unterminated string")

	// ErrUnterminatedComment is returned when a multi-line script comment is never closed.
	ErrUnterminatedComment = zerr.New("unterminated comment")

	// ErrUnexpectedToken is returned when a token other than a command appears at statement start.
	ErrUnexpectedToken = zerr.New("unexpected token")

	// ErrUnknownCommand is returned when a command name is not in the command table.
	ErrUnknownCommand = zerr.New("unknown command")

	// ErrMissingArgument is returned when a command is missing a required argument or has the wrong kind.
	ErrMissingArgument = zerr.New("missing argument")

	// ErrInvalidArgument is returned when a command argument fails validation.
	ErrInvalidArgument = zerr.New("invalid argument")

	// ErrMissingSemicolon is returned when a statement is not terminated by ';'.
	ErrMissingSemicolon = zerr.New("missing semicolon")

	// ErrFileNotFound is returned when an explicitly listed file does not exist.
	ErrFileNotFound = zerr.New("file not found")

	// ErrDirectoryNotFound is returned when a required directory does not exist.
	ErrDirectoryNotFound = zerr.New("directory not found")

	// ErrScriptNotFound is returned when no script is given and none exists in the working directory.
	ErrScriptNotFound = zerr.New("no build script found")

	// ErrScriptReadFailed is returned when the build script cannot be read.
	ErrScriptReadFailed = zerr.New("failed to read build script")

	// ErrUnknownToolchain is returned when no compiler driver exists for a toolchain name.
	ErrUnknownToolchain = zerr.New("unknown toolchain")

	// ErrToolchainSetup is returned when a toolchain's required directories or settings are missing.
	ErrToolchainSetup = zerr.New("toolchain is not set up")

	// ErrInvalidConfigType is returned when a configuration name is neither debug nor release.
	ErrInvalidConfigType = zerr.New("invalid config type, expected 'debug' or 'release'")

	// ErrNothingToBuild is returned when a project declares no source directories or files.
	ErrNothingToBuild = zerr.New("nothing to build")

	// ErrSourceDiscoveryFailed is returned when translation units cannot be enumerated.
	ErrSourceDiscoveryFailed = zerr.New("failed to discover translation units")

	// ErrOutputDirCreateFailed is returned when object or build output directories cannot be created.
	ErrOutputDirCreateFailed = zerr.New("failed to create output directory")

	// ErrObjectCollision is returned when two translation units would compile to the same object file.
	ErrObjectCollision = zerr.New("translation units share an object file")

	// ErrCompileFailed is returned when the compiler driver reports a failed compilation.
	ErrCompileFailed = zerr.New("compilation failed")

	// ErrPCHCompileFailed is returned when the precompiled header cannot be built.
	ErrPCHCompileFailed = zerr.New("precompiled header compilation failed")

	// ErrLinkFailed is returned when linking the final artifact fails.
	ErrLinkFailed = zerr.New("linking failed")

	// ErrRunFailed is returned when running the built artifact fails.
	ErrRunFailed = zerr.New("running artifact failed")

	// ErrCommandFailed is returned when an external process exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrStoreCreateFailed is returned when the timestamp store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create timestamp store directory")

	// ErrStoreReadFailed is returned when the timestamp table cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read timestamp table")

	// ErrStoreWriteFailed is returned when the timestamp table cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write timestamp table")

	// ErrConfigReadFailed is returned when the settings file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read settings file")

	// ErrConfigParseFailed is returned when the settings file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse settings file")

	// ErrCleanFailed is returned when build state or outputs cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean build outputs")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to start file watcher")
)
