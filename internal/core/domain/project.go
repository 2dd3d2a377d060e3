package domain

import (
	"path/filepath"
	"strings"
)

// BuildKind selects the artifact produced by the link step.
type BuildKind int

const (
	// BuildBinary links an executable.
	BuildBinary BuildKind = iota
	// BuildStaticLibrary archives objects into a static library.
	BuildStaticLibrary
)

// ParseBuildKind accepts the spellings recognized by set_build_type.
func ParseBuildKind(s string) (BuildKind, bool) {
	switch strings.ToLower(s) {
	case "binary", "bin", "executable":
		return BuildBinary, true
	case "static_lib", "static_library", "staticlib":
		return BuildStaticLibrary, true
	default:
		return BuildBinary, false
	}
}

func (k BuildKind) String() string {
	if k == BuildStaticLibrary {
		return "static_lib"
	}
	return "binary"
}

// Project is the build configuration described by a script.
type Project struct {
	// Root is the directory containing the script. Relative paths resolve against it.
	Root string
	// Script is the absolute path of the script the project was read from.
	Script string

	Toolchain    ToolchainName
	ToolchainDir string
	Name         string
	ArtifactName string
	Kind         BuildKind

	ObjectOutput      string
	BuildOutput       string
	PrecompiledHeader string
	RunAfterBuild     bool

	// AVR-only settings.
	AVRMCU         string
	AtmelStudioDir string

	SourceDirs  PathSet
	SourceFiles PathSet
	IncludeDirs PathSet
	LibraryDirs PathSet
	StaticLibs  PathSet
}

// NewProject returns a project rooted at root with default outputs.
func NewProject(root string) *Project {
	return &Project{
		Root:         root,
		Toolchain:    ToolchainGCC,
		Kind:         BuildBinary,
		ObjectOutput: filepath.Join(root, DefaultObjectOutput),
		BuildOutput:  filepath.Join(root, DefaultBuildOutput),
	}
}

// HasSources reports whether the project lists any source directory or file.
func (p *Project) HasSources() bool {
	return p.SourceDirs.Len() > 0 || p.SourceFiles.Len() > 0
}

// ObjectDir returns the object directory for cfg.
func (p *Project) ObjectDir(cfg ConfigType) string {
	return filepath.Join(p.ObjectOutput, cfg.String())
}

// BuildDir returns the artifact directory for cfg.
func (p *Project) BuildDir(cfg ConfigType) string {
	return filepath.Join(p.BuildOutput, cfg.String())
}

// ObjectPath returns the object file a translation unit compiles to under cfg.
func (p *Project) ObjectPath(cfg ConfigType, source string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(p.ObjectDir(cfg), stem+ObjectExtension)
}

// ArtifactPath returns the final binary or library path under cfg.
// AVR binaries are ELF images and carry the .elf extension.
func (p *Project) ArtifactPath(cfg ConfigType) string {
	if p.Kind == BuildStaticLibrary {
		return filepath.Join(p.BuildDir(cfg), "lib"+p.ArtifactName+".a")
	}
	if p.Toolchain == ToolchainAVRGCC {
		return filepath.Join(p.BuildDir(cfg), p.ArtifactName+".elf")
	}
	return filepath.Join(p.BuildDir(cfg), p.ArtifactName)
}

// Resolve joins a script-relative path with the project root.
func (p *Project) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.Root, path)
}

// IsSourceFile reports whether path has one of the given translation-unit extensions.
func IsSourceFile(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
