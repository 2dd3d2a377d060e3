package script

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.trai.ch/cbuild/internal/core/domain"
)

// commandSpec describes how a command consumes its arguments.
// apply is called once per argument and must not mutate the project on error.
type commandSpec struct {
	arg      string
	kind     TokenKind
	variadic bool
	apply    func(in *Interpreter, cmd, arg Token) error
}

var commandTable = map[string]commandSpec{
	"set_compiler":           {arg: "compiler", kind: String, apply: (*Interpreter).setCompiler},
	"set_compiler_dir":       {arg: "directory", kind: String, apply: (*Interpreter).setCompilerDir},
	"set_atmel_studio_dir":   {arg: "directory", kind: String, apply: (*Interpreter).setAtmelStudioDir},
	"set_project_name":       {arg: "name", kind: String, apply: (*Interpreter).setProjectName},
	"set_build_name":         {arg: "name", kind: String, apply: (*Interpreter).setBuildName},
	"set_avr_mcu":            {arg: "mcu", kind: String, apply: (*Interpreter).setAVRMCU},
	"set_build_type":         {arg: "type", kind: String, apply: (*Interpreter).setBuildType},
	"set_build_output":       {arg: "directory", kind: String, apply: (*Interpreter).setBuildOutput},
	"set_obj_output":         {arg: "directory", kind: String, apply: (*Interpreter).setObjOutput},
	"set_precompiled_header": {arg: "file", kind: String, apply: (*Interpreter).setPrecompiledHeader},
	"set_pch":                {arg: "file", kind: String, apply: (*Interpreter).setPrecompiledHeader},
	"set_run_binary":         {arg: "bool", kind: Bool, apply: (*Interpreter).setRunBinary},
	"add_src_dirs":           {arg: "directory", kind: String, variadic: true, apply: (*Interpreter).addSrcDir},
	"add_src_files":          {arg: "file", kind: String, variadic: true, apply: (*Interpreter).addSrcFile},
	"add_incl_dirs":          {arg: "directory", kind: String, variadic: true, apply: (*Interpreter).addInclDir},
	"add_lib_dirs":           {arg: "directory", kind: String, variadic: true, apply: (*Interpreter).addLibDir},
	"add_static_libs":        {arg: "library", kind: String, variadic: true, apply: (*Interpreter).addStaticLib},
}

func (in *Interpreter) setCompiler(cmd, arg Token) error {
	name, ok := domain.ParseToolchain(arg.Value)
	if !ok {
		return errorAt(domain.ErrInvalidArgument, arg, cmd.Value,
			"Unknown compiler '%s' in command '%s'", arg.Value, cmd.Value)
	}
	in.project.Toolchain = name
	return nil
}

func (in *Interpreter) setCompilerDir(cmd, arg Token) error {
	dir, err := in.existingDir(cmd, arg)
	if err != nil {
		return err
	}
	in.project.ToolchainDir = dir
	return nil
}

func (in *Interpreter) setAtmelStudioDir(cmd, arg Token) error {
	dir, err := in.existingDir(cmd, arg)
	if err != nil {
		return err
	}
	in.project.AtmelStudioDir = dir
	return nil
}

func (in *Interpreter) setProjectName(cmd, arg Token) error {
	if !validFileName(arg.Value) {
		return invalid(cmd, arg, "name")
	}
	in.project.Name = arg.Value
	return nil
}

func (in *Interpreter) setBuildName(cmd, arg Token) error {
	if !validFileName(arg.Value) {
		return invalid(cmd, arg, "name")
	}
	in.project.ArtifactName = arg.Value
	return nil
}

func (in *Interpreter) setAVRMCU(_, arg Token) error {
	in.project.AVRMCU = strings.ToLower(arg.Value)
	return nil
}

func (in *Interpreter) setBuildType(cmd, arg Token) error {
	kind, ok := domain.ParseBuildKind(arg.Value)
	if !ok {
		return invalid(cmd, arg, "build type")
	}
	in.project.Kind = kind
	return nil
}

func (in *Interpreter) setBuildOutput(cmd, arg Token) error {
	if !validPath(arg.Value) {
		return invalid(cmd, arg, "directory")
	}
	in.project.BuildOutput = in.project.Resolve(arg.Value)
	return nil
}

func (in *Interpreter) setObjOutput(cmd, arg Token) error {
	if !validPath(arg.Value) {
		return invalid(cmd, arg, "directory")
	}
	in.project.ObjectOutput = in.project.Resolve(arg.Value)
	return nil
}

// setPrecompiledHeader keeps the path as written; it may name a file inside a source directory.
func (in *Interpreter) setPrecompiledHeader(cmd, arg Token) error {
	if !validPath(arg.Value) {
		return invalid(cmd, arg, "file")
	}
	in.project.PrecompiledHeader = filepath.Clean(arg.Value)
	return nil
}

func (in *Interpreter) setRunBinary(_, arg Token) error {
	in.project.RunAfterBuild = strings.EqualFold(arg.Value, "true")
	return nil
}

func (in *Interpreter) addSrcDir(cmd, arg Token) error {
	return in.addDir(&in.project.SourceDirs, cmd, arg)
}

func (in *Interpreter) addInclDir(cmd, arg Token) error {
	return in.addDir(&in.project.IncludeDirs, cmd, arg)
}

func (in *Interpreter) addLibDir(cmd, arg Token) error {
	return in.addDir(&in.project.LibraryDirs, cmd, arg)
}

func (in *Interpreter) addDir(set *domain.PathSet, cmd, arg Token) error {
	if !validPath(arg.Value) {
		return invalid(cmd, arg, "directory")
	}
	if !set.Add(in.project.Resolve(arg.Value)) {
		in.warn(arg, cmd.Value, "Directory '%s' has already been added in command '%s'", arg.Value, cmd.Value)
	}
	return nil
}

func (in *Interpreter) addSrcFile(cmd, arg Token) error {
	if !validPath(arg.Value) {
		return invalid(cmd, arg, "file")
	}
	path := in.project.Resolve(arg.Value)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return errorAt(domain.ErrFileNotFound, arg, cmd.Value,
			"File '%s' does not exist in command '%s'", arg.Value, cmd.Value)
	}
	if !in.project.SourceFiles.Add(path) {
		in.warn(arg, cmd.Value, "File '%s' has already been added in command '%s'", arg.Value, cmd.Value)
	}
	return nil
}

func (in *Interpreter) addStaticLib(cmd, arg Token) error {
	if !validFileName(arg.Value) {
		return invalid(cmd, arg, "library name")
	}
	if !in.project.StaticLibs.Add(arg.Value) {
		in.warn(arg, cmd.Value, "Static library '%s' has already been added in command '%s'", arg.Value, cmd.Value)
	}
	return nil
}

func (in *Interpreter) existingDir(cmd, arg Token) (string, error) {
	if !validPath(arg.Value) {
		return "", invalid(cmd, arg, "directory")
	}
	dir := in.project.Resolve(arg.Value)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", errorAt(domain.ErrDirectoryNotFound, arg, cmd.Value,
			"Directory '%s' does not exist in command '%s'", arg.Value, cmd.Value)
	}
	return dir, nil
}

func invalid(cmd, arg Token, what string) error {
	return errorAt(domain.ErrInvalidArgument, arg, cmd.Value, "Invalid %s '%s' in command '%s'", what, arg.Value, cmd.Value)
}

// validPath reports whether s can be used as a path on every supported platform.
// A colon is only accepted as a drive separator.
func validPath(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsControl(r):
			return false
		case strings.ContainsRune(`?%*|"<>,;=`, r):
			return false
		case r == ':' && i != 1:
			return false
		}
	}
	return true
}

func validFileName(s string) bool {
	return validPath(s) && s != "." && s != ".." && !strings.ContainsAny(s, `/\:`)
}
