package domain

import "strings"

// Command is a single external process invocation.
type Command struct {
	Args       []string
	WorkingDir string
	Env        map[string]string
}

// String renders the command line with arguments containing spaces quoted.
func (c Command) String() string {
	parts := make([]string, len(c.Args))
	for i, arg := range c.Args {
		if arg == "" || strings.ContainsAny(arg, " \t\"") {
			parts[i] = `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
			continue
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}

// CompileRequest describes one translation unit or precompiled header compilation.
type CompileRequest struct {
	Config      ConfigType
	Source      string
	Output      string
	IncludeDirs []string
	LibraryDirs []string
	StaticLibs  []string
}

// LinkRequest describes the final link or archive step.
type LinkRequest struct {
	Config      ConfigType
	Objects     []string
	Output      string
	IncludeDirs []string
	LibraryDirs []string
	StaticLibs  []string
}
