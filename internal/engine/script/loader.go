package script

import (
	"os"
	"path/filepath"

	"go.trai.ch/cbuild/internal/core/domain"
	"go.trai.ch/cbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProjectLoader = (*Loader)(nil)

// Loader implements ports.ProjectLoader for cbuild scripts on disk.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader that reports warnings to logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads, lexes and interprets the script at scriptPath.
// Relative paths inside the script are resolved against the script's directory.
func (l *Loader) Load(scriptPath string) (*domain.Project, error) {
	abs, err := filepath.Abs(ScriptPath(scriptPath))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrScriptReadFailed.Error()), "path", scriptPath)
	}

	//nolint:gosec // Script path is provided by the user on the command line
	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrScriptReadFailed.Error()), "path", abs)
	}

	tokens, err := Lex(src)
	if err != nil {
		return nil, err
	}

	in := NewInterpreter(filepath.Dir(abs))
	project, err := in.Run(tokens)
	for _, w := range in.Warnings() {
		l.logger.Warn(w.String())
	}
	if err != nil {
		return nil, err
	}

	project.Script = abs
	return project, nil
}

// ScriptPath appends the default script extension when path has none.
func ScriptPath(path string) string {
	if filepath.Ext(path) == "" {
		return path + domain.ScriptExtension
	}
	return path
}
