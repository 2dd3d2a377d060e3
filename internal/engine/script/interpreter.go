package script

import (
	"path/filepath"

	"go.trai.ch/cbuild/internal/core/domain"
)

// Interpreter executes a token stream against a project.
// An Interpreter is single use.
type Interpreter struct {
	project  *domain.Project
	tokens   []Token
	pos      int
	current  Token
	previous Token
	warnings []domain.Diagnostic
}

// NewInterpreter returns an interpreter building a project rooted at root.
func NewInterpreter(root string) *Interpreter {
	return &Interpreter{project: domain.NewProject(root)}
}

// Run interprets tokens until EndOfFile. The first error aborts interpretation.
func (in *Interpreter) Run(tokens []Token) (*domain.Project, error) {
	in.tokens = tokens
	in.pos = 0

	for {
		tok := in.next()
		switch tok.Kind {
		case EndOfFile:
			in.finish()
			return in.project, nil
		case Command:
			spec, ok := commandTable[tok.Value]
			if !ok {
				return nil, errorAt(domain.ErrUnknownCommand, tok, "", "Invalid command found: '%s'", tok.Value)
			}
			if err := in.execute(tok, spec); err != nil {
				return nil, err
			}
		default:
			return nil, errorAt(domain.ErrUnexpectedToken, tok, "", "Unexpected token found: '%s'", describe(tok))
		}
	}
}

// Warnings returns the non-fatal diagnostics collected so far.
func (in *Interpreter) Warnings() []domain.Diagnostic {
	return in.warnings
}

// Project returns the project being built, including partial state after an error.
func (in *Interpreter) Project() *domain.Project {
	return in.project
}

func (in *Interpreter) execute(cmd Token, spec commandSpec) error {
	arg := in.next()
	if arg.Kind != spec.kind {
		if spec.variadic {
			return errorAt(domain.ErrMissingArgument, arg, cmd.Value,
				"Expected at least one '%s' argument in command '%s'", spec.arg, cmd.Value)
		}
		return errorAt(domain.ErrMissingArgument, arg, cmd.Value,
			"Expected argument '%s' in command '%s'", spec.arg, cmd.Value)
	}

	for {
		if err := spec.apply(in, cmd, arg); err != nil {
			return err
		}
		if !spec.variadic {
			break
		}
		arg = in.next()
		if arg.Kind != String {
			in.back()
			break
		}
	}

	return in.expectSemicolon(cmd)
}

func (in *Interpreter) expectSemicolon(cmd Token) error {
	tok := in.next()
	if tok.Kind != Semicolon {
		return errorAt(domain.ErrMissingSemicolon, tok, cmd.Value, "Symbol ';' expected, got '%s'", describe(tok))
	}
	return nil
}

func (in *Interpreter) next() Token {
	in.previous = in.current
	if in.pos < len(in.tokens) {
		in.current = in.tokens[in.pos]
		in.pos++
	} else {
		in.current = Token{Kind: EndOfFile, Line: in.current.Line, Column: in.current.Column}
	}
	return in.current
}

// back un-reads the current token. Only one token of pushback is kept.
func (in *Interpreter) back() {
	if in.pos > 0 {
		in.pos--
	}
	in.current = in.previous
}

func (in *Interpreter) warn(tok Token, cmd, format string, args ...any) {
	w := domain.NewScriptError(domain.KindWarning, nil, tok.Line, tok.Column, cmd, format, args...)
	in.warnings = append(in.warnings, w.Diagnostic)
}

func (in *Interpreter) finish() {
	p := in.project
	if p.Name == "" {
		p.Name = filepath.Base(p.Root)
	}
	if p.ArtifactName == "" {
		p.ArtifactName = p.Name
	}
}

func describe(tok Token) string {
	if tok.Kind == EndOfFile {
		return "end of file"
	}
	return tok.Value
}

func errorAt(cause error, tok Token, cmd, format string, args ...any) *domain.ScriptError {
	return domain.NewScriptError(domain.KindError, cause, tok.Line, tok.Column, cmd, format, args...)
}
