package domain

import "fmt"

// DiagnosticKind classifies a positioned script message.
type DiagnosticKind int

const (
	// KindError is a fatal interpreter error.
	KindError DiagnosticKind = iota
	// KindSyntaxError is a fatal lexical error.
	KindSyntaxError
	// KindWarning is a non-fatal message.
	KindWarning
)

func (k DiagnosticKind) String() string {
	switch k {
	case KindSyntaxError:
		return "Syntax Error"
	case KindWarning:
		return "Warning"
	default:
		return "Error"
	}
}

// Diagnostic is a message attached to a script position.
type Diagnostic struct {
	Kind    DiagnosticKind
	Line    int
	Column  int
	Command string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s, Line: %d, Char: %d] %s", d.Kind, d.Line, d.Column, d.Message)
}

// ScriptError is a fatal diagnostic. It unwraps to the sentinel describing its cause.
type ScriptError struct {
	Diagnostic
	Cause error
}

// NewScriptError builds a ScriptError of the given kind.
func NewScriptError(kind DiagnosticKind, cause error, line, column int, command, format string, args ...any) *ScriptError {
	return &ScriptError{
		Diagnostic: Diagnostic{
			Kind:    kind,
			Line:    line,
			Column:  column,
			Command: command,
			Message: fmt.Sprintf(format, args...),
		},
		Cause: cause,
	}
}

func (e *ScriptError) Error() string {
	return e.String()
}

func (e *ScriptError) Unwrap() error {
	return e.Cause
}
