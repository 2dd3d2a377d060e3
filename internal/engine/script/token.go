// Package script lexes and interprets cbuild description scripts.
package script

import "fmt"

// TokenKind identifies the lexical class of a script token.
type TokenKind int

const (
	// String is an unquoted word or a quoted string argument.
	String TokenKind = iota
	// Command is a command name at the start of a statement.
	Command
	// Bool is true or false in any letter case.
	Bool
	// Semicolon terminates a statement.
	Semicolon
	// EndOfFile marks the end of the script.
	EndOfFile
)

func (k TokenKind) String() string {
	switch k {
	case String:
		return "String"
	case Command:
		return "Command"
	case Bool:
		return "Bool"
	case Semicolon:
		return "Semicolon"
	case EndOfFile:
		return "EndOfFile"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a lexed script token. Line and Column locate its first character.
type Token struct {
	Kind   TokenKind
	Value  string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Kind, t.Value)
}
