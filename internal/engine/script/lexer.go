package script

import (
	"strings"
	"unicode"

	"go.trai.ch/cbuild/internal/core/domain"
	"go.trai.ch/cbuild/internal/engine/cursor"
)

// isReserved reports whether r delimits an unquoted string.
func isReserved(r rune) bool {
	switch r {
	case '?', '%', '*', ':', '|', '"', '<', '>', ',', ';', '=':
		return true
	}
	return unicode.IsSpace(r)
}

func isCommandName(s string) bool {
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

// isKnownCommand reports whether s names a command in the command table.
func isKnownCommand(s string) bool {
	_, ok := commandTable[s]
	return ok
}

type lexer struct {
	cur    *cursor.Cursor
	tokens []Token
}

// Lex tokenizes a script. The returned slice always ends with an EndOfFile token.
// Lexing stops at the first illegal character or unterminated string or comment.
func Lex(src []byte) ([]Token, error) {
	l := &lexer{cur: cursor.New(src)}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *lexer) run() error {
	for {
		start := l.cur.Pos()
		r, ok := l.cur.Next()
		if !ok {
			l.emit(EndOfFile, "", start)
			return nil
		}

		switch {
		case r == ';':
			l.emit(Semicolon, ";", start)
		case unicode.IsSpace(r):
		case r == '/':
			switch l.cur.Peek() {
			case '/':
				l.cur.Next()
				l.skipLine()
			case '*':
				l.cur.Next()
				if err := l.skipBlock(start); err != nil {
					return err
				}
			default:
				l.cur.Backup()
				l.lexWord(start)
			}
		case r == '"':
			if err := l.lexQuoted(start); err != nil {
				return err
			}
		case isReserved(r):
			return syntaxError(domain.ErrUnexpectedSymbol, start, "Unexpected symbol found: '%c'", r)
		default:
			l.cur.Backup()
			l.lexWord(start)
		}
	}
}

func (l *lexer) emit(kind TokenKind, value string, pos cursor.Position) {
	l.tokens = append(l.tokens, Token{Kind: kind, Value: value, Line: pos.Line, Column: pos.Column})
}

func (l *lexer) atStatementStart() bool {
	return len(l.tokens) == 0 || l.tokens[len(l.tokens)-1].Kind == Semicolon
}

func (l *lexer) skipLine() {
	for {
		r, ok := l.cur.Next()
		if !ok || r == '\n' {
			return
		}
	}
}

// skipBlock consumes a multi-line comment whose opening "/*" has been read.
// Comments nest.
func (l *lexer) skipBlock(start cursor.Position) error {
	depth := 1
	for {
		r, ok := l.cur.Next()
		if !ok {
			return syntaxError(domain.ErrUnterminatedComment, start, "Unterminated comment")
		}
		switch {
		case r == '/' && l.cur.Peek() == '*':
			l.cur.Next()
			depth++
		case r == '*' && l.cur.Peek() == '/':
			l.cur.Next()
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
}

// lexQuoted reads a string whose opening quote has been read.
// The content is kept verbatim; a backslash only prevents the next quote from closing it.
func (l *lexer) lexQuoted(start cursor.Position) error {
	var b strings.Builder
	escaped := false
	for {
		r, ok := l.cur.Next()
		if !ok {
			return syntaxError(domain.ErrUnterminatedString, start, "Unterminated string")
		}
		if r == '"' && !escaped {
			l.emit(String, b.String(), start)
			return nil
		}
		escaped = r == '\\' && !escaped
		b.WriteRune(r)
	}
}

func (l *lexer) lexWord(start cursor.Position) {
	var b strings.Builder
	for {
		r, ok := l.cur.Next()
		if !ok {
			break
		}
		if isReserved(r) {
			l.cur.Backup()
			break
		}
		b.WriteRune(r)
	}

	text := b.String()
	switch {
	case strings.EqualFold(text, "true"), strings.EqualFold(text, "false"):
		l.emit(Bool, text, start)
	case isCommandName(text) && (l.atStatementStart() || isKnownCommand(text)):
		l.emit(Command, text, start)
	default:
		l.emit(String, text, start)
	}
}

func syntaxError(cause error, pos cursor.Position, format string, args ...any) *domain.ScriptError {
	return domain.NewScriptError(domain.KindSyntaxError, cause, pos.Line, pos.Column, "", format, args...)
}
