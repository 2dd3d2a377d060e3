package cdeps

import (
	"strings"
	"unicode"

	"go.trai.ch/cbuild/internal/engine/cursor"
)

var compoundOperators = map[string]struct{}{
	"==": {}, "!=": {}, "<=": {}, ">=": {}, "&&": {}, "||": {}, "++": {}, "--": {},
	"+=": {}, "-=": {}, "*=": {}, "/=": {}, "%=": {}, "&=": {}, "|=": {}, "^=": {},
	"<<": {}, ">>": {}, "<<=": {}, ">>=": {},
}

var punctuation = map[rune]Kind{
	',': Comma,
	':': Colon,
	';': Semicolon,
	'(': OpenPar,
	')': ClosePar,
	'[': OpenSquare,
	']': CloseSquare,
	'{': OpenCurly,
	'}': CloseCurly,
}

const operatorChars = "+-*/%=!<>&|^~?"

func isIdentStart(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && unicode.IsLetter(r))
}

func isIdentChar(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

type lexer struct {
	cur          *cursor.Cursor
	res          Result
	afterInclude bool
}

// Lex tokenizes C or C++ source. It never fails: characters it does not
// recognize are skipped, and unterminated literals end at the line break.
func Lex(src []byte) *Result {
	l := &lexer{cur: cursor.New(src)}
	l.run()
	return &l.res
}

func (l *lexer) run() {
	for {
		start := l.cur.Pos()
		r, ok := l.cur.Next()
		if !ok {
			l.emit(EndOfFile, "", start)
			return
		}

		if l.afterInclude {
			if r == ' ' || r == '\t' {
				continue
			}
			l.afterInclude = false
			if r == '<' {
				l.lexIncludeString(start)
				continue
			}
		}

		switch {
		case unicode.IsSpace(r):
		case r == '#':
			l.lexDirective(start)
		case isIdentStart(r):
			l.cur.Backup()
			l.lexIdentifier(start)
		case isDigit(r):
			l.cur.Backup()
			l.lexNumber(start, "")
		case r == '.':
			if isDigit(l.cur.Peek()) {
				l.lexNumber(start, "0.")
			} else {
				l.emit(Dot, ".", start)
			}
		case r == '"':
			l.lexQuoted(start, '"', String)
		case r == '\'':
			l.lexQuoted(start, '\'', CharLiteral)
		case r == '/' && l.cur.Peek() == '/':
			l.skipLine()
		case r == '/' && l.cur.Peek() == '*':
			l.cur.Next()
			l.skipBlock()
		default:
			if kind, ok := punctuation[r]; ok {
				l.emit(kind, string(r), start)
			} else if strings.ContainsRune(operatorChars, r) {
				l.lexOperator(start, r)
			}
		}
	}
}

func (l *lexer) emit(kind Kind, value string, pos cursor.Position) {
	l.res.Tokens = append(l.res.Tokens, Token{Kind: kind, Value: value, Line: pos.Line, Column: pos.Column})
}

// lexDirective reads a preprocessor directive whose '#' has been read.
// Blanks between '#' and the name are dropped.
func (l *lexer) lexDirective(start cursor.Position) {
	for {
		r, ok := l.cur.Next()
		if !ok {
			break
		}
		if r != ' ' && r != '\t' {
			l.cur.Backup()
			break
		}
	}

	name := l.readWhile(isIdentChar)
	if name == "" {
		l.emit(Operator, "#", start)
		return
	}

	value := "#" + name
	if value == IncludeDirective {
		l.res.Includes = append(l.res.Includes, len(l.res.Tokens))
		l.afterInclude = true
	}
	l.emit(Directive, value, start)
}

func (l *lexer) lexIdentifier(start cursor.Position) {
	l.emit(Identifier, l.readWhile(isIdentChar), start)
}

// lexNumber reads a numeric literal. Suffixes and hex digits are kept,
// and a bare trailing dot is completed to ".0".
func (l *lexer) lexNumber(start cursor.Position, prefix string) {
	var b strings.Builder
	b.WriteString(prefix)
	sawDot := prefix != ""
	float := sawDot
	var last rune

	for {
		r, ok := l.cur.Next()
		if !ok {
			break
		}
		switch {
		case isIdentChar(r):
		case r == '.' && !sawDot:
			sawDot = true
			float = true
		case (r == '+' || r == '-') && (last == 'e' || last == 'E') && !isHex(b.String()):
			float = true
		default:
			l.cur.Backup()
			l.finishNumber(start, b.String(), float)
			return
		}
		b.WriteRune(r)
		last = r
	}
	l.finishNumber(start, b.String(), float)
}

func isHex(text string) bool {
	return strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X")
}

func (l *lexer) finishNumber(start cursor.Position, text string, float bool) {
	if strings.HasSuffix(text, ".") {
		text += "0"
	}
	if float {
		l.emit(Float, text, start)
		return
	}
	l.emit(Integer, text, start)
}

// lexQuoted reads a string or character literal whose opening quote has been read.
// Escape sequences are kept as written.
func (l *lexer) lexQuoted(start cursor.Position, quote rune, kind Kind) {
	var b strings.Builder
	for {
		r, ok := l.cur.Next()
		if !ok || r == '\n' {
			break
		}
		if r == quote {
			break
		}
		b.WriteRune(r)
		if r == '\\' {
			if next, ok := l.cur.Next(); ok {
				b.WriteRune(next)
			}
		}
	}
	l.emit(kind, b.String(), start)
}

// lexIncludeString reads an angle-bracket include whose '<' has been read.
// A line break before '>' abandons the include.
func (l *lexer) lexIncludeString(start cursor.Position) {
	var b strings.Builder
	for {
		r, ok := l.cur.Next()
		if !ok || r == '\n' {
			return
		}
		if r == '>' {
			l.emit(IncludeString, b.String(), start)
			return
		}
		b.WriteRune(r)
	}
}

func (l *lexer) lexOperator(start cursor.Position, first rune) {
	text := string(first)
	for range 2 {
		next := l.cur.Peek()
		if next == cursor.EOF {
			break
		}
		if _, ok := compoundOperators[text+string(next)]; !ok {
			break
		}
		l.cur.Next()
		text += string(next)
	}
	l.emit(Operator, text, start)
}

func (l *lexer) readWhile(accept func(rune) bool) string {
	var b strings.Builder
	for {
		r, ok := l.cur.Next()
		if !ok {
			break
		}
		if !accept(r) {
			l.cur.Backup()
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (l *lexer) skipLine() {
	for {
		r, ok := l.cur.Next()
		if !ok || r == '\n' {
			return
		}
	}
}

// skipBlock consumes a comment whose opening "/*" has been read. Comments nest.
func (l *lexer) skipBlock() {
	depth := 1
	for depth > 0 {
		r, ok := l.cur.Next()
		if !ok {
			return
		}
		switch {
		case r == '/' && l.cur.Peek() == '*':
			l.cur.Next()
			depth++
		case r == '*' && l.cur.Peek() == '/':
			l.cur.Next()
			depth--
		}
	}
}
