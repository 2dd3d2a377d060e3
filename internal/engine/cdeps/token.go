// Package cdeps tokenizes C and C++ sources just far enough to recover include directives.
package cdeps

import "fmt"

// Kind identifies the lexical class of a source token.
type Kind int

// Token kinds.
const (
	Identifier Kind = iota
	Directive
	String
	IncludeString
	CharLiteral
	Integer
	Float
	Operator
	Dot
	Comma
	Colon
	Semicolon
	OpenPar
	ClosePar
	OpenSquare
	CloseSquare
	OpenCurly
	CloseCurly
	EndOfFile
)

var kindNames = [...]string{
	Identifier:    "Identifier",
	Directive:     "Directive",
	String:        "String",
	IncludeString: "IncludeString",
	CharLiteral:   "CharLiteral",
	Integer:       "Integer",
	Float:         "Float",
	Operator:      "Operator",
	Dot:           "Dot",
	Comma:         "Comma",
	Colon:         "Colon",
	Semicolon:     "Semicolon",
	OpenPar:       "OpenPar",
	ClosePar:      "ClosePar",
	OpenSquare:    "OpenSquare",
	CloseSquare:   "CloseSquare",
	OpenCurly:     "OpenCurly",
	CloseCurly:    "CloseCurly",
	EndOfFile:     "EndOfFile",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a lexed source token. Line and Column locate its first character.
type Token struct {
	Kind   Kind
	Value  string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Kind, t.Value)
}

// IncludeDirective is the directive text that Result.Includes indexes.
const IncludeDirective = "#include"

// Result is the token stream of one file.
type Result struct {
	Tokens []Token
	// Includes holds the index in Tokens of every #include directive.
	Includes []int
}

// Include is the target named by an include directive.
type Include struct {
	Path   string
	System bool
}

// IncludeTargets returns the targets of every include directive in order.
// Directives not followed by a string are skipped.
func (r *Result) IncludeTargets() []Include {
	targets := make([]Include, 0, len(r.Includes))
	for _, idx := range r.Includes {
		if idx+1 >= len(r.Tokens) {
			continue
		}
		switch next := r.Tokens[idx+1]; next.Kind {
		case String:
			targets = append(targets, Include{Path: next.Value})
		case IncludeString:
			targets = append(targets, Include{Path: next.Value, System: true})
		}
	}
	return targets
}
