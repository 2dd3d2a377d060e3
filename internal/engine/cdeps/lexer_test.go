package cdeps_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cbuild/internal/engine/cdeps"
)

const goldenSource = "#include \"local.h\"\n" +
	"# include <sys/types.h>\n" +
	"/* #include \"skipped.h\" */\n" +
	"int main(void) { return .5 + 5. ; }\n"

func TestLex_Golden(t *testing.T) {
	res := cdeps.Lex([]byte(goldenSource))

	var buf bytes.Buffer
	for _, tok := range res.Tokens {
		fmt.Fprintln(&buf, tok.String())
	}

	g := goldie.New(t)
	g.Assert(t, "tokens", buf.Bytes())

	assert.Equal(t, []int{0, 2}, res.Includes)
	assert.Equal(t, []cdeps.Include{
		{Path: "local.h"},
		{Path: "sys/types.h", System: true},
	}, res.IncludeTargets())
}

type lexeme struct {
	Kind  cdeps.Kind
	Value string
}

func lexemes(res *cdeps.Result) []lexeme {
	out := make([]lexeme, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		if tok.Kind == cdeps.EndOfFile {
			continue
		}
		out = append(out, lexeme{Kind: tok.Kind, Value: tok.Value})
	}
	return out
}

func TestLex_Tokens(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []lexeme
	}{
		{
			name: "compound operators take the longest match",
			src:  "a <<= b >> c != d",
			want: []lexeme{
				{cdeps.Identifier, "a"},
				{cdeps.Operator, "<<="},
				{cdeps.Identifier, "b"},
				{cdeps.Operator, ">>"},
				{cdeps.Identifier, "c"},
				{cdeps.Operator, "!="},
				{cdeps.Identifier, "d"},
			},
		},
		{
			name: "numeric literals",
			src:  "0x1F 10u 1e-5 3.25f .5",
			want: []lexeme{
				{cdeps.Integer, "0x1F"},
				{cdeps.Integer, "10u"},
				{cdeps.Float, "1e-5"},
				{cdeps.Float, "3.25f"},
				{cdeps.Float, "0.5"},
			},
		},
		{
			name: "escapes stay inside literals",
			src:  `'\'' "a\"b"`,
			want: []lexeme{
				{cdeps.CharLiteral, `\'`},
				{cdeps.String, `a\"b`},
			},
		},
		{
			name: "unterminated string ends at the line break",
			src:  "\"abc\nx",
			want: []lexeme{
				{cdeps.String, "abc"},
				{cdeps.Identifier, "x"},
			},
		},
		{
			name: "nested comments are skipped",
			src:  "a /* one /* two */ still */ b // tail\nc",
			want: []lexeme{
				{cdeps.Identifier, "a"},
				{cdeps.Identifier, "b"},
				{cdeps.Identifier, "c"},
			},
		},
		{
			name: "other directives are not includes",
			src:  "#define X 1\n#pragma once",
			want: []lexeme{
				{cdeps.Directive, "#define"},
				{cdeps.Identifier, "X"},
				{cdeps.Integer, "1"},
				{cdeps.Directive, "#pragma"},
				{cdeps.Identifier, "once"},
			},
		},
		{
			name: "angle brackets outside includes are operators",
			src:  "a < b",
			want: []lexeme{
				{cdeps.Identifier, "a"},
				{cdeps.Operator, "<"},
				{cdeps.Identifier, "b"},
			},
		},
		{
			name: "unknown characters are ignored",
			src:  "a @ $ b",
			want: []lexeme{
				{cdeps.Identifier, "a"},
				{cdeps.Identifier, "b"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lexemes(cdeps.Lex([]byte(tt.src))))
		})
	}
}

func TestLex_AlwaysEndsWithEOF(t *testing.T) {
	res := cdeps.Lex(nil)
	require.Len(t, res.Tokens, 1)
	assert.Equal(t, cdeps.Token{Kind: cdeps.EndOfFile, Line: 1, Column: 1}, res.Tokens[0])
	assert.Empty(t, res.IncludeTargets())
}

func TestIncludeTargets(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []cdeps.Include
	}{
		{
			name: "broken angle include is dropped",
			src:  "#include <broken\n#include \"ok.h\"\n",
			want: []cdeps.Include{{Path: "ok.h"}},
		},
		{
			name: "macro include is dropped",
			src:  "#include HEADER\n",
			want: []cdeps.Include{},
		},
		{
			name: "include at end of input",
			src:  "#include",
			want: []cdeps.Include{},
		},
		{
			name: "tabs between directive and target",
			src:  "#include\t\t<stdio.h>",
			want: []cdeps.Include{{Path: "stdio.h", System: true}},
		},
		{
			name: "include inside a string is ignored",
			src:  "const char *s = \"#include <x.h>\";",
			want: []cdeps.Include{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cdeps.Lex([]byte(tt.src)).IncludeTargets())
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "IncludeString", cdeps.IncludeString.String())
	assert.Equal(t, "Kind(99)", cdeps.Kind(99).String())
}
