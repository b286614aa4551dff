// Copyright (c) 2024 Michael D Henderson. All rights reserved.

package lexer_test

import (
	"strings"
	"testing"

	"github.com/mdhender/sdc/internal/sdc/lexer"
	"github.com/mdhender/sdc/internal/sdc/token"
)

type tok struct {
	Kind token.Kind
	Text string
}

func collect(t *testing.T, input string) []tok {
	t.Helper()
	lx := lexer.New([]byte(input))
	var got []tok
	for {
		tk := lx.Next()
		if tk.Kind == token.EOF {
			break
		}
		if tk.Kind == token.Error {
			t.Fatalf("unexpected error token: %q", tk.Lexeme)
		}
		got = append(got, tok{Kind: tk.Kind, Text: tk.Lexeme})
	}
	return got
}

func TestLexer_SignificantTokenStreams(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []tok
	}{
		{
			name:  "punctuation and keywords",
			input: `chapter 1 { name: "Prologue" }`,
			want: []tok{
				{token.KeywordChapter, "chapter"},
				{token.Integer, "1"},
				{token.LBrace, "{"},
				{token.KeywordName, "name"},
				{token.Colon, ":"},
				{token.String, `"Prologue"`},
				{token.RBrace, "}"},
			},
		},
		{
			name:  "hyphenated identifier",
			input: `linked-list-data`,
			want:  []tok{{token.Identifier, "linked-list-data"}},
		},
		{
			name:  "booleans",
			input: `true false`,
			want:  []tok{{token.Boolean, "true"}, {token.Boolean, "false"}},
		},
		{
			name:  "signed float and integer",
			input: `-5.6 42`,
			want:  []tok{{token.Float, "-5.6"}, {token.Integer, "42"}},
		},
		{
			name:  "reference syntax",
			input: `@node(2)`,
			want: []tok{
				{token.At, "@"},
				{token.KeywordNode, "node"},
				{token.LParen, "("},
				{token.Integer, "2"},
				{token.RParen, ")"},
			},
		},
		{
			name:  "comment stripped",
			input: "node 1 # trailing comment\n{ }",
			want: []tok{
				{token.KeywordNode, "node"},
				{token.Integer, "1"},
				{token.LBrace, "{"},
				{token.RBrace, "}"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := collect(t, tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("len(tokens)=%d, want %d\n got=%v", len(got), len(tc.want), got)
			}
			for i := range tc.want {
				if got[i].Kind != tc.want[i].Kind || got[i].Text != tc.want[i].Text {
					t.Fatalf("tok[%d]=(%s,%q), want (%s,%q)", i, got[i].Kind, got[i].Text, tc.want[i].Kind, tc.want[i].Text)
				}
			}
		})
	}
}

func TestLexer_CodeBlockPreservesInnerWhitespace(t *testing.T) {
	lx := lexer.New([]byte(`<! x=1; !>`))
	tk := lx.Next()
	if tk.Kind != token.CodeBlock {
		t.Fatalf("kind=%s, want CodeBlock", tk.Kind)
	}
	if tk.Value.(string) != " x=1; " {
		t.Fatalf("value=%q, want %q", tk.Value, " x=1; ")
	}
}

func TestLexer_UnterminatedCodeBlockIsError(t *testing.T) {
	lx := lexer.New([]byte(`<! foo`))
	tk := lx.Next()
	if tk.Kind != token.Error {
		t.Fatalf("kind=%s, want Error", tk.Kind)
	}
	if tk.Line != 1 {
		t.Fatalf("line=%d, want 1 (error should reference the opening line)", tk.Line)
	}
}

func TestLexer_UnterminatedStringIsError(t *testing.T) {
	lx := lexer.New([]byte(`"unterminated`))
	tk := lx.Next()
	if tk.Kind != token.Error {
		t.Fatalf("kind=%s, want Error", tk.Kind)
	}
}

// TestLexer_LineCounting verifies property 2 from spec.md §8: every
// token's line equals 1 + the count of line-terminating sequences
// strictly before its start offset, across all three line-ending
// conventions.
func TestLexer_LineCounting(t *testing.T) {
	for _, eol := range []string{"\n", "\r", "\r\n"} {
		input := strings.Join([]string{"a", "b", "c"}, eol)
		lx := lexer.New([]byte(input))
		wantLine := 1
		for {
			tk := lx.Next()
			if tk.Kind == token.EOF {
				break
			}
			if tk.Line != wantLine {
				t.Fatalf("eol=%q: token %q at line %d, want %d", eol, tk.Lexeme, tk.Line, wantLine)
			}
			wantLine++
		}
	}
}

// TestLexer_LexemeRoundTrip verifies property 1: concatenating token
// lexemes in order reproduces the source stripped of whitespace and
// comments.
func TestLexer_LexemeRoundTrip(t *testing.T) {
	input := "chapter 1 { name: \"A\" } # trailing comment\nnode 2 { }"
	lx := lexer.New([]byte(input))
	var sb strings.Builder
	for {
		tk := lx.Next()
		if tk.Kind == token.EOF {
			break
		}
		sb.WriteString(tk.Lexeme)
	}
	want := "chapter1{name:\"A\"}node2{}"
	if sb.String() != want {
		t.Fatalf("round-trip=%q, want %q", sb.String(), want)
	}
}
