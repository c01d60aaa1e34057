package lexer

import (
	"errors"
	"testing"

	"github.com/abdullahibnnadjo/maud/internal/token"
)

func TestBasicTokens(t *testing.T) {
	input := `div.foo "hi" ;`

	tests := []struct {
		expectedKind token.Kind
		expectedText string
	}{
		{token.KindIdent, "div"},
		{token.KindOp, "."},
		{token.KindIdent, "foo"},
		{token.KindLiteral, `"hi"`},
		{token.KindOp, ";"},
	}

	stream, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if len(stream) != len(tests) {
		t.Fatalf("got %d tokens, want %d", len(stream), len(tests))
	}

	for i, tt := range tests {
		tok := stream[i]
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - kind wrong. expected=%s, got=%s", i, tt.expectedKind, tok.Kind)
		}
		text := tok.Text
		if tok.Kind == token.KindOp {
			text = string(tok.Op)
		}
		if text != tt.expectedText {
			t.Fatalf("tests[%d] - text wrong. expected=%q, got=%q", i, tt.expectedText, text)
		}
	}
}

func TestGroups(t *testing.T) {
	input := `p { "a" (x + y) [b] }`

	stream, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if len(stream) != 2 {
		t.Fatalf("got %d top-level tokens, want 2", len(stream))
	}
	if !stream[1].IsGroup(token.DelimBrace) {
		t.Fatalf("expected brace group, got %s", stream[1])
	}

	inner := stream[1].Stream
	if len(inner) != 3 {
		t.Fatalf("got %d tokens inside braces, want 3", len(inner))
	}
	if inner[0].Kind != token.KindLiteral {
		t.Errorf("inner[0] = %s, want literal", inner[0])
	}
	if !inner[1].IsGroup(token.DelimParen) {
		t.Errorf("inner[1] = %s, want paren group", inner[1])
	}
	if !inner[2].IsGroup(token.DelimBracket) {
		t.Errorf("inner[2] = %s, want bracket group", inner[2])
	}

	// The group span covers its delimiters.
	if got := stream[1].Span.Start.Offset; got != 2 {
		t.Errorf("group span start offset = %d, want 2", got)
	}
	if got := stream[1].Span.End.Offset; got != len(input) {
		t.Errorf("group span end offset = %d, want %d", got, len(input))
	}
}

func TestOpSpacing(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		spacing []token.Spacing
	}{
		{"arrow", "=>", []token.Spacing{token.SpacingJoint, token.SpacingAlone}},
		{"spaced arrow", "= >", []token.Spacing{token.SpacingAlone, token.SpacingAlone}},
		{"double colon", "::", []token.Spacing{token.SpacingJoint, token.SpacingAlone}},
		{"question before bracket", "?[x]", []token.Spacing{token.SpacingAlone}},
		{"at before ident", "@if", []token.Spacing{token.SpacingAlone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream, err := New(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize() error: %v", err)
			}
			got := []token.Spacing{}
			for _, tok := range stream {
				if tok.Kind == token.KindOp {
					got = append(got, tok.Spacing)
				}
			}
			if len(got) != len(tt.spacing) {
				t.Fatalf("got %d op tokens, want %d", len(got), len(tt.spacing))
			}
			for i := range got {
				if got[i] != tt.spacing[i] {
					t.Errorf("op[%d] spacing = %s, want %s", i, got[i], tt.spacing[i])
				}
			}
		})
	}
}

func TestStringLiterals(t *testing.T) {
	stream, err := New(`"a\"b" "line"`).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if len(stream) != 2 {
		t.Fatalf("got %d tokens, want 2", len(stream))
	}
	if stream[0].Text != `"a\"b"` {
		t.Errorf("raw text = %q, want %q", stream[0].Text, `"a\"b"`)
	}
	content, ok := stream[0].StringValue()
	if !ok || content != `a"b` {
		t.Errorf("StringValue() = (%q, %v), want (%q, true)", content, ok, `a"b`)
	}
}

func TestComments(t *testing.T) {
	input := "// heading\ndiv // trailing\n"
	stream, err := New(input).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if len(stream) != 1 || !stream[0].IsIdent("div") {
		t.Fatalf("got %v, want a single `div` identifier", stream)
	}
}

func TestPositions(t *testing.T) {
	stream, err := New("a\n  b").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize() error: %v", err)
	}
	if len(stream) != 2 {
		t.Fatalf("got %d tokens, want 2", len(stream))
	}
	pos := stream[1].Span.Start
	if pos.Line != 2 || pos.Column != 3 {
		t.Errorf("second token starts at %s, want 2:3", pos)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated string", `"abc`},
		{"unclosed brace", `div { "a"`},
		{"stray closer", `div }`},
		{"mismatched closer", `{ a )`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input).Tokenize()
			if err == nil {
				t.Fatalf("Tokenize(%q) succeeded, want error", tt.input)
			}
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("error is %T, want *LexError", err)
			}
		})
	}
}
