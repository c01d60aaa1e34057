package token

import "testing"

func opToken(op byte, start, end int) Token {
	return Token{
		Kind: KindOp,
		Op:   op,
		Span: Span{
			Start: Position{Line: 1, Column: start + 1, Offset: start},
			End:   Position{Line: 1, Column: end + 1, Offset: end},
		},
	}
}

func identToken(text string, start int) Token {
	return Token{
		Kind: KindIdent,
		Text: text,
		Span: Span{
			Start: Position{Line: 1, Column: start + 1, Offset: start},
			End:   Position{Line: 1, Column: start + len(text) + 1, Offset: start + len(text)},
		},
	}
}

func TestStringValue(t *testing.T) {
	tests := []struct {
		name    string
		tok     Token
		want    string
		wantOK  bool
	}{
		{"plain string", Token{Kind: KindLiteral, Text: `"hello"`}, "hello", true},
		{"escaped quote", Token{Kind: KindLiteral, Text: `"a\"b"`}, `a"b`, true},
		{"newline escape", Token{Kind: KindLiteral, Text: `"a\nb"`}, "a\nb", true},
		{"number literal", Token{Kind: KindLiteral, Text: "42"}, "", false},
		{"identifier", Token{Kind: KindIdent, Text: "div"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.tok.StringValue()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("StringValue() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSpanJoin(t *testing.T) {
	a := Span{Start: Position{Line: 1, Column: 1, Offset: 0}, End: Position{Line: 1, Column: 4, Offset: 3}}
	b := Span{Start: Position{Line: 1, Column: 6, Offset: 5}, End: Position{Line: 2, Column: 2, Offset: 9}}

	joined := a.Join(b)
	if joined.Start != a.Start || joined.End != b.End {
		t.Errorf("Join() = %s, want %d..%d", joined, a.Start.Offset, b.End.Offset)
	}
	// Order must not matter.
	if b.Join(a) != joined {
		t.Errorf("Join() is not symmetric")
	}
	// Zero spans act as identity.
	if (Span{}).Join(a) != a || a.Join(Span{}) != a {
		t.Errorf("Join() with zero span should return the other span")
	}
}

func TestStreamString(t *testing.T) {
	// `x => y` with `=` and `>` adjacent in the source.
	arrow := Stream{
		identToken("x", 0),
		opToken('=', 2, 3),
		opToken('>', 3, 4),
		identToken("y", 5),
	}
	if got := arrow.String(); got != "x => y" {
		t.Errorf("String() = %q, want %q", got, "x => y")
	}

	// `data-toggle`: hyphen adjacent on both sides.
	name := Stream{
		identToken("data", 0),
		opToken('-', 4, 5),
		identToken("toggle", 5),
	}
	if got := name.String(); got != "data-toggle" {
		t.Errorf("String() = %q, want %q", got, "data-toggle")
	}
}

func TestStreamStringGroups(t *testing.T) {
	inner := Stream{identToken("a", 1)}
	group := Token{
		Kind:   KindGroup,
		Delim:  DelimParen,
		Stream: inner,
		Span: Span{
			Start: Position{Line: 1, Column: 1, Offset: 0},
			End:   Position{Line: 1, Column: 4, Offset: 3},
		},
	}
	s := Stream{group}
	if got := s.String(); got != "(a)" {
		t.Errorf("String() = %q, want %q", got, "(a)")
	}
}
