// Package token defines the lexical token model shared by the lexer and the
// parser: tokens, delimited token groups, streams, and source spans.
package token

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind represents the kind of a token
type Kind int

const (
	// KindLiteral is a string or number literal.
	KindLiteral Kind = iota
	// KindIdent is an identifier or keyword-like term.
	KindIdent
	// KindOp is a single-character operator with an adjacency hint.
	KindOp
	// KindGroup is a delimited group wrapping a nested token stream.
	KindGroup
)

// kindNames provides string representations for token kinds
var kindNames = map[Kind]string{
	KindLiteral: "LITERAL",
	KindIdent:   "IDENT",
	KindOp:      "OP",
	KindGroup:   "GROUP",
}

// String returns a string representation of the token kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(k))
}

// Spacing records whether an operator token is immediately followed by
// another operator character with no space in between. The parser uses it to
// tell a `=>` arrow apart from a `=` that merely precedes a `>` further on.
type Spacing int

const (
	// SpacingAlone means the operator is followed by whitespace or a
	// non-operator token.
	SpacingAlone Spacing = iota
	// SpacingJoint means the next operator character is adjacent.
	SpacingJoint
)

// String returns a string representation of the spacing hint
func (s Spacing) String() string {
	if s == SpacingJoint {
		return "JOINT"
	}
	return "ALONE"
}

// Delim represents the delimiter kind of a token group
type Delim int

const (
	DelimParen Delim = iota
	DelimBrace
	DelimBracket
)

// Open returns the opening delimiter character
func (d Delim) Open() byte {
	switch d {
	case DelimBrace:
		return '{'
	case DelimBracket:
		return '['
	}
	return '('
}

// Close returns the closing delimiter character
func (d Delim) Close() byte {
	switch d {
	case DelimBrace:
		return '}'
	case DelimBracket:
		return ']'
	}
	return ')'
}

// Position represents a position in the source text
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range in the source text
type Span struct {
	Start Position
	End   Position
}

// String returns a string representation of the span
func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%d:%d-%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// IsZero reports whether the span carries no position information.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Join returns the smallest span covering both s and other.
func (s Span) Join(other Span) Span {
	if s.IsZero() {
		return other
	}
	if other.IsZero() {
		return s
	}
	joined := s
	if other.Start.Offset < joined.Start.Offset {
		joined.Start = other.Start
	}
	if other.End.Offset > joined.End.Offset {
		joined.End = other.End
	}
	return joined
}

// Token represents a single lexical token. Tokens are immutable values; a
// group token owns its nested stream.
type Token struct {
	Kind    Kind
	Text    string  // literal source text or identifier text
	Op      byte    // operator character, KindOp only
	Spacing Spacing // adjacency hint, KindOp only
	Delim   Delim   // delimiter kind, KindGroup only
	Stream  Stream  // nested tokens, KindGroup only
	Span    Span
}

// IsOp reports whether the token is the given single-character operator.
func (t Token) IsOp(ch byte) bool {
	return t.Kind == KindOp && t.Op == ch
}

// IsIdent reports whether the token is an identifier with the given text.
func (t Token) IsIdent(text string) bool {
	return t.Kind == KindIdent && t.Text == text
}

// IsGroup reports whether the token is a group with the given delimiter.
func (t Token) IsGroup(d Delim) bool {
	return t.Kind == KindGroup && t.Delim == d
}

// StringValue interprets the token as a string literal and returns its
// unquoted content. The second result is false when the token is not a
// string literal. This is the only literal interpretation the system
// performs; all other token content is stored verbatim.
func (t Token) StringValue() (string, bool) {
	if t.Kind != KindLiteral || len(t.Text) < 2 || t.Text[0] != '"' {
		return "", false
	}
	content, err := strconv.Unquote(t.Text)
	if err != nil {
		return "", false
	}
	return content, true
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Kind {
	case KindOp:
		return fmt.Sprintf("{%s %q %s %s}", t.Kind, string(t.Op), t.Spacing, t.Span)
	case KindGroup:
		return fmt.Sprintf("{%s %q %s}", t.Kind, string(t.Delim.Open()), t.Span)
	default:
		return fmt.Sprintf("{%s %q %s}", t.Kind, t.Text, t.Span)
	}
}

// Stream is an ordered sequence of tokens. Streams are value slices; copying
// a stream header is cheap and sub-streams share no mutable state with their
// origin once stored in the syntax tree.
type Stream []Token

// String renders the stream back to source-like text. Tokens that were
// adjacent in the source (by span) stay adjacent; everything else is
// space-separated.
func (s Stream) String() string {
	var b strings.Builder
	for i, t := range s {
		if i > 0 && !adjacent(s[i-1], t) {
			b.WriteByte(' ')
		}
		switch t.Kind {
		case KindOp:
			b.WriteByte(t.Op)
		case KindGroup:
			b.WriteByte(t.Delim.Open())
			b.WriteString(t.Stream.String())
			b.WriteByte(t.Delim.Close())
		default:
			b.WriteString(t.Text)
		}
	}
	return b.String()
}

func adjacent(prev, next Token) bool {
	if prev.Span.IsZero() || next.Span.IsZero() {
		return false
	}
	return prev.Span.End.Offset == next.Span.Start.Offset
}
