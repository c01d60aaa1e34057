// Package lexer implements the Maud template tokenizer. It turns source text
// into the nested token streams consumed by the parser: literals,
// identifiers, single-character operators with adjacency hints, and
// delimited groups that own their inner stream.
package lexer

import (
	"fmt"

	"github.com/abdullahibnnadjo/maud/internal/token"
)

// LexError represents a tokenization error with its source position
type LexError struct {
	Filename string
	Pos      token.Position
	Message  string
}

func (e *LexError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s:%s: %s", e.Filename, e.Pos, e.Message)
	}
	return fmt.Sprintf("lex error at %s: %s", e.Pos, e.Message)
}

// Lexer represents the template tokenizer
type Lexer struct {
	input    string
	filename string
	pos      int // current byte offset in input
	line     int // current line number (1-based)
	column   int // current column number (1-based)
}

// New creates a new lexer instance
func New(input string) *Lexer {
	return NewWithFilename(input, "")
}

// NewWithFilename creates a new lexer instance with a filename for error
// reporting
func NewWithFilename(input, filename string) *Lexer {
	return &Lexer{
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
	}
}

// Tokenize scans the whole input and returns the top-level token stream.
// Delimited regions become group tokens owning their nested streams.
func (l *Lexer) Tokenize() (token.Stream, error) {
	stream, err := l.lexStream()
	if err != nil {
		return nil, err
	}
	if c := l.ch(); c != 0 {
		return nil, l.errorf(l.position(), "unexpected closing delimiter %q", string(c))
	}
	return stream, nil
}

// ch returns the current character, or 0 at end of input
func (l *Lexer) ch() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

// peekChar returns the next character without advancing
func (l *Lexer) peekChar() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// readChar advances past the current character
func (l *Lexer) readChar() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.pos++
	}
}

// position returns the current source position
func (l *Lexer) position() token.Position {
	return token.Position{Line: l.line, Column: l.column, Offset: l.pos}
}

func (l *Lexer) errorf(pos token.Position, format string, args ...any) error {
	return &LexError{Filename: l.filename, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// skipTrivia skips whitespace and line comments
func (l *Lexer) skipTrivia() {
	for {
		switch {
		case l.ch() == ' ' || l.ch() == '\t' || l.ch() == '\r' || l.ch() == '\n':
			l.readChar()
		case l.ch() == '/' && l.peekChar() == '/':
			for l.ch() != 0 && l.ch() != '\n' {
				l.readChar()
			}
		default:
			return
		}
	}
}

// lexStream scans tokens until end of input or an unconsumed closing
// delimiter, whichever comes first. The closing delimiter is left for the
// caller to inspect.
func (l *Lexer) lexStream() (token.Stream, error) {
	var out token.Stream
	for {
		l.skipTrivia()
		c := l.ch()
		switch {
		case c == 0 || c == ')' || c == '}' || c == ']':
			return out, nil
		case c == '(' || c == '{' || c == '[':
			group, err := l.lexGroup()
			if err != nil {
				return nil, err
			}
			out = append(out, group)
		case c == '"':
			str, err := l.lexString()
			if err != nil {
				return nil, err
			}
			out = append(out, str)
		case isDigit(c):
			out = append(out, l.lexNumber())
		case isIdentStart(c):
			out = append(out, l.lexIdent())
		case isOpChar(c):
			out = append(out, l.lexOp())
		default:
			return nil, l.errorf(l.position(), "unexpected character %q", string(c))
		}
	}
}

// lexGroup scans a delimited group and its nested stream
func (l *Lexer) lexGroup() (token.Token, error) {
	start := l.position()
	open := l.ch()
	var delim token.Delim
	switch open {
	case '{':
		delim = token.DelimBrace
	case '[':
		delim = token.DelimBracket
	default:
		delim = token.DelimParen
	}
	l.readChar()

	inner, err := l.lexStream()
	if err != nil {
		return token.Token{}, err
	}
	switch c := l.ch(); c {
	case delim.Close():
		l.readChar()
	case 0:
		return token.Token{}, l.errorf(start, "unclosed delimiter %q", string(open))
	default:
		return token.Token{}, l.errorf(l.position(), "mismatched closing delimiter %q", string(c))
	}
	return token.Token{
		Kind:   token.KindGroup,
		Delim:  delim,
		Stream: inner,
		Span:   token.Span{Start: start, End: l.position()},
	}, nil
}

// lexString scans a string literal, keeping the quotes and escape sequences
// verbatim in the token text
func (l *Lexer) lexString() (token.Token, error) {
	start := l.position()
	l.readChar() // opening quote
	for {
		switch l.ch() {
		case 0:
			return token.Token{}, l.errorf(start, "unterminated string literal")
		case '\\':
			l.readChar()
			l.readChar()
		case '"':
			l.readChar()
			return token.Token{
				Kind: token.KindLiteral,
				Text: l.input[start.Offset:l.pos],
				Span: token.Span{Start: start, End: l.position()},
			}, nil
		default:
			l.readChar()
		}
	}
}

// lexNumber scans an integer or decimal literal
func (l *Lexer) lexNumber() token.Token {
	start := l.position()
	for isDigit(l.ch()) {
		l.readChar()
	}
	if l.ch() == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch()) {
			l.readChar()
		}
	}
	return token.Token{
		Kind: token.KindLiteral,
		Text: l.input[start.Offset:l.pos],
		Span: token.Span{Start: start, End: l.position()},
	}
}

// lexIdent scans an identifier. Hyphens are not identifier characters; the
// parser assembles hyphenated names from alternating identifier and operator
// tokens.
func (l *Lexer) lexIdent() token.Token {
	start := l.position()
	for isIdentStart(l.ch()) || isDigit(l.ch()) {
		l.readChar()
	}
	return token.Token{
		Kind: token.KindIdent,
		Text: l.input[start.Offset:l.pos],
		Span: token.Span{Start: start, End: l.position()},
	}
}

// lexOp scans a single-character operator. The spacing hint is joint when
// the very next character is another operator character.
func (l *Lexer) lexOp() token.Token {
	start := l.position()
	op := l.ch()
	l.readChar()
	spacing := token.SpacingAlone
	if isOpChar(l.ch()) {
		spacing = token.SpacingJoint
	}
	return token.Token{
		Kind:    token.KindOp,
		Op:      op,
		Spacing: spacing,
		Span:    token.Span{Start: start, End: l.position()},
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentStart(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isOpChar(c byte) bool {
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', ',', '-', '.', '/',
		':', ';', '<', '=', '>', '?', '@', '\\', '^', '|', '~':
		return true
	}
	return false
}
