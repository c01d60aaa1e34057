package parser

import "github.com/abdullahibnnadjo/maud/internal/token"

// Cursor is a peekable position over a token stream. Copying a Cursor is the
// backtracking primitive: a speculative branch works on a copy and the
// original either discards it or adopts it with Commit. Copies share the
// backing stream but advance independently.
type Cursor struct {
	tokens token.Stream
	pos    int
}

// NewCursor creates a cursor at the start of the given stream
func NewCursor(tokens token.Stream) Cursor {
	return Cursor{tokens: tokens}
}

// Peek returns the next token without consuming it
func (c *Cursor) Peek() (token.Token, bool) {
	return c.at(0)
}

// Peek2 returns the second upcoming token without consuming anything
func (c *Cursor) Peek2() (token.Token, bool) {
	return c.at(1)
}

// Peek3 returns the third upcoming token without consuming anything
func (c *Cursor) Peek3() (token.Token, bool) {
	return c.at(2)
}

func (c *Cursor) at(n int) (token.Token, bool) {
	if c.pos+n >= len(c.tokens) {
		return token.Token{}, false
	}
	return c.tokens[c.pos+n], true
}

// Next consumes and returns the next token
func (c *Cursor) Next() (token.Token, bool) {
	t, ok := c.Peek()
	if ok {
		c.pos++
	}
	return t, ok
}

// Advance consumes one token without inspecting it
func (c *Cursor) Advance() {
	c.AdvanceN(1)
}

// Advance2 consumes two tokens without inspecting them
func (c *Cursor) Advance2() {
	c.AdvanceN(2)
}

// AdvanceN consumes n tokens, stopping at end of input
func (c *Cursor) AdvanceN(n int) {
	c.pos += n
	if c.pos > len(c.tokens) {
		c.pos = len(c.tokens)
	}
}

// Commit replaces the cursor position with that of a previously advanced
// copy, confirming a speculative parse
func (c *Cursor) Commit(attempt Cursor) {
	*c = attempt
}

// Rest returns the not-yet-consumed remainder of the stream
func (c *Cursor) Rest() token.Stream {
	return c.tokens[c.pos:]
}
