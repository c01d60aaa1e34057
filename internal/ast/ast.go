// Package ast defines the markup syntax tree produced by the parser and
// consumed by the code generator. Host-language expressions embedded in the
// template are carried as opaque token streams and never interpreted here.
package ast

import (
	"fmt"

	"github.com/abdullahibnnadjo/maud/internal/token"
)

// Markup represents a single node of template markup
type Markup interface {
	// String returns a short string representation of the node
	String() string
	markupNode()
}

// Literal represents a fixed string fragment
type Literal struct {
	Content string
	Span    token.Span
}

func (l *Literal) String() string { return fmt.Sprintf("Literal(%q)", l.Content) }
func (l *Literal) markupNode()    {}

// Splice represents an embedded host expression whose evaluated result is
// inserted into the output. The expression tokens are stored verbatim.
type Splice struct {
	Expr token.Stream
}

func (s *Splice) String() string { return fmt.Sprintf("Splice(%s)", s.Expr) }
func (s *Splice) markupNode()    {}

// Element represents an element node. A nil Body marks a void element,
// explicitly terminated by `;` or `/`.
type Element struct {
	Name  token.Stream
	Attrs Attrs
	Body  Markup
}

func (e *Element) String() string { return fmt.Sprintf("Element(%s)", e.Name) }
func (e *Element) markupNode()    {}

// Block represents a brace-delimited sequence of markups
type Block struct {
	Markups []Markup
	Span    token.Span
}

func (b *Block) String() string { return "Block" }
func (b *Block) markupNode()    {}

// Special represents a single-branch control construct: an opaque head of
// condition tokens plus a body block. `@while` and `@for` produce one
// Special each; `@if` chains and `@match` arms are sequences of them.
type Special struct {
	Head token.Stream
	Body Block
}

func (s *Special) String() string { return fmt.Sprintf("Special(@%s)", s.Head) }
func (s *Special) markupNode()    {}

// If represents an `@if` / `@else if` / `@else` chain. Segments is never
// empty and only the final segment may be a bare `@else`.
type If struct {
	Segments []Special
}

func (i *If) String() string { return fmt.Sprintf("If(%d segments)", len(i.Segments)) }
func (i *If) markupNode()    {}

// Match represents an `@match` expression: an opaque scrutinee head and an
// ordered sequence of arms. ArmsSpan covers the brace group holding the arms.
type Match struct {
	Head     token.Stream
	Arms     []Special
	ArmsSpan token.Span
}

func (m *Match) String() string { return fmt.Sprintf("Match(%d arms)", len(m.Arms)) }
func (m *Match) markupNode()    {}

// Let represents an `@let` binding, stored whole as an opaque token run from
// the `let` keyword through the terminating semicolon.
type Let struct {
	Tokens token.Stream
}

func (l *Let) String() string { return fmt.Sprintf("Let(%s)", l.Tokens) }
func (l *Let) markupNode()    {}

// Attrs holds the attributes of an element, including the `.class` and `#id`
// shorthand forms
type Attrs struct {
	ClassesStatic  []token.Stream
	ClassesToggled []ToggledClass
	IDs            []token.Stream
	Attributes     []Attribute
}

// ToggledClass is a class shorthand guarded by a bracketed toggler
type ToggledClass struct {
	Name    token.Stream
	Toggler Toggler
}

// AttrKind represents the kind of an attribute
type AttrKind int

const (
	// AttrNormal is a `name=value` attribute.
	AttrNormal AttrKind = iota
	// AttrEmpty is a `name?` attribute with an optional toggler.
	AttrEmpty
)

// Attribute represents a single element attribute
type Attribute struct {
	Name    token.Stream
	Kind    AttrKind
	Value   Markup   // AttrNormal only
	Toggler *Toggler // AttrEmpty only, optional
}

// Toggler is a bracketed boolean condition attached to a shorthand class or
// an empty attribute. The condition tokens are stored verbatim.
type Toggler struct {
	Cond     token.Stream
	CondSpan token.Span
}
