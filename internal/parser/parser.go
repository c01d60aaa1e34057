// Package parser implements the recursive descent parser for the Maud
// templating language. It consumes a token stream and produces the markup
// syntax tree, leaving every embedded host-language expression as an opaque
// token run for the code generator to splice through.
package parser

import (
	"fmt"

	"github.com/abdullahibnnadjo/maud/internal/ast"
	"github.com/abdullahibnnadjo/maud/internal/token"
)

// Parser represents the template parser
type Parser struct {
	// inAttr indicates whether we're parsing an attribute value, where
	// element syntax is not allowed.
	inAttr bool
	cur    Cursor
}

// Parse parses a token stream into a markup sequence
func Parse(input token.Stream) ([]ast.Markup, error) {
	return New(input).Markups()
}

// New creates a new parser over the given stream
func New(input token.Stream) *Parser {
	return &Parser{cur: NewCursor(input)}
}

// withInput creates a sub-parser over a nested stream, keeping the
// attribute-value context of the parent
func (p *Parser) withInput(input token.Stream) *Parser {
	return &Parser{inAttr: p.inAttr, cur: NewCursor(input)}
}

// Markups parses the markup sequence rule: zero or more markups, with bare
// semicolons skipped and `@let` legal only directly at this level.
func (p *Parser) Markups() ([]ast.Markup, error) {
	var result []ast.Markup
	for {
		t1, ok := p.cur.Peek()
		if !ok {
			return result, nil
		}
		t2, ok2 := p.cur.Peek2()
		switch {
		case t1.IsOp(';'):
			p.cur.Advance()
		case t1.IsOp('@') && ok2 && t2.IsIdent("let"):
			p.cur.Advance2()
			markup, err := p.letExpr(t2)
			if err != nil {
				return nil, err
			}
			result = append(result, markup)
		default:
			markup, err := p.markup()
			if err != nil {
				return nil, err
			}
			result = append(result, markup)
		}
	}
}

// markup parses exactly one markup
func (p *Parser) markup() (ast.Markup, error) {
	t, ok := p.cur.Peek()
	if !ok {
		return nil, errEOF("unexpected end of input")
	}
	switch t.Kind {
	case token.KindLiteral:
		p.cur.Advance()
		return p.literal(t)
	case token.KindOp:
		if t.Op == '@' {
			p.cur.Advance()
			return p.specialForm()
		}
	case token.KindIdent:
		name, err := p.namespacedName()
		if err != nil {
			return nil, err
		}
		return p.element(name)
	case token.KindGroup:
		switch t.Delim {
		case token.DelimParen:
			// Splice: the expression is stored verbatim, never parsed.
			p.cur.Advance()
			return &ast.Splice{Expr: t.Stream}, nil
		case token.DelimBrace:
			p.cur.Advance()
			block, err := p.block(t.Stream, t.Span)
			if err != nil {
				return nil, err
			}
			return &block, nil
		}
	}
	return nil, errAt(ErrUnexpectedToken, t.Span, "invalid syntax")
}

// specialForm parses the keyword after an already-consumed `@` and
// dispatches to the matching construct
func (p *Parser) specialForm() (ast.Markup, error) {
	keyword, ok := p.cur.Next()
	if !ok || keyword.Kind != token.KindIdent {
		return nil, errAt(ErrUnexpectedToken, keyword.Span, "expected keyword after `@`")
	}
	switch keyword.Text {
	case "if":
		var segments []ast.Special
		if err := p.ifExpr(token.Stream{keyword}, &segments); err != nil {
			return nil, err
		}
		return &ast.If{Segments: segments}, nil
	case "while":
		return p.whileExpr(keyword)
	case "for":
		return p.forExpr(keyword)
	case "match":
		return p.matchExpr(keyword)
	case "let":
		return nil, errAt(ErrMisplacedConstruct, keyword.Span, "@let only works inside a block")
	default:
		return nil, errAt(ErrUnknownKeyword, keyword.Span,
			fmt.Sprintf("unknown keyword `@%s`", keyword.Text))
	}
}

// literal parses an already-consumed literal token as a string
func (p *Parser) literal(t token.Token) (ast.Markup, error) {
	content, ok := t.StringValue()
	if !ok {
		return nil, errAt(ErrUnexpectedToken, t.Span, "expected string")
	}
	return &ast.Literal{Content: content, Span: t.Span}, nil
}

// ifExpr parses one branch of an `@if` chain: condition tokens up to a brace
// body, then any trailing `@else if` / `@else`. The leading keywords are
// passed in as the head prefix.
func (p *Parser) ifExpr(prefix token.Stream, segments *[]ast.Special) error {
	head := prefix
	var body ast.Block
	for {
		t, ok := p.cur.Next()
		if !ok {
			return errEOF("unexpected end of @if expression")
		}
		if t.IsGroup(token.DelimBrace) {
			block, err := p.block(t.Stream, t.Span)
			if err != nil {
				return err
			}
			body = block
			break
		}
		head = append(head, t)
	}
	*segments = append(*segments, ast.Special{Head: head, Body: body})
	return p.elseIfExpr(segments)
}

// elseIfExpr parses an optional `@else if` or `@else` continuation. The
// leading `@else` must not already be consumed.
func (p *Parser) elseIfExpr(segments *[]ast.Special) error {
	t1, ok1 := p.cur.Peek()
	t2, ok2 := p.cur.Peek2()
	if !ok1 || !ok2 || !t1.IsOp('@') || !t2.IsIdent("else") {
		// No `@else`; the chain ends here.
		return nil
	}
	p.cur.Advance2()
	if t3, ok := p.cur.Peek(); ok && t3.IsIdent("if") {
		p.cur.Advance()
		return p.ifExpr(token.Stream{t2, t3}, segments)
	}
	t, ok := p.cur.Next()
	if !ok {
		return errEOF("expected body for @else")
	}
	if !t.IsGroup(token.DelimBrace) {
		return errAt(ErrUnexpectedToken, t.Span, "expected body for @else")
	}
	body, err := p.block(t.Stream, t.Span)
	if err != nil {
		return err
	}
	*segments = append(*segments, ast.Special{Head: token.Stream{t2}, Body: body})
	return nil
}

// whileExpr parses an `@while` expression. The keyword is already consumed.
func (p *Parser) whileExpr(keyword token.Token) (ast.Markup, error) {
	head := token.Stream{keyword}
	for {
		t, ok := p.cur.Next()
		if !ok {
			return nil, errEOF("unexpected end of @while expression")
		}
		if t.IsGroup(token.DelimBrace) {
			body, err := p.block(t.Stream, t.Span)
			if err != nil {
				return nil, err
			}
			return &ast.Special{Head: head, Body: body}, nil
		}
		head = append(head, t)
	}
}

// forExpr parses an `@for` expression. The keyword is already consumed. An
// `in` identifier must appear before the body brace; until it does, braces
// are ordinary head tokens.
func (p *Parser) forExpr(keyword token.Token) (ast.Markup, error) {
	head := token.Stream{keyword}
	sawIn := false
	for {
		t, ok := p.cur.Next()
		if !ok {
			return nil, errEOF("unexpected end of @for expression")
		}
		if sawIn && t.IsGroup(token.DelimBrace) {
			body, err := p.block(t.Stream, t.Span)
			if err != nil {
				return nil, err
			}
			return &ast.Special{Head: head, Body: body}, nil
		}
		if !sawIn && t.IsIdent("in") {
			sawIn = true
		}
		head = append(head, t)
	}
}

// matchExpr parses an `@match` expression. The keyword is already consumed.
func (p *Parser) matchExpr(keyword token.Token) (ast.Markup, error) {
	head := token.Stream{keyword}
	for {
		t, ok := p.cur.Next()
		if !ok {
			return nil, errEOF("unexpected end of @match expression")
		}
		if t.IsGroup(token.DelimBrace) {
			arms, err := p.withInput(t.Stream).matchArms()
			if err != nil {
				return nil, err
			}
			return &ast.Match{Head: head, Arms: arms, ArmsSpan: t.Span}, nil
		}
		head = append(head, t)
	}
}

func (p *Parser) matchArms() ([]ast.Special, error) {
	var arms []ast.Special
	for {
		arm, err := p.matchArm()
		if err != nil {
			return nil, err
		}
		if arm == nil {
			return arms, nil
		}
		arms = append(arms, *arm)
	}
}

// matchArm parses a single match arm, or returns nil when the arm stream is
// exhausted. The pattern runs up to a `=>` arrow, which requires the `=` to
// be immediately adjacent to the `>`.
func (p *Parser) matchArm() (*ast.Special, error) {
	var head token.Stream
	for {
		t1, ok1 := p.cur.Peek()
		if !ok1 {
			if len(head) == 0 {
				// No more arms.
				return nil, nil
			}
			return nil, errEOF("unexpected end of @match pattern")
		}
		t2, ok2 := p.cur.Peek2()
		if t1.IsOp('=') && t1.Spacing == token.SpacingJoint && ok2 && t2.IsOp('>') {
			p.cur.Advance2()
			head = append(head, t1, t2)
			break
		}
		p.cur.Advance()
		head = append(head, t1)
	}

	first, ok := p.cur.Next()
	if !ok {
		return nil, errEOF("unexpected end of @match arm")
	}
	var body ast.Block
	if first.IsGroup(token.DelimBrace) {
		// $pat => { $stmts }
		block, err := p.block(first.Stream, first.Span)
		if err != nil {
			return nil, err
		}
		// Trailing commas are optional after a braced arm body.
		if t, ok := p.cur.Peek(); ok && t.IsOp(',') {
			p.cur.Advance()
		}
		body = block
	} else {
		// $pat => $expr, — the expression run ends at a top-level comma
		// and is wrapped into a synthetic one-markup block.
		span := first.Span
		exprTokens := token.Stream{first}
		for {
			t, ok := p.cur.Next()
			if !ok {
				return nil, errEOF("unexpected end of @match arm")
			}
			if t.IsOp(',') {
				break
			}
			span = span.Join(t.Span)
			exprTokens = append(exprTokens, t)
		}
		block, err := p.block(exprTokens, span)
		if err != nil {
			return nil, err
		}
		body = block
	}
	return &ast.Special{Head: head, Body: body}, nil
}

// letExpr parses an `@let` binding. The `@` and `let` tokens are already
// consumed; the keyword is passed in. The whole run through `=` and the
// terminating `;` is stored opaquely.
func (p *Parser) letExpr(keyword token.Token) (ast.Markup, error) {
	tokens := token.Stream{keyword}
	for {
		t, ok := p.cur.Next()
		if !ok {
			return nil, errEOF("unexpected end of @let expression")
		}
		tokens = append(tokens, t)
		if t.IsOp('=') {
			break
		}
	}
	for {
		t, ok := p.cur.Next()
		if !ok {
			return nil, errEOF("unexpected end of @let expression")
		}
		tokens = append(tokens, t)
		if t.IsOp(';') {
			break
		}
	}
	return &ast.Let{Tokens: tokens}, nil
}

// element parses an element node. The name is already consumed.
func (p *Parser) element(name token.Stream) (ast.Markup, error) {
	if p.inAttr {
		span := token.Span{}
		if len(name) > 0 {
			span = name[0].Span
		}
		return nil, errAt(ErrMisplacedConstruct, span, "element not allowed inside an attribute value")
	}
	attrs, err := p.attrs()
	if err != nil {
		return nil, err
	}
	if t, ok := p.cur.Peek(); ok && (t.IsOp(';') || t.IsOp('/')) {
		// Void element.
		p.cur.Advance()
		return &ast.Element{Name: name, Attrs: attrs}, nil
	}
	body, err := p.markup()
	if err != nil {
		return nil, err
	}
	return &ast.Element{Name: name, Attrs: attrs, Body: body}, nil
}

// attrs parses the attributes of an element. Each iteration speculatively
// parses a name on a copy of the parser and inspects the token after it;
// only a recognized form commits the copy, so a rejected branch leaves the
// cursor exactly where it started.
func (p *Parser) attrs() (ast.Attrs, error) {
	var attrs ast.Attrs
	for {
		attempt := *p
		name, nameErr := attempt.namespacedName()
		after, afterOK := attempt.cur.Next()
		switch {
		case nameErr == nil && afterOK && after.IsOp('='):
			// Non-empty attribute: parse the value under an
			// attribute-value context.
			*p = attempt
			saved := p.inAttr
			p.inAttr = true
			value, err := p.markup()
			p.inAttr = saved
			if err != nil {
				return ast.Attrs{}, err
			}
			attrs.Attributes = append(attrs.Attributes, ast.Attribute{
				Name:  name,
				Kind:  ast.AttrNormal,
				Value: value,
			})
		case nameErr == nil && afterOK && after.IsOp('?'):
			// Empty attribute.
			*p = attempt
			attrs.Attributes = append(attrs.Attributes, ast.Attribute{
				Name:    name,
				Kind:    ast.AttrEmpty,
				Toggler: p.attrToggler(),
			})
		case nameErr != nil && afterOK && after.IsOp('.'):
			// Class shorthand.
			*p = attempt
			class, err := p.name()
			if err != nil {
				return ast.Attrs{}, err
			}
			if toggler := p.attrToggler(); toggler != nil {
				attrs.ClassesToggled = append(attrs.ClassesToggled, ast.ToggledClass{
					Name:    class,
					Toggler: *toggler,
				})
			} else {
				attrs.ClassesStatic = append(attrs.ClassesStatic, class)
			}
		case nameErr != nil && afterOK && after.IsOp('#'):
			// ID shorthand.
			*p = attempt
			id, err := p.name()
			if err != nil {
				return ast.Attrs{}, err
			}
			attrs.IDs = append(attrs.IDs, id)
		default:
			// Not an attribute; discard the attempt and bail out.
			return attrs, nil
		}
	}
}

// attrToggler parses the optional `[cond]` after an empty attribute or a
// class shorthand. Absence is not an error.
func (p *Parser) attrToggler() *ast.Toggler {
	t, ok := p.cur.Peek()
	if !ok || !t.IsGroup(token.DelimBracket) {
		return nil
	}
	p.cur.Advance()
	return &ast.Toggler{Cond: t.Stream, CondSpan: t.Span}
}

// name parses an identifier, without dealing with namespaces. Hyphenated
// names like `foo-bar-baz` alternate between a hyphen and a following
// identifier; the name stops growing as soon as neither appears.
func (p *Parser) name() (token.Stream, error) {
	t, ok := p.cur.Peek()
	if !ok || t.Kind != token.KindIdent {
		return nil, errAt(ErrUnexpectedToken, t.Span, "expected identifier")
	}
	p.cur.Advance()
	result := token.Stream{t}
	expectIdent := false
	for {
		t, ok := p.cur.Peek()
		if !ok {
			return result, nil
		}
		switch {
		case t.IsOp('-'):
			p.cur.Advance()
			result = append(result, t)
			expectIdent = true
		case t.Kind == token.KindIdent && expectIdent:
			p.cur.Advance()
			result = append(result, t)
			expectIdent = false
		default:
			return result, nil
		}
	}
}

// namespacedName parses an element or attribute name with an optional
// `ns:name` namespace, concatenated into one token stream
func (p *Parser) namespacedName() (token.Stream, error) {
	result, err := p.name()
	if err != nil {
		return nil, err
	}
	if t, ok := p.cur.Peek(); ok && t.IsOp(':') {
		p.cur.Advance()
		result = append(result, t)
		second, err := p.name()
		if err != nil {
			return nil, err
		}
		result = append(result, second...)
	}
	return result, nil
}

// block runs the markup sequence rule over an already-extracted brace
// group's inner stream
func (p *Parser) block(body token.Stream, span token.Span) (ast.Block, error) {
	markups, err := p.withInput(body).Markups()
	if err != nil {
		return ast.Block{}, err
	}
	return ast.Block{Markups: markups, Span: span}, nil
}
