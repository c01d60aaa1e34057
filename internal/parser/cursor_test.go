package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abdullahibnnadjo/maud/internal/lexer"
	"github.com/abdullahibnnadjo/maud/internal/token"
)

func lexStream(t *testing.T, input string) token.Stream {
	t.Helper()
	stream, err := lexer.New(input).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", input, err)
	}
	return stream
}

func TestCursorPeekDoesNotConsume(t *testing.T) {
	c := NewCursor(lexStream(t, "a b c"))

	first, ok := c.Peek()
	if !ok || !first.IsIdent("a") {
		t.Fatalf("Peek() = %v, %v", first, ok)
	}
	// Repeated peeks see the same token.
	again, _ := c.Peek()
	if diff := cmp.Diff(first, again); diff != "" {
		t.Errorf("Peek() changed between calls:\n%s", diff)
	}
	if second, ok := c.Peek2(); !ok || !second.IsIdent("b") {
		t.Errorf("Peek2() = %v, %v", second, ok)
	}
	if third, ok := c.Peek3(); !ok || !third.IsIdent("c") {
		t.Errorf("Peek3() = %v, %v", third, ok)
	}
}

func TestCursorNextOrder(t *testing.T) {
	c := NewCursor(lexStream(t, "a b"))

	want := []string{"a", "b"}
	for _, name := range want {
		tok, ok := c.Next()
		if !ok || !tok.IsIdent(name) {
			t.Fatalf("Next() = %v, %v, want ident %q", tok, ok, name)
		}
	}
	if _, ok := c.Next(); ok {
		t.Error("Next() past the end should report no token")
	}
	if _, ok := c.Peek(); ok {
		t.Error("Peek() past the end should report no token")
	}
}

func TestCursorAdvanceClamps(t *testing.T) {
	c := NewCursor(lexStream(t, "a b"))
	c.AdvanceN(10)
	if _, ok := c.Peek(); ok {
		t.Error("cursor should be exhausted after overshooting AdvanceN")
	}
}

func TestCursorCloneAndCommit(t *testing.T) {
	c := NewCursor(lexStream(t, "a b c"))

	// A copy advances independently of the original.
	attempt := c
	attempt.Advance2()
	if tok, _ := c.Peek(); !tok.IsIdent("a") {
		t.Fatalf("original cursor moved with the copy; at %v", tok)
	}
	if tok, _ := attempt.Peek(); !tok.IsIdent("c") {
		t.Fatalf("copy at %v, want c", tok)
	}

	// Commit adopts the copy's position.
	c.Commit(attempt)
	if tok, _ := c.Peek(); !tok.IsIdent("c") {
		t.Errorf("after Commit, cursor at %v, want c", tok)
	}
}

func TestCursorRest(t *testing.T) {
	stream := lexStream(t, "a b c")
	c := NewCursor(stream)
	c.Advance()
	if diff := cmp.Diff(stream[1:], c.Rest()); diff != "" {
		t.Errorf("Rest() mismatch:\n%s", diff)
	}
}
