package parser

import "github.com/abdullahibnnadjo/maud/internal/token"

// BufferKind represents how the output buffer of an invocation is obtained
type BufferKind int

const (
	// BufferAllocated means no buffer argument was supplied and the
	// generated code allocates its own buffer.
	BufferAllocated BufferKind = iota
	// BufferAlreadyBorrowed means the argument names a buffer that is
	// already a mutable borrow.
	BufferAlreadyBorrowed
	// BufferNeedBorrow means the generated code must take the borrow
	// itself (`&mut name`).
	BufferNeedBorrow
)

// OutputBuffer identifies the output target stripped from the front of an
// invocation
type OutputBuffer struct {
	Kind  BufferKind
	Ident token.Token // zero for BufferAllocated
}

// AllocatedBuffer returns the default output target used when the
// invocation carries no buffer argument
func AllocatedBuffer() OutputBuffer {
	return OutputBuffer{Kind: BufferAllocated}
}

// ParseBufferArgument strips the leading output-buffer argument from the
// start of an invocation, before any markup parsing begins. Exactly two
// shapes are recognized: `name ,` and `& mut name ,`. It returns the
// matched buffer and the remaining stream with the prefix removed. Both
// shapes are fixed length, so this uses direct lookahead rather than the
// cursor's speculative backtracking.
func ParseBufferArgument(input token.Stream) (OutputBuffer, token.Stream, error) {
	get := func(n int) token.Token {
		if n < len(input) {
			return input[n]
		}
		return token.Token{}
	}
	switch {
	// html_to! { my_buffer, ... }
	case get(0).Kind == token.KindIdent && get(1).IsOp(','):
		return OutputBuffer{Kind: BufferAlreadyBorrowed, Ident: get(0)}, input[2:], nil
	// html_to! { &mut my_buffer, ... }
	case get(0).IsOp('&') && get(1).IsIdent("mut") &&
		get(2).Kind == token.KindIdent && get(3).IsOp(','):
		return OutputBuffer{Kind: BufferNeedBorrow, Ident: get(2)}, input[4:], nil
	default:
		return OutputBuffer{}, nil, errAt(ErrMalformedBuffer, get(0).Span,
			"error trying to parse the buffer name")
	}
}
