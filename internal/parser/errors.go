package parser

import (
	"fmt"

	"github.com/abdullahibnnadjo/maud/internal/token"
)

// ErrorKind classifies a parsing failure
type ErrorKind int

const (
	// ErrUnexpectedEOF is raised when a construct that requires a
	// terminating token reaches end of input first.
	ErrUnexpectedEOF ErrorKind = iota
	// ErrUnexpectedToken is raised when a token is present but
	// grammatically wrong.
	ErrUnexpectedToken
	// ErrUnknownKeyword is raised for an unrecognized `@word`.
	ErrUnknownKeyword
	// ErrMisplacedConstruct is raised when a construct appears in a
	// position where it is not allowed.
	ErrMisplacedConstruct
	// ErrMalformedBuffer is raised when the leading output-buffer argument
	// has an unrecognized shape.
	ErrMalformedBuffer
)

// errorKindNames provides string representations for error kinds
var errorKindNames = map[ErrorKind]string{
	ErrUnexpectedEOF:      "UNEXPECTED_EOF",
	ErrUnexpectedToken:    "UNEXPECTED_TOKEN",
	ErrUnknownKeyword:     "UNKNOWN_KEYWORD",
	ErrMisplacedConstruct: "MISPLACED_CONSTRUCT",
	ErrMalformedBuffer:    "MALFORMED_BUFFER",
}

// String returns a string representation of the error kind
func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(k))
}

// ParseError represents a parsing error. Parsing is all-or-nothing: the
// first error encountered in left-to-right order is returned and no syntax
// tree is produced.
type ParseError struct {
	Kind    ErrorKind
	Span    token.Span // zero when the error has no usable position
	Message string
}

func (e *ParseError) Error() string {
	if e.Span.IsZero() {
		return "parse error: " + e.Message
	}
	return fmt.Sprintf("parse error at %s: %s", e.Span.Start, e.Message)
}

func errEOF(message string) error {
	return &ParseError{Kind: ErrUnexpectedEOF, Message: message}
}

func errAt(kind ErrorKind, span token.Span, message string) error {
	return &ParseError{Kind: kind, Span: span, Message: message}
}
