// Package grammar implements the RFC 2616 basic rules shared by header value codecs:
// octet classes, token and quoted-string validation, quoting and grammar errors.
package grammar

//go:generate go tool errtrace -w .

import "fmt"

// Error is a grammar error sentinel.
type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrEmptyInput     Error = "empty input"
	ErrMalformedInput Error = "malformed input"
	ErrUnexpectedEnd  Error = "unexpected end of input"
)

// SyntaxError describes a grammar violation at a byte offset of the header value.
// It matches [ErrMalformedInput] with errors.Is, and also [ErrUnexpectedEnd]
// when the value ended where more input was required.
type SyntaxError struct {
	Pos int
	Msg string
	EOF bool
}

// NewSyntaxError returns a *SyntaxError at pos with a formatted message.
func NewSyntaxError(pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// NewEOFError returns a *SyntaxError reporting the premature end of input at pos.
func NewEOFError(pos int, want string) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: "want " + want, EOF: true}
}

func (e *SyntaxError) Error() string {
	if e.EOF {
		return fmt.Sprintf("%s at offset %d: %s", ErrUnexpectedEnd, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s at offset %d: %s", ErrMalformedInput, e.Pos, e.Msg)
}

func (e *SyntaxError) Unwrap() []error {
	if e.EOF {
		return []error{ErrMalformedInput, ErrUnexpectedEnd}
	}
	return []error{ErrMalformedInput}
}

func (*SyntaxError) Grammar() bool { return true }
