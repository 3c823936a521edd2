package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpval/internal/constraints"
	"github.com/ghettovoice/httpval/internal/grammar"
)

// Value is a typed header value that can be written back to its wire form.
// RenderTo and RenderValue must produce the same bytes.
type Value interface {
	// RenderTo writes the wire form of the value to w.
	// Errors returned by w are passed through.
	RenderTo(w io.Writer) (num int, err error)
	// RenderValue returns the wire form of the value as a string.
	RenderValue() string
}

// Decoder is satisfied by pointers to typed header values that can be read from a [Reader].
// DecodeFrom assigns the receiver only when the whole value was read successfully.
type Decoder[V any] interface {
	*V
	Value
	DecodeFrom(r *Reader) error
}

// ParseValue parses s as a single value of type V.
// Leading and trailing white space is ignored, the rest of s must be consumed by the value's grammar.
// On failure the zero V is returned along with a grammar error.
//
// Example usage:
//
//	tc, err := header.ParseValue[header.TransferCoding]("gzip;q=1.0")
func ParseValue[V any, P Decoder[V], T constraints.Byteseq](s T) (V, error) {
	var v V

	r := NewReader(s)
	r.SkipLWS()
	if r.EOF() {
		return v, errtrace.Wrap(grammar.ErrEmptyInput)
	}
	if err := P(&v).DecodeFrom(r); err != nil {
		var zero V
		return zero, errtrace.Wrap(err)
	}
	r.SkipLWS()
	if !r.EOF() {
		var zero V
		return zero, errtrace.Wrap(grammar.NewSyntaxError(r.Pos(), "unexpected %q after value", r.src[r.pos]))
	}
	return v, nil
}
