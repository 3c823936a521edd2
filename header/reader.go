package header

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/httpval/internal/constraints"
	"github.com/ghettovoice/httpval/internal/grammar"
)

// Reader is a cursor over the bytes of a single header value.
// It provides the primitives of the RFC 2616 header value grammar: tokens,
// quoted-strings, parameter lists and linear white space.
//
// A Reader is created for one parse attempt and must not be reused.
// Each primitive either consumes its input completely or fails.
// The first failure is sticky: every following read returns the same error,
// so callers treat it as terminal for the header value.
type Reader struct {
	src []byte
	pos int
	err error
}

// NewReader returns a Reader positioned at the start of s.
// A string is copied. A byte slice is read in place and must not be modified
// during the parse.
func NewReader[T constraints.Byteseq](s T) *Reader {
	return &Reader{src: []byte(s)}
}

// Pos returns the offset of the next unread byte.
func (r *Reader) Pos() int { return r.pos }

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.src) - r.pos }

// EOF reports whether the whole value was consumed.
func (r *Reader) EOF() bool { return r.pos >= len(r.src) }

// Err returns the first error the reader failed with.
func (r *Reader) Err() error { return r.err }

// Peek returns the next byte without consuming it.
func (r *Reader) Peek() (byte, bool) {
	if r.err != nil || r.EOF() {
		return 0, false
	}
	return r.src[r.pos], true
}

// SkipLWS consumes linear white space and returns the number of skipped bytes.
func (r *Reader) SkipLWS() int {
	if r.err != nil {
		return 0
	}
	start := r.pos
	for r.pos < len(r.src) && grammar.IsLWS(r.src[r.pos]) {
		r.pos++
	}
	return r.pos - start
}

// Expect consumes the byte c or fails.
func (r *Reader) Expect(c byte) error {
	if r.err != nil {
		return errtrace.Wrap(r.err)
	}
	if r.EOF() {
		return r.fail(grammar.NewEOFError(r.pos, "'"+string(c)+"'"))
	}
	if r.src[r.pos] != c {
		return r.fail(grammar.NewSyntaxError(r.pos, "want %q, got %q", c, r.src[r.pos]))
	}
	r.pos++
	return nil
}

// ReadToken reads a token. Surrounding white space is not consumed.
func (r *Reader) ReadToken() (string, error) {
	if r.err != nil {
		return "", errtrace.Wrap(r.err)
	}

	start := r.pos
	for r.pos < len(r.src) && grammar.IsTokenChar(r.src[r.pos]) {
		r.pos++
	}
	if r.pos == start {
		if r.EOF() {
			return "", r.fail(grammar.NewEOFError(r.pos, "token"))
		}
		return "", r.fail(grammar.NewSyntaxError(r.pos, "want token, got %q", r.src[r.pos]))
	}
	return string(r.src[start:r.pos]), nil
}

// ReadQuotedString reads a quoted-string and returns its content with quoted-pairs resolved.
func (r *Reader) ReadQuotedString() (string, error) {
	if err := r.Expect('"'); err != nil {
		return "", errtrace.Wrap(err)
	}

	var buf []byte
	for i := r.pos; i < len(r.src); i++ {
		switch c := r.src[i]; {
		case c == '"':
			r.pos = i + 1
			return string(buf), nil
		case c == '\\':
			i++
			if i == len(r.src) {
				r.pos = i
				return "", r.fail(grammar.NewEOFError(i, "quoted CHAR"))
			}
			if !grammar.IsChar(r.src[i]) {
				return "", r.fail(grammar.NewSyntaxError(i, "want quoted CHAR, got %q", r.src[i]))
			}
			buf = append(buf, r.src[i])
		case grammar.IsQDText(c):
			buf = append(buf, c)
		default:
			return "", r.fail(grammar.NewSyntaxError(i, "unexpected %q in quoted-string", c))
		}
	}
	r.pos = len(r.src)
	return "", r.fail(grammar.NewEOFError(r.pos, "closing '\"'"))
}

// ReadWord reads a token or a quoted-string, whichever starts at the current position.
func (r *Reader) ReadWord() (string, error) {
	if c, ok := r.Peek(); ok && c == '"' {
		return errtrace.Wrap2(r.ReadQuotedString())
	}
	return errtrace.Wrap2(r.ReadToken())
}

// ReadParams reads a parameter list:
//
//	*( ";" attribute "=" ( token | quoted-string ) )
//
// with optional white space around the separators.
// The parameters are returned in the order they appear, duplicates included.
// If no ";" follows, the white space peeked over is left unconsumed.
// A ";" that is not followed by a complete attribute=value pair fails the whole list.
func (r *Reader) ReadParams() (Params, error) {
	if r.err != nil {
		return nil, errtrace.Wrap(r.err)
	}

	var params Params
	for {
		mark := r.pos
		r.SkipLWS()
		if c, ok := r.Peek(); !ok || c != ';' {
			r.pos = mark
			return params, nil
		}
		r.pos++

		r.SkipLWS()
		name, err := r.ReadToken()
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		r.SkipLWS()
		if err := r.Expect('='); err != nil {
			return nil, errtrace.Wrap(err)
		}
		r.SkipLWS()
		val, err := r.ReadWord()
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		params = append(params, Param{Name: name, Value: val})
	}
}

func (r *Reader) fail(err *grammar.SyntaxError) error {
	r.err = err
	return errtrace.Wrap(err)
}
