package header

//go:generate go tool errtrace -w .

import (
	"bytes"
	"fmt"
	"net/textproto"
	"slices"
	"sync"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpval/internal/constraints"
	"github.com/ghettovoice/httpval/internal/errorutil"
	"github.com/ghettovoice/httpval/internal/grammar"
	"github.com/ghettovoice/httpval/internal/types"
	"github.com/ghettovoice/httpval/internal/util"
)

// Grammar errors returned by the parsing functions.
const (
	ErrEmptyInput     = grammar.ErrEmptyInput
	ErrMalformedInput = grammar.ErrMalformedInput
	ErrUnexpectedEnd  = grammar.ErrUnexpectedEnd
)

// ErrInvalidArgument is returned when a function is called with an invalid argument.
const ErrInvalidArgument = errorutil.ErrInvalidArgument

// SyntaxError describes a grammar violation at a byte offset of the header value.
type SyntaxError = grammar.SyntaxError

// ErrInvalidValue is returned when a header value is syntactically correct but violates
// the semantic rules of the header.
const ErrInvalidValue errorutil.Error = "invalid header value"

// Header represents a typed HTTP header: a name and its parsed value.
type Header interface {
	types.Renderer
	types.Cloneable[Header]
	types.ValidFlag
	types.Equalable
	CanonicName() Name
	RenderValue() string
}

// Name represents an HTTP header name.
type Name string

// ToCanonic converts the Name to its canonical form.
func (n Name) ToCanonic() Name { return CanonicName(n) }

// IsValid checks whether the Name is syntactically valid.
func (n Name) IsValid() bool { return grammar.IsToken(n) }

// Equal compares this Name with another case-insensitively.
func (n Name) Equal(val any) bool {
	var other Name
	switch v := val.(type) {
	case Name:
		other = v
	case *Name:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return CanonicName(n) == CanonicName(other)
}

// CanonicName converts name to the canonical form: the first letter and any letter
// following a hyphen in upper case, the rest in lower case.
// For example, the canonical name for "transfer-encoding" is "Transfer-Encoding".
func CanonicName[T ~string](name T) Name {
	return Name(textproto.CanonicalMIMEHeaderKey(string(util.TrimSP(name))))
}

func cloneHdrEntries[H ~[]E, E interface{ Clone() E }](hdr H) H {
	var hdr2 H
	if hdr == nil {
		return hdr2
	}
	hdr2 = make(H, len(hdr))
	for i := range hdr {
		hdr2[i] = hdr[i].Clone()
	}
	return hdr2
}

// Parser is a function type for parsing a custom header from all of its field values.
type Parser func(name string, values []string) (Header, error)

var customParsers sync.Map // map[string]Parser

// RegisterParser registers a custom header parser.
// Parsers of the headers supported by this package can't be overridden.
func RegisterParser(name string, parser Parser) {
	customParsers.Store(util.LCase(name), parser)
}

// UnregisterParser unregisters a custom header parser.
func UnregisterParser(name string) {
	customParsers.Delete(util.LCase(name))
}

// ParseValues parses the field values of the header name and returns the typed header.
// Values of comma-list headers are merged into one header in the given order.
// Headers without a registered parser are returned as [*Any].
//
// Example usage:
//
//	hdr, err := header.ParseValues("Transfer-Encoding", "gzip", "chunked")
func ParseValues(name string, values ...string) (Header, error) {
	if !grammar.IsToken(name) {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("invalid header name %q", name))
	}

	prs := builtinParser(name)
	if prs == nil {
		if p, ok := customParsers.Load(util.LCase(name)); ok && p != nil {
			prs = p.(Parser) //nolint:forcetypeassert
		}
	}
	if prs == nil {
		return &Any{Name: name, Values: slices.Clone(values)}, nil
	}

	hdr, err := prs(name, values)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("parse %s header: %w", CanonicName(name), err))
	}
	return hdr, nil
}

func builtinParser(name string) Parser {
	switch CanonicName(name) {
	case "Transfer-Encoding":
		return parseTransferEncoding
	default:
		return nil
	}
}

// Parse parses a header field line "Name: value" and returns the typed header.
// The line must not contain the terminating CRLF.
//
// Example usage:
//
//	hdr, err := header.Parse("Transfer-Encoding: gzip, chunked")
func Parse[T constraints.Byteseq](line T) (Header, error) {
	b := []byte(line)
	if len(b) == 0 {
		return nil, errtrace.Wrap(grammar.ErrEmptyInput)
	}

	i := bytes.IndexByte(b, ':')
	if i < 0 {
		return nil, errtrace.Wrap(grammar.NewSyntaxError(len(b), "missing ':' after header name"))
	}
	name := string(b[:i])
	if !grammar.IsToken(name) {
		return nil, errtrace.Wrap(grammar.NewSyntaxError(0, "invalid header name %q", name))
	}
	return errtrace.Wrap2(ParseValues(name, string(trimLWS(b[i+1:]))))
}
