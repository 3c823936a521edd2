package header

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"
	"github.com/indigo-web/utils/strcomp"

	"github.com/ghettovoice/httpval/internal/grammar"
	"github.com/ghettovoice/httpval/internal/ioutil"
)

// CodingKind distinguishes the variants of [TransferCoding].
type CodingKind uint8

const (
	// CodingExtension is a named transfer-extension with optional parameters.
	CodingExtension CodingKind = iota
	// CodingChunked is the "chunked" transfer-coding.
	CodingChunked
)

func (k CodingKind) String() string {
	switch k {
	case CodingExtension:
		return "extension"
	case CodingChunked:
		return "chunked"
	default:
		return "CodingKind(" + strconv.Itoa(int(k)) + ")"
	}
}

const chunkedName = "chunked"

// TransferCoding represents a transfer-coding (RFC 2616 Section 3.6).
//
//	transfer-coding    = "chunked" | transfer-extension
//	transfer-extension = token *( ";" parameter )
//
// The "chunked" keyword is matched case-insensitively and always rendered in lower case.
// Extension names keep the case they were read with.
// Name and Params are only meaningful for [CodingExtension].
type TransferCoding struct {
	Kind   CodingKind
	Name   string
	Params Params
}

// Chunked returns the "chunked" transfer-coding.
func Chunked() TransferCoding { return TransferCoding{Kind: CodingChunked} }

// Extension returns a transfer-extension with the given name and parameters.
// The name "chunked" in any letter case is the keyword, not an extension:
// it yields [Chunked] and params are discarded, as chunked takes none.
func Extension(name string, params ...Param) TransferCoding {
	if strcomp.EqualFold(name, chunkedName) {
		return Chunked()
	}
	return TransferCoding{Kind: CodingExtension, Name: name, Params: params}
}

func (TransferCoding) CommaList() {}

func (tc *TransferCoding) DecodeFrom(r *Reader) error {
	tok, err := r.ReadToken()
	if err != nil {
		return errtrace.Wrap(err)
	}
	if strcomp.EqualFold(tok, chunkedName) {
		*tc = Chunked()
		return nil
	}

	params, err := r.ReadParams()
	if err != nil {
		return errtrace.Wrap(err)
	}
	*tc = TransferCoding{Kind: CodingExtension, Name: tok, Params: params}
	return nil
}

func (tc TransferCoding) RenderTo(w io.Writer) (num int, err error) {
	if tc.Kind == CodingChunked {
		return errtrace.Wrap2(io.WriteString(w, chunkedName))
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	WriteToken(cw, tc.Name) //nolint:errcheck
	cw.Call(tc.Params.RenderTo)
	return errtrace.Wrap2(cw.Result())
}

func (tc TransferCoding) RenderValue() string {
	if tc.Kind == CodingChunked {
		return chunkedName
	}
	return BuildValue(tc.Name, tc.Params)
}

func (tc TransferCoding) String() string { return tc.RenderValue() }

func (tc TransferCoding) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, tc.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(tc.String()))
		return
	default:
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, tc.String())
			return
		}

		type hideMethods TransferCoding
		type TransferCoding hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), TransferCoding(tc))
		return
	}
}

// IsChunked reports whether tc is the "chunked" transfer-coding.
func (tc TransferCoding) IsChunked() bool { return tc.Kind == CodingChunked }

// Equal compares transfer-codings structurally, extension names and parameters case-sensitively.
func (tc TransferCoding) Equal(val any) bool {
	var other TransferCoding
	switch v := val.(type) {
	case TransferCoding:
		other = v
	case *TransferCoding:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	if tc.Kind != other.Kind {
		return false
	}
	if tc.Kind == CodingChunked {
		return true
	}
	return tc.Name == other.Name && tc.Params.Equal(other.Params)
}

func (tc TransferCoding) IsValid() bool {
	switch tc.Kind {
	case CodingChunked:
		return tc.Name == "" && len(tc.Params) == 0
	case CodingExtension:
		return grammar.IsToken(tc.Name) &&
			!strcomp.EqualFold(tc.Name, chunkedName) &&
			tc.Params.IsValid()
	default:
		return false
	}
}

func (tc TransferCoding) IsZero() bool {
	return tc.Kind == CodingExtension && tc.Name == "" && len(tc.Params) == 0
}

func (tc TransferCoding) Clone() TransferCoding {
	tc.Params = tc.Params.Clone()
	return tc
}

func (tc TransferCoding) MarshalText() ([]byte, error) {
	return []byte(tc.RenderValue()), nil
}

func (tc *TransferCoding) UnmarshalText(data []byte) error {
	v, err := ParseValue[TransferCoding](data)
	if err != nil {
		*tc = TransferCoding{}
		if errors.Is(err, grammar.ErrEmptyInput) {
			return nil
		}
		return errtrace.Wrap(err)
	}

	*tc = v
	return nil
}
