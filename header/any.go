package header

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/indigo-web/utils/strcomp"

	"github.com/ghettovoice/httpval/internal/errorutil"
	"github.com/ghettovoice/httpval/internal/grammar"
	"github.com/ghettovoice/httpval/internal/ioutil"
	"github.com/ghettovoice/httpval/internal/util"
)

// Any is a header without a typed codec.
//
// Values holds the raw field values, one per occurrence of the header, in the order received.
// The header value is their comma-joined combination, so several occurrences
// render and compare the same as a single occurrence carrying the joined text.
type Any struct {
	Name   string
	Values []string
}

func (hdr *Any) CanonicName() Name { return CanonicName(hdr.Name) }

func (hdr *Any) RenderTo(w io.Writer) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(string(hdr.CanonicName()) + ": ") //nolint:errcheck
	cw.Call(hdr.renderValueTo)
	return errtrace.Wrap2(cw.Result())
}

func (hdr *Any) renderValueTo(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for i, v := range hdr.Values {
		if i > 0 {
			cw.WriteString(", ") //nolint:errcheck
		}
		cw.WriteString(v) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

func (hdr *Any) Render() string {
	if hdr == nil {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hdr.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// RenderValue returns the combined field value without the name prefix.
func (hdr *Any) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return strings.Join(hdr.Values, ", ")
}

func (hdr *Any) String() string { return hdr.RenderValue() }

func (hdr *Any) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			hdr.RenderTo(f) //nolint:errcheck
			return
		}
		fmt.Fprint(f, hdr.String())
	case 'q':
		if f.Flag('+') {
			fmt.Fprint(f, strconv.Quote(hdr.Render()))
			return
		}
		fmt.Fprint(f, strconv.Quote(hdr.String()))
	default:
		type hideMethods Any
		type Any hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Any)(hdr))
	}
}

func (hdr *Any) Clone() Header {
	if hdr == nil {
		return nil
	}
	return &Any{Name: hdr.Name, Values: slices.Clone(hdr.Values)}
}

// Equal reports whether val is an Any with the same name, compared case-insensitively,
// and the same combined value.
func (hdr *Any) Equal(val any) bool {
	var other *Any
	switch v := val.(type) {
	case Any:
		other = &v
	case *Any:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return strcomp.EqualFold(hdr.Name, other.Name) && hdr.RenderValue() == other.RenderValue()
}

// IsValid reports whether the name is a token and no value holds a control character other than HT.
func (hdr *Any) IsValid() bool {
	return hdr != nil && grammar.IsToken(hdr.Name) && !slices.ContainsFunc(hdr.Values, hasCTL)
}

func hasCTL(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool { return r < 0x80 && r != '\t' && grammar.IsCTL(byte(r)) })
}

func (hdr *Any) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *Any) UnmarshalJSON(data []byte) error {
	gh, err := FromJSON(data)
	if err != nil {
		*hdr = Any{}
		if errors.Is(err, errNotHeaderJSON) {
			return nil
		}
		return errtrace.Wrap(err)
	}

	h, ok := gh.(*Any)
	if !ok {
		*hdr = Any{}
		return errtrace.Wrap(errorutil.Errorf("unexpected header: got %T, want %T", gh, hdr))
	}
	*hdr = *h
	return nil
}
