package header

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"braces.dev/errtrace"
	"github.com/indigo-web/utils/strcomp"

	"github.com/ghettovoice/httpval/internal/grammar"
	"github.com/ghettovoice/httpval/internal/util"
)

// Param is a single attribute=value parameter of a header value.
// Value holds the unquoted content; quoting is decided when the parameter is rendered.
type Param struct {
	Name  string
	Value string
}

// Params is an ordered list of parameters.
// Order and duplicate names are preserved as read.
type Params []Param

// Get returns the value of the first parameter with the given name.
// Attribute names are matched case-insensitively.
func (params Params) Get(name string) (string, bool) {
	for _, p := range params {
		if strcomp.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

// Has checks whether a parameter with the given name is in the list.
func (params Params) Has(name string) bool {
	_, ok := params.Get(name)
	return ok
}

// Append adds a parameter to the end of the list.
func (params Params) Append(name, value string) Params {
	return append(params, Param{Name: name, Value: value})
}

func (params Params) Clone() Params { return slices.Clone(params) }

// Equal compares parameter lists structurally: same names and values in the same order.
func (params Params) Equal(val any) bool {
	var other Params
	switch v := val.(type) {
	case Params:
		other = v
	case *Params:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.Equal(params, other)
}

// IsValid reports whether every parameter name is a token.
// Any value can be rendered as a token or a quoted-string.
func (params Params) IsValid() bool {
	return !slices.ContainsFunc(params, func(p Param) bool { return !grammar.IsToken(p.Name) })
}

func (params Params) RenderTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(WriteParams(w, params))
}

func (params Params) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	params.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

func (params Params) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, params.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(params.String()))
		return
	default:
		type hideMethods Params
		type Params hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), Params(params))
		return
	}
}
