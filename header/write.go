package header

import (
	"io"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpval/internal/grammar"
	"github.com/ghettovoice/httpval/internal/ioutil"
	"github.com/ghettovoice/httpval/internal/util"
)

// WriteToken writes tok as is.
// Checking that tok is a valid token is left to the value's IsValid method.
func WriteToken(w io.Writer, tok string) (num int, err error) {
	return errtrace.Wrap2(io.WriteString(w, tok))
}

// WriteParamValue writes v as a token when possible, otherwise as a quoted-string.
func WriteParamValue(w io.Writer, v string) (num int, err error) {
	if grammar.IsToken(v) {
		return errtrace.Wrap2(io.WriteString(w, v))
	}
	return errtrace.Wrap2(io.WriteString(w, grammar.Quote(v)))
}

// WriteParams writes each parameter as ";name=value" in list order.
func WriteParams(w io.Writer, params Params) (num int, err error) {
	if len(params) == 0 {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	for _, p := range params {
		cw.WriteByte(';') //nolint:errcheck
		cw.WriteString(p.Name)
		cw.WriteByte('=') //nolint:errcheck
		WriteParamValue(cw, p.Value) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

// BuildValue returns the canonical string form of a token followed by its parameters.
func BuildValue(tok string, params Params) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(tok)
	WriteParams(sb, params) //nolint:errcheck
	return sb.String()
}

func renderHdrEntries[H ~[]E, E Value](w io.Writer, hdr H) (num int, err error) {
	return errtrace.Wrap2(ioutil.JoinTo(w, hdr, ", "))
}
