package grammar

import (
	"strings"

	"github.com/ghettovoice/httpval/internal/util"
)

// Quote returns s as a quoted-string.
// Double quotes, backslashes and control characters other than HT are escaped
// with a quoted-pair, so any string can be represented.
func Quote(s string) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	AppendQuoted(sb, s)
	return sb.String()
}

// AppendQuoted writes s as a quoted-string to sb.
func AppendQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := range len(s) {
		c := s[i]
		if !IsQDText(c) {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
}

// Unquote returns the content of the quoted-string s with quoted-pairs resolved.
// If s is not a valid quoted-string, it is returned as is.
func Unquote(s string) string {
	if !IsQuoted(s) {
		return s
	}

	s = s[1 : len(s)-1]
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
