package grammar

import (
	"github.com/ghettovoice/abnf"

	"github.com/ghettovoice/httpval/internal/constraints"
)

func char(b byte) []byte { return []byte{b} }

var (
	// tchar = <any CHAR except CTLs or separators>
	tchar = abnf.Alt(
		"tchar",
		abnf.Literal(`"!"`, char('!')),
		abnf.Range("%x23-27", char(0x23), char(0x27)),
		abnf.Range("%x2A-2B", char(0x2A), char(0x2B)),
		abnf.Range("%x2D-2E", char(0x2D), char(0x2E)),
		abnf.Range("DIGIT", char('0'), char('9')),
		abnf.Range("%x41-5A", char('A'), char('Z')),
		abnf.Range("%x5E-7A", char(0x5E), char(0x7A)),
		abnf.Literal(`"|"`, char('|')),
		abnf.Literal(`"~"`, char('~')),
	)

	token = abnf.Repeat1Inf("token", tchar)

	dquote = abnf.Literal("DQUOTE", char('"'))

	// qdtext = <any TEXT except <"> and "\">
	qdtext = abnf.Alt(
		"qdtext",
		abnf.Literal("HT", char('\t')),
		abnf.Range("%x20-21", char(0x20), char(0x21)),
		abnf.Range("%x23-5B", char(0x23), char(0x5B)),
		abnf.Range("%x5D-7E", char(0x5D), char(0x7E)),
		abnf.Range("%x80-FF", char(0x80), char(0xFF)),
	)

	quotedPair = abnf.Concat(
		"quoted-pair",
		abnf.Literal(`"\"`, char('\\')),
		abnf.Range("CHAR", char(0x00), char(0x7F)),
	)

	quotedString = abnf.Concat(
		"quoted-string",
		dquote,
		abnf.Repeat0Inf("*( qdtext / quoted-pair )", abnf.Alt("qdtext / quoted-pair", qdtext, quotedPair)),
		dquote,
	)
)

func matchAll(opr abnf.Operator, s []byte) bool {
	ns := abnf.NewNodes()
	defer ns.Free()

	if err := opr(s, 0, ns); err != nil {
		return false
	}
	return ns.Best().Len() == len(s)
}

// IsToken reports whether s is a non-empty RFC 2616 token.
func IsToken[T constraints.Byteseq](s T) bool {
	if len(s) == 0 {
		return false
	}
	return matchAll(token, []byte(s))
}

// IsQuoted reports whether s is a complete quoted-string including the surrounding quotes.
func IsQuoted[T constraints.Byteseq](s T) bool {
	if len(s) < 2 {
		return false
	}
	return matchAll(quotedString, []byte(s))
}
