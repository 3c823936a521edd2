package grammar

// octetType describes the character classes of RFC 2616 Section 2.2.
//
//	CHAR       = <any US-ASCII character (octets 0 - 127)>
//	CTL        = <any US-ASCII control character (octets 0 - 31) and DEL (127)>
//	LWS        = [CRLF] 1*( SP | HT )
//	TEXT       = <any OCTET except CTLs, but including LWS>
//	token      = 1*<any CHAR except CTLs or separators>
//	separators = "(" | ")" | "<" | ">" | "@"
//	           | "," | ";" | ":" | "\" | <">
//	           | "/" | "[" | "]" | "?" | "="
//	           | "{" | "}" | SP | HT
type octetType byte

const (
	octetChar octetType = 1 << iota
	octetControl
	octetSpace
	octetSeparator
	octetToken
	octetQDText
)

var octetTypes [256]octetType

func init() {
	for c := range 256 {
		var t octetType
		if c <= 127 {
			t |= octetChar
		}
		if c <= 31 || c == 127 {
			t |= octetControl
		}
		switch c {
		case '(', ')', '<', '>', '@', ',', ';', ':', '\\', '"', '/', '[', ']', '?', '=', '{', '}', ' ', '\t':
			t |= octetSeparator
		}
		if c == ' ' || c == '\t' {
			t |= octetSpace
		}
		if t&octetChar != 0 && t&(octetControl|octetSeparator) == 0 {
			t |= octetToken
		}
		if (t&octetControl == 0 || c == '\t') && c != '"' && c != '\\' {
			t |= octetQDText
		}
		octetTypes[c] = t
	}
}

// IsTokenChar reports whether c may appear in a token.
func IsTokenChar(c byte) bool { return octetTypes[c]&octetToken != 0 }

// IsSeparator reports whether c is one of the RFC 2616 separators.
func IsSeparator(c byte) bool { return octetTypes[c]&octetSeparator != 0 }

// IsCTL reports whether c is a control character.
func IsCTL(c byte) bool { return octetTypes[c]&octetControl != 0 }

// IsLWS reports whether c is linear white space (SP or HT).
// Folding CRLF is expected to be removed by the caller.
func IsLWS(c byte) bool { return octetTypes[c]&octetSpace != 0 }

// IsQDText reports whether c may appear unescaped inside a quoted-string.
func IsQDText(c byte) bool { return octetTypes[c]&octetQDText != 0 }

// IsChar reports whether c is a US-ASCII character.
func IsChar(c byte) bool { return octetTypes[c]&octetChar != 0 }
