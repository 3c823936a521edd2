package header

import (
	"fmt"
	"iter"

	"braces.dev/errtrace"

	"github.com/ghettovoice/httpval/internal/constraints"
	"github.com/ghettovoice/httpval/internal/grammar"
)

// CommaListValue is implemented by values whose header grammar is a comma-separated list
// (RFC 2616 Section 2.1, "#rule"). All occurrences of such a header, and all items of
// each occurrence, form one ordered sequence of values.
// CommaList is a marker and does nothing.
type CommaListValue interface {
	Value
	CommaList()
}

// CommaListDecoder is a [Decoder] of a [CommaListValue].
type CommaListDecoder[V any] interface {
	Decoder[V]
	CommaList()
}

// SplitList returns an iterator over the items of a comma-separated header value.
// Only commas outside of quoted-strings separate items; quoted-pairs inside quoted-strings
// are honored. Items are trimmed of white space, empty items are skipped.
func SplitList[T constraints.Byteseq](s T) iter.Seq[T] {
	return func(yield func(T) bool) {
		var (
			start  int
			quoted bool
		)
		for i := 0; i < len(s); i++ {
			switch c := s[i]; {
			case quoted && c == '\\':
				i++
			case c == '"':
				quoted = !quoted
			case !quoted && c == ',':
				if item := trimLWS(s[start:i]); len(item) > 0 {
					if !yield(item) {
						return
					}
				}
				start = i + 1
			}
		}
		if start < len(s) {
			if item := trimLWS(s[start:]); len(item) > 0 {
				yield(item)
			}
		}
	}
}

// ParseList parses all occurrences of a comma-list header into one ordered sequence of values.
// Each item is parsed independently with [ParseValue]; the first malformed item fails the whole list.
// A list without items fails with [ErrEmptyInput].
//
// Example usage:
//
//	codings, err := header.ParseList[header.TransferCoding]("gzip", "chunked")
func ParseList[V any, P CommaListDecoder[V], T constraints.Byteseq](values ...T) ([]V, error) {
	var list []V
	for _, val := range values {
		for item := range SplitList(val) {
			v, err := ParseValue[V, P](item)
			if err != nil {
				return nil, errtrace.Wrap(fmt.Errorf("list item %d %q: %w", len(list), item, err))
			}
			list = append(list, v)
		}
	}
	if len(list) == 0 {
		return nil, errtrace.Wrap(grammar.ErrEmptyInput)
	}
	return list, nil
}

func trimLWS[T constraints.Byteseq](s T) T {
	for len(s) > 0 && grammar.IsLWS(s[0]) {
		s = s[1:]
	}
	for len(s) > 0 && grammar.IsLWS(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s
}
