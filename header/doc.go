// Package header converts HTTP header field values between their wire form and typed values
// following the RFC 2616 header value grammar.
//
// # Overview
//
// The package is built around a small grammar engine shared by all typed values:
//
//   - [Reader] is a cursor over one header value with the grammar primitives
//     (tokens, quoted-strings, parameter lists, white space).
//   - [Value] and [Decoder] form the conversion contract every typed value implements:
//     DecodeFrom reads the value from a [Reader], RenderTo writes it to an [io.Writer]
//     and RenderValue returns the same bytes as a string.
//   - [CommaListValue] marks values whose header grammar is a comma-separated list.
//     [SplitList] and [ParseList] split and merge the occurrences of such headers.
//   - [WriteToken], [WriteParams], [WriteParamValue] and [BuildValue] are the shared
//     serialization helpers.
//
// [TransferCoding] and [TransferEncoding] are the concrete codecs of the Transfer-Encoding header.
//
// # Parsing
//
// Use [ParseValue] to parse a single value and [ParseList] to parse a comma-list header:
//
//	tc, err := header.ParseValue[header.TransferCoding]("gzip;q=1.0")
//	codings, err := header.ParseList[header.TransferCoding]("gzip, deflate", "chunked")
//
// Parsing is all-or-nothing: on any grammar violation no value is produced and the returned
// error matches [ErrMalformedInput] (or [ErrEmptyInput] for blank input).
// The underlying [*SyntaxError] carries the byte offset of the violation.
//
// Use [Parse] or [ParseValues] to get a typed [Header] by its name:
//
//	hdr, err := header.Parse("Transfer-Encoding: gzip, chunked")
//
// Headers without a typed codec are returned as [*Any]. Applications can plug in
// codecs of their own headers with [RegisterParser].
//
// # Rendering
//
// Values and headers can be rendered to strings or written to an [io.Writer]:
//
//	val := tc.RenderValue()       // "gzip;q=1.0"
//	str := hdr.Render()           // "Transfer-Encoding: gzip, chunked"
//	num, err := hdr.RenderTo(w)   // writes to io.Writer
//
// Parameter values are written as tokens when possible and as quoted-strings otherwise.
// Write errors are returned as they come from the writer.
//
// # Writing a codec
//
// A token-with-parameters value needs little more than:
//
//	type Coding struct {
//		Name   string
//		Params header.Params
//	}
//
//	func (c *Coding) DecodeFrom(r *header.Reader) error {
//		name, err := r.ReadToken()
//		if err != nil {
//			return err
//		}
//		params, err := r.ReadParams()
//		if err != nil {
//			return err
//		}
//		*c = Coding{name, params}
//		return nil
//	}
//
//	func (c Coding) RenderTo(w io.Writer) (int, error) { ... }
//	func (c Coding) RenderValue() string { return header.BuildValue(c.Name, c.Params) }
//	func (Coding) CommaList() {}
//
// # JSON Serialization
//
// Headers can be serialized to and from JSON using [ToJSON] and [FromJSON]:
//
//	{"name":"<CanonicName>","value":"<RenderValue>"}
//
// # References
//
//   - RFC 2616 Section 2.2 - Basic Rules
//   - RFC 2616 Section 3.6 - Transfer Codings
//   - RFC 2616 Section 14.41 - Transfer-Encoding
package header
