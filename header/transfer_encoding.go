package header

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/httpval/internal/errorutil"
	"github.com/ghettovoice/httpval/internal/ioutil"
	"github.com/ghettovoice/httpval/internal/util"
)

// TransferEncoding represents the Transfer-Encoding header (RFC 2616 Section 14.41).
//
//	Transfer-Encoding = "Transfer-Encoding" ":" 1#transfer-coding
//
// Codings are listed in the order they were applied.
type TransferEncoding []TransferCoding

func (TransferEncoding) CanonicName() Name { return "Transfer-Encoding" }

func (hdr TransferEncoding) RenderTo(w io.Writer) (num int, err error) {
	if hdr == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	cw.WriteString(string(hdr.CanonicName()) + ": ")
	cw.Call(hdr.renderValueTo)
	return errtrace.Wrap2(cw.Result())
}

func (hdr TransferEncoding) renderValueTo(w io.Writer) (num int, err error) {
	return errtrace.Wrap2(renderHdrEntries(w, hdr))
}

func (hdr TransferEncoding) Render() string {
	if hdr == nil {
		return ""
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hdr.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

func (hdr TransferEncoding) RenderValue() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	hdr.renderValueTo(sb) //nolint:errcheck
	return sb.String()
}

func (hdr TransferEncoding) String() string { return hdr.RenderValue() }

func (hdr TransferEncoding) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			hdr.RenderTo(f) //nolint:errcheck
			return
		}
		fmt.Fprint(f, hdr.String())
		return
	case 'q':
		if f.Flag('+') {
			fmt.Fprint(f, strconv.Quote(hdr.Render()))
			return
		}
		fmt.Fprint(f, strconv.Quote(hdr.String()))
		return
	default:
		type hideMethods TransferEncoding
		type TransferEncoding hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), TransferEncoding(hdr))
		return
	}
}

func (hdr TransferEncoding) Clone() Header { return cloneHdrEntries(hdr) }

func (hdr TransferEncoding) Equal(val any) bool {
	var other TransferEncoding
	switch v := val.(type) {
	case TransferEncoding:
		other = v
	case *TransferEncoding:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return slices.EqualFunc(hdr, other, func(tc1, tc2 TransferCoding) bool { return tc1.Equal(tc2) })
}

func (hdr TransferEncoding) IsValid() bool {
	return len(hdr) > 0 && !slices.ContainsFunc(hdr, func(tc TransferCoding) bool { return !tc.IsValid() })
}

// IsChunked reports whether the last applied coding is chunked,
// i.e. the message body is delimited by the chunked framing.
func (hdr TransferEncoding) IsChunked() bool {
	return len(hdr) > 0 && hdr[len(hdr)-1].IsChunked()
}

type codingState string

const (
	codingStateNone    codingState = "none"
	codingStateEncoded codingState = "encoded"
	codingStateChunked codingState = "chunked"
)

type codingTrigger string

const (
	codingTriggerExtension codingTrigger = "extension"
	codingTriggerChunked   codingTrigger = "chunked"
)

func newCodingStateMachine() *stateless.StateMachine {
	sm := stateless.NewStateMachine(codingStateNone)
	sm.Configure(codingStateNone).
		Permit(codingTriggerExtension, codingStateEncoded).
		Permit(codingTriggerChunked, codingStateChunked)
	sm.Configure(codingStateEncoded).
		PermitReentry(codingTriggerExtension).
		Permit(codingTriggerChunked, codingStateChunked)
	sm.Configure(codingStateChunked)
	return sm
}

// Validate checks the coding sequence against RFC 2616 Section 3.6:
// every coding is valid and "chunked", if present, is applied once and last.
func (hdr TransferEncoding) Validate() error {
	if len(hdr) == 0 {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidValue, "empty transfer-coding list"))
	}

	sm := newCodingStateMachine()
	for i, tc := range hdr {
		if !tc.IsValid() {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidValue, "invalid transfer-coding %d %q", i, tc))
		}

		trigger := codingTriggerExtension
		if tc.IsChunked() {
			trigger = codingTriggerChunked
		}
		if err := sm.Fire(trigger); err != nil {
			return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidValue,
				"transfer-coding %d %q applied after chunked", i, tc))
		}
	}
	return nil
}

func (hdr TransferEncoding) MarshalJSON() ([]byte, error) {
	return errtrace.Wrap2(ToJSON(hdr))
}

func (hdr *TransferEncoding) UnmarshalJSON(data []byte) error {
	gh, err := FromJSON(data)
	if err != nil {
		*hdr = nil
		if errors.Is(err, errNotHeaderJSON) {
			return nil
		}
		return errtrace.Wrap(err)
	}

	h, ok := gh.(TransferEncoding)
	if !ok {
		*hdr = nil
		return errtrace.Wrap(errorutil.Errorf("unexpected header: got %T, want %T", gh, *hdr))
	}

	*hdr = h
	return nil
}

func parseTransferEncoding(_ string, values []string) (Header, error) {
	codings, err := ParseList[TransferCoding](values...)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return TransferEncoding(codings), nil
}
