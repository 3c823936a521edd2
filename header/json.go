package header

import (
	"fmt"

	"braces.dev/errtrace"
	jsoniter "github.com/json-iterator/go"

	"github.com/ghettovoice/httpval/internal/constraints"
	"github.com/ghettovoice/httpval/internal/errorutil"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type headerData struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ToJSON encodes hdr as {"name":"<CanonicName>","value":"<RenderValue>"}.
// A nil header is encoded as null.
func ToJSON(hdr Header) ([]byte, error) {
	var hd *headerData
	if hdr != nil {
		hd = &headerData{
			Name:  string(hdr.CanonicName()),
			Value: hdr.RenderValue(),
		}
	}
	return errtrace.Wrap2(json.Marshal(hd))
}

var errNotHeaderJSON errorutil.Error = "not a header JSON"

// FromJSON decodes a header encoded with [ToJSON] and parses its value.
func FromJSON[T constraints.Byteseq](data T) (Header, error) {
	var hd *headerData
	if err := json.Unmarshal([]byte(data), &hd); err != nil {
		return nil, errtrace.Wrap(err)
	}
	if hd == nil {
		return nil, errtrace.Wrap(errNotHeaderJSON)
	}

	hdr, err := ParseValues(hd.Name, hd.Value)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("parse header %q: %w", hd.Name, err))
	}
	return hdr, nil
}
