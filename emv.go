package iso8583

import (
	"fmt"

	"github.com/moov-io/bertlv"
)

// ICCTag is one decoded BER-TLV element from an EMV/ICC data field.
type ICCTag struct {
	Tag   string
	Value []byte
}

// ICCData is the decoded contents of an EMV/ICC field (typically field 55):
// an ordered list of BER-TLV tag/value pairs. It is the object a
// CustomFieldCodec for field 55 decodes into, per the custom-codec
// enrichment contract.
type ICCData struct {
	Tags []ICCTag
}

// Get returns the value of the first occurrence of tag, if present.
func (d ICCData) Get(tag string) ([]byte, bool) {
	for _, t := range d.Tags {
		if t.Tag == tag {
			return t.Value, true
		}
	}
	return nil, false
}

// iccFieldCodec decodes/encodes an ICC data field as BER-TLV using
// github.com/moov-io/bertlv, grounded on gregLibert-smart-card's pkg/tlv
// wrapper around the same library.
type iccFieldCodec struct{}

// NewICCFieldCodec returns a CustomFieldCodec suitable for field 55 (or any
// other BER-TLV-encoded field): Decode turns the raw payload into ICCData,
// falling back to the raw string on any malformed TLV per the best-effort
// enrichment contract; Encode renders ICCData back to its BER-TLV bytes.
func NewICCFieldCodec() CustomFieldCodec {
	return iccFieldCodec{}
}

func (iccFieldCodec) Decode(raw string) (any, bool) {
	packets, err := bertlv.Decode([]byte(raw))
	if err != nil {
		return nil, false
	}
	return ICCData{Tags: flattenTLVs(packets)}, true
}

func (iccFieldCodec) Encode(v any) (string, error) {
	data, ok := v.(ICCData)
	if !ok {
		return "", fmt.Errorf("ICC codec requires an ICCData value, got %T", v)
	}
	packets := make([]bertlv.TLV, 0, len(data.Tags))
	for _, t := range data.Tags {
		packets = append(packets, bertlv.TLV{Tag: t.Tag, Value: t.Value})
	}
	encoded, err := bertlv.Encode(packets)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func flattenTLVs(packets []bertlv.TLV) []ICCTag {
	out := make([]ICCTag, 0, len(packets))
	for _, p := range packets {
		if len(p.TLVs) > 0 {
			out = append(out, flattenTLVs(p.TLVs)...)
			continue
		}
		out = append(out, ICCTag{Tag: p.Tag, Value: p.Value})
	}
	return out
}
