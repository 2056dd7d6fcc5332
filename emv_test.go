package iso8583

import (
	"bytes"
	"testing"

	"github.com/moov-io/bertlv"
)

func TestICCFieldCodecDecodeEncodeRoundTrip(t *testing.T) {
	packets := []bertlv.TLV{
		{Tag: "9F02", Value: []byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x00}},
		{Tag: "5F2A", Value: []byte{0x09, 0x78}},
	}
	raw, err := bertlv.Encode(packets)
	if err != nil {
		t.Fatalf("bertlv.Encode: %v", err)
	}

	codec := NewICCFieldCodec()
	obj, ok := codec.Decode(string(raw))
	if !ok {
		t.Fatalf("expected Decode to succeed on well-formed TLV")
	}
	data, ok := obj.(ICCData)
	if !ok {
		t.Fatalf("expected ICCData, got %T", obj)
	}

	val, ok := data.Get("9F02")
	if !ok {
		t.Fatalf("expected tag 9F02 present")
	}
	if !bytes.Equal(val, []byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x00}) {
		t.Fatalf("unexpected value for 9F02: %x", val)
	}

	encoded, err := codec.Encode(data)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	reDecoded, ok := codec.Decode(encoded)
	if !ok {
		t.Fatalf("expected re-decode of round-tripped bytes to succeed")
	}
	reData := reDecoded.(ICCData)
	val2, ok := reData.Get("5F2A")
	if !ok || !bytes.Equal(val2, []byte{0x09, 0x78}) {
		t.Fatalf("round trip lost tag 5F2A: %v %x", ok, val2)
	}
}

func TestICCFieldCodecDecodeFailsGracefullyOnMalformedData(t *testing.T) {
	codec := NewICCFieldCodec()
	_, ok := codec.Decode("\xff\xff\xff")
	if ok {
		t.Fatalf("expected Decode to report failure on malformed TLV so the raw value is kept")
	}
}

func TestICCFieldCodecEncodeRejectsWrongType(t *testing.T) {
	codec := NewICCFieldCodec()
	_, err := codec.Encode("not an ICCData")
	if err == nil {
		t.Fatalf("expected error encoding a non-ICCData value")
	}
}

func TestField55WithICCCustomCodec(t *testing.T) {
	packets := []bertlv.TLV{{Tag: "9F02", Value: []byte{0x00, 0x00, 0x10, 0x00}}}
	raw, err := bertlv.Encode(packets)
	if err != nil {
		t.Fatalf("bertlv.Encode: %v", err)
	}

	pi := NewLLLBINField().WithCustomCodec(NewICCFieldCodec())
	buf := append([]byte(fmtPrefix(len(raw), 3)), raw...)

	fv, n, err := decodeField(buf, 0, 55, pi, Latin1, nil)
	if err != nil {
		t.Fatalf("decodeField: %v", err)
	}
	if n != 3+len(raw) {
		t.Fatalf("consumed %d bytes, want %d", n, 3+len(raw))
	}
	iv, ok := fv.(*IsoValue[any])
	if !ok {
		t.Fatalf("expected *IsoValue[any] once the custom codec substitutes the value, got %T", fv)
	}
	data, ok := iv.Value().(ICCData)
	if !ok {
		t.Fatalf("expected ICCData, got %T", iv.Value())
	}
	if _, ok := data.Get("9F02"); !ok {
		t.Fatalf("expected tag 9F02 to survive decode")
	}
}

func fmtPrefix(n, digits int) []byte {
	buf := make([]byte, digits)
	writeIntToASCII(buf, n, digits)
	return buf
}
