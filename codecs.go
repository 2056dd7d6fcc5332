package iso8583

import (
	"fmt"
	"strconv"
)

// decodeField dispatches to the codec for pi.Kind and reads one field
// starting at offset in buf. It returns the populated FieldValue and the
// number of bytes consumed. This is the single table-driven dispatch point
// the "no virtual dispatch" design note calls for: one function per
// kind, selected by a map lookup, not a dozen scattered switch arms.
func decodeField(buf []byte, offset int, field int, pi *FieldParseInfo, enc TextEncoding, clock Clock) (FieldValue, int, error) {
	fn, ok := fieldDecoders[pi.Kind]
	if !ok {
		return nil, 0, &ParseError{Offset: offset, Field: field, Kind: pi.Kind, Cause: fmt.Errorf("unknown field kind")}
	}
	return fn(buf, offset, field, pi, enc, clock)
}

type fieldDecoder func(buf []byte, offset int, field int, pi *FieldParseInfo, enc TextEncoding, clock Clock) (FieldValue, int, error)

var fieldDecoders = map[IsoType]fieldDecoder{
	NUMERIC:  decodeFixedText(NUMERIC),
	ALPHA:    decodeFixedText(ALPHA),
	DATE10:   decodeFixedText(DATE10),
	DATE4:    decodeFixedText(DATE4),
	DATE_EXP: decodeFixedText(DATE_EXP),
	TIME:     decodeFixedText(TIME),
	AMOUNT:   decodeFixedText(AMOUNT),
	BINARY:   decodeFixedBinary,
	LLVAR:    decodeLLText(LLVAR),
	LLLVAR:   decodeLLText(LLLVAR),
	LLBIN:    decodeLLBinary(LLBIN),
	LLLBIN:   decodeLLBinary(LLLBIN),
}

func readExact(buf []byte, offset, field int, n int) ([]byte, error) {
	if offset+n > len(buf) {
		return nil, &TruncatedError{Offset: offset, Needed: n, Available: len(buf) - offset}
	}
	return buf[offset : offset+n], nil
}

// decodeFixedText handles NUMERIC, ALPHA, DATE10, DATE4, DATE_EXP, TIME,
// AMOUNT: read exactly pi.Length bytes, text-decode, build the domain value,
// then run the custom codec best-effort: if pi.Custom is attached and
// its Decode succeeds, the custom object replaces the natural domain value;
// on failure the raw decoded string is kept as the value.
func decodeFixedText(kind IsoType) fieldDecoder {
	return func(buf []byte, offset int, field int, pi *FieldParseInfo, enc TextEncoding, clock Clock) (FieldValue, int, error) {
		raw, err := readExact(buf, offset, field, pi.Length)
		if err != nil {
			return nil, 0, err
		}
		text, err := enc.Decode(raw)
		if err != nil {
			return nil, 0, &ParseError{Offset: offset, Field: field, Kind: kind, Cause: &EncodingError{Field: field, Cause: err}}
		}
		encoded := append([]byte(nil), raw...)
		fv, err := buildFixedTextValue(kind, text, encoded, pi.Length, offset, field, clock)
		if err != nil {
			return nil, 0, err
		}
		if pi.Custom != nil {
			if obj, ok := pi.Custom.Decode(text); ok {
				fv = NewIsoValue(kind, obj, pi.Length, encoded).WithCustomCodec(pi.Custom)
			} else {
				fv = NewIsoValue(kind, text, pi.Length, encoded)
			}
		}
		return fv, pi.Length, nil
	}
}

func buildFixedTextValue(kind IsoType, text string, encoded []byte, length, offset, field int, clock Clock) (FieldValue, error) {
	switch kind {
	case NUMERIC:
		if _, ok := parseASCIIDigits(encoded); !ok {
			return nil, &ParseError{Offset: offset, Field: field, Kind: kind, Cause: fmt.Errorf("non-numeric digit in %q", text)}
		}
		return NewIsoValue(kind, text, length, encoded), nil
	case ALPHA:
		return NewIsoValue(kind, text, length, encoded), nil
	case AMOUNT:
		minor, ok := parseASCIIDigits(encoded)
		if !ok {
			return nil, &ParseError{Offset: offset, Field: field, Kind: kind, Cause: fmt.Errorf("non-numeric digit in amount %q", text)}
		}
		return NewIsoValue(kind, int64(minor), length, encoded), nil
	case DATE10:
		now := currentClock(clock)()
		t, err := parseDate10(text, now)
		if err != nil {
			return nil, &ParseError{Offset: offset, Field: field, Kind: kind, Cause: err}
		}
		return NewIsoValue(kind, t, length, encoded), nil
	case DATE4:
		now := currentClock(clock)()
		t, err := parseDate4(text, now)
		if err != nil {
			return nil, &ParseError{Offset: offset, Field: field, Kind: kind, Cause: err}
		}
		return NewIsoValue(kind, t, length, encoded), nil
	case DATE_EXP:
		t, err := parseDateExp(text)
		if err != nil {
			return nil, &ParseError{Offset: offset, Field: field, Kind: kind, Cause: err}
		}
		return NewIsoValue(kind, t, length, encoded), nil
	case TIME:
		t, err := parseTime(text)
		if err != nil {
			return nil, &ParseError{Offset: offset, Field: field, Kind: kind, Cause: err}
		}
		return NewIsoValue(kind, t, length, encoded), nil
	}
	return NewIsoValue(kind, text, length, encoded), nil
}

func currentClock(clock Clock) Clock {
	if clock == nil {
		return defaultClock
	}
	return clock
}

func decodeFixedBinary(buf []byte, offset int, field int, pi *FieldParseInfo, enc TextEncoding, clock Clock) (FieldValue, int, error) {
	raw, err := readExact(buf, offset, field, pi.Length)
	if err != nil {
		return nil, 0, err
	}
	cp := append([]byte(nil), raw...)
	var fv FieldValue = NewIsoValue(BINARY, cp, pi.Length, cp)
	if pi.Custom != nil {
		if obj, ok := pi.Custom.Decode(string(cp)); ok {
			fv = NewIsoValue(BINARY, obj, pi.Length, cp).WithCustomCodec(pi.Custom)
		}
	}
	return fv, pi.Length, nil
}

// decodeLLText handles LLVAR/LLLVAR: read the 2- or 3-digit ASCII length
// prefix, then that many bytes, text-decoded.
func decodeLLText(kind IsoType) fieldDecoder {
	return func(buf []byte, offset int, field int, pi *FieldParseInfo, enc TextEncoding, clock Clock) (FieldValue, int, error) {
		prefixW := kind.PrefixDigits()
		prefix, err := readExact(buf, offset, field, prefixW)
		if err != nil {
			return nil, 0, err
		}
		n, ok := parseASCIIDigits(prefix)
		if !ok {
			return nil, 0, &ParseError{Offset: offset, Field: field, Kind: kind, Cause: fmt.Errorf("non-digit length prefix %q", prefix)}
		}
		if n > kind.MaxLength() {
			return nil, 0, &ParseError{Offset: offset, Field: field, Kind: kind, Cause: fmt.Errorf("length %d exceeds max %d", n, kind.MaxLength())}
		}
		payload, err := readExact(buf, offset+prefixW, field, n)
		if err != nil {
			return nil, 0, err
		}
		text, err := enc.Decode(payload)
		if err != nil {
			return nil, 0, &ParseError{Offset: offset + prefixW, Field: field, Kind: kind, Cause: &EncodingError{Field: field, Cause: err}}
		}
		cp := append([]byte(nil), payload...)
		var fv FieldValue = NewIsoValue(kind, text, n, cp)
		if pi.Custom != nil {
			if obj, ok := pi.Custom.Decode(text); ok {
				fv = NewIsoValue(kind, obj, n, cp).WithCustomCodec(pi.Custom)
			}
		}
		return fv, prefixW + n, nil
	}
}

// decodeLLBinary handles LLBIN/LLLBIN: same length-prefix framing as
// decodeLLText, but the payload is never run through the text encoding —
// this is where a custom codec typically attaches (e.g. field 55's EMV TLV).
func decodeLLBinary(kind IsoType) fieldDecoder {
	return func(buf []byte, offset int, field int, pi *FieldParseInfo, enc TextEncoding, clock Clock) (FieldValue, int, error) {
		prefixW := kind.PrefixDigits()
		prefix, err := readExact(buf, offset, field, prefixW)
		if err != nil {
			return nil, 0, err
		}
		n, ok := parseASCIIDigits(prefix)
		if !ok {
			return nil, 0, &ParseError{Offset: offset, Field: field, Kind: kind, Cause: fmt.Errorf("non-digit length prefix %q", prefix)}
		}
		if n > kind.MaxLength() {
			return nil, 0, &ParseError{Offset: offset, Field: field, Kind: kind, Cause: fmt.Errorf("length %d exceeds max %d", n, kind.MaxLength())}
		}
		payload, err := readExact(buf, offset+prefixW, field, n)
		if err != nil {
			return nil, 0, err
		}
		cp := append([]byte(nil), payload...)
		var fv FieldValue = NewIsoValue(kind, cp, n, cp)
		if pi.Custom != nil {
			if obj, ok := pi.Custom.Decode(string(cp)); ok {
				fv = NewIsoValue(kind, obj, n, cp).WithCustomCodec(pi.Custom)
			}
		}
		return fv, prefixW + n, nil
	}
}

// encodeNumeric left-pads s with '0' to length, failing if s is longer or
// contains non-digits.
func encodeNumeric(s string, length int) ([]byte, error) {
	if len(s) > length {
		return nil, fmt.Errorf("NUMERIC value %q exceeds length %d", s, length)
	}
	if _, ok := parseASCIIDigits([]byte(s)); !ok {
		return nil, fmt.Errorf("NUMERIC value %q is not all digits", s)
	}
	out := make([]byte, length)
	pad := length - len(s)
	for i := 0; i < pad; i++ {
		out[i] = '0'
	}
	copy(out[pad:], s)
	return out, nil
}

// encodeAlpha right-pads s with spaces to length.
func encodeAlpha(s string, length int) ([]byte, error) {
	if len(s) > length {
		return nil, fmt.Errorf("ALPHA value %q exceeds length %d", s, length)
	}
	out := make([]byte, length)
	copy(out, s)
	for i := len(s); i < length; i++ {
		out[i] = ' '
	}
	return out, nil
}

// encodeAmount renders minor units (integer, never floating point) as a
// zero-padded fixed-width ASCII string.
func encodeAmount(minorUnits int64, length int) ([]byte, error) {
	s := strconv.FormatInt(minorUnits, 10)
	if len(s) > length {
		return nil, fmt.Errorf("AMOUNT %d exceeds %d digits", minorUnits, length)
	}
	out := make([]byte, length)
	pad := length - len(s)
	for i := 0; i < pad; i++ {
		out[i] = '0'
	}
	copy(out[pad:], s)
	return out, nil
}
