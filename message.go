package iso8583

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
)

// Message is an ordered, bitmap-indexed collection of field values for
// indices 2..128, plus an optional header string, a 16-bit message type, and
// an optional single-byte terminator. A Message is owned by exactly one
// producer or consumer at a time and is never mutated concurrently;
// it therefore carries no internal locking, unlike the pooled, shared
// structure this package's predecessor used.
type Message struct {
	header     []byte
	msgType    uint16
	fields     map[int]FieldValue
	terminator int // -1 = none
	enc        TextEncoding
}

func newMessage(enc TextEncoding) *Message {
	return &Message{fields: make(map[int]FieldValue, 8), terminator: -1, enc: enc}
}

// Type returns the 16-bit message type (the four hex nibbles).
func (m *Message) Type() uint16 { return m.msgType }

// SetType sets the message type.
func (m *Message) SetType(t uint16) { m.msgType = t }

// Header returns the ISO header string bytes, or nil if none.
func (m *Message) Header() []byte { return m.header }

// SetHeader sets the ISO header bytes prepended before the message type.
func (m *Message) SetHeader(h []byte) {
	if len(h) == 0 {
		m.header = nil
		return
	}
	m.header = append([]byte(nil), h...)
}

// Terminator returns the configured terminator byte, or -1 if none.
func (m *Message) Terminator() int { return m.terminator }

// SetTerminator sets the single-byte terminator appended after the last
// field; pass -1 for none.
func (m *Message) SetTerminator(t int) { m.terminator = t }

// SetField installs a FieldValue at index i. Field 1 (the secondary-bitmap
// indicator) and indices outside 2..128 are rejected.
func (m *Message) SetField(i int, v FieldValue) error {
	if i < 2 || i > MaxFieldNumber {
		return fmt.Errorf("%w: field %d", ErrReservedField, i)
	}
	m.fields[i] = v
	return nil
}

// SetValue wraps raw into a FieldValue through the kind's codec and installs
// it at index i, the convenience path around SetField.
func (m *Message) SetValue(i int, raw any, kind IsoType, length int) error {
	fv, err := buildValue(kind, raw, length, m.enc)
	if err != nil {
		return &ParseError{Field: i, Kind: kind, Cause: err}
	}
	return m.SetField(i, fv)
}

// HasField reports whether index i is present.
func (m *Message) HasField(i int) bool {
	_, ok := m.fields[i]
	return ok
}

// Field returns the FieldValue at index i.
func (m *Message) Field(i int) (FieldValue, bool) {
	v, ok := m.fields[i]
	return v, ok
}

// RemoveField deletes index i, if present.
func (m *Message) RemoveField(i int) { delete(m.fields, i) }

// presentIndices returns fields 2..128 present, in ascending order.
func (m *Message) presentIndices() []int {
	out := make([]int, 0, len(m.fields))
	for i := range m.fields {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// headerLen is the byte length of the header string, used by callers that
// need to pass headerLen back into MessageFactory.Parse.
func (m *Message) headerLen() int { return len(m.header) }

// Write produces the wire form of the message: header, type, bitmap, fields
// in ascending index order, optional terminator.
func (m *Message) Write(w io.Writer) error {
	if len(m.header) > 0 {
		if _, err := w.Write(m.header); err != nil {
			return err
		}
	}

	var typeBuf [4]byte
	writeMsgTypeHex(typeBuf[:], m.msgType)
	if _, err := w.Write(typeBuf[:]); err != nil {
		return err
	}

	indices := m.presentIndices()
	var bm Bitmap
	for _, i := range indices {
		if err := bm.Set(i); err != nil {
			return err
		}
	}
	var bmBuf [32]byte
	n, err := bm.EncodeHex(bmBuf[:])
	if err != nil {
		return err
	}
	if _, err := w.Write(bmBuf[:n]); err != nil {
		return err
	}

	for _, i := range indices {
		fv := m.fields[i]
		payload, err := fv.encodeBytes(m.enc)
		if err != nil {
			return &EncodingError{Field: i, Cause: err}
		}
		if prefixW := fv.Kind().PrefixDigits(); prefixW > 0 {
			var prefixBuf [3]byte
			writeIntToASCII(prefixBuf[:prefixW], len(payload), prefixW)
			if _, err := w.Write(prefixBuf[:prefixW]); err != nil {
				return err
			}
		}
		if _, err := w.Write(payload); err != nil {
			return err
		}
	}

	if m.terminator >= 0 {
		if _, err := w.Write([]byte{byte(m.terminator)}); err != nil {
			return err
		}
	}
	return nil
}

// writeMsgTypeHex writes the message type's 4 nibbles as uppercase ASCII
// hex digits, e.g. 0x0200 -> "0200", 0x1A3F -> "1A3F".
func writeMsgTypeHex(buf []byte, t uint16) {
	buf[0] = hexTableUpper[(t>>12)&0xF]
	buf[1] = hexTableUpper[(t>>8)&0xF]
	buf[2] = hexTableUpper[(t>>4)&0xF]
	buf[3] = hexTableUpper[t&0xF]
}

// Bytes renders the message through a pooled buffer and returns a copy.
func (m *Message) Bytes() ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)
	bw := &byteWriter{buf: buf}
	if err := m.Write(bw); err != nil {
		return nil, err
	}
	out := make([]byte, len(bw.buf))
	copy(out, bw.buf)
	return out, nil
}

type byteWriter struct{ buf []byte }

func (w *byteWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	return len(p), nil
}

// Clone returns a deep copy of the message; mutating the clone never
// affects the original.
func (m *Message) Clone() *Message {
	c := &Message{
		msgType:    m.msgType,
		terminator: m.terminator,
		enc:        m.enc,
		fields:     make(map[int]FieldValue, len(m.fields)),
	}
	if m.header != nil {
		c.header = append([]byte(nil), m.header...)
	}
	for i, v := range m.fields {
		c.fields[i] = v.clone()
	}
	return c
}

// LogValue implements slog.LogValuer so callers can log a Message cheaply
// without hand-building attributes.
func (m *Message) LogValue() slog.Value {
	indices := m.presentIndices()
	fieldAttrs := make([]any, 0, len(indices))
	for _, i := range indices {
		fieldAttrs = append(fieldAttrs, slog.String(fmt.Sprintf("%d", i), m.fields[i].raw()))
	}
	return slog.GroupValue(
		slog.String("mti", fmt.Sprintf("%04X", m.msgType)),
		slog.String("header", string(m.header)),
		slog.Int("field_count", len(indices)),
		slog.Group("fields", fieldAttrs...),
	)
}

// buildValue wraps a raw domain value into a FieldValue for the given kind
// and declared length, used by Message.SetValue and by the factory when
// deep-copying template fields of a different declared length is never
// required (templates are cloned via FieldValue.clone instead).
func buildValue(kind IsoType, raw any, length int, enc TextEncoding) (FieldValue, error) {
	switch kind {
	case NUMERIC:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("NUMERIC requires a string value, got %T", raw)
		}
		encoded, err := encodeNumeric(s, length)
		if err != nil {
			return nil, err
		}
		return NewIsoValue(kind, s, length, encoded), nil
	case ALPHA:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("ALPHA requires a string value, got %T", raw)
		}
		wire, err := enc.Encode(s)
		if err != nil {
			return nil, &EncodingError{Cause: err}
		}
		encoded, err := encodeAlpha(string(wire), length)
		if err != nil {
			return nil, err
		}
		return NewIsoValue(kind, s, length, encoded), nil
	case AMOUNT:
		minor, err := toMinorUnits(raw)
		if err != nil {
			return nil, err
		}
		encoded, err := encodeAmount(minor, 12)
		if err != nil {
			return nil, err
		}
		return NewIsoValue(kind, minor, 12, encoded), nil
	case BINARY:
		b, ok := raw.([]byte)
		if !ok {
			return nil, fmt.Errorf("BINARY requires a []byte value, got %T", raw)
		}
		if len(b) != length {
			return nil, fmt.Errorf("BINARY value length %d does not match declared length %d", len(b), length)
		}
		cp := append([]byte(nil), b...)
		return NewIsoValue(kind, cp, length, cp), nil
	case LLVAR, LLLVAR:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%s requires a string value, got %T", kind, raw)
		}
		encoded, err := enc.Encode(s)
		if err != nil {
			return nil, &EncodingError{Cause: err}
		}
		if len(encoded) > kind.MaxLength() {
			return nil, fmt.Errorf("%s value exceeds max length %d", kind, kind.MaxLength())
		}
		return NewIsoValue(kind, s, len(encoded), encoded), nil
	case LLBIN, LLLBIN:
		b, ok := raw.([]byte)
		if !ok {
			return nil, fmt.Errorf("%s requires a []byte value, got %T", kind, raw)
		}
		if len(b) > kind.MaxLength() {
			return nil, fmt.Errorf("%s value exceeds max length %d", kind, kind.MaxLength())
		}
		cp := append([]byte(nil), b...)
		return NewIsoValue(kind, cp, len(cp), cp), nil
	case DATE10, DATE4, DATE_EXP, TIME:
		return buildDateValue(kind, raw)
	}
	return nil, fmt.Errorf("unsupported field kind %s", kind)
}

func toMinorUnits(raw any) (int64, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		n, ok := parseASCIIDigits([]byte(v))
		if !ok {
			return 0, fmt.Errorf("AMOUNT string %q is not all digits", v)
		}
		return int64(n), nil
	}
	return 0, fmt.Errorf("AMOUNT requires an integer or digit string, got %T", raw)
}
