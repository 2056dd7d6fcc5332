package iso8583

import "fmt"

type typeSchema struct {
	fields map[int]*FieldParseInfo
	order  []int // ascending, precomputed
}

// FactoryBuilder is the configuration-phase, single-writer half of the
// factory lifecycle. No setter here is safe for concurrent use; Build
// freezes everything collected so far into an immutable *MessageFactory and
// consumes the builder — calling a setter after Build panics.
type FactoryBuilder struct {
	headers      map[uint16][]byte
	templates    map[uint16]*Message
	schemas      map[uint16]*typeSchema
	traceSource  TraceNumberSource
	assignDate   bool
	terminator   int
	textEncoding TextEncoding
	clock        Clock
	built        bool
}

// NewFactoryBuilder starts a configuration-phase builder with ISO-8859-1 as
// the default text encoding and no terminator.
func NewFactoryBuilder() *FactoryBuilder {
	return &FactoryBuilder{
		headers:      make(map[uint16][]byte),
		templates:    make(map[uint16]*Message),
		schemas:      make(map[uint16]*typeSchema),
		terminator:   -1,
		textEncoding: Latin1,
	}
}

func (b *FactoryBuilder) checkNotBuilt() {
	if b.built {
		panic("iso8583: FactoryBuilder used after Build")
	}
}

// SetISOHeader installs the header string prepended before the message
// type, for a given message type.
func (b *FactoryBuilder) SetISOHeader(msgType uint16, header string) {
	b.checkNotBuilt()
	b.headers[msgType] = []byte(header)
}

// Template returns the template message for msgType, creating an empty one
// on first use, so callers can SetValue fields directly onto it during
// configuration.
func (b *FactoryBuilder) Template(msgType uint16) *Message {
	b.checkNotBuilt()
	t, ok := b.templates[msgType]
	if !ok {
		t = newMessage(b.textEncoding)
		t.SetType(msgType)
		b.templates[msgType] = t
	}
	return t
}

// SetMessageTemplate installs a fully built template message for msgType.
func (b *FactoryBuilder) SetMessageTemplate(msgType uint16, tmpl *Message) error {
	b.checkNotBuilt()
	if tmpl.HasField(1) {
		return &ConfigurationError{Type: msgType, Field: 1, Reason: "field 1 is reserved for the secondary bitmap indicator"}
	}
	b.templates[msgType] = tmpl
	return nil
}

// SetParseMap installs the parse schema (index -> FieldParseInfo) for
// msgType and precomputes the ascending index order so Parse never re-sorts.
// Returns a *ConfigurationError if any fixed-kind entry has a non-positive
// declared length.
func (b *FactoryBuilder) SetParseMap(msgType uint16, fields map[int]*FieldParseInfo) error {
	b.checkNotBuilt()
	for idx, pi := range fields {
		if idx < 2 || idx > MaxFieldNumber {
			return &ConfigurationError{Type: msgType, Field: idx, Reason: "field index out of range (must be 2..128)"}
		}
		if pi.Kind.IsFixed() && pi.Length <= 0 {
			return &ConfigurationError{Type: msgType, Field: idx, Reason: fmt.Sprintf("%s requires a positive declared length", pi.Kind)}
		}
	}
	order := make([]int, 0, len(fields))
	for idx := range fields {
		order = append(order, idx)
	}
	insertionSort(order)
	b.schemas[msgType] = &typeSchema{fields: fields, order: order}
	return nil
}

// SetTraceNumberSource installs the factory-wide trace-number source for
// field 11 assignment in NewMessage.
func (b *FactoryBuilder) SetTraceNumberSource(src TraceNumberSource) {
	b.checkNotBuilt()
	b.traceSource = src
}

// SetAssignDate enables or disables automatic field 7 (DATE10) assignment
// in NewMessage.
func (b *FactoryBuilder) SetAssignDate(enabled bool) {
	b.checkNotBuilt()
	b.assignDate = enabled
}

// SetTerminator sets the single-byte message terminator; pass -1 for none.
func (b *FactoryBuilder) SetTerminator(t int) {
	b.checkNotBuilt()
	b.terminator = t
}

// SetTextEncoding sets the factory-wide text encoding for textual fields
// (default ISO-8859-1).
func (b *FactoryBuilder) SetTextEncoding(enc TextEncoding) {
	b.checkNotBuilt()
	b.textEncoding = enc
}

// SetClock overrides the clock used for DATE10/DATE4 year assignment and
// rollover; intended for tests.
func (b *FactoryBuilder) SetClock(c Clock) {
	b.checkNotBuilt()
	b.clock = c
}

// Build freezes the configuration into an immutable, concurrency-safe
// *MessageFactory and consumes the builder.
func (b *FactoryBuilder) Build() *MessageFactory {
	b.checkNotBuilt()
	b.built = true
	return &MessageFactory{
		headers:      b.headers,
		templates:    b.templates,
		schemas:      b.schemas,
		traceSource:  b.traceSource,
		assignDate:   b.assignDate,
		terminator:   b.terminator,
		textEncoding: b.textEncoding,
		clock:        b.clock,
	}
}

func insertionSort(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// MessageFactory holds per-type templates, per-type parse schemas, per-type
// headers, a trace-number source, and a date-assignment flag. Built once via
// FactoryBuilder.Build and read-only from then on: NewMessage, CreateResponse,
// and Parse are all safe for unlimited concurrent callers, the only
// shared mutable state being the trace source, which is internally
// synchronized.
type MessageFactory struct {
	headers      map[uint16][]byte
	templates    map[uint16]*Message
	schemas      map[uint16]*typeSchema
	traceSource  TraceNumberSource
	assignDate   bool
	terminator   int
	textEncoding TextEncoding
	clock        Clock
}

// newTemplatedMessage allocates a message for msgType with the configured
// header and a deep copy of the registered template's fields, and nothing
// else: no trace number, no date stamp. NewMessage and CreateResponse both
// build on this; only NewMessage goes on to assign field 11/7.
func (f *MessageFactory) newTemplatedMessage(msgType uint16) *Message {
	m := newMessage(f.textEncoding)
	m.SetType(msgType)
	m.SetTerminator(f.terminator)
	if h, ok := f.headers[msgType]; ok {
		m.SetHeader(h)
	}
	if tmpl, ok := f.templates[msgType]; ok {
		for i, v := range tmpl.fields {
			m.fields[i] = v.clone()
		}
	}
	return m
}

// NewMessage allocates a message for msgType: installs the configured
// header, deep-copies the template's fields (if one is registered), assigns
// a trace number to field 11 if a trace source is configured, and
// date-stamps field 7 if assignment is enabled.
func (f *MessageFactory) NewMessage(msgType uint16) (*Message, error) {
	m := f.newTemplatedMessage(msgType)
	if f.traceSource != nil {
		stan := f.traceSource.Next()
		if err := m.SetValue(11, fmt.Sprintf("%06d", stan), NUMERIC, 6); err != nil {
			return nil, err
		}
	}
	if f.assignDate {
		clock := f.clock
		if clock == nil {
			clock = defaultClock
		}
		if err := m.SetValue(7, clock(), DATE10, 10); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CreateResponse builds a response to request: type = request.Type() + 0x10,
// the configured response-type header and template are applied, then every
// field 2..128 present in request overlays the template, overwriting any
// template-provided value for the same index — the request wins. Unlike
// NewMessage, no trace number or date is assigned here: a response carries
// forward whatever field 7/11 the request already has, rather than having
// the factory mint fresh ones.
func (f *MessageFactory) CreateResponse(request *Message) *Message {
	responseType := request.Type() + 0x10
	resp := f.newTemplatedMessage(responseType)
	for i, v := range request.fields {
		resp.fields[i] = v.clone()
	}
	return resp
}

// Parse reads headerLen header bytes, a 4-hex-digit message type, the
// bitmap, and then every field the bitmap marks present, dispatching each to
// its schema's field codec in ascending index order.
func (f *MessageFactory) Parse(buf []byte, headerLen int) (*Message, error) {
	if len(buf) < headerLen+4 {
		return nil, &TruncatedError{Offset: 0, Needed: headerLen + 4, Available: len(buf)}
	}
	m := newMessage(f.textEncoding)
	if headerLen > 0 {
		m.SetHeader(buf[:headerLen])
	}
	msgType, err := parseMsgTypeHex(buf[headerLen : headerLen+4])
	if err != nil {
		return nil, &ParseError{Offset: headerLen, Cause: err}
	}
	m.SetType(msgType)

	offset := headerLen + 4
	var bm Bitmap
	consumed, err := bm.DecodeHex(buf[offset:], offset)
	if err != nil {
		return nil, err
	}
	offset += consumed

	schema, ok := f.schemas[msgType]
	if !ok {
		return nil, &NoSchemaError{Type: msgType}
	}

	present := bm.PresentIndices()
	presentSet := make(map[int]bool, len(present))
	for _, i := range present {
		presentSet[i] = true
	}

	for _, idx := range schema.order {
		if !presentSet[idx] {
			continue
		}
		pi := schema.fields[idx]
		fv, n, err := decodeField(buf, offset, idx, pi, f.textEncoding, f.clock)
		if err != nil {
			return nil, err
		}
		m.fields[idx] = fv
		offset += n
	}

	return m, nil
}

func parseMsgTypeHex(b []byte) (uint16, error) {
	var v uint16
	for _, c := range b {
		var nib uint16
		switch {
		case c >= '0' && c <= '9':
			nib = uint16(c - '0')
		case c >= 'A' && c <= 'F':
			nib = uint16(c-'A') + 10
		case c >= 'a' && c <= 'f':
			nib = uint16(c-'a') + 10
		default:
			return 0, fmt.Errorf("invalid message type digit %q", c)
		}
		v = v<<4 | nib
	}
	return v, nil
}
