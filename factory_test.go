package iso8583

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func testSchema() map[int]*FieldParseInfo {
	return map[int]*FieldParseInfo{
		2:  NewLLVARField(),
		3:  must1(NewNumericField(6)),
		4:  NewAmountField(),
		7:  NewDate10Field(),
		11: must1(NewNumericField(6)),
		39: must1(NewAlphaField(2)),
	}
}

func must1(pi *FieldParseInfo, err error) *FieldParseInfo {
	if err != nil {
		panic(err)
	}
	return pi
}

func buildTestFactory(t *testing.T) *MessageFactory {
	b := NewFactoryBuilder()
	if err := b.SetParseMap(0x0200, testSchema()); err != nil {
		t.Fatalf("SetParseMap(0200): %v", err)
	}
	if err := b.SetParseMap(0x0210, testSchema()); err != nil {
		t.Fatalf("SetParseMap(0210): %v", err)
	}
	b.SetTraceNumberSource(NewAtomicTraceNumberSource(0))
	b.SetAssignDate(true)
	b.SetClock(fixedClock(time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)))
	return b.Build()
}

func TestFactoryNewMessageAssignsTraceAndDate(t *testing.T) {
	f := buildTestFactory(t)
	m, err := f.NewMessage(0x0200)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if !m.HasField(11) {
		t.Fatalf("expected trace number assigned to field 11")
	}
	stan, _ := m.Field(11)
	if stan.(*IsoValue[string]).Value() != "000001" {
		t.Fatalf("expected first trace number 000001, got %v", stan.(*IsoValue[string]).Value())
	}
	if !m.HasField(7) {
		t.Fatalf("expected date assigned to field 7")
	}
}

func TestFactoryNewMessageTraceNumbersAreUnique(t *testing.T) {
	f := buildTestFactory(t)
	seen := make(map[string]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := f.NewMessage(0x0200)
			if err != nil {
				t.Errorf("NewMessage: %v", err)
				return
			}
			stan, _ := m.Field(11)
			mu.Lock()
			seen[stan.(*IsoValue[string]).Value()] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	if len(seen) != 50 {
		t.Fatalf("expected 50 unique trace numbers, got %d", len(seen))
	}
}

func TestFactoryCreateResponseOverlaysRequestFields(t *testing.T) {
	f := buildTestFactory(t)
	req, err := f.NewMessage(0x0200)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if err := req.SetValue(2, "4111111111111111", LLVAR, 0); err != nil {
		t.Fatalf("SetValue(2): %v", err)
	}

	resp := f.CreateResponse(req)
	if resp.Type() != 0x0210 {
		t.Fatalf("response type = %04X, want 0210", resp.Type())
	}
	if !resp.HasField(2) {
		t.Fatalf("expected request field 2 to carry over to the response")
	}
	pan, _ := resp.Field(2)
	if pan.(*IsoValue[string]).Value() != "4111111111111111" {
		t.Fatalf("unexpected PAN on response: %v", pan.(*IsoValue[string]).Value())
	}
}

func TestFactoryCreateResponseDoesNotMintTraceOrDate(t *testing.T) {
	f := buildTestFactory(t)
	req := newMessage(f.textEncoding)
	req.SetType(0x0200)
	if err := req.SetValue(2, "4111111111111111", LLVAR, 0); err != nil {
		t.Fatalf("SetValue(2): %v", err)
	}

	resp := f.CreateResponse(req)
	if resp.HasField(11) {
		t.Fatalf("expected no trace number minted when request omits field 11")
	}
	if resp.HasField(7) {
		t.Fatalf("expected no date stamped when request omits field 7")
	}
}

func TestFactoryParseRoundTrip(t *testing.T) {
	f := buildTestFactory(t)
	m, err := f.NewMessage(0x0200)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if err := m.SetValue(2, "4111111111111111", LLVAR, 0); err != nil {
		t.Fatalf("SetValue(2): %v", err)
	}
	if err := m.SetValue(3, "000000", NUMERIC, 6); err != nil {
		t.Fatalf("SetValue(3): %v", err)
	}
	if err := m.SetValue(4, "1000", AMOUNT, 12); err != nil {
		t.Fatalf("SetValue(4): %v", err)
	}

	wire, err := m.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	parsed, err := f.Parse(wire, 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Type() != 0x0200 {
		t.Fatalf("parsed type = %04X, want 0200", parsed.Type())
	}
	pan, ok := parsed.Field(2)
	if !ok {
		t.Fatalf("expected field 2 present after parse")
	}
	if pan.(*IsoValue[string]).Value() != "4111111111111111" {
		t.Fatalf("unexpected PAN after parse: %v", pan.(*IsoValue[string]).Value())
	}
	amt, ok := parsed.Field(4)
	if !ok {
		t.Fatalf("expected field 4 present after parse")
	}
	if amt.(*IsoValue[int64]).Value() != 1000 {
		t.Fatalf("unexpected amount after parse: %v", amt.(*IsoValue[int64]).Value())
	}
}

// messageSnapshot is an exported, cmp-friendly projection of a Message: just
// enough to diff structurally without cmp panicking on the unexported fields
// map iso8583.Message itself carries.
type messageSnapshot struct {
	Type   uint16
	Header string
	Fields map[int]string
}

func snapshotMessage(m *Message) messageSnapshot {
	fields := make(map[int]string, len(m.fields))
	for i, v := range m.fields {
		fields[i] = v.raw()
	}
	return messageSnapshot{Type: m.Type(), Header: string(m.Header()), Fields: fields}
}

func TestFactoryParseRoundTripMatchesOriginalMessage(t *testing.T) {
	f := buildTestFactory(t)
	m, err := f.NewMessage(0x0200)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if err := m.SetValue(2, "4111111111111111", LLVAR, 0); err != nil {
		t.Fatalf("SetValue(2): %v", err)
	}
	if err := m.SetValue(3, "000000", NUMERIC, 6); err != nil {
		t.Fatalf("SetValue(3): %v", err)
	}
	if err := m.SetValue(4, "1000", AMOUNT, 12); err != nil {
		t.Fatalf("SetValue(4): %v", err)
	}
	if err := m.SetValue(39, "00", ALPHA, 2); err != nil {
		t.Fatalf("SetValue(39): %v", err)
	}

	wire, err := m.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	parsed, err := f.Parse(wire, 0)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if diff := cmp.Diff(snapshotMessage(m), snapshotMessage(parsed)); diff != "" {
		t.Fatalf("Parse(Bytes(m)) differs from m (-original +parsed):\n%s", diff)
	}
}

func TestFactoryParseUnknownTypeReturnsNoSchemaError(t *testing.T) {
	f := buildTestFactory(t)
	_, err := f.Parse([]byte("09990000000000000000"), 0)
	if err == nil {
		t.Fatalf("expected NoSchemaError for unregistered type")
	}
	if _, ok := err.(*NoSchemaError); !ok {
		t.Fatalf("expected *NoSchemaError, got %T: %v", err, err)
	}
}

func TestFactoryParseTruncatedBuffer(t *testing.T) {
	f := buildTestFactory(t)
	_, err := f.Parse([]byte("02"), 0)
	if err == nil {
		t.Fatalf("expected truncation error")
	}
	if _, ok := err.(*TruncatedError); !ok {
		t.Fatalf("expected *TruncatedError, got %T", err)
	}
}

func TestFactoryBuilderPanicsAfterBuild(t *testing.T) {
	b := NewFactoryBuilder()
	b.Build()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic calling a setter after Build")
		}
	}()
	b.SetTerminator(0x1c)
}

func TestFactorySetParseMapRejectsFixedKindWithoutLength(t *testing.T) {
	b := NewFactoryBuilder()
	bad := map[int]*FieldParseInfo{2: {Kind: NUMERIC, Length: 0}}
	err := b.SetParseMap(0x0200, bad)
	if err == nil {
		t.Fatalf("expected configuration error for a fixed field with zero length")
	}
	if _, ok := err.(*ConfigurationError); !ok {
		t.Fatalf("expected *ConfigurationError, got %T", err)
	}
}
