package specs

import (
	"testing"

	"github.com/avalonpay/iso8583"
)

func TestDefault1987CoversAllFieldsExceptReserved(t *testing.T) {
	schema := Default1987()
	for i := 2; i <= 128; i++ {
		if _, ok := schema[i]; !ok {
			t.Errorf("expected field %d to have a default schema entry", i)
		}
	}
	if _, ok := schema[1]; ok {
		t.Errorf("field 1 is reserved for the secondary bitmap indicator and must not appear")
	}
}

func TestDefault1987WiresIntoAFactory(t *testing.T) {
	b := iso8583.NewFactoryBuilder()
	if err := b.SetParseMap(0x0200, Default1987()); err != nil {
		t.Fatalf("SetParseMap: %v", err)
	}
	b.Build()
}

func TestDefault1987KeyFieldKinds(t *testing.T) {
	schema := Default1987()
	cases := map[int]iso8583.IsoType{
		2:  iso8583.LLVAR,
		4:  iso8583.AMOUNT,
		7:  iso8583.DATE10,
		12: iso8583.TIME,
		52: iso8583.BINARY,
		55: iso8583.LLLBIN,
	}
	for field, want := range cases {
		pi, ok := schema[field]
		if !ok {
			t.Fatalf("field %d missing from default schema", field)
		}
		if pi.Kind != want {
			t.Errorf("field %d kind = %v, want %v", field, pi.Kind, want)
		}
	}
}
