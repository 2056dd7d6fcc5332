package iso8583

// IsoType is the closed set of field kinds the codec understands. Behavior
// per kind is dispatched from the table in codecs.go rather than through a
// parser class hierarchy: the set is closed, so a switch/table is the direct
// translation.
type IsoType int

const (
	NUMERIC IsoType = iota
	ALPHA
	LLVAR
	LLLVAR
	DATE10
	DATE4
	DATE_EXP
	TIME
	AMOUNT
	BINARY
	LLBIN
	LLLBIN
)

func (t IsoType) String() string {
	if info, ok := kindTable[t]; ok {
		return info.name
	}
	return "UNKNOWN"
}

// kindInfo answers the questions every field kind needs answered: fixed or
// bounded length, the length-prefix width in ASCII digits, and whether the
// payload is text or raw bytes.
type kindInfo struct {
	name       string
	fixed      bool // declared length is exact, not a maximum
	maxLength  int  // for fixed kinds: the exact length; for variable kinds: the max payload length
	prefixDigs int  // 0, 2, or 3
	textual    bool // payload goes through the configured TextEncoding
}

var kindTable = map[IsoType]kindInfo{
	NUMERIC:  {name: "NUMERIC", fixed: true, prefixDigs: 0, textual: true},
	ALPHA:    {name: "ALPHA", fixed: true, prefixDigs: 0, textual: true},
	LLVAR:    {name: "LLVAR", fixed: false, maxLength: 99, prefixDigs: 2, textual: true},
	LLLVAR:   {name: "LLLVAR", fixed: false, maxLength: 999, prefixDigs: 3, textual: true},
	DATE10:   {name: "DATE10", fixed: true, maxLength: 10, prefixDigs: 0, textual: true},
	DATE4:    {name: "DATE4", fixed: true, maxLength: 4, prefixDigs: 0, textual: true},
	DATE_EXP: {name: "DATE_EXP", fixed: true, maxLength: 4, prefixDigs: 0, textual: true},
	TIME:     {name: "TIME", fixed: true, maxLength: 6, prefixDigs: 0, textual: true},
	AMOUNT:   {name: "AMOUNT", fixed: true, maxLength: 12, prefixDigs: 0, textual: true},
	BINARY:   {name: "BINARY", fixed: true, prefixDigs: 0, textual: false},
	LLBIN:    {name: "LLBIN", fixed: false, maxLength: 99, prefixDigs: 2, textual: false},
	LLLBIN:   {name: "LLLBIN", fixed: false, maxLength: 999, prefixDigs: 3, textual: false},
}

// IsFixed reports whether the kind's declared length is exact rather than a maximum.
func (t IsoType) IsFixed() bool { return kindTable[t].fixed }

// PrefixDigits returns the width, in ASCII digits, of the on-wire length prefix (0, 2, or 3).
func (t IsoType) PrefixDigits() int { return kindTable[t].prefixDigs }

// IsTextual reports whether the payload is decoded through the configured TextEncoding.
func (t IsoType) IsTextual() bool { return kindTable[t].textual }

// MaxLength returns the kind's fixed length (for fixed kinds) or maximum payload length
// (for variable kinds with a built-in ceiling, e.g. LLVAR's 99). Kinds whose fixed length
// is supplied per field (NUMERIC, ALPHA, BINARY) report 0 here; the declared length lives
// on the FieldParseInfo instead.
func (t IsoType) MaxLength() int { return kindTable[t].maxLength }

const MaxFieldNumber = 128
