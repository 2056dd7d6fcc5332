package iso8583

import "fmt"

// FieldParseInfo is a per (message-type, index) schema entry: kind,
// declared length (meaningful for fixed kinds), and an optional custom
// codec. Immutable after registration.
type FieldParseInfo struct {
	Kind   IsoType
	Length int
	Custom CustomFieldCodec
}

func newFieldParseInfo(kind IsoType, length int) (*FieldParseInfo, error) {
	info := kindTable[kind]
	if info.fixed && length <= 0 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("%s requires a positive declared length, got %d", kind, length)}
	}
	return &FieldParseInfo{Kind: kind, Length: length}, nil
}

// NewNumericField declares a fixed-length NUMERIC field.
func NewNumericField(length int) (*FieldParseInfo, error) { return newFieldParseInfo(NUMERIC, length) }

// NewAlphaField declares a fixed-length ALPHA field.
func NewAlphaField(length int) (*FieldParseInfo, error) { return newFieldParseInfo(ALPHA, length) }

// NewBinaryField declares a fixed-length BINARY field.
func NewBinaryField(length int) (*FieldParseInfo, error) { return newFieldParseInfo(BINARY, length) }

// NewLLVARField declares an LLVAR field (2-digit length prefix).
func NewLLVARField() *FieldParseInfo { return &FieldParseInfo{Kind: LLVAR} }

// NewLLLVARField declares an LLLVAR field (3-digit length prefix).
func NewLLLVARField() *FieldParseInfo { return &FieldParseInfo{Kind: LLLVAR} }

// NewLLBINField declares an LLBIN field (2-digit length prefix, raw payload).
func NewLLBINField() *FieldParseInfo { return &FieldParseInfo{Kind: LLBIN} }

// NewLLLBINField declares an LLLBIN field (3-digit length prefix, raw payload).
func NewLLLBINField() *FieldParseInfo { return &FieldParseInfo{Kind: LLLBIN} }

// NewDate10Field declares a DATE10 field (MMddHHmmss).
func NewDate10Field() *FieldParseInfo { return &FieldParseInfo{Kind: DATE10, Length: 10} }

// NewDate4Field declares a DATE4 field (MMdd).
func NewDate4Field() *FieldParseInfo { return &FieldParseInfo{Kind: DATE4, Length: 4} }

// NewDateExpField declares a DATE_EXP field (yyMM).
func NewDateExpField() *FieldParseInfo { return &FieldParseInfo{Kind: DATE_EXP, Length: 4} }

// NewTimeField declares a TIME field (HHmmss).
func NewTimeField() *FieldParseInfo { return &FieldParseInfo{Kind: TIME, Length: 6} }

// NewAmountField declares an AMOUNT field (fixed 12-digit minor-units integer).
func NewAmountField() *FieldParseInfo { return &FieldParseInfo{Kind: AMOUNT, Length: 12} }

// WithCustomCodec attaches a custom field codec to the schema entry.
func (pi *FieldParseInfo) WithCustomCodec(c CustomFieldCodec) *FieldParseInfo {
	pi.Custom = c
	return pi
}
