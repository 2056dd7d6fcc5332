package iso8583

// CustomFieldCodec is the per-index hook that converts between a
// field's domain representation and its on-wire form. Decode signals
// best-effort enrichment, not validation: returning (nil, false) tells the
// field codec to keep the raw decoded string rather than fail the parse.
type CustomFieldCodec interface {
	Encode(v any) (string, error)
	Decode(raw string) (any, bool)
}

// funcFieldCodec adapts two functions into a CustomFieldCodec, mirroring the
// functional-options idiom used throughout the rest of this package.
type funcFieldCodec struct {
	encode func(v any) (string, error)
	decode func(raw string) (any, bool)
}

func (f funcFieldCodec) Encode(v any) (string, error) { return f.encode(v) }
func (f funcFieldCodec) Decode(raw string) (any, bool) { return f.decode(raw) }

// NewFieldCodec builds a CustomFieldCodec from an encode and a decode function.
func NewFieldCodec(encode func(v any) (string, error), decode func(raw string) (any, bool)) CustomFieldCodec {
	return funcFieldCodec{encode: encode, decode: decode}
}
