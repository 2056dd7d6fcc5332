package iso8583

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// TextEncoding converts between the on-wire bytes of a textual field and a
// Go string. The default is ISO-8859-1, ISO 8583's historical default and a
// single-byte codepage, which keeps byte length and rune count identical —
// required since LLVAR/LLLVAR length prefixes are pinned to bytes, not runes.
type TextEncoding struct {
	enc encoding.Encoding
}

// Latin1 is the default text encoding.
var Latin1 = TextEncoding{enc: charmap.ISO8859_1}

// NewTextEncoding wraps any golang.org/x/text/encoding.Encoding (a single-byte
// charmap, or encoding/unicode.UTF8) for use as a factory's text encoding.
func NewTextEncoding(enc encoding.Encoding) TextEncoding {
	return TextEncoding{enc: enc}
}

func (te TextEncoding) encoder() encoding.Encoding {
	if te.enc == nil {
		return charmap.ISO8859_1
	}
	return te.enc
}

// Decode converts wire bytes into a domain string.
func (te TextEncoding) Decode(raw []byte) (string, error) {
	out, err := te.encoder().NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Encode converts a domain string into wire bytes.
func (te TextEncoding) Encode(s string) ([]byte, error) {
	return te.encoder().NewEncoder().Bytes([]byte(s))
}
