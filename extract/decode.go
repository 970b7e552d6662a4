package extract

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DecodeText turns a text dump into NFC-normalized UTF-8. A byte order mark
// selects UTF-8 or UTF-16; without one, input that is not valid UTF-8 is
// read as Windows-1252, the usual encoding of datasheet exports.
func DecodeText(data []byte) string {
	var fallback encoding.Encoding = unicode.UTF8
	if !utf8.Valid(data) {
		fallback = charmap.Windows1252
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(fallback.NewDecoder()), data)
	if err != nil {
		out = data
	}
	return norm.NFC.String(string(out))
}
