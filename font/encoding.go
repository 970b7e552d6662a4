package font

import (
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

// Encoding maps single-byte character codes of a simple font to Unicode.
type Encoding interface {
	Name() string
	Decode(b byte) rune
	DecodeString(data []byte) string
}

// charmapEncoding adapts an x/text code page to the Encoding interface.
type charmapEncoding struct {
	name string
	cm   *charmap.Charmap
}

func (e charmapEncoding) Name() string { return e.name }

func (e charmapEncoding) Decode(b byte) rune {
	return e.cm.DecodeByte(b)
}

func (e charmapEncoding) DecodeString(data []byte) string {
	return decodeBytes(e, data)
}

// tableEncoding is Latin-1 with a sparse set of overrides.
type tableEncoding struct {
	name      string
	overrides map[byte]rune
}

func (e tableEncoding) Name() string { return e.name }

func (e tableEncoding) Decode(b byte) rune {
	if r, ok := e.overrides[b]; ok {
		return r
	}
	return rune(b)
}

func (e tableEncoding) DecodeString(data []byte) string {
	return decodeBytes(e, data)
}

// CustomEncoding is a base encoding patched by a font's /Differences array.
type CustomEncoding struct {
	base        Encoding
	differences map[byte]rune
}

// NewCustomEncoding layers differences over base. A nil base means
// StandardEncoding, which is what PDF readers assume for simple fonts.
func NewCustomEncoding(base Encoding, differences map[byte]rune) *CustomEncoding {
	if base == nil {
		base = StandardEncoding
	}
	return &CustomEncoding{base: base, differences: differences}
}

// Name returns the base encoding name suffixed with "+Differences".
func (e *CustomEncoding) Name() string { return e.base.Name() + "+Differences" }

// Decode maps a code through the differences first, then the base encoding.
func (e *CustomEncoding) Decode(b byte) rune {
	if r, ok := e.differences[b]; ok {
		return r
	}
	return e.base.Decode(b)
}

// DecodeString decodes every byte of data.
func (e *CustomEncoding) DecodeString(data []byte) string {
	return decodeBytes(e, data)
}

func decodeBytes(enc Encoding, data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		r := enc.Decode(b)
		if r == 0 || r == '�' {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Predefined simple font encodings.
var (
	WinAnsiEncoding  Encoding = charmapEncoding{name: "WinAnsiEncoding", cm: charmap.Windows1252}
	MacRomanEncoding Encoding = charmapEncoding{name: "MacRomanEncoding", cm: charmap.Macintosh}

	// StandardEncoding differs from ASCII for the quotes and uses its own
	// layout above 0x7F; only the printable glyphs that show up in
	// technical documents are mapped.
	StandardEncoding Encoding = tableEncoding{name: "StandardEncoding", overrides: map[byte]rune{
		0x27: '’', 0x60: '‘',
		0xA1: '¡', 0xA2: '¢', 0xA3: '£', 0xA4: '⁄', 0xA5: '¥', 0xA6: 'ƒ', 0xA7: '§',
		0xA8: '¤', 0xA9: '\'', 0xAA: '“', 0xAB: '«', 0xAE: 'ﬁ', 0xAF: 'ﬂ',
		0xB1: '–', 0xB2: '†', 0xB3: '‡', 0xB4: '·', 0xB6: '¶', 0xB7: '•',
		0xBA: '”', 0xBB: '»', 0xBC: '…', 0xBD: '‰', 0xBF: '¿',
		0xD0: '—', 0xE1: 'Æ', 0xE3: 'ª', 0xE8: 'Ł', 0xE9: 'Ø', 0xEA: 'Œ', 0xEB: 'º',
		0xF1: 'æ', 0xF5: 'ı', 0xF8: 'ł', 0xF9: 'ø', 0xFA: 'œ', 0xFB: 'ß',
	}}

	// PDFDocEncoding is Latin-1 except for a handful of typographic
	// characters in 0x18-0x1F and 0x80-0x9F.
	PDFDocEncoding Encoding = tableEncoding{name: "PDFDocEncoding", overrides: map[byte]rune{
		0x18: '˘', 0x19: 'ˇ', 0x1A: 'ˆ', 0x1B: '˙', 0x1C: '˝', 0x1D: '˛',
		0x1E: '˚', 0x1F: '˜',
		0x80: '•', 0x81: '†', 0x82: '‡', 0x83: '…', 0x84: '—', 0x85: '–',
		0x86: 'ƒ', 0x87: '⁄', 0x88: '‹', 0x89: '›', 0x8A: '−', 0x8B: '‰',
		0x8C: '„', 0x8D: '“', 0x8E: '”', 0x8F: '‘', 0x90: '’', 0x91: '‚',
		0x92: '™', 0x93: 'ﬁ', 0x94: 'ﬂ', 0x95: 'Ł', 0x96: 'Œ', 0x97: 'Š', 0x98: 'Ÿ',
		0x99: 'Ž', 0x9A: 'ı', 0x9B: 'ł', 0x9C: 'œ', 0x9D: 'š', 0x9E: 'ž', 0xA0: '€',
	}}
)

// GetEncoding returns the predefined encoding with the given name, or
// WinAnsiEncoding for names it does not know (multi-byte CMaps such as
// Identity-H are handled by ToUnicode, not here).
func GetEncoding(name string) Encoding {
	switch strings.TrimPrefix(name, "/") {
	case "StandardEncoding":
		return StandardEncoding
	case "MacRomanEncoding":
		return MacRomanEncoding
	case "PDFDocEncoding":
		return PDFDocEncoding
	default:
		return WinAnsiEncoding
	}
}

// DecodeUTF16BE decodes big-endian UTF-16 text without a byte order mark.
func DecodeUTF16BE(data []byte) string {
	out, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}

// DecodeUTF16LE decodes little-endian UTF-16 text without a byte order mark.
func DecodeUTF16LE(data []byte) string {
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}

var ligatures = strings.NewReplacer(
	"ﬀ", "ff",
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
)

// NormalizeUnicode expands typographic ligatures and returns the NFC form.
// Compatibility characters such as superscripts are left alone so units
// like "m³" survive.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(ligatures.Replace(s))
}

// glyphNames covers the Adobe glyph names that appear in /Differences arrays
// of datasheet fonts beyond the single-letter and digit names.
var glyphNames = map[string]rune{
	"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#', "dollar": '$',
	"percent": '%', "ampersand": '&', "quotesingle": '\'', "quoteright": '’',
	"quoteleft": '‘', "parenleft": '(', "parenright": ')', "asterisk": '*', "plus": '+',
	"comma": ',', "hyphen": '-', "minus": '−', "period": '.', "slash": '/', "colon": ':',
	"semicolon": ';', "less": '<', "equal": '=', "greater": '>', "question": '?', "at": '@',
	"bracketleft": '[', "backslash": '\\', "bracketright": ']', "underscore": '_',
	"braceleft": '{', "bar": '|', "braceright": '}', "asciitilde": '~', "degree": '°',
	"mu": 'µ', "plusminus": '±', "multiply": '×', "endash": '–', "emdash": '—',
	"bullet": '•', "ellipsis": '…', "fi": 'ﬁ', "fl": 'ﬂ',
	"quotedblleft": '“', "quotedblright": '”', "twosuperior": '²', "threesuperior": '³',
	"Omega": 'Ω', "ohm": '\u2126', "nbspace": ' ', "copyright": '©', "registered": '®',
	"zero": '0', "one": '1', "two": '2', "three": '3', "four": '4',
	"five": '5', "six": '6', "seven": '7', "eight": '8', "nine": '9',
}

// GlyphToRune resolves an Adobe glyph name ("A", "degree", "uni00B0", "u1F600")
// to its Unicode code point.
func GlyphToRune(name string) (rune, bool) {
	name = strings.TrimPrefix(name, "/")
	if r, ok := glyphNames[name]; ok {
		return r, true
	}
	if len(name) == 1 {
		c := name[0]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return rune(c), true
		}
	}
	if strings.HasPrefix(name, "uni") && len(name) == 7 {
		if v, err := strconv.ParseUint(name[3:], 16, 32); err == nil {
			return rune(v), true
		}
	}
	if strings.HasPrefix(name, "u") && len(name) >= 5 && len(name) <= 7 {
		if v, err := strconv.ParseUint(name[1:], 16, 32); err == nil {
			return rune(v), true
		}
	}
	return 0, false
}
