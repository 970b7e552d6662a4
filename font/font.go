package font

import "strings"

// Font is a decoded PDF font resource: enough of it to turn the raw bytes
// of a text-showing operator into Unicode text and a horizontal advance.
type Font struct {
	Name     string
	BaseFont string
	Subtype  string
	Encoding string

	// ToUnicodeCMap takes precedence over Encoding when present.
	ToUnicodeCMap *CMap

	differences  map[byte]rune
	widths       map[int]float64 // from /Widths or /W, 1000ths of em
	metrics      *asciiWidths    // fallback for fonts without widths
	defaultWidth float64
	composite    bool // two-byte codes (Type0 with Identity-H/V)
}

// NewFont returns a simple font sized with the Standard 14 metrics of its
// base font, or with Helvetica's when the face is unknown.
func NewFont(name, baseFont, subtype string) *Font {
	metrics, ok := standardFonts[stripSubset(baseFont)]
	if !ok {
		metrics = &helvetica
	}
	return &Font{
		Name:         name,
		BaseFont:     baseFont,
		Subtype:      subtype,
		Encoding:     "WinAnsiEncoding",
		widths:       make(map[int]float64),
		metrics:      metrics,
		defaultWidth: 500,
	}
}

// IsComposite reports whether the font uses two-byte character codes.
func (f *Font) IsComposite() bool { return f.composite }

// IsStandardFont reports whether the base font is one of the Standard 14.
func (f *Font) IsStandardFont() bool {
	_, ok := standardFonts[stripSubset(f.BaseFont)]
	return ok
}

// Width returns the advance of a character code in 1000ths of em.
func (f *Font) Width(code int) float64 {
	if w, ok := f.widths[code]; ok {
		return w
	}
	if w, ok := f.metrics.lookup(code); ok {
		return w
	}
	return f.defaultWidth
}

// Codes splits raw string bytes into character codes.
func (f *Font) Codes(data []byte) []int {
	if !f.composite {
		codes := make([]int, len(data))
		for i, b := range data {
			codes[i] = int(b)
		}
		return codes
	}
	codes := make([]int, 0, len(data)/2+1)
	for i := 0; i+1 < len(data); i += 2 {
		codes = append(codes, int(data[i])<<8|int(data[i+1]))
	}
	return codes
}

// Advance returns the summed widths of data in 1000ths of em.
func (f *Font) Advance(data []byte) float64 {
	var total float64
	for _, c := range f.Codes(data) {
		total += f.Width(c)
	}
	return total
}

// DecodeString turns raw string bytes into NFC-normalized Unicode text.
// A ToUnicode CMap wins, then a UTF-16 byte order mark, then the font's
// encoding with any /Differences applied.
func (f *Font) DecodeString(data []byte) string {
	if f.ToUnicodeCMap != nil {
		codeLen := 1
		if f.composite {
			codeLen = 2
		}
		return NormalizeUnicode(f.ToUnicodeCMap.LookupString(data, codeLen))
	}

	if len(data) >= 2 {
		switch {
		case data[0] == 0xFE && data[1] == 0xFF:
			return NormalizeUnicode(DecodeUTF16BE(data[2:]))
		case data[0] == 0xFF && data[1] == 0xFE:
			return NormalizeUnicode(DecodeUTF16LE(data[2:]))
		}
	}

	if f.composite {
		// Identity codes are glyph ids. Values in the ASCII range are the
		// only usable guess.
		var sb strings.Builder
		for _, c := range f.Codes(data) {
			if c >= 0x20 && c < 0x7F {
				sb.WriteByte(byte(c))
			}
		}
		return sb.String()
	}

	var enc Encoding = GetEncoding(f.Encoding)
	if len(f.differences) > 0 {
		enc = NewCustomEncoding(enc, f.differences)
	}
	return NormalizeUnicode(enc.DecodeString(data))
}

// stripSubset removes a "ABCDEF+" subset tag from a base font name.
func stripSubset(name string) string {
	if len(name) > 7 && name[6] == '+' {
		return name[7:]
	}
	return name
}
