package font

import (
	"testing"

	"github.com/tsawler/regmap/core"
)

func TestNewFontStandardWidths(t *testing.T) {
	f := NewFont("F1", "Helvetica", "Type1")
	if !f.IsStandardFont() {
		t.Fatal("Helvetica should be a standard font")
	}
	if w := f.Width('A'); w != 667 {
		t.Errorf("Width('A') = %v, want 667", w)
	}
	if w := f.Advance([]byte("10")); w != 1112 {
		t.Errorf("Advance(\"10\") = %v, want 1112", w)
	}

	sub := NewFont("F2", "ABCDEF+Courier", "Type1")
	if w := sub.Width('x'); w != 600 {
		t.Errorf("subset Courier width = %v, want 600", w)
	}
}

func TestDecodeStringEncodings(t *testing.T) {
	tests := []struct {
		name     string
		encoding string
		data     []byte
		want     string
	}{
		{"winansi degree", "WinAnsiEncoding", []byte{'5', 0xB0, 'C'}, "5°C"},
		{"winansi euro", "WinAnsiEncoding", []byte{0x80}, "€"},
		{"macroman degree", "MacRomanEncoding", []byte{0xA1}, "°"},
		{"standard quote", "StandardEncoding", []byte{0x27}, "’"},
		{"pdfdoc bullet", "PDFDocEncoding", []byte{0x80}, "•"},
		{"ligature expanded", "StandardEncoding", []byte{0xAE}, "fi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFont("F1", "Helvetica", "Type1")
			f.Encoding = tt.encoding
			if got := f.DecodeString(tt.data); got != tt.want {
				t.Errorf("DecodeString = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeStringUTF16BOM(t *testing.T) {
	f := NewFont("F1", "Helvetica", "Type1")
	if got := f.DecodeString([]byte{0xFE, 0xFF, 0x00, 'k', 0x00, 'W'}); got != "kW" {
		t.Errorf("UTF-16BE = %q", got)
	}
	if got := f.DecodeString([]byte{0xFF, 0xFE, 'H', 0x00, 'z', 0x00}); got != "Hz" {
		t.Errorf("UTF-16LE = %q", got)
	}
}

func TestLoadSimpleFontWithDifferences(t *testing.T) {
	dict := core.Dict{
		"Type":      core.Name("Font"),
		"Subtype":   core.Name("Type1"),
		"BaseFont":  core.Name("XYZABC+DatasheetSans"),
		"FirstChar": core.Int(48),
		"Widths":    core.Array{core.Int(510), core.Int(520)},
		"Encoding": core.Dict{
			"BaseEncoding": core.Name("WinAnsiEncoding"),
			"Differences":  core.Array{core.Int(1), core.Name("degree"), core.Name("uni2126")},
		},
	}
	f, err := Load("F3", dict, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := f.DecodeString([]byte{'7', 1, 2}); got != "7°\u2126" {
		t.Errorf("DecodeString = %q, want %q", got, "7°\u2126")
	}
	if w := f.Width('0'); w != 510 {
		t.Errorf("Width('0') = %v, want 510", w)
	}
	if w := f.Width('1'); w != 520 {
		t.Errorf("Width('1') = %v, want 520", w)
	}
}

func TestLoadResolvesIndirectWidths(t *testing.T) {
	ref := core.IndirectRef{Number: 9, Generation: 0}
	dict := core.Dict{
		"Subtype":   core.Name("TrueType"),
		"BaseFont":  core.Name("Arial"),
		"FirstChar": core.Int(65),
		"Widths":    ref,
	}
	resolve := func(r core.IndirectRef) (core.Object, error) {
		if r != ref {
			t.Fatalf("unexpected ref %v", r)
		}
		return core.Array{core.Real(700.5)}, nil
	}
	f, err := Load("TT1", dict, resolve)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w := f.Width('A'); w != 700.5 {
		t.Errorf("Width('A') = %v, want 700.5", w)
	}
}

func TestLoadCompositeFont(t *testing.T) {
	cmap := []byte(`/CIDInit /ProcSet findresource begin
12 dict begin
begincmap
1 begincodespacerange
<0000> <FFFF>
endcodespacerange
2 beginbfchar
<0003> <0020>
<0011> <00B0>
endbfchar
1 beginbfrange
<0024> <0026> <0041>
endbfrange
endcmap`)

	dict := core.Dict{
		"Subtype":  core.Name("Type0"),
		"BaseFont": core.Name("SimSun"),
		"Encoding": core.Name("Identity-H"),
		"DescendantFonts": core.Array{core.Dict{
			"Subtype": core.Name("CIDFontType2"),
			"DW":      core.Int(1000),
			"W": core.Array{
				core.Int(3), core.Array{core.Int(250)},
				core.Int(36), core.Int(38), core.Int(600),
			},
		}},
	}
	f, err := Load("C0", dict, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f.ToUnicodeCMap = ParseCMap(cmap)

	if !f.IsComposite() {
		t.Fatal("expected composite font")
	}
	raw := []byte{0x00, 0x24, 0x00, 0x03, 0x00, 0x26, 0x00, 0x11}
	if got := f.DecodeString(raw); got != "A C°" {
		t.Errorf("DecodeString = %q, want %q", got, "A C°")
	}
	// 600 + 250 + 600 + 1000 (DW)
	if w := f.Advance(raw); w != 2450 {
		t.Errorf("Advance = %v, want 2450", w)
	}
}

func TestLoadCompositeMissingDescendants(t *testing.T) {
	_, err := Load("C1", core.Dict{"Subtype": core.Name("Type0")}, nil)
	if err == nil {
		t.Fatal("expected error for Type0 font without DescendantFonts")
	}
}

func TestCMapArrayRange(t *testing.T) {
	cm := ParseCMap([]byte(`1 beginbfrange
<01> <03> [<0056> <0041> <0072>]
endbfrange`))
	if got := cm.LookupString([]byte{1, 2, 3}, 1); got != "VAr" {
		t.Errorf("LookupString = %q, want VAr", got)
	}
	if _, ok := cm.Lookup(4); ok {
		t.Error("code 4 should be unmapped")
	}
}

func TestGlyphToRune(t *testing.T) {
	tests := []struct {
		name string
		want rune
		ok   bool
	}{
		{"A", 'A', true},
		{"seven", '7', true},
		{"/percent", '%', true},
		{"uni00B5", 'µ', true},
		{"u2126", '\u2126', true},
		{"ohm", '\u2126', true},
		{"Omega", '\u03a9', true},
		{"g123", 0, false},
	}
	for _, tt := range tests {
		got, ok := GlyphToRune(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("GlyphToRune(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeUnicode(t *testing.T) {
	if got := NormalizeUnicode("éﬁm³"); got != "éfim³" {
		t.Errorf("NormalizeUnicode = %q", got)
	}
}

func TestStandardMetrics(t *testing.T) {
	tests := []struct {
		base string
		code int
		want float64
	}{
		{"Times-Bold", 'W', 1000},
		{"Times-Roman", ' ', 250},
		{"Times-Roman", '1', 556},
		{"Arial-BoldMT", 'm', 889},
		{"Helvetica", '~', 584},
		{"Helvetica", 0xB0, 500},
		{"UnknownSans", 'A', 667},
	}
	for _, tt := range tests {
		if got := NewFont("F", tt.base, "Type1").Width(tt.code); got != tt.want {
			t.Errorf("%s width of %q = %v, want %v", tt.base, rune(tt.code), got, tt.want)
		}
	}
}
