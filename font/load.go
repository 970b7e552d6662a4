package font

import (
	"fmt"

	"github.com/tsawler/regmap/core"
)

// Resolver dereferences indirect objects while a font dictionary is read.
type Resolver func(core.IndirectRef) (core.Object, error)

// Load builds a Font from a page resource font dictionary. Type1, MMType1,
// TrueType, Type3 and Type0 fonts are understood; anything else falls back
// to a WinAnsi font with Helvetica metrics.
func Load(name string, dict core.Dict, resolve Resolver) (*Font, error) {
	subtype := nameOf(dict.Get("Subtype"))
	f := NewFont(name, nameOf(dict.Get("BaseFont")), subtype)

	switch subtype {
	case "Type0":
		if err := f.loadComposite(dict, resolve); err != nil {
			return nil, fmt.Errorf("font %s: %w", name, err)
		}
	default:
		if subtype == "Type1" || subtype == "MMType1" {
			f.Encoding = "StandardEncoding"
			if f.IsStandardFont() {
				f.Encoding = "WinAnsiEncoding"
			}
		}
		if err := f.loadEncoding(dict.Get("Encoding"), resolve); err != nil {
			return nil, fmt.Errorf("font %s: %w", name, err)
		}
		f.loadSimpleWidths(dict, resolve)
	}

	if obj := deref(dict.Get("ToUnicode"), resolve); obj != nil {
		if stream, ok := obj.(*core.Stream); ok {
			if cm, err := ParseToUnicodeCMap(stream); err == nil {
				f.ToUnicodeCMap = cm
			}
		}
	}
	return f, nil
}

func (f *Font) loadEncoding(obj core.Object, resolve Resolver) error {
	switch v := deref(obj, resolve).(type) {
	case nil:
		return nil
	case core.Name:
		f.Encoding = string(v)
		return nil
	case core.Dict:
		if base := nameOf(v.Get("BaseEncoding")); base != "" {
			f.Encoding = base
		}
		if diffs, ok := deref(v.Get("Differences"), resolve).(core.Array); ok {
			f.differences = parseDifferences(diffs)
		}
		return nil
	default:
		return fmt.Errorf("invalid encoding type %T", v)
	}
}

// parseDifferences reads [code name name ... code name ...]. Glyph names
// without a known Unicode value leave their code to the base encoding.
func parseDifferences(diffs core.Array) map[byte]rune {
	out := make(map[byte]rune)
	code := 0
	for _, item := range diffs {
		switch v := item.(type) {
		case core.Int:
			code = int(v)
		case core.Name:
			if r, ok := GlyphToRune(string(v)); ok && code >= 0 && code < 256 {
				out[byte(code)] = r
			}
			code++
		}
	}
	return out
}

func (f *Font) loadSimpleWidths(dict core.Dict, resolve Resolver) {
	if fd, ok := deref(dict.Get("FontDescriptor"), resolve).(core.Dict); ok {
		if mw := number(fd.Get("MissingWidth")); mw > 0 {
			f.defaultWidth = mw
		}
	}

	widths, ok := deref(dict.Get("Widths"), resolve).(core.Array)
	if !ok {
		return
	}
	first := int(number(dict.Get("FirstChar")))
	for i, w := range widths {
		f.widths[first+i] = number(deref(w, resolve))
	}
}

func (f *Font) loadComposite(dict core.Dict, resolve Resolver) error {
	f.composite = true
	f.Encoding = "Identity-H"
	if enc := nameOf(dict.Get("Encoding")); enc != "" {
		f.Encoding = enc
	}
	f.widths = make(map[int]float64)
	f.metrics = nil
	f.defaultWidth = 1000

	descendants, ok := deref(dict.Get("DescendantFonts"), resolve).(core.Array)
	if !ok || len(descendants) == 0 {
		return fmt.Errorf("missing DescendantFonts")
	}
	cid, ok := deref(descendants[0], resolve).(core.Dict)
	if !ok {
		return fmt.Errorf("descendant font is %T, not a dictionary", descendants[0])
	}
	if dw := cid.Get("DW"); dw != nil {
		f.defaultWidth = number(dw)
	}
	if w, ok := deref(cid.Get("W"), resolve).(core.Array); ok {
		f.loadCIDWidths(w, resolve)
	}
	return nil
}

// loadCIDWidths reads a W array: "c [w1 w2 ...]" or "cfirst clast w".
func (f *Font) loadCIDWidths(w core.Array, resolve Resolver) {
	for i := 0; i+1 < len(w); {
		start := int(number(w[i]))
		if list, ok := deref(w[i+1], resolve).(core.Array); ok {
			for j, v := range list {
				f.widths[start+j] = number(v)
			}
			i += 2
			continue
		}
		if i+2 >= len(w) {
			return
		}
		end, width := int(number(w[i+1])), number(w[i+2])
		for c := start; c <= end && c-start < 0x10000; c++ {
			f.widths[c] = width
		}
		i += 3
	}
}

func deref(obj core.Object, resolve Resolver) core.Object {
	ref, ok := obj.(core.IndirectRef)
	if !ok || resolve == nil {
		return obj
	}
	out, err := resolve(ref)
	if err != nil {
		return nil
	}
	return out
}

func nameOf(obj core.Object) string {
	switch v := obj.(type) {
	case core.Name:
		return string(v)
	case core.String:
		return string(v)
	}
	return ""
}

func number(obj core.Object) float64 {
	switch v := obj.(type) {
	case core.Int:
		return float64(v)
	case core.Real:
		return float64(v)
	}
	return 0
}
