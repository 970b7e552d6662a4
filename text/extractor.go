package text

import (
	"fmt"
	"strings"

	"github.com/tsawler/regmap/contentstream"
	"github.com/tsawler/regmap/core"
	"github.com/tsawler/regmap/font"
	"github.com/tsawler/regmap/graphicsstate"
	"github.com/tsawler/regmap/model"
)

// maxFormDepth bounds Form XObject nesting (and breaks reference cycles).
const maxFormDepth = 8

// TextFragment is one shown string with its position in user space.
// X, Y is the baseline origin; Width is the advance of the string.
type TextFragment struct {
	Text     string
	X, Y     float64
	Width    float64
	Height   float64
	FontName string
	FontSize float64
}

// BBox returns the fragment's box, from the baseline up to the font size.
func (f TextFragment) BBox() model.BBox {
	return model.NewBBox(f.X, f.Y, f.Width, f.Height)
}

// Extractor runs content stream operators through a graphics state and
// records every string a text-showing operator paints.
type Extractor struct {
	gs        *graphicsstate.GraphicsState
	fonts     map[string]*font.Font
	resolve   font.Resolver
	resources core.Dict
	depth     int

	fragments []TextFragment
}

// NewExtractor creates a new text extractor
func NewExtractor() *Extractor {
	return &Extractor{
		gs:    graphicsstate.NewGraphicsState(),
		fonts: make(map[string]*font.Font),
	}
}

// RegisterFont registers a font for use during extraction
func (e *Extractor) RegisterFont(name string, f *font.Font) {
	e.fonts[fontKey(name)] = f
}

// RegisterFontsFromResources loads every font in a resources dictionary.
// Fonts that fail to load are skipped; text shown with them falls back to
// Helvetica metrics and WinAnsi decoding.
func (e *Extractor) RegisterFontsFromResources(resources core.Dict, resolve font.Resolver) error {
	e.resolve = resolve
	e.resources = resources
	if resources == nil {
		return nil
	}

	obj, err := e.deref(resources.Get("Font"))
	if err != nil {
		return fmt.Errorf("failed to resolve font dictionary: %w", err)
	}
	fonts, ok := obj.(core.Dict)
	if !ok {
		return nil
	}

	for name, ref := range fonts {
		fobj, err := e.deref(ref)
		if err != nil {
			continue
		}
		dict, ok := fobj.(core.Dict)
		if !ok {
			continue
		}
		if f, err := font.Load(name, dict, resolve); err == nil {
			e.RegisterFont(name, f)
		}
	}
	return nil
}

func (e *Extractor) deref(obj core.Object) (core.Object, error) {
	if ref, ok := obj.(core.IndirectRef); ok && e.resolve != nil {
		return e.resolve(ref)
	}
	return obj, nil
}

// Extract runs operations and returns the fragments they paint.
func (e *Extractor) Extract(operations []contentstream.Operation) ([]TextFragment, error) {
	e.fragments = nil
	if err := e.run(operations); err != nil {
		return nil, err
	}
	return e.fragments, nil
}

// ExtractFromBytes parses and extracts text from raw content stream data
func (e *Extractor) ExtractFromBytes(data []byte) ([]TextFragment, error) {
	ops, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return nil, fmt.Errorf("parse content stream: %w", err)
	}
	return e.Extract(ops)
}

func (e *Extractor) run(operations []contentstream.Operation) error {
	for i, op := range operations {
		if err := e.processOperation(op); err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Operator, err)
		}
	}
	return nil
}

func (e *Extractor) processOperation(op contentstream.Operation) error {
	args := op.Operands
	switch op.Operator {
	case "q":
		e.gs.Save()
	case "Q":
		// Unbalanced Q is common in the wild; ignore it.
		_ = e.gs.Restore()
	case "cm":
		if len(args) == 6 {
			e.gs.Transform(operandsToMatrix(args))
		}
	case "Do":
		if len(args) == 1 {
			if name, ok := args[0].(core.Name); ok {
				return e.drawForm(string(name))
			}
		}

	case "BT":
		e.gs.BeginText()
	case "ET":
		e.gs.EndText()
	case "Tf":
		if len(args) == 2 {
			name, _ := args[0].(core.Name)
			size, _ := toFloat(args[1])
			e.gs.SetFont(fontKey(string(name)), size)
		}
	case "Tc":
		if v, ok := floatArg(args); ok {
			e.gs.SetCharSpacing(v)
		}
	case "Tw":
		if v, ok := floatArg(args); ok {
			e.gs.SetWordSpacing(v)
		}
	case "Tz":
		if v, ok := floatArg(args); ok {
			e.gs.SetHorizontalScaling(v)
		}
	case "TL":
		if v, ok := floatArg(args); ok {
			e.gs.SetLeading(v)
		}
	case "Tr":
		if len(args) == 1 {
			if mode, ok := toInt(args[0]); ok {
				e.gs.SetRenderingMode(mode)
			}
		}
	case "Ts":
		if v, ok := floatArg(args); ok {
			e.gs.SetTextRise(v)
		}

	case "Tm":
		if len(args) == 6 {
			e.gs.SetTextMatrix(operandsToMatrix(args))
		}
	case "Td", "TD":
		if len(args) == 2 {
			tx, _ := toFloat(args[0])
			ty, _ := toFloat(args[1])
			if op.Operator == "TD" {
				e.gs.TranslateTextSetLeading(tx, ty)
			} else {
				e.gs.TranslateText(tx, ty)
			}
		}
	case "T*":
		e.gs.NextLine()

	case "Tj":
		if len(args) == 1 {
			if str, ok := args[0].(core.String); ok {
				e.showText([]byte(str))
			}
		}
	case "TJ":
		if len(args) == 1 {
			if arr, ok := args[0].(core.Array); ok {
				e.showTextArray(arr)
			}
		}
	case "'":
		e.gs.NextLine()
		if len(args) == 1 {
			if str, ok := args[0].(core.String); ok {
				e.showText([]byte(str))
			}
		}
	case "\"":
		if len(args) == 3 {
			if aw, ok := toFloat(args[0]); ok {
				e.gs.SetWordSpacing(aw)
			}
			if ac, ok := toFloat(args[1]); ok {
				e.gs.SetCharSpacing(ac)
			}
			e.gs.NextLine()
			if str, ok := args[2].(core.String); ok {
				e.showText([]byte(str))
			}
		}
	}
	return nil
}

// drawForm runs the content of a Form XObject with its /Matrix applied.
// Image XObjects are ignored.
func (e *Extractor) drawForm(name string) error {
	if e.resources == nil || e.depth >= maxFormDepth {
		return nil
	}
	xobjs, err := e.deref(e.resources.Get("XObject"))
	if err != nil {
		return nil
	}
	dict, ok := xobjs.(core.Dict)
	if !ok {
		return nil
	}
	obj, err := e.deref(dict.Get(strings.TrimPrefix(name, "/")))
	if err != nil {
		return nil
	}
	stream, ok := obj.(*core.Stream)
	if !ok {
		return nil
	}
	if st, _ := stream.Dict.GetName("Subtype"); st != "Form" {
		return nil
	}
	data, err := stream.Decode()
	if err != nil {
		return fmt.Errorf("decode form %s: %w", name, err)
	}
	ops, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return fmt.Errorf("parse form %s: %w", name, err)
	}

	saved := e.resources
	savedFonts := e.fonts
	e.depth++
	e.gs.Save()
	defer func() {
		_ = e.gs.Restore()
		e.depth--
		e.resources = saved
		e.fonts = savedFonts
	}()

	if m, ok := stream.Dict.GetArray("Matrix"); ok && len(m) == 6 {
		e.gs.Transform(operandsToMatrix(m))
	}
	if res, err := e.deref(stream.Dict.Get("Resources")); err == nil {
		if resDict, ok := res.(core.Dict); ok {
			e.fonts = make(map[string]*font.Font, len(savedFonts))
			for k, v := range savedFonts {
				e.fonts[k] = v
			}
			if err := e.RegisterFontsFromResources(resDict, e.resolve); err != nil {
				return err
			}
		}
	}
	return e.run(ops)
}

// showText records one fragment and advances the text matrix past it.
func (e *Extractor) showText(data []byte) {
	f := e.currentFont()
	decoded := f.DecodeString(data)

	x, y := e.gs.GetTextPosition()
	glyphs := f.Advance(data) / 1000 * e.gs.GetFontSize()
	e.gs.ShowText(decoded, glyphs)
	x1, _ := e.gs.GetTextPosition()

	if strings.TrimSpace(decoded) == "" {
		return
	}
	size := e.gs.GetEffectiveFontSize()
	e.fragments = append(e.fragments, TextFragment{
		Text:     decoded,
		X:        x,
		Y:        y,
		Width:    x1 - x,
		Height:   size,
		FontName: e.gs.GetFontName(),
		FontSize: size,
	})
}

func (e *Extractor) showTextArray(arr core.Array) {
	for _, item := range arr {
		switch v := item.(type) {
		case core.String:
			e.showText([]byte(v))
		case core.Int:
			e.gs.Kern(float64(v))
		case core.Real:
			e.gs.Kern(float64(v))
		}
	}
}

var fallbackFont = font.NewFont("fallback", "Helvetica", "Type1")

func (e *Extractor) currentFont() *font.Font {
	if f, ok := e.fonts[e.gs.GetFontName()]; ok {
		return f
	}
	return fallbackFont
}

// GetFragments returns the fragments of the last extraction.
func (e *Extractor) GetFragments() []TextFragment {
	return e.fragments
}

func fontKey(name string) string {
	return strings.TrimPrefix(name, "/")
}

func floatArg(args []core.Object) (float64, bool) {
	if len(args) != 1 {
		return 0, false
	}
	return toFloat(args[0])
}

func toFloat(obj core.Object) (float64, bool) {
	switch v := obj.(type) {
	case core.Int:
		return float64(v), true
	case core.Real:
		return float64(v), true
	}
	return 0, false
}

func toInt(obj core.Object) (int, bool) {
	if v, ok := obj.(core.Int); ok {
		return int(v), true
	}
	return 0, false
}

func operandsToMatrix(operands []core.Object) model.Matrix {
	var m model.Matrix
	for i := 0; i < 6 && i < len(operands); i++ {
		m[i], _ = toFloat(operands[i])
	}
	return m
}
