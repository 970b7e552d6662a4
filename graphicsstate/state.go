package graphicsstate

import (
	"fmt"
	"math"

	"github.com/tsawler/regmap/model"
)

// GraphicsState tracks the parts of the PDF graphics state that decide
// where text lands: the CTM and the text state.
type GraphicsState struct {
	CTM  model.Matrix
	Text TextState

	saved []snapshot // q/Q
}

type snapshot struct {
	ctm  model.Matrix
	text TextState
}

// TextState holds the Tc, Tw, Tz, TL, Tf, Tr and Ts parameters and the
// text matrices.
type TextState struct {
	FontName string
	FontSize float64

	CharSpacing       float64
	WordSpacing       float64
	HorizontalScaling float64 // percent
	Leading           float64
	RenderingMode     int
	Rise              float64

	TextMatrix     model.Matrix
	TextLineMatrix model.Matrix
}

// NewGraphicsState returns the state at the start of a content stream.
func NewGraphicsState() *GraphicsState {
	return &GraphicsState{
		CTM: model.Identity(),
		Text: TextState{
			FontSize:          12,
			HorizontalScaling: 100,
			TextMatrix:        model.Identity(),
			TextLineMatrix:    model.Identity(),
		},
	}
}

// Save implements q.
func (gs *GraphicsState) Save() {
	gs.saved = append(gs.saved, snapshot{ctm: gs.CTM, text: gs.Text})
}

// Restore implements Q. An unbalanced Q is an error and leaves the state
// alone.
func (gs *GraphicsState) Restore() error {
	n := len(gs.saved)
	if n == 0 {
		return fmt.Errorf("graphics state stack underflow")
	}
	s := gs.saved[n-1]
	gs.saved = gs.saved[:n-1]
	gs.CTM, gs.Text = s.ctm, s.text
	return nil
}

// Transform implements cm: CTM = m x CTM.
func (gs *GraphicsState) Transform(m model.Matrix) {
	gs.CTM = m.Multiply(gs.CTM)
}

// SetFont implements Tf.
func (gs *GraphicsState) SetFont(name string, size float64) {
	gs.Text.FontName, gs.Text.FontSize = name, size
}

func (gs *GraphicsState) SetCharSpacing(v float64)       { gs.Text.CharSpacing = v }
func (gs *GraphicsState) SetWordSpacing(v float64)       { gs.Text.WordSpacing = v }
func (gs *GraphicsState) SetHorizontalScaling(v float64) { gs.Text.HorizontalScaling = v }
func (gs *GraphicsState) SetLeading(v float64)           { gs.Text.Leading = v }
func (gs *GraphicsState) SetRenderingMode(mode int)      { gs.Text.RenderingMode = mode }
func (gs *GraphicsState) SetTextRise(v float64)          { gs.Text.Rise = v }

// BeginText implements BT.
func (gs *GraphicsState) BeginText() {
	gs.Text.TextMatrix = model.Identity()
	gs.Text.TextLineMatrix = model.Identity()
}

// EndText implements ET. The matrices are reset by the next BT.
func (gs *GraphicsState) EndText() {}

// SetTextMatrix implements Tm.
func (gs *GraphicsState) SetTextMatrix(m model.Matrix) {
	gs.Text.TextMatrix = m
	gs.Text.TextLineMatrix = m
}

// TranslateText implements Td: Tlm = T(tx, ty) x Tlm.
func (gs *GraphicsState) TranslateText(tx, ty float64) {
	gs.Text.TextLineMatrix = model.Translate(tx, ty).Multiply(gs.Text.TextLineMatrix)
	gs.Text.TextMatrix = gs.Text.TextLineMatrix
}

// TranslateTextSetLeading implements TD.
func (gs *GraphicsState) TranslateTextSetLeading(tx, ty float64) {
	gs.Text.Leading = -ty
	gs.TranslateText(tx, ty)
}

// NextLine implements T*.
func (gs *GraphicsState) NextLine() {
	gs.TranslateText(0, -gs.Text.Leading)
}

// ShowText moves the text matrix past a shown string and returns the
// horizontal displacement. glyphWidth is the summed advance in text space
// (w0 x Tfs) before spacing and scaling.
func (gs *GraphicsState) ShowText(text string, glyphWidth float64) (dx float64) {
	var chars, spaces int
	for _, c := range text {
		chars++
		if c == ' ' {
			spaces++
		}
	}

	// tx = (w0 x Tfs + Tc + Tw) x Th, per glyph
	th := gs.Text.HorizontalScaling / 100
	dx = (glyphWidth + float64(chars)*gs.Text.CharSpacing + float64(spaces)*gs.Text.WordSpacing) * th
	gs.advance(dx)
	return dx
}

// Kern applies a number from a TJ array, in thousandths of text space.
// Positive values move the next glyph left.
func (gs *GraphicsState) Kern(adjustment float64) (dx float64) {
	dx = -adjustment / 1000 * gs.Text.FontSize * gs.Text.HorizontalScaling / 100
	gs.advance(dx)
	return dx
}

func (gs *GraphicsState) advance(dx float64) {
	gs.Text.TextMatrix = model.Translate(dx, 0).Multiply(gs.Text.TextMatrix)
}

// textToUser is Tm x CTM.
func (gs *GraphicsState) textToUser() model.Matrix {
	return gs.Text.TextMatrix.Multiply(gs.CTM)
}

// GetTextPosition returns the text origin in user space, raised by Ts.
func (gs *GraphicsState) GetTextPosition() (x, y float64) {
	p := gs.textToUser().Transform(model.Point{X: 0, Y: gs.Text.Rise})
	return p.X, p.Y
}

func (gs *GraphicsState) GetFontName() string   { return gs.Text.FontName }
func (gs *GraphicsState) GetFontSize() float64 { return gs.Text.FontSize }

// GetEffectiveFontSize returns the rendered glyph height: Tf scaled by the
// vertical part of Tm x CTM. Generators often write "1 Tf" and put the
// real size in Tm.
func (gs *GraphicsState) GetEffectiveFontSize() float64 {
	m := gs.textToUser()
	return gs.Text.FontSize * math.Hypot(m[2], m[3])
}
