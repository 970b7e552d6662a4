package graphicsstate

import (
	"math"
	"testing"

	"github.com/tsawler/regmap/model"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewGraphicsState(t *testing.T) {
	gs := NewGraphicsState()

	if gs.Text.FontSize != 12.0 {
		t.Errorf("expected font size 12.0, got %f", gs.Text.FontSize)
	}
	if gs.Text.HorizontalScaling != 100.0 {
		t.Errorf("expected horizontal scaling 100.0, got %f", gs.Text.HorizontalScaling)
	}
	if gs.CTM != model.Identity() {
		t.Error("expected CTM to be identity matrix")
	}
}

func TestSaveRestore(t *testing.T) {
	gs := NewGraphicsState()
	gs.SetFont("/F1", 9)
	gs.Save()

	gs.SetFont("/F2", 14)
	gs.Transform(model.Translate(10, 10))

	if err := gs.Restore(); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if gs.GetFontName() != "/F1" || gs.GetFontSize() != 9 {
		t.Errorf("restored font = %s %v, want /F1 9", gs.GetFontName(), gs.GetFontSize())
	}
	if gs.CTM != model.Identity() {
		t.Errorf("restored CTM = %v", gs.CTM)
	}

	if err := gs.Restore(); err == nil {
		t.Error("expected error on restore without save")
	}
}

func TestTranslateTextAndNextLine(t *testing.T) {
	gs := NewGraphicsState()
	gs.BeginText()
	gs.TranslateTextSetLeading(50, -12)
	gs.TranslateText(0, 700)

	x, y := gs.GetTextPosition()
	if !approxEqual(x, 50) || !approxEqual(y, 688) {
		t.Fatalf("position = (%v, %v), want (50, 688)", x, y)
	}

	gs.NextLine()
	_, y = gs.GetTextPosition()
	if !approxEqual(y, 676) {
		t.Errorf("after T* y = %v, want 676", y)
	}
}

func TestShowTextAdvance(t *testing.T) {
	gs := NewGraphicsState()
	gs.BeginText()
	gs.SetFont("/F1", 10)
	gs.SetTextMatrix(model.Matrix{1, 0, 0, 1, 100, 500})

	dx := gs.ShowText("AB", 13.34)
	if !approxEqual(dx, 13.34) {
		t.Errorf("dx = %v, want 13.34", dx)
	}
	if x, _ := gs.GetTextPosition(); !approxEqual(x, 113.34) {
		t.Errorf("x = %v, want 113.34", x)
	}
}

func TestShowTextSpacingAndScaling(t *testing.T) {
	gs := NewGraphicsState()
	gs.BeginText()
	gs.SetFont("/F1", 10)
	gs.SetCharSpacing(1)
	gs.SetWordSpacing(2)
	gs.SetHorizontalScaling(50)

	// (10 + 3*1 + 1*2) * 0.5
	if dx := gs.ShowText("A B", 10); !approxEqual(dx, 7.5) {
		t.Errorf("dx = %v, want 7.5", dx)
	}
}

func TestShowTextScaledMatrix(t *testing.T) {
	gs := NewGraphicsState()
	gs.BeginText()
	gs.SetFont("/F1", 1)
	gs.SetTextMatrix(model.Matrix{8, 0, 0, 8, 20, 300})

	gs.ShowText("X", 0.5)
	if x, _ := gs.GetTextPosition(); !approxEqual(x, 24) {
		t.Errorf("x = %v, want 24", x)
	}
	if fs := gs.GetEffectiveFontSize(); !approxEqual(fs, 8) {
		t.Errorf("effective font size = %v, want 8", fs)
	}
}

func TestKern(t *testing.T) {
	gs := NewGraphicsState()
	gs.BeginText()
	gs.SetFont("/F1", 10)

	if dx := gs.Kern(-500); !approxEqual(dx, 5) {
		t.Errorf("Kern(-500) = %v, want 5", dx)
	}
	if x, _ := gs.GetTextPosition(); !approxEqual(x, 5) {
		t.Errorf("x = %v, want 5", x)
	}
}

func TestGetTextPositionWithCTMAndRise(t *testing.T) {
	gs := NewGraphicsState()
	gs.Transform(model.Translate(50, 50))
	gs.BeginText()
	gs.SetTextMatrix(model.Matrix{1, 0, 0, 1, 100, 200})
	gs.SetTextRise(3)

	x, y := gs.GetTextPosition()
	if !approxEqual(x, 150) || !approxEqual(y, 253) {
		t.Errorf("position = (%v, %v), want (150, 253)", x, y)
	}
}
