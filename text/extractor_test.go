package text

import (
	"math"
	"testing"

	"github.com/tsawler/regmap/contentstream"
	"github.com/tsawler/regmap/core"
	"github.com/tsawler/regmap/font"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func helvetica() *font.Font { return font.NewFont("F1", "Helvetica", "Type1") }

func TestSimpleTextExtraction(t *testing.T) {
	ex := NewExtractor()
	ex.RegisterFont("/F1", helvetica())

	ops := []contentstream.Operation{
		{Operator: "BT"},
		{Operator: "Tf", Operands: []core.Object{core.Name("F1"), core.Int(10)}},
		{Operator: "Td", Operands: []core.Object{core.Int(72), core.Int(700)}},
		{Operator: "Tj", Operands: []core.Object{core.String("AB")}},
		{Operator: "ET"},
	}
	frags, err := ex.Extract(ops)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(frags) != 1 {
		t.Fatalf("got %d fragments, want 1", len(frags))
	}
	f := frags[0]
	if f.Text != "AB" || !near(f.X, 72) || !near(f.Y, 700) {
		t.Errorf("fragment = %+v", f)
	}
	// A and B are both 667/1000 em at 10pt.
	if !near(f.Width, 13.34) {
		t.Errorf("width = %v, want 13.34", f.Width)
	}
	if f.FontSize != 10 || f.FontName != "F1" {
		t.Errorf("font = %s %v", f.FontName, f.FontSize)
	}
}

func TestConsecutiveShowsAdvance(t *testing.T) {
	ex := NewExtractor()
	ex.RegisterFont("F1", helvetica())

	frags, err := ex.ExtractFromBytes([]byte("BT /F1 10 Tf 100 500 Td (1) Tj (0) Tj ET"))
	if err != nil {
		t.Fatalf("ExtractFromBytes: %v", err)
	}
	if len(frags) != 2 {
		t.Fatalf("got %d fragments, want 2", len(frags))
	}
	if !near(frags[1].X, 105.56) {
		t.Errorf("second fragment x = %v, want 105.56", frags[1].X)
	}
}

func TestTJKerningMovesPen(t *testing.T) {
	ex := NewExtractor()
	ex.RegisterFont("F1", helvetica())

	frags, err := ex.ExtractFromBytes([]byte("BT /F1 10 Tf 0 0 Td [(1) -1000 (2)] TJ ET"))
	if err != nil {
		t.Fatalf("ExtractFromBytes: %v", err)
	}
	if len(frags) != 2 {
		t.Fatalf("got %d fragments, want 2", len(frags))
	}
	// 5.56 for the glyph plus 10 for the -1000 adjustment.
	if !near(frags[1].X, 15.56) {
		t.Errorf("x after kern = %v, want 15.56", frags[1].X)
	}
}

func TestTextMatrixScalesFontSize(t *testing.T) {
	ex := NewExtractor()
	frags, err := ex.ExtractFromBytes([]byte("BT /F9 1 Tf 9 0 0 9 50 400 Tm (Power) Tj ET"))
	if err != nil {
		t.Fatalf("ExtractFromBytes: %v", err)
	}
	if len(frags) != 1 {
		t.Fatalf("got %d fragments", len(frags))
	}
	if !near(frags[0].FontSize, 9) || !near(frags[0].X, 50) || !near(frags[0].Y, 400) {
		t.Errorf("fragment = %+v", frags[0])
	}
}

func TestLeadingAndNextLine(t *testing.T) {
	ex := NewExtractor()
	ex.RegisterFont("F1", helvetica())

	frags, err := ex.ExtractFromBytes([]byte("BT /F1 8 Tf 12 TL 40 600 Td (a) Tj T* (b) Tj (c) ' ET"))
	if err != nil {
		t.Fatalf("ExtractFromBytes: %v", err)
	}
	if len(frags) != 3 {
		t.Fatalf("got %d fragments, want 3", len(frags))
	}
	wantY := []float64{600, 588, 576}
	for i, f := range frags {
		if !near(f.Y, wantY[i]) || !near(f.X, 40) {
			t.Errorf("fragment %d at (%v, %v), want (40, %v)", i, f.X, f.Y, wantY[i])
		}
	}
}

func TestCTMAndSaveRestore(t *testing.T) {
	ex := NewExtractor()
	ex.RegisterFont("F1", helvetica())

	src := "q 1 0 0 1 100 100 cm BT /F1 10 Tf 0 0 Td (in) Tj ET Q BT /F1 10 Tf 0 0 Td (out) Tj ET"
	frags, err := ex.ExtractFromBytes([]byte(src))
	if err != nil {
		t.Fatalf("ExtractFromBytes: %v", err)
	}
	if len(frags) != 2 {
		t.Fatalf("got %d fragments", len(frags))
	}
	if !near(frags[0].X, 100) || !near(frags[0].Y, 100) {
		t.Errorf("inside q/Q at (%v, %v)", frags[0].X, frags[0].Y)
	}
	if !near(frags[1].X, 0) || !near(frags[1].Y, 0) {
		t.Errorf("after Q at (%v, %v)", frags[1].X, frags[1].Y)
	}
}

func TestBlankStringsAreDropped(t *testing.T) {
	ex := NewExtractor()
	frags, err := ex.ExtractFromBytes([]byte("BT /F1 10 Tf (   ) Tj (x) Tj ET"))
	if err != nil {
		t.Fatalf("ExtractFromBytes: %v", err)
	}
	if len(frags) != 1 || frags[0].Text != "x" {
		t.Errorf("fragments = %+v", frags)
	}
}

func TestRegisterFontsFromResourcesAndForm(t *testing.T) {
	fontRef := core.IndirectRef{Number: 5}
	formRef := core.IndirectRef{Number: 6}
	objects := map[core.IndirectRef]core.Object{
		fontRef: core.Dict{
			"Subtype":  core.Name("Type1"),
			"BaseFont": core.Name("Courier"),
		},
		formRef: &core.Stream{
			Dict: core.Dict{
				"Subtype": core.Name("Form"),
				"Matrix":  core.Array{core.Int(1), core.Int(0), core.Int(0), core.Int(1), core.Int(20), core.Int(30)},
			},
			Data: []byte("BT /C1 10 Tf 0 0 Td (ABC) Tj ET"),
		},
	}
	resolve := func(ref core.IndirectRef) (core.Object, error) {
		return objects[ref], nil
	}
	resources := core.Dict{
		"Font":    core.Dict{"C1": fontRef},
		"XObject": core.Dict{"Fm0": formRef},
	}

	ex := NewExtractor()
	if err := ex.RegisterFontsFromResources(resources, resolve); err != nil {
		t.Fatalf("RegisterFontsFromResources: %v", err)
	}
	frags, err := ex.ExtractFromBytes([]byte("/Fm0 Do"))
	if err != nil {
		t.Fatalf("ExtractFromBytes: %v", err)
	}
	if len(frags) != 1 {
		t.Fatalf("got %d fragments, want 1", len(frags))
	}
	f := frags[0]
	if f.Text != "ABC" || !near(f.X, 20) || !near(f.Y, 30) {
		t.Errorf("fragment = %+v", f)
	}
	// Courier is 600 units per glyph.
	if !near(f.Width, 18) {
		t.Errorf("width = %v, want 18", f.Width)
	}
}

func TestOperandsToMatrix(t *testing.T) {
	m := operandsToMatrix([]core.Object{core.Int(2), core.Real(0.5), core.Int(0), core.Int(2), core.Real(10.5), core.Int(-3)})
	want := [6]float64{2, 0.5, 0, 2, 10.5, -3}
	for i := range want {
		if m[i] != want[i] {
			t.Errorf("m[%d] = %v, want %v", i, m[i], want[i])
		}
	}
}
