package contentstream

import (
	"reflect"
	"testing"

	"github.com/tsawler/regmap/core"
)

func TestParseTextObject(t *testing.T) {
	src := []byte("BT\n/F1 9.5 Tf\n1 0 0 1 72 700 Tm\n(Active power) Tj\nET")
	ops, err := NewParser(src).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := []Operation{
		{Operator: "BT"},
		{Operator: "Tf", Operands: []core.Object{core.Name("F1"), core.Real(9.5)}},
		{Operator: "Tm", Operands: []core.Object{core.Int(1), core.Int(0), core.Int(0), core.Int(1), core.Int(72), core.Int(700)}},
		{Operator: "Tj", Operands: []core.Object{core.String("Active power")}},
		{Operator: "ET"},
	}
	if !reflect.DeepEqual(ops, want) {
		t.Errorf("ops = %#v\nwant %#v", ops, want)
	}
}

func TestParseStrings(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want core.String
	}{
		{"nested parens", `(a (b) c) Tj`, "a (b) c"},
		{"escapes", `(line\n\(x\)\\) Tj`, "line\n(x)\\"},
		{"octal", `(\260C) Tj`, "\xb0C"},
		{"continuation", "(ab\\\ncd) Tj", "abcd"},
		{"hex", `<48 65 6C6C6F> Tj`, "Hello"},
		{"odd hex", `<414> Tj`, "A@"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := NewParser([]byte(tt.src)).Parse()
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(ops) != 1 || len(ops[0].Operands) != 1 {
				t.Fatalf("ops = %#v", ops)
			}
			if got := ops[0].Operands[0]; got != tt.want {
				t.Errorf("operand = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseQuoteOperatorsAndKeywords(t *testing.T) {
	ops, err := NewParser([]byte(`(a) ' 1 2 (b) " true null T*`)).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(ops) != 3 {
		t.Fatalf("got %d ops: %#v", len(ops), ops)
	}
	if ops[0].Operator != "'" || ops[1].Operator != `"` || ops[2].Operator != "T*" {
		t.Errorf("operators = %q %q %q", ops[0].Operator, ops[1].Operator, ops[2].Operator)
	}
	if len(ops[1].Operands) != 3 {
		t.Errorf(`" operands = %v`, ops[1].Operands)
	}
	if !reflect.DeepEqual(ops[2].Operands, []core.Object{core.Bool(true), core.Null{}}) {
		t.Errorf("T* operands = %#v", ops[2].Operands)
	}
}

func TestParseTJArrayAndNameEscape(t *testing.T) {
	ops, err := NewParser([]byte(`[(V) 120 (oltage) -33.5] TJ /Fm#20A Do`)).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	arr := core.Array{core.String("V"), core.Int(120), core.String("oltage"), core.Real(-33.5)}
	if !reflect.DeepEqual(ops[0].Operands, []core.Object{arr}) {
		t.Errorf("TJ operands = %#v", ops[0].Operands)
	}
	if ops[1].Operands[0] != core.Name("Fm A") {
		t.Errorf("Do operand = %#v", ops[1].Operands[0])
	}
}

func TestParseSkipsInlineImageAndComments(t *testing.T) {
	src := []byte("q % save\nBI /W 2 /H 1 /BPC 8 /CS /G ID \x00\xffEI\x01 EI Q BT ET")
	ops, err := NewParser(src).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var names []string
	for _, op := range ops {
		names = append(names, op.Operator)
	}
	want := []string{"q", "BI", "Q", "BT", "ET"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("operators = %v, want %v", names, want)
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{"(unclosed Tj", "[1 2", "<zz> Tj", "<< /A 1"} {
		if _, err := NewParser([]byte(src)).Parse(); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", src)
		}
	}
}
