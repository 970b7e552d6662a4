package core

import (
	"testing"
)

func TestParseObject(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"42", "42"},
		{"-3.5", "-3.5"},
		{".25", "0.25"},
		{"true", "true"},
		{"null", "null"},
		{"/Name#20With#20Space", "/Name With Space"},
		{"(a (nested) string)", "a (nested) string"},
		{`(esc\n\(x\)\101)`, "esc\n(x)A"},
		{"<48656C6C6F>", "Hello"},
		{"<4 8 6>", "H`"},
		{"[1 2 0 R /A]", "[1 2 0 R /A]"},
		{"<< /B 2 /A 1 /N null >>", "<</A 1 /B 2>>"},
		{"12 0 R", "12 0 R"},
		{"12 0 Rx", "12"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			obj, err := NewScanner([]byte(tt.in)).ParseObject()
			if err != nil {
				t.Fatalf("ParseObject(%q): %v", tt.in, err)
			}
			if got := obj.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseObjectErrors(t *testing.T) {
	for _, in := range []string{"", "(open", "<zz>", "[1 2", "<< 1 2 >>", "endobj"} {
		if _, err := NewScanner([]byte(in)).ParseObject(); err == nil {
			t.Errorf("ParseObject(%q): expected error", in)
		}
	}
}

func TestParseIndirectObjectStream(t *testing.T) {
	in := "7 0 obj\n<< /Length 5 >>\nstream\r\nhello\nendstream\nendobj"
	ind, err := NewScanner([]byte(in)).ParseIndirectObject()
	if err != nil {
		t.Fatalf("ParseIndirectObject: %v", err)
	}
	if ind.Ref.Number != 7 {
		t.Errorf("expected object 7, got %d", ind.Ref.Number)
	}
	s, ok := ind.Object.(*Stream)
	if !ok {
		t.Fatalf("expected *Stream, got %T", ind.Object)
	}
	if string(s.Data) != "hello" {
		t.Errorf("got %q", s.Data)
	}
}

func TestStreamWrongLength(t *testing.T) {
	in := "1 0 obj << /Length 99 >> stream\nabc\nendstream endobj"
	ind, err := NewScanner([]byte(in)).ParseIndirectObject()
	if err != nil {
		t.Fatalf("ParseIndirectObject: %v", err)
	}
	if got := string(ind.Object.(*Stream).Data); got != "abc" {
		t.Errorf("got %q, want abc", got)
	}
}

func TestStreamIndirectLength(t *testing.T) {
	in := "1 0 obj << /Length 2 0 R >> stream\nabcendstream\nendstream endobj"
	s := NewScanner([]byte(in))
	s.SetLengthResolver(func(ref IndirectRef) (int, bool) {
		return 12, ref.Number == 2
	})
	ind, err := s.ParseIndirectObject()
	if err != nil {
		t.Fatalf("ParseIndirectObject: %v", err)
	}
	if got := string(ind.Object.(*Stream).Data); got != "abcendstream" {
		t.Errorf("got %q", got)
	}
}

func TestMissingEndobj(t *testing.T) {
	s := NewScanner([]byte("1 0 obj (x)\n2 0 obj (y) endobj"))
	first, err := s.ParseIndirectObject()
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := s.ParseIndirectObject()
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.Object.String() != "x" || second.Object.String() != "y" {
		t.Errorf("got %v and %v", first.Object, second.Object)
	}
}
