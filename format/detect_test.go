package format

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, "PDF"},
		{HTML, "HTML"},
		{Text, "Text"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, ".pdf"},
		{HTML, ".html"},
		{Text, ".txt"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"datasheet.pdf", PDF},
		{"datasheet.PDF", PDF},
		{"manual.html", HTML},
		{"manual.HTM", HTML},
		{"manual.xhtml", HTML},
		{"dump.txt", Text},
		{"dump.TEXT", Text},
		{"datasheet.docx", Unknown},
		{"datasheet", Unknown},
		{"", Unknown},
		{"/path/to/SUN2000.pdf", PDF},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"PDF magic bytes", []byte("%PDF-1.4"), PDF},
		{"PDF after junk", []byte("\r\n\x00garbage%PDF-1.7\n"), PDF},
		{"HTML with DOCTYPE", []byte("<!DOCTYPE html>\n<html>"), HTML},
		{"HTML with html tag", []byte("<html><head>"), HTML},
		{"HTML fragment", []byte("<table><tr><td>1</td></tr></table>"), HTML},
		{"HTML with BOM and comment", []byte("\xef\xbb\xbf<!-- saved -->\n<html>"), HTML},
		{"HTML with whitespace before DOCTYPE", []byte("  \n  <!DOCTYPE HTML PUBLIC"), HTML},
		{"text", []byte("3 Register Definitions\n1 Model RO STR 30000 15\n"), Text},
		{"windows-1252 text", []byte("Temperature \xb0C\r\n"), Text},
		{"utf-16 text", []byte("\xff\xfe3\x00 \x00"), Text},
		{"comment only", []byte("<!-- not html -->"), Text},
		{"ZIP magic bytes", []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00}, Unknown},
		{"control bytes", []byte{0x01, 0x02, 0x03, 0x04, 0x05}, Unknown},
		{"empty data", []byte{}, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader(t *testing.T) {
	data := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte{0}, 4096)...)
	format, err := DetectFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != PDF {
		t.Errorf("DetectFromReader() = %v, want PDF", format)
	}
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		path string
		want Format
	}{
		{write("misnamed.txt", []byte("%PDF-1.5\n")), PDF},
		{write("manual.html", []byte("<p>3 Register Definitions</p>")), HTML},
		{write("dump", []byte("3 Register Definitions\n")), Text},
		{write("scan.pdf", []byte{0, 1, 2}), PDF},
		{write("empty.html", nil), HTML},
		{write("blob.bin", []byte{0, 1, 2}), Unknown},
	}
	for _, tt := range tests {
		got, err := DetectFile(tt.path)
		if err != nil {
			t.Fatalf("DetectFile(%s): %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("DetectFile(%s) = %v, want %v", filepath.Base(tt.path), got, tt.want)
		}
	}

	if _, err := DetectFile(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}
