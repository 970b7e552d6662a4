// Package format tells the register sources apart: PDF datasheets, HTML
// manuals and plain text dumps.
package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// HTML indicates an HTML document.
	HTML
	// Text indicates a plain text dump.
	Text
)

// sniffLen is how much of a file the content checks look at.
const sniffLen = 1024

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case HTML:
		return "HTML"
	case Text:
		return "Text"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case HTML:
		return ".html"
	case Text:
		return ".txt"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return PDF
	case ".html", ".htm", ".xhtml":
		return HTML
	case ".txt", ".text":
		return Text
	default:
		return Unknown
	}
}

// DetectFromMagic checks the start of a file. PDF and HTML are recognized
// by their signatures; anything else that is free of NUL bytes and mostly
// valid UTF-8 or single-byte text counts as Text.
func DetectFromMagic(data []byte) Format {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	if len(data) == 0 {
		return Unknown
	}

	// The PDF header may follow some junk bytes.
	if bytes.Contains(data, []byte("%PDF-")) {
		return PDF
	}

	if detectHTMLMagic(data) {
		return HTML
	}

	if looksLikeText(data) {
		return Text
	}

	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.TrimLeft(data, " \t\r\n\f")
	if len(data) == 0 {
		return false
	}

	upper := strings.ToUpper(string(data))
	for _, sig := range []string{"<!DOCTYPE HTML", "<HTML", "<HEAD", "<BODY", "<TABLE", "<!--"} {
		if strings.HasPrefix(upper, sig) {
			return sig != "<!--" || strings.Contains(upper, "<HTML")
		}
	}
	// XML declaration followed by html-like content could be XHTML
	return strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML")
}

// looksLikeText rejects binary data. UTF-16 text starts with a byte order
// mark and is accepted despite its NUL bytes.
func looksLikeText(data []byte) bool {
	if bytes.HasPrefix(data, []byte{0xff, 0xfe}) || bytes.HasPrefix(data, []byte{0xfe, 0xff}) {
		return true
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	control := 0
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		data = data[size:]
		if r < 0x20 && r != '\n' && r != '\r' && r != '\t' && r != '\f' {
			control++
		}
	}
	return control == 0
}

// DetectFromReader inspects the first kilobyte of r.
func DetectFromReader(r io.Reader) (Format, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectFromMagic(head[:n]), nil
}

// DetectFile identifies the file at path. PDF and HTML signatures win;
// otherwise an HTML extension wins over text content, and the extension
// decides for content that is not text.
func DetectFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	format, err := DetectFromReader(f)
	if err != nil {
		return Unknown, fmt.Errorf("reading file: %w", err)
	}
	switch ext := Detect(path); {
	case format == PDF, format == HTML:
	case ext == HTML:
		// Markup that starts with an unlisted tag reads as text.
		format = HTML
	case format == Unknown:
		format = ext
	}
	return format, nil
}
