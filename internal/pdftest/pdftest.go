// Package pdftest builds small PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Builder collects numbered objects and writes them with a correct
// cross-reference section.
type Builder struct {
	objs []string

	// XRefStream writes a cross-reference stream instead of a classic table.
	XRefStream bool
	// Trailer holds extra trailer entries, e.g. "/Encrypt 9 0 R".
	Trailer string
}

// New returns an empty builder.
func New() *Builder { return &Builder{} }

// Reserve allocates an object number to be filled in later with Set.
func (b *Builder) Reserve() int {
	b.objs = append(b.objs, "null")
	return len(b.objs)
}

// Add appends an object body and returns its number.
func (b *Builder) Add(body string) int {
	b.objs = append(b.objs, body)
	return len(b.objs)
}

// Set replaces the body of object num.
func (b *Builder) Set(num int, body string) {
	b.objs[num-1] = body
}

// AddStream appends a stream object. /Length is filled in.
func (b *Builder) AddStream(dict string, data []byte) int {
	return b.Add(Stream(dict, data))
}

// Stream formats a stream body with /Length set.
func Stream(dict string, data []byte) string {
	return fmt.Sprintf("<< %s /Length %d >>\nstream\n%s\nendstream", dict, len(data), data)
}

// Bytes writes the file with root as the catalog.
func (b *Builder) Bytes(root int) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.5\n%\xe2\xe3\xcf\xd3\n")

	offsets := make([]int, len(b.objs)+1)
	for i, body := range b.objs {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	start := buf.Len()
	if b.XRefStream {
		num := len(b.objs) + 1
		offsets = append(offsets, start)
		var rows bytes.Buffer
		rows.Write([]byte{0, 0, 0, 0, 0, 0xff, 0xff})
		for _, off := range offsets[1:] {
			rows.Write([]byte{1, byte(off >> 24), byte(off >> 16), byte(off >> 8), byte(off), 0, 0})
		}
		dict := fmt.Sprintf("/Type /XRef /W [1 4 2] /Size %d /Root %d 0 R %s", num+1, root, b.Trailer)
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, Stream(dict, rows.Bytes()))
	} else {
		fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(b.objs)+1)
		for _, off := range offsets[1:] {
			fmt.Fprintf(&buf, "%010d 00000 n \n", off)
		}
		fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R %s >>\n", len(b.objs)+1, root, b.Trailer)
	}
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", start)
	return buf.Bytes()
}

// Document returns a PDF with one page per content stream. Every page
// can use /F1 (Helvetica, WinAnsiEncoding).
func Document(contents ...string) []byte {
	b := New()
	catalog := b.Reserve()
	pages := b.Reserve()
	font := b.Add("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	kids := make([]string, 0, len(contents))
	for _, c := range contents {
		content := b.AddStream("", []byte(c))
		page := b.Add(fmt.Sprintf("<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792] /Contents %d 0 R >>", pages, content))
		kids = append(kids, fmt.Sprintf("%d 0 R", page))
	}
	b.Set(catalog, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pages))
	b.Set(pages, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /Resources << /Font << /F1 %d 0 R >> >> >>",
		strings.Join(kids, " "), len(kids), font))
	return b.Bytes(catalog)
}

// Text returns a content stream fragment showing s at (x, y) in 10pt F1.
// s is encoded to WinAnsi so that characters like '°' survive.
func Text(x, y float64, s string) string {
	if enc, err := charmap.Windows1252.NewEncoder().String(s); err == nil {
		s = enc
	}
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return fmt.Sprintf("BT /F1 10 Tf %g %g Td (%s) Tj ET\n", x, y, r.Replace(s))
}

// Row lays cells out left to right on baseline y, starting at x0 and
// stepping by pitch.
func Row(x0, pitch, y float64, cells ...string) string {
	var sb strings.Builder
	for i, c := range cells {
		if c == "" {
			continue
		}
		sb.WriteString(Text(x0+float64(i)*pitch, y, c))
	}
	return sb.String()
}
