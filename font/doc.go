// Package font decodes the fonts referenced by a page's text operators.
//
// A [Font] is built from a resource dictionary with [Load]. It knows how to
// split the bytes of a Tj or TJ string into character codes, how wide each
// code is, and how to turn the codes into Unicode:
//
//	f, err := font.Load("F1", fontDict, resolve)
//	text := f.DecodeString(raw)
//	advance := f.Advance(raw) * fontSize / 1000
//
// Decoding prefers a /ToUnicode CMap, then a UTF-16 byte order mark, then
// the simple-font encoding (WinAnsi, MacRoman, Standard or PDFDoc) patched
// by any /Differences array. Output is NFC-normalized with typographic
// ligatures expanded.
package font
