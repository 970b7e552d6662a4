// Package core reads the object layer of a PDF file.
//
// Objects are parsed from an in-memory copy of the file with a [Scanner].
// [LoadXRef] builds the cross-reference table from classic xref sections,
// cross-reference streams (PDF 1.5+) or both, following /Prev chains of
// incremental updates. When the startxref pointer or the table itself is
// damaged, [RebuildXRef] recovers the object offsets by scanning the file.
//
// [ObjectStream] unpacks compressed objects, and [Stream.Decode] applies the
// stream's filter chain (Flate and LZW with predictors, ASCIIHex, ASCII85,
// RunLength and CCITTFax).
package core
