// Package model holds the positioned primitives shared by the PDF text
// extraction and table detection stages.
//
// # Geometry
//
//   - [Point] - 2D point in PDF user space
//   - [BBox] - axis-aligned rectangle, origin at the bottom-left
//   - [Matrix] - 2D affine transformation matrix used by the text state
//
// # Page content
//
// A [Page] carries the [Word] values found on it and the [Table] values the
// detector built from them. Table cells are plain text; a missing cell is the
// empty string, so callers can index rows without bounds juggling:
//
//	for _, row := range table.CellTexts() {
//	    fmt.Println(strings.Join(row, " | "))
//	}
package model
