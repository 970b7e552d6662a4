// Package tables finds tables on PDF pages from the positions of their text.
//
// Fragments from the text extractor are split into words with [Words];
// [PageText] renders them line by line for keyword searches. Detectors
// implement [Detector] and are registered by name:
//
//	page := model.NewPage(1, 612, 792)
//	page.Words = tables.Words(fragments)
//	found, err := tables.GetDetector("text").Detect(page)
//
// The [TextDetector] needs no ruling lines. Column boundaries are taken
// from lines with at least [Config].MinCols cells, cells being separated by
// gaps wider than [Config].MaxCellGap. Every line that fits the columns
// becomes a row, wrapped lines included. [TextDetector.DetectColumns] takes
// the columns from an earlier page for a table that continues.
// A line of prose that straddles several columns, or a vertical gap of more
// than [Config].MaxRowGap line heights, ends the current table.
package tables
