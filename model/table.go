package model

import (
	"fmt"
	"strings"
)

// Table represents a table with cells organized in rows and columns.
// Rows are ordered top to bottom as they appear on the page.
type Table struct {
	Page int // 1-indexed page the table was found on
	Rows [][]Cell
	BBox BBox
}

// Cell represents a table cell
type Cell struct {
	Text string
	BBox BBox
}

// NewTable creates a new table with given dimensions
func NewTable(rows, cols int) *Table {
	table := &Table{
		Rows: make([][]Cell, rows),
	}
	for i := 0; i < rows; i++ {
		table.Rows[i] = make([]Cell, cols)
	}
	return table
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the first row
func (t *Table) ColCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// GetCell returns the cell at the given row and column (0-indexed)
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// AppendText adds text to a cell, separating it from existing content with a
// space, and grows the cell's bounding box.
func (c *Cell) AppendText(text string, bbox BBox) {
	if text == "" {
		return
	}
	if c.Text != "" {
		c.Text += " "
	}
	c.Text += text
	c.BBox = c.BBox.Union(bbox)
}

// CellTexts returns the text of every cell, row by row.
func (t *Table) CellTexts() [][]string {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		texts := make([]string, len(row))
		for j, cell := range row {
			texts[j] = cell.Text
		}
		rows[i] = texts
	}
	return rows
}

// String renders the table as tab-separated lines, mainly for debugging.
func (t *Table) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "table p%d %dx%d\n", t.Page, t.RowCount(), t.ColCount())
	for _, row := range t.CellTexts() {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}
