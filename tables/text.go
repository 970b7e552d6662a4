package tables

import (
	"math"
	"sort"
	"strings"

	"github.com/tsawler/regmap/model"
)

// TextDetector finds tables from text alignment alone. Column boundaries
// come from the horizontal extent of cells on lines with several cells;
// every line that fits those columns becomes a row of the table. Wrapped
// cell text is not merged: a line whose first column is empty is a row of
// its own, and the caller decides what it continues.
//
// Cells are assumed to be top aligned; a vertically centered single-line
// cell next to a wrapped one can land on a row of its own.
type TextDetector struct {
	config Config
}

// NewTextDetector creates a detector with the default configuration.
func NewTextDetector() *TextDetector {
	return &TextDetector{config: DefaultConfig()}
}

// Name returns the detector's identifier ("text").
func (d *TextDetector) Name() string { return "text" }

// Configure sets the detector configuration.
func (d *TextDetector) Configure(config Config) error {
	d.config = config
	return nil
}

// segment is one cell's worth of words on a line.
type segment struct {
	text        string
	left, right float64
	bbox        model.BBox
}

type span struct{ left, right float64 }

// Column is the horizontal extent of a table column in user space.
type Column struct {
	Left, Right float64
}

// Detect finds tables on a page from its words.
func (d *TextDetector) Detect(page *model.Page) ([]*model.Table, error) {
	return d.DetectColumns(page, d.Columns(page))
}

// Columns returns the column spans found on the page, left to right.
func (d *TextDetector) Columns(page *model.Page) []Column {
	lines := groupLines(page.Words, d.config.AlignmentTolerance)
	segs := make([][]segment, len(lines))
	for i, l := range lines {
		segs[i] = d.segments(l)
	}
	spans := d.columns(segs)
	cols := make([]Column, len(spans))
	for i, s := range spans {
		cols[i] = Column{Left: s.left, Right: s.right}
	}
	return cols
}

// DetectColumns finds tables laid out on the given columns. It serves a
// table continued from an earlier page, where a column can be empty on
// every line of this one.
func (d *TextDetector) DetectColumns(page *model.Page, columns []Column) ([]*model.Table, error) {
	lines := groupLines(page.Words, d.config.AlignmentTolerance)
	if len(lines) == 0 || len(columns) < d.config.MinCols {
		return nil, nil
	}
	cols := make([]span, len(columns))
	for i, c := range columns {
		cols[i] = span{c.Left, c.Right}
	}

	var tables []*model.Table
	var cur *model.Table
	var lastY, lastH float64
	flush := func() {
		if cur != nil && cur.RowCount() >= d.config.MinRows {
			tables = append(tables, cur)
		}
		cur = nil
	}

	for _, l := range lines {
		cells, ok := assign(d.segments(l), cols)
		if !ok {
			flush()
			continue
		}
		if cur != nil && lastY-l.y > d.config.MaxRowGap*math.Max(lastH, l.height) {
			flush()
		}
		if cur == nil {
			cur = &model.Table{Page: page.Number}
		}
		cur.Rows = append(cur.Rows, cells)
		cur.BBox = cur.BBox.Union(l.bbox())
		lastY, lastH = l.y, l.height
	}
	flush()
	return tables, nil
}

// segments splits a line where the gap between words is wider than a cell gap.
func (d *TextDetector) segments(l line) []segment {
	gap := d.config.MaxCellGap
	if gap <= 0 {
		gap = 0.8 * l.height
	}
	var out []segment
	for _, w := range l.words {
		if n := len(out); n > 0 && w.BBox.Left()-out[n-1].right <= gap {
			s := &out[n-1]
			s.text += " " + w.Text
			s.right = math.Max(s.right, w.BBox.Right())
			s.bbox = s.bbox.Union(w.BBox)
			continue
		}
		out = append(out, segment{text: w.Text, left: w.BBox.Left(), right: w.BBox.Right(), bbox: w.BBox})
	}
	return out
}

// columns merges the cell extents of every line with at least MinCols cells
// into non-overlapping column spans, left to right.
func (d *TextDetector) columns(segs [][]segment) []span {
	var all []span
	for _, line := range segs {
		if len(line) < d.config.MinCols {
			continue
		}
		for _, s := range line {
			all = append(all, span{s.left, s.right})
		}
	}
	if len(all) == 0 {
		return nil
	}
	sort.Slice(all, func(i, j int) bool { return all[i].left < all[j].left })

	cols := []span{all[0]}
	for _, s := range all[1:] {
		last := &cols[len(cols)-1]
		if s.left <= last.right+d.config.AlignmentTolerance {
			last.right = math.Max(last.right, s.right)
			continue
		}
		cols = append(cols, s)
	}
	return cols
}

// assign places each segment in the column it overlaps most, or the
// nearest one. A lone segment that straddles several columns is prose,
// not a table line.
func assign(segs []segment, cols []span) ([]model.Cell, bool) {
	if len(segs) == 1 {
		hits := 0
		for _, c := range cols {
			if overlap(segs[0].left, segs[0].right, c) > 0 {
				hits++
			}
		}
		if hits > 1 {
			return nil, false
		}
	}

	cells := make([]model.Cell, len(cols))
	for _, s := range segs {
		best, bestScore := 0, math.Inf(-1)
		for i, c := range cols {
			score := overlap(s.left, s.right, c)
			if score <= 0 {
				mid := (s.left + s.right) / 2
				score = -math.Min(math.Abs(mid-c.left), math.Abs(mid-c.right))
			}
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		cells[best].Text = strings.TrimSpace(strings.Join(nonEmpty(cells[best].Text, s.text), " "))
		cells[best].BBox = cells[best].BBox.Union(s.bbox)
	}
	return cells, true
}

func overlap(left, right float64, c span) float64 {
	return math.Min(right, c.right) - math.Max(left, c.left)
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
