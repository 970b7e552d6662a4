package model

// Word is a whitespace-free run of text with its position on the page.
// Y is the baseline, matching the text extractor's fragments.
type Word struct {
	Text     string
	BBox     BBox
	FontSize float64
}

// Page represents a single page in a PDF document
type Page struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in points
	Height float64 // Page height in points

	Words  []Word
	Tables []*Table
}

// NewPage creates a new page with given dimensions
func NewPage(number int, width, height float64) *Page {
	return &Page{
		Number: number,
		Width:  width,
		Height: height,
	}
}

// AddTable appends a detected table to the page
func (p *Page) AddTable(t *Table) {
	t.Page = p.Number
	p.Tables = append(p.Tables, t)
}
