package extract

import (
	"fmt"
	"sort"
	"strings"

	"k8s.io/klog/v2"

	"github.com/tsawler/regmap/model"
	"github.com/tsawler/regmap/reader"
	"github.com/tsawler/regmap/register"
	"github.com/tsawler/regmap/tables"
)

// DocumentSource reads registers from the tables of a PDF datasheet.
type DocumentSource struct {
	path string
	opts options
}

// NewDocumentSource returns a source over the PDF at path.
func NewDocumentSource(path string, opts ...Option) *DocumentSource {
	return &DocumentSource{path: path, opts: buildOptions(opts)}
}

// Registers returns the parsed registers, dropping warnings.
func (s *DocumentSource) Registers() ([]register.Register, error) {
	res, err := s.Extract()
	return res.Registers, err
}

// Extract finds the page range of the register section and classifies
// the rows of every table on it, in page order. The section starts on
// the first page that names the start marker but not the end marker, so
// a table of contents does not count, and runs up to the first later
// page naming the end marker, or through the last page.
//
// The file is read in full and released before Extract returns. A file
// or page that cannot be read fails the whole extraction.
func (s *DocumentSource) Extract() (Result, error) {
	r, err := reader.Open(s.path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer r.Close()

	res, err := extractDocument(r, s.opts)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", s.path, err)
	}
	return res, nil
}

func extractDocument(r *reader.Reader, opts options) (Result, error) {
	numbers, err := pageNumbers(r, opts.pages)
	if err != nil {
		return Result{}, err
	}

	var res Result
	classifier := newRowClassifier(&res)
	detector := tables.NewTextDetector()
	var columns []tables.Column
	first, last := 0, 0
	for _, num := range numbers {
		page, err := LoadPage(r, num)
		if err != nil {
			return Result{}, err
		}
		text := tables.PageText(page.Words)

		if first == 0 {
			if !strings.Contains(text, opts.startMarker) || strings.Contains(text, opts.endMarker) {
				continue
			}
			first = num
			klog.Infof("register section starts on page %d", num)
		} else if strings.Contains(text, opts.endMarker) {
			klog.Infof("register section ends before page %d", num)
			break
		}
		last = num

		// A table continued from an earlier page keeps that page's columns
		// when some of them are empty on every line here.
		if cols := detector.Columns(page); len(cols) >= minCells || len(columns) < minCells {
			columns = cols
		}
		found, err := detector.DetectColumns(page, columns)
		if err != nil {
			return Result{}, fmt.Errorf("page %d: %w", num, err)
		}
		if len(found) == 0 {
			klog.V(2).Infof("page %d: no tables", num)
		}
		for _, t := range found {
			for _, row := range t.Rows {
				classifier.add(num, cellTexts(row))
			}
		}
	}

	if first == 0 {
		if opts.recognizer != nil {
			klog.Infof("no text layer names %q, recognizing page images", opts.startMarker)
			return recognizeDocument(r, numbers, opts)
		}
		klog.Warningf("section %q not found on any page", opts.startMarker)
		res.warn(0, "section %q not found", opts.startMarker)
		return res, nil
	}
	klog.Infof("parsed %d registers from pages %d-%d", len(res.Registers), first, last)
	return res, nil
}

// recognizeDocument runs OCR on every image of the selected pages and
// parses the joined page texts like a text dump.
func recognizeDocument(r *reader.Reader, numbers []int, opts options) (Result, error) {
	var res Result
	res.warn(0, "no text layer contains %q; using OCR", opts.startMarker)

	var texts []string
	for _, num := range numbers {
		page, err := r.GetPage(num - 1)
		if err != nil {
			return Result{}, fmt.Errorf("page %d: %w", num, err)
		}
		images, err := r.ExtractPageImages(page)
		if err != nil {
			return Result{}, fmt.Errorf("page %d: %w", num, err)
		}
		for _, img := range images {
			data, err := img.ToPNG()
			if err != nil {
				klog.V(4).Infof("page %d: skipping image %s: %v", num, img.Name, err)
				continue
			}
			txt, err := opts.recognizer.RecognizeImage(data)
			if err != nil {
				return Result{}, fmt.Errorf("page %d: OCR of %s failed: %w", num, img.Name, err)
			}
			texts = append(texts, txt)
		}
	}
	klog.Infof("recognized %d page images", len(texts))

	parseLines(splitLines(strings.Join(texts, "\n")), opts, 0, &res)
	return res, nil
}

// pageNumbers returns the selected 1-indexed pages in document order.
func pageNumbers(r *reader.Reader, selected []int) ([]int, error) {
	n, err := r.PageCount()
	if err != nil {
		return nil, fmt.Errorf("failed to count pages: %w", err)
	}
	if selected == nil {
		all := make([]int, n)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	seen := make(map[int]bool)
	var out []int
	for _, p := range selected {
		if p >= 1 && p <= n && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Ints(out)
	return out, nil
}

// LoadPage extracts the words of a 1-indexed page.
func LoadPage(r *reader.Reader, number int) (*model.Page, error) {
	p, err := r.GetPage(number - 1)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", number, err)
	}
	frags, err := r.ExtractTextFragments(p)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", number, err)
	}
	width, err := p.Width()
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", number, err)
	}
	height, err := p.Height()
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", number, err)
	}

	page := model.NewPage(number, width, height)
	page.Words = tables.Words(frags)
	return page, nil
}

// DocumentTables returns the tables the text detector finds on the
// selected pages of a PDF, regardless of section markers. Columns carry
// over between pages the way Extract sees them.
func DocumentTables(path string, opts ...Option) ([]*model.Table, error) {
	o := buildOptions(opts)
	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer r.Close()

	numbers, err := pageNumbers(r, o.pages)
	if err != nil {
		return nil, err
	}
	detector := tables.NewTextDetector()
	var columns []tables.Column
	var out []*model.Table
	for _, num := range numbers {
		page, err := LoadPage(r, num)
		if err != nil {
			return nil, err
		}
		if cols := detector.Columns(page); len(cols) >= minCells || len(columns) < minCells {
			columns = cols
		}
		found, err := detector.DetectColumns(page, columns)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", num, err)
		}
		for _, t := range found {
			page.AddTable(t)
		}
		out = append(out, page.Tables...)
	}
	return out, nil
}

func cellTexts(row []model.Cell) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = c.Text
	}
	return out
}
