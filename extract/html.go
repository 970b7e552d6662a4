package extract

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"k8s.io/klog/v2"

	"github.com/tsawler/regmap/register"
)

// HTMLSource reads registers from the tables of an HTML manual.
type HTMLSource struct {
	data []byte
	opts options
}

// NewHTMLSource returns a source over an HTML document. The character
// set is taken from a byte order mark or a <meta> declaration.
func NewHTMLSource(data []byte, opts ...Option) *HTMLSource {
	return &HTMLSource{data: data, opts: buildOptions(opts)}
}

// Registers returns the parsed registers, dropping warnings.
func (s *HTMLSource) Registers() ([]register.Register, error) {
	res, err := s.Extract()
	return res.Registers, err
}

// Extract classifies the rows of the tables that follow the start marker
// in document order, up to the end marker. Header rows made only of <th>
// cells are skipped. If the end marker comes before any table, as in a
// table of contents, the search for the start marker begins again.
func (s *HTMLSource) Extract() (Result, error) {
	r, err := charset.NewReader(bytes.NewReader(s.data), "text/html")
	if err != nil {
		return Result{}, fmt.Errorf("detecting charset: %w", err)
	}
	doc, err := html.Parse(r)
	if err != nil {
		return Result{}, fmt.Errorf("parsing HTML: %w", err)
	}

	w := &htmlWalker{opts: s.opts}
	w.classifier = newRowClassifier(&w.res)
	w.visit(doc)

	switch w.state {
	case sectionBefore:
		klog.Warningf("section %q not found", s.opts.startMarker)
		w.res.warn(0, "section %q not found", s.opts.startMarker)
	default:
		klog.Infof("parsed %d registers from %d tables", len(w.res.Registers), w.tables)
	}
	return w.res, nil
}

type sectionState int

const (
	sectionBefore sectionState = iota
	sectionInside
	sectionAfter
)

type htmlWalker struct {
	opts       options
	state      sectionState
	tables     int
	res        Result
	classifier *rowClassifier
}

func (w *htmlWalker) visit(n *html.Node) {
	if w.state == sectionAfter {
		return
	}
	switch n.Type {
	case html.TextNode:
		w.marker(n.Data)
		return
	case html.ElementNode:
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "table" {
			if w.state == sectionInside {
				w.table(n)
			}
			return
		}
		// Markers in headings are often split over inline elements.
		if isTextBlock(n.Data) && !isBlockContainer(n) {
			w.marker(getTextContent(n))
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.visit(c)
	}
}

func (w *htmlWalker) marker(text string) {
	text = collapseSpace(text)
	switch w.state {
	case sectionBefore:
		if strings.Contains(text, w.opts.startMarker) && !strings.Contains(text, w.opts.endMarker) {
			w.state = sectionInside
		}
	case sectionInside:
		if !strings.Contains(text, w.opts.endMarker) {
			return
		}
		if w.tables == 0 {
			w.state = sectionBefore
			return
		}
		w.state = sectionAfter
	}
}

func (w *htmlWalker) table(n *html.Node) {
	w.tables++
	for _, row := range tableRows(n) {
		w.classifier.add(0, row)
	}
}

// tableRows returns the cell texts of a table's own rows. A cell with
// colspan is followed by empty cells so that later columns stay aligned.
func tableRows(table *html.Node) [][]string {
	var rows [][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead", "tbody", "tfoot":
				walk(c)
			case "tr":
				if row, header := tableRow(c); len(row) > 0 && !header {
					rows = append(rows, row)
				}
			}
		}
	}
	walk(table)
	return rows
}

func tableRow(tr *html.Node) (cells []string, header bool) {
	header = true
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		if c.Data == "td" {
			header = false
		}
		cells = append(cells, collapseSpace(getTextContent(c)))
		for i := 1; i < colSpan(c); i++ {
			cells = append(cells, "")
		}
	}
	return cells, header
}

func colSpan(n *html.Node) int {
	for _, attr := range n.Attr {
		if attr.Key == "colspan" {
			if v, err := strconv.Atoi(strings.TrimSpace(attr.Val)); err == nil && v > 1 && v <= 64 {
				return v
			}
		}
	}
	return 1
}

// shouldSkipElement returns true if the element should be skipped during content extraction.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed", "head":
		return true
	}
	return false
}

func isTextBlock(tagName string) bool {
	switch tagName {
	case "p", "div", "li", "dt", "dd", "caption", "pre", "blockquote", "section", "article", "header",
		"h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// isBlockContainer returns true if the element is a block container with block-level children.
func isBlockContainer(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			switch c.Data {
			case "div", "p", "ul", "ol", "table", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "article", "section":
				return true
			}
		}
	}
	return false
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return strings.TrimSpace(result.String())
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			result.WriteString("\n")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6", "tr":
			result.WriteString(" ")
		}
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
