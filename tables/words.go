package tables

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/tsawler/regmap/model"
	"github.com/tsawler/regmap/text"
)

// glyphGap is the gap, in ems, below which two words on a baseline are
// one word drawn in pieces (kerning, or one Tj per glyph).
const glyphGap = 0.15

// Words splits fragments on whitespace. A token's position is interpolated
// from its rune offset within the fragment.
func Words(frags []text.TextFragment) []model.Word {
	var words []model.Word
	for _, f := range frags {
		runes := []rune(f.Text)
		if len(runes) == 0 {
			continue
		}
		per := f.Width / float64(len(runes))
		start := -1
		for i := 0; i <= len(runes); i++ {
			if i < len(runes) && !unicode.IsSpace(runes[i]) {
				if start < 0 {
					start = i
				}
				continue
			}
			if start >= 0 {
				words = append(words, model.Word{
					Text:     string(runes[start:i]),
					BBox:     model.NewBBox(f.X+per*float64(start), f.Y, per*float64(i-start), f.Height),
					FontSize: f.FontSize,
				})
				start = -1
			}
		}
	}
	return words
}

// line is a run of words sharing a baseline, left to right.
type line struct {
	y      float64
	height float64
	words  []model.Word
}

func (l line) text() string {
	parts := make([]string, len(l.words))
	for i, w := range l.words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

func (l line) bbox() model.BBox {
	var b model.BBox
	for _, w := range l.words {
		b = b.Union(w.BBox)
	}
	return b
}

// groupLines clusters words by baseline, top of the page first, and glues
// together pieces of one word.
func groupLines(words []model.Word, tolerance float64) []line {
	if len(words) == 0 {
		return nil
	}
	sorted := make([]model.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Y > sorted[j].BBox.Y
	})

	var lines []line
	for _, w := range sorted {
		tol := math.Max(tolerance, 0.4*w.FontSize)
		if n := len(lines); n > 0 && math.Abs(lines[n-1].y-w.BBox.Y) <= tol {
			lines[n-1].words = append(lines[n-1].words, w)
			lines[n-1].height = math.Max(lines[n-1].height, w.BBox.Height)
			continue
		}
		lines = append(lines, line{y: w.BBox.Y, height: w.BBox.Height, words: []model.Word{w}})
	}

	for i := range lines {
		ws := lines[i].words
		sort.SliceStable(ws, func(a, b int) bool { return ws[a].BBox.X < ws[b].BBox.X })
		merged := ws[:1]
		for _, w := range ws[1:] {
			last := &merged[len(merged)-1]
			if w.BBox.Left()-last.BBox.Right() < glyphGap*math.Max(w.FontSize, 1) {
				last.Text += w.Text
				last.BBox = last.BBox.Union(w.BBox)
				continue
			}
			merged = append(merged, w)
		}
		lines[i].words = merged
	}
	return lines
}

// PageText returns the page's words as lines of text, top to bottom.
func PageText(words []model.Word) string {
	lines := groupLines(words, DefaultConfig().AlignmentTolerance)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text()
	}
	return strings.Join(out, "\n")
}
