package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"k8s.io/klog/v2"

	"github.com/tsawler/regmap/register"
)

// TextSource reads registers from the plain text of a datasheet, where a
// table row may wrap over several lines.
type TextSource struct {
	text string
	opts options
}

// NewTextSource returns a source over text. Only the marker options
// apply.
func NewTextSource(text string, opts ...Option) *TextSource {
	return &TextSource{text: text, opts: buildOptions(opts)}
}

// Registers returns the parsed registers, dropping warnings.
func (s *TextSource) Registers() ([]register.Register, error) {
	res, err := s.Extract()
	return res.Registers, err
}

// Extract scans the lines between the section markers. The table body
// starts two lines after the start marker, skipping the column titles.
// A line starting with a digit opens a row and any other line continues
// it.
func (s *TextSource) Extract() (Result, error) {
	var res Result
	parseLines(splitLines(s.text), s.opts, 0, &res)
	return res, nil
}

// parseLines runs the text algorithm over lines, tagging warnings with
// page.
func parseLines(lines []string, opts options, page int, res *Result) {
	start := -1
	for i, l := range lines {
		if strings.Contains(l, opts.startMarker) {
			start = i + 2
			break
		}
	}
	if start < 0 {
		klog.Warningf("section %q not found", opts.startMarker)
		res.warn(page, "section %q not found", opts.startMarker)
		return
	}
	klog.V(2).Infof("register table starts at line %d", start+1)

	var rows []string
	current := ""
	for _, l := range lines[minInt(start, len(lines)):] {
		if strings.Contains(l, opts.endMarker) {
			klog.V(2).Infof("found section end %q", opts.endMarker)
			break
		}
		l = strings.TrimSpace(l)
		switch {
		case l == "":
		case l[0] >= '0' && l[0] <= '9':
			if current != "" {
				rows = append(rows, current)
			}
			current = l
		case current != "":
			current += " " + l
		}
	}
	if current != "" {
		rows = append(rows, current)
	}

	before := len(res.Registers)
	for _, row := range rows {
		reg, err := ParseTextRow(row)
		if err != nil {
			klog.V(4).Infof("skipping row: %v", err)
			res.warn(page, "%v", err)
			continue
		}
		res.Registers = append(res.Registers, reg)
	}
	klog.Infof("parsed %d registers from %d rows", len(res.Registers)-before, len(rows))
}

var (
	leadingIndex = regexp.MustCompile(`(?s)^(\d+)[\s\p{Z}]+(.+)$`)
	addressPair  = regexp.MustCompile(`(?s)^(\d{5,})[\s\p{Z}]+(\d+)[\s\p{Z}]*(.*)$`)
	unitToken    = regexp.MustCompile(`^[\p{L}°%/]+$`)
)

// ParseTextRow parses one logical row of the form
//
//	index name... [unit] [divisor] access type address num_reg scope...
//
// The address is a token of five or more digits followed by the register
// count; when a row has several such pairs the rightmost one is used.
func ParseTextRow(row string) (register.Register, error) {
	m := leadingIndex.FindStringSubmatch(row)
	if m == nil {
		return register.Register{}, rowError(row, "no leading index")
	}
	index, err := strconv.Atoi(m[1])
	if err != nil {
		return register.Register{}, rowError(row, "index out of range")
	}
	rest := m[2]

	at, pair := lastAddressPair(rest)
	if pair == nil {
		return register.Register{}, rowError(row, "no address and register count")
	}
	address, err1 := strconv.Atoi(pair[1])
	numReg, err2 := strconv.Atoi(pair[2])
	if err1 != nil || err2 != nil {
		return register.Register{}, rowError(row, "address out of range")
	}

	// PDF text dumps split "Second" in the type column.
	middle := strings.ReplaceAll(rest[:at], "Sec ond", "Second")
	tokens := strings.Fields(middle)
	if len(tokens) < 2 {
		return register.Register{}, rowError(row, "missing access or type")
	}

	reg := register.New()
	reg.Index = index
	reg.Address = address
	reg.NumReg = numReg
	reg.Scope = strings.TrimSpace(pair[3])
	reg.Access = tokens[len(tokens)-2]
	reg.Type = tokens[len(tokens)-1]

	name := tokens[:len(tokens)-2]
	if len(name) > 1 {
		if d, err := strconv.ParseFloat(name[len(name)-1], 64); err == nil && !math.IsInf(d, 0) && !math.IsNaN(d) {
			reg.Gain = register.GainFromDivisor(d)
			name = name[:len(name)-1]
		}
	}
	if len(name) > 1 && unitToken.MatchString(name[len(name)-1]) {
		reg.Unit = name[len(name)-1]
		name = name[:len(name)-1]
	}
	reg.Name = strings.Join(name, " ")
	return reg, nil
}

// lastAddressPair finds the rightmost address/count pair that starts a
// token and returns its offset and submatches.
func lastAddressPair(s string) (int, []string) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] < '0' || s[i] > '9' {
			continue
		}
		if i > 0 {
			if r, _ := utf8.DecodeLastRuneInString(s[:i]); !unicode.IsSpace(r) {
				continue
			}
		}
		if m := addressPair.FindStringSubmatch(s[i:]); m != nil {
			return i, m
		}
	}
	return 0, nil
}

var lineBreaks = strings.NewReplacer(
	"\r\n", "\n", "\r", "\n", "\v", "\n", "\f", "\n",
	"\u0085", "\n", "\u2028", "\n", "\u2029", "\n",
)

// splitLines keeps blank lines; a final line break does not start a line.
func splitLines(s string) []string {
	s = strings.TrimSuffix(lineBreaks.Replace(s), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
