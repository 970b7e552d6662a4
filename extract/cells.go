package extract

import (
	"strconv"
	"strings"

	"k8s.io/klog/v2"

	"github.com/tsawler/regmap/register"
)

// Column order of a register definition table.
const (
	colIndex = iota
	colName
	colAccess
	colType
	colUnit
	colGain
	colAddress
	colNumReg
	colScope
	minCells
)

// normalizeCell folds a multi-line cell onto one line.
func normalizeCell(c string) string {
	return strings.TrimSpace(strings.ReplaceAll(c, "\n", " "))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseCells parses one table row laid out as
//
//	index | name | access | type | unit | gain | address | num_reg | scope
//
// Extra cells are ignored. The gain cell, when it holds a non-negative
// integer, is a divisor.
func ParseCells(cells []string) (register.Register, error) {
	row := strings.Join(cells, " | ")
	if len(cells) < minCells {
		return register.Register{}, rowError(row, "fewer than 9 cells")
	}
	c := make([]string, minCells)
	for i := range c {
		c[i] = normalizeCell(cells[i])
	}
	if !isDigits(c[colIndex]) {
		return register.Register{}, rowError(row, "first cell is not an index")
	}

	index, err := strconv.Atoi(c[colIndex])
	if err != nil {
		return register.Register{}, rowError(row, "invalid index")
	}
	address, err := strconv.Atoi(c[colAddress])
	if err != nil {
		return register.Register{}, rowError(row, "invalid address")
	}
	numReg, err := strconv.Atoi(c[colNumReg])
	if err != nil {
		return register.Register{}, rowError(row, "invalid register count")
	}

	reg := register.New()
	reg.Index = index
	reg.Name = c[colName]
	reg.Access = c[colAccess]
	reg.Type = c[colType]
	reg.Unit = c[colUnit]
	reg.Address = address
	reg.NumReg = numReg
	reg.Scope = c[colScope]
	if isDigits(c[colGain]) {
		if d, err := strconv.ParseFloat(c[colGain], 64); err == nil {
			reg.Gain = register.GainFromDivisor(d)
		}
	}
	return reg, nil
}

type rowState int

const (
	stateNoRecord   rowState = iota
	stateHaveRecord          // the last register in the result may take scope text
)

// rowClassifier assigns table rows to registers. A row whose first cell
// does not start with a digit continues the scope of the register parsed
// just before it; a data row that fails to parse ends that association.
type rowClassifier struct {
	state rowState
	res   *Result
}

func newRowClassifier(res *Result) *rowClassifier {
	return &rowClassifier{state: stateNoRecord, res: res}
}

func (c *rowClassifier) add(page int, cells []string) {
	if isContinuation(cells) {
		text := joinNonEmpty(cells)
		switch {
		case text == "":
		case c.state == stateHaveRecord:
			last := &c.res.Registers[len(c.res.Registers)-1]
			last.Scope += " " + text
		default:
			klog.V(4).Infof("page %d: dropping continuation without a register: %q", page, text)
		}
		return
	}

	reg, err := ParseCells(cells)
	if err != nil {
		klog.V(4).Infof("page %d: skipping row: %v", page, err)
		c.res.warn(page, "%v", err)
		c.state = stateNoRecord
		return
	}
	c.res.Registers = append(c.res.Registers, reg)
	c.state = stateHaveRecord
}

func isContinuation(cells []string) bool {
	if len(cells) == 0 {
		return true
	}
	first := normalizeCell(cells[0])
	return first == "" || first[0] < '0' || first[0] > '9'
}

func joinNonEmpty(cells []string) string {
	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		if c = normalizeCell(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}
