// Package register holds a parsed Modbus register definition and its
// Webdyn CSV row.
package register

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Fixed columns of a Webdyn definition row.
const (
	holdingRegister = 3 // info1
	unused          = 0 // info5 placeholder
	rowTerminator   = 4 // last column
)

// Register is one row of a register definition table.
type Register struct {
	Index   int
	Name    string
	Access  string
	Type    string
	Unit    string
	Gain    float64
	Address int
	NumReg  int
	Scope   string // parsed for context, never written
}

// New returns a register with the defaults a parsed row starts from.
func New() Register {
	return Register{Access: "RO", Gain: 1.0}
}

// GainFromDivisor turns a documented divisor into a multiplicative gain.
// A zero divisor leaves the gain at 1.
func GainFromDivisor(d float64) float64 {
	if d == 0 {
		return 1.0
	}
	return 1 / d
}

// Info2 is the register address, with the byte length appended for strings.
func (r Register) Info2() string {
	if r.Type == "STR" {
		return strconv.Itoa(r.Address) + "_" + strconv.Itoa(r.NumReg*2)
	}
	return strconv.Itoa(r.Address)
}

// Fields returns the eleven CSV columns in order.
func (r Register) Fields() []string {
	return []string{
		strconv.Itoa(r.Index),
		strconv.Itoa(holdingRegister),
		r.Info2(),
		r.Type,
		"",
		r.Name,
		Tag(r.Name),
		FormatGain(r.Gain),
		strconv.Itoa(unused),
		r.Unit,
		strconv.Itoa(rowTerminator),
	}
}

// CSVRow joins the fields with ';'. Field values are written as they are.
func (r Register) CSVRow() string {
	return strings.Join(r.Fields(), ";")
}

var tagStrip = strings.NewReplacer("[", "", "]", "", ".", "")

var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tag derives the compact identifier of a register name:
// "Active Power [kW]" becomes "ActivePowerKw".
func Tag(name string) string {
	var sb strings.Builder
	for _, w := range wordRe.FindAllString(strings.ToLower(tagStrip.Replace(name)), -1) {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		sb.WriteString(string(runes))
	}
	return sb.String()
}

// FormatGain writes 1 as "1" and anything else with ten decimals, trailing
// zeros and point removed: 0.1 becomes "0.1", 1/3 becomes "0.3333333333".
func FormatGain(g float64) string {
	if g == 1.0 {
		return "1"
	}
	s := strconv.FormatFloat(g, 'f', 10, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
