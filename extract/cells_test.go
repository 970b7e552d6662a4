package extract

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/tsawler/regmap/register"
)

func TestParseCells(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  register.Register
	}{
		{
			name:  "divisor",
			cells: []string{"1", "Phase A voltage", "RO", "U16", "V", "10", "32069", "1", "Grid"},
			want:  register.Register{Index: 1, Name: "Phase A voltage", Access: "RO", Type: "U16", Unit: "V", Gain: 0.1, Address: 32069, NumReg: 1, Scope: "Grid"},
		},
		{
			name:  "wrapped cells",
			cells: []string{" 2 ", "Rated\npower", "RO", "U32", "kW", "1000", "30073", "2", "", "extra"},
			want:  register.Register{Index: 2, Name: "Rated power", Access: "RO", Type: "U32", Unit: "kW", Gain: 0.001, Address: 30073, NumReg: 2},
		},
		{
			name:  "zero divisor",
			cells: []string{"3", "Status", "RO", "U16", "", "0", "32089", "1", ""},
			want:  register.Register{Index: 3, Name: "Status", Access: "RO", Type: "U16", Gain: 1, Address: 32089, NumReg: 1},
		},
		{
			name:  "gain not an integer",
			cells: []string{"4", "Power factor", "RO", "I16", "", "0.001", "32084", "1", ""},
			want:  register.Register{Index: 4, Name: "Power factor", Access: "RO", Type: "I16", Gain: 1, Address: 32084, NumReg: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCells(tt.cells)
			assert.NilError(t, err)
			assert.DeepEqual(t, got, tt.want)
		})
	}
}

func TestParseCellsRejects(t *testing.T) {
	tests := []struct {
		name   string
		cells  []string
		reason string
	}{
		{"too few", []string{"1", "Model", "RO", "STR", "", "", "30000", "15"}, "fewer than 9 cells"},
		{"no index", []string{"No.", "Name", "R/W", "Type", "Unit", "Gain", "Address", "Quantity", "Scope"}, "first cell is not an index"},
		{"index with suffix", []string{"1a", "Model", "RO", "STR", "", "", "30000", "15", ""}, "first cell is not an index"},
		{"address", []string{"1", "Model", "RO", "STR", "", "", "0x7530", "15", ""}, "invalid address"},
		{"count", []string{"1", "Model", "RO", "STR", "", "", "30000", "", ""}, "invalid register count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCells(tt.cells)
			var rowErr *RowError
			assert.Assert(t, errors.As(err, &rowErr))
			assert.Equal(t, rowErr.Reason, tt.reason)
		})
	}
}

func cells(first, scope string) []string {
	return []string{first, "", "", "", "", "", "", "", scope}
}

func TestRowClassifier(t *testing.T) {
	var res Result
	c := newRowClassifier(&res)

	c.add(1, []string{"No.", "Name", "R/W", "Type", "Unit", "Gain", "Address", "Quantity", "Scope"})
	c.add(1, cells("", "orphan"))
	assert.Assert(t, is.Len(res.Registers, 0))
	assert.Equal(t, c.state, stateNoRecord)

	c.add(1, []string{"1", "Voltage", "RO", "U16", "V", "10", "32069", "1", "PV1"})
	assert.Equal(t, c.state, stateHaveRecord)
	before := res.Registers[0]

	c.add(2, cells("", "input\nvoltage"))
	c.add(2, []string{"", ""})
	got := res.Registers[0]
	assert.Equal(t, got.Scope, "PV1 input voltage")
	got.Scope = before.Scope
	assert.DeepEqual(t, got, before)

	// A bad data row ends the association with the previous register.
	c.add(2, []string{"2", "Broken", "RO", "U16", "", "", "n/a", "1", ""})
	assert.Equal(t, c.state, stateNoRecord)
	c.add(2, cells("", "stray"))
	assert.Equal(t, res.Registers[0].Scope, "PV1 input voltage")

	c.add(2, []string{"3", "Current", "RO", "I16", "A", "100", "32070", "1", ""})
	c.add(2, cells("", "signed"))
	assert.Assert(t, is.Len(res.Registers, 2))
	assert.Equal(t, res.Registers[1].Scope, " signed")
	assert.Assert(t, is.Len(res.Warnings, 1))
}
