package extract

import (
	"fmt"
	"strings"

	"github.com/tsawler/regmap/register"
)

// Source produces register records from one input.
type Source interface {
	Extract() (Result, error)
}

var (
	_ Source = (*TextSource)(nil)
	_ Source = (*DocumentSource)(nil)
	_ Source = (*HTMLSource)(nil)
)

// Result is the outcome of one extraction. Registers keep the order in
// which their rows were found.
type Result struct {
	Registers []register.Register
	Warnings  []Warning
}

func (r *Result) warn(page int, format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, Warning{Page: page, Message: fmt.Sprintf(format, args...)})
}

// Warning is a problem that did not stop extraction, such as a missing
// section or a row that could not be parsed.
type Warning struct {
	Page    int // 1-indexed, 0 when the input has no pages
	Message string
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return w.Message
}

// FormatWarnings joins warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// RowError explains why a row did not yield a register.
type RowError struct {
	Row    string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: %q", e.Reason, e.Row)
}

func rowError(row, reason string) *RowError {
	return &RowError{Row: row, Reason: reason}
}
