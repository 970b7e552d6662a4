package regmap

import (
	"errors"
	"fmt"

	"github.com/tsawler/regmap/extract"
)

var (
	// ErrNoInput is returned when neither a file nor text was given.
	ErrNoInput = errors.New("no input: a file path or text is required")

	// ErrNoRegisters is returned by CSV and WriteFile when the input held
	// no register that could be parsed.
	ErrNoRegisters = errors.New("no registers found")
)

// WriteError reports a failure to save a definition file. Parse problems
// are never reported as a WriteError.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Warning is a non-fatal problem found during extraction.
type Warning = extract.Warning

// FormatWarnings joins warnings one per line.
func FormatWarnings(warnings []Warning) string {
	return extract.FormatWarnings(warnings)
}
