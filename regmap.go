// Package regmap converts Modbus register documentation into Webdyn
// definition files through a fluent API.
//
// Basic usage:
//
//	path, warnings, err := regmap.Open("SUN2000.pdf").WriteFile(".")
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", regmap.FormatWarnings(warnings))
//	}
//
// With options:
//
//	csv, _, err := regmap.Open("SUN2000.pdf").
//	    Set(webdyn.KeyModel, "SUN2000-5KTL").
//	    Pages(12, 13, 14).
//	    CSV()
//
// Inputs are told apart by content: PDF datasheets, HTML manuals and text
// dumps each have their own source in the extract package, which can also
// be used directly.
package regmap

import "github.com/tsawler/regmap/format"

// Open returns an Extractor for a PDF, HTML or text file. Nothing is read
// until a terminal operation like CSV() is called.
//
// Example:
//
//	regs, warnings, err := regmap.Open("datasheet.txt").Registers()
func Open(filename string) *Extractor {
	e := &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
	if filename == "" {
		e.err = ErrNoInput
	}
	return e
}

// FromText returns an Extractor over text already in memory, such as the
// text copied out of a datasheet.
//
// Example:
//
//	csv, _, err := regmap.FromText(text).CSV()
func FromText(text string) *Extractor {
	e := &Extractor{
		text:    text,
		format:  format.Text,
		options: defaultOptions(),
	}
	if text == "" {
		e.err = ErrNoInput
	}
	return e
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	f := regmap.Must(regmap.Open("datasheet.pdf").Format())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustCSV is a helper that wraps a call to CSV() or Registers() and panics
// if the error is non-nil. It discards warnings and returns just the value.
//
// Example:
//
//	csv := regmap.MustCSV(regmap.FromText(text).CSV())
func MustCSV[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
