package regmap

import (
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/klog/v2"

	"github.com/tsawler/regmap/extract"
	"github.com/tsawler/regmap/format"
	"github.com/tsawler/regmap/ocr"
	"github.com/tsawler/regmap/register"
	"github.com/tsawler/regmap/webdyn"
)

// Extractor provides a fluent interface for turning register documentation
// into a Webdyn definition file. Each configuration method returns a new
// Extractor instance, making it safe for concurrent use and allowing method
// chaining.
type Extractor struct {
	// Source
	filename string
	text     string
	format   format.Format

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		text:     e.text,
		format:   e.format,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Header replaces the whole header line.
//
// Example:
//
//	h := webdyn.DefaultHeader().Set(webdyn.KeyModel, "SUN2000-5KTL")
//	csv, _, err := regmap.Open("doc.pdf").Header(h).CSV()
func (e *Extractor) Header(h webdyn.Header) *Extractor {
	newExt := e.clone()
	newExt.options.header = h
	return newExt
}

// Set overrides one header value. Unknown keys are appended to the header.
//
// Example:
//
//	csv, _, err := regmap.Open("doc.pdf").Set(webdyn.KeyCategory, "Meter").CSV()
func (e *Extractor) Set(key, value string) *Extractor {
	newExt := e.clone()
	newExt.options.header = newExt.options.header.Set(key, value)
	return newExt
}

// Pages specifies which pages to extract from (1-indexed, PDF only).
// Multiple calls are cumulative.
//
// Example:
//
//	csv, _, err := regmap.Open("doc.pdf").Pages(12, 13).CSV()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to extract (1-indexed, inclusive).
//
// Example:
//
//	csv, _, err := regmap.Open("doc.pdf").PageRange(12, 30).CSV()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	if start > end {
		newExt.err = fmt.Errorf("invalid page range %d-%d", start, end)
		return newExt
	}
	if end > extract.MaxPage {
		newExt.err = fmt.Errorf("page range %d-%d is beyond page %d", start, end, extract.MaxPage)
		return newExt
	}
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Markers sets the headings that open and close the register section.
// An empty marker keeps the current one.
//
// Example:
//
//	regs, _, err := regmap.Open("doc.txt").Markers("5 Modbus Map", "6 Appendix").Registers()
func (e *Extractor) Markers(start, end string) *Extractor {
	newExt := e.clone()
	if start != "" {
		newExt.options.startMarker = start
	}
	if end != "" {
		newExt.options.endMarker = end
	}
	return newExt
}

// OCR enables text recognition of page images when a PDF has no usable
// text layer. It needs a binary built with the ocr tag.
//
// Example:
//
//	csv, _, err := regmap.Open("scan.pdf").OCR().CSV()
func (e *Extractor) OCR() *Extractor {
	newExt := e.clone()
	newExt.options.ocr = true
	return newExt
}

// Format reports the input format, detected from the file content.
func (e *Extractor) Format() (format.Format, error) {
	if e.err != nil {
		return format.Unknown, e.err
	}
	if e.filename == "" {
		return e.format, nil
	}
	return format.DetectFile(e.filename)
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Registers extracts the register rows in document order.
//
// Returns the registers, any warnings about skipped rows or a missing
// section, and an error if the input could not be read.
//
// Example:
//
//	regs, warnings, err := regmap.Open("datasheet.pdf").Registers()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", regmap.FormatWarnings(warnings))
//	}
func (e *Extractor) Registers() ([]register.Register, []Warning, error) {
	res, err := e.extract()
	if err != nil {
		return nil, nil, err
	}
	return res.Registers, res.Warnings, nil
}

// CSV renders the definition file. It returns ErrNoRegisters along with
// the warnings when nothing could be parsed.
//
// Example:
//
//	csv, warnings, err := regmap.Open("datasheet.pdf").CSV()
func (e *Extractor) CSV() (string, []Warning, error) {
	regs, warnings, err := e.Registers()
	if err != nil {
		return "", nil, err
	}
	if len(regs) == 0 {
		return "", warnings, ErrNoRegisters
	}
	return webdyn.Render(regs, e.options.header), warnings, nil
}

// WriteFile writes the definition file into dir under the name derived
// from the header model, and returns its path.
//
// Example:
//
//	path, _, err := regmap.Open("datasheet.pdf").WriteFile("out")
//	// path == "out/webdyn_def_SUN2000-10K-LC0.csv"
func (e *Extractor) WriteFile(dir string) (string, []Warning, error) {
	path := filepath.Join(dir, webdyn.FileName(e.options.header))
	warnings, err := e.SaveAs(path)
	if err != nil {
		return "", warnings, err
	}
	return path, warnings, nil
}

// SaveAs writes the definition file to path. A failed write is reported as
// a *WriteError.
func (e *Extractor) SaveAs(path string) ([]Warning, error) {
	csv, warnings, err := e.CSV()
	if err != nil {
		return warnings, err
	}
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		return warnings, &WriteError{Path: path, Err: err}
	}
	klog.V(2).Infof("wrote %s", path)
	return warnings, nil
}

// extract runs the source matching the input.
func (e *Extractor) extract() (extract.Result, error) {
	if e.err != nil {
		return extract.Result{}, e.err
	}

	src, closeFn, err := e.source()
	if err != nil {
		return extract.Result{}, err
	}
	defer closeFn()

	return src.Extract()
}

// source picks the extract.Source for the input. The returned func
// releases anything the source holds.
func (e *Extractor) source() (extract.Source, func(), error) {
	opts := e.options.sourceOptions()
	noop := func() {}

	if e.filename == "" {
		return extract.NewTextSource(e.text, opts...), noop, nil
	}

	f, err := format.DetectFile(e.filename)
	if err != nil {
		return nil, noop, err
	}

	switch f {
	case format.PDF:
		if !e.options.ocr {
			return extract.NewDocumentSource(e.filename, opts...), noop, nil
		}
		client, err := ocr.New()
		if err != nil {
			return nil, noop, fmt.Errorf("starting OCR: %w", err)
		}
		opts = append(opts, extract.WithOCR(client))
		return extract.NewDocumentSource(e.filename, opts...), func() { client.Close() }, nil

	case format.HTML:
		data, err := os.ReadFile(e.filename)
		if err != nil {
			return nil, noop, err
		}
		return extract.NewHTMLSource(data, opts...), noop, nil

	case format.Text:
		data, err := os.ReadFile(e.filename)
		if err != nil {
			return nil, noop, err
		}
		return extract.NewTextSource(extract.DecodeText(data), opts...), noop, nil

	default:
		return nil, noop, fmt.Errorf("unsupported file format: %s", e.filename)
	}
}
