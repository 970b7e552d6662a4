package regmap

import (
	"github.com/tsawler/regmap/extract"
	"github.com/tsawler/regmap/webdyn"
)

// ExtractOptions holds configuration for register extraction.
type ExtractOptions struct {
	// Header line of the definition file
	header webdyn.Header

	// Page selection (1-indexed, PDF only)
	pages []int

	// Section markers
	startMarker string
	endMarker   string

	// Processing options
	ocr bool // recognize page images when a PDF has no text layer
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		header:      webdyn.DefaultHeader(),
		pages:       nil, // nil means all pages
		startMarker: extract.DefaultStartMarker,
		endMarker:   extract.DefaultEndMarker,
		ocr:         false,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		header:      o.header, // Header is copy-on-write
		startMarker: o.startMarker,
		endMarker:   o.endMarker,
		ocr:         o.ocr,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}

// sourceOptions translates the options for the extract package.
func (o ExtractOptions) sourceOptions() []extract.Option {
	opts := []extract.Option{
		extract.WithStartMarker(o.startMarker),
		extract.WithEndMarker(o.endMarker),
	}
	if o.pages != nil {
		opts = append(opts, extract.WithPages(o.pages...))
	}
	return opts
}
