// Package text pulls positioned strings out of PDF content streams.
//
// An [Extractor] interprets the text and graphics state operators of a page
// (and of any Form XObjects it draws) and records a [TextFragment] for every
// string shown by Tj, TJ, ' or ". Positions are in user space with the
// origin at the bottom left of the page:
//
//	ex := text.NewExtractor()
//	ex.RegisterFontsFromResources(resources, resolve)
//	fragments, err := ex.ExtractFromBytes(contentData)
//
// Fragment widths come from the font's glyph metrics, so the right edge of
// a fragment is where the next glyph would have been drawn.
package text
