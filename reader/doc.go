// Package reader opens PDF files and resolves their objects and pages.
//
//	r, err := reader.Open("datasheet.pdf")
//	if err != nil {
//	    return err
//	}
//	page, _ := r.GetPage(0)
//	frags, _ := r.ExtractTextFragments(page)
//
// The whole file is held in memory. Free and missing objects resolve to
// null. If an object cannot be parsed at its recorded offset the
// cross-reference table is rebuilt by scanning the file, once per reader.
// Encrypted documents are rejected with [ErrEncrypted].
//
// [Reader.ExtractPageImages] returns a page's raster images so that
// scanned pages can be passed to OCR.
package reader
