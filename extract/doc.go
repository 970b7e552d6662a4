// Package extract finds the register definition section of a datasheet
// and parses its rows into registers.
//
// Three sources share the Source interface:
//
//   - TextSource reads a plain text dump, where a row may wrap over
//     several lines and fields are recovered from the token layout.
//   - DocumentSource reads a PDF and splits rows into cells by text
//     alignment, with optional OCR of scanned pages.
//   - HTMLSource reads the <table> rows of an HTML manual.
//
// Rows that cannot be parsed are skipped and reported as warnings. A
// missing section yields an empty result, not an error.
//
//	res, err := extract.NewDocumentSource("SUN2000.pdf").Extract()
//	if err != nil {
//	    // the file could not be read
//	}
//	for _, reg := range res.Registers {
//	    fmt.Println(reg.CSVRow())
//	}
package extract
