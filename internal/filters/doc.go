// Package filters decodes PDF stream filters.
//
//	decoded, err := filters.FlateDecode(data, filters.Params{"Predictor": 12, "Columns": 5})
//
// FlateDecode and LZWDecode reverse the TIFF (2) and PNG (10-15)
// predictors that cross-reference streams use. ASCIIHexDecode,
// ASCII85Decode and RunLengthDecode take no parameters. CCITTFaxDecode
// exists for scanned pages that are handed to OCR.
package filters
