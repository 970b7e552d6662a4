package filters

import (
	"bytes"
	"io"

	"golang.org/x/image/ccitt"
)

// CCITTFaxDecode expands Group 3 or Group 4 fax data, one bit per pixel.
// K below zero selects Group 4. Without /Rows the height is taken from the
// data.
func CCITTFaxDecode(data []byte, p Params) ([]byte, error) {
	sf := ccitt.Group3
	if p.Int("K", 0) < 0 {
		sf = ccitt.Group4
	}
	rows := p.Int("Rows", 0)
	if rows <= 0 {
		rows = ccitt.AutoDetectHeight
	}
	opts := &ccitt.Options{
		Align:  p.Bool("EncodedByteAlign", false),
		Invert: p.Bool("BlackIs1", false),
	}

	r := ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, sf, p.Int("Columns", 1728), rows, opts)
	return io.ReadAll(r)
}
