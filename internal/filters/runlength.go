package filters

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/image/tiff/lzw"
)

// RunLengthDecode expands RunLengthDecode data. A length byte n below 128
// copies the next n+1 bytes, above 128 repeats the next byte 257-n times,
// and 128 ends the data.
func RunLengthDecode(data []byte) ([]byte, error) {
	var out bytes.Buffer
	for i := 0; i < len(data); {
		n := int(data[i])
		i++
		switch {
		case n == 128:
			return out.Bytes(), nil
		case n < 128:
			end := i + n + 1
			if end > len(data) {
				return nil, fmt.Errorf("literal run of %d bytes overruns data", n+1)
			}
			out.Write(data[i:end])
			i = end
		default:
			if i >= len(data) {
				return nil, fmt.Errorf("repeat run missing its byte")
			}
			out.Write(bytes.Repeat(data[i:i+1], 257-n))
			i++
		}
	}
	return out.Bytes(), nil
}

// LZWDecode decompresses LZWDecode data. PDF's default EarlyChange of 1 is
// the TIFF variant of LZW; EarlyChange 0 is not supported.
func LZWDecode(data []byte, p Params) ([]byte, error) {
	if p.Int("EarlyChange", 1) != 1 {
		return nil, fmt.Errorf("LZW EarlyChange 0 not supported")
	}
	r := lzw.NewReader(bytes.NewReader(data), lzw.MSB, 8)
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil && len(out) == 0 {
		return nil, fmt.Errorf("lzw: %w", err)
	}
	return unpredict(out, p)
}
