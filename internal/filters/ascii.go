package filters

import (
	"bytes"
	"encoding/ascii85"
	"encoding/hex"
	"fmt"
)

func isSpace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func stripSpace(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for _, c := range data {
		if !isSpace(c) {
			out = append(out, c)
		}
	}
	return out
}

// ASCIIHexDecode reads hex digit pairs up to the '>' marker. A missing
// final digit counts as 0.
func ASCIIHexDecode(data []byte) ([]byte, error) {
	if i := bytes.IndexByte(data, '>'); i >= 0 {
		data = data[:i]
	}
	digits := stripSpace(data)
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, hex.DecodedLen(len(digits)))
	if _, err := hex.Decode(out, digits); err != nil {
		return nil, err
	}
	return out, nil
}

// ASCII85Decode reads base-85 groups up to the '~>' marker.
func ASCII85Decode(data []byte) ([]byte, error) {
	src := stripSpace(data)
	src = bytes.TrimPrefix(src, []byte("<~"))
	if i := bytes.Index(src, []byte("~>")); i >= 0 {
		src = src[:i]
	}
	// 'z' stands for four zero bytes
	out := make([]byte, 4*len(src)+4)
	n, _, err := ascii85.Decode(out, src, true)
	if err != nil {
		return nil, fmt.Errorf("ascii85: %w", err)
	}
	return out[:n], nil
}
