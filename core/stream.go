package core

import (
	"fmt"

	"github.com/tsawler/regmap/internal/filters"
)

// Decode applies the stream's /Filter chain and returns the decoded bytes.
// Image codecs (DCT, JPX, JBIG2) are passed through undecoded.
func (s *Stream) Decode() ([]byte, error) {
	var names []Object
	switch f := s.Dict.Get("Filter").(type) {
	case nil:
		return s.Data, nil
	case Name:
		names = Array{f}
	case Array:
		names = f
	default:
		return nil, fmt.Errorf("invalid /Filter %s", f)
	}

	parms := s.Dict.Get("DecodeParms")
	data := s.Data
	for i, obj := range names {
		name, ok := obj.(Name)
		if !ok {
			return nil, fmt.Errorf("filter %d is %s, not a name", i, obj)
		}
		var p Dict
		switch v := parms.(type) {
		case Dict:
			p = v
		case Array:
			if i < len(v) {
				p, _ = v[i].(Dict)
			}
		}

		var err error
		data, err = decodeFilter(string(name), data, params(p))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return data, nil
}

func decodeFilter(name string, data []byte, p filters.Params) ([]byte, error) {
	switch name {
	case "FlateDecode", "Fl":
		return filters.FlateDecode(data, p)
	case "LZWDecode", "LZW":
		return filters.LZWDecode(data, p)
	case "ASCIIHexDecode", "AHx":
		return filters.ASCIIHexDecode(data)
	case "ASCII85Decode", "A85":
		return filters.ASCII85Decode(data)
	case "RunLengthDecode", "RL":
		return filters.RunLengthDecode(data)
	case "CCITTFaxDecode", "CCF":
		return filters.CCITTFaxDecode(data, p)
	case "DCTDecode", "DCT", "JPXDecode", "JBIG2Decode":
		return data, nil
	}
	return nil, fmt.Errorf("unsupported filter")
}

func params(d Dict) filters.Params {
	if d == nil {
		return nil
	}
	p := make(filters.Params, len(d))
	for k, v := range d {
		switch o := v.(type) {
		case Int:
			p[k] = int(o)
		case Real:
			p[k] = float64(o)
		case Bool:
			p[k] = bool(o)
		case Name:
			p[k] = string(o)
		}
	}
	return p
}
