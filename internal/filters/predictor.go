package filters

import "fmt"

// unpredict reverses the /Predictor transform applied before compression.
func unpredict(data []byte, p Params) ([]byte, error) {
	predictor := p.Int("Predictor", 1)
	if predictor <= 1 {
		return data, nil
	}

	colors := p.Int("Colors", 1)
	bpc := p.Int("BitsPerComponent", 8)
	columns := p.Int("Columns", 1)
	if colors < 1 || columns < 1 {
		return nil, fmt.Errorf("invalid predictor geometry: %d colors, %d columns", colors, columns)
	}
	switch bpc {
	case 1, 2, 4, 8, 16:
	default:
		return nil, fmt.Errorf("invalid BitsPerComponent %d", bpc)
	}

	// bytes per pixel, at least one
	bpp := (colors*bpc + 7) / 8
	stride := (columns*colors*bpc + 7) / 8

	switch {
	case predictor == 2:
		if bpc != 8 {
			return nil, fmt.Errorf("TIFF predictor with %d bits per component not supported", bpc)
		}
		return tiffUnpredict(data, stride, bpp)
	case predictor >= 10 && predictor <= 15:
		return pngUnpredict(data, stride, bpp)
	}
	return nil, fmt.Errorf("unsupported predictor %d", predictor)
}

func tiffUnpredict(data []byte, stride, bpp int) ([]byte, error) {
	if len(data)%stride != 0 {
		return nil, fmt.Errorf("data length %d is not a multiple of row length %d", len(data), stride)
	}
	out := append([]byte(nil), data...)
	for row := 0; row < len(out); row += stride {
		line := out[row : row+stride]
		for i := bpp; i < len(line); i++ {
			line[i] += line[i-bpp]
		}
	}
	return out, nil
}

// pngUnpredict decodes rows that each start with their own filter type.
func pngUnpredict(data []byte, stride, bpp int) ([]byte, error) {
	if len(data)%(stride+1) != 0 {
		return nil, fmt.Errorf("data length %d is not a multiple of row length %d", len(data), stride+1)
	}
	rows := len(data) / (stride + 1)
	out := make([]byte, rows*stride)
	prev := make([]byte, stride)

	for r := 0; r < rows; r++ {
		src := data[r*(stride+1) : (r+1)*(stride+1)]
		cur := out[r*stride : (r+1)*stride]
		copy(cur, src[1:])

		switch src[0] {
		case 0:
		case 1: // Sub
			for i := bpp; i < stride; i++ {
				cur[i] += cur[i-bpp]
			}
		case 2: // Up
			for i := range cur {
				cur[i] += prev[i]
			}
		case 3: // Average
			for i := range cur {
				var left int
				if i >= bpp {
					left = int(cur[i-bpp])
				}
				cur[i] += byte((left + int(prev[i])) / 2)
			}
		case 4: // Paeth
			for i := range cur {
				var left, upLeft byte
				if i >= bpp {
					left, upLeft = cur[i-bpp], prev[i-bpp]
				}
				cur[i] += paeth(left, prev[i], upLeft)
			}
		default:
			return nil, fmt.Errorf("row %d: unknown PNG filter type %d", r, src[0])
		}
		prev = cur
	}
	return out, nil
}

// paeth picks whichever of left, up and upper-left is nearest to
// left+up-upLeft.
func paeth(left, up, upLeft byte) byte {
	p := int(left) + int(up) - int(upLeft)
	pa, pb, pc := absInt(p-int(left)), absInt(p-int(up)), absInt(p-int(upLeft))
	switch {
	case pa <= pb && pa <= pc:
		return left
	case pb <= pc:
		return up
	}
	return upLeft
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
