package reader

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sort"

	"github.com/tsawler/regmap/core"
	"github.com/tsawler/regmap/pages"
)

// PageImage is an image XObject drawn on a page.
type PageImage struct {
	Name             string // XObject name (e.g., "Im1")
	Width            int
	Height           int
	ColorSpace       string // DeviceGray, DeviceRGB, DeviceCMYK, etc.
	BitsPerComponent int
	Data             []byte // decoded samples, or JPEG bytes when Filter is DCTDecode
	Filter           string // last filter in the chain
}

// ExtractPageImages returns the page's image XObjects sorted by name.
// Images that cannot be decoded are skipped.
func (r *Reader) ExtractPageImages(page *pages.Page) ([]PageImage, error) {
	resources, err := page.Resources()
	if err != nil {
		return nil, err
	}
	obj, err := r.Resolve(resources.Get("XObject"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve XObject dictionary: %w", err)
	}
	xobjects, ok := obj.(core.Dict)
	if !ok {
		return nil, nil
	}

	names := make([]string, 0, len(xobjects))
	for name := range xobjects {
		names = append(names, name)
	}
	sort.Strings(names)

	var images []PageImage
	for _, name := range names {
		resolved, err := r.Resolve(xobjects[name])
		if err != nil {
			continue
		}
		stream, ok := resolved.(*core.Stream)
		if !ok {
			continue
		}
		if st, _ := stream.Dict.GetName("Subtype"); st != "Image" {
			continue
		}
		if img, err := r.extractImage(name, stream); err == nil {
			images = append(images, *img)
		}
	}
	return images, nil
}

func (r *Reader) extractImage(name string, stream *core.Stream) (*PageImage, error) {
	dict := stream.Dict
	width, ok1 := dict.GetInt("Width")
	height, ok2 := dict.GetInt("Height")
	if !ok1 || !ok2 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image %s has no usable Width/Height", name)
	}

	img := &PageImage{
		Name:             name,
		Width:            int(width),
		Height:           int(height),
		ColorSpace:       "DeviceGray",
		BitsPerComponent: 8,
	}
	if bpc, ok := dict.GetInt("BitsPerComponent"); ok {
		img.BitsPerComponent = int(bpc)
	}
	if mask, ok := dict["ImageMask"].(core.Bool); ok && bool(mask) {
		img.BitsPerComponent = 1
	}
	if cs := dict.Get("ColorSpace"); cs != nil {
		img.ColorSpace = r.colorSpaceName(cs, 0)
	}
	switch f := dict.Get("Filter").(type) {
	case core.Name:
		img.Filter = string(f)
	case core.Array:
		if len(f) > 0 {
			n, _ := f[len(f)-1].(core.Name)
			img.Filter = string(n)
		}
	}
	if img.Filter == "CCITTFaxDecode" || img.Filter == "CCF" {
		img.BitsPerComponent = 1
	}

	data, err := stream.Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode image stream: %w", err)
	}
	img.Data = data
	return img, nil
}

// colorSpaceName reduces a color space to the device family its samples use.
func (r *Reader) colorSpaceName(obj core.Object, depth int) string {
	resolved, err := r.Resolve(obj)
	if err != nil || depth > 4 {
		return "DeviceGray"
	}
	switch v := resolved.(type) {
	case core.Name:
		return string(v)
	case core.Array:
		if len(v) == 0 {
			break
		}
		name, _ := v[0].(core.Name)
		switch name {
		case "Indexed":
			if len(v) > 1 {
				return r.colorSpaceName(v[1], depth+1)
			}
		case "ICCBased":
			if len(v) > 1 {
				if s, err := r.Resolve(v[1]); err == nil {
					if stream, ok := s.(*core.Stream); ok {
						switch n, _ := stream.Dict.GetInt("N"); n {
						case 3:
							return "DeviceRGB"
						case 4:
							return "DeviceCMYK"
						}
					}
				}
			}
			return "DeviceGray"
		}
		return string(name)
	}
	return "DeviceGray"
}

// ToPNG converts the image to PNG for an OCR engine.
func (img *PageImage) ToPNG() ([]byte, error) {
	goImg, err := img.Image()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, goImg); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Image converts the decoded samples to an image.Image.
func (img *PageImage) Image() (image.Image, error) {
	if img.Filter == "DCTDecode" || img.Filter == "DCT" {
		return jpeg.Decode(bytes.NewReader(img.Data))
	}
	switch img.ColorSpace {
	case "DeviceRGB", "CalRGB":
		return img.rgb(3, func(p []byte) color.RGBA { return color.RGBA{p[0], p[1], p[2], 255} })
	case "DeviceCMYK":
		return img.rgb(4, func(p []byte) color.RGBA {
			r, g, b := color.CMYKToRGB(p[0], p[1], p[2], p[3])
			return color.RGBA{r, g, b, 255}
		})
	}
	return img.gray()
}

// gray unpacks 1, 2, 4 or 8 bit samples. Rows are byte aligned.
func (img *PageImage) gray() (*image.Gray, error) {
	bpc := img.BitsPerComponent
	if bpc != 1 && bpc != 2 && bpc != 4 && bpc != 8 {
		return nil, fmt.Errorf("unsupported bits per component: %d", bpc)
	}
	stride := (img.Width*bpc + 7) / 8
	if len(img.Data) < stride*img.Height {
		return nil, fmt.Errorf("insufficient data: got %d, expected %d", len(img.Data), stride*img.Height)
	}

	out := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	maxVal := 1<<bpc - 1
	for y := 0; y < img.Height; y++ {
		row := img.Data[y*stride:]
		for x := 0; x < img.Width; x++ {
			bit := x * bpc
			v := int(row[bit/8]>>(8-bpc-bit%8)) & maxVal
			out.Pix[y*out.Stride+x] = uint8(v * 255 / maxVal)
		}
	}
	return out, nil
}

func (img *PageImage) rgb(components int, conv func([]byte) color.RGBA) (*image.RGBA, error) {
	if img.BitsPerComponent != 8 {
		return nil, fmt.Errorf("unsupported bits per component for %s: %d", img.ColorSpace, img.BitsPerComponent)
	}
	need := img.Width * img.Height * components
	if len(img.Data) < need {
		return nil, fmt.Errorf("insufficient data: got %d, expected %d", len(img.Data), need)
	}
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for i := 0; i < img.Width*img.Height; i++ {
		c := conv(img.Data[i*components:])
		out.Pix[i*4], out.Pix[i*4+1], out.Pix[i*4+2], out.Pix[i*4+3] = c.R, c.G, c.B, c.A
	}
	return out, nil
}
