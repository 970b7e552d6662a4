package reader

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/tsawler/regmap/internal/pdftest"
)

func decodePNG(t *testing.T, img *PageImage) image.Image {
	t.Helper()
	data, err := img.ToPNG()
	if err != nil {
		t.Fatalf("ToPNG failed: %v", err)
	}
	out, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	return out
}

func gray(t *testing.T, img image.Image, x, y int) uint32 {
	t.Helper()
	r, _, _, _ := img.At(x, y).RGBA()
	return r >> 8
}

func TestToPNGGray(t *testing.T) {
	tests := []struct {
		name string
		img  PageImage
		want []uint32
	}{
		{"8 bit", PageImage{Width: 2, Height: 2, ColorSpace: "DeviceGray", BitsPerComponent: 8, Data: []byte{0, 128, 64, 255}}, []uint32{0, 128, 64, 255}},
		{"1 bit", PageImage{Width: 4, Height: 1, ColorSpace: "DeviceGray", BitsPerComponent: 1, Data: []byte{0xA0}}, []uint32{255, 0, 255, 0}},
		{"4 bit", PageImage{Width: 3, Height: 1, ColorSpace: "DeviceGray", BitsPerComponent: 4, Data: []byte{0x0F, 0x80}}, []uint32{0, 255, 136}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := decodePNG(t, &tt.img)
			for i, want := range tt.want {
				x, y := i%tt.img.Width, i/tt.img.Width
				if got := gray(t, out, x, y); got != want {
					t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got, want)
				}
			}
		})
	}
}

func TestToPNGColor(t *testing.T) {
	rgb := &PageImage{Width: 1, Height: 1, ColorSpace: "DeviceRGB", BitsPerComponent: 8, Data: []byte{255, 0, 0}}
	r, g, b, _ := decodePNG(t, rgb).At(0, 0).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("expected red, got %d %d %d", r>>8, g>>8, b>>8)
	}

	cmyk := &PageImage{Width: 1, Height: 1, ColorSpace: "DeviceCMYK", BitsPerComponent: 8, Data: []byte{0, 0, 0, 255}}
	r, g, b, _ = decodePNG(t, cmyk).At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("expected black, got %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestToPNGErrors(t *testing.T) {
	tests := []PageImage{
		{Width: 10, Height: 10, ColorSpace: "DeviceGray", BitsPerComponent: 8, Data: []byte{1, 2}},
		{Width: 1, Height: 1, ColorSpace: "DeviceGray", BitsPerComponent: 16, Data: []byte{1, 2}},
		{Width: 2, Height: 2, ColorSpace: "DeviceRGB", BitsPerComponent: 8, Data: []byte{1, 2, 3}},
		{Width: 1, Height: 1, ColorSpace: "DeviceCMYK", BitsPerComponent: 4, Data: []byte{1, 2}},
	}
	for i, img := range tests {
		if _, err := img.ToPNG(); err == nil {
			t.Errorf("case %d: expected error", i)
		}
	}
}

func TestExtractPageImages(t *testing.T) {
	b := pdftest.New()
	catalog := b.Add("<< /Type /Catalog /Pages 2 0 R >>")
	b.Add("<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	b.Add("<< /Type /Page /Parent 2 0 R /Resources << /XObject << /Im1 4 0 R /Fm1 5 0 R >> >> >>")
	b.AddStream("/Type /XObject /Subtype /Image /Width 2 /Height 1 /ColorSpace [/ICCBased 6 0 R] /BitsPerComponent 8 /Filter /ASCIIHexDecode", []byte("ff0000 00ff00>"))
	b.AddStream("/Type /XObject /Subtype /Form /BBox [0 0 1 1]", []byte(""))
	b.AddStream("/N 3", []byte(""))

	r, err := NewReader(b.Bytes(catalog))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	page, err := r.GetPage(0)
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	images, err := r.ExtractPageImages(page)
	if err != nil {
		t.Fatalf("ExtractPageImages: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(images))
	}
	img := images[0]
	if img.Name != "Im1" || img.ColorSpace != "DeviceRGB" || len(img.Data) != 6 {
		t.Errorf("unexpected image %+v", img)
	}
	if _, err := img.ToPNG(); err != nil {
		t.Errorf("ToPNG: %v", err)
	}
}
