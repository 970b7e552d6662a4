//go:build ocr

package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// renderLine draws s in a bitmap face and scales it up to a size
// Tesseract reads reliably.
func renderLine(t *testing.T, s string) []byte {
	t.Helper()
	small := image.NewGray(image.Rect(0, 0, 8*len(s)+16, 24))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	d := font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(8, 17),
	}
	d.DrawString(s)

	b := small.Bounds()
	big := image.NewGray(image.Rect(0, 0, b.Dx()*4, b.Dy()*4))
	draw.NearestNeighbor.Scale(big, big.Bounds(), small, b, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, big); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newClient(t *testing.T) *Client {
	t.Helper()
	c, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRecognizeImage(t *testing.T) {
	c := newClient(t)

	got, err := c.RecognizeImage(renderLine(t, "1 Voltage RO U16 32069 1"))
	if err != nil {
		t.Fatalf("RecognizeImage: %v", err)
	}
	if !strings.Contains(got, "32069") {
		t.Errorf("address not recognized in %q", got)
	}
}

func TestConfigure(t *testing.T) {
	c := newClient(t)
	if err := c.SetLanguage("eng"); err != nil {
		t.Errorf("SetLanguage: %v", err)
	}
	if err := c.SetPageSegMode(PSM_SINGLE_LINE); err != nil {
		t.Errorf("SetPageSegMode: %v", err)
	}
}

func TestCloseTwice(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
