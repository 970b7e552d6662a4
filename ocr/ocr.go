//go:build ocr

package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client recognizes page images with a Tesseract instance. Close it when
// done.
type Client struct {
	client *gosseract.Client
}

// New returns a client set up with DefaultConfig.
func New() (*Client, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig returns a client for cfg. Interword spaces are kept, so
// the gaps between table columns survive recognition.
func NewWithConfig(cfg Config) (*Client, error) {
	c := &Client{client: gosseract.NewClient()}
	if err := c.configure(cfg); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) configure(cfg Config) error {
	if len(cfg.Languages) > 0 {
		if err := c.SetLanguage(cfg.Languages...); err != nil {
			return err
		}
	}
	if err := c.SetPageSegMode(cfg.PageSegMode); err != nil {
		return err
	}
	if err := c.client.SetVariable("preserve_interword_spaces", "1"); err != nil {
		return fmt.Errorf("preserve_interword_spaces: %w", err)
	}
	return nil
}

// Close releases the Tesseract instance. Calling it twice is harmless.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// RecognizeImage returns the trimmed text of an encoded image (PNG, TIFF,
// JPEG).
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("ocr: loading image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// SetLanguage selects the trained data to use, e.g. "eng", "deu".
func (c *Client) SetLanguage(langs ...string) error {
	if err := c.client.SetLanguage(langs...); err != nil {
		return fmt.Errorf("ocr: language %s: %w", strings.Join(langs, "+"), err)
	}
	return nil
}

// SetPageSegMode sets how Tesseract splits the page into lines.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return c.client.SetPageSegMode(gosseract.PageSegMode(mode))
}
