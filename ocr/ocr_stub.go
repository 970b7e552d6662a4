//go:build !ocr

package ocr

// Client stands in for the Tesseract client in builds without the ocr tag.
type Client struct{}

func New() (*Client, error)                     { return nil, ErrOCRNotEnabled }
func NewWithConfig(cfg Config) (*Client, error) { return nil, ErrOCRNotEnabled }

// Close does nothing, even on a nil client.
func (c *Client) Close() error { return nil }

func (c *Client) RecognizeImage(imageData []byte) (string, error) { return "", ErrOCRNotEnabled }
func (c *Client) SetLanguage(langs ...string) error               { return ErrOCRNotEnabled }
func (c *Client) SetPageSegMode(mode PageSegMode) error           { return ErrOCRNotEnabled }
