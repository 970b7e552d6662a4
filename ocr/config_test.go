package ocr

import (
	"testing"

	"github.com/tsawler/regmap/extract"
)

var _ extract.Recognizer = (*Client)(nil)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg.Languages) != 1 || cfg.Languages[0] != "eng" {
		t.Errorf("Languages = %v, want [eng]", cfg.Languages)
	}
	if cfg.PageSegMode != PSM_SINGLE_BLOCK {
		t.Errorf("PageSegMode = %d, want %d", cfg.PageSegMode, PSM_SINGLE_BLOCK)
	}
}
