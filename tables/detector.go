package tables

import (
	"sort"
	"sync"

	"github.com/tsawler/regmap/model"
)

// Detector finds tables on a page whose Words are set.
type Detector interface {
	Name() string
	Configure(config Config) error
	Detect(page *model.Page) ([]*model.Table, error)
}

// Config tunes a Detector. Distances are in points unless noted.
type Config struct {
	MinRows int

	// Only lines with at least MinCols cells contribute column boundaries.
	MinCols int

	// Gap that separates two cells on a line. Zero means 0.8 em of the
	// line's font.
	MaxCellGap float64

	AlignmentTolerance float64

	// Vertical distance, in line heights, beyond which a table ends.
	MaxRowGap float64
}

func DefaultConfig() Config {
	return Config{
		MinRows:            2,
		MinCols:            3,
		AlignmentTolerance: 2.0,
		MaxRowGap:          3.0,
	}
}

var registry = struct {
	sync.RWMutex
	byName map[string]Detector
}{byName: map[string]Detector{}}

// RegisterDetector makes d available under d.Name(), replacing any
// detector of the same name.
func RegisterDetector(d Detector) {
	registry.Lock()
	defer registry.Unlock()
	registry.byName[d.Name()] = d
}

// GetDetector returns the detector registered as name, or nil.
func GetDetector(name string) Detector {
	registry.RLock()
	defer registry.RUnlock()
	return registry.byName[name]
}

// ListDetectors returns the registered names in sorted order.
func ListDetectors() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.byName))
	for name := range registry.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterDetector(NewTextDetector())
}
