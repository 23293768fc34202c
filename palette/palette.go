// Package palette maps activity counts onto discrete color buckets.
package palette

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/stsysd/calheat/model"
)

// ColorBucket is a half-open interval [Min, Max) with its display label and color.
// Min and Max may be infinite.
type ColorBucket struct {
	Min       float64 `toml:"min"`
	Max       float64 `toml:"max"`
	IsDefault bool    `toml:"default"`
	Label     string  `toml:"label"`
	Color     string  `toml:"color"`
}

// Contains reports whether Min <= count < Max.
func (b ColorBucket) Contains(count float64) bool {
	return count >= b.Min && count < b.Max
}

// MarshalJSON encodes the bucket in the widget's color-threshold shape.
// Infinite bounds have no JSON representation and are written as null.
func (b ColorBucket) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Min       *float64 `json:"min"`
		Max       *float64 `json:"max"`
		IsDefault bool     `json:"isDefault"`
		ClassName string   `json:"className"`
		Color     string   `json:"color,omitempty"`
	}{
		Min:       finite(b.Min),
		Max:       finite(b.Max),
		IsDefault: b.IsDefault,
		ClassName: b.Label,
		Color:     b.Color,
	})
}

func finite(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

// Palette is an ordered set of buckets. The first matching bucket wins.
type Palette []ColorBucket

// Classify returns the first bucket of p containing count, or p's default
// bucket when no interval matches. A palette without a default bucket is
// rejected with a *model.ConfigurationError whatever count is.
func Classify(count float64, p Palette) (ColorBucket, error) {
	d, ok := p.DefaultBucket()
	if !ok {
		return ColorBucket{}, model.NewConfigurationError(model.ErrNoDefaultBucket)
	}
	for _, b := range p {
		if b.Contains(count) {
			return b, nil
		}
	}
	return d, nil
}

// Classify is the method form of Classify.
func (p Palette) Classify(count float64) (ColorBucket, error) {
	return Classify(count, p)
}

// DefaultBucket returns the first bucket flagged as default.
func (p Palette) DefaultBucket() (ColorBucket, bool) {
	for _, b := range p {
		if b.IsDefault {
			return b, true
		}
	}
	return ColorBucket{}, false
}

// Index returns the position of the bucket classify would pick for count, or
// -1 when classify would fail.
func (p Palette) Index(count float64) int {
	if _, ok := p.DefaultBucket(); !ok {
		return -1
	}
	for i, b := range p {
		if b.Contains(count) {
			return i
		}
	}
	for i, b := range p {
		if b.IsDefault {
			return i
		}
	}
	return -1
}

// Validate checks that p is non-empty, has exactly one default bucket and
// no inverted interval.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return model.NewConfigurationError(model.ErrEmptyPalette)
	}
	defaults := 0
	for i, b := range p {
		if b.IsDefault {
			defaults++
		}
		if math.IsNaN(b.Min) || math.IsNaN(b.Max) || b.Min > b.Max {
			return model.NewConfigurationError(fmt.Errorf("bucket %d (%s) has an invalid interval", i, b.Label))
		}
	}
	switch {
	case defaults == 0:
		return model.NewConfigurationError(model.ErrNoDefaultBucket)
	case defaults > 1:
		return model.NewConfigurationError(fmt.Errorf("palette has %d default buckets", defaults))
	}
	return nil
}

// Clone returns a copy of p that shares no backing array with it.
func (p Palette) Clone() Palette {
	if p == nil {
		return nil
	}
	out := make(Palette, len(p))
	copy(out, p)
	return out
}

// Colors returns the bucket colors in order.
func (p Palette) Colors() []string {
	colors := make([]string, len(p))
	for i, b := range p {
		colors[i] = b.Color
	}
	return colors
}

// Default returns the built-in coloring used when no variant is selected.
func Default() Palette {
	return Palette{
		{Min: math.Inf(-1), Max: 1, IsDefault: true, Label: "level-0", Color: "#ebedf0"},
		{Min: 1, Max: 10, Label: "level-1", Color: "#9be9a8"},
		{Min: 10, Max: 30, Label: "level-2", Color: "#40c463"},
		{Min: 30, Max: 50, Label: "level-3", Color: "#30a14e"},
		{Min: 50, Max: math.Inf(1), Label: "level-4", Color: "#216e39"},
	}
}
