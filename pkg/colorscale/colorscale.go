// Package colorscale maps scalars in [0,1] to colours along named,
// perceptually ordered scales.
//
// Scales are piecewise-linear ramps between evenly spaced stops, blended in
// RGB space like d3's sequential interpolators, so sampled colours match d3's.
package colorscale

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Scale is a sequential colour scale.
type Scale struct {
	name  string
	stops []colorful.Color
}

// Built-in scales.
var (
	// Inferno runs black → purple → red → orange → pale yellow; higher is hotter.
	Inferno = MustNew("inferno",
		"#000004", "#160b39", "#420a68", "#6a176e", "#932667", "#bc3754",
		"#dd513a", "#f37819", "#fca50a", "#f6d746", "#fcffa4")

	// Viridis runs dark purple → teal → yellow.
	Viridis = MustNew("viridis",
		"#440154", "#482475", "#414487", "#355f8d", "#2a788e", "#21918c",
		"#22a884", "#44bf70", "#7ad151", "#bddf26", "#fde725")

	// Confidence runs red → amber → green, matching the gauge gradient.
	Confidence = MustNew("confidence", "#ef4444", "#f59e0b", "#10b981")
)

var registry = map[string]Scale{
	Inferno.name:    Inferno,
	Viridis.name:    Viridis,
	Confidence.name: Confidence,
}

// New builds a scale from at least two hex stops.
func New(name string, hexes ...string) (Scale, error) {
	if len(hexes) < 2 {
		return Scale{}, fmt.Errorf("colorscale %q: need at least 2 stops, got %d", name, len(hexes))
	}
	stops := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return Scale{}, fmt.Errorf("colorscale %q: stop %d: %w", name, i, err)
		}
		stops[i] = c
	}
	return Scale{name: name, stops: stops}, nil
}

// MustNew is like New but panics on error. Intended for package-level scales.
func MustNew(name string, hexes ...string) Scale {
	s, err := New(name, hexes...)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup returns a built-in scale by name.
func Lookup(name string) (Scale, bool) {
	s, ok := registry[name]
	return s, ok
}

// Names lists the built-in scales in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Name returns the scale name.
func (s Scale) Name() string { return s.name }

// At samples the scale. t is clamped to [0,1]; NaN maps to the low end.
func (s Scale) At(t float64) colorful.Color {
	if math.IsNaN(t) {
		t = 0
	}
	t = max(0, min(t, 1))
	n := len(s.stops) - 1
	i := min(int(t*float64(n)), n-1)
	local := t*float64(n) - float64(i)
	return s.stops[i].BlendRgb(s.stops[i+1], local).Clamped()
}

// Hex samples the scale and formats the colour as #rrggbb.
func (s Scale) Hex(t float64) string {
	return s.At(t).Hex()
}

// Parse parses a #rgb or #rrggbb colour.
func Parse(hex string) (colorful.Color, error) {
	if len(hex) == 4 && hex[0] == '#' {
		hex = string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	return colorful.Hex(hex)
}

// NRGBA converts a hex colour plus opacity into an image/color value.
// Unparseable colours come back as opaque black.
func NRGBA(hex string, opacity float64) color.NRGBA {
	c, err := Parse(hex)
	if err != nil {
		c = colorful.Color{}
	}
	r, g, b := c.RGB255()
	a := max(0, min(opacity, 1))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(a * 255))}
}
