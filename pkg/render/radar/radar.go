// Package radar draws a radial chart: one spoke per axis, concentric grid
// rings, and a closed polygon through each axis value.
//
// Axis i of n sits at angle 2*pi*i/n - pi/2, so the first axis points
// straight up and the rest follow clockwise in screen space.
package radar

import (
	"math"
	"slices"

	"github.com/luminexlabs/lumenviz/pkg/errors"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

// VizType names this renderer in hooks and pipeline output.
const VizType = "radar"

// Styling.
const (
	DefaultMargin = 50.0
	LabelOffset   = 20.0
	GridColor     = "#333"
	GridWidth     = 0.5
	GridOpacity   = 0.3
	LabelColor    = "#888"
	LabelSize     = 10.0
	AreaStroke    = "#00d4ff"
	AreaWidth     = 2.0
	PointRadius   = 4.0
	PointFill     = "#00d4ff"
	PointStroke   = "#fff"
	GradientID    = "radar-gradient"
)

// Datum is one axis and its value in [0,1].
type Datum struct {
	Axis  string  `json:"axis" toml:"axis" yaml:"axis"`
	Value float64 `json:"value" toml:"value" yaml:"value"`
}

// DefaultData returns the eight clinical concept axes.
func DefaultData() []Datum {
	return []Datum{
		{"Asymmetry", 0.92},
		{"Border", 0.85},
		{"Color", 0.78},
		{"Diameter", 0.65},
		{"Evolution", 0.71},
		{"Veil", 0.45},
		{"Network", 0.38},
		{"Regression", 0.23},
	}
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLevels sets the number of grid rings. By default there is one ring per axis.
func WithLevels(n int) Option { return func(r *Renderer) { r.levels = n } }

// WithMargin sets the space between the chart radius and the container edge.
func WithMargin(m float64) Option { return func(r *Renderer) { r.margin = m } }

// Renderer draws a radar chart into one container.
type Renderer struct {
	container *scene.Container
	data      []Datum
	levels    int
	margin    float64
}

// New binds a renderer to mountID. Nil or empty data falls back to
// [DefaultData]. A missing container yields an inert renderer.
func New(doc *scene.Document, mountID string, data []Datum, opts ...Option) (*Renderer, error) {
	if len(data) == 0 {
		data = DefaultData()
	}
	for _, d := range data {
		if err := errors.ValidateFinite("value of axis "+d.Axis, d.Value); err != nil {
			return nil, err
		}
	}
	r := &Renderer{data: slices.Clone(data), margin: DefaultMargin}
	for _, opt := range opts {
		opt(r)
	}
	if r.levels < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "levels cannot be negative, got %d", r.levels)
	}
	if r.margin < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "margin cannot be negative, got %v", r.margin)
	}
	if r.levels == 0 {
		r.levels = len(r.data)
	}
	r.container, _ = doc.Lookup(mountID)
	return r, nil
}

// Inert reports whether the renderer has no container to draw into.
func (r *Renderer) Inert() bool { return r.container == nil }

// Data returns a copy of the axis data.
func (r *Renderer) Data() []Datum { return slices.Clone(r.data) }

// Angle returns the screen angle of axis i of n.
func Angle(i, n int) float64 {
	return 2*math.Pi*float64(i)/float64(n) - math.Pi/2
}

// Radius returns the chart radius for a container.
func Radius(width, height, margin float64) float64 {
	return max(math.Min(width, height)/2-margin, 0)
}

// Vertices returns the polygon vertices relative to the centre. Values are
// clamped to [0,1] before scaling.
func Vertices(data []Datum, radius float64) []scene.Point {
	pts := make([]scene.Point, len(data))
	for i, d := range data {
		a := Angle(i, len(data))
		v := clamp01(d.Value)
		pts[i] = scene.Point{X: math.Cos(a) * v * radius, Y: math.Sin(a) * v * radius}
	}
	return pts
}

// Render draws grid rings, axes with labels, the value polygon and its
// vertex markers, then attaches the scene.
func (r *Renderer) Render() *scene.Scene {
	if r.container == nil {
		return nil
	}
	w, h := r.container.Size()
	center := scene.Point{X: w / 2, Y: h / 2}
	radius := Radius(w, h, r.margin)
	n := len(r.data)

	sc := scene.New(w, h)
	sc.AddGradient(scene.Gradient{
		ID:     GradientID,
		Radial: true,
		X1:     0.5, Y1: 0.5, X2: 0.5,
		Stops: []scene.GradientStop{
			{Offset: 0, Color: "#00d4ff", Opacity: 0.8},
			{Offset: 1, Color: "#7c3aed", Opacity: 0.3},
		},
	})

	grid := scene.Style{Fill: "none", Stroke: GridColor, StrokeWidth: GridWidth, Opacity: GridOpacity}
	for level := 1; level <= r.levels; level++ {
		ring := grid
		ring.Class = "radar-ring"
		sc.Add(scene.Circle{CX: center.X, CY: center.Y, R: radius / float64(r.levels) * float64(level), Style: ring})
	}

	for i, d := range r.data {
		a := Angle(i, n)
		tip := scene.Polar{Angle: a, Radius: radius}.Cartesian(center)
		axis := grid
		axis.Class = "radar-axis"
		sc.Add(scene.Line{X1: center.X, Y1: center.Y, X2: tip.X, Y2: tip.Y, Style: axis})

		lp := scene.Polar{Angle: a, Radius: radius + LabelOffset}.Cartesian(center)
		sc.Add(scene.Text{
			X: lp.X, Y: lp.Y,
			Content:  d.Axis,
			Anchor:   "middle",
			Baseline: "middle",
			FontSize: LabelSize,
			Style:    scene.Style{Class: "radar-label", Fill: LabelColor},
		})
	}

	polar := make([]scene.Polar, n)
	for i, d := range r.data {
		polar[i] = scene.Polar{Angle: Angle(i, n), Radius: clamp01(d.Value) * radius}
	}
	area := scene.ClosedRadial(center, polar, scene.Style{
		Class:        "radar-area",
		FillGradient: GradientID,
		Stroke:       AreaStroke,
		StrokeWidth:  AreaWidth,
	})
	sc.Add(area)

	for _, p := range area.Points {
		sc.Add(scene.Circle{
			CX: p.X, CY: p.Y, R: PointRadius,
			Style: scene.Style{Class: "radar-point", Fill: PointFill, Stroke: PointStroke, StrokeWidth: 1},
		})
	}

	r.container.Attach(sc)
	return sc
}

func clamp01(v float64) float64 { return max(0, min(v, 1)) }
