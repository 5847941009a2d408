// Package gauge draws a half-circle confidence gauge: a dark track, a value
// arc filled with a red-amber-green gradient, and a percentage readout.
//
// Angles follow the arc convention of the scene package: 0 points up and
// angles grow clockwise, so the track runs from -pi/2 (left) to pi/2 (right).
package gauge

import (
	"fmt"
	"math"
	"sync"

	"github.com/luminexlabs/lumenviz/pkg/errors"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

// VizType names this renderer in hooks and pipeline output.
const VizType = "gauge"

// Geometry and styling.
const (
	DefaultValue   = 0.967
	DefaultLabel   = "Confidence"
	OuterRadius    = 80.0
	Thickness      = 15.0
	BottomInset    = 20.0
	TrackColor     = "#1a1a24"
	TextColor      = "#10b981"
	TextSize       = 28.0
	TextFont       = "JetBrains Mono, monospace"
	CaptionColor   = "#666"
	CaptionSize    = 11.0
	GradientID     = "gauge-gradient"
	startAngle     = -math.Pi / 2
	textRaise      = 20.0
	captionLowered = 5.0
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLabel sets the caption under the percentage.
func WithLabel(s string) Option { return func(r *Renderer) { r.label = s } }

// WithRadius sets the outer radius; the track keeps its thickness.
func WithRadius(outer float64) Option { return func(r *Renderer) { r.outer = outer } }

// Renderer draws a gauge into one container.
type Renderer struct {
	container *scene.Container
	label     string
	outer     float64

	mu    sync.Mutex
	value float64
}

// New binds a renderer to mountID. The value is clamped to [0,1]; NaN is
// rejected. A missing container yields an inert renderer.
func New(doc *scene.Document, mountID string, value float64, opts ...Option) (*Renderer, error) {
	if math.IsNaN(value) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "gauge value cannot be NaN")
	}
	r := &Renderer{label: DefaultLabel, outer: OuterRadius, value: Clamp(value)}
	for _, opt := range opts {
		opt(r)
	}
	if err := errors.ValidateSize("gauge radius", r.outer); err != nil {
		return nil, err
	}
	r.container, _ = doc.Lookup(mountID)
	return r, nil
}

// Inert reports whether the renderer has no container to draw into.
func (r *Renderer) Inert() bool { return r.container == nil }

// Value returns the clamped value.
func (r *Renderer) Value() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// Clamp limits v to [0,1].
func Clamp(v float64) float64 { return max(0, min(v, 1)) }

// Sweep returns the value arc's angular extent: pi times the clamped value.
func Sweep(v float64) float64 { return math.Pi * Clamp(v) }

// FormatPercent renders v as a percentage with one decimal, e.g. "96.7%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", Clamp(v)*100)
}

// SetValue changes the value and re-renders.
func (r *Renderer) SetValue(v float64) (*scene.Scene, error) {
	if math.IsNaN(v) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "gauge value cannot be NaN")
	}
	r.mu.Lock()
	r.value = Clamp(v)
	r.mu.Unlock()
	return r.Render(), nil
}

// Render draws the track, the value arc and the labels, then attaches the scene.
func (r *Renderer) Render() *scene.Scene {
	if r.container == nil {
		return nil
	}
	v := r.Value()
	w, h := r.container.Size()
	cx, cy := w/2, h-BottomInset
	inner := max(r.outer-Thickness, 0)

	sc := scene.New(w, h)
	sc.AddGradient(scene.Gradient{
		ID: GradientID,
		X1: 0, Y1: 0, X2: 1, Y2: 0,
		Stops: []scene.GradientStop{
			{Offset: 0, Color: "#ef4444"},
			{Offset: 0.5, Color: "#f59e0b"},
			{Offset: 1, Color: "#10b981"},
		},
	})

	sc.Add(scene.Arc{
		CX: cx, CY: cy, Inner: inner, Outer: r.outer,
		Start: startAngle, End: math.Pi / 2,
		Style: scene.Style{Class: "gauge-track", Fill: TrackColor},
	})
	sc.Add(scene.Arc{
		CX: cx, CY: cy, Inner: inner, Outer: r.outer,
		Start: startAngle, End: startAngle + Sweep(v),
		Style: scene.Style{Class: "gauge-value", FillGradient: GradientID},
	})
	sc.Add(scene.Text{
		X: cx, Y: cy - textRaise,
		Content:    FormatPercent(v),
		Anchor:     "middle",
		FontSize:   TextSize,
		FontWeight: "700",
		FontFamily: TextFont,
		Style:      scene.Style{Class: "gauge-text", Fill: TextColor},
	})
	sc.Add(scene.Text{
		X: cx, Y: cy + captionLowered,
		Content:  r.label,
		Anchor:   "middle",
		FontSize: CaptionSize,
		Style:    scene.Style{Class: "gauge-label", Fill: CaptionColor},
	})

	r.container.Attach(sc)
	return sc
}
