// Package heatmap renders a square scalar field as a grid of coloured cells.
//
// Every render pass generates a new field around a freshly jittered centre,
// so consecutive passes differ even with identical parameters.
package heatmap

import (
	"sync"

	"github.com/luminexlabs/lumenviz/pkg/colorscale"
	"github.com/luminexlabs/lumenviz/pkg/random"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

// VizType names this renderer in hooks and pipeline output.
const VizType = "heatmap"

// Cell styling.
const (
	CellGap    = 1.0
	CellRadius = 2.0
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithParams overrides the field parameters.
func WithParams(p Params) Option { return func(r *Renderer) { r.params = p } }

// WithGrid sets the number of cells per side.
func WithGrid(g int) Option { return func(r *Renderer) { r.params.Grid = g } }

// WithRandom sets the source for centre jitter and noise.
func WithRandom(src random.Source) Option { return func(r *Renderer) { r.rng = src } }

// WithScale sets the colour scale.
func WithScale(s colorscale.Scale) Option { return func(r *Renderer) { r.scale = s } }

// Renderer draws a heatmap into one container.
type Renderer struct {
	container *scene.Container
	params    Params
	rng       random.Source
	scale     colorscale.Scale

	mu    sync.Mutex
	field Field
}

// New binds a renderer to mountID. A missing container yields an inert
// renderer; invalid parameters are rejected.
func New(doc *scene.Document, mountID string, opts ...Option) (*Renderer, error) {
	r := &Renderer{params: DefaultParams(), scale: colorscale.Inferno}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.params.Validate(); err != nil {
		return nil, err
	}
	if r.rng == nil {
		r.rng = random.NewTime()
	}
	r.rng = random.NewLocked(r.rng)
	r.container, _ = doc.Lookup(mountID)
	return r, nil
}

// Inert reports whether the renderer has no container to draw into.
func (r *Renderer) Inert() bool { return r.container == nil }

// Params returns the field parameters.
func (r *Renderer) Params() Params { return r.params }

// Render generates a field and attaches a scene of Grid x Grid cells. The
// cell size is the container width divided by the grid size.
func (r *Renderer) Render() *scene.Scene {
	if r.container == nil {
		return nil
	}
	f := generate(r.params, r.rng)
	r.mu.Lock()
	r.field = f
	r.mu.Unlock()

	w, h := r.container.Size()
	cell := w / float64(f.Size)
	size := max(cell-CellGap, 0)

	sc := scene.New(w, h)
	for i := range f.Size {
		for j := range f.Size {
			sc.Add(scene.Rect{
				X: float64(j) * cell, Y: float64(i) * cell,
				W: size, H: size, RX: CellRadius,
				Style: scene.Style{Class: "heatmap-cell", Fill: r.scale.Hex(f.At(i, j))},
			})
		}
	}
	r.container.Attach(sc)
	return sc
}

// Update discards the current scene and renders a fresh field.
func (r *Renderer) Update() *scene.Scene {
	if r.container == nil {
		return nil
	}
	r.container.Clear()
	return r.Render()
}

// Field returns the field behind the most recent render.
func (r *Renderer) Field() Field {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.field
}
