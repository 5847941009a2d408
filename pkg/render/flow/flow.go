// Package flow draws a data-flow diagram: columns of labelled boxes where
// every box of one column links to every box of the next with a curved,
// gradient-stroked connector.
package flow

import (
	"fmt"
	"slices"
	"time"

	"github.com/luminexlabs/lumenviz/pkg/errors"
	"github.com/luminexlabs/lumenviz/pkg/random"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

// VizType names this renderer in hooks and pipeline output.
const VizType = "flow"

// Styling.
const (
	GradientID    = "flow-gradient"
	LinkWidth     = 2.0
	BrightOpacity = 0.6
	DimOpacity    = 0.3
	BoxHeight     = 28.0
	MaxBoxWidth   = 140.0
	BoxRadius     = 6.0
	BoxFill       = "#12121a"
	BoxStroke     = "#2a2a3a"
	ItemColor     = "#e5e5e5"
	ItemSize      = 11.0
	DashPeriod    = time.Second
)

// DashPattern is the on/off pattern of dashed connectors.
var DashPattern = []float64{5, 5}

// Column is one stage of the flow.
type Column struct {
	Name  string   `json:"name" toml:"name" yaml:"name"`
	Items []string `json:"items" toml:"items" yaml:"items"`
}

// DefaultColumns returns the three-stage pipeline shown when no columns are given.
func DefaultColumns() []Column {
	return []Column{
		{Name: "Inputs", Items: []string{"View 1", "View 2", "View 3"}},
		{Name: "Model", Items: []string{"Backbone", "Attention"}},
		{Name: "Outputs", Items: []string{"Concepts", "Diagnosis"}},
	}
}

// ValidateColumns requires at least two columns with at least one item each.
func ValidateColumns(cols []Column) error {
	if len(cols) < 2 {
		return errors.New(errors.ErrCodeInvalidInput, "flow needs at least two columns, got %d", len(cols))
	}
	for i, c := range cols {
		if len(c.Items) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "flow column %d (%q) has no items", i, c.Name)
		}
	}
	return nil
}

// LinkCount returns the number of connectors between adjacent columns.
func LinkCount(cols []Column) int {
	n := 0
	for i := 0; i+1 < len(cols); i++ {
		n += len(cols[i].Items) * len(cols[i+1].Items)
	}
	return n
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRandom sets the source for connector opacity and dashing.
func WithRandom(src random.Source) Option { return func(r *Renderer) { r.rng = src } }

// Renderer draws a flow diagram into one container.
type Renderer struct {
	container *scene.Container
	columns   []Column
	rng       random.Source
}

// New validates columns and binds a renderer to mountID. A missing container
// yields an inert renderer.
func New(doc *scene.Document, mountID string, columns []Column, opts ...Option) (*Renderer, error) {
	if err := ValidateColumns(columns); err != nil {
		return nil, err
	}
	r := &Renderer{columns: cloneColumns(columns)}
	for _, opt := range opts {
		opt(r)
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

type box struct {
	x, y, w, h float64
}

func (b box) right() scene.Point { return scene.Point{X: b.x + b.w, Y: b.y + b.h/2} }
func (b box) left() scene.Point  { return scene.Point{X: b.x, Y: b.y + b.h/2} }

func (r *Renderer) layout(width, height float64) [][]box {
	n := len(r.columns)
	colWidth := width / float64(n+1)
	bw := min(colWidth*0.8, MaxBoxWidth)
	out := make([][]box, n)
	for i, c := range r.columns {
		cx := colWidth * float64(i+1)
		ys := scene.EvenSpread(len(c.Items), 0, height)
		for _, y := range ys {
			out[i] = append(out[i], box{x: cx - bw/2, y: y - BoxHeight/2, w: bw, h: BoxHeight})
		}
	}
	return out
}

// Render draws connectors first and item boxes on top, then attaches the scene.
func (r *Renderer) Render() *scene.Scene {
	if r.container == nil {
		return nil
	}
	w, h := r.container.Size()
	boxes := r.layout(w, h)

	sc := scene.New(w, h)
	sc.AddGradient(scene.Gradient{
		ID: GradientID,
		X1: 0, Y1: 0, X2: 1, Y2: 0,
		Stops: []scene.GradientStop{
			{Offset: 0, Color: "#00d4ff", Opacity: 0.3},
			{Offset: 0.5, Color: "#7c3aed", Opacity: 0.5},
			{Offset: 1, Color: "#10b981", Opacity: 0.3},
		},
	})

	for c := 0; c+1 < len(boxes); c++ {
		for s, src := range boxes[c] {
			for t, dst := range boxes[c+1] {
				style := scene.Style{
					ID:          fmt.Sprintf("flow-%d-%d-%d", c, s, t),
					Class:       "flow-link",
					Fill:        "none",
					StrokeGrad:  GradientID,
					StrokeWidth: LinkWidth,
					Opacity:     DimOpacity,
				}
				if r.rng.Float64() > 0.5 {
					style.Opacity = BrightOpacity
				}
				dashed := r.rng.Float64() > 0.5
				if dashed {
					style.Dash = slices.Clone(DashPattern)
				}
				sc.Add(scene.CubicLink(src.right(), dst.left(), style))
				if dashed {
					sc.Animate(scene.Animation{
						Target:   style.ID,
						Attr:     "stroke-dashoffset",
						Values:   []float64{10, 0},
						Duration: DashPeriod,
						Repeat:   true,
					})
				}
			}
		}
	}

	for c, col := range r.columns {
		for i, item := range col.Items {
			b := boxes[c][i]
			sc.Add(
				scene.Rect{
					X: b.x, Y: b.y, W: b.w, H: b.h, RX: BoxRadius,
					Style: scene.Style{Class: "flow-item", Fill: BoxFill, Stroke: BoxStroke, StrokeWidth: 1},
				},
				scene.Text{
					X: b.x + b.w/2, Y: b.y + b.h/2,
					Content:  item,
					Anchor:   "middle",
					Baseline: "middle",
					FontSize: ItemSize,
					Style:    scene.Style{Class: "flow-label", Fill: ItemColor},
				},
			)
		}
	}

	r.container.Attach(sc)
	return sc
}

func cloneColumns(cols []Column) []Column {
	out := make([]Column, len(cols))
	for i, c := range cols {
		out[i] = Column{Name: c.Name, Items: slices.Clone(c.Items)}
	}
	return out
}
