package scene

import (
	"time"
)

// Kind identifies a primitive type.
type Kind string

// Primitive kinds.
const (
	KindLine    Kind = "line"
	KindCircle  Kind = "circle"
	KindRect    Kind = "rect"
	KindPath    Kind = "path"
	KindPolygon Kind = "polygon"
	KindArc     Kind = "arc"
	KindText    Kind = "text"
)

// Point is a 2D position in user units.
type Point struct {
	X, Y float64
}

// Style holds presentation attributes shared by all primitives.
// Zero values mean "unset": an Opacity of 0 renders fully opaque and an
// empty Fill falls back to the format's default.
type Style struct {
	ID           string
	Class        string
	Fill         string  // hex colour or "none"
	FillGradient string  // gradient id; takes precedence over Fill
	Stroke       string  // hex colour
	StrokeGrad   string  // gradient id; takes precedence over Stroke
	StrokeWidth  float64 // user units
	Opacity      float64 // 0 means unset
	Dash         []float64
	Blur         float64 // gaussian blur std deviation
}

// Element is a drawable primitive.
type Element interface {
	Kind() Kind
	Attrs() Style
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Style
}

// Circle is a circle centred on (CX, CY).
type Circle struct {
	CX, CY, R float64
	Style
}

// Rect is an axis-aligned rectangle with optional rounded corners.
type Rect struct {
	X, Y, W, H float64
	RX         float64
	Style
}

// PathOp is a path drawing command.
type PathOp int

// Path commands.
const (
	MoveTo PathOp = iota
	LineTo
	QuadTo  // one control point, then the end point
	CubicTo // two control points, then the end point
)

// Segment is one path command with its points.
type Segment struct {
	Op     PathOp
	Points []Point
}

// Path is a sequence of segments. When Closed is set the last point joins the
// first.
type Path struct {
	Segments []Segment
	Closed   bool
	Style
}

// Polygon is a closed polyline: the last vertex always joins the first.
type Polygon struct {
	Points []Point
	Style
}

// Arc is an annular sector centred on (CX, CY) between radii Inner and
// Outer, sweeping clockwise from Start to End (radians, 0 = 12 o'clock).
type Arc struct {
	CX, CY       float64
	Inner, Outer float64
	Start, End   float64
	Style
}

// Text is a single-line label.
type Text struct {
	X, Y       float64
	Content    string
	Anchor     string // start, middle, end
	Baseline   string // e.g. middle; empty for alphabetic
	FontSize   float64
	FontWeight string
	FontFamily string
	Style
}

func (Line) Kind() Kind    { return KindLine }
func (Circle) Kind() Kind  { return KindCircle }
func (Rect) Kind() Kind    { return KindRect }
func (Path) Kind() Kind    { return KindPath }
func (Polygon) Kind() Kind { return KindPolygon }
func (Arc) Kind() Kind     { return KindArc }
func (Text) Kind() Kind    { return KindText }

func (e Line) Attrs() Style    { return e.Style }
func (e Circle) Attrs() Style  { return e.Style }
func (e Rect) Attrs() Style    { return e.Style }
func (e Path) Attrs() Style    { return e.Style }
func (e Polygon) Attrs() Style { return e.Style }
func (e Arc) Attrs() Style     { return e.Style }
func (e Text) Attrs() Style    { return e.Style }

// Sweep returns the angular extent of the arc.
func (a Arc) Sweep() float64 { return a.End - a.Start }

// Edges returns the polygon's sides as point pairs, including the closing
// side from the last vertex back to the first.
func (p Polygon) Edges() [][2]Point {
	n := len(p.Points)
	if n < 2 {
		return nil
	}
	edges := make([][2]Point, n)
	for i := range n {
		edges[i] = [2]Point{p.Points[i], p.Points[(i+1)%n]}
	}
	return edges
}

// GradientStop is one colour stop of a gradient.
type GradientStop struct {
	Offset  float64 // 0..1
	Color   string
	Opacity float64 // 0 means opaque
}

// Gradient is a linear or radial gradient definition. Coordinates are
// fractions of the painted element's bounding box.
type Gradient struct {
	ID     string
	Radial bool
	// Linear: from (X1,Y1) to (X2,Y2). Radial: centre (X1,Y1), radius X2.
	X1, Y1, X2, Y2 float64
	Stops          []GradientStop
}

// Animation describes a SMIL-style attribute animation on one element.
type Animation struct {
	Target   string    // element id
	Attr     string    // animated attribute, e.g. "r"
	Values   []float64 // keyframe values
	KeyTimes []float64 // keyframe times in [0,1]; empty for even spacing
	Duration time.Duration
	Begins   []time.Duration // start offsets; empty starts at 0
	Repeat   bool            // repeat indefinitely
}

// Scene is the output of one render pass.
type Scene struct {
	Width, Height float64
	Background    string
	Gradients     []Gradient
	Elements      []Element
	Animations    []Animation
}

// New allocates an empty scene of the given size.
func New(width, height float64) *Scene {
	return &Scene{Width: width, Height: height}
}

// Add appends elements in paint order.
func (s *Scene) Add(elems ...Element) {
	s.Elements = append(s.Elements, elems...)
}

// AddGradient registers a gradient definition.
func (s *Scene) AddGradient(g Gradient) {
	s.Gradients = append(s.Gradients, g)
}

// Animate registers an animation.
func (s *Scene) Animate(a Animation) {
	s.Animations = append(s.Animations, a)
}

// Gradient finds a gradient by id.
func (s *Scene) Gradient(id string) (Gradient, bool) {
	for _, g := range s.Gradients {
		if g.ID == id {
			return g, true
		}
	}
	return Gradient{}, false
}

// ByClass returns the elements carrying class, in paint order.
func (s *Scene) ByClass(class string) []Element {
	var out []Element
	for _, e := range s.Elements {
		if e.Attrs().Class == class {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many elements match kind and class. An empty kind or
// class matches anything.
func (s *Scene) Count(kind Kind, class string) int {
	n := 0
	for _, e := range s.Elements {
		if kind != "" && e.Kind() != kind {
			continue
		}
		if class != "" && e.Attrs().Class != class {
			continue
		}
		n++
	}
	return n
}

// Len returns the number of elements.
func (s *Scene) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Elements)
}
