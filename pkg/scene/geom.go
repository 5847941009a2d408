package scene

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Polar is a point given by screen angle (radians, 0 = +x, clockwise) and radius.
type Polar struct {
	Angle, Radius float64
}

// Cartesian converts p to a point relative to center.
func (p Polar) Cartesian(center Point) Point {
	return Point{
		X: center.X + math.Cos(p.Angle)*p.Radius,
		Y: center.Y + math.Sin(p.Angle)*p.Radius,
	}
}

// ClosedRadial converts an ordered polar sequence into a closed polygon
// around center: vertex i follows vertex i-1 and vertex 0 follows the last.
func ClosedRadial(center Point, pts []Polar, style Style) Polygon {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = p.Cartesian(center)
	}
	return Polygon{Points: out, Style: style}
}

// CubicLink returns a horizontal S-curve from a to b whose control points
// sit at the horizontal midpoint.
func CubicLink(a, b Point, style Style) Path {
	mx := (a.X + b.X) / 2
	return Path{
		Segments: []Segment{
			{Op: MoveTo, Points: []Point{a}},
			{Op: CubicTo, Points: []Point{{mx, a.Y}, {mx, b.Y}, b}},
		},
		Style: style,
	}
}

// arcPoint converts a d3 arc angle (0 = up, clockwise) and radius into a point.
func arcPoint(cx, cy, angle, r float64) Point {
	return Point{X: cx + r*math.Sin(angle), Y: cy - r*math.Cos(angle)}
}

// ArcOutline returns the four corners of an annular sector.
func ArcOutline(a Arc) (outerStart, outerEnd, innerEnd, innerStart Point) {
	outerStart = arcPoint(a.CX, a.CY, a.Start, a.Outer)
	outerEnd = arcPoint(a.CX, a.CY, a.End, a.Outer)
	innerEnd = arcPoint(a.CX, a.CY, a.End, a.Inner)
	innerStart = arcPoint(a.CX, a.CY, a.Start, a.Inner)
	return
}

// ArcPathData renders an annular sector as SVG path data. A zero sweep
// yields an empty string; sweeps of a full turn or more are drawn as a ring.
func ArcPathData(a Arc) string {
	sweep := a.Sweep()
	if sweep <= 0 || a.Outer <= 0 {
		return ""
	}
	if sweep >= 2*math.Pi {
		sweep = 2*math.Pi - 1e-6
		a.End = a.Start + sweep
	}
	large := 0
	if sweep > math.Pi {
		large = 1
	}
	os, oe, ie, is := ArcOutline(a)

	var b strings.Builder
	fmt.Fprintf(&b, "M%s,%s", Num(os.X), Num(os.Y))
	fmt.Fprintf(&b, "A%s,%s,0,%d,1,%s,%s", Num(a.Outer), Num(a.Outer), large, Num(oe.X), Num(oe.Y))
	if a.Inner > 0 {
		fmt.Fprintf(&b, "L%s,%s", Num(ie.X), Num(ie.Y))
		fmt.Fprintf(&b, "A%s,%s,0,%d,0,%s,%s", Num(a.Inner), Num(a.Inner), large, Num(is.X), Num(is.Y))
	} else {
		fmt.Fprintf(&b, "L%s,%s", Num(a.CX), Num(a.CY))
	}
	b.WriteString("Z")
	return b.String()
}

// PathData renders a path as SVG path data.
func PathData(p Path) string {
	var b strings.Builder
	for _, seg := range p.Segments {
		switch seg.Op {
		case MoveTo:
			b.WriteString("M")
		case LineTo:
			b.WriteString("L")
		case QuadTo:
			b.WriteString("Q")
		case CubicTo:
			b.WriteString("C")
		}
		for i, pt := range seg.Points {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(Num(pt.X) + "," + Num(pt.Y))
		}
	}
	if p.Closed {
		b.WriteString("Z")
	}
	return b.String()
}

// PolygonData renders a polygon as closed SVG path data.
func PolygonData(p Polygon) string {
	if len(p.Points) == 0 {
		return ""
	}
	var b strings.Builder
	for i, pt := range p.Points {
		if i == 0 {
			b.WriteString("M")
		} else {
			b.WriteString("L")
		}
		b.WriteString(Num(pt.X) + "," + Num(pt.Y))
	}
	b.WriteString("Z")
	return b.String()
}

// Num formats a coordinate with at most three decimals and no trailing zeros.
func Num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // normalise -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// EvenSpread places k items across [start, start+span] so that item j sits at
// start + span/(k+1)*(j+1). Items never touch either end.
func EvenSpread(k int, start, span float64) []float64 {
	if k <= 0 {
		return nil
	}
	step := span / float64(k+1)
	out := make([]float64, k)
	for j := range k {
		out[j] = start + step*float64(j+1)
	}
	return out
}
