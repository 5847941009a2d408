package sink

import (
	"bytes"
	"image/color"
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/luminexlabs/lumenviz/pkg/colorscale"
	"github.com/luminexlabs/lumenviz/pkg/errors"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterises sc. Gradients are drawn, blur filters and animations
// are not; text uses a fixed bitmap face regardless of font size.
func RenderPNG(sc *scene.Scene, opts ...PNGOption) ([]byte, error) {
	if sc == nil {
		return nil, errNilScene
	}
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if err := errors.ValidateSize("png scale", r.scale); err != nil {
		return nil, err
	}

	w := max(1, int(math.Ceil(sc.Width*r.scale)))
	h := max(1, int(math.Ceil(sc.Height*r.scale)))
	dc := gg.NewContext(w, h)
	if sc.Background != "" {
		dc.SetColor(colorscale.NRGBA(sc.Background, 1))
		dc.Clear()
	}
	dc.Scale(r.scale, r.scale)
	dc.SetFontFace(basicfont.Face7x13)

	for _, e := range sc.Elements {
		drawElement(dc, sc, e)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawElement(dc *gg.Context, sc *scene.Scene, e scene.Element) {
	st := e.Attrs()
	dc.SetDash(st.Dash...)
	defer dc.SetDash()

	switch v := e.(type) {
	case scene.Line:
		dc.DrawLine(v.X1, v.Y1, v.X2, v.Y2)
		stroke(dc, sc, st, bounds(e))
	case scene.Circle:
		dc.DrawCircle(v.CX, v.CY, v.R)
		fillAndStroke(dc, sc, st, bounds(e))
	case scene.Rect:
		if v.RX > 0 {
			dc.DrawRoundedRectangle(v.X, v.Y, v.W, v.H, v.RX)
		} else {
			dc.DrawRectangle(v.X, v.Y, v.W, v.H)
		}
		fillAndStroke(dc, sc, st, bounds(e))
	case scene.Path:
		tracePath(dc, v)
		fillAndStroke(dc, sc, st, bounds(e))
	case scene.Polygon:
		dc.NewSubPath()
		for i, p := range v.Points {
			if i == 0 {
				dc.MoveTo(p.X, p.Y)
			} else {
				dc.LineTo(p.X, p.Y)
			}
		}
		dc.ClosePath()
		fillAndStroke(dc, sc, st, bounds(e))
	case scene.Arc:
		if v.Sweep() <= 0 || v.Outer <= 0 {
			return
		}
		traceArc(dc, v)
		fillAndStroke(dc, sc, st, bounds(e))
	case scene.Text:
		dc.SetColor(colorscale.NRGBA(or(st.Fill, "#000"), opacity(st)))
		ax, ay := 0.0, 0.0
		switch v.Anchor {
		case "middle":
			ax = 0.5
		case "end":
			ax = 1
		}
		if v.Baseline == "middle" {
			ay = 0.5
		}
		dc.DrawStringAnchored(v.Content, v.X, v.Y, ax, ay)
	}
}

func tracePath(dc *gg.Context, p scene.Path) {
	dc.NewSubPath()
	for _, seg := range p.Segments {
		pts := seg.Points
		switch {
		case seg.Op == scene.MoveTo && len(pts) >= 1:
			dc.MoveTo(pts[0].X, pts[0].Y)
		case seg.Op == scene.LineTo && len(pts) >= 1:
			dc.LineTo(pts[0].X, pts[0].Y)
		case seg.Op == scene.QuadTo && len(pts) >= 2:
			dc.QuadraticTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y)
		case seg.Op == scene.CubicTo && len(pts) >= 3:
			dc.CubicTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		}
	}
	if p.Closed {
		dc.ClosePath()
	}
}

// traceArc converts from arc angles (0 = up) to gg angles (0 = +x).
func traceArc(dc *gg.Context, a scene.Arc) {
	start, end := a.Start-math.Pi/2, a.End-math.Pi/2
	dc.NewSubPath()
	dc.DrawArc(a.CX, a.CY, a.Outer, start, end)
	if a.Inner > 0 {
		dc.DrawArc(a.CX, a.CY, a.Inner, end, start)
	} else {
		dc.LineTo(a.CX, a.CY)
	}
	dc.ClosePath()
}

func fillAndStroke(dc *gg.Context, sc *scene.Scene, st scene.Style, box bbox) {
	if st.Fill != "none" {
		if p, ok := gradientPattern(sc, st.FillGradient, st, box); ok {
			dc.SetFillStyle(p)
		} else {
			dc.SetColor(colorscale.NRGBA(or(st.Fill, "#000"), opacity(st)))
		}
		if st.Stroke != "" || st.StrokeGrad != "" {
			dc.FillPreserve()
		} else {
			dc.Fill()
			return
		}
	}
	stroke(dc, sc, st, box)
}

func stroke(dc *gg.Context, sc *scene.Scene, st scene.Style, box bbox) {
	if st.Stroke == "" && st.StrokeGrad == "" {
		dc.ClearPath()
		return
	}
	if p, ok := gradientPattern(sc, st.StrokeGrad, st, box); ok {
		dc.SetStrokeStyle(p)
	} else {
		dc.SetColor(colorscale.NRGBA(st.Stroke, opacity(st)))
	}
	dc.SetLineWidth(or(st.StrokeWidth, 1))
	dc.Stroke()
}

// gradientPattern maps a bounding-box-relative gradient onto box.
func gradientPattern(sc *scene.Scene, id string, st scene.Style, box bbox) (gg.Pattern, bool) {
	if id == "" {
		return nil, false
	}
	g, ok := sc.Gradient(id)
	if !ok {
		return nil, false
	}
	var grad gg.Gradient
	if g.Radial {
		cx, cy := box.x+g.X1*box.w, box.y+g.Y1*box.h
		r := g.X2 * math.Max(box.w, box.h)
		grad = gg.NewRadialGradient(cx, cy, 0, cx, cy, r)
	} else {
		grad = gg.NewLinearGradient(box.x+g.X1*box.w, box.y+g.Y1*box.h, box.x+g.X2*box.w, box.y+g.Y2*box.h)
	}
	for _, s := range g.Stops {
		grad.AddColorStop(s.Offset, stopColor(s, opacity(st)))
	}
	return grad, true
}

func stopColor(s scene.GradientStop, elementOpacity float64) color.Color {
	return colorscale.NRGBA(s.Color, stopOpacity(s.Opacity)*elementOpacity)
}

func opacity(st scene.Style) float64 {
	if st.Opacity <= 0 {
		return 1
	}
	return min(st.Opacity, 1)
}

func or[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}

type bbox struct {
	x, y, w, h float64
}

func boundsOf(pts []scene.Point) bbox {
	if len(pts) == 0 {
		return bbox{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return bbox{minX, minY, maxX - minX, maxY - minY}
}

// bounds approximates an element's bounding box for gradient mapping.
func bounds(e scene.Element) bbox {
	switch v := e.(type) {
	case scene.Line:
		return boundsOf([]scene.Point{{X: v.X1, Y: v.Y1}, {X: v.X2, Y: v.Y2}})
	case scene.Circle:
		return bbox{v.CX - v.R, v.CY - v.R, 2 * v.R, 2 * v.R}
	case scene.Rect:
		return bbox{v.X, v.Y, v.W, v.H}
	case scene.Polygon:
		return boundsOf(v.Points)
	case scene.Path:
		var pts []scene.Point
		for _, s := range v.Segments {
			pts = append(pts, s.Points...)
		}
		return boundsOf(pts)
	case scene.Arc:
		// sample the outer rim; good enough for gradient placement
		pts := []scene.Point{{X: v.CX, Y: v.CY}}
		const steps = 16
		for i := range steps + 1 {
			a := v.Start + v.Sweep()*float64(i)/steps
			pts = append(pts, scene.Point{X: v.CX + v.Outer*math.Sin(a), Y: v.CY - v.Outer*math.Cos(a)})
		}
		return boundsOf(pts)
	}
	return bbox{}
}
