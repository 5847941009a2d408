package sink

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"time"

	svg "github.com/ajstarks/svgo/float"

	"github.com/luminexlabs/lumenviz/pkg/scene"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	animations bool
	prefix     string
	seed       uint64
}

// WithoutAnimations omits SMIL animations.
func WithoutAnimations() SVGOption { return func(r *svgRenderer) { r.animations = false } }

// WithIDPrefix overrides the namespace of gradient and filter ids.
func WithIDPrefix(p string) SVGOption { return func(r *svgRenderer) { r.prefix = p } }

// WithIDSeed mixes the render seed into generated gradient and filter ids, so
// scenes drawn from different seeds can share one page.
func WithIDSeed(seed uint64) SVGOption { return func(r *svgRenderer) { r.seed = seed } }

// RenderSVG renders sc as a standalone SVG document.
func RenderSVG(sc *scene.Scene, opts ...SVGOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, sc, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteSVG writes sc as SVG to w.
func WriteSVG(w io.Writer, sc *scene.Scene, opts ...SVGOption) error {
	if sc == nil {
		return errNilScene
	}
	r := svgRenderer{animations: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.prefix == "" {
		r.prefix = defsPrefix(sc, r.seed)
	}
	ids := newIDMap(sc, r.prefix)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(sc.Width, sc.Height, fmt.Sprintf(`viewBox="0 0 %s %s"`, scene.Num(sc.Width), scene.Num(sc.Height)))

	writeDefs(canvas, sc, ids)

	if sc.Background != "" {
		canvas.Rect(0, 0, sc.Width, sc.Height, "fill:"+sc.Background)
	}
	for _, e := range sc.Elements {
		writeElement(canvas, e, ids)
	}
	if r.animations {
		for _, a := range sc.Animations {
			writeAnimation(canvas.Writer, a)
		}
	}
	canvas.End()
	return ew.err
}

func writeDefs(canvas *svg.SVG, sc *scene.Scene, ids *idMap) {
	if len(sc.Gradients) == 0 && len(ids.blurs) == 0 {
		return
	}
	canvas.Def()
	for _, g := range sc.Gradients {
		id, _ := ids.gradient(g.ID)
		stops := make([]svg.Offcolor, len(g.Stops))
		for i, s := range g.Stops {
			stops[i] = svg.Offcolor{Offset: pct(s.Offset), Color: s.Color, Opacity: stopOpacity(s.Opacity)}
		}
		if g.Radial {
			canvas.RadialGradient(id, pct(g.X1), pct(g.Y1), pct(g.X2), pct(g.X1), pct(g.Y1), stops)
		} else {
			canvas.LinearGradient(id, pct(g.X1), pct(g.Y1), pct(g.X2), pct(g.Y2), stops)
		}
	}
	blurs := make([]float64, 0, len(ids.blurs))
	for b := range ids.blurs {
		blurs = append(blurs, b)
	}
	slices.Sort(blurs)
	for _, b := range blurs {
		// widen the filter region so the blur is not clipped at the bbox
		fmt.Fprintf(canvas.Writer,
			`<filter id="%s" x="-50%%" y="-50%%" width="200%%" height="200%%"><feGaussianBlur stdDeviation="%s"/></filter>`+"\n",
			ids.blurs[b], scene.Num(b))
	}
	canvas.DefEnd()
}

func writeElement(canvas *svg.SVG, e scene.Element, ids *idMap) {
	st := e.Attrs()
	attrs := elementAttrs(st)
	switch v := e.(type) {
	case scene.Line:
		canvas.Line(v.X1, v.Y1, v.X2, v.Y2, append(attrs, styleString(st, ids, false))...)
	case scene.Circle:
		canvas.Circle(v.CX, v.CY, v.R, append(attrs, styleString(st, ids, true))...)
	case scene.Rect:
		s := append(attrs, styleString(st, ids, true))
		if v.RX > 0 {
			canvas.Roundrect(v.X, v.Y, v.W, v.H, v.RX, v.RX, s...)
		} else {
			canvas.Rect(v.X, v.Y, v.W, v.H, s...)
		}
	case scene.Path:
		canvas.Path(scene.PathData(v), append(attrs, styleString(st, ids, true))...)
	case scene.Polygon:
		canvas.Path(scene.PolygonData(v), append(attrs, styleString(st, ids, true))...)
	case scene.Arc:
		if d := scene.ArcPathData(v); d != "" {
			canvas.Path(d, append(attrs, styleString(st, ids, true))...)
		}
	case scene.Text:
		canvas.Text(v.X, v.Y, v.Content, append(attrs, textStyle(v, ids))...)
	}
}

func elementAttrs(st scene.Style) []string {
	var attrs []string
	if st.ID != "" {
		attrs = append(attrs, fmt.Sprintf(`id="%s"`, st.ID))
	}
	if st.Class != "" {
		attrs = append(attrs, fmt.Sprintf(`class="%s"`, st.Class))
	}
	return attrs
}

// styleString builds a CSS style declaration. Lines have no fill.
func styleString(st scene.Style, ids *idMap, filled bool) string {
	var parts []string
	if filled {
		parts = append(parts, "fill:"+paint(st.Fill, st.FillGradient, ids, "#000"))
	}
	if stroke := paint(st.Stroke, st.StrokeGrad, ids, ""); stroke != "" {
		parts = append(parts, "stroke:"+stroke)
		if st.StrokeWidth > 0 {
			parts = append(parts, "stroke-width:"+scene.Num(st.StrokeWidth))
		}
	}
	if len(st.Dash) > 0 {
		ds := make([]string, len(st.Dash))
		for i, d := range st.Dash {
			ds[i] = scene.Num(d)
		}
		parts = append(parts, "stroke-dasharray:"+strings.Join(ds, ","))
	}
	if st.Opacity > 0 && st.Opacity < 1 {
		parts = append(parts, "opacity:"+scene.Num(st.Opacity))
	}
	if id, ok := ids.blurs[st.Blur]; ok && st.Blur > 0 {
		parts = append(parts, "filter:url(#"+id+")")
	}
	return strings.Join(parts, ";")
}

func textStyle(t scene.Text, ids *idMap) string {
	parts := []string{styleString(t.Style, ids, true)}
	if t.Anchor != "" {
		parts = append(parts, "text-anchor:"+t.Anchor)
	}
	if t.Baseline != "" {
		parts = append(parts, "dominant-baseline:"+t.Baseline)
	}
	if t.FontSize > 0 {
		parts = append(parts, "font-size:"+scene.Num(t.FontSize)+"px")
	}
	if t.FontWeight != "" {
		parts = append(parts, "font-weight:"+t.FontWeight)
	}
	if t.FontFamily != "" {
		parts = append(parts, "font-family:"+t.FontFamily)
	}
	return strings.Join(parts, ";")
}

func paint(color, gradient string, ids *idMap, fallback string) string {
	if gradient != "" {
		if id, ok := ids.gradient(gradient); ok {
			return "url(#" + id + ")"
		}
	}
	if color != "" {
		return color
	}
	return fallback
}

func writeAnimation(w io.Writer, a scene.Animation) {
	vals := make([]string, len(a.Values))
	for i, v := range a.Values {
		vals[i] = scene.Num(v)
	}
	fmt.Fprintf(w, `<animate xlink:href="#%s" attributeName="%s" values="%s" dur="%s"`,
		a.Target, a.Attr, strings.Join(vals, ";"), seconds(a.Duration))
	if len(a.KeyTimes) > 0 {
		kts := make([]string, len(a.KeyTimes))
		for i, k := range a.KeyTimes {
			kts[i] = scene.Num(k)
		}
		fmt.Fprintf(w, ` keyTimes="%s"`, strings.Join(kts, ";"))
	}
	if len(a.Begins) > 0 {
		bs := make([]string, len(a.Begins))
		for i, b := range a.Begins {
			bs[i] = seconds(b)
		}
		fmt.Fprintf(w, ` begin="%s"`, strings.Join(bs, ";"))
	}
	if a.Repeat {
		io.WriteString(w, ` repeatCount="indefinite"`)
	}
	io.WriteString(w, "/>\n")
}

func seconds(d time.Duration) string {
	return scene.Num(d.Seconds()) + "s"
}

// pct converts a 0..1 fraction to the integer percentage svgo expects.
func pct(f float64) uint8 {
	return uint8(math.Round(max(0, min(f, 1)) * 100))
}

func stopOpacity(o float64) float64 {
	if o <= 0 {
		return 1
	}
	return o
}

// errWriter remembers the first write error so the svgo calls, which do not
// return errors, can be checked once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
