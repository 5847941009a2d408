package sink

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/luminexlabs/lumenviz/pkg/errors"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

var errNilScene = errors.New(errors.ErrCodeInvalidInput, "no scene to render (missing mount point?)")

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	vizType string
	seed    uint64
	meta    map[string]any
	indent  bool
}

// WithJSONVizType records which renderer produced the scene.
func WithJSONVizType(v string) JSONOption { return func(r *jsonRenderer) { r.vizType = v } }

// WithJSONSeed records the random seed, enabling reproducible re-rendering.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

// WithJSONMeta attaches renderer-specific metadata, such as a heatmap summary.
func WithJSONMeta(key string, v any) JSONOption {
	return func(r *jsonRenderer) {
		if r.meta == nil {
			r.meta = map[string]any{}
		}
		r.meta[key] = v
	}
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Viz        string          `json:"viz,omitempty"`
	Seed       uint64          `json:"seed,omitempty"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Background string          `json:"background,omitempty"`
	Gradients  []jsonGradient  `json:"gradients,omitempty"`
	Elements   []jsonElement   `json:"elements"`
	Animations []jsonAnimation `json:"animations,omitempty"`
	Meta       map[string]any  `json:"meta,omitempty"`
}

type jsonGradient struct {
	ID     string     `json:"id"`
	Radial bool       `json:"radial,omitempty"`
	Coords [4]float64 `json:"coords"`
	Stops  []jsonStop `json:"stops"`
}

type jsonStop struct {
	Offset  float64 `json:"offset"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity,omitempty"`
}

type jsonElement struct {
	Kind  scene.Kind     `json:"kind"`
	ID    string         `json:"id,omitempty"`
	Class string         `json:"class,omitempty"`
	Geom  map[string]any `json:"geom"`
	Style *jsonStyle     `json:"style,omitempty"`
}

type jsonStyle struct {
	Fill         string    `json:"fill,omitempty"`
	FillGradient string    `json:"fill_gradient,omitempty"`
	Stroke       string    `json:"stroke,omitempty"`
	StrokeGrad   string    `json:"stroke_gradient,omitempty"`
	StrokeWidth  float64   `json:"stroke_width,omitempty"`
	Opacity      float64   `json:"opacity,omitempty"`
	Dash         []float64 `json:"dash,omitempty"`
	Blur         float64   `json:"blur,omitempty"`
}

type jsonAnimation struct {
	Target   string    `json:"target"`
	Attr     string    `json:"attr"`
	Values   []float64 `json:"values"`
	KeyTimes []float64 `json:"key_times,omitempty"`
	Duration float64   `json:"duration_ms"`
	Begins   []float64 `json:"begins_ms,omitempty"`
	Repeat   bool      `json:"repeat,omitempty"`
}

// RenderJSON serializes sc's primitives, gradients and animations.
func RenderJSON(sc *scene.Scene, opts ...JSONOption) ([]byte, error) {
	if sc == nil {
		return nil, errNilScene
	}
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Viz:        r.vizType,
		Seed:       r.seed,
		Width:      sc.Width,
		Height:     sc.Height,
		Background: sc.Background,
		Elements:   make([]jsonElement, 0, len(sc.Elements)),
		Meta:       r.meta,
	}
	for _, g := range sc.Gradients {
		jg := jsonGradient{ID: g.ID, Radial: g.Radial, Coords: [4]float64{g.X1, g.Y1, g.X2, g.Y2}}
		for _, s := range g.Stops {
			jg.Stops = append(jg.Stops, jsonStop(s))
		}
		out.Gradients = append(out.Gradients, jg)
	}
	for _, e := range sc.Elements {
		out.Elements = append(out.Elements, toJSONElement(e))
	}
	for _, a := range sc.Animations {
		ja := jsonAnimation{
			Target:   a.Target,
			Attr:     a.Attr,
			Values:   a.Values,
			KeyTimes: a.KeyTimes,
			Duration: ms(a.Duration),
			Repeat:   a.Repeat,
		}
		for _, b := range a.Begins {
			ja.Begins = append(ja.Begins, ms(b))
		}
		out.Animations = append(out.Animations, ja)
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

func toJSONElement(e scene.Element) jsonElement {
	st := e.Attrs()
	je := jsonElement{Kind: e.Kind(), ID: st.ID, Class: st.Class}
	js := jsonStyle{
		Fill:         st.Fill,
		FillGradient: st.FillGradient,
		Stroke:       st.Stroke,
		StrokeGrad:   st.StrokeGrad,
		StrokeWidth:  st.StrokeWidth,
		Opacity:      st.Opacity,
		Dash:         st.Dash,
		Blur:         st.Blur,
	}
	if js.Fill != "" || js.FillGradient != "" || js.Stroke != "" || js.StrokeGrad != "" || js.Opacity != 0 || js.Blur != 0 {
		je.Style = &js
	}

	switch v := e.(type) {
	case scene.Line:
		je.Geom = map[string]any{"x1": v.X1, "y1": v.Y1, "x2": v.X2, "y2": v.Y2}
	case scene.Circle:
		je.Geom = map[string]any{"cx": v.CX, "cy": v.CY, "r": v.R}
	case scene.Rect:
		je.Geom = map[string]any{"x": v.X, "y": v.Y, "width": v.W, "height": v.H, "rx": v.RX}
	case scene.Path:
		je.Geom = map[string]any{"d": scene.PathData(v)}
	case scene.Polygon:
		pts := make([][2]float64, len(v.Points))
		for i, p := range v.Points {
			pts[i] = [2]float64{p.X, p.Y}
		}
		je.Geom = map[string]any{"points": pts, "d": scene.PolygonData(v)}
	case scene.Arc:
		je.Geom = map[string]any{
			"cx": v.CX, "cy": v.CY, "inner": v.Inner, "outer": v.Outer,
			"start": v.Start, "end": v.End, "d": scene.ArcPathData(v),
		}
	case scene.Text:
		je.Geom = map[string]any{
			"x": v.X, "y": v.Y, "text": v.Content, "anchor": v.Anchor,
			"font_size": v.FontSize,
		}
	}
	return je
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
