package pipeline

import (
	"github.com/luminexlabs/lumenviz/pkg/config"
	"github.com/luminexlabs/lumenviz/pkg/random"
	"github.com/luminexlabs/lumenviz/pkg/render/concepts"
	"github.com/luminexlabs/lumenviz/pkg/render/flow"
	"github.com/luminexlabs/lumenviz/pkg/render/gauge"
	"github.com/luminexlabs/lumenviz/pkg/render/heatmap"
	"github.com/luminexlabs/lumenviz/pkg/render/network"
	"github.com/luminexlabs/lumenviz/pkg/render/radar"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

// Renderer is the part of every visualization renderer the pipeline drives.
type Renderer interface {
	Render() *scene.Scene
	Inert() bool
}

// BuildDocument creates a document holding one container per configured
// mount point, sized from the configuration. Empty mount ids are left out,
// which makes the matching renderer inert.
func BuildDocument(cfg config.Config) *scene.Document {
	doc := scene.NewDocument()
	add := func(id string, w, h float64) {
		if id != "" {
			doc.Add(id, w, h)
		}
	}
	add(cfg.Network.Mount, cfg.Network.Width, cfg.Network.Height)
	add(cfg.Heatmap.Mount, cfg.Heatmap.Size, cfg.Heatmap.Size)
	add(cfg.Radar.Mount, cfg.Radar.Width, cfg.Radar.Height)
	add(cfg.Gauge.Mount, cfg.Gauge.Width, cfg.Gauge.Height)
	add(cfg.Flow.Mount, cfg.Flow.Width, cfg.Flow.Height)
	add(cfg.Concepts.Mount, cfg.Concepts.Width, cfg.Concepts.Height)
	return doc
}

// Set holds the renderers bound to one document. Fields for types that were
// not requested are nil.
type Set struct {
	Network  *network.Renderer
	Heatmap  *heatmap.Renderer
	Radar    *radar.Renderer
	Gauge    *gauge.Renderer
	Flow     *flow.Renderer
	Concepts *concepts.Renderer
}

// NewSet binds a renderer for each of types to doc. Every renderer draws
// from its own stream derived from cfg.Seed.
func NewSet(doc *scene.Document, cfg config.Config, types []string) (*Set, error) {
	s := &Set{}
	src := func(viz string) random.Source {
		return random.New(random.Derive(cfg.Seed, viz))
	}
	var err error
	for _, t := range types {
		switch t {
		case VizNetwork:
			s.Network, err = network.New(doc, cfg.Network.Mount, cfg.Network.Layers,
				network.WithRandom(src(t)),
				network.WithInterval(cfg.Network.PulseInterval.Duration),
				network.WithPulsePlan(cfg.Network.PulseCount))
		case VizHeatmap:
			s.Heatmap, err = heatmap.New(doc, cfg.Heatmap.Mount,
				heatmap.WithParams(cfg.Heatmap.Params()),
				heatmap.WithRandom(src(t)))
		case VizRadar:
			s.Radar, err = radar.New(doc, cfg.Radar.Mount, cfg.Radar.Axes,
				radar.WithLevels(cfg.Radar.Levels),
				radar.WithMargin(cfg.Radar.Margin))
		case VizGauge:
			s.Gauge, err = gauge.New(doc, cfg.Gauge.Mount, cfg.Gauge.Value,
				gauge.WithLabel(cfg.Gauge.Label))
		case VizFlow:
			s.Flow, err = flow.New(doc, cfg.Flow.Mount, cfg.Flow.Columns,
				flow.WithRandom(src(t)))
		case VizConcepts:
			s.Concepts, err = concepts.New(doc, cfg.Concepts.Mount, cfg.Concepts.Items,
				concepts.WithRandom(src(t)),
				concepts.WithInterval(cfg.Concepts.Interval.Duration))
		default:
			err = ValidateVizType(t)
		}
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Get returns the renderer for vizType, or nil.
func (s *Set) Get(vizType string) Renderer {
	switch vizType {
	case VizNetwork:
		if s.Network != nil {
			return s.Network
		}
	case VizHeatmap:
		if s.Heatmap != nil {
			return s.Heatmap
		}
	case VizRadar:
		if s.Radar != nil {
			return s.Radar
		}
	case VizGauge:
		if s.Gauge != nil {
			return s.Gauge
		}
	case VizFlow:
		if s.Flow != nil {
			return s.Flow
		}
	case VizConcepts:
		if s.Concepts != nil {
			return s.Concepts
		}
	}
	return nil
}

// Close stops the scheduled tasks of the animated renderers.
func (s *Set) Close() error {
	if s.Network != nil {
		_ = s.Network.Close()
	}
	if s.Concepts != nil {
		_ = s.Concepts.Close()
	}
	return nil
}
