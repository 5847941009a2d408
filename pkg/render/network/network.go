package network

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/luminexlabs/lumenviz/pkg/animate"
	"github.com/luminexlabs/lumenviz/pkg/random"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

// VizType names this renderer in hooks and pipeline output.
const VizType = "network"

// Element styling.
const (
	NodeRadius   = 8.0
	GlowPadding  = 4.0
	GlowOpacity  = 0.2
	GlowBlur     = 4.0
	EdgeColor    = "#333"
	EdgeWidth    = 0.5
	EdgeOpacity  = 0.2
	LabelColor   = "#666"
	LabelSize    = 11.0
	PulseEvery   = 100 * time.Millisecond
	pulseBufSize = 64
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithRandom sets the source used to pick pulse targets.
func WithRandom(src random.Source) Option {
	return func(r *Renderer) { r.rng = src }
}

// WithInterval sets the pulse ticker interval.
func WithInterval(d time.Duration) Option {
	return func(r *Renderer) { r.interval = d }
}

// WithPulsePlan bakes n scheduled pulses into every rendered scene.
func WithPulsePlan(n int) Option {
	return func(r *Renderer) { r.planned = n }
}

// Renderer draws a layered graph into one container.
type Renderer struct {
	container *scene.Container
	layers    []Layer
	total     int

	rng      random.Source
	interval time.Duration
	planned  int

	mu      sync.Mutex
	started map[int]time.Time
	task    *animate.Task
	pulses  chan Pulse
	closed  bool
}

// New validates layers and binds a renderer to the container mountID in doc.
// A missing container yields an inert renderer: Render returns nil and Start
// does nothing. A nil or empty layers slice is rejected.
func New(doc *scene.Document, mountID string, layers []Layer, opts ...Option) (*Renderer, error) {
	if err := ValidateLayers(layers); err != nil {
		return nil, err
	}
	r := &Renderer{
		layers:   slices.Clone(layers),
		interval: PulseEvery,
		started:  make(map[int]time.Time),
		pulses:   make(chan Pulse, pulseBufSize),
	}
	for _, l := range layers {
		r.total += l.Nodes
	}
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

// Layers returns a copy of the topology.
func (r *Renderer) Layers() []Layer { return slices.Clone(r.layers) }

// NodeCount returns the number of nodes across all layers.
func (r *Renderer) NodeCount() int { return r.total }

// Render lays the graph out for the container's current size and attaches a
// fresh scene. Connections are painted first, then node glows and nodes, then
// layer labels.
func (r *Renderer) Render() *scene.Scene {
	if r.container == nil {
		return nil
	}
	w, h := r.container.Size()
	nodes, edges := Layout(r.layers, w, h)

	sc := scene.New(w, h)
	for _, e := range edges {
		a, b := nodes[e.From], nodes[e.To]
		sc.Add(scene.Line{
			X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y,
			Style: scene.Style{
				Class:       "network-connection",
				Stroke:      EdgeColor,
				StrokeWidth: EdgeWidth,
				Opacity:     EdgeOpacity,
			},
		})
	}

	for _, n := range nodes {
		sc.Add(
			scene.Circle{
				CX: n.X, CY: n.Y, R: NodeRadius + GlowPadding,
				Style: scene.Style{Class: "node-glow", Fill: n.Color, Opacity: GlowOpacity, Blur: GlowBlur},
			},
			scene.Circle{
				CX: n.X, CY: n.Y, R: NodeRadius,
				Style: scene.Style{ID: n.ID, Class: "network-node", Fill: n.Color},
			},
		)
	}

	for i, l := range r.layers {
		p := labelPoint(i, len(r.layers), w, h)
		sc.Add(scene.Text{
			X: p.X, Y: p.Y,
			Content:  l.Name,
			Anchor:   "middle",
			FontSize: LabelSize,
			Style:    scene.Style{Class: "layer-label", Fill: LabelColor},
		})
	}

	if r.planned > 0 {
		for _, a := range planAnimations(r.PulsePlan(r.planned), nodes) {
			sc.Animate(a)
		}
	}

	r.container.Attach(sc)
	return sc
}

// Start runs the pulse ticker until ctx is cancelled or Stop is called.
// Calling Start on a running or inert renderer does nothing; a ticker whose
// context was cancelled is replaced.
func (r *Renderer) Start(ctx context.Context) {
	if r.container == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.task.Active() || r.closed {
		return
	}
	r.task = animate.Every(ctx, r.interval, func(now time.Time) {
		r.Trigger(r.rng.IntN(r.total), now)
	})
}

// Stop halts the ticker and waits for it. The renderer can be started again.
func (r *Renderer) Stop() {
	r.mu.Lock()
	task := r.task
	r.task = nil
	r.mu.Unlock()
	task.Stop()
}

// Close stops the ticker and closes the Pulses channel.
func (r *Renderer) Close() error {
	r.Stop()
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.closed = true
		close(r.pulses)
	}
	return nil
}

// Running reports whether the ticker is active.
func (r *Renderer) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.task.Active()
}
