// Package concepts draws horizontal score bars for a set of named concepts
// and can simulate live updates by drifting the scores on a timer.
package concepts

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/luminexlabs/lumenviz/pkg/animate"
	"github.com/luminexlabs/lumenviz/pkg/errors"
	"github.com/luminexlabs/lumenviz/pkg/observability"
	"github.com/luminexlabs/lumenviz/pkg/random"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

// VizType names this renderer in hooks and pipeline output.
const VizType = "concepts"

// Drift bounds.
const (
	MinValue      = 0.1
	MaxValue      = 0.99
	DriftSpan     = 0.05
	DriftInterval = 3 * time.Second
)

// Level buckets a concept score.
type Level string

// Score levels.
const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Color returns the bar colour for the level.
func (l Level) Color() string {
	switch l {
	case LevelHigh:
		return "#10b981"
	case LevelMedium:
		return "#f59e0b"
	default:
		return "#ef4444"
	}
}

// LevelOf classifies v: above 0.7 is high, above 0.4 medium, anything else low.
func LevelOf(v float64) Level {
	switch {
	case v > 0.7:
		return LevelHigh
	case v > 0.4:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Concept is a named score in [0,1].
type Concept struct {
	Name  string  `json:"name" toml:"name" yaml:"name"`
	Value float64 `json:"value" toml:"value" yaml:"value"`
}

// DefaultConcepts returns the clinical concept scores shown when none are given.
func DefaultConcepts() []Concept {
	return []Concept{
		{"Asymmetry", 0.92},
		{"Border irregularity", 0.85},
		{"Color variation", 0.78},
		{"Diameter", 0.65},
		{"Blue-white veil", 0.45},
		{"Regression", 0.23},
	}
}

// Drift returns a copy of cs with every value moved by up to +/-DriftSpan/2
// and clamped to [MinValue, MaxValue].
func Drift(cs []Concept, rng random.Source) []Concept {
	out := slices.Clone(cs)
	for i := range out {
		v := out[i].Value + (rng.Float64()-0.5)*DriftSpan
		out[i].Value = max(MinValue, min(MaxValue, v))
	}
	return out
}

// Layout.
const (
	TrackColor = "#1a1a24"
	NameColor  = "#ccc"
	ValueColor = "#888"
	TextSize   = 12.0
	BarHeight  = 8.0
	BarRadius  = 4.0
	labelShare = 0.35
	valueShare = 0.12
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithRandom sets the drift source.
func WithRandom(src random.Source) Option { return func(r *Renderer) { r.rng = src } }

// WithInterval sets the drift period.
func WithInterval(d time.Duration) Option { return func(r *Renderer) { r.interval = d } }

// Renderer draws concept bars into one container.
type Renderer struct {
	container *scene.Container
	rng       random.Source
	interval  time.Duration

	mu       sync.Mutex
	concepts []Concept
	task     *animate.Task
}

// New binds a renderer to mountID. Nil or empty concepts fall back to
// [DefaultConcepts]. A missing container yields an inert renderer.
func New(doc *scene.Document, mountID string, cs []Concept, opts ...Option) (*Renderer, error) {
	if len(cs) == 0 {
		cs = DefaultConcepts()
	}
	for _, c := range cs {
		if err := errors.ValidateFinite("concept "+c.Name, c.Value); err != nil {
			return nil, err
		}
	}
	r := &Renderer{concepts: slices.Clone(cs), interval: DriftInterval}
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

// Concepts returns the current scores.
func (r *Renderer) Concepts() []Concept {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.concepts)
}

// Render draws one row per concept: name, track, level-coloured fill and value.
func (r *Renderer) Render() *scene.Scene {
	if r.container == nil {
		return nil
	}
	cs := r.Concepts()
	w, h := r.container.Size()
	trackX := w * labelShare
	trackW := w * (1 - labelShare - valueShare)
	rows := scene.EvenSpread(len(cs), 0, h)

	sc := scene.New(w, h)
	for i, c := range cs {
		y := rows[i]
		v := max(0, min(c.Value, 1))
		sc.Add(
			scene.Text{
				X: 0, Y: y,
				Content:  c.Name,
				Anchor:   "start",
				Baseline: "middle",
				FontSize: TextSize,
				Style:    scene.Style{Class: "concept-name", Fill: NameColor},
			},
			scene.Rect{
				X: trackX, Y: y - BarHeight/2, W: trackW, H: BarHeight, RX: BarRadius,
				Style: scene.Style{Class: "concept-track", Fill: TrackColor},
			},
			scene.Rect{
				X: trackX, Y: y - BarHeight/2, W: trackW * v, H: BarHeight, RX: BarRadius,
				Style: scene.Style{Class: "concept-fill " + string(LevelOf(c.Value)), Fill: LevelOf(c.Value).Color()},
			},
			scene.Text{
				X: w, Y: y,
				Content:  fmt.Sprintf("%.2f", c.Value),
				Anchor:   "end",
				Baseline: "middle",
				FontSize: TextSize,
				Style:    scene.Style{Class: "concept-value", Fill: ValueColor},
			},
		)
	}
	r.container.Attach(sc)
	return sc
}

// Tick drifts every score once and re-renders.
func (r *Renderer) Tick() *scene.Scene {
	r.mu.Lock()
	r.concepts = Drift(r.concepts, r.rng)
	r.mu.Unlock()
	observability.Animation().OnTick(VizType)
	return r.Render()
}

// Start runs Tick on the drift interval until ctx is cancelled or Stop is
// called. Starting a running or inert renderer does nothing; a ticker whose
// context was cancelled is replaced.
func (r *Renderer) Start(ctx context.Context) {
	if r.container == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.task.Active() {
		return
	}
	r.task = animate.Every(ctx, r.interval, func(time.Time) { r.Tick() })
}

// Stop halts drifting and waits for the ticker to exit.
func (r *Renderer) Stop() {
	r.mu.Lock()
	task := r.task
	r.task = nil
	r.mu.Unlock()
	task.Stop()
}

// Running reports whether the drift ticker is active.
func (r *Renderer) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.task.Active()
}

// Close stops the ticker.
func (r *Renderer) Close() error {
	r.Stop()
	return nil
}
