package network

import (
	"time"

	"github.com/luminexlabs/lumenviz/pkg/animate"
	"github.com/luminexlabs/lumenviz/pkg/observability"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

// Pulse timing and size.
const (
	PulseRadius   = 12.0
	PulseGrow     = 200 * time.Millisecond
	PulseShrink   = 400 * time.Millisecond
	PulseDuration = PulseGrow + PulseShrink
)

// Pulse is one pulse event. Node is the flat index across all layers.
type Pulse struct {
	Node  int
	Layer int
	Index int
	At    time.Time
}

// PlannedPulse is a pulse at an offset from the start of an animation.
type PlannedPulse struct {
	Node   int
	Offset time.Duration
}

// Trigger starts a pulse on node at time at. A node already pulsing restarts
// its pulse. Out of range nodes are ignored.
func (r *Renderer) Trigger(node int, at time.Time) {
	if node < 0 || node >= r.total {
		return
	}
	layer, index := r.locate(node)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.started[node] = at
	select {
	case r.pulses <- Pulse{Node: node, Layer: layer, Index: index, At: at}:
	default:
		// slow consumer; the overlay state above is authoritative
	}
	observability.Animation().OnPulse(VizType, node)
}

// Pulses streams pulse events. The channel is buffered and drops events when
// full; it is closed by Close.
func (r *Renderer) Pulses() <-chan Pulse { return r.pulses }

// Radius returns the animated radius of node at time t.
func (r *Renderer) Radius(node int, t time.Time) float64 {
	r.mu.Lock()
	start, ok := r.started[node]
	r.mu.Unlock()
	if !ok {
		return NodeRadius
	}
	return PulseRadiusAt(t.Sub(start))
}

// PulseRadiusAt returns the radius of a pulse elapsed into its run.
func PulseRadiusAt(elapsed time.Duration) float64 {
	switch {
	case elapsed < 0 || elapsed >= PulseDuration:
		return NodeRadius
	case elapsed < PulseGrow:
		p := animate.CubicInOut(float64(elapsed) / float64(PulseGrow))
		return animate.Lerp(NodeRadius, PulseRadius, p)
	default:
		p := animate.CubicInOut(float64(elapsed-PulseGrow) / float64(PulseShrink))
		return animate.Lerp(PulseRadius, NodeRadius, p)
	}
}

// PulsePlan draws n pulse targets, one per ticker interval.
func (r *Renderer) PulsePlan(n int) []PlannedPulse {
	plan := make([]PlannedPulse, 0, max(n, 0))
	for k := range max(n, 0) {
		plan = append(plan, PlannedPulse{
			Node:   r.rng.IntN(r.total),
			Offset: r.interval * time.Duration(k+1),
		})
	}
	return plan
}

func (r *Renderer) locate(node int) (layer, index int) {
	for i, l := range r.layers {
		if node < l.Nodes {
			return i, node
		}
		node -= l.Nodes
	}
	return -1, -1
}

// planAnimations groups planned pulses by node into one radius animation per
// pulsed node. Overlapping pulses on a node are dropped.
func planAnimations(plan []PlannedPulse, nodes []Node) []scene.Animation {
	begins := make(map[int][]time.Duration)
	var order []int
	for _, p := range plan {
		prev := begins[p.Node]
		if len(prev) > 0 && p.Offset-prev[len(prev)-1] < PulseDuration {
			continue
		}
		if len(prev) == 0 {
			order = append(order, p.Node)
		}
		begins[p.Node] = append(prev, p.Offset)
	}

	anims := make([]scene.Animation, 0, len(order))
	for _, n := range order {
		anims = append(anims, scene.Animation{
			Target:   nodes[n].ID,
			Attr:     "r",
			Values:   []float64{NodeRadius, PulseRadius, NodeRadius},
			KeyTimes: []float64{0, float64(PulseGrow) / float64(PulseDuration), 1},
			Duration: PulseDuration,
			Begins:   begins[n],
		})
	}
	return anims
}
