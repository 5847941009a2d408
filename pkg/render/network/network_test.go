package network

import (
	"context"
	"math"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/luminexlabs/lumenviz/pkg/errors"
	"github.com/luminexlabs/lumenviz/pkg/random"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

func newDoc(w, h float64) *scene.Document {
	doc := scene.NewDocument()
	doc.Add("network-viz", w, h)
	return doc
}

func TestNewRejectsInvalidLayers(t *testing.T) {
	tests := []struct {
		name   string
		layers []Layer
	}{
		{"nil", nil},
		{"empty", []Layer{}},
		{"zero nodes", []Layer{{Name: "A", Nodes: 0}}},
		{"negative nodes", []Layer{{Name: "A", Nodes: 2}, {Name: "B", Nodes: -1}}},
		{"bad color", []Layer{{Name: "A", Nodes: 2, Color: "cyan"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(newDoc(400, 400), "network-viz", tt.layers)
			if err == nil {
				t.Fatal("expected error")
			}
			code := errors.GetCode(err)
			if code != errors.ErrCodeInvalidInput && code != errors.ErrCodeInvalidColor {
				t.Errorf("code = %s", code)
			}
		})
	}
}

func TestMissingMountIsInert(t *testing.T) {
	r, err := New(newDoc(400, 400), "absent", DefaultLayers())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !r.Inert() {
		t.Error("expected inert renderer")
	}
	if sc := r.Render(); sc != nil {
		t.Errorf("inert Render() = %v, want nil", sc)
	}
	r.Start(context.Background())
	if r.Running() {
		t.Error("inert renderer should not start")
	}
	_ = r.Close()
}

func TestRenderTwoLayerScenario(t *testing.T) {
	doc := newDoc(400, 400)
	r, err := New(doc, "network-viz", []Layer{
		{Name: "In", Nodes: 4, Color: "#00d4ff"},
		{Name: "Out", Nodes: 8, Color: "#10b981"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sc := r.Render()

	if got := sc.Count(scene.KindLine, "network-connection"); got != 32 {
		t.Errorf("connections = %d, want 32", got)
	}
	if got := sc.Count(scene.KindCircle, "network-node"); got != 12 {
		t.Errorf("nodes = %d, want 12", got)
	}
	if got := sc.Count(scene.KindCircle, "node-glow"); got != 12 {
		t.Errorf("glows = %d, want 12", got)
	}
	if got := sc.Count(scene.KindText, "layer-label"); got != 2 {
		t.Errorf("labels = %d, want 2", got)
	}

	c, _ := doc.Lookup("network-viz")
	if c.Scene() != sc {
		t.Error("rendered scene not attached to the container")
	}

	// first input node: column 400/3, y = 60 + 240/5
	first := sc.ByClass("network-node")[0].(scene.Circle)
	if math.Abs(first.CX-400.0/3) > 1e-9 || math.Abs(first.CY-108) > 1e-9 {
		t.Errorf("first node at (%v, %v)", first.CX, first.CY)
	}
	if first.ID != "node-0-0" || first.R != NodeRadius {
		t.Errorf("first node id=%q r=%v", first.ID, first.R)
	}

	label := sc.ByClass("layer-label")[1].(scene.Text)
	if label.Y != 380 || label.Content != "Out" || label.Anchor != "middle" {
		t.Errorf("label = %+v", label)
	}
}

func TestRenderPaintOrder(t *testing.T) {
	r, _ := New(newDoc(800, 400), "network-viz", []Layer{{Name: "A", Nodes: 2}, {Name: "B", Nodes: 2}})
	sc := r.Render()
	var seenNode bool
	for _, e := range sc.Elements {
		switch e.Attrs().Class {
		case "network-node":
			seenNode = true
		case "network-connection":
			if seenNode {
				t.Fatal("connection painted after a node")
			}
		}
	}
}

func TestRenderReplacesScene(t *testing.T) {
	doc := newDoc(400, 400)
	r, _ := New(doc, "network-viz", DefaultLayers())
	first := r.Render()
	second := r.Render()
	c, _ := doc.Lookup("network-viz")
	if c.Scene() != second || first == second {
		t.Error("each render should attach a fresh scene")
	}
	if c.Generation() != 2 {
		t.Errorf("generation = %d, want 2", c.Generation())
	}
}

func TestSingleLayerHasNoEdges(t *testing.T) {
	r, _ := New(newDoc(300, 300), "network-viz", []Layer{{Name: "Solo", Nodes: 3}})
	sc := r.Render()
	if sc.Count(scene.KindLine, "") != 0 {
		t.Error("single layer should draw no connections")
	}
	if sc.Count(scene.KindCircle, "network-node") != 3 {
		t.Error("expected 3 nodes")
	}
}

func TestLayoutProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "layers")
		layers := make([]Layer, n)
		for i := range layers {
			layers[i] = Layer{Name: "L", Nodes: rapid.IntRange(1, 20).Draw(t, "nodes")}
		}
		h := rapid.Float64Range(200, 1200).Draw(t, "height")

		nodes, edges := Layout(layers, 800, h)
		if len(edges) != EdgeCount(layers) {
			t.Fatalf("edges = %d, want %d", len(edges), EdgeCount(layers))
		}

		for _, l := range layers {
			k := l.Nodes
			for j := range k {
				y := NodeY(j, k, h)
				if j > 0 && y <= NodeY(j-1, k, h) {
					t.Fatalf("NodeY not strictly increasing at %d/%d", j, k)
				}
				mirror := NodeY(k-1-j, k, h)
				if math.Abs((y-Padding)-(Padding+(h-2*Padding-FooterSpace)-mirror)) > 1e-6 {
					t.Fatalf("NodeY not symmetric at %d/%d", j, k)
				}
			}
		}

		for _, e := range edges {
			if nodes[e.To].Layer != nodes[e.From].Layer+1 {
				t.Fatalf("edge %v skips a layer", e)
			}
		}
	})
}

func TestShortCanvasKeepsNodeOrder(t *testing.T) {
	for _, h := range []float64{40, 120, MinHeight, MinHeight + 0.5} {
		prev := math.Inf(-1)
		for j := range 3 {
			y := NodeY(j, 3, h)
			if y <= prev {
				t.Fatalf("height %g: NodeY(%d) = %g, not above %g", h, j, y, prev)
			}
			if y <= 0 || y >= h {
				t.Fatalf("height %g: NodeY(%d) = %g outside canvas", h, j, y)
			}
			prev = y
		}
	}

	if err := ValidateHeight("network.height", MinHeight); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ValidateHeight(%g) = %v, want INVALID_INPUT", MinHeight, err)
	}
	if err := ValidateHeight("network.height", MinHeight+1); err != nil {
		t.Errorf("ValidateHeight(%g) = %v", MinHeight+1, err)
	}
}

func TestPulseRadiusTimeline(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    float64
	}{
		{-time.Millisecond, NodeRadius},
		{0, NodeRadius},
		{100 * time.Millisecond, 10},
		{PulseGrow, PulseRadius},
		{PulseGrow + PulseShrink/2, 10},
		{PulseDuration, NodeRadius},
		{time.Second, NodeRadius},
	}
	for _, tt := range tests {
		if got := PulseRadiusAt(tt.elapsed); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("PulseRadiusAt(%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestTriggerIsPerNode(t *testing.T) {
	r, _ := New(newDoc(400, 400), "network-viz", []Layer{{Name: "A", Nodes: 2}, {Name: "B", Nodes: 3}})
	t0 := time.Unix(0, 0)
	r.Trigger(3, t0)

	if got := r.Radius(3, t0.Add(PulseGrow)); got != PulseRadius {
		t.Errorf("pulsed node radius = %v, want %v", got, PulseRadius)
	}
	if got := r.Radius(0, t0.Add(PulseGrow)); got != NodeRadius {
		t.Errorf("idle node radius = %v, want %v", got, NodeRadius)
	}

	p := <-r.Pulses()
	if p.Node != 3 || p.Layer != 1 || p.Index != 1 {
		t.Errorf("pulse = %+v, want node 3 at layer 1 index 1", p)
	}

	r.Trigger(99, t0) // ignored
	select {
	case p := <-r.Pulses():
		t.Errorf("unexpected pulse %+v", p)
	default:
	}
}

func TestStartStopHaltsPulses(t *testing.T) {
	r, _ := New(newDoc(400, 400), "network-viz", DefaultLayers(),
		WithRandom(random.New(7)), WithInterval(time.Millisecond))
	r.Render()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	select {
	case <-r.Pulses():
	case <-time.After(2 * time.Second):
		t.Fatal("no pulse within 2s")
	}

	r.Stop()
	if r.Running() {
		t.Error("Running() after Stop")
	}
	for len(r.Pulses()) > 0 {
		<-r.Pulses()
	}
	time.Sleep(20 * time.Millisecond)
	if n := len(r.Pulses()); n != 0 {
		t.Errorf("%d pulses fired after Stop", n)
	}

	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if _, ok := <-r.Pulses(); ok {
		t.Error("Pulses channel should be closed after Close")
	}
	r.Start(ctx)
	if r.Running() {
		t.Error("closed renderer should not restart")
	}
}

func TestContextCancelStopsTicker(t *testing.T) {
	r, _ := New(newDoc(400, 400), "network-viz", DefaultLayers(),
		WithRandom(random.New(3)), WithInterval(time.Millisecond))
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for r.Running() {
		if time.Now().After(deadline) {
			t.Fatal("Running() still true after context cancel")
		}
		time.Sleep(time.Millisecond)
	}
	for len(r.Pulses()) > 0 {
		<-r.Pulses()
	}

	// a cancelled ticker does not block a restart
	r.Start(context.Background())
	if !r.Running() {
		t.Fatal("restart did not start the ticker")
	}
	select {
	case <-r.Pulses():
	case <-time.After(2 * time.Second):
		t.Fatal("no pulse after restart")
	}
}

func TestPulsePlanAnimations(t *testing.T) {
	layers := []Layer{{Name: "A", Nodes: 2}, {Name: "B", Nodes: 2}}
	r, _ := New(newDoc(400, 400), "network-viz", layers,
		WithRandom(random.NewSequence(0, 0.3, 0.6, 0.9)), WithPulsePlan(4))

	sc := r.Render()
	if len(sc.Animations) != 4 {
		t.Fatalf("animations = %d, want 4", len(sc.Animations))
	}
	want := []string{"node-0-0", "node-0-1", "node-1-0", "node-1-1"}
	for i, a := range sc.Animations {
		if a.Target != want[i] || a.Attr != "r" {
			t.Errorf("animation %d = %s/%s", i, a.Target, a.Attr)
		}
		if len(a.Begins) != 1 || a.Begins[0] != PulseEvery*time.Duration(i+1) {
			t.Errorf("animation %d begins = %v", i, a.Begins)
		}
	}
}

func TestPulsePlanDropsOverlaps(t *testing.T) {
	r, _ := New(newDoc(400, 400), "network-viz", []Layer{{Name: "A", Nodes: 1}})
	plan := r.PulsePlan(10) // every pulse hits the only node, 100ms apart
	nodes, _ := Layout(r.layers, 400, 400)
	anims := planAnimations(plan, nodes)
	if len(anims) != 1 {
		t.Fatalf("animations = %d, want 1", len(anims))
	}
	if got := len(anims[0].Begins); got != 2 {
		t.Errorf("begins = %v, want two non-overlapping starts", anims[0].Begins)
	}
}
