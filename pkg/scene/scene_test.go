package scene

import (
	"math"
	"strings"
	"sync"
	"testing"
)

func TestSceneCountAndByClass(t *testing.T) {
	s := New(400, 300)
	s.Add(
		Line{X2: 10, Style: Style{Class: "edge"}},
		Line{X2: 20, Style: Style{Class: "edge"}},
		Circle{R: 8, Style: Style{Class: "node"}},
		Text{Content: "Input", Style: Style{Class: "label"}},
	)

	if got := s.Count(KindLine, ""); got != 2 {
		t.Errorf("Count(line) = %d, want 2", got)
	}
	if got := s.Count("", "node"); got != 1 {
		t.Errorf("Count(class node) = %d, want 1", got)
	}
	if got := s.Count(KindCircle, "edge"); got != 0 {
		t.Errorf("Count(circle, edge) = %d, want 0", got)
	}
	if got := len(s.ByClass("edge")); got != 2 {
		t.Errorf("ByClass(edge) = %d, want 2", got)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	var nilScene *Scene
	if nilScene.Len() != 0 {
		t.Error("nil scene Len() should be 0")
	}
}

func TestSceneGradientLookup(t *testing.T) {
	s := New(10, 10)
	s.AddGradient(Gradient{ID: "g1", Stops: []GradientStop{{Offset: 0, Color: "#000"}}})
	if _, ok := s.Gradient("g1"); !ok {
		t.Error("Gradient(g1) not found")
	}
	if _, ok := s.Gradient("missing"); ok {
		t.Error("Gradient(missing) should miss")
	}
}

func TestPolygonEdgesClose(t *testing.T) {
	p := Polygon{Points: []Point{{0, 0}, {1, 0}, {1, 1}}}
	edges := p.Edges()
	if len(edges) != 3 {
		t.Fatalf("Edges() = %d, want 3", len(edges))
	}
	last := edges[2]
	if last[0] != (Point{1, 1}) || last[1] != (Point{0, 0}) {
		t.Errorf("closing edge = %v, want (1,1)->(0,0)", last)
	}
	if (Polygon{Points: []Point{{0, 0}}}).Edges() != nil {
		t.Error("single-point polygon should have no edges")
	}
}

func TestDocumentLookup(t *testing.T) {
	doc := NewDocument()
	doc.Add("network-viz", 800, 400)
	doc.Add("concept-radar", 300, 300)

	c, ok := doc.Lookup("network-viz")
	if !ok {
		t.Fatal("Lookup(network-viz) missed")
	}
	if w, h := c.Size(); w != 800 || h != 400 {
		t.Errorf("Size() = %v x %v, want 800 x 400", w, h)
	}
	if _, ok := doc.Lookup("absent"); ok {
		t.Error("Lookup(absent) should miss")
	}
	var nilDoc *Document
	if _, ok := nilDoc.Lookup("network-viz"); ok {
		t.Error("nil document should resolve nothing")
	}

	if got := strings.Join(doc.IDs(), ","); got != "concept-radar,network-viz" {
		t.Errorf("IDs() = %s", got)
	}
	doc.Remove("concept-radar")
	if _, ok := doc.Lookup("concept-radar"); ok {
		t.Error("Remove did not drop container")
	}
}

func TestContainerAttachReplacesWholesale(t *testing.T) {
	c := NewDocument().Add("heatmap-0", 200, 200)
	first := New(200, 200)
	second := New(200, 200)

	if gen := c.Attach(first); gen != 1 {
		t.Errorf("first Attach generation = %d, want 1", gen)
	}
	c.Attach(second)
	if c.Scene() != second {
		t.Error("Attach should replace the previous scene")
	}
	c.Clear()
	if c.Scene() != nil || c.Generation() != 3 {
		t.Errorf("after Clear: scene=%v generation=%d", c.Scene(), c.Generation())
	}

	c.Resize(100, 50)
	if w, h := c.Size(); w != 100 || h != 50 {
		t.Errorf("Resize not applied: %v x %v", w, h)
	}
}

func TestContainerConcurrentAttach(t *testing.T) {
	c := NewDocument().Add("x", 1, 1)
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Attach(New(1, 1))
			_ = c.Scene()
		}()
	}
	wg.Wait()
	if c.Generation() != 16 {
		t.Errorf("Generation() = %d, want 16", c.Generation())
	}
}

func TestPolarCartesian(t *testing.T) {
	center := Point{100, 100}
	up := Polar{Angle: -math.Pi / 2, Radius: 50}.Cartesian(center)
	if math.Abs(up.X-100) > 1e-9 || math.Abs(up.Y-50) > 1e-9 {
		t.Errorf("up = %+v, want (100, 50)", up)
	}
}
