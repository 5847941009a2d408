package flow

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/luminexlabs/lumenviz/pkg/errors"
	"github.com/luminexlabs/lumenviz/pkg/random"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

func newDoc() *scene.Document {
	doc := scene.NewDocument()
	doc.Add("data-flow", 900, 300)
	return doc
}

func TestValidateColumns(t *testing.T) {
	tests := []struct {
		name string
		cols []Column
	}{
		{"none", nil},
		{"one", []Column{{Name: "A", Items: []string{"a"}}}},
		{"empty column", []Column{{Name: "A", Items: []string{"a"}}, {Name: "B"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(newDoc(), "data-flow", tt.cols); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestLinkCountMatchesScene(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 5).Draw(t, "columns")
		cols := make([]Column, n)
		for i := range cols {
			k := rapid.IntRange(1, 6).Draw(t, "items")
			cols[i] = Column{Name: "c", Items: make([]string, k)}
		}
		r, err := New(newDoc(), "data-flow", cols, WithRandom(random.New(rapid.Uint64().Draw(t, "seed"))))
		if err != nil {
			t.Fatal(err)
		}
		sc := r.Render()
		if got := sc.Count(scene.KindPath, "flow-link"); got != LinkCount(cols) {
			t.Fatalf("links = %d, want %d", got, LinkCount(cols))
		}
		dashed := 0
		for _, e := range sc.ByClass("flow-link") {
			if len(e.Attrs().Dash) > 0 {
				dashed++
			}
		}
		if dashed != len(sc.Animations) {
			t.Fatalf("dashed links = %d, animations = %d", dashed, len(sc.Animations))
		}
	})
}

func TestLinkStyling(t *testing.T) {
	cols := []Column{{Name: "A", Items: []string{"a"}}, {Name: "B", Items: []string{"b1", "b2"}}}
	// link 0: bright + dashed, link 1: dim + solid
	r, _ := New(newDoc(), "data-flow", cols, WithRandom(random.NewSequence(0.9, 0.9, 0.1, 0.1)))
	sc := r.Render()
	links := sc.ByClass("flow-link")

	first := links[0].(scene.Path)
	if first.Opacity != BrightOpacity || len(first.Dash) != 2 {
		t.Errorf("first link opacity=%v dash=%v", first.Opacity, first.Dash)
	}
	second := links[1].(scene.Path)
	if second.Opacity != DimOpacity || second.Dash != nil {
		t.Errorf("second link opacity=%v dash=%v", second.Opacity, second.Dash)
	}
	if len(sc.Animations) != 1 || sc.Animations[0].Target != first.ID {
		t.Errorf("animations = %+v", sc.Animations)
	}

	d := scene.PathData(first)
	if !strings.HasPrefix(d, "M") || !strings.Contains(d, "C") {
		t.Errorf("path data = %q", d)
	}
	// control points share the horizontal midpoint
	ctrl := first.Segments[1].Points
	if ctrl[0].X != ctrl[1].X || ctrl[0].Y != first.Segments[0].Points[0].Y {
		t.Errorf("control points = %+v", ctrl)
	}
}

func TestItemsDrawn(t *testing.T) {
	r, _ := New(newDoc(), "data-flow", DefaultColumns(), WithRandom(random.New(1)))
	sc := r.Render()
	if got := sc.Count(scene.KindRect, "flow-item"); got != 7 {
		t.Errorf("boxes = %d, want 7", got)
	}
	if got := sc.Count(scene.KindText, "flow-label"); got != 7 {
		t.Errorf("labels = %d, want 7", got)
	}
	if _, ok := sc.Gradient(GradientID); !ok {
		t.Error("flow gradient missing")
	}
}

func TestInert(t *testing.T) {
	r, err := New(newDoc(), "absent", DefaultColumns())
	if err != nil {
		t.Fatal(err)
	}
	if r.Render() != nil {
		t.Error("inert renderer should not render")
	}
}
