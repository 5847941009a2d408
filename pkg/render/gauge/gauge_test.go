package gauge

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/luminexlabs/lumenviz/pkg/scene"
)

func newDoc() *scene.Document {
	doc := scene.NewDocument()
	doc.Add("confidence-gauge", 200, 120)
	return doc
}

func TestSweep(t *testing.T) {
	tests := []struct {
		v, want float64
	}{
		{0, 0},
		{1, math.Pi},
		{0.5, math.Pi / 2},
		{-3, 0},
		{7, math.Pi},
	}
	for _, tt := range tests {
		if got := Sweep(tt.v); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Sweep(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := map[float64]string{
		0.967: "96.7%",
		0:     "0.0%",
		1:     "100.0%",
		1.5:   "100.0%",
		0.5:   "50.0%",
	}
	for v, want := range tests {
		if got := FormatPercent(v); got != want {
			t.Errorf("FormatPercent(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestSweepBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Float64().Draw(t, "v")
		s := Sweep(v)
		if s < 0 || s > math.Pi {
			t.Fatalf("Sweep(%v) = %v out of [0, pi]", v, s)
		}
	})
}

func TestRenderDefault(t *testing.T) {
	r, err := New(newDoc(), "confidence-gauge", DefaultValue)
	if err != nil {
		t.Fatal(err)
	}
	sc := r.Render()

	track := sc.ByClass("gauge-track")[0].(scene.Arc)
	if track.CX != 100 || track.CY != 100 || track.Outer != 80 || track.Inner != 65 {
		t.Errorf("track = %+v", track)
	}
	if track.Sweep() != math.Pi {
		t.Errorf("track sweep = %v", track.Sweep())
	}

	value := sc.ByClass("gauge-value")[0].(scene.Arc)
	if math.Abs(value.Sweep()-math.Pi*0.967) > 1e-12 {
		t.Errorf("value sweep = %v", value.Sweep())
	}
	if _, ok := sc.Gradient(value.FillGradient); !ok {
		t.Error("value gradient missing")
	}

	text := sc.ByClass("gauge-text")[0].(scene.Text)
	if text.Content != "96.7%" || text.Y != 80 {
		t.Errorf("text = %+v", text)
	}
	caption := sc.ByClass("gauge-label")[0].(scene.Text)
	if caption.Content != "Confidence" || caption.Y != 105 {
		t.Errorf("caption = %+v", caption)
	}
}

func TestRenderExtremes(t *testing.T) {
	r, _ := New(newDoc(), "confidence-gauge", 0)
	sc := r.Render()
	if v := sc.ByClass("gauge-value")[0].(scene.Arc); v.Sweep() != 0 {
		t.Errorf("zero value sweep = %v", v.Sweep())
	}
	if got := sc.ByClass("gauge-text")[0].(scene.Text).Content; got != "0.0%" {
		t.Errorf("text = %q", got)
	}

	sc, err := r.SetValue(1)
	if err != nil {
		t.Fatal(err)
	}
	if v := sc.ByClass("gauge-value")[0].(scene.Arc); math.Abs(v.Sweep()-math.Pi) > 1e-12 {
		t.Errorf("full value sweep = %v", v.Sweep())
	}
	if r.Value() != 1 {
		t.Errorf("Value() = %v", r.Value())
	}
}

func TestRejectsNaN(t *testing.T) {
	if _, err := New(newDoc(), "confidence-gauge", math.NaN()); err == nil {
		t.Error("NaN should be rejected")
	}
	r, _ := New(newDoc(), "confidence-gauge", 0.5)
	if _, err := r.SetValue(math.NaN()); err == nil {
		t.Error("SetValue(NaN) should fail")
	}
	if r.Value() != 0.5 {
		t.Error("failed SetValue should keep the old value")
	}
}

func TestOptions(t *testing.T) {
	r, err := New(newDoc(), "confidence-gauge", 0.3, WithLabel("Certainty"), WithRadius(50))
	if err != nil {
		t.Fatal(err)
	}
	sc := r.Render()
	if got := sc.ByClass("gauge-label")[0].(scene.Text).Content; got != "Certainty" {
		t.Errorf("label = %q", got)
	}
	if arc := sc.ByClass("gauge-track")[0].(scene.Arc); arc.Outer != 50 || arc.Inner != 35 {
		t.Errorf("track radii = %v/%v", arc.Inner, arc.Outer)
	}
	if _, err := New(newDoc(), "confidence-gauge", 0.3, WithRadius(0)); err == nil {
		t.Error("zero radius should fail")
	}
}

func TestInert(t *testing.T) {
	r, err := New(newDoc(), "absent", 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if r.Render() != nil {
		t.Error("inert renderer should not render")
	}
}
