package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminexlabs/lumenviz/pkg/config"
	"github.com/luminexlabs/lumenviz/pkg/errors"
	"github.com/luminexlabs/lumenviz/pkg/render/gauge"
	"github.com/luminexlabs/lumenviz/pkg/render/network"
	"github.com/luminexlabs/lumenviz/pkg/scene"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"graphviz", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	assert.NoError(t, ValidateFormats([]string{"svg", "png"}))
	assert.Error(t, ValidateFormats([]string{"svg", "invalid"}))
	assert.NoError(t, ValidateFormats(nil))
}

func TestExpandVizTypes(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"single", []string{"gauge"}, []string{"gauge"}},
		{"all", []string{"all"}, VizTypes},
		{"dedupe keeps order", []string{"radar", " network ", "radar"}, []string{"radar", "network"}},
		{"all after one", []string{"flow", "all"}, []string{"flow", "network", "heatmap", "radar", "gauge", "concepts"}},
		{"blank", []string{"", " "}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandVizTypes(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ExpandVizTypes([]string{"tower"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidVizType))
}

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	require.NoError(t, o.ValidateAndSetDefaults())
	assert.Equal(t, VizTypes, o.VizTypes)
	assert.Equal(t, []string{FormatSVG}, o.Formats)
	assert.Equal(t, DefaultScale, o.Scale)
	assert.NotNil(t, o.Logger)
	assert.NotZero(t, o.Effective().Seed)

	// idempotent
	seed := o.Effective().Seed
	require.NoError(t, o.ValidateAndSetDefaults())
	assert.Equal(t, seed, o.Effective().Seed)
}

func TestValidateAndSetDefaultsOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 5
	v := 0.5
	o := Options{Config: &cfg, Seed: 9, Grid: 6, GaugeValue: &v}
	require.NoError(t, o.ValidateAndSetDefaults())

	eff := o.Effective()
	assert.Equal(t, uint64(9), eff.Seed)
	assert.Equal(t, 6, eff.Heatmap.Grid)
	assert.Equal(t, 0.5, eff.Gauge.Value)
	assert.Equal(t, uint64(5), cfg.Seed, "caller config must not change")
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"viz", Options{VizTypes: []string{"pie"}}, errors.ErrCodeInvalidVizType},
		{"format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"scale", Options{Scale: -1}, errors.ErrCodeInvalidInput},
		{"grid", Options{Grid: -3}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestSupports(t *testing.T) {
	assert.True(t, Supports(VizNetwork, FormatDOT))
	assert.True(t, Supports(VizNetwork, FormatGraphviz))
	assert.False(t, Supports(VizHeatmap, FormatDOT))
	assert.False(t, Supports(VizGauge, FormatGraphviz))
	assert.True(t, Supports(VizGauge, FormatSVG))
}

func TestBuildDocument(t *testing.T) {
	doc := BuildDocument(config.Default())
	assert.ElementsMatch(t,
		[]string{"network-viz", "heatmap-0", "concept-radar", "confidence-gauge", "data-flow-svg", "concepts-panel"},
		doc.IDs())

	c, ok := doc.Lookup("heatmap-0")
	require.True(t, ok)
	w, h := c.Size()
	assert.Equal(t, 200.0, w)
	assert.Equal(t, 200.0, h)
}

func TestExecuteAll(t *testing.T) {
	runner := NewRunner(nil)
	res, err := runner.Execute(context.Background(), Options{
		Seed:    42,
		Formats: []string{FormatSVG, FormatJSON},
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(42), res.Seed)
	assert.Len(t, res.Artifacts, len(VizTypes))
	for _, viz := range VizTypes {
		svg := res.Artifacts[viz][FormatSVG]
		assert.True(t, bytes.HasPrefix(bytes.TrimSpace(svg), []byte("<?xml")) || bytes.Contains(svg, []byte("<svg")), viz)
		assert.Positive(t, res.Stats.Elements[viz], viz)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(res.Artifacts[viz][FormatJSON], &doc), viz)
		assert.Equal(t, viz, doc["viz"])
	}
	require.NotNil(t, res.Summary)
	assert.GreaterOrEqual(t, res.Summary.Min, 0.0)
	assert.LessOrEqual(t, res.Summary.Max, 1.0)
	assert.Empty(t, res.Skipped)
}

func TestExecuteDeterministic(t *testing.T) {
	run := func(seed uint64) []byte {
		res, err := NewRunner(nil).Execute(context.Background(), Options{
			VizTypes: []string{VizHeatmap},
			Seed:     seed,
		})
		require.NoError(t, err)
		return res.Artifacts[VizHeatmap][FormatSVG]
	}
	assert.Equal(t, run(7), run(7))
	assert.NotEqual(t, run(7), run(8))
}

func TestExecuteNamespacesDefsBySeed(t *testing.T) {
	render := func(seed uint64) string {
		res, err := NewRunner(nil).Execute(context.Background(), Options{
			VizTypes: []string{VizGauge},
			Seed:     seed,
		})
		require.NoError(t, err)
		return string(res.Artifacts[VizGauge][FormatSVG])
	}
	// the gauge scene does not depend on the seed; only its defs ids do
	a, b := render(7), render(8)
	assert.Contains(t, a, "-"+gauge.GradientID+`"`)
	assert.NotEqual(t, a, b)
}

func TestExecuteSkipsNetworkOnlyFormats(t *testing.T) {
	res, err := NewRunner(nil).Execute(context.Background(), Options{
		VizTypes: []string{VizNetwork, VizGauge},
		Formats:  []string{FormatDOT},
		Seed:     1,
	})
	require.NoError(t, err)

	dot := string(res.Artifacts[VizNetwork][FormatDOT])
	assert.True(t, strings.HasPrefix(dot, "digraph"))
	assert.NotContains(t, res.Artifacts, VizGauge)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, Skip{VizType: VizGauge, Format: FormatDOT, Reason: "format does not apply"}, res.Skipped[0])
}

func TestExecuteNoAnimate(t *testing.T) {
	opts := Options{VizTypes: []string{VizNetwork}, Seed: 3}
	res, err := NewRunner(nil).Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.Contains(t, string(res.Artifacts[VizNetwork][FormatSVG]), "<animate")

	opts.NoAnimate = true
	res, err = NewRunner(nil).Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.NotContains(t, string(res.Artifacts[VizNetwork][FormatSVG]), "<animate")
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(nil).Execute(ctx, Options{Seed: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLayoutSkipsInertRenderer(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 1
	doc := scene.NewDocument()
	doc.Add(cfg.Radar.Mount, cfg.Radar.Width, cfg.Radar.Height)

	set, err := NewSet(doc, cfg, []string{VizRadar, VizGauge})
	require.NoError(t, err)
	defer set.Close()

	res := &Result{Stats: Stats{Elements: map[string]int{}}}
	scenes, err := NewRunner(nil).layout(context.Background(), set, []string{VizRadar, VizGauge}, res)
	require.NoError(t, err)
	assert.Contains(t, scenes, VizRadar)
	assert.NotContains(t, scenes, VizGauge)
	assert.Equal(t, []Skip{{VizType: VizGauge, Reason: "mount point not found"}}, res.Skipped)
}

func TestResultFiles(t *testing.T) {
	single := &Result{Artifacts: map[string]map[string][]byte{
		VizNetwork: {FormatSVG: []byte("a"), FormatGraphviz: []byte("b")},
	}}
	assert.Equal(t, map[string][]byte{
		"out.svg":          []byte("a"),
		"out.graphviz.svg": []byte("b"),
	}, single.Files("out"))

	multi := &Result{Artifacts: map[string]map[string][]byte{
		VizNetwork: {FormatSVG: []byte("a")},
		VizGauge:   {FormatPNG: []byte("c")},
	}}
	assert.Equal(t, map[string][]byte{
		"out_network.svg": []byte("a"),
		"out_gauge.png":   []byte("c"),
	}, multi.Files("out"))

	partial := &Result{
		VizTypes: []string{VizNetwork, VizHeatmap},
		Artifacts: map[string]map[string][]byte{
			VizNetwork: {FormatDOT: []byte("d")},
		},
	}
	assert.Equal(t, map[string][]byte{"out_network.dot": []byte("d")}, partial.Files("out"))
}

func TestExecuteFilesKeepRequestedNaming(t *testing.T) {
	res, err := NewRunner(nil).Execute(context.Background(), Options{
		VizTypes: []string{VizNetwork, VizHeatmap},
		Formats:  []string{FormatDOT},
		Seed:     1,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{VizNetwork, VizHeatmap}, res.VizTypes)

	files := res.Files("out")
	assert.Len(t, files, 1)
	assert.Contains(t, files, "out_network.dot")
}

func TestNetworkScenario(t *testing.T) {
	cfg := config.Default()
	cfg.Network.Width, cfg.Network.Height = 400, 400
	cfg.Network.Layers = []network.Layer{
		{Name: "Input", Nodes: 4, Color: "#00d4ff"},
		{Name: "Output", Nodes: 8, Color: "#ff6b6b"},
	}
	res, err := NewRunner(nil).Execute(context.Background(), Options{
		Config:   &cfg,
		VizTypes: []string{VizNetwork},
		Formats:  []string{FormatJSON},
		Seed:     11,
	})
	require.NoError(t, err)

	var doc struct {
		Elements []struct {
			Kind string `json:"kind"`
		} `json:"elements"`
	}
	require.NoError(t, json.Unmarshal(res.Artifacts[VizNetwork][FormatJSON], &doc))
	kinds := map[string]int{}
	for _, e := range doc.Elements {
		kinds[e.Kind]++
	}
	assert.Equal(t, 32, kinds["line"])
	assert.Equal(t, 2, kinds["text"])
}
