package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luminexlabs/lumenviz/pkg/config"
	"github.com/luminexlabs/lumenviz/pkg/pipeline"
	"github.com/luminexlabs/lumenviz/pkg/render/network"
)

func newTestPreview(t *testing.T) *previewModel {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 7
	set, err := pipeline.NewSet(pipeline.BuildDocument(cfg), cfg, pipeline.VizTypes)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = set.Close() })
	return newPreviewModel(context.Background(), set)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(s)}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreviewQuit(t *testing.T) {
	m := newTestPreview(t)
	m.start()
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if m.set.Network.Running() {
		t.Error("quitting should stop the pulse ticker")
	}
}

func TestPreviewHeatmapRefresh(t *testing.T) {
	m := newTestPreview(t)
	before := m.set.Heatmap.Field()

	m.Update(key("r"))
	if m.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", m.refreshes)
	}
	m.Update(refreshMsg(time.Now()))
	if m.refreshes != 2 {
		t.Errorf("refreshes = %d, want 2", m.refreshes)
	}
	after := m.set.Heatmap.Field()
	if before.CenterX == after.CenterX && before.CenterY == after.CenterY && before.Values[0] == after.Values[0] {
		t.Error("refresh should re-jitter the field")
	}
}

func TestPreviewPausedSkipsTimedRefresh(t *testing.T) {
	m := newTestPreview(t)
	m.Update(key(" "))
	if !m.paused {
		t.Fatal("space should pause")
	}
	m.Update(refreshMsg(time.Now()))
	if m.refreshes != 0 {
		t.Error("timed refresh should not run while paused")
	}
	m.Update(key(" "))
	defer m.stop()
	if m.paused || !m.set.Network.Running() {
		t.Error("second space should resume the tickers")
	}
}

func TestPreviewGaugeKeys(t *testing.T) {
	m := newTestPreview(t)
	v := m.set.Gauge.Value()
	m.Update(key("-"))
	if got := m.set.Gauge.Value(); got >= v {
		t.Errorf("- should lower the gauge: %v -> %v", v, got)
	}
	for range 10 {
		m.Update(key("+"))
	}
	if got := m.set.Gauge.Value(); got != 1 {
		t.Errorf("gauge should clamp at 1, got %v", got)
	}
}

func TestPreviewPulseMsg(t *testing.T) {
	m := newTestPreview(t)
	_, cmd := m.Update(pulseMsg(network.Pulse{Node: 3, Layer: 0, Index: 3, At: time.Now()}))
	if cmd == nil {
		t.Error("pulse should re-arm the channel wait")
	}
	if m.pulses != 1 || m.last == nil || m.last.Node != 3 {
		t.Errorf("pulse not recorded: %d %+v", m.pulses, m.last)
	}
	if !strings.Contains(m.View(), "node-0-3") {
		t.Error("view should name the last pulsed node")
	}
}

func TestPreviewView(t *testing.T) {
	view := newTestPreview(t).View()
	for _, want := range []string{"lumenviz preview", "Network", "Attention", "Confidence", "Concepts", "96.7%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		v          float64
		wantFilled int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{1.7, 10},
		{-1, 0},
	}
	for _, tt := range tests {
		got := bar(tt.v, 10, "#00d4ff")
		if n := strings.Count(got, "█"); n != tt.wantFilled {
			t.Errorf("bar(%v) filled = %d, want %d", tt.v, n, tt.wantFilled)
		}
		if n := strings.Count(got, "█") + strings.Count(got, "░"); n != 10 {
			t.Errorf("bar(%v) width = %d, want 10", tt.v, n)
		}
	}
}
