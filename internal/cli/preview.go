package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/luminexlabs/lumenviz/pkg/colorscale"
	"github.com/luminexlabs/lumenviz/pkg/pipeline"
	"github.com/luminexlabs/lumenviz/pkg/render/concepts"
	"github.com/luminexlabs/lumenviz/pkg/render/gauge"
	"github.com/luminexlabs/lumenviz/pkg/render/network"
)

const (
	frameEvery     = 80 * time.Millisecond
	heatmapRefresh = 2 * time.Second
	gaugeStep      = 0.01
	gaugeBarWidth  = 30
	conceptBar     = 20
)

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Watch the animated visualizations in the terminal",
		Long: `Preview runs the network pulses and concept drift live and refreshes the
heatmap every 2 seconds.

Keys: r refresh heatmap, +/- adjust gauge, space pause, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), seed)
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 uses the config seed, or the clock)")
	return cmd
}

func (c *CLI) runPreview(ctx context.Context, seed uint64) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts := pipeline.Options{Config: &cfg, Seed: seed, Logger: c.Logger}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	eff := opts.Effective()

	set, err := pipeline.NewSet(pipeline.BuildDocument(eff), eff, pipeline.VizTypes)
	if err != nil {
		return err
	}
	defer set.Close()
	logger.Debug("starting preview", "seed", eff.Seed)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newPreviewModel(ctx, set)
	m.start()
	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// Messages
// =============================================================================

type (
	frameMsg   time.Time
	refreshMsg time.Time
	pulseMsg   network.Pulse
	closedMsg  struct{}
)

func frameCmd() tea.Cmd {
	return tea.Tick(frameEvery, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func refreshCmd() tea.Cmd {
	return tea.Tick(heatmapRefresh, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

// waitPulse blocks on the renderer's pulse channel.
func waitPulse(ch <-chan network.Pulse) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return pulseMsg(p)
	}
}

// =============================================================================
// Model
// =============================================================================

// previewModel is the bubbletea model for the live preview.
type previewModel struct {
	ctx context.Context
	set *pipeline.Set

	now       time.Time
	pulses    int
	last      *network.Pulse
	refreshes int
	paused    bool
	width     int
}

func newPreviewModel(ctx context.Context, set *pipeline.Set) *previewModel {
	for _, viz := range pipeline.VizTypes {
		if r := set.Get(viz); r != nil {
			r.Render()
		}
	}
	return &previewModel{ctx: ctx, set: set, now: time.Now()}
}

// start runs the network and concept tickers.
func (m *previewModel) start() {
	m.set.Network.Start(m.ctx)
	m.set.Concepts.Start(m.ctx)
}

// stop halts both tickers. Pulses already in flight still finish.
func (m *previewModel) stop() {
	m.set.Network.Stop()
	m.set.Concepts.Stop()
}

func (m *previewModel) Init() tea.Cmd {
	return tea.Batch(frameCmd(), refreshCmd(), waitPulse(m.set.Network.Pulses()))
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.stop()
			return m, tea.Quit
		case "r":
			m.set.Heatmap.Update()
			m.refreshes++
		case "+", "=":
			m.nudgeGauge(gaugeStep)
		case "-", "_":
			m.nudgeGauge(-gaugeStep)
		case " ":
			m.paused = !m.paused
			if m.paused {
				m.stop()
			} else {
				m.start()
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case frameMsg:
		m.now = time.Time(msg)
		return m, frameCmd()
	case refreshMsg:
		if !m.paused {
			m.set.Heatmap.Update()
			m.refreshes++
		}
		return m, refreshCmd()
	case pulseMsg:
		p := network.Pulse(msg)
		m.last = &p
		m.pulses++
		return m, waitPulse(m.set.Network.Pulses())
	case closedMsg:
		return m, nil
	}
	return m, nil
}

func (m *previewModel) nudgeGauge(d float64) {
	_, _ = m.set.Gauge.SetValue(gauge.Clamp(m.set.Gauge.Value() + d))
}

func (m *previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("lumenviz preview"))
	status := "live"
	if m.paused {
		status = "paused"
	}
	b.WriteString("  " + StyleDim.Render(status))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("r refresh heatmap  +/- gauge  space pause  q quit"))
	b.WriteString("\n\n")

	left := lipgloss.JoinVertical(lipgloss.Left,
		panel("Network", m.viewNetwork()),
		panel("Confidence", m.viewGauge()),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		panel("Attention", m.viewHeatmap()),
		panel("Concepts", m.viewConcepts()),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Panels
// =============================================================================

var stylePanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorDim).
	Padding(0, 1)

func panel(title, body string) string {
	return stylePanel.Render(StyleHighlight.Render(title) + "\n" + body)
}

// viewNetwork draws one row per layer; pulsing nodes are drawn larger.
func (m *previewModel) viewNetwork() string {
	r := m.set.Network
	var b strings.Builder
	node := 0
	for _, l := range r.Layers() {
		name := lipgloss.NewStyle().Foreground(colorGray).Width(10).Render(l.Name)
		b.WriteString(name)
		for range l.Nodes {
			glyph := "·"
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(l.Color))
			if r.Radius(node, m.now) > network.NodeRadius+0.5 {
				glyph = "●"
				style = style.Bold(true)
			}
			b.WriteString(style.Render(glyph) + " ")
			node++
		}
		b.WriteString("\n")
	}
	line := fmt.Sprintf("%d pulses", m.pulses)
	if m.last != nil {
		line += fmt.Sprintf(" · last %s", network.NodeID(m.last.Layer, m.last.Index))
	}
	b.WriteString(StyleDim.Render(line))
	return b.String()
}

// viewHeatmap draws the field as coloured cells.
func (m *previewModel) viewHeatmap() string {
	f := m.set.Heatmap.Field()
	var b strings.Builder
	for i := range f.Size {
		for j := range f.Size {
			hex := colorscale.Inferno.Hex(f.At(i, j))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██"))
		}
		b.WriteString("\n")
	}
	s := f.Summary()
	b.WriteString(StyleDim.Render(fmt.Sprintf("mean %.2f · max %.2f · refresh %d", s.Mean, s.Max, m.refreshes)))
	return b.String()
}

// viewGauge draws the value as a horizontal bar.
func (m *previewModel) viewGauge() string {
	v := m.set.Gauge.Value()
	return bar(v, gaugeBarWidth, "#00d4ff") + " " + StyleValue.Render(gauge.FormatPercent(v))
}

// viewConcepts draws a table of the drifting scores.
func (m *previewModel) viewConcepts() string {
	cs := m.set.Concepts.Concepts()
	rows := make([][]string, len(cs))
	for i, c := range cs {
		lvl := concepts.LevelOf(c.Value)
		rows[i] = []string{c.Name, bar(c.Value, conceptBar, lvl.Color()), fmt.Sprintf("%.2f", c.Value), string(lvl)}
	}
	return table.New().
		Border(lipgloss.HiddenBorder()).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}

// bar renders v in [0,1] as a filled track of width cells.
func bar(v float64, width int, color string) string {
	filled := int(gauge.Clamp(v)*float64(width) + 0.5)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", width-filled))
}
