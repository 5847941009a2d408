// Package pipeline renders configured visualizations to output artifacts.
//
// A run builds one [scene.Document] from the configuration, binds a renderer
// to each requested mount point, lays every visualization out concurrently
// and exports each scene in the requested formats. The CLI and the preview
// share the same entry points so both see identical scenes for a given seed.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    VizTypes: []string{pipeline.VizNetwork, pipeline.VizGauge},
//	    Formats:  []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	    Seed:     42,
//	})
//	if err != nil {
//	    return err
//	}
//	svg := res.Artifacts[pipeline.VizNetwork][pipeline.FormatSVG]
package pipeline

import (
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/luminexlabs/lumenviz/pkg/config"
	"github.com/luminexlabs/lumenviz/pkg/errors"
	"github.com/luminexlabs/lumenviz/pkg/render/concepts"
	"github.com/luminexlabs/lumenviz/pkg/render/flow"
	"github.com/luminexlabs/lumenviz/pkg/render/gauge"
	"github.com/luminexlabs/lumenviz/pkg/render/heatmap"
	"github.com/luminexlabs/lumenviz/pkg/render/network"
	"github.com/luminexlabs/lumenviz/pkg/render/radar"
	"github.com/luminexlabs/lumenviz/pkg/render/sink"
)

// =============================================================================
// Visualization Types and Formats
// =============================================================================

// Visualization types. VizAll expands to every type.
const (
	VizNetwork  = network.VizType
	VizHeatmap  = heatmap.VizType
	VizRadar    = radar.VizType
	VizGauge    = gauge.VizType
	VizFlow     = flow.VizType
	VizConcepts = concepts.VizType
	VizAll      = "all"
)

// Output formats. FormatDOT and FormatGraphviz apply to the network only.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatGraphviz = "graphviz"
)

// VizTypes lists every visualization type in document order.
var VizTypes = []string{VizNetwork, VizHeatmap, VizRadar, VizGauge, VizFlow, VizConcepts}

// Formats lists every output format.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatGraphviz}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = setOf(VizTypes)

// ValidFormats is the set of supported output formats.
var ValidFormats = setOf(Formats)

// Extension returns the file extension written for format.
func Extension(format string) string {
	if format == FormatGraphviz {
		return "graphviz.svg"
	}
	return format
}

func setOf(s []string) map[string]bool {
	m := make(map[string]bool, len(s))
	for _, v := range s {
		m[v] = true
	}
	return m
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(v string) error {
	if !ValidVizTypes[v] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz type: %q (must be one of: %s, all)", v, strings.Join(VizTypes, ", "))
	}
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(f string) error {
	if !ValidFormats[f] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", f, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ExpandVizTypes resolves "all", trims whitespace and drops duplicates while
// keeping the requested order.
func ExpandVizTypes(in []string) ([]string, error) {
	var out []string
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if v == VizAll {
			for _, t := range VizTypes {
				if !slices.Contains(out, t) {
					out = append(out, t)
				}
			}
			continue
		}
		if err := ValidateVizType(v); err != nil {
			return nil, err
		}
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run.
type Options struct {
	// Config supplies mounts, sizes and renderer parameters. The zero value
	// means config.Default().
	Config *config.Config `json:"-"`

	VizTypes []string `json:"viz_types,omitempty"`
	Formats  []string `json:"formats,omitempty"`

	// Seed overrides Config.Seed when non-zero. If both are zero a seed is
	// drawn from the clock and reported in Result.Seed.
	Seed uint64 `json:"seed,omitempty"`

	// Scale is the PNG pixel density.
	Scale float64 `json:"scale,omitempty"`

	// GaugeValue and Grid override the configuration when set.
	GaugeValue *float64 `json:"gauge_value,omitempty"`
	Grid       int      `json:"grid,omitempty"`

	// NoAnimate strips animations from SVG and PDF output.
	NoAnimate bool `json:"no_animate,omitempty"`

	// Detailed adds node indices to DOT labels.
	Detailed bool `json:"detailed,omitempty"`

	Logger *log.Logger `json:"-"`

	cfg       config.Config
	validated bool
}

// DefaultScale is the default PNG pixel density.
const DefaultScale = 2.0

// ValidateAndSetDefaults checks the options, applies defaults and resolves the
// effective configuration. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.VizTypes) == 0 {
		o.VizTypes = []string{VizAll}
	}
	types, err := ExpandVizTypes(o.VizTypes)
	if err != nil {
		return err
	}
	if len(types) == 0 {
		return errors.New(errors.ErrCodeInvalidVizType, "no visualization type given")
	}
	o.VizTypes = types

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 || math.IsNaN(o.Scale) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	cfg := config.Default()
	if o.Config != nil {
		cfg = *o.Config
	}
	if o.Seed != 0 {
		cfg.Seed = o.Seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if o.Grid != 0 {
		cfg.Heatmap.Grid = o.Grid
	}
	if o.GaugeValue != nil {
		cfg.Gauge.Value = *o.GaugeValue
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	o.validated = true
	return nil
}

// Effective returns the configuration a validated run uses.
func (o *Options) Effective() config.Config { return o.cfg }

// Supports reports whether format applies to vizType.
func Supports(vizType, format string) bool {
	switch format {
	case FormatDOT, FormatGraphviz:
		return vizType == VizNetwork
	}
	return true
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Seed is the seed actually used.
	Seed uint64

	// VizTypes are the visualization types that were requested, in order.
	VizTypes []string

	// Artifacts maps visualization type to format to bytes.
	Artifacts map[string]map[string][]byte

	// Skipped lists visualizations that produced no scene and
	// viz/format pairs that do not apply.
	Skipped []Skip

	// Summary is the heatmap field summary when the heatmap was rendered.
	Summary *heatmap.Summary

	Stats Stats
}

// Skip records an output that was not produced.
type Skip struct {
	VizType string
	Format  string // empty when the whole visualization was skipped
	Reason  string
}

// Stats contains timing and size information.
type Stats struct {
	Elements   map[string]int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// Files flattens the artifacts into output file names under base. When a
// single visualization was requested it is written as base.ext; several
// requested types are written as base_type.ext even if some were skipped.
func (r *Result) Files(base string) map[string][]byte {
	files := make(map[string][]byte)
	requested := len(r.VizTypes)
	if requested == 0 {
		requested = len(r.Artifacts)
	}
	single := requested == 1
	for viz, byFormat := range r.Artifacts {
		for format, data := range byFormat {
			name := base + "_" + viz
			if single {
				name = base
			}
			files[name+"."+Extension(format)] = data
		}
	}
	return files
}

func (o *Options) svgOptions(seed uint64) []sink.SVGOption {
	opts := []sink.SVGOption{sink.WithIDSeed(seed)}
	if o.NoAnimate {
		opts = append(opts, sink.WithoutAnimations())
	}
	return opts
}
