// Package config loads and saves lumenviz configuration.
//
// A configuration describes one document: a mount point and canvas size per
// visualization plus each renderer's parameters. Files are TOML or YAML,
// chosen by extension:
//
//	cfg, err := config.Load("lumenviz.toml")
//	if err != nil {
//	    return err
//	}
//
// Zero or missing values fall back to [Default].
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/luminexlabs/lumenviz/pkg/errors"
	"github.com/luminexlabs/lumenviz/pkg/render/concepts"
	"github.com/luminexlabs/lumenviz/pkg/render/flow"
	"github.com/luminexlabs/lumenviz/pkg/render/gauge"
	"github.com/luminexlabs/lumenviz/pkg/render/heatmap"
	"github.com/luminexlabs/lumenviz/pkg/render/network"
	"github.com/luminexlabs/lumenviz/pkg/render/radar"
)

// Format is a configuration file syntax.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unsupported config extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
}

// Duration is a time.Duration written as a string such as "100ms".
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config is the top-level configuration.
type Config struct {
	// Seed drives every random source; 0 seeds from the clock.
	Seed     uint64         `toml:"seed" yaml:"seed"`
	Network  NetworkConfig  `toml:"network" yaml:"network"`
	Heatmap  HeatmapConfig  `toml:"heatmap" yaml:"heatmap"`
	Radar    RadarConfig    `toml:"radar" yaml:"radar"`
	Gauge    GaugeConfig    `toml:"gauge" yaml:"gauge"`
	Flow     FlowConfig     `toml:"flow" yaml:"flow"`
	Concepts ConceptsConfig `toml:"concepts" yaml:"concepts"`
}

// NetworkConfig configures the layered graph.
type NetworkConfig struct {
	Mount         string          `toml:"mount" yaml:"mount"`
	Width         float64         `toml:"width" yaml:"width"`
	Height        float64         `toml:"height" yaml:"height"`
	Layers        []network.Layer `toml:"layers" yaml:"layers"`
	PulseInterval Duration        `toml:"pulse_interval" yaml:"pulse_interval"`
	PulseCount    int             `toml:"pulse_count" yaml:"pulse_count"`
}

// HeatmapConfig configures the grid heatmap. Size is both width and height.
type HeatmapConfig struct {
	Mount  string  `toml:"mount" yaml:"mount"`
	Size   float64 `toml:"size" yaml:"size"`
	Grid   int     `toml:"grid" yaml:"grid"`
	Decay  float64 `toml:"decay" yaml:"decay"`
	Jitter float64 `toml:"jitter" yaml:"jitter"`
	Noise  float64 `toml:"noise" yaml:"noise"`
}

// Params returns the field parameters.
func (h HeatmapConfig) Params() heatmap.Params {
	return heatmap.Params{Grid: h.Grid, Decay: h.Decay, Jitter: h.Jitter, Noise: h.Noise}
}

// RadarConfig configures the radar chart. Zero levels means one ring per axis.
type RadarConfig struct {
	Mount  string        `toml:"mount" yaml:"mount"`
	Width  float64       `toml:"width" yaml:"width"`
	Height float64       `toml:"height" yaml:"height"`
	Margin float64       `toml:"margin" yaml:"margin"`
	Levels int           `toml:"levels" yaml:"levels"`
	Axes   []radar.Datum `toml:"axes" yaml:"axes"`
}

// GaugeConfig configures the arc gauge.
type GaugeConfig struct {
	Mount  string  `toml:"mount" yaml:"mount"`
	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
	Value  float64 `toml:"value" yaml:"value"`
	Label  string  `toml:"label" yaml:"label"`
}

// FlowConfig configures the data-flow diagram.
type FlowConfig struct {
	Mount   string        `toml:"mount" yaml:"mount"`
	Width   float64       `toml:"width" yaml:"width"`
	Height  float64       `toml:"height" yaml:"height"`
	Columns []flow.Column `toml:"columns" yaml:"columns"`
}

// ConceptsConfig configures the concept bars.
type ConceptsConfig struct {
	Mount    string             `toml:"mount" yaml:"mount"`
	Width    float64            `toml:"width" yaml:"width"`
	Height   float64            `toml:"height" yaml:"height"`
	Interval Duration           `toml:"interval" yaml:"interval"`
	Items    []concepts.Concept `toml:"items" yaml:"items"`
}

// Default returns the configuration of the stock page.
func Default() Config {
	p := heatmap.DefaultParams()
	return Config{
		Network: NetworkConfig{
			Mount:         "network-viz",
			Width:         800,
			Height:        400,
			Layers:        network.DefaultLayers(),
			PulseInterval: Duration{network.PulseEvery},
			PulseCount:    20,
		},
		Heatmap: HeatmapConfig{
			Mount: "heatmap-0",
			Size:  200,
			Grid:  p.Grid, Decay: p.Decay, Jitter: p.Jitter, Noise: p.Noise,
		},
		Radar: RadarConfig{
			Mount:  "concept-radar",
			Width:  300,
			Height: 300,
			Margin: radar.DefaultMargin,
			Axes:   radar.DefaultData(),
		},
		Gauge: GaugeConfig{
			Mount:  "confidence-gauge",
			Width:  200,
			Height: 120,
			Value:  gauge.DefaultValue,
			Label:  gauge.DefaultLabel,
		},
		Flow: FlowConfig{
			Mount:   "data-flow-svg",
			Width:   900,
			Height:  320,
			Columns: flow.DefaultColumns(),
		},
		Concepts: ConceptsConfig{
			Mount:    "concepts-panel",
			Width:    400,
			Height:   240,
			Interval: Duration{concepts.DriftInterval},
			Items:    concepts.DefaultConcepts(),
		},
	}
}

// Load reads a TOML or YAML file over the defaults. A missing file is an
// error; use [Default] when no file is given.
func Load(path string) (Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes data over the defaults and validates the result.
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()
	// lists replace the defaults rather than merging into them
	cfg.Network.Layers = nil
	cfg.Radar.Axes = nil
	cfg.Flow.Columns = nil
	cfg.Concepts.Items = nil

	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse yaml")
		}
	default:
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config format %q", format)
	}

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// fillDefaults restores defaults for zero-valued fields.
func (c *Config) fillDefaults() {
	d := Default()
	fill(&c.Network.Mount, d.Network.Mount)
	fill(&c.Network.Width, d.Network.Width)
	fill(&c.Network.Height, d.Network.Height)
	if len(c.Network.Layers) == 0 {
		c.Network.Layers = d.Network.Layers
	}
	fill(&c.Network.PulseInterval, d.Network.PulseInterval)

	fill(&c.Heatmap.Mount, d.Heatmap.Mount)
	fill(&c.Heatmap.Size, d.Heatmap.Size)
	fill(&c.Heatmap.Decay, d.Heatmap.Decay)

	fill(&c.Radar.Mount, d.Radar.Mount)
	fill(&c.Radar.Width, d.Radar.Width)
	fill(&c.Radar.Height, d.Radar.Height)
	if len(c.Radar.Axes) == 0 {
		c.Radar.Axes = d.Radar.Axes
	}

	fill(&c.Gauge.Mount, d.Gauge.Mount)
	fill(&c.Gauge.Width, d.Gauge.Width)
	fill(&c.Gauge.Height, d.Gauge.Height)
	fill(&c.Gauge.Label, d.Gauge.Label)

	fill(&c.Flow.Mount, d.Flow.Mount)
	fill(&c.Flow.Width, d.Flow.Width)
	fill(&c.Flow.Height, d.Flow.Height)
	if len(c.Flow.Columns) == 0 {
		c.Flow.Columns = d.Flow.Columns
	}

	fill(&c.Concepts.Mount, d.Concepts.Mount)
	fill(&c.Concepts.Width, d.Concepts.Width)
	fill(&c.Concepts.Height, d.Concepts.Height)
	fill(&c.Concepts.Interval, d.Concepts.Interval)
	if len(c.Concepts.Items) == 0 {
		c.Concepts.Items = d.Concepts.Items
	}
}

func fill[T comparable](v *T, def T) {
	var zero T
	if *v == zero {
		*v = def
	}
}

// Validate checks every section. Heatmap grid and gauge value are checked by
// their renderers' rules.
func (c Config) Validate() error {
	checks := []error{
		errors.ValidateMountID(c.Network.Mount),
		errors.ValidateSize("network.width", c.Network.Width),
		errors.ValidateSize("network.height", c.Network.Height),
		network.ValidateHeight("network.height", c.Network.Height),
		network.ValidateLayers(c.Network.Layers),
		errors.ValidateMountID(c.Heatmap.Mount),
		errors.ValidateSize("heatmap.size", c.Heatmap.Size),
		c.Heatmap.Params().Validate(),
		errors.ValidateMountID(c.Radar.Mount),
		errors.ValidateSize("radar.width", c.Radar.Width),
		errors.ValidateSize("radar.height", c.Radar.Height),
		errors.ValidateMountID(c.Gauge.Mount),
		errors.ValidateSize("gauge.width", c.Gauge.Width),
		errors.ValidateSize("gauge.height", c.Gauge.Height),
		errors.ValidateFinite("gauge.value", c.Gauge.Value),
		errors.ValidateMountID(c.Flow.Mount),
		errors.ValidateSize("flow.width", c.Flow.Width),
		errors.ValidateSize("flow.height", c.Flow.Height),
		flow.ValidateColumns(c.Flow.Columns),
		errors.ValidateMountID(c.Concepts.Mount),
		errors.ValidateSize("concepts.width", c.Concepts.Width),
		errors.ValidateSize("concepts.height", c.Concepts.Height),
	}
	for _, err := range checks {
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid config")
		}
	}
	if c.Network.PulseCount < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "network.pulse_count cannot be negative")
	}
	if c.Radar.Levels < 0 || c.Radar.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "radar.levels and radar.margin cannot be negative")
	}
	if c.Network.PulseInterval.Duration < 0 || c.Concepts.Interval.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "intervals cannot be negative")
	}
	return nil
}

// Write encodes the configuration in format.
func (c Config) Write(w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(c)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	}
	return errors.New(errors.ErrCodeInvalidConfig, "unknown config format %q", format)
}

// Marshal returns the configuration encoded in format.
func (c Config) Marshal(format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Write(&buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the configuration to path, choosing the format by extension.
func (c Config) Save(path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := c.Marshal(format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}
