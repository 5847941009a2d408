package heatmap

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/luminexlabs/lumenviz/pkg/errors"
	"github.com/luminexlabs/lumenviz/pkg/random"
)

// Params shapes a generated field.
type Params struct {
	Grid   int     `json:"grid" toml:"grid" yaml:"grid"`       // cells per side
	Decay  float64 `json:"decay" toml:"decay" yaml:"decay"`    // distance scale of the falloff
	Jitter float64 `json:"jitter" toml:"jitter" yaml:"jitter"` // max centre offset in cells
	Noise  float64 `json:"noise" toml:"noise" yaml:"noise"`    // max additive noise
}

// DefaultParams returns a 14x14 grid with decay 4, centre jitter of up to two
// cells and noise up to 0.2.
func DefaultParams() Params {
	return Params{Grid: 14, Decay: 4, Jitter: 2, Noise: 0.2}
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if p.Grid < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "grid size must be at least 1, got %d", p.Grid)
	}
	if !(p.Decay > 0) || math.IsInf(p.Decay, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "decay must be positive, got %v", p.Decay)
	}
	if p.Jitter < 0 || p.Noise < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "jitter and noise cannot be negative")
	}
	if err := errors.ValidateFinite("jitter", p.Jitter); err != nil {
		return err
	}
	return errors.ValidateFinite("noise", p.Noise)
}

// Field is a square grid of intensities in [0,1], stored row-major.
type Field struct {
	Size    int       `json:"size"`
	CenterX float64   `json:"center_x"`
	CenterY float64   `json:"center_y"`
	Values  []float64 `json:"values"`
}

// At returns the value at row i, column j.
func (f Field) At(i, j int) float64 {
	return f.Values[i*f.Size+j]
}

// Generate builds a field whose intensity decays exponentially with distance
// from a jittered centre, plus uniform noise, capped at 1.
func Generate(p Params, rng random.Source) (Field, error) {
	if err := p.Validate(); err != nil {
		return Field{}, err
	}
	return generate(p, rng), nil
}

func generate(p Params, rng random.Source) Field {
	g := p.Grid
	half := float64(g) / 2
	f := Field{
		Size:    g,
		CenterX: half + (rng.Float64()-0.5)*2*p.Jitter,
		CenterY: half + (rng.Float64()-0.5)*2*p.Jitter,
		Values:  make([]float64, g*g),
	}
	for i := range g {
		for j := range g {
			dist := math.Hypot(float64(i)-f.CenterY, float64(j)-f.CenterX)
			v := math.Exp(-dist/p.Decay) + rng.Float64()*p.Noise
			f.Values[i*g+j] = min(1, max(0, v))
		}
	}
	return f
}

// Summary describes a field's distribution.
type Summary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

// Summary computes min, max, mean and sample standard deviation.
func (f Field) Summary() Summary {
	if len(f.Values) == 0 {
		return Summary{}
	}
	s := Summary{
		Min:  floats.Min(f.Values),
		Max:  floats.Max(f.Values),
		Mean: stat.Mean(f.Values, nil),
	}
	if len(f.Values) > 1 {
		s.StdDev = stat.StdDev(f.Values, nil)
	}
	return s
}
