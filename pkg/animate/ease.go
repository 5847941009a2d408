package animate

import "math"

// Easing maps normalized time in [0,1] to progress in [0,1].
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return clamp01(t) }

// CubicInOut is the symmetric cubic easing used for transitions by default.
func CubicInOut(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Lerp interpolates from a to b by progress p.
func Lerp(a, b, p float64) float64 { return a + (b-a)*p }

func clamp01(t float64) float64 { return max(0, min(t, 1)) }
