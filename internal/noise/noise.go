// Package noise wraps seeded 3D gradient noise and the helpers built on it:
// normalisation to [0, 1], contrast/brightness shaping and the curl field
// used to move particles.
package noise

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/san-kum/genlab/internal/mathx"
)

// TimeStep is the per-tick time increment before the speed multiplier.
const TimeStep = 0.01

// curlEps is the central-difference step for Curl.
const curlEps = 1e-3

// Field is deterministic 3D gradient noise. Sample values lie in [-1, 1].
type Field struct {
	n opensimplex.Noise
}

func New(seed int64) *Field {
	return &Field{n: opensimplex.New(seed)}
}

// At samples the field. Output is clamped to [-1, 1].
func (f *Field) At(x, y, z float64) float64 {
	return mathx.Clamp(f.n.Eval3(x, y, z), -1, 1)
}

// Normalize maps a sample from [-1, 1] to [0, 1]. Any finite input yields a
// value in [0, 1]; NaN maps to 0.
func Normalize(n float64) float64 {
	return mathx.Clamp01((n + 1) / 2)
}

// Shape applies a power-curve contrast and a linear brightness to v in [0, 1].
func Shape(v, contrast, brightness float64) float64 {
	if contrast <= 0 {
		contrast = 1
	}
	return mathx.Clamp01(math.Pow(mathx.Clamp01(v), contrast) * brightness)
}

// Curl returns the divergence-free 2D vector (∂n/∂y, −∂n/∂x) at (x, y, z).
func (f *Field) Curl(x, y, z float64) (vx, vy float64) {
	dndx := (f.n.Eval3(x+curlEps, y, z) - f.n.Eval3(x-curlEps, y, z)) / (2 * curlEps)
	dndy := (f.n.Eval3(x, y+curlEps, z) - f.n.Eval3(x, y-curlEps, z)) / (2 * curlEps)
	return dndy, -dndx
}

// Clock accumulates noise time. The field is never restarted; only the
// z coordinate advances.
type Clock struct {
	T float64
}

// Tick advances the clock by TimeStep scaled by speed.
func (c *Clock) Tick(speed float64) {
	c.T += TimeStep * speed
}
