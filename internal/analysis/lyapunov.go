package analysis

import (
	"math"

	"github.com/san-kum/genlab/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent of sys from x0.
//
// A companion trajectory starts perturbation away along the first axis.
// After every step the separation d is measured, ln(d/d0) is accumulated and
// the companion is pulled back to distance d0 along the same direction, so
// the estimate is Σ ln(d/d0) / elapsed time.
func LyapunovExponent(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	perturbation float64,
) float64 {
	if len(x0) == 0 || dt <= 0 || perturbation <= 0 {
		return 0
	}
	xp := x0.Clone()
	xp[0] += perturbation
	return separationRate(sys, integ, x0.Clone(), xp, dt, duration, perturbation)
}

// LyapunovSpectrum repeats the estimate with the perturbation applied to
// each coordinate in turn. Without orthonormalisation every entry converges
// towards the largest exponent; the spread shows how quickly it does.
func LyapunovSpectrum(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	dt, duration float64,
	perturbation float64,
) []float64 {
	out := make([]float64, len(x0))
	if dt <= 0 || perturbation <= 0 {
		return out
	}
	for i := range x0 {
		xp := x0.Clone()
		xp[i] += perturbation
		out[i] = separationRate(sys, integ, x0.Clone(), xp, dt, duration, perturbation)
	}
	return out
}

func separationRate(sys dynamo.System, integ dynamo.Integrator, x, xp dynamo.State, dt, duration, d0 float64) float64 {
	t := 0.0
	sumLog := 0.0
	for t < duration {
		x = integ.Step(sys, x, t, dt)
		xp = integ.Step(sys, xp, t, dt)
		t += dt

		if !x.IsValid() || !xp.IsValid() {
			break
		}
		sep := xp.Sub(x).Norm()
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for i := range xp {
			xp[i] = x[i] + (xp[i]-x[i])*scale
		}
	}
	if t == 0 {
		return 0
	}
	return sumLog / t
}
