package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/genlab/internal/dynamo"
)

// SweepPoint holds the local maxima of one coordinate at a parameter value.
type SweepPoint struct {
	Param  float64
	Maxima []float64
}

// Tunable is a flow whose parameters can be changed between runs.
type Tunable interface {
	dynamo.System
	dynamo.Configurable
}

// Sweep steps param across [lo, hi], settles each run for transient time and
// records the local maxima of x[index] for a further record time. A period-n
// orbit shows n distinct maxima; chaos smears them into a band. The original
// parameter value is restored afterwards.
func Sweep(
	sys Tunable,
	integ dynamo.Integrator,
	param string,
	lo, hi float64,
	steps int,
	index int,
	x0 dynamo.State,
	dt, transient, record float64,
) ([]SweepPoint, error) {
	orig, ok := sys.GetParams()[param]
	if !ok {
		return nil, fmt.Errorf("unknown parameter %q", param)
	}
	if index < 0 || index >= len(x0) {
		return nil, fmt.Errorf("index %d out of range for %d-dimensional state", index, len(x0))
	}
	if dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %f", dt)
	}
	if steps < 2 {
		steps = 2
	}
	defer sys.SetParam(param, orig)

	out := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		p := lo + float64(i)*(hi-lo)/float64(steps-1)
		sys.SetParam(param, p)

		x := x0.Clone()
		t := 0.0
		for t < transient {
			x = integ.Step(sys, x, t, dt)
			t += dt
		}

		pt := SweepPoint{Param: p}
		prev2, prev1 := x[index], x[index]
		for t < transient+record {
			x = integ.Step(sys, x, t, dt)
			t += dt
			if !x.IsValid() {
				break
			}
			cur := x[index]
			if prev1 > prev2 && prev1 >= cur {
				pt.Maxima = append(pt.Maxima, prev1)
			}
			prev2, prev1 = prev1, cur
		}
		out = append(out, pt)
	}
	return out, nil
}

// SweepPlot renders sweep results as a width×height character plot with the
// parameter along x.
func SweepPlot(data []SweepPoint, width, height int) string {
	var pts []Point
	for i, d := range data {
		for _, m := range d.Maxima {
			pts = append(pts, Point{X: float64(i), Y: m})
		}
	}
	if len(pts) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	grid := plotGrid(pts, width, height, false)
	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
