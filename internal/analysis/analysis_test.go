package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/genlab/internal/dynamo"
	"github.com/san-kum/genlab/internal/generators/attractor"
	"github.com/san-kum/genlab/internal/integrators"
)

// decay is dx/dt = -k·x, whose exponent is exactly -k.
type decay struct{ k float64 }

func (d decay) Derive(x dynamo.State, _ float64) dynamo.State { return dynamo.State{-d.k * x[0]} }
func (d decay) StateDim() int                                 { return 1 }

func TestLyapunovStableSystem(t *testing.T) {
	got := LyapunovExponent(decay{k: 0.5}, integrators.NewRK4(), dynamo.State{1}, 0.01, 20, 1e-6)
	if math.Abs(got+0.5) > 0.01 {
		t.Errorf("lambda = %v, want -0.5", got)
	}
}

func TestLyapunovLorenzIsChaotic(t *testing.T) {
	sys := attractor.NewLorenz()
	got := LyapunovExponent(sys, integrators.NewRK4(), sys.DefaultState(), 0.01, 60, 1e-8)
	if got < 0.5 || got > 1.3 {
		t.Errorf("lorenz lambda = %v, want about 0.9", got)
	}
}

func TestLyapunovDegenerateInput(t *testing.T) {
	if LyapunovExponent(decay{1}, integrators.NewEuler(), nil, 0.01, 1, 1e-6) != 0 {
		t.Error("empty state should give 0")
	}
	if len(LyapunovSpectrum(decay{1}, integrators.NewEuler(), dynamo.State{1}, 0.01, 1, 1e-6)) != 1 {
		t.Error("spectrum length should match the state")
	}
}

func TestPowerSpectrumPeak(t *testing.T) {
	const n = 256
	data := make([]float64, n)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*8*float64(i)/n)
	}
	ps := PowerSpectrum(data)
	if len(ps) != n/2 {
		t.Fatalf("len = %d", len(ps))
	}
	best := 0
	for i := range ps {
		if ps[i] > ps[best] {
			best = i
		}
	}
	if best != 8 {
		t.Errorf("peak at bin %d, want 8", best)
	}
	if ps[0] > 1e-9 {
		t.Errorf("mean should be removed, dc = %v", ps[0])
	}
	if f := DominantFrequency(data, 1.0/n); math.Abs(f-8) > 1e-9 {
		t.Errorf("dominant frequency = %v", f)
	}
}

func TestFFTPads(t *testing.T) {
	if len(FFT(make([]float64, 100))) != 128 {
		t.Error("expected padding to 128")
	}
	if len(FFT(nil)) != 0 || PowerSpectrum(nil) != nil {
		t.Error("empty input should stay empty")
	}
}

func TestSweepRossler(t *testing.T) {
	sys := attractor.NewRossler()
	before := sys.GetParams()["c"]
	pts, err := Sweep(sys, integrators.NewRK4(), "c", 2.5, 3.5, 2, 0, sys.DefaultState(), 0.01, 100, 100)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 2 || len(pts[0].Maxima) == 0 {
		t.Fatalf("sweep = %+v", pts)
	}
	if sys.GetParams()["c"] != before {
		t.Error("parameter not restored")
	}
	if _, err := Sweep(sys, integrators.NewRK4(), "nope", 0, 1, 2, 0, sys.DefaultState(), 0.01, 1, 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
	if out := SweepPlot(pts, 20, 5); strings.Count(out, "\n") != 5 {
		t.Errorf("plot rows = %d", strings.Count(out, "\n"))
	}
}

func TestPhasePortraitAndSection(t *testing.T) {
	sys := attractor.NewLorenz()
	pts := PhasePortrait(sys, integrators.NewRK4(), sys.DefaultState(), 0, 2, 0.01, 5)
	if len(pts) < 499 {
		t.Errorf("points = %d", len(pts))
	}
	if PhasePortrait(sys, integrators.NewRK4(), sys.DefaultState(), 5, 0, 0.01, 1) != nil {
		t.Error("out-of-range index should give nil")
	}
	sec := PoincareSection(sys, integrators.NewRK4(), sys.DefaultState(), 2, 27, 0, 1, 0.01, 30)
	if len(sec) == 0 {
		t.Error("expected crossings of z=27")
	}
	plot := PhasePlot(pts, 30, 10)
	if !strings.Contains(plot, "•") || strings.Count(plot, "\n") != 10 {
		t.Errorf("plot = %q", plot)
	}
}
