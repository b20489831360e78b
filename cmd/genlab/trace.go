package main

import (
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/genlab/internal/analysis"
	"github.com/san-kum/genlab/internal/export"
	"github.com/san-kum/genlab/internal/generators/attractor"
	"github.com/san-kum/genlab/internal/generators/automaton"
	"github.com/san-kum/genlab/internal/integrators"
	"github.com/san-kum/genlab/internal/pattern"
)

var (
	steps      int
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	phase      bool
	xAxis      int
	yAxis      int
	seriesOut  string
)

func newTraceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace [attractor|cellular-automaton]",
		Short: "plot and analyse a trajectory or density series",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrace,
	}
	addValueFlags(cmd)
	cmd.Flags().IntVar(&steps, "steps", 4000, "integration steps or generations")
	cmd.Flags().StringVar(&sweepParam, "sweep", "", "attractor parameter to sweep for a bifurcation diagram")
	cmd.Flags().Float64Var(&sweepFrom, "from", 0, "sweep start")
	cmd.Flags().Float64Var(&sweepTo, "to", 0, "sweep end")
	cmd.Flags().IntVar(&sweepSteps, "points", 60, "sweep resolution")
	cmd.Flags().BoolVar(&phase, "phase", false, "print a phase portrait")
	cmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for the phase x-axis")
	cmd.Flags().IntVar(&yAxis, "y-axis", 2, "state index for the phase y-axis")
	cmd.Flags().StringVar(&seriesOut, "save", "", "write the samples to a .json or .csv file")
	return cmd
}

func runTrace(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{attractor.ID}
	}
	d, err := reg.Get(args[0])
	if err != nil {
		return err
	}
	v, err := resolveValues(d)
	if err != nil {
		return err
	}
	if steps <= 1 {
		return fmt.Errorf("steps must be greater than 1, got %d", steps)
	}
	switch d.ID {
	case attractor.ID:
		return traceAttractor(cmd.OutOrStdout(), v)
	case automaton.ID:
		return traceAutomaton(cmd.OutOrStdout(), v)
	}
	return fmt.Errorf("trace supports %s and %s, not %s", attractor.ID, automaton.ID, d.ID)
}

func traceAttractor(out io.Writer, v pattern.Values) error {
	name := v.String("system", attractor.NameNewtonLeipnik)
	sys, err := attractor.New(name)
	if err != nil {
		return err
	}
	attractor.Apply(name, sys, v.Float)
	integ, err := integrators.ByName(v.String("integrator", "rk4"))
	if err != nil {
		return err
	}
	dt := v.Float("dt", 0.005)
	duration := float64(steps) * dt

	x := sys.DefaultState()
	series := make([]float64, 0, steps)
	samples := &export.Series{
		Pattern:    attractor.ID,
		System:     v.String("system", ""),
		Integrator: v.String("integrator", ""),
		Dt:         dt,
	}
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, float64(i)*dt, dt)
		if !x.IsValid() {
			return fmt.Errorf("trajectory diverged at step %d", i)
		}
		series = append(series, x[0])
		samples.Add(float64(i+1)*dt, x)
	}

	fmt.Fprintln(out, asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("x(t), %s, dt=%g", v.String("system", ""), dt)),
	))
	fmt.Fprintln(out)
	printSpectrum(out, series, dt)

	lambda := analysis.LyapunovExponent(sys, integ, sys.DefaultState(), dt, duration, 1e-8)
	verdict := "stable"
	if lambda > 0.01 {
		verdict = "chaotic"
	}
	fmt.Fprintf(out, "largest lyapunov exponent: %.4f (%s)\n", lambda, verdict)
	samples.Metrics = map[string]float64{
		"lyapunov":          lambda,
		"dominantFrequency": analysis.DominantFrequency(series, dt),
	}
	if err := saveSeries(out, samples); err != nil {
		return err
	}

	if phase {
		pts := analysis.PhasePortrait(sys, integ, sys.DefaultState(), xAxis, yAxis, dt, duration)
		if pts == nil {
			return fmt.Errorf("phase axes %d,%d out of range", xAxis, yAxis)
		}
		fmt.Fprintf(out, "\nphase portrait (x%d vs x%d)\n%s", xAxis, yAxis, analysis.PhasePlot(pts, 70, 24))
	}

	if sweepParam != "" {
		if sweepTo <= sweepFrom {
			return fmt.Errorf("--to must exceed --from")
		}
		data, err := analysis.Sweep(sys, integ, sweepParam, sweepFrom, sweepTo, sweepSteps, 0, sys.DefaultState(), dt, duration/2, duration/2)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nbifurcation sweep of %s in [%g, %g]\n%s", sweepParam, sweepFrom, sweepTo, analysis.SweepPlot(data, 70, 20))
	}
	return nil
}

func traceAutomaton(out io.Writer, v pattern.Values) error {
	g := automaton.New(1)
	g.Configure(v)
	g.Resize(cfg.Width, cfg.Height)

	series := make([]float64, 0, steps)
	samples := &export.Series{Pattern: automaton.ID, Dt: 1}
	for i := 0; i < steps; i++ {
		g.Update(pattern.Tick{Frame: i})
		rows := g.Rows()
		if len(rows) == 0 {
			continue
		}
		d := automaton.Density(rows[len(rows)-1])
		series = append(series, d)
		samples.Add(float64(i), []float64{d})
	}
	if len(series) < 2 {
		return fmt.Errorf("automaton produced no generations")
	}

	fmt.Fprintln(out, asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("live-cell density, rule %d", g.Rule())),
	))
	fmt.Fprintln(out)
	printSpectrum(out, series, 1)
	samples.Metrics = map[string]float64{"rule": float64(g.Rule())}
	return saveSeries(out, samples)
}

func saveSeries(out io.Writer, s *export.Series) error {
	if seriesOut == "" {
		return nil
	}
	if err := s.Save(seriesOut); err != nil {
		return err
	}
	fmt.Fprintln(out, okStyle.Render(fmt.Sprintf("wrote %d samples to %s", s.Steps, seriesOut)))
	return nil
}

func printSpectrum(out io.Writer, series []float64, dt float64) {
	power := analysis.PowerSpectrum(series)
	if len(power) < 2 {
		return
	}
	n := min(len(power), 128)
	fmt.Fprintln(out, asciigraph.Plot(power[1:n],
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	))
	fmt.Fprintf(out, "dominant frequency: %.4f\n", analysis.DominantFrequency(series, dt))
}
