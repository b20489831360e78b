// Package attractor integrates three-dimensional chaotic flows and draws a
// rotating projection of their recent trajectory.
package attractor

import (
	"fmt"

	"github.com/san-kum/genlab/internal/dynamo"
)

// System names.
const (
	NameNewtonLeipnik = "newton-leipnik"
	NameLorenz        = "lorenz"
	NameRossler       = "rossler"
)

var Names = []string{NameNewtonLeipnik, NameLorenz, NameRossler}

// Attractor is a flow with a starting point inside its basin.
type Attractor interface {
	dynamo.System
	dynamo.Configurable
	DefaultState() dynamo.State
}

// NewtonLeipnik is the two-strange-attractor system
//
//	dx = −a·x + y + 10·y·z
//	dy = −x − 0.4·y + 5·x·z
//	dz = b·z − 5·x·y
type NewtonLeipnik struct{ A, B float64 }

func NewNewtonLeipnik() *NewtonLeipnik { return &NewtonLeipnik{A: 0.4, B: 0.175} }

func (n *NewtonLeipnik) StateDim() int { return 3 }

func (n *NewtonLeipnik) Derive(s dynamo.State, _ float64) dynamo.State {
	x, y, z := s[0], s[1], s[2]
	return dynamo.State{
		-n.A*x + y + 10*y*z,
		-x - 0.4*y + 5*x*z,
		n.B*z - 5*x*y,
	}
}

func (n *NewtonLeipnik) DefaultState() dynamo.State { return dynamo.State{0.349, 0, -0.16} }

func (n *NewtonLeipnik) GetParams() map[string]float64 {
	return map[string]float64{"a": n.A, "b": n.B}
}

func (n *NewtonLeipnik) SetParam(name string, v float64) {
	switch name {
	case "a":
		n.A = v
	case "b":
		n.B = v
	}
}

// Lorenz is the convection model
//
//	dx = σ·(y − x)
//	dy = x·(ρ − z) − y
//	dz = x·y − β·z
//
// The butterfly appears for ρ above roughly 24.74.
type Lorenz struct{ Sigma, Rho, Beta float64 }

func NewLorenz() *Lorenz { return &Lorenz{Sigma: 10, Rho: 28, Beta: 8.0 / 3.0} }

func (l *Lorenz) StateDim() int { return 3 }

func (l *Lorenz) Derive(s dynamo.State, _ float64) dynamo.State {
	x, y, z := s[0], s[1], s[2]
	return dynamo.State{
		l.Sigma * (y - x),
		x*(l.Rho-z) - y,
		x*y - l.Beta*z,
	}
}

func (l *Lorenz) DefaultState() dynamo.State { return dynamo.State{1, 1, 1} }

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.Sigma, "rho": l.Rho, "beta": l.Beta}
}

func (l *Lorenz) SetParam(name string, v float64) {
	switch name {
	case "sigma":
		l.Sigma = v
	case "rho":
		l.Rho = v
	case "beta":
		l.Beta = v
	}
}

// Rossler is the single-scroll flow
//
//	dx = −y − z
//	dy = x + a·y
//	dz = b + z·(x − c)
//
// Only c is exposed as a control; a and b stay at 0.2. Sweeping c from 2
// to 6 walks the period-doubling route to chaos.
type Rossler struct{ A, B, C float64 }

func NewRossler() *Rossler { return &Rossler{A: 0.2, B: 0.2, C: 5.7} }

func (r *Rossler) StateDim() int { return 3 }

func (r *Rossler) Derive(s dynamo.State, _ float64) dynamo.State {
	x, y, z := s[0], s[1], s[2]
	return dynamo.State{-y - z, x + r.A*y, r.B + z*(x-r.C)}
}

func (r *Rossler) DefaultState() dynamo.State { return dynamo.State{1, 1, 1} }

func (r *Rossler) GetParams() map[string]float64 {
	return map[string]float64{"a": r.A, "b": r.B, "c": r.C}
}

func (r *Rossler) SetParam(name string, v float64) {
	switch name {
	case "a":
		r.A = v
	case "b":
		r.B = v
	case "c":
		r.C = v
	}
}

// ParamControls lists, per system, the control ids that feed its
// parameters. A control id equals the parameter name.
var ParamControls = map[string][]string{
	NameNewtonLeipnik: {"a", "b"},
	NameLorenz:        {"sigma", "rho", "beta"},
	NameRossler:       {"c"},
}

// Apply copies the named system's parameters out of lookup, keeping the
// current value where lookup has none.
func Apply(name string, sys Attractor, lookup func(id string, def float64) float64) {
	cur := sys.GetParams()
	for _, id := range ParamControls[name] {
		sys.SetParam(id, lookup(id, cur[id]))
	}
}

// New returns a fresh system by name.
func New(name string) (Attractor, error) {
	switch name {
	case NameNewtonLeipnik:
		return NewNewtonLeipnik(), nil
	case NameLorenz:
		return NewLorenz(), nil
	case NameRossler:
		return NewRossler(), nil
	}
	return nil, fmt.Errorf("unknown system: %s", name)
}

// Step advances the Newton–Leipnik state by one explicit Euler step. It is
// pure: s is not modified.
func Step(s dynamo.State, a, b, dt float64) dynamo.State {
	d := (&NewtonLeipnik{A: a, B: b}).Derive(s, 0)
	return dynamo.State{s[0] + dt*d[0], s[1] + dt*d[1], s[2] + dt*d[2]}
}
