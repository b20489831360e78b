package dynamo

import (
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an autonomous or time-dependent ODE.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// Configurable systems expose named parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64)
}

// Validate checks x against sys and returns a *StepError on failure.
func Validate(sys System, x State, step int, t float64) error {
	if len(x) != sys.StateDim() {
		return &StepError{Step: step, Time: t, State: x, Wrapped: ErrDimensionMismatch}
	}
	if !x.IsValid() {
		return &StepError{Step: step, Time: t, State: x, Wrapped: ErrInvalidState}
	}
	return nil
}
