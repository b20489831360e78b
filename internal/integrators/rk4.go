package integrators

import "github.com/san-kum/genlab/internal/dynamo"

// RK4 is the classical fourth-order Runge–Kutta scheme. Stage buffers are
// reused between steps, so one RK4 must not be shared across goroutines.
type RK4 struct {
	k     [4]dynamo.State
	probe dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

// stage evaluates sys at x + h·k into dst.
func (r *RK4) stage(dst dynamo.State, sys dynamo.System, x, k dynamo.State, t, h float64) {
	for i := range x {
		r.probe[i] = x[i] + h*k[i]
	}
	copy(dst, sys.Derive(r.probe, t))
}

// Step returns a new state; x is left untouched.
func (r *RK4) Step(sys dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	if len(r.probe) != n {
		for i := range r.k {
			r.k[i] = make(dynamo.State, n)
		}
		r.probe = make(dynamo.State, n)
	}

	half := dt / 2
	copy(r.k[0], sys.Derive(x, t))
	r.stage(r.k[1], sys, x, r.k[0], t+half, half)
	r.stage(r.k[2], sys, x, r.k[1], t+half, half)
	r.stage(r.k[3], sys, x, r.k[2], t+dt, dt)

	next := make(dynamo.State, n)
	for i := range x {
		next[i] = x[i] + dt/6*(r.k[0][i]+2*r.k[1][i]+2*r.k[2][i]+r.k[3][i])
	}
	return next
}
