// Package dynamo provides the numerical primitives shared by the generators.
//
//   - [State]: vector representing a continuous system's state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: one explicit step of a numerical scheme
//   - [ParallelFor]: fan-out of pure per-row or per-particle work
//
// # Example
//
//	sys := attractor.NewNewtonLeipnik()
//	x := sys.DefaultState()
//	for i := 0; i < n; i++ {
//	    x = integrators.NewEuler().Step(sys, x, t, dt)
//	}
//
// # Thread Safety
//
// Systems and integrators hold no shared state beyond scratch buffers;
// use one integrator per goroutine.
package dynamo
