// Package analysis characterises the trajectories behind the generators.
//
//   - [LyapunovExponent]: largest Lyapunov exponent by repeated renormalisation
//   - [PowerSpectrum]: magnitude spectrum of a scalar series
//   - [Sweep]: parameter sweep recording the local maxima of one coordinate
//   - [PhasePortrait] and [PoincareSection]: 2D views of a 3D flow
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(sys, integ, x0, dt, duration, 1e-8)
//	if lambda > 0 {
//	    // System is chaotic
//	}
package analysis
