// Package flow renders particles advected through the curl of 3D noise.
//
// Particles keep no mutable state. Birth offset, lifespan and spawn point
// are integer hashes of the particle index and its life cycle, and the
// position at any time is found by integrating from the spawn point, so a
// frame is a pure function of the settings and the clock.
package flow

import (
	"math"

	"github.com/san-kum/genlab/internal/mathx"
	"github.com/san-kum/genlab/internal/noise"
)

// SubStep is the fixed integration step in seconds.
const SubStep = 1.0 / 30

// trailStride is the number of sub-steps between trail samples.
const trailStride = 2

// Sample is one point on a particle path.
type Sample struct {
	X, Y float64
	Age  float64
}

// System holds the settings shared by all particles.
type System struct {
	NoiseScale float64
	FlowSpeed  float64
	Lifespan   float64
	Width      float64
	Height     float64

	field *noise.Field
}

func NewSystem(seed int64) *System {
	return &System{
		NoiseScale: 0.004,
		FlowSpeed:  60,
		Lifespan:   4,
		Width:      640,
		Height:     480,
		field:      noise.New(seed),
	}
}

// Life returns particle i's lifespan: between 60% and 100% of Lifespan.
func (s *System) Life(i int) float64 {
	return s.Lifespan * (0.6 + 0.4*mathx.Hash2(uint32(i), 2))
}

// Birth returns the phase offset of particle i in [0, Life(i)).
func (s *System) Birth(i int) float64 {
	return mathx.Hash2(uint32(i), 1) * s.Life(i)
}

// Cycle returns which life of particle i is current at time t and how old
// the particle is within it.
func (s *System) Cycle(i int, t float64) (cycle int, age float64) {
	life := s.Life(i)
	phase := t + s.Birth(i)
	c := math.Floor(phase / life)
	return int(c), phase - c*life
}

// Spawn returns where particle i starts its given life.
func (s *System) Spawn(i, cycle int) (x, y float64) {
	u, c := uint32(i), uint32(cycle)
	return mathx.Hash3(u, c, 3) * s.Width, mathx.Hash3(u, c, 4) * s.Height
}

// Velocity is the curl-noise flow at (x, y) in pixels per second. z selects
// the noise slice for one particle life.
func (s *System) Velocity(x, y, z float64) (vx, vy float64) {
	cx, cy := s.field.Curl(x*s.NoiseScale, y*s.NoiseScale, z)
	return cx * s.FlowSpeed, cy * s.FlowSpeed
}

// Trajectory returns particle i at time t followed by up to trail earlier
// samples, newest first.
func (s *System) Trajectory(i int, t float64, trail int) []Sample {
	cycle, age := s.Cycle(i, t)
	x, y := s.Spawn(i, cycle)
	z := mathx.Hash3(uint32(i), uint32(cycle), 5) * 100

	steps := int(age / SubStep)
	keep := trail*trailStride + 1
	ring := make([]Sample, 0, keep)
	push := func(smp Sample) {
		if len(ring) == keep {
			copy(ring, ring[1:])
			ring = ring[:keep-1]
		}
		ring = append(ring, smp)
	}

	push(Sample{X: x, Y: y})
	for k := 1; k <= steps; k++ {
		vx, vy := s.Velocity(x, y, z)
		x += vx * SubStep
		y += vy * SubStep
		push(Sample{X: x, Y: y, Age: float64(k) * SubStep})
	}
	if rem := age - float64(steps)*SubStep; rem > 0 {
		vx, vy := s.Velocity(x, y, z)
		x += vx * rem
		y += vy * rem
	}

	out := make([]Sample, 0, trail+1)
	out = append(out, Sample{X: x, Y: y, Age: age})
	for k := len(ring) - 1 - trailStride; k >= 0 && len(out) <= trail; k -= trailStride {
		out = append(out, ring[k])
	}
	return out
}
