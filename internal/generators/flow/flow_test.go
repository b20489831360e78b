package flow

import (
	"math"
	"testing"

	"github.com/san-kum/genlab/internal/pattern"
)

func TestTrajectoryIsPure(t *testing.T) {
	a := NewSystem(3)
	b := NewSystem(3)
	for i := 0; i < 20; i++ {
		pa := a.Trajectory(i, 2.75, 4)
		pb := b.Trajectory(i, 2.75, 4)
		if len(pa) != len(pb) {
			t.Fatalf("particle %d: trail lengths differ", i)
		}
		for k := range pa {
			if pa[k] != pb[k] {
				t.Fatalf("particle %d sample %d differs: %v vs %v", i, k, pa[k], pb[k])
			}
		}
	}
}

func TestCycleWithinLife(t *testing.T) {
	s := NewSystem(1)
	for i := 0; i < 100; i++ {
		life := s.Life(i)
		if life < 0.6*s.Lifespan || life > s.Lifespan {
			t.Fatalf("life %v outside [%v, %v]", life, 0.6*s.Lifespan, s.Lifespan)
		}
		for _, tm := range []float64{0, 1.3, 17.9} {
			_, age := s.Cycle(i, tm)
			if age < 0 || age >= life {
				t.Fatalf("particle %d at t=%v: age %v outside [0, %v)", i, tm, age, life)
			}
		}
	}
}

func TestSpawnInsideSurface(t *testing.T) {
	s := NewSystem(1)
	s.Width, s.Height = 200, 100
	for i := 0; i < 200; i++ {
		x, y := s.Spawn(i, i%7)
		if x < 0 || x >= 200 || y < 0 || y >= 100 {
			t.Fatalf("spawn (%v,%v) outside surface", x, y)
		}
	}
}

func TestTrailOrderAndLength(t *testing.T) {
	s := NewSystem(2)
	for i := 0; i < 30; i++ {
		path := s.Trajectory(i, 9.5, 6)
		if len(path) == 0 || len(path) > 7 {
			t.Fatalf("path length %d", len(path))
		}
		for k := 1; k < len(path); k++ {
			if path[k].Age >= path[k-1].Age {
				t.Fatalf("trail not newest first: %v then %v", path[k-1].Age, path[k].Age)
			}
		}
	}
	if n := len(s.Trajectory(0, 5, 0)); n != 1 {
		t.Errorf("zero trail should return only the head, got %d", n)
	}
}

func TestVelocityScalesWithFlowSpeed(t *testing.T) {
	s := NewSystem(4)
	vx1, vy1 := s.Velocity(120, 80, 0.5)
	s.FlowSpeed *= 2
	vx2, vy2 := s.Velocity(120, 80, 0.5)
	if math.Abs(vx2-2*vx1) > 1e-9 || math.Abs(vy2-2*vy1) > 1e-9 {
		t.Errorf("velocity did not double: (%v,%v) -> (%v,%v)", vx1, vy1, vx2, vy2)
	}
}

func TestGeneratorPaths(t *testing.T) {
	d := Descriptor()
	gen, _, err := d.Instantiate(pattern.Values{"particleCount": 120.0, "trailLength": 3.0})
	if err != nil {
		t.Fatal(err)
	}
	g := gen.(*Generator)
	g.Update(pattern.Tick{Elapsed: 1.5})
	paths := g.Paths()
	if len(paths) != 120 {
		t.Fatalf("got %d paths", len(paths))
	}
	for _, p := range paths {
		if len(p) > 4 {
			t.Fatalf("trail longer than configured: %d", len(p))
		}
	}
}
