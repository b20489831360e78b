package attractor

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/san-kum/genlab/internal/dynamo"
	"github.com/san-kum/genlab/internal/pattern"
)

func TestNewtonLeipnikDerivative(t *testing.T) {
	sys := &NewtonLeipnik{A: 0.4, B: 0.175}
	s := dynamo.State{0.1, 0.2, 0.3}
	d := sys.Derive(s, 0)
	want := dynamo.State{
		-0.4*0.1 + 0.2 + 10*0.2*0.3,
		-0.1 - 0.4*0.2 + 5*0.1*0.3,
		0.175*0.3 - 5*0.1*0.2,
	}
	for i := range want {
		if math.Abs(d[i]-want[i]) > 1e-12 {
			t.Errorf("d[%d] = %v, want %v", i, d[i], want[i])
		}
	}
}

func TestStepIsPureEuler(t *testing.T) {
	s := dynamo.State{0.349, 0, -0.16}
	orig := s.Clone()
	next := Step(s, 0.4, 0.175, 0.005)
	for i := range s {
		if s[i] != orig[i] {
			t.Fatal("Step modified its input")
		}
	}
	d := NewNewtonLeipnik().Derive(orig, 0)
	for i := range next {
		if math.Abs(next[i]-(orig[i]+0.005*d[i])) > 1e-15 {
			t.Errorf("component %d = %v", i, next[i])
		}
	}
	again := Step(orig, 0.4, 0.175, 0.005)
	for i := range next {
		if again[i] != next[i] {
			t.Fatal("Step is not deterministic")
		}
	}
}

func TestNewtonLeipnikStaysBounded(t *testing.T) {
	s := NewNewtonLeipnik().DefaultState()
	for i := 0; i < 20000; i++ {
		s = Step(s, 0.4, 0.175, 0.005)
		if !s.IsValid() || s.Norm() > 10 {
			t.Fatalf("trajectory escaped at step %d: %v", i, s)
		}
	}
}

func TestSystemsByName(t *testing.T) {
	for _, n := range Names {
		sys, err := New(n)
		if err != nil {
			t.Fatalf("New(%q): %v", n, err)
		}
		if sys.StateDim() != len(sys.DefaultState()) {
			t.Errorf("%s: dimension mismatch", n)
		}
	}
	if _, err := New("chua"); err == nil {
		t.Error("expected error for unknown system")
	}
}

func TestTrailBounded(t *testing.T) {
	tr := NewTrail(3)
	for i := 0; i < 10; i++ {
		tr.Push(dynamo.State{float64(i)})
	}
	pts := tr.Points()
	if len(pts) != 3 || pts[0][0] != 7 || pts[2][0] != 9 {
		t.Fatalf("points = %v", pts)
	}
	tr.Resize(2)
	if pts := tr.Points(); len(pts) != 2 || pts[0][0] != 8 {
		t.Fatalf("after shrink = %v", pts)
	}
	tr.Resize(5)
	tr.Push(dynamo.State{10})
	if pts := tr.Points(); len(pts) != 3 || pts[2][0] != 10 {
		t.Fatalf("after grow = %v", pts)
	}
}

func TestGeneratorTrailCap(t *testing.T) {
	d := Descriptor()
	gen, _, err := d.Instantiate(pattern.Values{"trailLength": 500.0, "stepsPerTick": 200.0})
	if err != nil {
		t.Fatal(err)
	}
	g := gen.(*Generator)
	for i := 0; i < 5; i++ {
		g.Update(pattern.Tick{Frame: i, Elapsed: float64(i) / 60})
	}
	if n := len(g.Trail()); n != 500 {
		t.Errorf("trail length = %d, want 500", n)
	}
	img := image.NewRGBA(image.Rect(0, 0, 80, 60))
	g.Draw(img)

	if _, err := g.Dispatch("reset"); err != nil || len(g.Trail()) != 1 {
		t.Errorf("reset left %d points", len(g.Trail()))
	}
	if _, err := g.Dispatch("nope"); !errors.Is(err, pattern.ErrUnknownAction) {
		t.Errorf("err = %v", err)
	}
}

func TestSwitchSystemRestarts(t *testing.T) {
	g := NewGenerator()
	g.Update(pattern.Tick{})
	g.Configure(pattern.Values{"system": NameLorenz, "integrator": "rk4"})
	st := g.State()
	if st[0] != 1 || st[1] != 1 || st[2] != 1 {
		t.Errorf("lorenz should start at (1,1,1), got %v", st)
	}
}

func TestFitCentres(t *testing.T) {
	scale, ox, oy := Fit([]float64{-1, 1}, []float64{-1, 1}, 200, 100)
	if math.Abs(scale-45) > 1e-9 || ox != 100 || oy != 50 {
		t.Errorf("Fit = %v %v %v", scale, ox, oy)
	}
}

func TestLorenzControlsReachSystem(t *testing.T) {
	g := NewGenerator()
	g.Configure(pattern.Values{"system": NameLorenz, "sigma": 12.0, "rho": 35.0, "beta": 2.0, "a": 0.9})
	l, ok := g.sys.(*Lorenz)
	if !ok {
		t.Fatalf("system = %T", g.sys)
	}
	if l.Sigma != 12 || l.Rho != 35 || l.Beta != 2 {
		t.Errorf("lorenz = %+v", *l)
	}
	d := l.Derive(dynamo.State{1, 2, 3}, 0)
	if d[0] != 12 || d[1] != 1*(35-3)-2 || d[2] != 2-2*3 {
		t.Errorf("derive = %v", d)
	}
}

func TestRosslerTakesOnlyC(t *testing.T) {
	r := NewRossler()
	vals := pattern.Values{"a": 0.9, "b": 0.4, "c": 4.0}
	Apply(NameRossler, r, vals.Float)
	if r.A != 0.2 || r.B != 0.2 || r.C != 4 {
		t.Errorf("rossler = %+v", *r)
	}
	Apply(NameRossler, r, pattern.Values{}.Float)
	if r.C != 4 {
		t.Errorf("missing value should keep c, got %v", r.C)
	}
}
