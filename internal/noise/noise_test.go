package noise

import (
	"math"
	"testing"
)

func TestNormalizeRange(t *testing.T) {
	for i := 0; i <= 2000; i++ {
		n := -1 + float64(i)/1000
		v := Normalize(n)
		if v < 0 || v > 1 {
			t.Fatalf("Normalize(%v) = %v, outside [0,1]", n, v)
		}
	}
	if Normalize(-1) != 0 || Normalize(1) != 1 || Normalize(0) != 0.5 {
		t.Error("Normalize endpoints wrong")
	}
	if v := Normalize(math.NaN()); v != 0 {
		t.Errorf("Normalize(NaN) = %v, want 0", v)
	}
}

func TestShape(t *testing.T) {
	tests := []struct {
		v, contrast, brightness, want float64
	}{
		{0.5, 1, 1, 0.5},
		{0.5, 2, 1, 0.25},
		{0.5, 1, 2, 1},
		{0.5, 1, 0, 0},
		{0.5, 0, 1, 0.5},
	}
	for _, tt := range tests {
		if got := Shape(tt.v, tt.contrast, tt.brightness); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Shape(%v,%v,%v) = %v, want %v", tt.v, tt.contrast, tt.brightness, got, tt.want)
		}
	}
}

func TestFieldDeterministic(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 100; i++ {
		x, y, z := float64(i)*0.13, float64(i)*0.07, float64(i)*0.01
		if a.At(x, y, z) != b.At(x, y, z) {
			t.Fatal("same seed should give same samples")
		}
		if v := a.At(x, y, z); v < -1 || v > 1 {
			t.Fatalf("sample %v outside [-1,1]", v)
		}
	}
}

func TestCurlDivergenceFree(t *testing.T) {
	f := New(3)
	const h = 1e-2
	for i := 0; i < 20; i++ {
		x, y := float64(i)*0.37, float64(i)*0.21
		vx1, _ := f.Curl(x+h, y, 0.5)
		vx0, _ := f.Curl(x-h, y, 0.5)
		_, vy1 := f.Curl(x, y+h, 0.5)
		_, vy0 := f.Curl(x, y-h, 0.5)
		div := (vx1-vx0)/(2*h) + (vy1-vy0)/(2*h)
		if math.Abs(div) > 0.5 {
			t.Errorf("divergence at (%v,%v) = %v, expected near zero", x, y, div)
		}
	}
}

func TestClock(t *testing.T) {
	var c Clock
	for i := 0; i < 10; i++ {
		c.Tick(2)
	}
	if math.Abs(c.T-0.2) > 1e-12 {
		t.Errorf("clock = %v, want 0.2", c.T)
	}
}
