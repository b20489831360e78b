package mathx

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}

	if got := Clamp(300, 0, 255); got != 255 {
		t.Errorf("int Clamp = %d, want 255", got)
	}
}

func TestClamp01_NaN(t *testing.T) {
	if got := Clamp01(math.NaN()); got != 0 {
		t.Errorf("Clamp01(NaN) = %v, want 0", got)
	}
}

func TestHashRangeAndDeterminism(t *testing.T) {
	for i := uint32(0); i < 10000; i++ {
		h := Hash(i)
		if h < 0 || h >= 1 {
			t.Fatalf("Hash(%d) = %v out of [0,1)", i, h)
		}
		if h != Hash(i) {
			t.Fatalf("Hash(%d) not deterministic", i)
		}
	}
}

func TestHashSpread(t *testing.T) {
	var buckets [10]int
	n := 20000
	for i := 0; i < n; i++ {
		buckets[int(Hash(uint32(i))*10)]++
	}
	for i, c := range buckets {
		if c < n/20 || c > n/5 {
			t.Errorf("bucket %d has %d samples, distribution looks skewed", i, c)
		}
	}
}

func TestHash2DiffersByArgument(t *testing.T) {
	if Hash2(1, 2) == Hash2(2, 1) {
		t.Error("Hash2 should not be symmetric for these inputs")
	}
	if Hash3(1, 2, 3) == Hash3(1, 2, 4) {
		t.Error("Hash3 should depend on its last argument")
	}
}
