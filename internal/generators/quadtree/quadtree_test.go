package quadtree

import (
	"image"
	"math"
	"testing"

	"github.com/san-kum/genlab/internal/pattern"
)

func TestLeavesTileSquare(t *testing.T) {
	const size = 512.0
	for _, scheme := range Schemes {
		for depth := 1; depth <= 7; depth++ {
			leaves := Build(size, depth, PredicateFor(scheme, size))
			area := 0.0
			for _, n := range leaves {
				if n.Depth > depth {
					t.Fatalf("%s: leaf at depth %d exceeds max %d", scheme, n.Depth, depth)
				}
				area += n.Size * n.Size
			}
			if math.Abs(area-size*size) > 1e-6 {
				t.Errorf("%s depth %d: leaf area %v, want %v", scheme, depth, area, size*size)
			}
		}
	}
}

func TestUniformIsFull(t *testing.T) {
	leaves := Build(64, 3, PredicateFor(Uniform, 64))
	if len(leaves) != 64 {
		t.Fatalf("uniform depth 3 leaves = %d, want 64", len(leaves))
	}
	for _, n := range leaves {
		if n.Depth != 3 || n.Size != 8 {
			t.Fatalf("unexpected leaf %+v", n)
		}
	}
}

func TestMaxDepthZero(t *testing.T) {
	leaves := Build(100, 0, PredicateFor(Uniform, 100))
	if len(leaves) != 1 || leaves[0].Size != 100 {
		t.Errorf("depth 0 should keep the root, got %v", leaves)
	}
}

func TestCenterRefinesMiddle(t *testing.T) {
	leaves := Build(256, 6, PredicateFor(Center, 256))
	deepest, corner := 0, 0
	for _, n := range leaves {
		if n.Contains(128, 128) {
			deepest = n.Depth
		}
		if n.Contains(1, 1) {
			corner = n.Depth
		}
	}
	if deepest <= corner {
		t.Errorf("center leaf depth %d should exceed corner depth %d", deepest, corner)
	}
}

func TestOrientationQuarterTurns(t *testing.T) {
	for _, n := range Build(128, 4, PredicateFor(Uniform, 128)) {
		if o := Orientation(n); o < 0 || o > 3 {
			t.Fatalf("orientation %d", o)
		}
	}
}

func TestDrawHalfCircle(t *testing.T) {
	d := Descriptor()
	gen, _, err := d.Instantiate(pattern.Values{"colorMode": ColorHalfCircle, "maxDepth": 3.0})
	if err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 96, 64))
	gen.Draw(img)
	if len(gen.(*Generator).Leaves()) == 0 {
		t.Fatal("no leaves")
	}
	if img.RGBAAt(0, 0).A == 0 {
		t.Error("background not painted")
	}
}
