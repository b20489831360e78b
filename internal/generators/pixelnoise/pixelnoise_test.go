package pixelnoise

import (
	"image"
	"math"
	"testing"

	"github.com/san-kum/genlab/internal/noise"
	"github.com/san-kum/genlab/internal/pattern"
)

func TestBlocksAreUniform(t *testing.T) {
	g := New(1)
	g.Configure(pattern.Values{"pixelSize": 8.0})
	img := image.NewRGBA(image.Rect(0, 0, 30, 20))
	g.Draw(img)

	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			want := g.Block(x/8, y/8)
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want block colour %v", x, y, got, want)
			}
		}
	}
}

func TestDisabledFreezesTime(t *testing.T) {
	g := New(1)
	g.Configure(pattern.Values{"enabled": false})
	before := g.Block(3, 4)
	for i := 0; i < 20; i++ {
		g.Update(pattern.Tick{Frame: i})
	}
	if g.Block(3, 4) != before {
		t.Error("block changed while animation was disabled")
	}
}

func TestZeroIntensityIsScaledTint(t *testing.T) {
	g := New(1)
	g.Configure(pattern.Values{"colorIntensity": 0.0, "tint": "#ffffff"})
	c := g.Block(2, 2)
	if c.R != c.G || c.G != c.B {
		t.Errorf("white tint at zero intensity should be gray, got %v", c)
	}
}

func TestContrastAndBrightnessShapeBlocks(t *testing.T) {
	base := New(1)
	base.Configure(pattern.Values{"colorIntensity": 0.0, "tint": "#ffffff"})
	dim := New(1)
	dim.Configure(pattern.Values{"colorIntensity": 0.0, "tint": "#ffffff", "brightness": 0.0})
	sharp := New(1)
	sharp.Configure(pattern.Values{"colorIntensity": 0.0, "tint": "#ffffff", "contrast": 3.0})

	if c := dim.Block(2, 3); c.R != 0 {
		t.Errorf("zero brightness should give black, got %v", c)
	}
	changed := false
	for bx := 0; bx < 8; bx++ {
		b, s := base.Block(bx, 1), sharp.Block(bx, 1)
		if s.R > b.R {
			t.Errorf("block %d: contrast 3 brightened %v to %v", bx, b, s)
		}
		changed = changed || s != b
	}
	if !changed {
		t.Error("contrast had no effect on any block")
	}
}

func TestSpeedScalesTime(t *testing.T) {
	if _, err := Descriptor().Normalize(pattern.Values{"contrast": 2.0, "brightness": 0.5, "speed": 2.0}); err != nil {
		t.Fatal(err)
	}
	g := New(1)
	g.Configure(pattern.Values{"speed": 2.5})
	g.Update(pattern.Tick{})
	if math.Abs(g.clock.T-noise.TimeStep*2.5) > 1e-12 {
		t.Errorf("clock = %v", g.clock.T)
	}
	g.Configure(pattern.Values{"speed": 0.0})
	g.Update(pattern.Tick{Frame: 1})
	if math.Abs(g.clock.T-noise.TimeStep*2.5) > 1e-12 {
		t.Errorf("zero speed moved the clock to %v", g.clock.T)
	}
}
