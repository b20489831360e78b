// Package noisefield renders animated 3D gradient noise: x and y are pixel
// coordinates times scale, z is the accumulated noise time.
package noisefield

import (
	"image"

	"github.com/san-kum/genlab/internal/dynamo"
	"github.com/san-kum/genlab/internal/noise"
	"github.com/san-kum/genlab/internal/palette"
	"github.com/san-kum/genlab/internal/pattern"
)

const ID = "noise-field"

func Descriptor() *pattern.Descriptor {
	return &pattern.Descriptor{
		ID:          ID,
		Name:        "Noise Field",
		Description: "Smooth animated gradient noise mapped through a colour palette.",
		Controls: []pattern.Control{
			pattern.RangeControl("scale", "Scale", 0.002, 0.1, 0.001, 0.02),
			pattern.RangeControl("speed", "Speed", 0, 5, 0.1, 1),
			pattern.RangeControl("contrast", "Contrast", 0.2, 4, 0.1, 1),
			pattern.RangeControl("brightness", "Brightness", 0, 2, 0.05, 1),
			pattern.SelectControl("palette", "Palette", "grayscale", palette.NoiseNames()...),
			pattern.RangeControl("seed", "Seed", 0, 9999, 1, 42),
		},
		New: func() pattern.Generator { return New() },
	}
}

type Generator struct {
	scale      float64
	speed      float64
	contrast   float64
	brightness float64
	grad       palette.Gradient
	seed       int64

	field *noise.Field
	clock noise.Clock
}

func New() *Generator {
	return &Generator{
		scale:      0.02,
		speed:      1,
		contrast:   1,
		brightness: 1,
		grad:       palette.Noise("grayscale"),
		seed:       42,
		field:      noise.New(42),
	}
}

func (g *Generator) Configure(v pattern.Values) {
	g.scale = v.Float("scale", g.scale)
	g.speed = v.Float("speed", g.speed)
	g.contrast = v.Float("contrast", g.contrast)
	g.brightness = v.Float("brightness", g.brightness)
	g.grad = palette.Noise(v.String("palette", "grayscale"))
	if seed := int64(v.Int("seed", int(g.seed))); seed != g.seed {
		g.seed = seed
		g.field = noise.New(seed)
	}
}

func (g *Generator) Update(pattern.Tick) {
	g.clock.Tick(g.speed)
}

// Time returns the accumulated noise time.
func (g *Generator) Time() float64 { return g.clock.T }

// Value is the shaped noise value in [0, 1] at pixel (x, y).
func (g *Generator) Value(x, y int) float64 {
	n := g.field.At(float64(x)*g.scale, float64(y)*g.scale, g.clock.T)
	return noise.Shape(noise.Normalize(n), g.contrast, g.brightness)
}

func (g *Generator) Draw(dst *image.RGBA) {
	b := dst.Bounds()
	dynamo.ParallelFor(b.Dy(), 16, func(start, end int) {
		for y := start; y < end; y++ {
			off := dst.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < b.Dx(); x++ {
				c := g.grad.At(g.Value(x, y))
				dst.Pix[off], dst.Pix[off+1], dst.Pix[off+2], dst.Pix[off+3] = c.R, c.G, c.B, 255
				off += 4
			}
		}
	})
}
