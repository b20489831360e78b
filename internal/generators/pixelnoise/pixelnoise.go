// Package pixelnoise is the coarse-grid noise variant: the surface is split
// into square blocks and each block takes one noise sample.
package pixelnoise

import (
	"image"
	"image/color"

	"github.com/san-kum/genlab/internal/mathx"
	"github.com/san-kum/genlab/internal/noise"
	"github.com/san-kum/genlab/internal/palette"
	"github.com/san-kum/genlab/internal/pattern"
)

const ID = "pixelated-noise"

func Descriptor() *pattern.Descriptor {
	return &pattern.Descriptor{
		ID:          ID,
		Name:        "Pixelated Noise",
		Description: "Block-sampled noise blended between a palette and a tint colour.",
		Controls: []pattern.Control{
			pattern.RangeControl("pixelSize", "Pixel size", 2, 64, 1, 8),
			pattern.RangeControl("colorIntensity", "Colour intensity", 0, 1, 0.05, 0.7),
			pattern.CheckboxControl("enabled", "Animate", true),
			pattern.ColorControl("tint", "Tint", "#66ccff"),
			pattern.SelectControl("palette", "Palette", "plasma", palette.NoiseNames()...),
			pattern.RangeControl("scale", "Scale", 0.01, 0.5, 0.01, 0.08),
			pattern.RangeControl("speed", "Speed", 0, 5, 0.1, 1),
			pattern.RangeControl("contrast", "Contrast", 0.2, 4, 0.1, 1),
			pattern.RangeControl("brightness", "Brightness", 0, 2, 0.05, 1),
		},
		New: func() pattern.Generator { return New(7) },
	}
}

type Generator struct {
	pixelSize int
	intensity float64
	enabled   bool
	tint      color.RGBA
	grad      palette.Gradient
	scale     float64
	speed     float64
	contrast  float64
	bright    float64

	field *noise.Field
	clock noise.Clock
}

func New(seed int64) *Generator {
	return &Generator{
		pixelSize: 8,
		intensity: 0.7,
		enabled:   true,
		tint:      color.RGBA{0x66, 0xcc, 0xff, 0xff},
		grad:      palette.Noise("plasma"),
		scale:     0.08,
		speed:     1,
		contrast:  1,
		bright:    1,
		field:     noise.New(seed),
	}
}

func (g *Generator) Configure(v pattern.Values) {
	g.pixelSize = max(1, v.Int("pixelSize", g.pixelSize))
	g.intensity = mathx.Clamp01(v.Float("colorIntensity", g.intensity))
	g.enabled = v.Bool("enabled", g.enabled)
	g.tint = v.Color("tint", g.tint)
	g.grad = palette.Noise(v.String("palette", "plasma"))
	g.scale = v.Float("scale", g.scale)
	g.speed = v.Float("speed", g.speed)
	g.contrast = v.Float("contrast", g.contrast)
	g.bright = v.Float("brightness", g.bright)
}

// Update advances time only while animation is enabled.
func (g *Generator) Update(pattern.Tick) {
	if g.enabled {
		g.clock.Tick(g.speed)
	}
}

// Block returns the colour of the block at grid cell (bx, by). The tint,
// darkened by the sample, is blended toward the palette colour by
// colorIntensity. The sample is shaped by contrast and brightness first.
func (g *Generator) Block(bx, by int) color.RGBA {
	v := noise.Normalize(g.field.At(float64(bx)*g.scale, float64(by)*g.scale, g.clock.T))
	v = noise.Shape(v, g.contrast, g.bright)
	p := g.grad.At(v)
	mix := func(tint, pal uint8) uint8 {
		return uint8(mathx.Lerp(float64(tint)*v, float64(pal), g.intensity) + 0.5)
	}
	return color.RGBA{mix(g.tint.R, p.R), mix(g.tint.G, p.G), mix(g.tint.B, p.B), 255}
}

func (g *Generator) Draw(dst *image.RGBA) {
	b := dst.Bounds()
	ps := g.pixelSize
	for by := 0; by*ps < b.Dy(); by++ {
		for bx := 0; bx*ps < b.Dx(); bx++ {
			x, y := b.Min.X+bx*ps, b.Min.Y+by*ps
			pattern.FillRect(dst, image.Rect(x, y, x+ps, y+ps), g.Block(bx, by))
		}
	}
}
