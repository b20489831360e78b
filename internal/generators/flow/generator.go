package flow

import (
	"image"
	"image/color"

	"github.com/san-kum/genlab/internal/dynamo"
	"github.com/san-kum/genlab/internal/palette"
	"github.com/san-kum/genlab/internal/pattern"
	"github.com/san-kum/genlab/internal/render"
)

const ID = "curl-flow"

func Descriptor() *pattern.Descriptor {
	return &pattern.Descriptor{
		ID:          ID,
		Name:        "Curl Flow",
		Description: "Particles drifting along divergence-free curl noise, leaving fading trails.",
		Controls: []pattern.Control{
			pattern.RangeControl("particleCount", "Particles", 50, 4000, 50, 800),
			pattern.RangeControl("noiseScale", "Noise scale", 0.001, 0.02, 0.001, 0.004),
			pattern.RangeControl("flowSpeed", "Flow speed", 10, 200, 5, 60),
			pattern.RangeControl("lifespan", "Lifespan (s)", 1, 10, 0.5, 4),
			pattern.RangeControl("trailLength", "Trail length", 0, 16, 1, 6),
			pattern.RangeControl("particleSize", "Particle size", 0.5, 6, 0.5, 1.5),
			pattern.SelectControl("palette", "Palette", "aurora", palette.ParticleNames()...),
			pattern.ColorControl("background", "Background", "#05060a"),
		},
		New: func() pattern.Generator { return New(11) },
	}
}

type Generator struct {
	sys   *System
	count int
	trail int
	size  float64
	grad  palette.Gradient
	bg    color.RGBA

	t float64
}

func New(seed int64) *Generator {
	return &Generator{
		sys:   NewSystem(seed),
		count: 800,
		trail: 6,
		size:  1.5,
		grad:  palette.Particle("aurora"),
		bg:    color.RGBA{0x05, 0x06, 0x0a, 0xff},
	}
}

func (g *Generator) Configure(v pattern.Values) {
	g.count = max(0, v.Int("particleCount", g.count))
	g.sys.NoiseScale = v.Float("noiseScale", g.sys.NoiseScale)
	g.sys.FlowSpeed = v.Float("flowSpeed", g.sys.FlowSpeed)
	g.sys.Lifespan = max(0.1, v.Float("lifespan", g.sys.Lifespan))
	g.trail = max(0, v.Int("trailLength", g.trail))
	g.size = v.Float("particleSize", g.size)
	g.grad = palette.Particle(v.String("palette", "aurora"))
	g.bg = v.Color("background", g.bg)
}

func (g *Generator) Resize(width, height int) {
	g.sys.Width, g.sys.Height = float64(width), float64(height)
}

// Update takes the clock from the tick; particle state is derived from it.
func (g *Generator) Update(t pattern.Tick) {
	g.t = t.Elapsed
}

// System exposes the particle model.
func (g *Generator) System() *System { return g.sys }

// Paths evaluates every particle at the current time in parallel.
func (g *Generator) Paths() [][]Sample {
	paths := make([][]Sample, g.count)
	dynamo.ParallelFor(g.count, 64, func(start, end int) {
		for i := start; i < end; i++ {
			paths[i] = g.sys.Trajectory(i, g.t, g.trail)
		}
	})
	return paths
}

func (g *Generator) Draw(dst *image.RGBA) {
	b := dst.Bounds()
	if float64(b.Dx()) != g.sys.Width || float64(b.Dy()) != g.sys.Height {
		g.Resize(b.Dx(), b.Dy())
	}

	c := render.NewCanvas(dst, g.bg)
	n := float64(g.trail + 1)
	for i, path := range g.Paths() {
		life := g.sys.Life(i)
		// oldest first so the head is drawn on top
		for k := len(path) - 1; k >= 0; k-- {
			s := path[k]
			fade := 1 - float64(k)/n
			c.Dot(s.X, s.Y, g.size*fade, g.grad.AtAlpha(s.Age/life, fade))
		}
	}
	c.Commit()
}
