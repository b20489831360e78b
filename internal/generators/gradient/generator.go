package gradient

import (
	"fmt"
	"image"
	"image/color"

	"github.com/san-kum/genlab/internal/dynamo"
	"github.com/san-kum/genlab/internal/pattern"
)

const ID = "four-pole-gradient"

func Descriptor() *pattern.Descriptor {
	return &pattern.Descriptor{
		ID:          ID,
		Name:        "Four-Pole Gradient",
		Description: "Four moving colour poles blended by inverse-distance weighting.",
		Controls: []pattern.Control{
			pattern.RangeControl("power", "Power", 0.5, 6, 0.1, 2),
			pattern.SelectControl("animation", "Animation", AnimCircular, Modes...),
			pattern.RangeControl("speed", "Speed", 0, 3, 0.05, 1),
			pattern.ColorControl("color1", "Colour 1", "#ff595e"),
			pattern.ColorControl("color2", "Colour 2", "#ffca3a"),
			pattern.ColorControl("color3", "Colour 3", "#1982c4"),
			pattern.ColorControl("color4", "Colour 4", "#6a4c93"),
			pattern.RangeControl("resolution", "Resolution", 1, 8, 1, 2),
			pattern.ButtonControl("resetPoles", "Reset poles"),
		},
		New: func() pattern.Generator { return New() },
	}
}

// relative base positions of the four poles
var homes = [4][2]float64{{0.2, 0.2}, {0.8, 0.2}, {0.8, 0.8}, {0.2, 0.8}}

type Generator struct {
	power      float64
	mode       string
	speed      float64
	colors     [4]color.RGBA
	resolution int

	w, h   float64
	base   [4][2]float64
	moved  bool
	pinned bool
	t      float64
}

func New() *Generator {
	g := &Generator{
		power:      2,
		mode:       AnimCircular,
		speed:      1,
		resolution: 2,
		colors: [4]color.RGBA{
			{0xff, 0x59, 0x5e, 0xff},
			{0xff, 0xca, 0x3a, 0xff},
			{0x19, 0x82, 0xc4, 0xff},
			{0x6a, 0x4c, 0x93, 0xff},
		},
	}
	g.Resize(640, 480)
	return g
}

func (g *Generator) Configure(v pattern.Values) {
	g.power = v.Float("power", g.power)
	g.mode = v.String("animation", g.mode)
	g.speed = v.Float("speed", g.speed)
	for i := range g.colors {
		g.colors[i] = v.Color(fmt.Sprintf("color%d", i+1), g.colors[i])
	}
	g.resolution = max(1, v.Int("resolution", g.resolution))
}

// Resize keeps dragged poles where they are and rescales the home
// positions otherwise.
func (g *Generator) Resize(width, height int) {
	g.w, g.h = float64(width), float64(height)
	if g.moved {
		return
	}
	for i, p := range homes {
		g.base[i] = [2]float64{p[0] * g.w, p[1] * g.h}
	}
}

func (g *Generator) Update(t pattern.Tick) {
	g.t = t.Elapsed
}

// Mode is the animation in effect; dragging pins it to none.
func (g *Generator) Mode() string {
	if g.pinned {
		return AnimNone
	}
	return g.mode
}

// Poles returns the current pole positions and colours.
func (g *Generator) Poles() []Pole {
	poles := make([]Pole, 4)
	mode := g.Mode()
	for i := range poles {
		x, y := Animate(mode, g.base[i], i, g.t, g.speed, g.w, g.h)
		poles[i] = Pole{X: x, Y: y, Color: g.colors[i]}
	}
	return poles
}

// MovePole drags pole i to (x, y) and stops the animation until the poles
// are reset. The other poles freeze where the animation had them.
func (g *Generator) MovePole(i int, x, y float64) error {
	if i < 0 || i >= len(g.base) {
		return fmt.Errorf("gradient: pole %d out of range", i)
	}
	if !g.pinned {
		for j, p := range g.Poles() {
			g.base[j] = [2]float64{p.X, p.Y}
		}
	}
	g.base[i] = [2]float64{x, y}
	g.moved, g.pinned = true, true
	return nil
}

// Dispatch handles resetPoles, which restores home positions and the
// configured animation.
func (g *Generator) Dispatch(action string) (pattern.Values, error) {
	if action != "resetPoles" {
		return nil, fmt.Errorf("%w: %s", pattern.ErrUnknownAction, action)
	}
	g.moved, g.pinned = false, false
	g.Resize(int(g.w), int(g.h))
	return nil, nil
}

func (g *Generator) Draw(dst *image.RGBA) {
	b := dst.Bounds()
	if float64(b.Dx()) != g.w || float64(b.Dy()) != g.h {
		g.Resize(b.Dx(), b.Dy())
	}
	poles := g.Poles()
	res := g.resolution
	rows := (b.Dy() + res - 1) / res
	dynamo.ParallelFor(rows, 8, func(start, end int) {
		for r := start; r < end; r++ {
			y := r * res
			for x := 0; x < b.Dx(); x += res {
				c := Interpolate(float64(x)+float64(res)/2, float64(y)+float64(res)/2, poles, g.power)
				px, py := b.Min.X+x, b.Min.Y+y
				pattern.FillRect(dst, image.Rect(px, py, px+res, py+res), c)
			}
		}
	})
}
