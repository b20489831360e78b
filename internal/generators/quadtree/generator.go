package quadtree

import (
	"image"
	"image/color"
	"math"

	"github.com/san-kum/genlab/internal/mathx"
	"github.com/san-kum/genlab/internal/palette"
	"github.com/san-kum/genlab/internal/pattern"
	"github.com/san-kum/genlab/internal/render"
)

const ID = "quadtree"

// Colour modes.
const (
	ColorDepth      = "depth"
	ColorGrayscale  = "grayscale"
	ColorHalfCircle = "halfcircle"
)

func Descriptor() *pattern.Descriptor {
	return &pattern.Descriptor{
		ID:          ID,
		Name:        "Quadtree",
		Description: "Recursive square subdivision driven by geometric rules.",
		Controls: []pattern.Control{
			pattern.RangeControl("maxDepth", "Max depth", 1, 10, 1, 6),
			pattern.SelectControl("subdivision", "Subdivision", Golden, Schemes...),
			pattern.SelectControl("colorMode", "Colour mode", ColorDepth, ColorDepth, ColorGrayscale, ColorHalfCircle),
			pattern.CheckboxControl("outline", "Outline", true),
			pattern.ColorControl("background", "Background", "#101014"),
		},
		New: func() pattern.Generator { return New() },
	}
}

type Generator struct {
	maxDepth  int
	scheme    string
	colorMode string
	outline   bool
	bg        color.RGBA

	size   float64
	leaves []Node
}

func New() *Generator {
	return &Generator{
		maxDepth:  6,
		scheme:    Golden,
		colorMode: ColorDepth,
		outline:   true,
		bg:        color.RGBA{0x10, 0x10, 0x14, 0xff},
	}
}

func (g *Generator) Configure(v pattern.Values) {
	g.maxDepth = mathx.Clamp(v.Int("maxDepth", g.maxDepth), 0, 10)
	g.scheme = v.String("subdivision", g.scheme)
	g.colorMode = v.String("colorMode", g.colorMode)
	g.outline = v.Bool("outline", g.outline)
	g.bg = v.Color("background", g.bg)
	g.leaves = nil
}

func (g *Generator) Resize(width, height int) {
	if s := float64(min(width, height)); s != g.size {
		g.size = s
		g.leaves = nil
	}
}

// Update is a no-op: the tree depends only on settings and size.
func (g *Generator) Update(pattern.Tick) {}

// Leaves returns the subdivision for the current size, building it on
// first use.
func (g *Generator) Leaves() []Node {
	if g.leaves == nil {
		g.leaves = Build(g.size, g.maxDepth, PredicateFor(g.scheme, g.size))
	}
	return g.leaves
}

// Orientation is the quarter-turn count for a half circle, hashed from the
// node position.
func Orientation(n Node) int {
	ix := uint32(n.X/n.Size + 0.5)
	iy := uint32(n.Y/n.Size + 0.5)
	return int(mathx.Hash3(ix, iy, uint32(n.Depth)) * 4)
}

// Fill is the colour of leaf n under the current colour mode.
func (g *Generator) Fill(n Node) color.RGBA {
	if g.colorMode == ColorGrayscale {
		return palette.Gray(float64(n.Depth) / float64(max(1, g.maxDepth)))
	}
	return palette.Depth(n.Depth)
}

func (g *Generator) Background() color.RGBA { return g.bg }
func (g *Generator) ColorMode() string      { return g.colorMode }
func (g *Generator) Outlined() bool         { return g.outline }

func (g *Generator) Draw(dst *image.RGBA) {
	b := dst.Bounds()
	g.Resize(b.Dx(), b.Dy())
	ox := (float64(b.Dx()) - g.size) / 2
	oy := (float64(b.Dy()) - g.size) / 2

	c := render.NewCanvas(dst, g.bg)
	ctx := c.Ctx
	for _, n := range g.Leaves() {
		x, y := ox+n.X, oy+n.Y
		c.SetColor(g.Fill(n))
		if g.colorMode == ColorHalfCircle {
			cx, cy := x+n.Size/2, y+n.Size/2
			a := float64(Orientation(n)) * math.Pi / 2
			ctx.MoveTo(cx, cy)
			ctx.DrawArc(cx, cy, n.Size/2, a, a+math.Pi)
			ctx.ClosePath()
		} else {
			ctx.DrawRectangle(x, y, n.Size, n.Size)
		}
		_ = ctx.Fill()
	}
	if g.outline {
		c.SetColor(color.RGBA{0, 0, 0, 160})
		ctx.SetLineWidth(1)
		for _, n := range g.Leaves() {
			ctx.DrawRectangle(ox+n.X, oy+n.Y, n.Size, n.Size)
			_ = ctx.Stroke()
		}
	}
	c.Commit()
}
