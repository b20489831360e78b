package automaton

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"

	"github.com/san-kum/genlab/internal/pattern"
)

const ID = "cellular-automaton"

// Descriptor registers the elementary automaton.
func Descriptor() *pattern.Descriptor {
	return &pattern.Descriptor{
		ID:          ID,
		Name:        "Cellular Automaton",
		Description: "Elementary one-dimensional automaton; each row is the next generation.",
		Controls: []pattern.Control{
			pattern.RangeControl("rule", "Rule", 0, 255, 1, 30),
			pattern.RangeControl("cellSize", "Cell size", 1, 16, 1, 4),
			pattern.SelectControl("initialCondition", "Initial condition", SeedCenter, SeedLeft, SeedCenter, SeedRandom),
			pattern.RangeControl("generationsPerTick", "Generations per tick", 1, 8, 1, 1),
			pattern.ColorControl("aliveColor", "Alive colour", "#ffffff"),
			pattern.ColorControl("deadColor", "Dead colour", "#000000"),
			pattern.ButtonControl("prevRule", "Previous rule"),
			pattern.ButtonControl("nextRule", "Next rule"),
			pattern.ButtonControl("reset", "Reset"),
		},
		New: func() pattern.Generator { return New(1) },
	}
}

// Generator scrolls automaton generations down the surface.
type Generator struct {
	rule     uint8
	cellSize int
	seedMode string
	perTick  int
	alive    color.RGBA
	dead     color.RGBA

	width, height int
	cols, rows    int
	hist          *History
	rng           *rand.Rand
}

// New creates a generator whose random first rows come from seed.
func New(seed int64) *Generator {
	return &Generator{
		rule:     30,
		cellSize: 4,
		seedMode: SeedCenter,
		perTick:  1,
		alive:    color.RGBA{255, 255, 255, 255},
		dead:     color.RGBA{0, 0, 0, 255},
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (g *Generator) Configure(v pattern.Values) {
	cellSize := max(1, v.Int("cellSize", g.cellSize))
	seedMode := v.String("initialCondition", g.seedMode)
	restart := cellSize != g.cellSize || seedMode != g.seedMode

	g.rule = uint8(v.Int("rule", int(g.rule)))
	g.cellSize = cellSize
	g.seedMode = seedMode
	g.perTick = max(1, v.Int("generationsPerTick", g.perTick))
	g.alive = v.Color("aliveColor", g.alive)
	g.dead = v.Color("deadColor", g.dead)

	if restart && g.hist != nil {
		g.restart()
	}
}

// Resize recomputes the grid for a width×height surface. The history
// restarts only when the grid dimensions change.
func (g *Generator) Resize(width, height int) {
	g.width, g.height = width, height
	cols := max(1, width/g.cellSize)
	rows := max(1, height/g.cellSize)
	if g.hist != nil && cols == g.cols && rows == g.rows {
		return
	}
	g.restart()
}

func (g *Generator) restart() {
	g.cols = max(1, g.width/g.cellSize)
	g.rows = max(1, g.height/g.cellSize)
	g.hist = NewHistory(g.rows)
	g.hist.Push(Seed(g.cols, g.seedMode, g.rng))
}

func (g *Generator) Update(pattern.Tick) {
	if g.hist == nil {
		return
	}
	for i := 0; i < g.perTick; i++ {
		g.hist.Push(Next(g.rule, g.hist.Last()))
	}
}

func (g *Generator) Draw(dst *image.RGBA) {
	b := dst.Bounds()
	if g.hist == nil || b.Dx() != g.width || b.Dy() != g.height {
		g.Resize(b.Dx(), b.Dy())
	}

	pattern.Fill(dst, g.dead)
	cs := g.cellSize
	for r := 0; r < g.hist.Len(); r++ {
		y := b.Min.Y + r*cs
		for x, c := range g.hist.At(r) {
			if c == 0 {
				continue
			}
			px := b.Min.X + x*cs
			pattern.FillRect(dst, image.Rect(px, y, px+cs, y+cs), g.alive)
		}
	}
}

// Dispatch handles the prevRule, nextRule and reset buttons. Rule changes
// wrap around 0 and 255.
func (g *Generator) Dispatch(action string) (pattern.Values, error) {
	switch action {
	case "prevRule":
		g.rule--
		return pattern.Values{"rule": float64(g.rule)}, nil
	case "nextRule":
		g.rule++
		return pattern.Values{"rule": float64(g.rule)}, nil
	case "reset":
		if g.hist != nil {
			g.restart()
		}
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s", pattern.ErrUnknownAction, action)
}

func (g *Generator) Rule() uint8 { return g.rule }

// Rows returns the visible generations, oldest first.
func (g *Generator) Rows() [][]uint8 {
	if g.hist == nil {
		return nil
	}
	out := make([][]uint8, g.hist.Len())
	for i := range out {
		out[i] = g.hist.At(i)
	}
	return out
}
