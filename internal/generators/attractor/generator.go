package attractor

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/san-kum/genlab/internal/dynamo"
	"github.com/san-kum/genlab/internal/integrators"
	"github.com/san-kum/genlab/internal/logx"
	"github.com/san-kum/genlab/internal/pattern"
	"github.com/san-kum/genlab/internal/render"
)

const ID = "attractor"

func Descriptor() *pattern.Descriptor {
	return &pattern.Descriptor{
		ID:          ID,
		Name:        "Strange Attractor",
		Description: "A chaotic three-dimensional flow traced as a slowly rotating trail.",
		Controls: []pattern.Control{
			pattern.SelectControl("system", "System", NameNewtonLeipnik, Names...),
			pattern.RangeControl("a", "a", 0.1, 1, 0.005, 0.4),
			pattern.RangeControl("b", "b", 0.05, 0.5, 0.005, 0.175),
			pattern.RangeControl("sigma", "σ (Lorenz)", 1, 30, 0.1, 10),
			pattern.RangeControl("rho", "ρ (Lorenz)", 0.5, 60, 0.1, 28),
			pattern.RangeControl("beta", "β (Lorenz)", 0.1, 5, 0.01, 8.0/3.0),
			pattern.RangeControl("c", "c (Rössler)", 1, 15, 0.1, 5.7),
			pattern.RangeControl("dt", "Time step", 0.001, 0.02, 0.001, 0.005),
			pattern.RangeControl("stepsPerTick", "Steps per tick", 1, 200, 1, 40),
			pattern.RangeControl("trailLength", "Trail length", 500, 20000, 100, 6000),
			pattern.RangeControl("rotationSpeed", "Rotation speed", 0, 1, 0.01, 0.15),
			pattern.SelectControl("integrator", "Integrator", "euler", integrators.Names...),
			pattern.ColorControl("color", "Colour", "#7fdbff"),
			pattern.ButtonControl("reset", "Reset"),
		},
		New: func() pattern.Generator { return NewGenerator() },
	}
}

type Generator struct {
	name     string
	sys      Attractor
	integ    dynamo.Integrator
	dt       float64
	perTick  int
	rotSpeed float64
	color    color.RGBA

	state dynamo.State
	t     float64
	angle float64
	steps int
	trail *Trail
}

func NewGenerator() *Generator {
	g := &Generator{
		name:     NameNewtonLeipnik,
		sys:      NewNewtonLeipnik(),
		integ:    integrators.NewEuler(),
		dt:       0.005,
		perTick:  40,
		rotSpeed: 0.15,
		color:    color.RGBA{0x7f, 0xdb, 0xff, 0xff},
		trail:    NewTrail(6000),
	}
	g.reset()
	return g
}

func (g *Generator) Configure(v pattern.Values) {
	name := v.String("system", g.name)
	if name != g.name {
		if sys, err := New(name); err == nil {
			g.name, g.sys = name, sys
			g.trail.Clear()
			g.reset()
		}
	}
	Apply(g.name, g.sys, v.Float)
	g.dt = v.Float("dt", g.dt)
	g.perTick = max(1, v.Int("stepsPerTick", g.perTick))
	if n := v.Int("trailLength", g.trail.Cap()); n != g.trail.Cap() {
		g.trail.Resize(n)
	}
	g.rotSpeed = v.Float("rotationSpeed", g.rotSpeed)
	if integ, err := integrators.ByName(v.String("integrator", "euler")); err == nil {
		g.integ = integ
	}
	g.color = v.Color("color", g.color)
}

func (g *Generator) reset() {
	g.state = g.sys.DefaultState()
	g.t, g.steps = 0, 0
	g.trail.Clear()
	g.trail.Push(g.state)
}

// Update integrates stepsPerTick steps. A state that leaves the finite
// range restarts the trajectory from the default state.
func (g *Generator) Update(t pattern.Tick) {
	for i := 0; i < g.perTick; i++ {
		next := g.integ.Step(g.sys, g.state, g.t, g.dt)
		if err := dynamo.Validate(g.sys, next, g.steps, g.t); err != nil {
			logx.Logger().Warn("attractor diverged, restarting", "system", g.name, "err", err)
			g.reset()
			return
		}
		g.state = next
		g.t += g.dt
		g.steps++
		g.trail.Push(g.state)
	}
	g.angle = t.Elapsed * g.rotSpeed
}

func (g *Generator) Dispatch(action string) (pattern.Values, error) {
	if action != "reset" {
		return nil, fmt.Errorf("%w: %s", pattern.ErrUnknownAction, action)
	}
	g.reset()
	return nil, nil
}

// State returns a copy of the current point.
func (g *Generator) State() dynamo.State { return g.state.Clone() }

// Trail returns the stored trajectory, oldest first.
func (g *Generator) Trail() []dynamo.State { return g.trail.Points() }

// Projected returns the trail rotated by the current angle and flattened.
func (g *Generator) Projected() (xs, ys []float64) {
	pts := g.trail.Points()
	xs = make([]float64, len(pts))
	ys = make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = Project(p, g.angle)
	}
	return xs, ys
}

func (g *Generator) Color() color.RGBA { return g.color }

// Project rotates p about the y axis by angle and drops z.
func Project(p dynamo.State, angle float64) (x, y float64) {
	c, s := math.Cos(angle), math.Sin(angle)
	return p[0]*c + p[2]*s, p[1]
}

// Fit maps projected points into a w×h surface with a margin, preserving
// aspect ratio.
func Fit(xs, ys []float64, w, h float64) (scale, ox, oy float64) {
	if len(xs) == 0 {
		return 1, w / 2, h / 2
	}
	minX, maxX, minY, maxY := xs[0], xs[0], ys[0], ys[0]
	for i := range xs {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	spanX := math.Max(maxX-minX, 1e-9)
	spanY := math.Max(maxY-minY, 1e-9)
	scale = 0.9 * math.Min(w/spanX, h/spanY)
	ox = w/2 - scale*(minX+maxX)/2
	oy = h/2 + scale*(minY+maxY)/2
	return scale, ox, oy
}

const alphaBands = 12

func (g *Generator) Draw(dst *image.RGBA) {
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	xs, ys := g.Projected()
	scale, ox, oy := Fit(xs, ys, w, h)

	c := render.NewCanvas(dst, color.RGBA{0, 0, 0, 255})
	ctx := c.Ctx
	ctx.SetLineWidth(1)
	n := len(xs)
	for band := 0; band < alphaBands; band++ {
		lo := band * n / alphaBands
		hi := min(n, (band+1)*n/alphaBands+1)
		if hi-lo < 2 {
			continue
		}
		col := g.color
		col.A = uint8(255 * float64(band+1) / alphaBands)
		c.SetColor(col)
		ctx.MoveTo(ox+scale*xs[lo], oy-scale*ys[lo])
		for i := lo + 1; i < hi; i++ {
			ctx.LineTo(ox+scale*xs[i], oy-scale*ys[i])
		}
		_ = ctx.Stroke()
	}
	c.Commit()
}
