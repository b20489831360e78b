// Package render bridges vector drawing with gogpu/gg and the image.RGBA
// surfaces generators draw into.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gg"
)

// Canvas is a gg context sized to a destination surface. Draw shapes on
// Ctx, then Commit copies the result into the surface.
type Canvas struct {
	Ctx *gg.Context
	dst *image.RGBA
}

// NewCanvas returns a canvas for dst cleared to bg.
func NewCanvas(dst *image.RGBA, bg color.Color) *Canvas {
	b := dst.Bounds()
	ctx := gg.NewContext(max(1, b.Dx()), max(1, b.Dy()))
	ctx.ClearWithColor(gg.FromColor(bg))
	return &Canvas{Ctx: ctx, dst: dst}
}

// SetColor sets a straight-alpha colour for the next fill or stroke.
func (c *Canvas) SetColor(col color.RGBA) {
	c.Ctx.SetRGBA(float64(col.R)/255, float64(col.G)/255, float64(col.B)/255, float64(col.A)/255)
}

// Dot fills a circle.
func (c *Canvas) Dot(x, y, r float64, col color.RGBA) {
	c.SetColor(col)
	c.Ctx.DrawCircle(x, y, r)
	_ = c.Ctx.Fill()
}

// Commit copies the drawing into the destination surface and releases the
// context.
func (c *Canvas) Commit() {
	b := c.dst.Bounds()
	draw.Draw(c.dst, b, c.Ctx.Image(), image.Point{}, draw.Src)
	_ = c.Ctx.Close()
}
