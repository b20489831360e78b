package export

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/san-kum/genlab/internal/generators/attractor"
	"github.com/san-kum/genlab/internal/generators/quadtree"
	"github.com/san-kum/genlab/internal/palette"
)

// TrajectorySVG draws xs/ys as a single polyline fitted into width×height.
func TrajectorySVG(xs, ys []float64, width, height int, stroke, bg color.RGBA) string {
	if len(xs) < 2 || len(xs) != len(ys) {
		return ""
	}
	scale, ox, oy := attractor.Fit(xs, ys, float64(width), float64(height))

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-opacity="0.8" stroke-width="0.6" d="M`,
		width, height, width, height, palette.Hex(bg), palette.Hex(stroke))

	for i := range xs {
		x := ox + scale*xs[i]
		y := oy - scale*ys[i]
		if i == 0 {
			fmt.Fprintf(&sb, "%.2f,%.2f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.2f,%.2f", x, y)
		}
	}
	sb.WriteString("\"/>\n</svg>\n")
	return sb.String()
}

// AttractorSVG renders the generator's current trail.
func AttractorSVG(g *attractor.Generator, width, height int) string {
	xs, ys := g.Projected()
	return TrajectorySVG(xs, ys, width, height, g.Color(), color.RGBA{0, 0, 0, 255})
}

// QuadtreeSVG renders the generator's leaves as rectangles or half circles.
func QuadtreeSVG(g *quadtree.Generator, width, height int) string {
	g.Resize(width, height)
	leaves := g.Leaves()
	size := float64(min(width, height))
	ox := (float64(width) - size) / 2
	oy := (float64(height) - size) / 2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, palette.Hex(g.Background()))

	stroke := ""
	if g.Outlined() {
		stroke = ` stroke="#000000" stroke-opacity="0.63" stroke-width="1"`
	}
	for _, n := range leaves {
		x, y := ox+n.X, oy+n.Y
		fill := palette.Hex(g.Fill(n))
		if g.ColorMode() != quadtree.ColorHalfCircle {
			fmt.Fprintf(&sb, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"%s/>`+"\n", x, y, n.Size, n.Size, fill, stroke)
			continue
		}
		r := n.Size / 2
		cx, cy := x+r, y+r
		a := float64(quadtree.Orientation(n)) * math.Pi / 2
		x0, y0 := cx+r*math.Cos(a), cy+r*math.Sin(a)
		x1, y1 := cx-r*math.Cos(a), cy-r*math.Sin(a)
		fmt.Fprintf(&sb, `<path d="M%.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 0 1 %.2f,%.2f Z" fill="%s"/>`+"\n", cx, cy, x0, y0, r, r, x1, y1, fill)
		if g.Outlined() {
			fmt.Fprintf(&sb, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="none"%s/>`+"\n", x, y, n.Size, n.Size, stroke)
		}
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}
