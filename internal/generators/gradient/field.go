// Package gradient blends four coloured poles by inverse-distance weighting.
package gradient

import (
	"image/color"
	"math"

	"github.com/san-kum/genlab/internal/mathx"
	"github.com/san-kum/genlab/internal/noise"
)

// Pole is a colour anchored at a point on the surface.
type Pole struct {
	X, Y  float64
	Color color.RGBA
}

// Weights returns the normalised inverse-distance weights of the poles at
// (x, y). Distances are floored at 1 so a pixel on a pole stays finite.
func Weights(x, y float64, poles []Pole, power float64) []float64 {
	w := make([]float64, len(poles))
	sum := 0.0
	for i, p := range poles {
		d := math.Max(math.Hypot(x-p.X, y-p.Y), 1)
		w[i] = 1 / math.Pow(d, power)
		sum += w[i]
	}
	if sum == 0 {
		return w
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// Interpolate is the weighted average of the pole colours at (x, y).
func Interpolate(x, y float64, poles []Pole, power float64) color.RGBA {
	var r, g, b float64
	for i, w := range Weights(x, y, poles, power) {
		c := poles[i].Color
		r += w * float64(c.R)
		g += w * float64(c.G)
		b += w * float64(c.B)
	}
	return color.RGBA{
		R: uint8(mathx.Clamp(r+0.5, 0, 255)),
		G: uint8(mathx.Clamp(g+0.5, 0, 255)),
		B: uint8(mathx.Clamp(b+0.5, 0, 255)),
		A: 255,
	}
}

// Animation modes.
const (
	AnimNone       = "none"
	AnimCircular   = "circular"
	AnimFigure8    = "figure8"
	AnimOscillate  = "oscillate"
	AnimRandomWalk = "random-walk"
	AnimCurl       = "curl"
)

var Modes = []string{AnimNone, AnimCircular, AnimFigure8, AnimOscillate, AnimRandomWalk, AnimCurl}

var curlField = noise.New(4)

// Animate moves pole i away from its base position at time t. The result
// stays within the w×h surface.
func Animate(mode string, base [2]float64, i int, t, speed, w, h float64) (x, y float64) {
	r := 0.15 * math.Min(w, h)
	th := t*speed + float64(i)*math.Pi/2
	x, y = base[0], base[1]

	switch mode {
	case AnimCircular:
		x += r * math.Cos(th)
		y += r * math.Sin(th)
	case AnimFigure8:
		x += r * math.Sin(th)
		y += r * math.Sin(2*th) / 2
	case AnimOscillate:
		if i%2 == 0 {
			x += r * math.Sin(th)
		} else {
			y += r * math.Sin(th)
		}
	case AnimRandomWalk:
		// layered sines with per-pole frequencies read as a wandering path
		u := uint32(i)
		for k := uint32(1); k <= 3; k++ {
			fx := 0.3 + mathx.Hash2(u, k)*0.9
			fy := 0.3 + mathx.Hash2(u, k+10)*0.9
			amp := r / float64(k)
			x += amp * math.Sin(t*speed*fx*float64(k)+float64(k))
			y += amp * math.Cos(t*speed*fy*float64(k)+float64(2*k))
		}
	case AnimCurl:
		z := t * speed * 0.2
		x += r * curlField.At(base[0]*0.01, base[1]*0.01+float64(i)*10, z)
		y += r * curlField.At(base[0]*0.01+float64(i)*10, base[1]*0.01, z+50)
	}
	return mathx.Clamp(x, 0, w), mathx.Clamp(y, 0, h)
}
