// Package palette maps scalar values in [0, 1] to colours.
//
// Palettes are gradients of evenly spaced stops blended in HCL space with
// go-colorful. Noise, particle and depth palettes are looked up by name;
// unknown names fall back to the first palette of each family.
package palette

import (
	"image/color"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/genlab/internal/mathx"
)

// Gradient is an ordered list of evenly spaced colour stops.
type Gradient []colorful.Color

// At samples the gradient at t, clamped to [0, 1].
func (g Gradient) At(t float64) color.RGBA {
	return toRGBA(g.Colorful(t), 255)
}

// AtAlpha samples the gradient with the given alpha in [0, 1].
func (g Gradient) AtAlpha(t, alpha float64) color.RGBA {
	return toRGBA(g.Colorful(t), uint8(mathx.Clamp01(alpha)*255))
}

func (g Gradient) Colorful(t float64) colorful.Color {
	switch len(g) {
	case 0:
		return colorful.Color{}
	case 1:
		return g[0]
	}
	t = mathx.Clamp01(t)
	pos := t * float64(len(g)-1)
	i := int(pos)
	if i >= len(g)-1 {
		return g[len(g)-1]
	}
	return g[i].BlendHcl(g[i+1], pos-float64(i)).Clamped()
}

func toRGBA(c colorful.Color, a uint8) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func hexes(hs ...string) Gradient {
	g := make(Gradient, 0, len(hs))
	for _, h := range hs {
		c, err := colorful.Hex(h)
		if err != nil {
			panic("palette: bad stop " + h)
		}
		g = append(g, c)
	}
	return g
}

func hueWheel(steps int) Gradient {
	g := make(Gradient, steps)
	for i := range g {
		g[i] = colorful.Hsv(float64(i)*360/float64(steps), 0.85, 1)
	}
	return g
}

var noisePalettes = map[string]Gradient{
	"grayscale": hexes("#000000", "#ffffff"),
	"fire":      hexes("#000000", "#5c0a00", "#c62f00", "#ff9a00", "#fff3b0"),
	"ocean":     hexes("#020c1b", "#0a3d62", "#1e81b0", "#76c7e0", "#e8fbff"),
	"forest":    hexes("#0b1a0b", "#1f4d1a", "#4c8c2b", "#a8c66c", "#f1f7d2"),
	"rainbow":   hueWheel(12),
	"plasma":    hexes("#0d0887", "#7e03a8", "#cc4778", "#f89540", "#f0f921"),
}

var particlePalettes = map[string]Gradient{
	"aurora": hexes("#00ffa3", "#00b3ff", "#7a00ff", "#ff00c8"),
	"ember":  hexes("#fff5c0", "#ffb300", "#ff4e00", "#5a0000"),
	"ocean":  hexes("#e0fbff", "#48cae4", "#0077b6", "#03045e"),
	"neon":   hexes("#39ff14", "#00f0ff", "#ff00ff", "#ffff00"),
	"mono":   hexes("#ffffff", "#8a8a8a", "#1c1c1c"),
}

var depthPalette = []color.RGBA{
	{0x26, 0x46, 0x53, 0xff},
	{0x2a, 0x9d, 0x8f, 0xff},
	{0xe9, 0xc4, 0x6a, 0xff},
	{0xf4, 0xa2, 0x61, 0xff},
	{0xe7, 0x6f, 0x51, 0xff},
	{0x9b, 0x5d, 0xe5, 0xff},
	{0xf1, 0x5b, 0xb5, 0xff},
	{0x00, 0xbb, 0xf9, 0xff},
	{0x00, 0xf5, 0xd4, 0xff},
	{0xfe, 0xe4, 0x40, 0xff},
}

// Noise returns a noise-field palette, grayscale for unknown names.
func Noise(name string) Gradient {
	if g, ok := noisePalettes[name]; ok {
		return g
	}
	return noisePalettes["grayscale"]
}

// Particle returns one of the five particle palettes, aurora for unknown names.
func Particle(name string) Gradient {
	if g, ok := particlePalettes[name]; ok {
		return g
	}
	return particlePalettes["aurora"]
}

// Depth returns the fixed colour for a subdivision depth, cycling.
func Depth(depth int) color.RGBA {
	if depth < 0 {
		depth = 0
	}
	return depthPalette[depth%len(depthPalette)]
}

// Gray returns a gray level for v in [0, 1].
func Gray(v float64) color.RGBA {
	l := uint8(mathx.Clamp01(v) * 255)
	return color.RGBA{R: l, G: l, B: l, A: 255}
}

func NoiseNames() []string    { return names(noisePalettes) }
func ParticleNames() []string { return names(particlePalettes) }

func names(m map[string]Gradient) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
