package palette

import (
	"fmt"
	"image/color"

	css "github.com/mazznoer/csscolorparser"
)

// Parse accepts any CSS colour string (hex, rgb(), hsl(), named colours)
// and returns an opaque-or-translucent RGBA.
func Parse(s string) (color.RGBA, error) {
	c, err := css.Parse(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("palette: parse %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}, nil
}

// MustParse is Parse for compile-time constants.
func MustParse(s string) color.RGBA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as lowercase #rrggbb, dropping alpha.
func Hex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// Canonical parses s and re-formats it as #rrggbb.
func Canonical(s string) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Hex(c), nil
}

// Float returns the colour channels as floats in [0, 1].
func Float(c color.RGBA) (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}
