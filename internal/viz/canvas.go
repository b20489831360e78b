package viz

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/genlab/internal/palette"
)

// Braille cells hold 2×4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille cells addressed in dot coordinates; the dot
// size is (Width*2)×(Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Plot sets a dot for every pixel of img brighter than threshold. img should
// be (Width*2)×(Height*4).
func (c *Canvas) Plot(img *image.RGBA, threshold float64) {
	c.Clear()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if luminance(img.RGBAAt(x, y)) > threshold {
				c.Set(x-b.Min.X, y-b.Min.Y)
			}
		}
	}
}

func luminance(c color.RGBA) float64 {
	r, g, b := palette.Float(c)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Luminance is the mean luminance of img in [0,1].
func Luminance(img *image.RGBA) float64 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	sum := 0.0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum += luminance(img.RGBAAt(x, y))
		}
	}
	return sum / float64(b.Dx()*b.Dy())
}

// Downsample box-filters src into a cols×rows image.
func Downsample(src *image.RGBA, cols, rows int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, cols, rows))
	sb := src.Bounds()
	for y := 0; y < rows; y++ {
		y0 := sb.Min.Y + y*sb.Dy()/rows
		y1 := max(y0+1, sb.Min.Y+(y+1)*sb.Dy()/rows)
		for x := 0; x < cols; x++ {
			x0 := sb.Min.X + x*sb.Dx()/cols
			x1 := max(x0+1, sb.Min.X+(x+1)*sb.Dx()/cols)
			var r, g, b, n int
			for yy := y0; yy < y1; yy++ {
				for xx := x0; xx < x1; xx++ {
					p := src.RGBAAt(xx, yy)
					r, g, b = r+int(p.R), g+int(p.G), b+int(p.B)
					n++
				}
			}
			dst.SetRGBA(x, y, color.RGBA{uint8(r / n), uint8(g / n), uint8(b / n), 255})
		}
	}
	return dst
}

// HalfBlocks renders img with one '▀' per two vertical pixels: the
// foreground carries the top pixel and the background the bottom one.
func HalfBlocks(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}
			st := lipgloss.NewStyle().
				Foreground(lipgloss.Color(palette.Hex(top))).
				Background(lipgloss.Color(palette.Hex(bottom)))
			sb.WriteString(st.Render("▀"))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
