package analysis

import (
	"strings"

	"github.com/san-kum/genlab/internal/dynamo"
)

type Point struct{ X, Y float64 }

// PhasePortrait integrates from x0 and records coordinates xIdx and yIdx
// after every step. It returns nil for out-of-range indices.
func PhasePortrait(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	xIdx, yIdx int,
	dt, duration float64,
) []Point {
	if xIdx >= len(x0) || yIdx >= len(x0) || dt <= 0 {
		return nil
	}
	pts := make([]Point, 0, int(duration/dt)+1)
	x := x0.Clone()
	for t := 0.0; t < duration; t += dt {
		x = integ.Step(sys, x, t, dt)
		if !x.IsValid() {
			break
		}
		pts = append(pts, Point{x[xIdx], x[yIdx]})
	}
	return pts
}

// PoincareSection records (x[recX], x[recY]) whenever x[crossIdx] crosses
// threshold upwards, linearly interpolated to the crossing.
func PoincareSection(
	sys dynamo.System,
	integ dynamo.Integrator,
	x0 dynamo.State,
	crossIdx int,
	threshold float64,
	recX, recY int,
	dt, duration float64,
) []Point {
	if crossIdx >= len(x0) || recX >= len(x0) || recY >= len(x0) || dt <= 0 {
		return nil
	}
	var pts []Point
	x := x0.Clone()
	for t := 0.0; t < duration; t += dt {
		prev := x
		x = integ.Step(sys, x, t, dt)
		if !x.IsValid() {
			break
		}
		a, b := prev[crossIdx], x[crossIdx]
		if a < threshold && b >= threshold {
			f := (threshold - a) / (b - a)
			pts = append(pts, Point{
				X: prev[recX] + f*(x[recX]-prev[recX]),
				Y: prev[recY] + f*(x[recY]-prev[recY]),
			})
		}
	}
	return pts
}

// Bounds returns the bounding box of pts padded by 10% on each side.
func Bounds(pts []Point) (minX, minY, maxX, maxY float64) {
	if len(pts) == 0 {
		return 0, 0, 1, 1
	}
	minX, maxX = pts[0].X, pts[0].X
	minY, maxY = pts[0].Y, pts[0].Y
	for _, p := range pts {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	rx, ry := maxX-minX, maxY-minY
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = 1
	}
	return minX - rx*0.1, minY - ry*0.1, maxX + rx*0.1, maxY + ry*0.1
}

// PhasePlot renders points as a width×height character plot with axes
// drawn where they cross the visible area.
func PhasePlot(pts []Point, width, height int) string {
	if len(pts) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	grid := plotGrid(pts, width, height, true)
	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func plotGrid(pts []Point, width, height int, axes bool) [][]rune {
	minX, minY, maxX, maxY := Bounds(pts)
	rx, ry := maxX-minX, maxY-minY

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}
	col := func(x float64) int { return int((x - minX) / rx * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-minY)/ry*float64(height-1)) }

	if axes {
		if minX <= 0 && maxX >= 0 {
			c := col(0)
			for r := range grid {
				grid[r][c] = '│'
			}
		}
		if minY <= 0 && maxY >= 0 {
			r := row(0)
			for c := range grid[r] {
				if grid[r][c] == '│' {
					grid[r][c] = '┼'
				} else {
					grid[r][c] = '─'
				}
			}
		}
	}
	for _, p := range pts {
		r, c := row(p.Y), col(p.X)
		if r >= 0 && r < height && c >= 0 && c < width {
			grid[r][c] = '•'
		}
	}
	return grid
}
