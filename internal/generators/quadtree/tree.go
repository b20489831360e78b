// Package quadtree recursively subdivides a square and colours the leaves.
package quadtree

import (
	"math"
)

// Node is a square cell of the tree.
type Node struct {
	X, Y  float64
	Size  float64
	Depth int
}

func (n Node) Center() (float64, float64) {
	return n.X + n.Size/2, n.Y + n.Size/2
}

func (n Node) Contains(x, y float64) bool {
	return x >= n.X && x < n.X+n.Size && y >= n.Y && y < n.Y+n.Size
}

// Children returns the four quadrants in reading order.
func (n Node) Children() [4]Node {
	h := n.Size / 2
	d := n.Depth + 1
	return [4]Node{
		{n.X, n.Y, h, d},
		{n.X + h, n.Y, h, d},
		{n.X, n.Y + h, h, d},
		{n.X + h, n.Y + h, h, d},
	}
}

// Predicate decides whether a node is split further.
type Predicate func(n Node) bool

// Build subdivides the square [0,size)² while pred holds and returns the
// leaves. No leaf is deeper than maxDepth.
func Build(size float64, maxDepth int, pred Predicate) []Node {
	var leaves []Node
	stack := []Node{{Size: size}}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Depth >= maxDepth || !pred(n) {
			leaves = append(leaves, n)
			continue
		}
		ch := n.Children()
		for i := len(ch) - 1; i >= 0; i-- {
			stack = append(stack, ch[i])
		}
	}
	return leaves
}

// Subdivision schemes.
const (
	Uniform      = "uniform"
	Golden       = "golden"
	Checkerboard = "checkerboard"
	Fibonacci    = "fibonacci"
	Center       = "center"
)

var Schemes = []string{Uniform, Golden, Checkerboard, Fibonacci, Center}

// Phi is the golden ratio.
var Phi = (1 + math.Sqrt(5)) / 2

// GoldenAngle in radians.
var GoldenAngle = math.Pi * (3 - math.Sqrt(5))

// PredicateFor returns the scheme's split rule for a square of side size.
// Unknown names fall back to uniform.
func PredicateFor(scheme string, size float64) Predicate {
	switch scheme {
	case Golden:
		return containsAny(spiralPoints(size))
	case Fibonacci:
		return containsAny(sunflowerPoints(size, 180))
	case Checkerboard:
		return func(n Node) bool {
			if n.Depth == 0 {
				return true
			}
			ix := int(math.Round(n.X / n.Size))
			iy := int(math.Round(n.Y / n.Size))
			return (ix+iy)%2 == 0
		}
	case Center:
		return func(n Node) bool {
			cx, cy := n.Center()
			return math.Hypot(cx-size/2, cy-size/2) < n.Size*1.2
		}
	}
	return func(Node) bool { return true }
}

func containsAny(pts [][2]float64) Predicate {
	return func(n Node) bool {
		for _, p := range pts {
			if n.Contains(p[0], p[1]) {
				return true
			}
		}
		return false
	}
}

// spiralPoints samples the logarithmic spiral that grows by φ every quarter
// turn, centred on the square.
func spiralPoints(size float64) [][2]float64 {
	var pts [][2]float64
	c := size / 2
	b := math.Log(Phi) / (math.Pi / 2)
	for th := 0.0; ; th += 0.02 {
		r := 1.0 * math.Exp(b*th)
		if r > size {
			break
		}
		x, y := c+r*math.Cos(th), c+r*math.Sin(th)
		if x >= 0 && x < size && y >= 0 && y < size {
			pts = append(pts, [2]float64{x, y})
		}
	}
	return pts
}

// sunflowerPoints is Vogel's model: point k at radius ∝ √k and angle
// k·golden angle.
func sunflowerPoints(size float64, n int) [][2]float64 {
	pts := make([][2]float64, 0, n)
	c := size / 2
	scale := size / 2 / math.Sqrt(float64(n))
	for k := 0; k < n; k++ {
		r := scale * math.Sqrt(float64(k)+0.5)
		th := float64(k) * GoldenAngle
		pts = append(pts, [2]float64{c + r*math.Cos(th), c + r*math.Sin(th)})
	}
	return pts
}
