// Package automaton implements one-dimensional elementary cellular automata
// (Wolfram rules 0–255) projected vertically: each generation is a row and
// rows scroll from top to bottom.
package automaton

import "math/rand"

// Next computes the generation after row under rule. Each cell's
// neighbourhood (left, self, right) wraps at the row edges and forms the
// index left·4 + center·2 + right into the rule's bits.
func Next(rule uint8, row []uint8) []uint8 {
	w := len(row)
	next := make([]uint8, w)
	for x := 0; x < w; x++ {
		next[x] = Cell(rule, row[(x-1+w)%w], row[x], row[(x+1)%w])
	}
	return next
}

// Cell evaluates rule on one neighbourhood.
func Cell(rule uint8, left, center, right uint8) uint8 {
	idx := (left&1)<<2 | (center&1)<<1 | right&1
	return (rule >> idx) & 1
}

// Initial conditions for the first row.
const (
	SeedLeft   = "left"
	SeedCenter = "center"
	SeedRandom = "random"
)

// RandomDensity is the probability of a live cell in a random first row.
const RandomDensity = 0.1

// Seed builds the first row.
func Seed(width int, mode string, rng *rand.Rand) []uint8 {
	row := make([]uint8, width)
	if width == 0 {
		return row
	}
	switch mode {
	case SeedLeft:
		row[0] = 1
	case SeedRandom:
		for i := range row {
			if rng.Float64() < RandomDensity {
				row[i] = 1
			}
		}
	default:
		row[width/2] = 1
	}
	return row
}

// Density is the fraction of live cells in row.
func Density(row []uint8) float64 {
	if len(row) == 0 {
		return 0
	}
	n := 0
	for _, c := range row {
		n += int(c)
	}
	return float64(n) / float64(len(row))
}
