// Package catalog wires every pattern generator into one registry.
package catalog

import (
	"github.com/san-kum/genlab/internal/generators/attractor"
	"github.com/san-kum/genlab/internal/generators/automaton"
	"github.com/san-kum/genlab/internal/generators/flow"
	"github.com/san-kum/genlab/internal/generators/gradient"
	"github.com/san-kum/genlab/internal/generators/noisefield"
	"github.com/san-kum/genlab/internal/generators/pixelnoise"
	"github.com/san-kum/genlab/internal/generators/quadtree"
	"github.com/san-kum/genlab/internal/pattern"
)

// DefaultPattern is shown when nothing else is selected.
const DefaultPattern = automaton.ID

// New returns a registry with all patterns in showcase order.
func New() *pattern.Registry {
	r := pattern.NewRegistry()
	r.Register(automaton.Descriptor())
	r.Register(noisefield.Descriptor())
	r.Register(pixelnoise.Descriptor())
	r.Register(flow.Descriptor())
	r.Register(gradient.Descriptor())
	r.Register(quadtree.Descriptor())
	r.Register(attractor.Descriptor())
	return r
}
