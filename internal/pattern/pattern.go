package pattern

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"github.com/san-kum/genlab/internal/palette"
)

// Tick is the per-frame input to a generator: a fixed-rate clock.
type Tick struct {
	Frame   int
	Elapsed float64 // seconds since the generator was configured
	Dt      float64 // seconds since the previous tick
}

// Generator is one self-contained visual algorithm. Update advances internal
// state (time accumulators, history buffers) and Draw rasterises the current
// state into dst. A generator is owned by one goroutine; Update and Draw
// are never called concurrently.
type Generator interface {
	Configure(v Values)
	Update(t Tick)
	Draw(dst *image.RGBA)
}

// Dispatcher is implemented by generators with button controls. Dispatch
// returns the control values the action changed, if any, so the owner can
// merge them into its record.
type Dispatcher interface {
	Dispatch(action string) (Values, error)
}

// Resizer is implemented by generators whose state depends on the surface
// size. Owners call Resize before the first Update and whenever the surface
// changes.
type Resizer interface {
	Resize(width, height int)
}

// Descriptor registers a pattern: identity, controls and constructor.
type Descriptor struct {
	ID          string
	Name        string
	Description string
	Controls    []Control
	New         func() Generator
}

// Control looks up a control by id.
func (d *Descriptor) Control(id string) (Control, bool) {
	for _, c := range d.Controls {
		if c.ID == id {
			return c, true
		}
	}
	return Control{}, false
}

// Defaults returns a fresh value record with every valued control at its
// default.
func (d *Descriptor) Defaults() Values {
	v := make(Values, len(d.Controls))
	for _, c := range d.Controls {
		if c.HasValue() {
			v[c.ID] = c.Default
		}
	}
	return v
}

// Normalize coerces every entry of v, fills missing controls with defaults
// and rejects ids the pattern does not declare.
func (d *Descriptor) Normalize(v Values) (Values, error) {
	out := d.Defaults()
	for k, raw := range v {
		c, ok := d.Control(k)
		if !ok || !c.HasValue() {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownControl, d.ID, k)
		}
		cv, err := c.Coerce(raw)
		if err != nil {
			return nil, err
		}
		out[k] = cv
	}
	return out, nil
}

// Match reports whether v has exactly the pattern's valued controls as keys.
func (d *Descriptor) Match(v Values) bool {
	n := 0
	for _, c := range d.Controls {
		if !c.HasValue() {
			continue
		}
		if _, ok := v[c.ID]; !ok {
			return false
		}
		n++
	}
	return n == len(v)
}

// Instantiate builds and configures a generator from a (possibly partial)
// value record.
func (d *Descriptor) Instantiate(v Values) (Generator, Values, error) {
	nv, err := d.Normalize(v)
	if err != nil {
		return nil, nil, err
	}
	g := d.New()
	g.Configure(nv)
	return g, nv, nil
}

// Values maps control id to the current value.
type Values map[string]any

// Clone returns a shallow copy; all stored values are immutable scalars.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, x := range v {
		out[k] = x
	}
	return out
}

func (v Values) Float(id string, def float64) float64 {
	f, err := toFloat(v[id])
	if err != nil {
		return def
	}
	return f
}

func (v Values) Int(id string, def int) int {
	f, err := toFloat(v[id])
	if err != nil {
		return def
	}
	return int(f + 0.5)
}

func (v Values) Bool(id string, def bool) bool {
	if b, ok := v[id].(bool); ok {
		return b
	}
	return def
}

func (v Values) String(id, def string) string {
	if s, ok := v[id].(string); ok {
		return s
	}
	return def
}

// Color parses a colour value, returning def when missing or invalid.
func (v Values) Color(id string, def color.RGBA) color.RGBA {
	s, ok := v[id].(string)
	if !ok {
		return def
	}
	c, err := palette.Parse(s)
	if err != nil {
		return def
	}
	return c
}

// Keys returns the ids in sorted order.
func (v Values) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Fill paints every pixel of dst with c.
func Fill(dst *image.RGBA, c color.RGBA) {
	b := dst.Bounds()
	if b.Empty() {
		return
	}
	row := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y):]
	w := b.Dx()
	for x := 0; x < w; x++ {
		i := x * 4
		row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
	}
	first := row[:w*4]
	for y := b.Min.Y + 1; y < b.Max.Y; y++ {
		copy(dst.Pix[dst.PixOffset(b.Min.X, y):], first)
	}
}

// FillRect paints r ∩ dst.Bounds() with c.
func FillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Pix[off], dst.Pix[off+1], dst.Pix[off+2], dst.Pix[off+3] = c.R, c.G, c.B, c.A
			off += 4
		}
	}
}
