// Package session holds the interactive state shared by the terminal and
// window front-ends: the selected pattern, its live generator and control
// values, the focused control and the clock.
package session

import (
	"fmt"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/genlab/internal/logx"
	"github.com/san-kum/genlab/internal/loop"
	"github.com/san-kum/genlab/internal/palette"
	"github.com/san-kum/genlab/internal/pattern"
	"github.com/san-kum/genlab/internal/preset"
)

type Session struct {
	reg    *pattern.Registry
	desc   *pattern.Descriptor
	gen    pattern.Generator
	values pattern.Values
	clock  *loop.Clock
	fps    int
	focus  int

	Paused bool
}

// New starts a session on pattern id with values laid over its defaults.
func New(reg *pattern.Registry, id string, values pattern.Values, fps int) (*Session, error) {
	s := &Session{reg: reg, fps: fps, clock: loop.NewClock(fps)}
	if err := s.load(id, values); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) load(id string, values pattern.Values) error {
	d, err := s.reg.Get(id)
	if err != nil {
		return err
	}
	gen, nv, err := d.Instantiate(values)
	if err != nil {
		return err
	}
	s.desc, s.gen, s.values = d, gen, nv
	s.focus = 0
	s.clock.Reset()
	logx.Logger().Debug("pattern selected", "pattern", id)
	return nil
}

// Select swaps in a fresh generator for id with default values.
func (s *Session) Select(id string) error { return s.load(id, nil) }

// Cycle moves delta patterns through the registry order, wrapping.
func (s *Session) Cycle(delta int) error {
	ids := s.reg.IDs()
	i := slices.Index(ids, s.desc.ID)
	n := len(ids)
	return s.Select(ids[((i+delta)%n+n)%n])
}

func (s *Session) Descriptor() *pattern.Descriptor { return s.desc }
func (s *Session) Generator() pattern.Generator    { return s.gen }
func (s *Session) Values() pattern.Values          { return s.values.Clone() }

// Step advances the generator one tick unless paused.
func (s *Session) Step() {
	if !s.Paused {
		s.gen.Update(s.clock.Next())
	}
}

// Set coerces and applies one control value.
func (s *Session) Set(id string, v any) error {
	c, ok := s.desc.Control(id)
	if !ok {
		return fmt.Errorf("%w: %s.%s", pattern.ErrUnknownControl, s.desc.ID, id)
	}
	cv, err := c.Coerce(v)
	if err != nil {
		return err
	}
	s.values[id] = cv
	s.gen.Configure(s.values.Clone())
	return nil
}

// Apply replaces every value, as when a preset is loaded.
func (s *Session) Apply(values pattern.Values) error {
	nv, err := s.desc.Normalize(values)
	if err != nil {
		return err
	}
	s.values = nv
	s.gen.Configure(nv.Clone())
	return nil
}

// Dispatch runs a button action and folds any values it reports back into
// the record.
func (s *Session) Dispatch(action string) error {
	d, ok := s.gen.(pattern.Dispatcher)
	if !ok {
		return fmt.Errorf("%w: %s", pattern.ErrUnknownAction, action)
	}
	patch, err := d.Dispatch(action)
	if err != nil {
		return err
	}
	for k, v := range patch {
		s.values[k] = v
	}
	return nil
}

// Focused returns the control under the cursor.
func (s *Session) Focused() (pattern.Control, int) {
	return s.desc.Controls[s.focus], s.focus
}

// Focus moves the cursor delta controls, wrapping.
func (s *Session) Focus(delta int) {
	n := len(s.desc.Controls)
	s.focus = ((s.focus+delta)%n + n) % n
}

// Nudge changes the focused control by dir steps: ranges move by their step
// (ten steps when coarse), selects cycle, checkboxes toggle and colours
// rotate their hue. Buttons ignore it.
func (s *Session) Nudge(dir int, coarse bool) error {
	c, _ := s.Focused()
	cur := s.values[c.ID]
	switch c.Type {
	case pattern.Range:
		step := 1.0
		if c.Step != nil {
			step = *c.Step
		}
		if coarse {
			step *= 10
		}
		return s.Set(c.ID, s.values.Float(c.ID, 0)+float64(dir)*step)
	case pattern.Select:
		i := slices.Index(c.Options, s.values.String(c.ID, ""))
		n := len(c.Options)
		return s.Set(c.ID, c.Options[((i+dir)%n+n)%n])
	case pattern.Checkbox:
		b, _ := cur.(bool)
		return s.Set(c.ID, !b)
	case pattern.Color:
		col := s.values.Color(c.ID, palette.MustParse("#808080"))
		cf, _ := colorful.MakeColor(col)
		h, sat, l := cf.Hsl()
		if sat < 0.05 {
			sat = 0.6
		}
		l = min(max(l, 0.2), 0.8)
		step := 15.0
		if coarse {
			step = 60
		}
		h += float64(dir) * step
		for h < 0 {
			h += 360
		}
		return s.Set(c.ID, colorful.Hsl(h, sat, l).Clamped().Hex())
	}
	return nil
}

// Activate presses the focused control: buttons dispatch, everything else
// nudges forward.
func (s *Session) Activate() error {
	c, _ := s.Focused()
	if c.Type == pattern.Button {
		return s.Dispatch(c.ID)
	}
	return s.Nudge(1, false)
}

// Reset restores the defaults of the current pattern.
func (s *Session) Reset() error { return s.load(s.desc.ID, nil) }

// Save stores the current values as a named preset.
func (s *Session) Save(store *preset.Store, name string) (preset.Preset, error) {
	return store.Save(name, s.desc.ID, s.values)
}

// Load switches to the preset's pattern and applies its values.
func (s *Session) Load(p preset.Preset) error {
	if p.GeneratorType != s.desc.ID {
		if err := s.Select(p.GeneratorType); err != nil {
			return err
		}
	}
	return s.Apply(p.Parameters)
}

// FormatValue renders a control value for display.
func FormatValue(c pattern.Control, v any) string {
	switch c.Type {
	case pattern.Range:
		f, _ := v.(float64)
		if c.Step != nil && *c.Step >= 1 {
			return fmt.Sprintf("%.0f", f)
		}
		return fmt.Sprintf("%.3g", f)
	case pattern.Checkbox:
		if b, _ := v.(bool); b {
			return "on"
		}
		return "off"
	case pattern.Button:
		return "[press]"
	}
	return fmt.Sprint(v)
}
