package pattern

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/genlab/internal/mathx"
	"github.com/san-kum/genlab/internal/palette"
)

// ControlType enumerates the kinds of tunable parameter.
type ControlType string

const (
	Range    ControlType = "range"
	Select   ControlType = "select"
	Checkbox ControlType = "checkbox"
	Color    ControlType = "color"
	Button   ControlType = "button"
)

// Control describes one tunable parameter of a pattern. Its JSON form is the
// descriptor consumed by front-ends to build inputs.
type Control struct {
	ID      string      `json:"id"`
	Label   string      `json:"label"`
	Type    ControlType `json:"type"`
	Min     *float64    `json:"min,omitempty"`
	Max     *float64    `json:"max,omitempty"`
	Step    *float64    `json:"step,omitempty"`
	Default any         `json:"defaultValue"`
	Options []string    `json:"options,omitempty"`
}

// RangeControl builds a numeric slider.
func RangeControl(id, label string, min, max, step, def float64) Control {
	return Control{ID: id, Label: label, Type: Range, Min: &min, Max: &max, Step: &step, Default: def}
}

// SelectControl builds an enumerated choice.
func SelectControl(id, label string, def string, options ...string) Control {
	return Control{ID: id, Label: label, Type: Select, Default: def, Options: options}
}

func CheckboxControl(id, label string, def bool) Control {
	return Control{ID: id, Label: label, Type: Checkbox, Default: def}
}

func ColorControl(id, label, def string) Control {
	return Control{ID: id, Label: label, Type: Color, Default: def}
}

// ButtonControl declares an action. Buttons carry no value; front-ends
// dispatch them with Generator.Dispatch.
func ButtonControl(id, label string) Control {
	return Control{ID: id, Label: label, Type: Button}
}

// HasValue reports whether the control contributes to a value record.
func (c Control) HasValue() bool {
	return c.Type != Button
}

// Coerce converts v into the canonical Go type for this control: float64 for
// ranges, bool for checkboxes, string for selects and #rrggbb for colours.
func (c Control) Coerce(v any) (any, error) {
	switch c.Type {
	case Range:
		f, err := toFloat(v)
		if err != nil {
			return nil, c.errorf("%v", err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, c.errorf("not a finite number")
		}
		if c.Min != nil && c.Max != nil {
			f = mathx.Clamp(f, *c.Min, *c.Max)
		}
		return f, nil
	case Checkbox:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			p, err := strconv.ParseBool(b)
			if err != nil {
				return nil, c.errorf("want boolean, got %q", b)
			}
			return p, nil
		}
		return nil, c.errorf("want boolean, got %T", v)
	case Select:
		s, ok := v.(string)
		if !ok {
			return nil, c.errorf("want string, got %T", v)
		}
		for _, o := range c.Options {
			if o == s {
				return s, nil
			}
		}
		return nil, c.errorf("%q is not one of %s", s, strings.Join(c.Options, ", "))
	case Color:
		s, ok := v.(string)
		if !ok {
			return nil, c.errorf("want colour string, got %T", v)
		}
		hex, err := palette.Canonical(s)
		if err != nil {
			return nil, c.errorf("%v", err)
		}
		return hex, nil
	case Button:
		return nil, fmt.Errorf("%s: %w", c.ID, ErrNotAValue)
	}
	return nil, c.errorf("unknown control type %q", c.Type)
}

// Parse coerces the string form used on the command line and in query
// strings.
func (c Control) Parse(s string) (any, error) {
	if c.Type == Range {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, c.errorf("want number, got %q", s)
		}
		return c.Coerce(f)
	}
	return c.Coerce(s)
}

func (c Control) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidValue, c.ID, fmt.Sprintf(format, args...))
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	}
	return 0, fmt.Errorf("want number, got %T", v)
}
