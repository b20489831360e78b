package config

import "sort"

// Presets are the built-in starting points per pattern, keyed by pattern id
// then preset name. Values are partial and layer over the defaults.
var Presets = map[string]map[string]map[string]any{
	"cellular-automaton": {
		"sierpinski": {"rule": 90.0, "initialCondition": "center"},
		"chaos":      {"rule": 30.0, "initialCondition": "center"},
		"universal":  {"rule": 110.0, "initialCondition": "random", "cellSize": 3.0},
		"fractal":    {"rule": 150.0, "initialCondition": "center", "aliveColor": "#ffd166"},
	},
	"noise-field": {
		"lava":   {"palette": "fire", "contrast": 1.6, "speed": 1.5},
		"clouds": {"palette": "grayscale", "scale": 0.008, "speed": 0.4},
		"tides":  {"palette": "ocean", "scale": 0.015},
	},
	"pixelated-noise": {
		"retro":  {"pixelSize": 16.0, "palette": "rainbow", "colorIntensity": 0.9},
		"frozen": {"enabled": false, "tint": "#a0e7ff", "colorIntensity": 0.2},
	},
	"curl-flow": {
		"embers": {"palette": "ember", "particleCount": 1500.0, "flowSpeed": 90.0},
		"calm":   {"palette": "ocean", "flowSpeed": 25.0, "trailLength": 12.0},
		"neon":   {"palette": "neon", "particleSize": 2.5, "background": "#000000"},
	},
	"four-pole-gradient": {
		"sunset": {"color1": "#ff7b00", "color2": "#ff006e", "color3": "#3a0ca3", "color4": "#ffbe0b"},
		"still":  {"animation": "none"},
		"drift":  {"animation": "curl", "speed": 0.5, "power": 3.0},
	},
	"quadtree": {
		"spiral":    {"subdivision": "golden", "maxDepth": 8.0},
		"sunflower": {"subdivision": "fibonacci", "colorMode": "halfcircle", "maxDepth": 7.0},
		"checker":   {"subdivision": "checkerboard", "colorMode": "grayscale"},
	},
	"attractor": {
		"classic": {"system": "newton-leipnik", "a": 0.4, "b": 0.175},
		"lorenz":  {"system": "lorenz", "dt": 0.005, "integrator": "rk4"},
		"rossler": {"system": "rossler", "dt": 0.01, "integrator": "rk4", "color": "#ff9f1c"},
	},
}

// GetPreset returns a copy of a built-in preset, or nil.
func GetPreset(pattern, preset string) map[string]any {
	patternPresets, ok := Presets[pattern]
	if !ok {
		return nil
	}
	v, ok := patternPresets[preset]
	if !ok {
		return nil
	}
	out := make(map[string]any, len(v))
	for k, x := range v {
		out[k] = x
	}
	return out
}

// ListPresets returns the built-in preset names for a pattern, sorted.
func ListPresets(pattern string) []string {
	patternPresets, ok := Presets[pattern]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(patternPresets))
	for name := range patternPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
