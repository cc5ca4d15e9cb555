package config

import "sort"

// Preset is a named pair of slider values for one pattern.
type Preset struct {
	Param1 float64 `yaml:"param1"`
	Param2 float64 `yaml:"param2"`
}

var Presets = map[string]map[string]*Preset{
	"hypercube": {
		"still":  {Param1: 0, Param2: 0},
		"tumble": {Param1: 0.25, Param2: 0.75},
	},
	"clifford": {
		"classic": {Param1: 0.2, Param2: 0.8},
		"veil":    {Param1: 0.1, Param2: 0.35},
		"knot":    {Param1: 0.8, Param2: 0.2},
	},
	"fibonacci": {
		"compact": {Param1: 0.1, Param2: 0.3},
		"wide":    {Param1: 0.9, Param2: 0.6},
	},
	"mandelbrot": {
		"overview": {Param1: 0.2, Param2: 0},
		"deep":     {Param1: 1, Param2: 0.5},
	},
	"lorenz": {
		"calm":   {Param1: 0.3, Param2: 0.1},
		"frenzy": {Param1: 0.6, Param2: 1},
	},
	"voronoi": {
		"frozen":   {Param1: 0.5, Param2: 0},
		"drifting": {Param1: 0.5, Param2: 1},
	},
	"penrose": {
		"small": {Param1: 0.1, Param2: 0.2},
		"spin":  {Param1: 0.6, Param2: 1},
	},
	"platonic": {
		"tetrahedron":  {Param1: 0.1, Param2: 0.5},
		"cube":         {Param1: 0.3, Param2: 0.5},
		"octahedron":   {Param1: 0.5, Param2: 0.5},
		"dodecahedron": {Param1: 0.7, Param2: 0.5},
		"icosahedron":  {Param1: 0.9, Param2: 0.5},
	},
	"wave": {
		"ripple": {Param1: 0.1, Param2: 0.2},
		"storm":  {Param1: 1, Param2: 1},
	},
	"turing": {
		"spots":   {Param1: 0.2, Param2: 0.1},
		"stripes": {Param1: 0.8, Param2: 0.9},
	},
	"lissajous": {
		"circle":  {Param1: 0, Param2: 0.5},
		"knot":    {Param1: 0.5, Param2: 0.25},
		"complex": {Param1: 0.95, Param2: 0.1},
	},
	"hyperbolic": {
		"sparse": {Param1: 0.2, Param2: 0.1},
		"dense":  {Param1: 0.5, Param2: 0.9},
	},
}

// GetPreset returns nil when the pattern or preset is unknown.
func GetPreset(pattern, name string) *Preset {
	patternPresets, ok := Presets[pattern]
	if !ok {
		return nil
	}
	p, ok := patternPresets[name]
	if !ok {
		return nil
	}
	return p
}

// ListPresets returns the preset names for pattern, sorted.
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
