package palette

import (
	"maps"
	"slices"
	"sort"

	"dainty/internal/color"
)

// Seeds holds the anchor colors a palette is generated from. Scales map a
// group name to 2-3 seeds ordered darkest first; Colors map a name to a
// single color.
type Seeds struct {
	Scales map[string][]string
	Colors map[string]string
}

var defaultSeeds = Seeds{
	Scales: map[string][]string{
		// Material Grey 900, Material Grey 50
		"grays": {"#212121", "#fafafa"},
		// Material Theme Ocean, Material Blue 50
		"blueGrays": {"#0f111a", color.MustDesaturate("#e3f2fd", 0.15625)},
		// Custom, Material Blue 700, Material Blue 50
		"blues": {"#082847", "#1976d2", "#e3f2fd"},
		"bluesLessChrome": {
			color.MustDesaturate("#082847", 0.5),
			color.MustDesaturate("#1976d2", 0.5),
			color.MustDesaturate("#e3f2fd", 0.5),
		},
		// Custom, Material Green 700, Material Green 50
		"greens": {"#0b2a13", "#388e3c", "#e8f5e9"},
		// Custom, Material Purple 700, Material Purple 50
		"purples": {"#260b2e", "#7b1fa2", "#f3e5f5"},
		// Custom, Material Deep Orange 700, Material Deep Orange 50
		"oranges": {"#2e130a", "#e64a19", "#fbe9e7"},
	},
	Colors: map[string]string{
		// Material Blue A100
		"blueLighter": "#82b1ff",
		// Material Green A100
		"greenLighter": "#b9f6ca",
		// Custom
		"deepOrangeLighter": "#e4b8a9",
		// Material Purple 200
		"purpleLight": "#ce93d8",
		// Material Amber 100
		"amberLighter": "#ffecb3",
	},
}

// DefaultSeeds returns a fresh copy of the built-in seeds.
func DefaultSeeds() Seeds {
	return defaultSeeds.Clone()
}

// Clone deep-copies s.
func (s Seeds) Clone() Seeds {
	out := Seeds{
		Scales: make(map[string][]string, len(s.Scales)),
		Colors: maps.Clone(s.Colors),
	}
	if out.Colors == nil {
		out.Colors = map[string]string{}
	}
	for name, seeds := range s.Scales {
		out.Scales[name] = slices.Clone(seeds)
	}
	return out
}

// Merge layers overrides over defaults. The result has exactly the keys of
// defaults; an override wins only when it is present and non-empty.
func Merge(defaults, overrides Seeds) Seeds {
	out := Seeds{
		Scales: make(map[string][]string, len(defaults.Scales)),
		Colors: make(map[string]string, len(defaults.Colors)),
	}
	for name, seeds := range defaults.Scales {
		if o := overrides.Scales[name]; len(o) > 0 {
			seeds = o
		}
		out.Scales[name] = slices.Clone(seeds)
	}
	for name, hex := range defaults.Colors {
		if o := overrides.Colors[name]; o != "" {
			hex = o
		}
		out.Colors[name] = hex
	}
	return out
}

// UnknownKeys lists override names that Merge ignores because defaults has
// no such scale or color, sorted.
func UnknownKeys(defaults, overrides Seeds) []string {
	var unknown []string
	for name := range overrides.Scales {
		if _, ok := defaults.Scales[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	for name := range overrides.Colors {
		if _, ok := defaults.Colors[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}
