// Package palette turns seed colors and processing knobs into the immutable
// set of named scales and single colors every theme artifact is built from.
package palette

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"dainty/internal/color"
	"dainty/internal/debug"
	appErrors "dainty/internal/errors"
)

// ScaleSize is the length of every scale in a palette.
const ScaleSize = color.ScaleSize

// AccentScale is the name of the scale that aliases the configured accent.
const AccentScale = "accent"

// DefaultAccent is the scale used for AccentScale when none is configured.
const DefaultAccent = "blues"

// Process holds the numeric knobs applied before scaling.
type Process struct {
	Brighten   int
	Desaturate float64
}

// Options configures Generate.
type Options struct {
	Overrides Seeds
	Process   Process
	Accent    string
}

type scaleSpec struct {
	name       string
	brighten   bool
	desaturate float64 // fraction of Process.Desaturate
}

// scaleSpecs fixes scale order and the per-group sensitivity to the
// processing knobs.
var scaleSpecs = []scaleSpec{
	{name: "grays", brighten: true},
	{name: "blueGrays", brighten: true, desaturate: 1.0 / 32},
	{name: "blues", desaturate: 0.25},
	{name: "bluesLessChrome", desaturate: 0.25},
	{name: "greens", desaturate: 0.25},
	{name: "purples", desaturate: 0.25},
	{name: "oranges", desaturate: 0.25},
}

var colorNames = []string{"blueLighter", "greenLighter", "deepOrangeLighter", "purpleLight", "amberLighter"}

const colorDesaturate = 0.25

// accentCandidates are the scales that may serve as accent.
var accentCandidates = []string{"blues", "bluesLessChrome", "greens", "purples", "oranges"}

// AccentCandidates returns the scale names accepted for Options.Accent.
func AccentCandidates() []string {
	return slices.Clone(accentCandidates)
}

// Palette is the generated result. It is never mutated after Generate returns.
type Palette struct {
	scaleNames []string
	scales     map[string][]string
	colorNames []string
	colors     map[string]string
	accent     string
}

// Generate merges overrides into the default seeds, applies the processing
// knobs and expands every group into a ScaleSize scale.
func Generate(opts Options) (*Palette, error) {
	defer debug.Span("palette.Generate")()

	accent := strings.TrimSpace(opts.Accent)
	if accent == "" {
		accent = DefaultAccent
	}
	if !slices.Contains(accentCandidates, accent) {
		return nil, appErrors.At(appErrors.CodeMalformedValue, "colors.accent",
			fmt.Sprintf("unknown accent scale %q (expected one of %s)", accent, strings.Join(accentCandidates, ", ")), nil)
	}

	seeds := Merge(DefaultSeeds(), opts.Overrides)
	amount := opts.Process.Desaturate

	p := &Palette{
		scales: make(map[string][]string, len(scaleSpecs)+1),
		colors: make(map[string]string, len(colorNames)),
		accent: accent,
	}

	for _, spec := range scaleSpecs {
		group := seeds.Scales[spec.name]
		var err error
		if spec.brighten {
			group, err = color.Brighten(group, opts.Process.Brighten)
			if err != nil {
				path := "colors.overrides." + spec.name
				if opts.Process.Brighten < 0 || opts.Process.Brighten >= ScaleSize {
					path = "colors.process.brighten"
				}
				return nil, wrapSeedError(err, path, spec.name)
			}
		}
		if spec.desaturate != 0 {
			group, err = color.DesaturateAll(group, amount*spec.desaturate)
			if err != nil {
				return nil, wrapSeedError(err, "colors.overrides."+spec.name, spec.name)
			}
		}
		scale, err := color.Scale(group, ScaleSize)
		if err != nil {
			return nil, wrapSeedError(err, "colors.overrides."+spec.name, spec.name)
		}
		p.scaleNames = append(p.scaleNames, spec.name)
		p.scales[spec.name] = scale
	}
	p.scaleNames = append(p.scaleNames, AccentScale)
	p.scales[AccentScale] = p.scales[accent]

	for _, name := range colorNames {
		hex, err := color.Desaturate(seeds.Colors[name], amount*colorDesaturate)
		if err != nil {
			return nil, wrapSeedError(err, "colors.overrides."+name, name)
		}
		p.colorNames = append(p.colorNames, name)
		p.colors[name] = hex
	}

	debug.Logf("palette: %d scales, %d colors, accent=%s", len(p.scaleNames), len(p.colorNames), accent)
	return p, nil
}

func wrapSeedError(err error, path, group string) error {
	return appErrors.At(appErrors.CodeOf(err), path, fmt.Sprintf("generate %s: %v", group, err), err)
}

// ScaleNames returns scale names in generation order, accent last.
func (p *Palette) ScaleNames() []string { return slices.Clone(p.scaleNames) }

// ColorNames returns single color names in generation order.
func (p *Palette) ColorNames() []string { return slices.Clone(p.colorNames) }

// Accent returns the name of the scale aliased by AccentScale.
func (p *Palette) Accent() string { return p.accent }

// Scale returns a copy of the named scale.
func (p *Palette) Scale(name string) ([]string, bool) {
	s, ok := p.scales[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(s), true
}

// At returns step i of the named scale.
func (p *Palette) At(name string, i int) (string, bool) {
	s, ok := p.scales[name]
	if !ok || i < 0 || i >= len(s) {
		return "", false
	}
	return s[i], true
}

// Color returns the named single color.
func (p *Palette) Color(name string) (string, bool) {
	c, ok := p.colors[name]
	return c, ok
}

// Lookup resolves a reference against the palette.
func (p *Palette) Lookup(ref Ref) (string, bool) {
	if ref.Indexed {
		return p.At(ref.Name, ref.Index)
	}
	return p.Color(ref.Name)
}

// MarshalJSON writes scales and colors with stable key order.
func (p *Palette) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteString(`{"accent":`)
	writeJSON(&b, p.accent)
	b.WriteString(`,"scales":{`)
	for i, name := range p.scaleNames {
		if i > 0 {
			b.WriteByte(',')
		}
		writeJSON(&b, name)
		b.WriteByte(':')
		writeJSON(&b, p.scales[name])
	}
	b.WriteString(`},"colors":{`)
	for i, name := range p.colorNames {
		if i > 0 {
			b.WriteByte(',')
		}
		writeJSON(&b, name)
		b.WriteByte(':')
		writeJSON(&b, p.colors[name])
	}
	b.WriteString("}}")
	return []byte(b.String()), nil
}

func writeJSON(b *strings.Builder, v any) {
	data, _ := json.Marshal(v)
	b.Write(data)
}
