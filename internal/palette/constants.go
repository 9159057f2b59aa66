package palette

import (
	"fmt"
	"strings"
	"unicode"
)

// Ref points at a palette entry: a scale step when Indexed, otherwise a
// single color.
type Ref struct {
	Name    string
	Index   int
	Indexed bool
}

// ScaleRef references step i of a scale.
func ScaleRef(name string, i int) Ref {
	return Ref{Name: name, Index: i, Indexed: true}
}

// ColorRef references a single color.
func ColorRef(name string) Ref {
	return Ref{Name: name}
}

// Constant returns the SCREAMING_SNAKE name users write in configuration.
func (r Ref) Constant() string {
	if r.Indexed {
		return fmt.Sprintf("%s_%d", constantCase(r.Name), r.Index)
	}
	return constantCase(r.Name)
}

func (r Ref) String() string {
	if r.Indexed {
		return fmt.Sprintf("%s[%d]", r.Name, r.Index)
	}
	return r.Name
}

// Constant is a named palette entry.
type Constant struct {
	Name string
	Ref  Ref
	Hex  string
}

// Constants lists every scale step and single color, scales first.
func (p *Palette) Constants() []Constant {
	out := make([]Constant, 0, len(p.scaleNames)*ScaleSize+len(p.colorNames))
	for _, name := range p.scaleNames {
		for i, hex := range p.scales[name] {
			ref := ScaleRef(name, i)
			out = append(out, Constant{Name: ref.Constant(), Ref: ref, Hex: hex})
		}
	}
	for _, name := range p.colorNames {
		ref := ColorRef(name)
		out = append(out, Constant{Name: ref.Constant(), Ref: ref, Hex: p.colors[name]})
	}
	return out
}

// ConstantIndex maps constant names to references.
type ConstantIndex map[string]Ref

// Index builds the constant lookup table for p.
func (p *Palette) Index() ConstantIndex {
	constants := p.Constants()
	idx := make(ConstantIndex, len(constants))
	for _, c := range constants {
		idx[c.Name] = c.Ref
	}
	return idx
}

// Names returns every constant name, unordered.
func (idx ConstantIndex) Names() []string {
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	return names
}

func constantCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
