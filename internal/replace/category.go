package replace

import (
	"encoding/json"
	"strings"

	"dainty/internal/debug"
	"dainty/internal/ordered"
	"dainty/internal/palette"
)

// Cell is a resolved (background, text) pair. Empty strings mean "leave
// the original color unchanged".
type Cell struct {
	Background string `json:"background,omitempty"`
	Text       string `json:"text,omitempty"`
}

// CategoryTable is the resolved, variant-selected category output.
type CategoryTable struct {
	categories *ordered.Map[string, *ordered.Map[string, Cell]]
	Used       Usage
}

// Categories returns category names in order.
func (t *CategoryTable) Categories() []string { return t.categories.Keys() }

// Keys returns the keys of category in order.
func (t *CategoryTable) Keys(category string) []string {
	keys, ok := t.categories.Get(category)
	if !ok {
		return nil
	}
	return keys.Keys()
}

// Get returns a resolved cell.
func (t *CategoryTable) Get(category, key string) (Cell, bool) {
	keys, ok := t.categories.Get(category)
	if !ok {
		return Cell{}, false
	}
	return keys.Get(key)
}

// Len counts cells across all categories.
func (t *CategoryTable) Len() int {
	n := 0
	for _, keys := range t.categories.All() {
		n += keys.Len()
	}
	return n
}

// MarshalJSON writes categories and keys in table order.
func (t *CategoryTable) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for category, keys := range t.categories.All() {
		if !first {
			b.WriteByte(',')
		}
		first = false
		name, _ := json.Marshal(category)
		b.Write(name)
		b.WriteString(":{")
		for i, key := range keys.Keys() {
			if i > 0 {
				b.WriteByte(',')
			}
			cell, _ := keys.Get(key)
			k, _ := json.Marshal(key)
			v, err := json.Marshal([2]*string{nullable(cell.Background), nullable(cell.Text)})
			if err != nil {
				return nil, err
			}
			b.Write(k)
			b.WriteByte(':')
			b.Write(v)
		}
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ParseCategoryRule validates the [[darkBg, darkText], [lightBg, lightText]]
// shape of one override and converts its leaves.
func ParseCategoryRule(o CategoryOverride, constants palette.ConstantIndex) (CategoryRule, error) {
	outer, ok := asPair(o.Value)
	if !ok {
		return CategoryRule{}, categoryShapeError(o.Category, o.Key)
	}
	var tuples [2]Tuple
	for variant, rawTuple := range outer {
		inner, ok := asPair(rawTuple)
		if !ok {
			return CategoryRule{}, categoryTupleError(o.Category, o.Key, variant)
		}
		for slot, leaf := range inner {
			v, err := ParseValue(leaf, constants)
			if err != nil {
				return CategoryRule{}, categorySlotError(o.Category, o.Key, variant, slot, err)
			}
			tuples[variant][slot] = v
		}
	}
	return CategoryRule{Dark: tuples[0], Light: tuples[1]}, nil
}

// ResolveCategories merges overrides over a copy of base, selects variant and
// resolves every reference against p. base is never modified.
func ResolveCategories(base *CategoryRules, overrides []CategoryOverride, p *palette.Palette, variant Variant) (*CategoryTable, error) {
	defer debug.Span("replace.ResolveCategories")()

	constants := p.Index()
	merged := base.Clone()
	for _, o := range overrides {
		rule, err := ParseCategoryRule(o, constants)
		if err != nil {
			return nil, err
		}
		merged.Set(o.Category, o.Key, rule)
	}

	out := &CategoryTable{categories: ordered.New[string, *ordered.Map[string, Cell]](merged.categories.Len())}
	for category, keys := range merged.categories.All() {
		cells := ordered.New[string, Cell](keys.Len())
		for key, rule := range keys.All() {
			tuple := rule.Select(variant)
			var resolved [2]string
			for slot, v := range tuple {
				hex, err := v.Resolve(p)
				if err != nil {
					return nil, baseResolveError(categoryPath(category, key), err)
				}
				resolved[slot] = hex
				if ref, ok := v.Ref(); ok {
					out.Used = append(out.Used, ref)
				}
			}
			cells.Set(key, Cell{Background: resolved[0], Text: resolved[1]})
		}
		out.categories.Set(category, cells)
	}
	debug.Logf("categories: %d rules (%d overrides), variant=%s", out.Len(), len(overrides), variant)
	return out, nil
}

// asPair accepts a 2-element list as decoded from yaml or json.
func asPair(raw any) ([2]any, bool) {
	switch v := raw.(type) {
	case []any:
		if len(v) == 2 {
			return [2]any{v[0], v[1]}, true
		}
	case []string:
		if len(v) == 2 {
			return [2]any{v[0], v[1]}, true
		}
	case [2]any:
		return v, true
	}
	return [2]any{}, false
}
