package replace

import (
	"encoding/json"
	"strings"

	"dainty/internal/color"
	"dainty/internal/debug"
	"dainty/internal/palette"
)

// Entry is one resolved find/replace pair. An empty Replace means the
// original value is left unchanged.
type Entry struct {
	Find    string
	Replace string
}

// IsNull reports whether the entry leaves its find value untouched.
func (e Entry) IsNull() bool { return e.Replace == "" }

// MarshalJSON writes the entry as a [find, replace|null] pair.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]*string{&e.Find, nullable(e.Replace)})
}

// Table is the ordered, fully resolved search-replace output.
type Table struct {
	Entries []Entry
	Used    Usage
}

// Pairs returns find/replace arguments for the non-null entries, in table
// order, ready for strings.NewReplacer.
func (t *Table) Pairs() []string {
	out := make([]string, 0, len(t.Entries)*2)
	for _, e := range t.Entries {
		if e.IsNull() {
			continue
		}
		out = append(out, e.Find, e.Replace)
	}
	return out
}

// Lookup returns the entry for find.
func (t *Table) Lookup(find string) (Entry, int, bool) {
	find = strings.ToLower(find)
	for i, e := range t.Entries {
		if e.Find == find {
			return e, i, true
		}
	}
	return Entry{}, -1, false
}

// ParseSearchRule validates one override: the find key must be a hex color
// and the value a [dark, light] pair of leaves. The returned key is
// lowercased so overrides match built-in keys regardless of case.
func ParseSearchRule(o SearchReplaceOverride, constants palette.ConstantIndex) (string, SearchRule, error) {
	if !color.IsHex(o.Find) {
		return "", SearchRule{}, findKeyError(o.Find)
	}
	find := strings.ToLower(o.Find)
	pair, ok := asPair(o.Value)
	if !ok {
		return "", SearchRule{}, searchShapeError(o.Find)
	}
	var values [2]Value
	for variant, leaf := range pair {
		v, err := ParseValue(leaf, constants)
		if err != nil {
			return "", SearchRule{}, searchSlotError(o.Find, variant, err)
		}
		values[variant] = v
	}
	return find, SearchRule{Dark: values[0], Light: values[1]}, nil
}

// ResolveSearchReplace merges overrides over a copy of base and resolves the
// variant's values. Existing keys keep their position; new keys are appended
// in override order.
func ResolveSearchReplace(base *SearchRules, overrides []SearchReplaceOverride, p *palette.Palette, variant Variant) (*Table, error) {
	defer debug.Span("replace.ResolveSearchReplace")()

	constants := p.Index()
	merged := base.Clone()
	for _, o := range overrides {
		find, rule, err := ParseSearchRule(o, constants)
		if err != nil {
			return nil, err
		}
		merged.Set(find, rule)
	}

	out := &Table{Entries: make([]Entry, 0, merged.Len())}
	for find, rule := range merged.rules.All() {
		v := rule.Select(variant)
		hex, err := v.Resolve(p)
		if err != nil {
			return nil, baseResolveError(searchPath(find), err)
		}
		if ref, ok := v.Ref(); ok {
			out.Used = append(out.Used, ref)
		}
		out.Entries = append(out.Entries, Entry{Find: find, Replace: hex})
	}
	debug.Logf("search-replace: %d entries (%d overrides), variant=%s", len(out.Entries), len(overrides), variant)
	return out, nil
}
