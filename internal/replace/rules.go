// Package replace merges user replacement rules over the built-in tables and
// resolves them against a generated palette for one variant.
package replace

import (
	"dainty/internal/ordered"
	"dainty/internal/palette"
)

// Tuple is a (background, text) pair.
type Tuple [2]Value

// CategoryRule holds the tuples for both variants.
type CategoryRule struct {
	Dark  Tuple
	Light Tuple
}

// Select returns the tuple for variant.
func (r CategoryRule) Select(v Variant) Tuple {
	if v == Light {
		return r.Light
	}
	return r.Dark
}

// SearchRule holds the replacement for both variants.
type SearchRule struct {
	Dark  Value
	Light Value
}

// Select returns the value for variant.
func (r SearchRule) Select(v Variant) Value {
	if v == Light {
		return r.Light
	}
	return r.Dark
}

// CategoryRules is an ordered set of rules keyed by category, then key.
type CategoryRules struct {
	categories *ordered.Map[string, *ordered.Map[string, CategoryRule]]
}

// NewCategoryRules returns an empty rule set.
func NewCategoryRules() *CategoryRules {
	return &CategoryRules{categories: ordered.New[string, *ordered.Map[string, CategoryRule]](0)}
}

// Set inserts or replaces a rule.
func (r *CategoryRules) Set(category, key string, rule CategoryRule) {
	keys, ok := r.categories.Get(category)
	if !ok {
		keys = ordered.New[string, CategoryRule](0)
		r.categories.Set(category, keys)
	}
	keys.Set(key, rule)
}

// Get returns a rule.
func (r *CategoryRules) Get(category, key string) (CategoryRule, bool) {
	keys, ok := r.categories.Get(category)
	if !ok {
		return CategoryRule{}, false
	}
	return keys.Get(key)
}

// Len counts rules across all categories.
func (r *CategoryRules) Len() int {
	n := 0
	for _, keys := range r.categories.All() {
		n += keys.Len()
	}
	return n
}

// Clone deep-copies the rule set.
func (r *CategoryRules) Clone() *CategoryRules {
	return &CategoryRules{categories: r.categories.Clone(func(keys *ordered.Map[string, CategoryRule]) *ordered.Map[string, CategoryRule] {
		return keys.Clone(nil)
	})}
}

// SearchRules is an ordered set of search-replace rules keyed by the literal
// hex to find. Order decides priority when find values overlap.
type SearchRules struct {
	rules *ordered.Map[string, SearchRule]
}

// NewSearchRules returns an empty rule set.
func NewSearchRules() *SearchRules {
	return &SearchRules{rules: ordered.New[string, SearchRule](0)}
}

// Set replaces an existing rule in place or appends a new one.
func (r *SearchRules) Set(find string, rule SearchRule) {
	r.rules.Set(find, rule)
}

// Get returns the rule for find.
func (r *SearchRules) Get(find string) (SearchRule, bool) {
	return r.rules.Get(find)
}

// Keys returns find values in priority order.
func (r *SearchRules) Keys() []string { return r.rules.Keys() }

// Len returns the number of rules.
func (r *SearchRules) Len() int { return r.rules.Len() }

// Clone copies the rule set.
func (r *SearchRules) Clone() *SearchRules {
	return &SearchRules{rules: r.rules.Clone(nil)}
}

// CategoryOverride is one raw user rule as decoded from configuration.
type CategoryOverride struct {
	Category string
	Key      string
	Value    any
}

// SearchReplaceOverride is one raw user search-replace rule.
type SearchReplaceOverride struct {
	Find  string
	Value any
}

// Usage counts palette references that ended up in resolved output.
type Usage []palette.Ref

// ByScale counts references per scale or color name.
func (u Usage) ByScale() map[string]int {
	counts := make(map[string]int)
	for _, ref := range u {
		counts[ref.Name]++
	}
	return counts
}
