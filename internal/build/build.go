// Package build runs the engine end to end: configuration in, palette and
// resolved replacement tables out.
package build

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"dainty/internal/config"
	"dainty/internal/debug"
	"dainty/internal/palette"
	"dainty/internal/replace"
)

// Result is everything one run produces. All fields are read-only after Run.
type Result struct {
	Variant       replace.Variant
	Palette       *palette.Palette
	Categories    *replace.CategoryTable
	SearchReplace *replace.Table
}

// Run generates the palette and resolves both tables for cfg.Variant. The
// first error aborts the run; no partial result is returned.
func Run(cfg *config.Configuration) (*Result, error) {
	defer debug.Span("build.Run")()

	p, err := palette.Generate(cfg.Palette)
	if err != nil {
		return nil, err
	}
	categories, err := replace.ResolveCategories(replace.BaseCategories(), cfg.Categories, p, cfg.Variant)
	if err != nil {
		return nil, err
	}
	search, err := replace.ResolveSearchReplace(replace.BaseSearchReplace(cfg.Environment), cfg.SearchReplace, p, cfg.Variant)
	if err != nil {
		return nil, err
	}
	return &Result{Variant: cfg.Variant, Palette: p, Categories: categories, SearchReplace: search}, nil
}

// Usage counts palette references per scale or color across both tables.
func (r *Result) Usage() map[string]int {
	counts := r.Categories.Used.ByScale()
	for name, n := range r.SearchReplace.Used.ByScale() {
		counts[name] += n
	}
	return counts
}

// UsageNames returns the keys of Usage sorted by descending count, then name.
func (r *Result) UsageNames() []string {
	counts := r.Usage()
	names := slices.Collect(maps.Keys(counts))
	slices.SortFunc(names, func(a, b string) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return strings.Compare(a, b)
	})
	return names
}

// Digest is the sha256 of the palette JSON, identifying the generated colors.
func (r *Result) Digest() (string, error) {
	data, err := json.Marshal(r.Palette)
	if err != nil {
		return "", fmt.Errorf("encode palette: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
