package replace

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	appErrors "dainty/internal/errors"
	"dainty/internal/palette"
)

func mustPalette(t *testing.T, opts palette.Options) *palette.Palette {
	t.Helper()
	p, err := palette.Generate(opts)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	return p
}

func at(t *testing.T, p *palette.Palette, scale string, i int) string {
	t.Helper()
	hex, ok := p.At(scale, i)
	if !ok {
		t.Fatalf("palette has no %s[%d]", scale, i)
	}
	return hex
}

func TestSearchReplaceResolvesReferences(t *testing.T) {
	p := mustPalette(t, palette.Options{})
	table, err := ResolveSearchReplace(BaseSearchReplace(Environment{}), []SearchReplaceOverride{
		{Find: "#123456", Value: []any{"BLUES_5", "blues[6]"}},
	}, p, Dark)
	if err != nil {
		t.Fatalf("ResolveSearchReplace returned error: %v", err)
	}
	entry, _, ok := table.Lookup("#123456")
	if !ok {
		t.Fatalf("override entry missing")
	}
	if want := at(t, p, "blues", 5); entry.Replace != want {
		t.Fatalf("expected blues[5] %s, got %s", want, entry.Replace)
	}

	light, err := ResolveSearchReplace(BaseSearchReplace(Environment{}), []SearchReplaceOverride{
		{Find: "#123456", Value: []any{"BLUES_5", "blues[6]"}},
	}, p, Light)
	if err != nil {
		t.Fatalf("ResolveSearchReplace returned error: %v", err)
	}
	entry, _, _ = light.Lookup("#123456")
	if want := at(t, p, "blues", 6); entry.Replace != want {
		t.Fatalf("expected light blues[6] %s, got %s", want, entry.Replace)
	}
}

func TestSearchReplacePreservesOrder(t *testing.T) {
	p := mustPalette(t, palette.Options{})
	base := BaseSearchReplace(Environment{})
	baseKeys := base.Keys()

	table, err := ResolveSearchReplace(base, []SearchReplaceOverride{
		{Find: "#123456", Value: []any{"#abcdef", nil}},
		{Find: "#007ACC", Value: []any{"#000000", "#ffffff"}},
	}, p, Dark)
	if err != nil {
		t.Fatalf("ResolveSearchReplace returned error: %v", err)
	}

	if len(table.Entries) != len(baseKeys)+1 {
		t.Fatalf("expected %d entries, got %d", len(baseKeys)+1, len(table.Entries))
	}
	got := make([]string, len(table.Entries))
	for i, e := range table.Entries {
		got[i] = e.Find
	}
	if diff := cmp.Diff(append(baseKeys, "#123456"), got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	entry, idx, _ := table.Lookup("#007acc")
	if idx != 0 || entry.Replace != "#000000" {
		t.Fatalf("expected #007acc overridden in place at 0, got %+v at %d", entry, idx)
	}

	// The base passed in must not see the override.
	rule, _ := base.Get("#007acc")
	if rule.Dark.Kind() != KindReference {
		t.Fatalf("base table was mutated: %v", rule.Dark)
	}
	if base.Len() != len(baseKeys) {
		t.Fatalf("base table grew to %d", base.Len())
	}
}

func TestSearchReplaceNullSkippedInPairs(t *testing.T) {
	p := mustPalette(t, palette.Options{})
	base := NewSearchRules()
	base.Set("#111111", both(Literal("#222222")))
	base.Set("#333333", both(Null()))

	table, err := ResolveSearchReplace(base, nil, p, Dark)
	if err != nil {
		t.Fatalf("ResolveSearchReplace returned error: %v", err)
	}
	if !table.Entries[1].IsNull() {
		t.Fatalf("expected second entry to be null")
	}
	if diff := cmp.Diff([]string{"#111111", "#222222"}, table.Pairs()); diff != "" {
		t.Fatalf("pairs mismatch (-want +got):\n%s", diff)
	}
	data, err := json.Marshal(table.Entries)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(data) != `[["#111111","#222222"],["#333333",null]]` {
		t.Fatalf("unexpected JSON %s", data)
	}
}

func TestSearchReplaceValidation(t *testing.T) {
	p := mustPalette(t, palette.Options{})
	tests := []struct {
		name     string
		override SearchReplaceOverride
		code     appErrors.Code
		contains []string
	}{
		{
			name:     "find key not a color",
			override: SearchReplaceOverride{Find: "notAColor", Value: []any{nil, nil}},
			code:     appErrors.CodeInvalidFindKey,
			contains: []string{"notAColor", "not a valid color hex value"},
		},
		{
			name:     "value not a pair",
			override: SearchReplaceOverride{Find: "#123456", Value: "#ffffff"},
			code:     appErrors.CodeMalformedValue,
			contains: []string{"#123456", "list of 2 entries"},
		},
		{
			name:     "unknown constant",
			override: SearchReplaceOverride{Find: "#123456", Value: []any{"nonexistentScale", nil}},
			code:     appErrors.CodeUnresolvableReference,
			contains: []string{"nonexistentScale", "[0]", "dark"},
		},
		{
			name:     "short hex literal",
			override: SearchReplaceOverride{Find: "#123456", Value: []any{"#12345", nil}},
			code:     appErrors.CodeMalformedValue,
			contains: []string{"[0]", `invalid hex color "#12345"`},
		},
		{
			name:     "non hex digits",
			override: SearchReplaceOverride{Find: "#123456", Value: []any{nil, "#gggggg"}},
			code:     appErrors.CodeMalformedValue,
			contains: []string{"[1]", `invalid hex color "#gggggg"`},
		},
		{
			name:     "long hex literal",
			override: SearchReplaceOverride{Find: "#123456", Value: []any{"#1234567", nil}},
			code:     appErrors.CodeMalformedValue,
			contains: []string{"#1234567"},
		},
		{
			name:     "non string leaf",
			override: SearchReplaceOverride{Find: "#123456", Value: []any{nil, 42}},
			code:     appErrors.CodeMalformedValue,
			contains: []string{"[1]", "light"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveSearchReplace(BaseSearchReplace(Environment{}), []SearchReplaceOverride{tt.override}, p, Dark)
			if !appErrors.IsCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q missing %q", err.Error(), want)
				}
			}
		})
	}
}

func TestCategoryOverrideAndVariantSelection(t *testing.T) {
	p := mustPalette(t, palette.Options{})
	overrides := []CategoryOverride{
		{Category: "StartPage", Key: "StartPageTitleText", Value: []any{
			[]any{"BLUES_5", "GREEN_LIGHTER"},
			[]any{nil, "#FFF"},
		}},
		{Category: "Environment", Key: "Window", Value: []any{
			[]any{"blueGrays[0]", nil},
			[]any{"grays[39]", nil},
		}},
	}

	dark, err := ResolveCategories(BaseCategories(), overrides, p, Dark)
	if err != nil {
		t.Fatalf("ResolveCategories returned error: %v", err)
	}
	green, _ := p.Color("greenLighter")
	if got, _ := dark.Get("StartPage", "StartPageTitleText"); got != (Cell{Background: at(t, p, "blues", 5), Text: green}) {
		t.Fatalf("unexpected dark cell %+v", got)
	}
	if got, _ := dark.Get("Environment", "Window"); got.Background != at(t, p, "blueGrays", 0) || got.Text != "" {
		t.Fatalf("unexpected new category cell %+v", got)
	}
	if diff := cmp.Diff([]string{"ColorizedSignatureHelp colors", "Text Editor Text Marker Items", "StartPage", "Environment"}, dark.Categories()); diff != "" {
		t.Fatalf("category order mismatch (-want +got):\n%s", diff)
	}

	light, err := ResolveCategories(BaseCategories(), overrides, p, Light)
	if err != nil {
		t.Fatalf("ResolveCategories returned error: %v", err)
	}
	if got, _ := light.Get("StartPage", "StartPageTitleText"); got != (Cell{Text: "#ffffff"}) {
		t.Fatalf("unexpected light cell %+v", got)
	}
	if got, _ := light.Get("ColorizedSignatureHelp colors", "urlformat"); got.Text != at(t, p, "accent", 16) {
		t.Fatalf("expected light accent[16] for urlformat, got %+v", got)
	}
}

func TestCategoryBaseNotMutated(t *testing.T) {
	p := mustPalette(t, palette.Options{})
	base := BaseCategories()
	before := base.Len()

	_, err := ResolveCategories(base, []CategoryOverride{
		{Category: "StartPage", Key: "StartPageTitleText", Value: []any{[]any{"#000000", nil}, []any{nil, nil}}},
		{Category: "New", Key: "Key", Value: []any{[]any{nil, nil}, []any{nil, nil}}},
	}, p, Dark)
	if err != nil {
		t.Fatalf("ResolveCategories returned error: %v", err)
	}

	if base.Len() != before {
		t.Fatalf("base grew from %d to %d", before, base.Len())
	}
	rule, _ := base.Get("StartPage", "StartPageTitleText")
	if rule.Dark[0].Kind() != KindNull {
		t.Fatalf("base rule was overwritten: %v", rule.Dark[0])
	}
}

func TestCategoryValidation(t *testing.T) {
	p := mustPalette(t, palette.Options{})
	tests := []struct {
		name     string
		value    any
		code     appErrors.Code
		path     string
		contains []string
	}{
		{
			name:     "flat pair instead of nested tuples",
			value:    []any{"#fff", "#000"},
			code:     appErrors.CodeMalformedValue,
			path:     `replacements.overrides.categories["Foo"]["Bar"][0]`,
			contains: []string{`"Foo"`, `"Bar"`, "index 0", "dark"},
		},
		{
			name:     "three entries",
			value:    []any{nil, nil, nil},
			code:     appErrors.CodeMalformedValue,
			path:     `replacements.overrides.categories["Foo"]["Bar"]`,
			contains: []string{`"Foo"`, `"Bar"`, "list of 2 entries"},
		},
		{
			name:     "light tuple too short",
			value:    []any{[]any{nil, nil}, []any{nil}},
			code:     appErrors.CodeMalformedValue,
			path:     `replacements.overrides.categories["Foo"]["Bar"][1]`,
			contains: []string{"index 1", "light"},
		},
		{
			name:     "unknown constant in light text",
			value:    []any{[]any{nil, nil}, []any{nil, "nonexistentScale"}},
			code:     appErrors.CodeUnresolvableReference,
			path:     `replacements.overrides.categories["Foo"]["Bar"][1][1]`,
			contains: []string{"light text", "nonexistentScale"},
		},
		{
			name:     "bad hex in dark background",
			value:    []any{[]any{"#12345", nil}, []any{nil, nil}},
			code:     appErrors.CodeMalformedValue,
			path:     `replacements.overrides.categories["Foo"]["Bar"][0][0]`,
			contains: []string{"dark background", `invalid hex color "#12345"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveCategories(BaseCategories(), []CategoryOverride{{Category: "Foo", Key: "Bar", Value: tt.value}}, p, Dark)
			if !appErrors.IsCode(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
			if got := appErrors.PathOf(err); got != tt.path {
				t.Fatalf("expected path %s, got %s", tt.path, got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q missing %q", err.Error(), want)
				}
			}
		})
	}
}

func TestEnvironmentSelectsAlternatives(t *testing.T) {
	p := mustPalette(t, palette.Options{})
	table, err := ResolveSearchReplace(BaseSearchReplace(Environment{
		AdditionalTextContrast:       true,
		AdditionalBackgroundContrast: true,
		AdditionalCommentsContrast:   true,
	}), nil, p, Dark)
	if err != nil {
		t.Fatalf("ResolveSearchReplace returned error: %v", err)
	}
	checks := map[string]string{
		"#f1f1f1": at(t, p, "blueGrays", 34),
		"#007acc": at(t, p, "blueGrays", 7),
		"#2d2d30": at(t, p, "blueGrays", 3),
		"#57a64a": at(t, p, "blueGrays", 20),
	}
	for find, want := range checks {
		if e, _, _ := table.Lookup(find); e.Replace != want {
			t.Errorf("%s: expected %s, got %s", find, want, e.Replace)
		}
	}
}

func TestUsageCountsReferences(t *testing.T) {
	p := mustPalette(t, palette.Options{})
	table, err := ResolveSearchReplace(BaseSearchReplace(Environment{}), nil, p, Dark)
	if err != nil {
		t.Fatalf("ResolveSearchReplace returned error: %v", err)
	}
	counts := table.Used.ByScale()
	if counts["blueGrays"] == 0 || counts["blues"] == 0 {
		t.Fatalf("expected usage for blueGrays and blues, got %v", counts)
	}
	if len(table.Used) != len(table.Entries) {
		t.Fatalf("every built-in entry is a reference: used=%d entries=%d", len(table.Used), len(table.Entries))
	}
}

func TestCategoryTableJSON(t *testing.T) {
	p := mustPalette(t, palette.Options{})
	table, err := ResolveCategories(BaseCategories(), nil, p, Dark)
	if err != nil {
		t.Fatalf("ResolveCategories returned error: %v", err)
	}
	data, err := json.Marshal(table)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if !strings.Contains(string(data), `"Current Statement":["#eff284",null]`) {
		t.Fatalf("unexpected JSON %s", data)
	}
}

func TestParseValueSuggestsConstant(t *testing.T) {
	p := mustPalette(t, palette.Options{})
	_, err := ParseValue("BLUE_5", p.Index())
	if !appErrors.IsCode(err, appErrors.CodeUnresolvableReference) {
		t.Fatalf("expected unresolvable reference, got %v", err)
	}
	if !strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("expected suggestion in %q", err.Error())
	}
}

func TestParseValueMalformedHexIsNotAConstant(t *testing.T) {
	p := mustPalette(t, palette.Options{})
	for _, raw := range []string{"#12345", "#gggggg", "#1234567", "#"} {
		_, err := ParseValue(raw, p.Index())
		if !appErrors.IsCode(err, appErrors.CodeMalformedValue) {
			t.Fatalf("ParseValue(%q): expected malformed value, got %v", raw, err)
		}
		if strings.Contains(err.Error(), "did you mean") || strings.Contains(err.Error(), "constant") {
			t.Fatalf("ParseValue(%q): expected a hex error, got %q", raw, err.Error())
		}
	}
	if v, err := ParseValue("#ABC", p.Index()); err != nil || v.String() != "#aabbcc" {
		t.Fatalf("ParseValue(#ABC) = %v, %v", v, err)
	}
}

func TestParseVariant(t *testing.T) {
	if v, err := ParseVariant(" Light "); err != nil || v != Light || v.Index() != 1 {
		t.Fatalf("ParseVariant(Light) = %v, %v", v, err)
	}
	if v, _ := ParseVariant("dark"); v.Index() != 0 || !v.IsDark() {
		t.Fatalf("unexpected dark variant %v", v)
	}
	if _, err := ParseVariant("dim"); !appErrors.IsCode(err, appErrors.CodeMalformedValue) {
		t.Fatalf("expected malformed value, got %v", err)
	}
}
