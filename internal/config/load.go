package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"

	appErrors "dainty/internal/errors"
	"dainty/internal/palette"
	"dainty/internal/replace"
)

// Output formats understood by the CLI renderers.
const (
	FormatRich  = "rich"
	FormatPlain = "plain"
	FormatJSON  = "json"
)

// Output configures where artifacts are written.
type Output struct {
	Dir       string
	Templates string
	Format    string
}

// History configures the run history store.
type History struct {
	Enabled bool
	Path    string
}

// Configuration is the validated, typed view of all layers.
type Configuration struct {
	Variant       replace.Variant
	Palette       palette.Options
	Categories    []replace.CategoryOverride
	SearchReplace []replace.SearchReplaceOverride
	Environment   replace.Environment
	Output        Output
	History       History

	// UnknownSeeds names seed overrides that match no built-in seed and are ignored.
	UnknownSeeds []string
	// Sources lists the files that were merged, lowest precedence first.
	Sources []string
}

// Load validates the merged configuration and converts it for the engine.
func Load() (*Configuration, error) {
	v, err := getViper()
	if err != nil {
		return nil, err
	}
	configMu.RLock()
	s, src := sections, append([]string(nil), sources...)
	configMu.RUnlock()
	if s == nil {
		s = newOverrideSections()
	}

	cfg := &Configuration{Sources: src}

	if cfg.Variant, err = replace.ParseVariant(v.GetString(KeyVariant)); err != nil {
		return nil, err
	}

	brighten, err := stepIndex(v.Get(KeyBrighten))
	if err != nil {
		return nil, malformed(KeyBrighten, "must be an integer step index", v.Get(KeyBrighten))
	}
	desaturate, err := cast.ToFloat64E(v.Get(KeyDesaturate))
	if err != nil || math.IsNaN(desaturate) || math.IsInf(desaturate, 0) || desaturate < 0 {
		return nil, malformed(KeyDesaturate, "must be a finite number >= 0", v.Get(KeyDesaturate))
	}

	defaults := palette.DefaultSeeds()
	overrides, err := seedOverrides(s, defaults)
	if err != nil {
		return nil, err
	}
	cfg.Palette = palette.Options{
		Overrides: overrides,
		Process:   palette.Process{Brighten: brighten, Desaturate: desaturate},
		Accent:    strings.TrimSpace(v.GetString(KeyAccent)),
	}
	cfg.UnknownSeeds = palette.UnknownKeys(defaults, overrides)

	for category, keys := range s.categories.All() {
		for key, raw := range keys.All() {
			cfg.Categories = append(cfg.Categories, replace.CategoryOverride{Category: category, Key: key, Value: raw})
		}
	}
	for find, raw := range s.search.All() {
		cfg.SearchReplace = append(cfg.SearchReplace, replace.SearchReplaceOverride{Find: find, Value: raw})
	}

	flags := make([]bool, len(environmentKeys))
	for i, key := range environmentKeys {
		if flags[i], err = cast.ToBoolE(v.Get(key)); err != nil {
			return nil, malformed(key, "must be true or false", v.Get(key))
		}
	}
	cfg.Environment = replace.Environment{
		AdditionalTextContrast:         flags[0],
		AdditionalBackgroundContrast:   flags[1],
		AdditionalScrollbarsContrast:   flags[2],
		AdditionalCommentsContrast:     flags[3],
		TransparentScrollbarContainers: flags[4],
		TransparentBorders:             flags[5],
		TransparentToolWindowGrips:     flags[6],
	}

	cfg.Output = Output{
		Dir:       v.GetString(KeyOutputDir),
		Templates: v.GetString(KeyOutputTemplates),
		Format:    strings.ToLower(strings.TrimSpace(v.GetString(KeyOutputFormat))),
	}
	switch cfg.Output.Format {
	case FormatRich, FormatPlain, FormatJSON:
	default:
		return nil, malformed(KeyOutputFormat, "must be rich, plain or json", cfg.Output.Format)
	}

	historyEnabled, err := cast.ToBoolE(v.Get(KeyHistoryEnabled))
	if err != nil {
		return nil, malformed(KeyHistoryEnabled, "must be true or false", v.Get(KeyHistoryEnabled))
	}
	cfg.History = History{Enabled: historyEnabled, Path: v.GetString(KeyHistoryPath)}
	if cfg.History.Enabled && cfg.History.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.History.Path = filepath.Join(home, DirName, "history.db")
		} else {
			cfg.History.Enabled = false
		}
	}

	return cfg, nil
}

// seedOverrides checks each override against the shape of the seed it
// replaces: scales take a list, single colors take one value.
func seedOverrides(s *overrideSections, defaults palette.Seeds) (palette.Seeds, error) {
	out := palette.Seeds{Scales: map[string][]string{}, Colors: map[string]string{}}
	for name, o := range s.seeds.All() {
		_, isScale := defaults.Scales[name]
		_, isColor := defaults.Colors[name]
		path := "colors.overrides." + name
		switch {
		case isScale && !o.isList:
			return palette.Seeds{}, malformed(path, "must be a list of seed colors", o.single)
		case isColor && o.isList:
			return palette.Seeds{}, malformed(path, "must be a single color", o.list)
		case o.isList:
			out.Scales[name] = o.list
		default:
			out.Colors[name] = o.single
		}
	}
	return out, nil
}

// stepIndex converts a whole number, rejecting fractions instead of
// truncating them.
func stepIndex(raw any) (int, error) {
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not a whole number", raw)
	}
	return int(f), nil
}

func malformed(path, msg string, got any) error {
	return appErrors.At(appErrors.CodeMalformedValue, path, fmt.Sprintf("%s %s, got %v", path, msg, got), nil)
}
