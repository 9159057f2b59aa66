// Package emit writes the generated artifacts: palette.json,
// replacements.json and every template rewritten with the search-replace
// table.
package emit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"dainty/internal/build"
	"dainty/internal/debug"
	appErrors "dainty/internal/errors"
	"dainty/internal/replace"
)

const (
	PaletteFile      = "palette.json"
	ReplacementsFile = "replacements.json"
)

// Options locates the inputs and outputs of Write.
type Options struct {
	OutDir       string
	TemplatesDir string
}

// Substitute rewrites content with the table in a single left-to-right
// pass. Replaced text is never matched again, null entries are skipped and
// at any position the earliest matching entry wins. Find values match in
// lower and upper case.
func Substitute(content string, table *replace.Table) string {
	return NewSubstituter(table).Replace(content)
}

// NewSubstituter builds the replacer once for use on many inputs.
func NewSubstituter(table *replace.Table) *strings.Replacer {
	pairs := table.Pairs()
	args := make([]string, 0, len(pairs)*2)
	for i := 0; i+1 < len(pairs); i += 2 {
		find, repl := pairs[i], pairs[i+1]
		args = append(args, find, repl)
		if upper := strings.ToUpper(find); upper != find {
			args = append(args, upper, repl)
		}
	}
	return strings.NewReplacer(args...)
}

// OutputName is the file name a template is written under for variant.
func OutputName(template string, variant replace.Variant) string {
	ext := filepath.Ext(template)
	return strings.TrimSuffix(template, ext) + "-" + variant.String() + ext
}

type replacementsDoc struct {
	Variant       replace.Variant        `json:"variant"`
	Categories    *replace.CategoryTable `json:"categories"`
	SearchReplace []replace.Entry        `json:"searchReplace"`
}

// Write emits all artifacts for res concurrently and returns the written
// paths in sorted order. A missing templates directory only skips templates.
func Write(ctx context.Context, opts Options, res *build.Result) ([]string, error) {
	defer debug.Span("emit.Write")()

	//nolint:gosec // G301: output directory needs standard permissions
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, ioError(opts.OutDir, "create output directory", err)
	}
	templates, err := listTemplates(opts.TemplatesDir)
	if err != nil {
		return nil, err
	}

	var (
		mu      sync.Mutex
		written []string
	)
	record := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		written = append(written, path)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		path := filepath.Join(opts.OutDir, PaletteFile)
		if err := writeJSON(gctx, path, res.Palette); err != nil {
			return err
		}
		record(path)
		return nil
	})
	g.Go(func() error {
		path := filepath.Join(opts.OutDir, ReplacementsFile)
		doc := replacementsDoc{Variant: res.Variant, Categories: res.Categories, SearchReplace: res.SearchReplace.Entries}
		if err := writeJSON(gctx, path, doc); err != nil {
			return err
		}
		record(path)
		return nil
	})

	if len(templates) > 0 {
		replacer := NewSubstituter(res.SearchReplace)
		for _, name := range templates {
			g.Go(func() error {
				path := filepath.Join(opts.OutDir, OutputName(name, res.Variant))
				if err := writeTemplate(gctx, filepath.Join(opts.TemplatesDir, name), path, replacer); err != nil {
					return err
				}
				record(path)
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	slices.Sort(written)
	debug.Logf("emit: wrote %d artifacts to %s", len(written), opts.OutDir)
	return written, nil
}

func listTemplates(dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		debug.Logf("emit: templates directory %s not found, skipping", dir)
		return nil, nil
	}
	if err != nil {
		return nil, ioError(dir, "read templates directory", err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func writeJSON(ctx context.Context, path string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return appErrors.New(appErrors.CodeIOFailed, fmt.Sprintf("encode %s: %v", filepath.Base(path), err), err)
	}
	//nolint:gosec // G306: generated artifacts are not secret
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return ioError(path, "write", err)
	}
	return nil
}

func writeTemplate(ctx context.Context, src, dst string, replacer *strings.Replacer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	//nolint:gosec // G304: templates come from the configured templates directory
	data, err := os.ReadFile(src)
	if err != nil {
		return ioError(src, "read template", err)
	}
	//nolint:gosec // G306: generated artifacts are not secret
	if err := os.WriteFile(dst, []byte(replacer.Replace(string(data))), 0644); err != nil {
		return ioError(dst, "write", err)
	}
	return nil
}

func ioError(path, action string, err error) error {
	return appErrors.At(appErrors.CodeIOFailed, path, fmt.Sprintf("%s: %v", action, err), err)
}
