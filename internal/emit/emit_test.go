package emit

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dainty/internal/build"
	"dainty/internal/config"
	appErrors "dainty/internal/errors"
	"dainty/internal/palette"
	"dainty/internal/replace"
)

func table(entries ...replace.Entry) *replace.Table {
	return &replace.Table{Entries: entries}
}

func TestSubstituteReplacesOnce(t *testing.T) {
	tbl := table(
		replace.Entry{Find: "#111111", Replace: "#222222"},
		replace.Entry{Find: "#222222", Replace: "#333333"},
	)
	got := Substitute("a=#111111 b=#222222", tbl)
	if got != "a=#222222 b=#333333" {
		t.Fatalf("expected single pass substitution, got %q", got)
	}
}

func TestSubstituteSkipsNullAndMatchesUpperCase(t *testing.T) {
	tbl := table(
		replace.Entry{Find: "#1e1e1e", Replace: "#0f111a"},
		replace.Entry{Find: "#ffffff"},
	)
	got := Substitute("#1E1E1E #1e1e1e #ffffff", tbl)
	if got != "#0f111a #0f111a #ffffff" {
		t.Fatalf("unexpected substitution %q", got)
	}
}

func TestSubstituteEarlierEntryWinsOnOverlap(t *testing.T) {
	tbl := table(
		replace.Entry{Find: "#333", Replace: "short"},
		replace.Entry{Find: "#333333", Replace: "long"},
	)
	if got := Substitute("#333333", tbl); got != "short333" {
		t.Fatalf("expected earlier entry to win, got %q", got)
	}
}

func TestOutputName(t *testing.T) {
	tests := map[string]string{
		"theme.vssettings": "theme-dark.vssettings",
		"colors":           "colors-dark",
		"a.b.xml":          "a.b-dark.xml",
	}
	for in, want := range tests {
		if got := OutputName(in, replace.Dark); got != want {
			t.Errorf("OutputName(%q) = %q, want %q", in, got, want)
		}
	}
}

func result(t *testing.T, variant replace.Variant) *build.Result {
	t.Helper()
	res, err := build.Run(&config.Configuration{
		Variant: variant,
		Palette: palette.Options{Accent: palette.DefaultAccent},
	})
	if err != nil {
		t.Fatalf("build.Run returned error: %v", err)
	}
	return res
}

func TestWriteEmitsArtifacts(t *testing.T) {
	tmp := t.TempDir()
	templates := filepath.Join(tmp, "templates")
	out := filepath.Join(tmp, "dist")
	if err := os.MkdirAll(templates, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(templates, "theme.xml"), []byte(`<Color Background="#1E1E1E" Foreground="#f1f1f1"/>`), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := os.WriteFile(filepath.Join(templates, ".hidden"), []byte("#1e1e1e"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	res := result(t, replace.Light)
	written, err := Write(context.Background(), Options{OutDir: out, TemplatesDir: templates}, res)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	want := []string{
		filepath.Join(out, PaletteFile),
		filepath.Join(out, ReplacementsFile),
		filepath.Join(out, "theme-light.xml"),
	}
	if diff := cmp.Diff(want, written); diff != "" {
		t.Fatalf("written mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(filepath.Join(out, "theme-light.xml"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	bg, _, _ := res.SearchReplace.Lookup("#1e1e1e")
	fg, _, _ := res.SearchReplace.Lookup("#f1f1f1")
	wantXML := `<Color Background="` + bg.Replace + `" Foreground="` + fg.Replace + `"/>`
	if string(data) != wantXML {
		t.Fatalf("unexpected template output %q, want %q", data, wantXML)
	}

	raw, err := os.ReadFile(filepath.Join(out, ReplacementsFile))
	if err != nil {
		t.Fatalf("read replacements: %v", err)
	}
	var doc struct {
		Variant       string                          `json:"variant"`
		Categories    map[string]map[string][]*string `json:"categories"`
		SearchReplace [][]*string                     `json:"searchReplace"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode replacements: %v", err)
	}
	if doc.Variant != "light" || len(doc.SearchReplace) != len(res.SearchReplace.Entries) {
		t.Fatalf("unexpected replacements doc: variant=%s entries=%d", doc.Variant, len(doc.SearchReplace))
	}
	if first := doc.SearchReplace[0]; *first[0] != "#007acc" {
		t.Fatalf("expected #007acc first, got %v", *first[0])
	}

	paletteRaw, err := os.ReadFile(filepath.Join(out, PaletteFile))
	if err != nil {
		t.Fatalf("read palette: %v", err)
	}
	if !strings.Contains(string(paletteRaw), `"accent": "blues"`) {
		t.Fatalf("palette.json missing accent:\n%s", paletteRaw)
	}
}

func TestWriteWithoutTemplatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	written, err := Write(context.Background(), Options{OutDir: tmp, TemplatesDir: filepath.Join(tmp, "missing")}, result(t, replace.Dark))
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected only the JSON artifacts, got %v", written)
	}
}

func TestWriteReportsIOFailure(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Write(context.Background(), Options{OutDir: filepath.Join(blocker, "dist")}, result(t, replace.Dark))
	if !appErrors.IsCode(err, appErrors.CodeIOFailed) {
		t.Fatalf("expected io failure, got %v", err)
	}
}

func TestWriteHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Write(ctx, Options{OutDir: t.TempDir()}, result(t, replace.Dark)); err == nil {
		t.Fatalf("expected cancelled context to fail Write")
	}
}
