package preview

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"dainty/internal/palette"
	"dainty/internal/replace"
	"dainty/internal/theme"
)

func newTestModel(t *testing.T, opts ...Option) (*Model, *palette.Palette) {
	t.Helper()
	p, err := palette.Generate(palette.Options{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	table, err := replace.ResolveSearchReplace(replace.BaseSearchReplace(replace.Environment{}), []replace.SearchReplaceOverride{
		{Find: "#abcdef", Value: []any{nil, nil}},
	}, p, replace.Dark)
	if err != nil {
		t.Fatalf("ResolveSearchReplace returned error: %v", err)
	}
	opts = append([]Option{WithClipboard(func(string) error { return nil })}, opts...)
	m := New(p, table, replace.Dark, opts...)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 20})
	return m, p
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestNavigation(t *testing.T) {
	m, p := newTestModel(t)

	press(m, "l", "l", "j")
	sel := m.Selected()
	want, _ := p.At("blueGrays", 2)
	if sel.Name != "BLUE_GRAYS_2" || sel.Hex != want {
		t.Fatalf("unexpected selection %+v", sel)
	}

	press(m, "G")
	if m.Selected().Name != "BLUE_GRAYS_39" {
		t.Fatalf("expected last step, got %s", m.Selected().Name)
	}

	// The single colors row is shorter than a scale; the column is clamped.
	for range len(p.ScaleNames()) {
		press(m, "j")
	}
	if got := m.Selected().Name; got != "AMBER_LIGHTER" {
		t.Fatalf("expected clamp to the last single color, got %s", got)
	}

	press(m, "g", "k", "k", "k", "k", "k", "k", "k", "k", "k", "k")
	if got := m.Selected().Name; got != "GRAYS_0" {
		t.Fatalf("expected to stop at the first row, got %s", got)
	}
}

func TestCopyKeys(t *testing.T) {
	var copied []string
	m, p := newTestModel(t, WithClipboard(func(s string) error {
		copied = append(copied, s)
		return nil
	}))

	press(m, "y", "c")
	first, _ := p.At("grays", 0)
	if len(copied) != 2 || copied[0] != first || copied[1] != "GRAYS_0" {
		t.Fatalf("unexpected clipboard writes %v", copied)
	}
	if !strings.Contains(m.status, "Copied 'GRAYS_0'") {
		t.Fatalf("expected copy status, got %q", m.status)
	}

	failing, _ := newTestModel(t, WithClipboard(func(string) error { return errors.New("no display") }))
	press(failing, "y")
	if !failing.statusIsErr || !strings.Contains(failing.status, "no display") {
		t.Fatalf("expected error status, got %q", failing.status)
	}
}

func TestSearchJumpsToConstant(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "/")
	if !m.searching {
		t.Fatalf("expected search mode")
	}
	press(m, "g", "r", "e", "e", "n", "l", "i", "g", "h", "t", "e", "r", "enter")
	if m.searching {
		t.Fatalf("expected search to close on enter")
	}
	if got := m.Selected().Name; got != "GREEN_LIGHTER" {
		t.Fatalf("expected GREEN_LIGHTER, got %s", got)
	}

	press(m, "/", "z", "z", "z", "enter")
	if !m.statusIsErr {
		t.Fatalf("expected no-match status, got %q", m.status)
	}

	press(m, "/", "b", "esc")
	if m.searching || m.Selected().Name != "GREEN_LIGHTER" {
		t.Fatalf("escape should cancel without moving")
	}
}

func TestAccentCycleAndSave(t *testing.T) {
	var saved string
	m, _ := newTestModel(t, WithSaveAccent(func(name string) (string, error) {
		saved = name
		return "/tmp/config.yaml", nil
	}))

	if theme.CurrentName() != "blues" {
		t.Fatalf("expected blues theme, got %s", theme.CurrentName())
	}
	press(m, "a", "w")
	if saved != "bluesLessChrome" {
		t.Fatalf("expected saved accent bluesLessChrome, got %q", saved)
	}
	if !strings.Contains(m.status, "/tmp/config.yaml") {
		t.Fatalf("unexpected status %q", m.status)
	}

	noSave, _ := newTestModel(t)
	press(noSave, "w")
	if !noSave.statusIsErr {
		t.Fatalf("expected save to be unavailable")
	}
}

func TestViewModes(t *testing.T) {
	m, _ := newTestModel(t)

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "dainty preview") || !strings.Contains(view, "blueGrays") {
		t.Fatalf("palette view missing content:\n%s", view)
	}
	if !strings.Contains(view, "GRAYS_0") {
		t.Fatalf("palette view missing detail line:\n%s", view)
	}

	press(m, "tab")
	view = ansi.Strip(m.View())
	if !strings.Contains(view, "#007acc") || !strings.Contains(view, "search-replace entries (1 unchanged)") {
		t.Fatalf("table view missing content:\n%s", view)
	}

	press(m, "?")
	view = ansi.Strip(m.View())
	if !strings.Contains(view, "DAINTY PREVIEW HELP") {
		t.Fatalf("help overlay missing:\n%s", view)
	}
	press(m, "esc")
	if m.showHelp {
		t.Fatalf("expected help to close")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	cmd := press(m, "q")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestViewBeforeSize(t *testing.T) {
	p, err := palette.Generate(palette.Options{})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	m := New(p, &replace.Table{}, replace.Light)
	if m.View() != "" {
		t.Fatalf("expected empty view before the first size message")
	}
}

func TestCanvasNormalizesNewlines(t *testing.T) {
	canvas := NewCanvas(8, 4)
	canvas.DrawStringAt(2, 0, "A\nB")

	lines := strings.Split(canvas.Render(), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected at least 2 lines, got %d", len(lines))
	}
	for i, want := range []string{"  A", "  B"} {
		if got := strings.TrimRight(ansi.Strip(lines[i]), " "); got != want {
			t.Fatalf("line %d mismatch, expected %q got %q", i, want, got)
		}
	}
}

func TestCanvasCenterOverlayPositionsContent(t *testing.T) {
	const width, height = 20, 10
	canvas := NewCanvas(width, height)
	canvas.Fill(lipgloss.Color("#000000"))

	canvas.CenterOverlay("AA\nBB", 1, 1)
	lines := strings.Split(canvas.Render(), "\n")

	expectedRow := 4 // topMargin=1, bottomMargin=1, overlay height=2
	if len(lines) <= expectedRow+1 {
		t.Fatalf("not enough lines rendered, got %d", len(lines))
	}
	if idx := strings.Index(ansi.Strip(lines[expectedRow]), "AA"); idx != 9 {
		t.Fatalf("expected overlay 'AA' centered at column 9, got column %d", idx)
	}
	if idx := strings.Index(ansi.Strip(lines[expectedRow+1]), "BB"); idx != 9 {
		t.Fatalf("expected overlay 'BB' centered at column 9, got column %d", idx)
	}
}

func TestMarkerColorContrastsWithSwatch(t *testing.T) {
	tests := []struct {
		hex  string
		want lipgloss.Color
	}{
		{"#ffffff", lipgloss.Color("#000000")},
		{"#fff59d", lipgloss.Color("#000000")},
		{"#0f111a", lipgloss.Color("#ffffff")},
		{"not-a-color", lipgloss.Color("#ffffff")},
	}
	for _, tt := range tests {
		if got := markerColor(tt.hex); got != tt.want {
			t.Errorf("markerColor(%q) = %v, want %v", tt.hex, got, tt.want)
		}
	}
}
