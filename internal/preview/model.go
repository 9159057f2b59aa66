// Package preview is an interactive terminal browser for a generated palette
// and its resolved search-replace table.
package preview

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"

	"dainty/internal/color"
	"dainty/internal/palette"
	"dainty/internal/replace"
	"dainty/internal/theme"
)

const (
	labelWidth  = 16
	chromeLines = 4 // header, blank, detail, status
)

type mode int

const (
	modePalette mode = iota
	modeTable
)

type row struct {
	label string
	refs  []palette.Ref
	hexes []string
}

type position struct{ row, col int }

// Option customizes a Model.
type Option func(*Model)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copy = write }
}

// WithSaveAccent enables persisting the chosen accent theme. save returns the
// file it wrote.
func WithSaveAccent(save func(string) (string, error)) Option {
	return func(m *Model) { m.save = save }
}

// Model is the bubbletea model of the preview.
type Model struct {
	palette *palette.Palette
	table   *replace.Table
	variant replace.Variant

	rows      []row
	positions map[string]position
	names     []string

	cursor position
	mode   mode

	width  int
	height int

	keys      KeyMap
	search    textinput.Model
	searching bool
	showHelp  bool
	viewport  viewport.Model

	status      string
	statusIsErr bool

	copy func(string) error
	save func(string) (string, error)
}

// New builds the preview for p and the search-replace table of variant.
// It registers the palette-derived UI themes.
func New(p *palette.Palette, table *replace.Table, variant replace.Variant, opts ...Option) *Model {
	theme.RegisterPalette(p)

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "constant"
	search.CharLimit = 40

	m := &Model{
		palette:   p,
		table:     table,
		variant:   variant,
		positions: make(map[string]position),
		keys:      DefaultKeyMap(),
		search:    search,
		viewport:  viewport.New(0, 0),
		copy:      clipboard.WriteAll,
	}
	for _, name := range p.ScaleNames() {
		hexes, _ := p.Scale(name)
		r := row{label: name, hexes: hexes}
		for i := range hexes {
			r.refs = append(r.refs, palette.ScaleRef(name, i))
		}
		m.addRow(r)
	}
	singles := row{label: "colors"}
	for _, name := range p.ColorNames() {
		hex, _ := p.Color(name)
		singles.refs = append(singles.refs, palette.ColorRef(name))
		singles.hexes = append(singles.hexes, hex)
	}
	m.addRow(singles)

	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) addRow(r row) {
	for i, ref := range r.refs {
		name := ref.Constant()
		m.positions[name] = position{row: len(m.rows), col: i}
		m.names = append(m.names, name)
	}
	m.rows = append(m.rows, r)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeLines, 1)
		m.refreshTable()
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		m.searching = false
		m.search.Blur()
		m.jumpTo(m.search.Value())
		m.search.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Escape) {
			m.showHelp = false
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Tab):
		if m.mode == modePalette {
			m.mode = modeTable
			m.refreshTable()
		} else {
			m.mode = modePalette
		}
	case key.Matches(msg, m.keys.Accent):
		name := theme.CycleTheme()
		m.setStatus(fmt.Sprintf("Accent theme: %s", name), false)
		m.refreshTable()
	case key.Matches(msg, m.keys.SaveAccent):
		m.saveAccent()
	case m.mode == modeTable:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Up):
		m.moveRow(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveRow(1)
	case key.Matches(msg, m.keys.Left):
		m.cursor.col = max(m.cursor.col-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.cursor.col = min(m.cursor.col+1, len(m.rows[m.cursor.row].hexes)-1)
	case key.Matches(msg, m.keys.Home):
		m.cursor.col = 0
	case key.Matches(msg, m.keys.End):
		m.cursor.col = len(m.rows[m.cursor.row].hexes) - 1
	case key.Matches(msg, m.keys.CopyHex):
		m.copyValue(m.Selected().Hex)
	case key.Matches(msg, m.keys.CopyConstant):
		m.copyValue(m.Selected().Name)
	}
	return m, nil
}

func (m *Model) moveRow(delta int) {
	m.cursor.row = max(min(m.cursor.row+delta, len(m.rows)-1), 0)
	m.cursor.col = min(m.cursor.col, len(m.rows[m.cursor.row].hexes)-1)
}

func (m *Model) jumpTo(query string) {
	query = strings.ToUpper(strings.TrimSpace(query))
	if query == "" {
		return
	}
	matches := fuzzy.Find(query, m.names)
	if len(matches) == 0 {
		m.setStatus(fmt.Sprintf("No constant matches %q", query), true)
		return
	}
	name := matches[0].Str
	m.cursor = m.positions[name]
	m.setStatus("Jumped to "+name, false)
}

func (m *Model) copyValue(value string) {
	if err := m.copy(value); err != nil {
		m.setStatus(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied '%s' to clipboard.", value), false)
}

func (m *Model) saveAccent() {
	if m.save == nil {
		m.setStatus("Saving the accent is not available", true)
		return
	}
	name := theme.CurrentName()
	path, err := m.save(name)
	if err != nil {
		m.setStatus(fmt.Sprintf("Save failed: %v", err), true)
		return
	}
	m.setStatus(fmt.Sprintf("Saved accent %s to %s", name, path), false)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusIsErr = isErr
}

// Selected returns the constant under the cursor.
func (m *Model) Selected() palette.Constant {
	r := m.rows[m.cursor.row]
	ref := r.refs[m.cursor.col]
	return palette.Constant{Name: ref.Constant(), Ref: ref, Hex: r.hexes[m.cursor.col]}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	st := currentStyles()
	c := NewCanvas(m.width, m.height)
	c.Fill(theme.Current().Background())

	c.DrawStringAt(0, 0, m.renderHeader(st))
	if m.mode == modeTable {
		c.DrawStringAt(0, 2, m.viewport.View())
	} else {
		c.DrawStringAt(0, 2, m.renderGrid(st))
	}
	c.DrawStringAt(0, m.height-2, m.renderDetail(st))
	c.DrawStringAt(0, m.height-1, m.renderStatus(st))

	if m.showHelp {
		c.CenterOverlay(renderHelpOverlay(m.keys, st), 1, 1)
	}
	return c.Render()
}

func (m *Model) renderHeader(st styles) string {
	title := fmt.Sprintf("dainty preview • %s • accent %s", m.variant, theme.CurrentName())
	return st.header.Width(m.width).Render(ansi.Truncate(title, max(m.width-2, 1), "…"))
}

func (m *Model) renderGrid(st styles) string {
	cellWidth := 1
	if m.width >= labelWidth+palette.ScaleSize*2 {
		cellWidth = 2
	}
	lines := make([]string, 0, len(m.rows))
	for ri, r := range m.rows {
		labelStyle := st.label
		if ri == m.cursor.row {
			labelStyle = st.selected
		}
		var b strings.Builder
		b.WriteString(labelStyle.Width(labelWidth).Render(ansi.Truncate(r.label, labelWidth-1, "…")))
		for ci, hex := range r.hexes {
			cell := strings.Repeat(" ", cellWidth)
			style := lipgloss.NewStyle().Background(lipgloss.Color(hex))
			if ri == m.cursor.row && ci == m.cursor.col {
				cell = strings.Repeat("▒", cellWidth)
				style = style.Foreground(markerColor(hex))
			}
			b.WriteString(style.Render(cell))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// markerColor picks black or white, whichever stands out on hex.
func markerColor(hex string) lipgloss.Color {
	if l, err := color.Luminance(hex); err == nil && l > 0.4 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#ffffff")
}

func (m *Model) renderDetail(st styles) string {
	sel := m.Selected()
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(sel.Hex)).Render("    ")
	text := st.constant.Render(sel.Name) + st.detail.Render(fmt.Sprintf("  %s  %s  ", sel.Ref, sel.Hex)) + swatch
	if m.mode == modeTable {
		text = st.detail.Render(fmt.Sprintf("%d search-replace entries (%d unchanged)", len(m.table.Entries), m.nullCount()))
	}
	return st.detail.Width(m.width).Render(text)
}

func (m *Model) renderStatus(st styles) string {
	if m.searching {
		return st.status.Width(m.width).Render(m.search.View())
	}
	if m.status != "" {
		style := st.success
		if m.statusIsErr {
			style = st.errText
		}
		return style.Width(m.width).Render(ansi.Truncate(m.status, m.width, "…"))
	}
	return st.status.Width(m.width).Render(ansi.Truncate("? help • / jump • y copy hex • c copy name • a accent • tab replacements • q quit", m.width, "…"))
}

func (m *Model) nullCount() int {
	n := 0
	for _, e := range m.table.Entries {
		if e.IsNull() {
			n++
		}
	}
	return n
}

// refreshTable re-renders the search-replace listing into the viewport.
func (m *Model) refreshTable() {
	if m.table == nil {
		return
	}
	st := currentStyles()
	lines := make([]string, 0, len(m.table.Entries))
	for _, e := range m.table.Entries {
		from := lipgloss.NewStyle().Background(lipgloss.Color(e.Find)).Render("  ")
		line := fmt.Sprintf("%s %s → ", from, st.label.Render(e.Find))
		if e.IsNull() {
			line += st.null.Render("unchanged")
		} else {
			to := lipgloss.NewStyle().Background(lipgloss.Color(e.Replace)).Render("  ")
			line += to + " " + st.label.Render(e.Replace)
		}
		lines = append(lines, line)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}
