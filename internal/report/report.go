// Package report renders palette listings for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
	"github.com/sahilm/fuzzy"

	"dainty/internal/palette"
)

// Filter keeps the constants whose name fuzzy-matches query, best match
// first. An empty query keeps everything in palette order.
func Filter(constants []palette.Constant, query string) []palette.Constant {
	query = strings.TrimSpace(query)
	if query == "" {
		return constants
	}
	names := make([]string, len(constants))
	for i, c := range constants {
		names[i] = c.Name
	}
	matches := fuzzy.Find(strings.ToUpper(query), names)
	out := make([]palette.Constant, 0, len(matches))
	for _, m := range matches {
		out = append(out, constants[m.Index])
	}
	return out
}

// ConstantsMarkdown lists constants as markdown tables grouped by scale.
func ConstantsMarkdown(p *palette.Palette, constants []palette.Constant) string {
	var b strings.Builder
	b.WriteString("# Color constants\n\n")
	fmt.Fprintf(&b, "Accent scale: `%s`\n", p.Accent())

	group := ""
	for _, c := range constants {
		name := c.Ref.Name
		if !c.Ref.Indexed {
			name = "Single colors"
		}
		if name != group {
			group = name
			fmt.Fprintf(&b, "\n## %s\n\n| Constant | Path | Value |\n|---|---|---|\n", group)
		}
		fmt.Fprintf(&b, "| `%s` | `%s` | `%s` |\n", c.Name, c.Ref, c.Hex)
	}
	if len(constants) == 0 {
		b.WriteString("\nNo matching constants.\n")
	}
	return b.String()
}

// Swatches renders one line per scale with a colored cell per step.
func Swatches(p *palette.Palette) string {
	width := 0
	for _, name := range p.ScaleNames() {
		width = max(width, len(name))
	}
	var lines []string
	for _, name := range p.ScaleNames() {
		scale, _ := p.Scale(name)
		var row strings.Builder
		for _, hex := range scale {
			row.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(" "))
		}
		lines = append(lines, fmt.Sprintf("%-*s %s", width, name, row.String()))
	}
	return strings.Join(lines, "\n")
}

// NewRenderer returns a markdown renderer for format. "plain" and NO_COLOR
// terminals get word-wrapped text; anything else goes through glamour with
// a style matching the terminal background.
func NewRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "plain" || termenv.EnvNoColor() {
		return fallback
	}
	if style == "" || style == "rich" {
		style = "light"
		if termenv.HasDarkBackground() {
			style = "dark"
		}
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
