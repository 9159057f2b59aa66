package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// helpSection represents a group of keybindings for display.
type helpSection struct {
	title string
	rows  [][]string // Each row: [keys, description]
}

// getHelpSections returns the help content organized into sections.
// Text is derived from binding.Help() to keep a single source of truth.
func getHelpSections(keys KeyMap) []helpSection {
	return []helpSection{
		{
			title: "NAVIGATION",
			rows: [][]string{
				{keys.Up.Help().Key, keys.Up.Help().Desc},
				{keys.Left.Help().Key, keys.Left.Help().Desc},
				{keys.Home.Help().Key, keys.Home.Help().Desc},
				{keys.End.Help().Key, keys.End.Help().Desc},
				{keys.Tab.Help().Key, keys.Tab.Help().Desc},
			},
		},
		{
			title: "ACTIONS",
			rows: [][]string{
				{keys.CopyHex.Help().Key, keys.CopyHex.Help().Desc},
				{keys.CopyConstant.Help().Key, keys.CopyConstant.Help().Desc},
				{keys.Accent.Help().Key, keys.Accent.Help().Desc},
				{keys.SaveAccent.Help().Key, keys.SaveAccent.Help().Desc},
				{keys.Search.Help().Key, keys.Search.Help().Desc},
				{keys.Quit.Help().Key, keys.Quit.Help().Desc},
			},
		},
	}
}

// renderHelpOverlay creates the help modal.
func renderHelpOverlay(keys KeyMap, st styles) string {
	sections := getHelpSections(keys)
	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		renderHelpSectionTable(sections[0], st),
		"    ",
		renderHelpSectionTable(sections[1], st),
	)
	content := lipgloss.JoinVertical(lipgloss.Center,
		st.helpTitle.Render("✦ DAINTY PREVIEW HELP ✦"),
		"",
		columns,
		"",
		st.helpDesc.Render("Press ? or Esc to close"),
	)
	return st.helpOverlay.Render(content)
}

// renderHelpSectionTable renders a single help section using lipgloss/table.
func renderHelpSectionTable(section helpSection, st styles) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return st.helpKey.Width(12)
			}
			return st.helpDesc
		}).
		Rows(section.rows...)

	// Hidden borders add an empty top row.
	tableStr := strings.TrimPrefix(t.String(), "\n")
	return lipgloss.JoinVertical(lipgloss.Left,
		st.helpSection.Render(section.title),
		tableStr,
	)
}
