package preview

import (
	"github.com/charmbracelet/lipgloss"

	"dainty/internal/theme"
)

type styles struct {
	header   lipgloss.Style
	label    lipgloss.Style
	selected lipgloss.Style
	detail   lipgloss.Style
	constant lipgloss.Style
	muted    lipgloss.Style
	status   lipgloss.Style
	success  lipgloss.Style
	errText  lipgloss.Style
	null     lipgloss.Style

	helpOverlay lipgloss.Style
	helpTitle   lipgloss.Style
	helpSection lipgloss.Style
	helpKey     lipgloss.Style
	helpDesc    lipgloss.Style
}

// currentStyles builds the styles from the active theme.
func currentStyles() styles {
	th := theme.Current()
	return styles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(th.TextEmphasized()).
			Background(th.Primary()).
			Padding(0, 1),
		label: lipgloss.NewStyle().
			Foreground(th.TextMuted()).
			Background(th.Background()),
		selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Accent()).
			Background(th.Background()),
		detail: lipgloss.NewStyle().
			Foreground(th.Text()).
			Background(th.BackgroundSecondary()),
		constant: lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Accent()).
			Background(th.BackgroundSecondary()),
		muted: lipgloss.NewStyle().
			Foreground(th.TextMuted()).
			Background(th.Background()),
		status: lipgloss.NewStyle().
			Foreground(th.Info()).
			Background(th.BackgroundDarker()),
		success: lipgloss.NewStyle().
			Foreground(th.Success()).
			Background(th.BackgroundDarker()),
		errText: lipgloss.NewStyle().
			Foreground(th.Error()).
			Background(th.BackgroundDarker()),
		null: lipgloss.NewStyle().
			Italic(true).
			Foreground(th.Warning()).
			Background(th.Background()),

		helpOverlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.BorderFocused()).
			Background(th.BackgroundSecondary()).
			Padding(1, 2),
		helpTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Accent()),
		helpSection: lipgloss.NewStyle().
			Bold(true).
			Foreground(th.Secondary()),
		helpKey: lipgloss.NewStyle().
			Foreground(th.Primary()),
		helpDesc: lipgloss.NewStyle().
			Foreground(th.Text()),
	}
}
