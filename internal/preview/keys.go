package preview

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts of the preview.
// Related bindings (Up/Down, Left/Right) share identical help text since they
// appear as a single row in the help overlay.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Home  key.Binding
	End   key.Binding

	// Actions
	CopyHex      key.Binding
	CopyConstant key.Binding
	Accent       key.Binding
	SaveAccent   key.Binding
	Tab          key.Binding
	Help         key.Binding
	Quit         key.Binding

	// Search
	Search key.Binding
	Enter  key.Binding
	Escape key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓  j/k", "Previous/next scale"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↑/↓  j/k", "Previous/next scale"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→  h/l", "Previous/next step"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("←/→  h/l", "Previous/next step"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home  g", "First step"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End   G", "Last step"),
		),
		CopyHex: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy hex value"),
		),
		CopyConstant: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Copy constant name"),
		),
		Accent: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Cycle accent theme"),
		),
		SaveAccent: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Save accent to config"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "Palette/replacements"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Jump to constant"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "Confirm"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Cancel/close"),
		),
	}
}
