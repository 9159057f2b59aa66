// Package theme provides the semantic colors of the preview UI, derived from
// a generated palette.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the semantic colors of the preview UI.
// All methods return AdaptiveColor for automatic light/dark terminal support.
type Theme interface {
	// Base colors
	Primary() lipgloss.AdaptiveColor   // Header background, cursor
	Secondary() lipgloss.AdaptiveColor // Labels, links
	Accent() lipgloss.AdaptiveColor    // Constant names

	// Status colors
	Error() lipgloss.AdaptiveColor   // Errors
	Warning() lipgloss.AdaptiveColor // Null replacements
	Success() lipgloss.AdaptiveColor // Copy confirmations
	Info() lipgloss.AdaptiveColor    // Status bar hints

	// Text colors
	Text() lipgloss.AdaptiveColor           // Primary text
	TextMuted() lipgloss.AdaptiveColor      // De-emphasized text
	TextEmphasized() lipgloss.AdaptiveColor // Bold/important text

	// Background colors
	Background() lipgloss.AdaptiveColor          // Main background
	BackgroundSecondary() lipgloss.AdaptiveColor // Selected rows, overlays
	BackgroundDarker() lipgloss.AdaptiveColor    // Header and status bar

	// Border colors
	BorderNormal() lipgloss.AdaptiveColor  // Default borders
	BorderFocused() lipgloss.AdaptiveColor // Active/focused borders
	BorderDim() lipgloss.AdaptiveColor     // Subtle borders
}
