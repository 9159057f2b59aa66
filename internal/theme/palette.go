package theme

import (
	"github.com/charmbracelet/lipgloss"

	"dainty/internal/palette"
)

// PaletteTheme maps the semantic roles onto steps of a generated palette.
// Dark terminals read from the dark end of each scale, light terminals from
// the light end. Accent roles come from the scale named by accent.
type PaletteTheme struct {
	p      *palette.Palette
	accent string
}

// NewPaletteTheme themes the UI from p using accent for the accent roles.
func NewPaletteTheme(p *palette.Palette, accent string) PaletteTheme {
	return PaletteTheme{p: p, accent: accent}
}

func (t PaletteTheme) step(scale string, dark, light int) lipgloss.AdaptiveColor {
	d, _ := t.p.At(scale, dark)
	l, _ := t.p.At(scale, light)
	return lipgloss.AdaptiveColor{Dark: d, Light: l}
}

func (t PaletteTheme) Primary() lipgloss.AdaptiveColor { return t.step(t.accent, 20, 16) }
func (t PaletteTheme) Secondary() lipgloss.AdaptiveColor { return t.step(t.accent, 28, 12) }
func (t PaletteTheme) Accent() lipgloss.AdaptiveColor { return t.step(t.accent, 34, 8) }

func (t PaletteTheme) Error() lipgloss.AdaptiveColor { return t.step("oranges", 26, 16) }

func (t PaletteTheme) Warning() lipgloss.AdaptiveColor {
	amber, _ := t.p.Color("amberLighter")
	light, _ := t.p.At("oranges", 20)
	return lipgloss.AdaptiveColor{Dark: amber, Light: light}
}

func (t PaletteTheme) Success() lipgloss.AdaptiveColor { return t.step("greens", 30, 14) }
func (t PaletteTheme) Info() lipgloss.AdaptiveColor { return t.step("blues", 30, 14) }

func (t PaletteTheme) Text() lipgloss.AdaptiveColor { return t.step("blueGrays", 32, 6) }
func (t PaletteTheme) TextMuted() lipgloss.AdaptiveColor { return t.step("blueGrays", 20, 18) }
func (t PaletteTheme) TextEmphasized() lipgloss.AdaptiveColor { return t.step("blueGrays", 36, 2) }

func (t PaletteTheme) Background() lipgloss.AdaptiveColor { return t.step("blueGrays", 0, 39) }
func (t PaletteTheme) BackgroundSecondary() lipgloss.AdaptiveColor { return t.step("blueGrays", 4, 36) }
func (t PaletteTheme) BackgroundDarker() lipgloss.AdaptiveColor { return t.step("blueGrays", 2, 38) }

func (t PaletteTheme) BorderNormal() lipgloss.AdaptiveColor { return t.step("blueGrays", 8, 30) }
func (t PaletteTheme) BorderFocused() lipgloss.AdaptiveColor { return t.step(t.accent, 24, 16) }
func (t PaletteTheme) BorderDim() lipgloss.AdaptiveColor { return t.step("blueGrays", 4, 34) }

// RegisterPalette registers one theme per accent candidate of p, named after
// the scale, and activates p's own accent.
func RegisterPalette(p *palette.Palette) {
	for _, name := range palette.AccentCandidates() {
		RegisterTheme(name, NewPaletteTheme(p, name))
	}
	SetTheme(p.Accent())
}
