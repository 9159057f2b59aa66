package preview

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas is a lightweight helper around cellbuf.Screen that lets us compose
// lipgloss-rendered strings into a cell buffer before turning the frame back
// into a string for Bubble Tea.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
}

func NewCanvas(width, height int) *Canvas {
	width = max(width, 1)
	height = max(height, 1)
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{
		ShowCursor: false,
		AltScreen:  false,
	})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// Fill paints the entire canvas with the provided background color.
func (c *Canvas) Fill(bg lipgloss.TerminalColor) {
	fill := lipgloss.NewStyle().
		Background(bg).
		Width(c.width).
		Height(c.height).
		Render("")
	c.DrawStringAt(0, 0, fill)
}

// DrawStringAt writes the provided block starting at x,y. Newlines are
// normalized so each line begins at column x.
func (c *Canvas) DrawStringAt(x, y int, content string) {
	if content == "" {
		return
	}
	for i, line := range splitLines(content) {
		row := y + i
		if row < 0 {
			continue
		}
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(max(x, 0), row, line, "")
	}
}

// CenterOverlay renders the overlay centered within the canvas, keeping
// topMargin and bottomMargin rows free.
func (c *Canvas) CenterOverlay(overlay string, topMargin, bottomMargin int) {
	lines := splitLines(overlay)
	if len(lines) == 0 {
		return
	}
	overlayWidth := min(maxLineWidth(lines), c.width)
	usable := max(c.height-max(topMargin, 0)-max(bottomMargin, 0), len(lines))
	startY := max(topMargin, 0) + (usable-len(lines))/2
	startY = max(min(startY, c.height-max(bottomMargin, 0)-len(lines)), 0)
	startX := max((c.width-overlayWidth)/2, 0)
	c.DrawStringAt(startX, startY, overlay)
}

// Render returns the composed frame as a newline-delimited string suitable for
// Bubble Tea consumption.
func (c *Canvas) Render() string {
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

func maxLineWidth(lines []string) int {
	width := 0
	for _, line := range lines {
		width = max(width, lipgloss.Width(line))
	}
	return width
}
