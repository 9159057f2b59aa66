package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#7D56F4")
	dimColor     = lipgloss.Color("#6272A4")
	textColor    = lipgloss.Color("#F8F8F2")
	goodColor    = lipgloss.Color("#50FA7B")
)

// topUsageShown caps the scales listed in the summary.
const topUsageShown = 3

// GenerateSummary describes one generate run.
type GenerateSummary struct {
	Variant    string         `json:"variant"`
	Accent     string         `json:"accent"`
	Digest     string         `json:"digest"`
	Categories int            `json:"categories"`
	Entries    int            `json:"searchReplace"`
	Files      []string       `json:"files"`
	Usage      map[string]int `json:"usage"`
	TopUsage   []string       `json:"-"`
}

// printGenerateSummary prints a short styled report of a generate run.
func printGenerateSummary(w io.Writer, summary GenerateSummary) {
	appStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(primaryColor)

	dimStyle := lipgloss.NewStyle().
		Foreground(dimColor)

	statsStyle := lipgloss.NewStyle().
		Foreground(textColor)

	fileStyle := lipgloss.NewStyle().
		Foreground(goodColor)

	digest := shortDigest(summary.Digest)
	header := appStyle.Render("dainty") +
		dimStyle.Render(fmt.Sprintf(" • %s variant • accent %s • %s", summary.Variant, summary.Accent, digest))

	stats := fmt.Sprintf("%d category rules, %d search-replace entries", summary.Categories, summary.Entries)
	if len(summary.TopUsage) > 0 {
		var parts []string
		for _, name := range summary.TopUsage[:min(topUsageShown, len(summary.TopUsage))] {
			parts = append(parts, fmt.Sprintf("%s %d", name, summary.Usage[name]))
		}
		stats += " (most used: " + strings.Join(parts, ", ") + ")"
	}

	_, _ = fmt.Fprintln(w, header)
	_, _ = fmt.Fprintln(w, statsStyle.Render(stats))
	for _, file := range summary.Files {
		_, _ = fmt.Fprintln(w, fileStyle.Render("  ✓ ")+file)
	}
}
