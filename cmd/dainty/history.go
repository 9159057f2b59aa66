package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"dainty/internal/config"
	appErrors "dainty/internal/errors"
	"dainty/internal/history"
)

const defaultHistoryLimit = 10

func historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent generate runs",
		Long: "Show recent generate runs recorded in the history database, with the\n" +
			"palette digest and the most referenced scales of each run.",
		Args: cobra.NoArgs,
		RunE: runHistory,
	}
	cmd.Flags().IntP("limit", "n", defaultHistoryLimit, "Number of runs to show")
	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		return appErrors.At(appErrors.CodeConfigurationError, config.KeyHistoryPath, "history is disabled", nil)
	}
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.Open(cmd.Context(), cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()
	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Output.Format == config.FormatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(out, "No runs recorded yet.")
		return err
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", run.ID),
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Variant,
			run.Accent,
			shortDigest(run.Digest),
			topUsage(run.Usage),
		})
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(dimColor)).
		Headers("ID", "WHEN", "VARIANT", "ACCENT", "DIGEST", "MOST USED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Rows(rows...)
	_, err = fmt.Fprintln(out, t.String())
	return err
}

func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}

// topUsage formats the most referenced names, highest count first.
func topUsage(usage map[string]int) string {
	names := make([]string, 0, len(usage))
	for name := range usage {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if usage[a] != usage[b] {
			return usage[b] - usage[a]
		}
		return strings.Compare(a, b)
	})
	parts := make([]string, 0, topUsageShown)
	for _, name := range names[:min(topUsageShown, len(names))] {
		parts = append(parts, fmt.Sprintf("%s %d", name, usage[name]))
	}
	return strings.Join(parts, ", ")
}
