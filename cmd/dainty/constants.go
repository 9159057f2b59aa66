package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dainty/internal/config"
	"dainty/internal/palette"
	"dainty/internal/report"
)

const defaultWidth = 80

type constantJSON struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Hex  string `json:"hex"`
}

func constantsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "constants [query]",
		Short: "List the color constants of the generated palette",
		Long: "List every color constant usable in replacement overrides, optionally\n" +
			"filtered by a fuzzy query.\n\n" +
			"Examples:\n" +
			"  dainty constants\n" +
			"  dainty constants bluegray\n" +
			"  dainty constants --swatches\n" +
			"  dainty constants --format json",
		Args: cobra.MaximumNArgs(1),
		RunE: runConstants,
	}
	cmd.Flags().Bool("swatches", false, "Print one colored row per scale instead of the listing")
	return cmd
}

func runConstants(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	warnUnknownSeeds(cmd.ErrOrStderr(), cfg.UnknownSeeds)
	p, err := palette.Generate(cfg.Palette)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if swatches, _ := cmd.Flags().GetBool("swatches"); swatches {
		_, err := fmt.Fprintln(out, report.Swatches(p))
		return err
	}

	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	constants := report.Filter(p.Constants(), query)

	if cfg.Output.Format == config.FormatJSON {
		items := make([]constantJSON, len(constants))
		for i, c := range constants {
			items[i] = constantJSON{Name: c.Name, Path: c.Ref.String(), Hex: c.Hex}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	format := cfg.Output.Format
	if format == config.FormatRich && !isTerminal(os.Stdout) {
		format = config.FormatPlain
	}
	render := report.NewRenderer(format, terminalWidth())
	_, err = fmt.Fprintln(out, render(report.ConstantsMarkdown(p, constants)))
	return err
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return defaultWidth
}
