package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"dainty/internal/build"
	"dainty/internal/config"
	"dainty/internal/emit"
	"dainty/internal/history"
)

func generateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate the palette, replacement tables and templates",
		Long: "Generate the palette from the configured seeds, resolve the category and\n" +
			"search-replace tables for the selected variant, and write palette.json,\n" +
			"replacements.json and every file in the templates directory to the output\n" +
			"directory.\n\n" +
			"Examples:\n" +
			"  dainty generate\n" +
			"  dainty generate --variant light -o dist\n" +
			"  dainty generate -p high-contrast --desaturate 0.5",
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	warnUnknownSeeds(cmd.ErrOrStderr(), cfg.UnknownSeeds)

	res, err := build.Run(cfg)
	if err != nil {
		return err
	}
	written, err := emit.Write(cmd.Context(), emit.Options{OutDir: cfg.Output.Dir, TemplatesDir: cfg.Output.Templates}, res)
	if err != nil {
		return err
	}
	digest, err := res.Digest()
	if err != nil {
		return err
	}

	if cfg.History.Enabled {
		if err := recordRun(cmd.Context(), cfg, res, digest); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: run not recorded: %v\n", err)
		}
	}

	summary := GenerateSummary{
		Variant:    string(res.Variant),
		Accent:     res.Palette.Accent(),
		Digest:     digest,
		Categories: res.Categories.Len(),
		Entries:    len(res.SearchReplace.Entries),
		Files:      written,
		Usage:      res.Usage(),
		TopUsage:   res.UsageNames(),
	}
	if cfg.Output.Format == config.FormatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	printGenerateSummary(cmd.OutOrStdout(), summary)
	return nil
}

func warnUnknownSeeds(w io.Writer, names []string) {
	if len(names) == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "Warning: ignoring unknown color overrides: %s\n", strings.Join(names, ", "))
}

func recordRun(ctx context.Context, cfg *config.Configuration, res *build.Result, digest string) error {
	store, err := history.Open(ctx, cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()
	_, err = store.Record(ctx, history.Run{
		Variant:    string(res.Variant),
		Accent:     res.Palette.Accent(),
		Sources:    cfg.Sources,
		Digest:     digest,
		Categories: res.Categories.Len(),
		Entries:    len(res.SearchReplace.Entries),
		Usage:      res.Usage(),
	})
	return err
}
