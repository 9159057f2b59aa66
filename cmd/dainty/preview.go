package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dainty/internal/build"
	"dainty/internal/config"
	appErrors "dainty/internal/errors"
	"dainty/internal/preview"
)

func previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Browse the generated palette interactively",
		Long: "Open a terminal browser of the generated palette and the resolved\n" +
			"search-replace table. Press ? inside for the key bindings.",
		Args: cobra.NoArgs,
		RunE: runPreview,
	}
}

func runPreview(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return appErrors.New(appErrors.CodePreconditionViolation, "preview needs an interactive terminal", nil)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	warnUnknownSeeds(cmd.ErrOrStderr(), cfg.UnknownSeeds)
	res, err := build.Run(cfg)
	if err != nil {
		return err
	}

	model := preview.New(res.Palette, res.SearchReplace, res.Variant, preview.WithSaveAccent(config.SaveAccent))
	prog := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run preview: %w", err)
	}
	return nil
}
