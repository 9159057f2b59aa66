package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"dainty/internal/config"
	"dainty/internal/debug"
	appErrors "dainty/internal/errors"
)

const errorWrapWidth = 100

// rootFlags are the persistent flags shared by every command. Values are
// only forwarded to the configuration when the flag was set explicitly.
type rootFlags struct {
	debug         bool
	preset        string
	projectConfig string
	variant       string
	accent        string
	brighten      int
	desaturate    float64
	outputDir     string
	templates     string
	format        string
	noHistory     bool
}

// flagKeys maps flag names to the configuration keys they override.
var flagKeys = map[string]string{
	"variant":    config.KeyVariant,
	"accent":     config.KeyAccent,
	"brighten":   config.KeyBrighten,
	"desaturate": config.KeyDesaturate,
	"output":     config.KeyOutputDir,
	"templates":  config.KeyOutputTemplates,
	"format":     config.KeyOutputFormat,
}

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "dainty",
		Short: "Generate dainty color palettes and theme replacements",
		Long: `dainty expands a handful of seed colors into 40-step perceptual scales
and resolves a table of color replacements against them, for a dark or
light variant.

Configuration is layered: ~/.dainty/config.yaml, then the nearest
.dainty/config.yaml, then presets/<name>.yaml, then DAINTY_* environment
variables, then flags.

Quick start:
  dainty generate                  # write palette.json, replacements.json and templates
  dainty generate --variant light  # the light variant
  dainty constants blues           # list color constants
  dainty preview                   # browse the palette interactively`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, flags)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			debug.Close()
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&flags.debug, "debug", false, "Write a debug log to ~/.dainty/debug.log")
	pf.StringVarP(&flags.preset, "preset", "p", "", "Layer presets/<name>.yaml over the project config")
	pf.StringVar(&flags.projectConfig, "config", "", "Project config file (default: nearest .dainty/config.yaml)")
	pf.StringVar(&flags.variant, "variant", "", "Variant to generate (dark, light)")
	pf.StringVar(&flags.accent, "accent", "", "Scale used as accent (blues, bluesLessChrome, greens, purples, oranges)")
	pf.IntVar(&flags.brighten, "brighten", 0, "Scale step used as the new darkest gray (0-39)")
	pf.Float64Var(&flags.desaturate, "desaturate", 0, "Desaturation amount (>= 0)")
	pf.StringVarP(&flags.outputDir, "output", "o", "", "Output directory")
	pf.StringVar(&flags.templates, "templates", "", "Templates directory")
	pf.StringVar(&flags.format, "format", "", "Output format (rich, plain, json)")
	pf.BoolVar(&flags.noHistory, "no-history", false, "Do not record this run in the history database")

	cmd.AddCommand(generateCommand())
	cmd.AddCommand(constantsCommand())
	cmd.AddCommand(previewCommand())
	cmd.AddCommand(historyCommand())
	cmd.AddCommand(versionCommand())

	return cmd
}

func setup(cmd *cobra.Command, flags *rootFlags) error {
	if flags.debug {
		if err := debug.Init(true); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: debug log unavailable: %v\n", err)
		}
	}

	var opts []config.Option
	if flags.preset != "" {
		opts = append(opts, config.WithPreset(flags.preset))
	}
	if flags.projectConfig != "" {
		opts = append(opts, config.WithProjectConfig(flags.projectConfig))
	}
	if err := config.Initialize(opts...); err != nil {
		return err
	}

	overrides := map[string]any{}
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}
	if flags.noHistory {
		overrides[config.KeyHistoryEnabled] = false
	}
	debug.Logf("config sources: %v, flag overrides: %v", config.Sources(), overrides)
	return config.ApplyOverrides(overrides)
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if err != nil {
		printError(stderr, err)
	}
	return err
}

// printError writes err word-wrapped, with its configuration path when known.
func printError(w io.Writer, err error) {
	msg := err.Error()
	if code := appErrors.CodeOf(err); code != appErrors.CodeUnknown {
		msg = fmt.Sprintf("%s [%s]", msg, code)
	}
	_, _ = fmt.Fprintln(w, wordwrap.String("Error: "+msg, errorWrapWidth))
}
