// Package cli provides the command-line interface for pix.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gitkarasune/pix/internal/config"
	"github.com/gitkarasune/pix/internal/photo"
	"github.com/gitkarasune/pix/internal/version"
)

// app is the state shared by every subcommand, resolved once the global
// flags are parsed.
type app struct {
	envFile string
	verbose bool
	quiet   bool
	preview bool

	cfg    *config.Config
	logger hclog.Logger
}

// NewRootCmd builds the pix command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "pix",
		Short: "Photo palettes, harmonies and related photos",
		Long: `pix extracts styling-ready colour palettes from photos and finds related
photos on Unsplash.

A palette holds the dominant colours of an image, complementary, analogous
and triadic harmonies of the most dominant one, its WCAG contrast against
white, and ready-to-paste CSS variables and Tailwind config.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	root.PersistentFlags().BoolVar(&a.preview, "preview", false, "show colour swatches even when stdout is not a terminal")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file to load settings from")

	root.SetVersionTemplate(version.String() + "\n")

	root.AddCommand(
		newVersionCmd(),
		newPaletteCmd(a),
		newContrastCmd(a),
		newHarmonyCmd(a),
		newSearchCmd(a),
		newRelatedCmd(a),
		newDownloadCmd(a),
		newAnalyzeCmd(a),
		newSuggestCmd(a),
	)
	return root
}

// Execute runs the root command. It is called by main.main.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	level := hclog.Info
	switch {
	case a.verbose:
		level = hclog.Debug
	case a.quiet:
		level = hclog.Error
	}
	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "pix",
		Output: cmd.ErrOrStderr(),
		Level:  level,
		Color:  hclog.AutoColor,
	})

	cfg, err := config.Load(a.envFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg
	a.logger.Debug("configuration loaded", "model", cfg.GenAIModel, "download_dir", cfg.DownloadDir, "timeout", cfg.HTTPTimeout)
	return nil
}

// photoClient returns an Unsplash client, failing early without a key.
func (a *app) photoClient() (*photo.Client, error) {
	if a.cfg.UnsplashAccessKey == "" {
		return nil, photo.ErrNoAccessKey
	}
	return photo.NewClient(a.cfg.UnsplashAccessKey,
		photo.WithTimeout(a.cfg.HTTPTimeout),
		photo.WithLogger(a.logger.Named("unsplash")),
	), nil
}

// showSwatches reports whether colour output should carry ANSI swatches.
func (a *app) showSwatches(w io.Writer) bool {
	if a.preview {
		return true
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
