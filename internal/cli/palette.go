package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitkarasune/pix/internal/colour"
	imgload "github.com/gitkarasune/pix/internal/image"
	"github.com/gitkarasune/pix/internal/palette"
	"github.com/gitkarasune/pix/internal/security"
)

type paletteOptions struct {
	colours   int
	algorithm colour.Algorithm
	format    *outputFormat
	outputDir string
	photo     bool
}

func newPaletteCmd(a *app) *cobra.Command {
	opts := &paletteOptions{
		algorithm: colour.AlgorithmFrequency,
		format:    newOutputFormat("text", "text", "json", "css", "tailwind"),
	}

	cmd := &cobra.Command{
		Use:   "palette <image|url|photo-id>",
		Short: "Generate a colour palette from an image",
		Long: `Generate a colour palette from an image file, an image URL, or (with --photo)
an Unsplash photo.

The image is sampled at no more than 100x100 pixels. Harmonies and the
contrast verdict derive from the most dominant colour.

Supported image formats: JPEG, PNG, GIF, WebP

Examples:
  # Palette of a local file
  pix palette wallpaper.jpg

  # Palette of an Unsplash photo, written to ./out
  pix palette --photo Dwu85P9SOIk --output-dir out

  # Just the Tailwind config, from five colours
  pix palette -c 5 -f tailwind wallpaper.png

  # Perceptual clustering instead of exact colour counts
  pix palette --algorithm kmeans wallpaper.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPalette(cmd, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.colours, "colours", "c", colour.DefaultColourCount, "number of dominant colours (1-256)")
	cmd.Flags().VarP(&opts.algorithm, "algorithm", "a", "extraction algorithm (frequency, kmeans)")
	cmd.Flags().VarP(opts.format, "format", "f", "output format (text, json, css, tailwind)")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "write the palette JSON, CSS and Tailwind files to this directory")
	cmd.Flags().BoolVar(&opts.photo, "photo", false, "treat the argument as an Unsplash photo id")
	return cmd
}

func (a *app) runPalette(cmd *cobra.Command, opts *paletteOptions, src string) error {
	cfg := colour.ExtractorConfig{Algorithm: opts.algorithm, ColourCount: opts.colours}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	extractor, err := colour.NewExtractor(cfg.Algorithm)
	if err != nil {
		return err
	}

	engine := palette.NewEngine(
		palette.WithLoader(imgload.NewSmartLoader(a.cfg.HTTPTimeout)),
		palette.WithExtractor(extractor),
		palette.WithColourCount(cfg.ColourCount),
		palette.WithLogger(a.logger.Named("palette")),
	)

	ctx := cmd.Context()
	var p *palette.Palette
	if opts.photo {
		client, err := a.photoClient()
		if err != nil {
			return err
		}
		ph, err := client.Get(ctx, src)
		if err != nil {
			return fmt.Errorf("failed to fetch photo %s: %w", src, err)
		}
		p, err = engine.Generate(ctx, *ph)
		if err != nil {
			return err
		}
	} else {
		if err := imgload.ValidateImagePath(src); err != nil {
			return fmt.Errorf("invalid image path: %w", err)
		}
		p, err = engine.GenerateFrom(ctx, imageIDFor(src), src)
		if err != nil {
			return err
		}
	}

	if opts.outputDir != "" {
		if err := writePaletteFiles(p, opts.outputDir); err != nil {
			return err
		}
		a.logger.Info("palette written", "dir", opts.outputDir, "file", p.Filename())
	}

	out := cmd.OutOrStdout()
	switch opts.format.value {
	case "json":
		data, err := p.ToJSON()
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "css":
		fmt.Fprintln(out, p.CSSVariables)
	case "tailwind":
		fmt.Fprintln(out, p.TailwindConfig)
	default:
		writePaletteText(out, p, a.showSwatches(out))
	}
	return nil
}

// imageIDFor names a local or remote image by its file stem.
func imageIDFor(src string) string {
	name := filepath.Base(src)
	if imgload.IsURL(src) {
		if u, err := url.Parse(src); err == nil {
			name = path.Base(u.Path)
		}
	}
	name = strings.TrimSuffix(name, path.Ext(name))
	if !security.SafeFilename(name) {
		return "image"
	}
	return name
}

func writePaletteFiles(p *palette.Palette, dir string) error {
	files, err := p.Files()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Output directory needs standard permissions
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		target := filepath.Join(dir, name)
		if err := security.ValidateFilePath(target, dir); err != nil {
			return err
		}
		if err := os.WriteFile(target, files[name], 0o644); err != nil { // #nosec G306 - Output files need standard read permissions
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
	}
	return nil
}

func writePaletteText(w io.Writer, p *palette.Palette, swatches bool) {
	hexes := func(cs []string) string {
		if !swatches {
			return strings.Join(cs, " ")
		}
		parts := make([]string, len(cs))
		for i, c := range cs {
			parts[i] = colour.HexSwatch(c, 2)
		}
		return strings.Join(parts, "  ")
	}

	fmt.Fprintf(w, "Palette %s (image %s)\n\n", p.ID, p.ImageID)

	table := NewTable([]string{"#", "Colour", "Contrast vs white"})
	for i, c := range p.DominantColours {
		ratio, _ := colour.Contrast(c, palette.Background)
		cell := c
		if swatches {
			cell = colour.HexSwatch(c, 4)
		}
		table.AddRow([]string{fmt.Sprint(i + 1), cell, fmt.Sprintf("%.2f:1", ratio)})
	}
	fmt.Fprint(w, table.Render())

	fmt.Fprintf(w, "\nComplementary  %s\n", hexes(p.ComplementaryColours))
	fmt.Fprintf(w, "Analogous      %s\n", hexes(p.AnalogousColours))
	fmt.Fprintf(w, "Triadic        %s\n", hexes(p.TriadicColours))
	fmt.Fprintf(w, "\nSeed %s on %s: %.2f:1  AA %s  AAA %s\n",
		p.Seed(), palette.Background, p.Accessibility.ContrastRatio,
		verdict(p.Accessibility.WCAGAA), verdict(p.Accessibility.WCAGAAA))
}

func verdict(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to convert to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
