package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gitkarasune/pix/internal/colour"
)

func newContrastCmd(a *app) *cobra.Command {
	format := newOutputFormat("text", "text", "json")
	cmd := &cobra.Command{
		Use:   "contrast <hex> <hex>",
		Short: "WCAG contrast ratio of two colours",
		Long: `Print the WCAG 2.x contrast ratio of two colours and whether it meets the
AA (4.5:1) and AAA (7:1) thresholds for normal text.

Examples:
  pix contrast '#1a2b3c' '#ffffff'
  pix contrast ff0000 fff0f0 --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ratio, err := colour.Contrast(args[0], args[1])
			if err != nil {
				return err
			}
			acc := colour.NewAccessibility(ratio)

			out := cmd.OutOrStdout()
			if format.value == "json" {
				return writeJSON(out, acc)
			}

			if a.showSwatches(out) {
				fg, _ := colour.ParseHex(args[0])
				bg, _ := colour.ParseHex(args[1])
				fmt.Fprintln(out, colour.Sample(fg, bg, "Aa"))
			}
			fmt.Fprintf(out, "%.2f:1  AA %s  AAA %s\n", acc.ContrastRatio, verdict(acc.WCAGAA), verdict(acc.WCAGAAA))
			return nil
		},
	}
	cmd.Flags().VarP(format, "format", "f", "output format (text, json)")
	return cmd
}

func newHarmonyCmd(a *app) *cobra.Command {
	format := newOutputFormat("text", "text", "json")
	cmd := &cobra.Command{
		Use:   "harmony <hex>",
		Short: "Complementary, analogous and triadic harmonies of a colour",
		Long: `Rotate a colour around the HSL hue wheel:

  complementary  +180
  analogous      -30, 0, +30
  triadic        0, +120, +240

Examples:
  pix harmony '#3366cc'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := colour.Harmonise(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format.value == "json" {
				return writeJSON(out, h)
			}

			swatches := a.showSwatches(out)
			row := func(name string, cs []string) {
				parts := cs
				if swatches {
					parts = make([]string, len(cs))
					for i, c := range cs {
						parts[i] = colour.HexSwatch(c, 2)
					}
				}
				fmt.Fprintf(out, "%-14s %s\n", name, strings.Join(parts, "  "))
			}
			row("Complementary", h.Complementary)
			row("Analogous", h.Analogous)
			row("Triadic", h.Triadic)
			return nil
		},
	}
	cmd.Flags().VarP(format, "format", "f", "output format (text, json)")
	return cmd
}
