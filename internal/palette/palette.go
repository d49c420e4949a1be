// Package palette turns an image into a styling-ready colour palette:
// dominant colours, harmonies derived from the most dominant one, a WCAG
// contrast verdict against white, and CSS / Tailwind snippets.
package palette

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gitkarasune/pix/internal/colour"
)

// Background is the colour the seed is scored against.
const Background = "#ffffff"

// Palette is the result of one palette generation. It is not modified after
// it is built.
type Palette struct {
	ID                   string               `json:"id"`
	ImageID              string               `json:"imageId"`
	DominantColours      []string             `json:"dominantColors"`
	ComplementaryColours []string             `json:"complementaryColors"`
	AnalogousColours     []string             `json:"analogousColors"`
	TriadicColours       []string             `json:"triadicColors"`
	Accessibility        colour.Accessibility `json:"accessibility"`
	CSSVariables         string               `json:"cssVariables"`
	TailwindConfig       string               `json:"tailwindConfig"`
	CreatedAt            time.Time            `json:"createdAt"`
}

// Seed returns the most dominant colour, from which every harmony derives.
func (p *Palette) Seed() string {
	if len(p.DominantColours) == 0 {
		return ""
	}
	return p.DominantColours[0]
}

// ToJSON converts the palette to indented JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// Filename is the name a palette export is saved under.
func (p *Palette) Filename() string {
	id := p.ImageID
	if id == "" {
		id = p.ID
	}
	return fmt.Sprintf("color-palette-%s.json", id)
}

// Files returns the palette export files keyed by filename.
func (p *Palette) Files() (map[string][]byte, error) {
	data, err := p.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode palette: %w", err)
	}
	return map[string][]byte{
		p.Filename():         append(data, '\n'),
		"palette.css":        []byte(p.CSSVariables + "\n"),
		"tailwind.config.js": []byte(p.TailwindConfig + "\n"),
	}, nil
}

// String returns a human-readable summary of the palette.
func (p *Palette) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Palette for %s (%d colours)\n", p.ImageID, len(p.DominantColours))
	for i, c := range p.DominantColours {
		fmt.Fprintf(&b, "  %2d: %s\n", i+1, c)
	}
	fmt.Fprintf(&b, "Complementary: %s\n", strings.Join(p.ComplementaryColours, " "))
	fmt.Fprintf(&b, "Analogous:     %s\n", strings.Join(p.AnalogousColours, " "))
	fmt.Fprintf(&b, "Triadic:       %s\n", strings.Join(p.TriadicColours, " "))
	fmt.Fprintf(&b, "Contrast vs %s: %.2f:1 (AA: %s, AAA: %s)\n",
		Background, p.Accessibility.ContrastRatio,
		passFail(p.Accessibility.WCAGAA), passFail(p.Accessibility.WCAGAAA))
	return b.String()
}

func passFail(ok bool) string {
	if ok {
		return "pass"
	}
	return "fail"
}
