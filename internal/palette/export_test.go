package palette

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCSSVariables(t *testing.T) {
	tests := []struct {
		name    string
		colours []string
		want    string
	}{
		{"two", []string{"#ff0000", "#00ff00"}, ":root {\n  --color-1: #ff0000;\n  --color-2: #00ff00;\n}"},
		{"empty", nil, ":root {\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CSSVariables(tt.colours)
			if err != nil {
				t.Fatalf("CSSVariables() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CSSVariables() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTailwindConfig(t *testing.T) {
	got, err := TailwindConfig([]string{"#ff0000"})
	if err != nil {
		t.Fatalf("TailwindConfig() error = %v", err)
	}
	want := "module.exports = {\n  theme: {\n    extend: {\n      colors: {\n        \"brand-1\": \"#ff0000\"\n}\n    }\n  }\n}"
	if got != want {
		t.Errorf("TailwindConfig() = %q, want %q", got, want)
	}
}

func TestTailwindKeyOrder(t *testing.T) {
	colours := make([]string, 12)
	for i := range colours {
		colours[i] = "#000000"
	}
	got, err := TailwindConfig(colours)
	if err != nil {
		t.Fatalf("TailwindConfig() error = %v", err)
	}
	if strings.Index(got, `"brand-2"`) > strings.Index(got, `"brand-10"`) {
		t.Error("brand keys should be in positional order")
	}
	if strings.Count(got, "brand-") != 12 {
		t.Errorf("expected 12 brand keys in %q", got)
	}
}

func TestPaletteExport(t *testing.T) {
	p := &Palette{
		ID:              "id-1",
		ImageID:         "abc",
		DominantColours: []string{"#ff0000"},
		CSSVariables:    ":root {\n}",
		TailwindConfig:  "module.exports = {}",
		CreatedAt:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if p.Filename() != "color-palette-abc.json" {
		t.Errorf("Filename() = %q", p.Filename())
	}

	files, err := p.Files()
	if err != nil {
		t.Fatalf("Files() error = %v", err)
	}
	for _, name := range []string{"color-palette-abc.json", "palette.css", "tailwind.config.js"} {
		if _, ok := files[name]; !ok {
			t.Errorf("Files() missing %s", name)
		}
	}

	var decoded map[string]any
	if err := json.Unmarshal(files["color-palette-abc.json"], &decoded); err != nil {
		t.Fatalf("palette JSON invalid: %v", err)
	}
	for _, key := range []string{"imageId", "dominantColors", "accessibility", "cssVariables", "tailwindConfig", "createdAt"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("palette JSON missing %q", key)
		}
	}
	acc := decoded["accessibility"].(map[string]any)
	if _, ok := acc["wcagAA"]; !ok {
		t.Errorf("accessibility missing wcagAA: %v", acc)
	}

	if !strings.Contains(p.String(), "#ff0000") {
		t.Errorf("String() = %q", p.String())
	}
}
