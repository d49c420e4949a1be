package palette

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

//go:embed *.tmpl
var templates embed.FS

// jsonIndent is the indent of the Tailwind colour object.
const jsonIndent = "        "

// CSSVariables renders colours as CSS custom properties on :root, named
// --color-1, --color-2, ... in order.
func CSSVariables(colours []string) (string, error) {
	return render("variables.css.tmpl", struct{ Colours []string }{colours})
}

// TailwindConfig renders colours as a tailwind.config.js theme extension with
// keys brand-1, brand-2, ... in order.
func TailwindConfig(colours []string) (string, error) {
	return render("tailwind.config.js.tmpl", struct{ ColoursJSON string }{brandColoursJSON(colours)})
}

func render(name string, data any) (string, error) {
	tmplContent, err := templates.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).Parse(string(tmplContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// brandColoursJSON writes {"brand-1": c1, ...} with keys in positional order,
// which a Go map would not preserve past brand-9.
func brandColoursJSON(colours []string) string {
	if len(colours) == 0 {
		return "{}"
	}

	var b strings.Builder
	b.WriteString("{\n")
	for i, c := range colours {
		key, _ := json.Marshal(fmt.Sprintf("brand-%d", i+1))
		value, _ := json.Marshal(c)
		b.WriteString(jsonIndent)
		b.Write(key)
		b.WriteString(": ")
		b.Write(value)
		if i < len(colours)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}")
	return b.String()
}
