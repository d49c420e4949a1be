package cli

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiPattern matches SGR escape sequences, which take no columns.
var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

// Table lays out rows in space-separated columns. Cells may hold ANSI colour
// swatches; widths count visible characters only.
type Table struct {
	headers   []string
	rows      [][]string
	gap       int
	maxWidths map[int]int
}

// NewTable creates a table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{headers: headers, gap: 2, maxWidths: map[int]int{}}
}

// SetColumnMaxWidth wraps plain-text cells in column col at width.
func (t *Table) SetColumnMaxWidth(col, width int) {
	t.maxWidths[col] = width
}

// AddRow appends row, padded or truncated to the header count.
func (t *Table) AddRow(row []string) {
	fitted := make([]string, len(t.headers))
	copy(fitted, row)
	t.rows = append(t.rows, fitted)
}

// Render returns the table, header and dashed rule first.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	cells := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		cells[r] = make([][]string, len(row))
		for c, cell := range row {
			cells[r][c] = wrapText(cell, t.maxWidths[c])
		}
	}

	widths := make([]int, len(t.headers))
	for c, h := range t.headers {
		widths[c] = visibleLen(h)
	}
	for _, row := range cells {
		for c, lines := range row {
			for _, line := range lines {
				widths[c] = max(widths[c], visibleLen(line))
			}
		}
	}

	var b strings.Builder
	sep := strings.Repeat(" ", t.gap)
	writeLine := func(parts []string) {
		for c, p := range parts {
			if c > 0 {
				b.WriteString(sep)
			}
			if c == len(parts)-1 {
				b.WriteString(p)
			} else {
				b.WriteString(padRight(p, widths[c]))
			}
		}
		b.WriteString("\n")
	}

	writeLine(t.headers)
	rule := make([]string, len(widths))
	for c, w := range widths {
		rule[c] = strings.Repeat("-", w)
	}
	writeLine(rule)

	for _, row := range cells {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for i := range height {
			parts := make([]string, len(row))
			for c, lines := range row {
				if i < len(lines) {
					parts[c] = lines[i]
				}
			}
			writeLine(parts)
		}
	}
	return b.String()
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(ansiPattern.ReplaceAllString(s, ""))
}

// padRight pads s with spaces to width visible columns.
func padRight(s string, width int) string {
	if n := visibleLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// wrapText breaks text at word boundaries to fit width. Cells holding escape
// sequences, and a width of zero, leave text untouched.
func wrapText(text string, width int) []string {
	if width <= 0 || visibleLen(text) <= width || ansiPattern.MatchString(text) {
		return []string{text}
	}

	var lines []string
	var line []rune
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > width {
			if len(line) > 0 {
				lines = append(lines, string(line))
				line = nil
			}
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(line) == 0:
			line = w
		case len(line)+1+len(w) <= width:
			line = append(append(line, ' '), w...)
		default:
			lines = append(lines, string(line))
			line = w
		}
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}
