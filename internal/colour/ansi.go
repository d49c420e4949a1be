package colour

import (
	"fmt"
	"strings"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
	defaultWidth = 8
)

// Swatch returns a solid ANSI truecolour block width cells wide.
func Swatch(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, c.R, c.G, c.B, ansiSuffix) +
		strings.Repeat(" ", width) + ansiReset
}

// Sample renders text in fg on a bg background, padded by one cell each side.
func Sample(fg, bg RGB, text string) string {
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, bg.R, bg.G, bg.B, ansiSuffix) +
		fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, fg.R, fg.G, fg.B, ansiSuffix) +
		" " + text + " " + ansiReset
}

// HexSwatch renders a hex colour as a swatch followed by its code. Invalid
// hex strings are returned unchanged.
func HexSwatch(hex string, width int) string {
	rgb, err := ParseHex(hex)
	if err != nil {
		return hex
	}
	return Swatch(rgb, width) + " " + hex
}
