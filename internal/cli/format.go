package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/gitkarasune/pix/internal/colour"
)

// outputFormat selects how a command renders its result.
type outputFormat struct {
	value   string
	allowed []string
}

func newOutputFormat(def string, allowed ...string) *outputFormat {
	return &outputFormat{value: def, allowed: allowed}
}

// String implements pflag.Value.
func (f *outputFormat) String() string { return f.value }

// Set implements pflag.Value.
func (f *outputFormat) Set(v string) error {
	v = strings.ToLower(v)
	if !slices.Contains(f.allowed, v) {
		return fmt.Errorf("unknown format %q (valid: %s)", v, strings.Join(f.allowed, ", "))
	}
	f.value = v
	return nil
}

// Type implements pflag.Value.
func (f *outputFormat) Type() string { return "format" }

var (
	_ pflag.Value = (*outputFormat)(nil)
	_ pflag.Value = (*colour.Algorithm)(nil)
)
