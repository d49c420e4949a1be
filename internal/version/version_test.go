package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	orig := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = orig[0], orig[1], orig[2] })

	Version, Commit, Date = "1.2.3", "unknown", "unknown"
	if got := String(); !strings.HasPrefix(got, "pix version 1.2.3 (go") {
		t.Errorf("String() = %q", got)
	}

	Commit, Date = "0123456789abcdef", "2024-01-01T00:00:00Z"
	got := String()
	if !strings.Contains(got, "commit: 01234567,") || !strings.Contains(got, "built: 2024-01-01T00:00:00Z") {
		t.Errorf("String() = %q", got)
	}
	if Short() != "1.2.3" {
		t.Errorf("Short() = %q", Short())
	}
}
