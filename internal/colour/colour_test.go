package colour

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"
)

func TestHexRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 5 {
		for g := 0; g < 256; g += 7 {
			for b := 0; b < 256; b += 3 {
				want := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				got, err := ParseHex(want.Hex())
				if err != nil {
					t.Fatalf("ParseHex(%s) error = %v", want.Hex(), err)
				}
				if got != want {
					t.Fatalf("ParseHex(%s) = %v, want %v", want.Hex(), got, want)
				}
			}
		}
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "lower case", input: "#1a2b3c", want: RGB{R: 0x1a, G: 0x2b, B: 0x3c}},
		{name: "upper case", input: "#FFAA00", want: RGB{R: 0xff, G: 0xaa, B: 0x00}},
		{name: "no hash", input: "00ff80", want: RGB{R: 0x00, G: 0xff, B: 0x80}},
		{name: "short form", input: "#fff", wantErr: true},
		{name: "not hex", input: "#gg0000", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "signed", input: "+12345", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidHex) {
					t.Fatalf("ParseHex(%q) error = %v, want ErrInvalidHex", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRGBHexIsZeroPadded(t *testing.T) {
	if got := (RGB{R: 1, G: 2, B: 3}).Hex(); got != "#010203" {
		t.Errorf("Hex() = %s, want #010203", got)
	}
}

func TestHSLRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 3 {
		for g := 0; g < 256; g += 5 {
			for b := 0; b < 256; b += 7 {
				in := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				out := HSLToRGB(RGBToHSL(in))
				if channelDiff(in, out) > 1 {
					t.Fatalf("HSL round trip %v -> %v", in, out)
				}
			}
		}
	}
}

func TestRGBToHSL(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want HSL
	}{
		{name: "red", rgb: RGB{R: 255}, want: HSL{H: 0, S: 1, L: 0.5}},
		{name: "green", rgb: RGB{G: 255}, want: HSL{H: 120, S: 1, L: 0.5}},
		{name: "blue", rgb: RGB{B: 255}, want: HSL{H: 240, S: 1, L: 0.5}},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}, want: HSL{H: 0, S: 0, L: 128.0 / 255}},
		{name: "black", rgb: RGB{}, want: HSL{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToHSL(tt.rgb)
			if math.Abs(got.H-tt.want.H) > 1e-9 || math.Abs(got.S-tt.want.S) > 1e-9 || math.Abs(got.L-tt.want.L) > 1e-9 {
				t.Errorf("RGBToHSL(%v) = %+v, want %+v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestComplementary(t *testing.T) {
	tests := []struct {
		seed string
		want []string
	}{
		{seed: "#ff0000", want: []string{"#ff0000", "#00ffff"}},
		{seed: "#3366cc", want: []string{"#3366cc", "#cc9933"}},
		{seed: "#1a2b3c", want: []string{"#1a2b3c", "#3c2b1a"}},
		{seed: "#808080", want: []string{"#808080", "#808080"}},
		{seed: "#00ff80", want: []string{"#00ff80", "#ff007f"}},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			got, err := Complementary(tt.seed)
			if err != nil {
				t.Fatalf("Complementary() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Complementary(%s) = %v, want %v", tt.seed, got, tt.want)
			}
		})
	}
}

func TestComplementaryIsAnInvolution(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				seed := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				pair, err := Complementary(seed.Hex())
				if err != nil {
					t.Fatal(err)
				}
				back, err := Complementary(pair[1])
				if err != nil {
					t.Fatal(err)
				}
				got, _ := ParseHex(back[1])
				if channelDiff(seed, got) > 1 {
					t.Fatalf("complement of complement of %s = %s", seed.Hex(), back[1])
				}
			}
		}
	}
}

func TestAnalogous(t *testing.T) {
	tests := []struct {
		seed string
		want []string
	}{
		{seed: "#ff0000", want: []string{"#ff0080", "#ff0000", "#ff8000"}},
		{seed: "#3366cc", want: []string{"#33b2cc", "#3366cc", "#4c33cc"}},
		{seed: "#00ff80", want: []string{"#00ff01", "#00ff80", "#00feff"}},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			got, err := Analogous(tt.seed)
			if err != nil {
				t.Fatalf("Analogous() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Analogous(%s) = %v, want %v", tt.seed, got, tt.want)
			}
		})
	}
}

func TestTriadic(t *testing.T) {
	tests := []struct {
		seed string
		want []string
	}{
		{seed: "#ff0000", want: []string{"#ff0000", "#00ff00", "#0000ff"}},
		{seed: "#3366cc", want: []string{"#3366cc", "#cc3366", "#66cc33"}},
		{seed: "#1a2b3c", want: []string{"#1a2b3c", "#3c1a2b", "#2b3c1a"}},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			got, err := Triadic(tt.seed)
			if err != nil {
				t.Fatalf("Triadic() error = %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Triadic(%s) = %v, want %v", tt.seed, got, tt.want)
			}
		})
	}
}

func TestHarmoniesKeepSeedInPlace(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				seed := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}.Hex()
				h, err := Harmonise(seed)
				if err != nil {
					t.Fatal(err)
				}
				if h.Complementary[0] != seed {
					t.Fatalf("complementary[0] = %s, want %s", h.Complementary[0], seed)
				}
				if h.Analogous[1] != seed {
					t.Fatalf("analogous[1] = %s, want %s", h.Analogous[1], seed)
				}
				if h.Triadic[0] != seed {
					t.Fatalf("triadic[0] = %s, want %s", h.Triadic[0], seed)
				}
			}
		}
	}
}

func TestHarmoniesReturnSeedAsGiven(t *testing.T) {
	for _, seed := range []string{"#FF0000", "ff0000", "FF0000"} {
		t.Run(seed, func(t *testing.T) {
			h, err := Harmonise(seed)
			if err != nil {
				t.Fatalf("Harmonise() error = %v", err)
			}
			if want := []string{seed, "#00ffff"}; !slices.Equal(h.Complementary, want) {
				t.Errorf("complementary = %v, want %v", h.Complementary, want)
			}
			if h.Analogous[1] != seed {
				t.Errorf("analogous[1] = %s, want %s", h.Analogous[1], seed)
			}
			if want := []string{seed, "#00ff00", "#0000ff"}; !slices.Equal(h.Triadic, want) {
				t.Errorf("triadic = %v, want %v", h.Triadic, want)
			}
		})
	}
}

func TestHarmonyInvalidSeed(t *testing.T) {
	if _, err := Harmonise("not-a-colour"); !errors.Is(err, ErrInvalidHex) {
		t.Errorf("Harmonise() error = %v, want ErrInvalidHex", err)
	}
}

// ratioTolerance is relative. math.Pow may differ from other runtimes' pow by
// a few ulp, so ratios are not compared bit-for-bit.
const ratioTolerance = 1e-12

func TestContrast(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "black on white", a: "#000000", b: "#ffffff", want: 21},
		{name: "same colour", a: "#3366cc", b: "#3366cc", want: 1},
		{name: "red on white", a: "#ff0000", b: "#ffffff", want: 3.9984767707539985},
		{name: "blue on white", a: "#3366cc", b: "#ffffff", want: 5.366401794534013},
		{name: "navy on white", a: "#1a2b3c", b: "#ffffff", want: 14.435747253809861},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Contrast(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Contrast() error = %v", err)
			}
			if math.Abs(got-tt.want) > ratioTolerance*tt.want {
				t.Errorf("Contrast(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestContrastIsSymmetric(t *testing.T) {
	colours := []string{"#000000", "#ffffff", "#ff0000", "#3366cc", "#1a2b3c", "#808080", "#00ff80"}
	for _, a := range colours {
		for _, b := range colours {
			ab, _ := Contrast(a, b)
			ba, _ := Contrast(b, a)
			if ab != ba {
				t.Errorf("Contrast(%s, %s) = %v but Contrast(%s, %s) = %v", a, b, ab, b, a, ba)
			}
			if ab < 1 {
				t.Errorf("Contrast(%s, %s) = %v, want >= 1", a, b, ab)
			}
			if a == b && ab != 1 {
				t.Errorf("Contrast(%s, %s) = %v, want 1", a, b, ab)
			}
		}
	}
}

func TestContrastInvalidHex(t *testing.T) {
	if _, err := Contrast("#000000", "white"); !errors.Is(err, ErrInvalidHex) {
		t.Errorf("Contrast() error = %v, want ErrInvalidHex", err)
	}
}

func TestNewAccessibility(t *testing.T) {
	tests := []struct {
		ratio   float64
		wantAA  bool
		wantAAA bool
	}{
		{ratio: 4.49, wantAA: false, wantAAA: false},
		{ratio: 4.5, wantAA: true, wantAAA: false},
		{ratio: 6.99, wantAA: true, wantAAA: false},
		{ratio: 7.0, wantAA: true, wantAAA: true},
		{ratio: 21, wantAA: true, wantAAA: true},
	}

	for _, tt := range tests {
		got := NewAccessibility(tt.ratio)
		if got.WCAGAA != tt.wantAA || got.WCAGAAA != tt.wantAAA || got.ContrastRatio != tt.ratio {
			t.Errorf("NewAccessibility(%v) = %+v, want AA=%v AAA=%v", tt.ratio, got, tt.wantAA, tt.wantAAA)
		}
	}
}

func channelDiff(a, b RGB) int {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return max(d(a.R, b.R), d(a.G, b.G), d(a.B, b.B))
}

func TestSwatches(t *testing.T) {
	red := RGB{R: 255}
	if got, want := Swatch(red, 2), "\x1b[48;2;255;0;0m  \x1b[0m"; got != want {
		t.Errorf("Swatch() = %q, want %q", got, want)
	}
	if got := Swatch(red, 0); !strings.Contains(got, strings.Repeat(" ", defaultWidth)) {
		t.Errorf("Swatch() with zero width = %q", got)
	}

	// red text on white
	if got, want := Sample(red, RGB{R: 255, G: 255, B: 255}, "Aa"), "\x1b[48;2;255;255;255m\x1b[38;2;255;0;0m Aa \x1b[0m"; got != want {
		t.Errorf("Sample() = %q, want %q", got, want)
	}

	if got := HexSwatch("nope", 2); got != "nope" {
		t.Errorf("HexSwatch(invalid) = %q", got)
	}
	if got := HexSwatch("#00ff00", 1); !strings.HasSuffix(got, "\x1b[0m #00ff00") {
		t.Errorf("HexSwatch() = %q", got)
	}
}
