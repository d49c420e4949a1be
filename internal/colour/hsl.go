package colour

import "math"

// HSL is a colour in HSL space. H is in degrees [0, 360), S and L in [0, 1].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// RGBToHSL converts RGB to HSL.
// Achromatic colours (max == min) have zero hue and saturation.
func RGBToHSL(rgb RGB) HSL {
	r := float64(rgb.R) / 255
	g := float64(rgb.G) / 255
	b := float64(rgb.B) / 255

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	l := (maxVal + minVal) / 2

	if maxVal == minVal {
		return HSL{H: 0, S: 0, L: l}
	}

	d := maxVal - minVal
	var s float64
	if l > 0.5 {
		s = d / (2 - maxVal - minVal)
	} else {
		s = d / (maxVal + minVal)
	}

	// h is the fraction of a full turn until the final scale to degrees.
	var h float64
	switch maxVal {
	case r:
		offset := 0.0
		if g < b {
			offset = 6
		}
		h = ((g-b)/d + offset) / 6
	case g:
		h = ((b-r)/d + 2) / 6
	case b:
		h = ((r-g)/d + 4) / 6
	}

	return HSL{H: h * 360, S: s, L: l}
}

// HSLToRGB converts HSL back to RGB, rounding each channel to the nearest
// integer.
func HSLToRGB(hsl HSL) RGB {
	h := hsl.H / 360
	s, l := hsl.S, hsl.L

	var r, g, b float64
	if s == 0 {
		r, g, b = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		r = hueToRGB(p, q, h+1.0/3)
		g = hueToRGB(p, q, h)
		b = hueToRGB(p, q, h-1.0/3)
	}

	return RGB{R: toChannel(r), G: toChannel(g), B: toChannel(b)}
}

// hueToRGB samples one channel of the HSL hexcone. t is a fraction of a turn.
func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func toChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v*255))))
}

// rotate returns hsl with the offsets added to its hue in order, then taken
// modulo 360. Callers that rotate backwards pass 360 as a trailing offset so
// the sum stays non-negative.
func (hsl HSL) rotate(offsets ...float64) HSL {
	h := hsl.H
	for _, o := range offsets {
		h += o
	}
	hsl.H = math.Mod(h, 360)
	return hsl
}
