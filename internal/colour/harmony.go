package colour

// Hue offsets, in degrees, for each harmony. The zero offset is the seed.
var (
	analogousOffsets = []float64{-30, 0, 30}
	triadicOffsets   = []float64{0, 120, 240}
)

// Harmonies groups the colour schemes derived from one seed colour.
type Harmonies struct {
	Complementary []string `json:"complementary"`
	Analogous     []string `json:"analogous"`
	Triadic       []string `json:"triadic"`
}

// Complementary returns the seed and the colour opposite it on the wheel.
// The seed is returned as given; derived colours are canonical hex.
func Complementary(seed string) ([]string, error) {
	rgb, err := ParseHex(seed)
	if err != nil {
		return nil, err
	}
	hsl := RGBToHSL(rgb)
	return []string{seed, HSLToRGB(hsl.rotate(180)).Hex()}, nil
}

// Analogous returns the colours 30° either side of the seed, with the seed
// in the middle.
func Analogous(seed string) ([]string, error) {
	rgb, err := ParseHex(seed)
	if err != nil {
		return nil, err
	}
	hsl := RGBToHSL(rgb)

	colours := make([]string, 0, len(analogousOffsets))
	for _, offset := range analogousOffsets {
		if offset == 0 {
			colours = append(colours, seed)
			continue
		}
		colours = append(colours, HSLToRGB(hsl.rotate(offset, 360)).Hex())
	}
	return colours, nil
}

// Triadic returns the seed followed by the colours at +120° and +240°.
func Triadic(seed string) ([]string, error) {
	rgb, err := ParseHex(seed)
	if err != nil {
		return nil, err
	}
	hsl := RGBToHSL(rgb)

	colours := make([]string, 0, len(triadicOffsets))
	for _, offset := range triadicOffsets {
		if offset == 0 {
			colours = append(colours, seed)
			continue
		}
		colours = append(colours, HSLToRGB(hsl.rotate(offset)).Hex())
	}
	return colours, nil
}

// Harmonise derives every harmony from a single seed.
func Harmonise(seed string) (Harmonies, error) {
	comp, err := Complementary(seed)
	if err != nil {
		return Harmonies{}, err
	}
	// The seed parsed once already; the remaining calls cannot fail.
	analogous, _ := Analogous(seed)
	triadic, _ := Triadic(seed)

	return Harmonies{
		Complementary: comp,
		Analogous:     analogous,
		Triadic:       triadic,
	}, nil
}
