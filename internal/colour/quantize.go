package colour

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"math"
	"slices"

	xdraw "golang.org/x/image/draw"
)

const (
	// MaxSampleDimension bounds both sides of the sampling raster.
	MaxSampleDimension = 100

	// DefaultColourCount is the number of dominant colours returned when the
	// caller does not ask for a specific count.
	DefaultColourCount = 8

	// sampleStride visits one pixel in every four.
	sampleStride = 4

	// alphaThreshold drops pixels that are mostly transparent.
	alphaThreshold = 128
)

// ErrRaster is returned when an image cannot be rendered into a sampling raster.
var ErrRaster = errors.New("cannot prepare raster buffer")

// Rasterise renders img into a non-premultiplied RGBA buffer no larger than
// MaxSampleDimension on either side, preserving aspect ratio. Images that
// already fit are copied at their own size; nothing is upscaled.
func Rasterise(img image.Image) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image cannot be nil", ErrRaster)
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: image has no pixels (%dx%d)", ErrRaster, width, height)
	}

	scale := math.Min(
		float64(MaxSampleDimension)/float64(width),
		float64(MaxSampleDimension)/float64(height),
	)
	if scale >= 1 {
		dst := image.NewNRGBA(image.Rect(0, 0, width, height))
		xdraw.Draw(dst, dst.Bounds(), img, bounds.Min, xdraw.Src)
		return dst, nil
	}

	w := max(int(float64(width)*scale), 1)
	h := max(int(float64(height)*scale), 1)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst, nil
}

// DominantColours returns up to count hex colours from img, most frequent
// first. A count below one selects DefaultColourCount.
func DominantColours(img image.Image, count int) ([]string, error) {
	raster, err := Rasterise(img)
	if err != nil {
		return nil, err
	}
	return QuantizePixels(raster.Pix, count), nil
}

// QuantizePixels counts exact colours over a packed RGBA byte buffer,
// visiting every fourth pixel and skipping pixels with alpha below 128.
// Colours with equal counts keep the order in which they were first seen.
func QuantizePixels(pix []uint8, count int) []string {
	if count < 1 {
		count = DefaultColourCount
	}

	counts := make(map[string]int)
	var order []string
	for _, rgb := range samplePixels(pix) {
		hex := rgb.Hex()
		if _, seen := counts[hex]; !seen {
			order = append(order, hex)
		}
		counts[hex]++
	}

	slices.SortStableFunc(order, func(a, b string) int {
		return cmp.Compare(counts[b], counts[a])
	})

	if len(order) > count {
		order = order[:count]
	}
	return order
}

// samplePixels returns the pixels QuantizePixels would count, in visit order.
func samplePixels(pix []uint8) []RGB {
	samples := make([]RGB, 0, len(pix)/(sampleStride*4)+1)
	for i := 0; i+3 < len(pix); i += sampleStride * 4 {
		if pix[i+3] < alphaThreshold {
			continue
		}
		samples = append(samples, RGB{R: pix[i], G: pix[i+1], B: pix[i+2]})
	}
	return samples
}
