package colour

import (
	"fmt"
	"image"
	"strings"
)

// Extractor defines the interface for dominant colour extraction algorithms.
type Extractor interface {
	// Extract returns up to count hex colours, most dominant first.
	Extract(img image.Image, count int) ([]string, error)
}

// Algorithm represents the colour extraction algorithm type.
type Algorithm string

const (
	// AlgorithmFrequency counts exact colours over a 1-in-4 pixel sample.
	AlgorithmFrequency Algorithm = "frequency"

	// AlgorithmKMeans clusters the same sample perceptually.
	AlgorithmKMeans Algorithm = "kmeans"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{AlgorithmFrequency, AlgorithmKMeans}
}

// String implements pflag.Value.
func (a *Algorithm) String() string {
	return string(*a)
}

// Set implements pflag.Value.
func (a *Algorithm) Set(v string) error {
	alg := Algorithm(strings.ToLower(v))
	if !IsValidAlgorithm(alg) {
		return fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", v, ValidAlgorithms())
	}
	*a = alg
	return nil
}

// Type implements pflag.Value.
func (a *Algorithm) Type() string {
	return "algorithm"
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// NewExtractor creates a new Extractor based on the specified algorithm.
func NewExtractor(alg Algorithm) (Extractor, error) {
	switch alg {
	case AlgorithmFrequency, "":
		return FrequencyExtractor{}, nil
	case AlgorithmKMeans:
		return NewKMeansExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// FrequencyExtractor is the Extractor form of DominantColours.
type FrequencyExtractor struct{}

// Extract implements Extractor.
func (FrequencyExtractor) Extract(img image.Image, count int) ([]string, error) {
	return DominantColours(img, count)
}

// ExtractorConfig holds configuration for colour extraction.
type ExtractorConfig struct {
	Algorithm   Algorithm
	ColourCount int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm:   AlgorithmFrequency,
		ColourCount: DefaultColourCount,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s", c.Algorithm)
	}
	if c.ColourCount < 1 {
		return fmt.Errorf("colour count must be at least 1, got %d", c.ColourCount)
	}
	if c.ColourCount > 256 {
		return fmt.Errorf("colour count too large: %d (maximum: 256)", c.ColourCount)
	}
	return nil
}
