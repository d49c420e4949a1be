package palette

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/gitkarasune/pix/internal/colour"
	imgload "github.com/gitkarasune/pix/internal/image"
	"github.com/gitkarasune/pix/internal/photo"
)

var (
	// ErrLoad is returned when the source image cannot be fetched or decoded.
	ErrLoad = errors.New("failed to load image")

	// ErrRaster is returned when the image cannot be rendered for sampling.
	ErrRaster = colour.ErrRaster

	// ErrNoColours is returned when sampling finds no opaque pixels, so there
	// is no seed to derive harmonies from.
	ErrNoColours = errors.New("image has no opaque colours to sample")
)

// Engine generates palettes. It holds no per-call state and is safe for
// concurrent use if its loader and extractor are.
type Engine struct {
	loader    imgload.Loader
	extractor colour.Extractor
	count     int
	logger    hclog.Logger
	now       func() time.Time
	newID     func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLoader sets the image loader.
func WithLoader(l imgload.Loader) Option {
	return func(e *Engine) { e.loader = l }
}

// WithExtractor sets the dominant colour extractor.
func WithExtractor(x colour.Extractor) Option {
	return func(e *Engine) { e.extractor = x }
}

// WithColourCount sets how many dominant colours Generate keeps.
func WithColourCount(n int) Option {
	return func(e *Engine) { e.count = n }
}

// WithLogger sets the engine logger.
func WithLogger(l hclog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDFunc sets the palette id generator.
func WithIDFunc(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// NewEngine creates an Engine. Defaults: files and URLs via SmartLoader,
// frequency extraction, eight colours, a silent logger, random UUIDs.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		loader:    imgload.NewSmartLoader(0),
		extractor: colour.FrequencyExtractor{},
		count:     colour.DefaultColourCount,
		logger:    hclog.NewNullLogger(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractColours loads src and returns up to count dominant colours, most
// frequent first.
func (e *Engine) ExtractColours(ctx context.Context, src string, count int) ([]string, error) {
	e.logger.Debug("loading image", "src", src)
	img, err := e.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	bounds := img.Bounds()
	e.logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	colours, err := e.extractor.Extract(img, count)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}
	e.logger.Debug("extracted colours", "count", len(colours))
	return colours, nil
}

// Generate builds a palette for p from its small rendition. The full-size
// image is never fetched.
func (e *Engine) Generate(ctx context.Context, p photo.Photo) (*Palette, error) {
	if p.URLs.Small == "" {
		return nil, fmt.Errorf("%w: photo %s has no preview rendition", ErrLoad, p.ID)
	}
	return e.GenerateFrom(ctx, p.ID, p.URLs.Small)
}

// GenerateFrom builds a palette from any loadable source, recording imageID
// as its provenance.
func (e *Engine) GenerateFrom(ctx context.Context, imageID, src string) (*Palette, error) {
	dominant, err := e.ExtractColours(ctx, src, e.count)
	if err != nil {
		return nil, err
	}
	return e.Build(imageID, dominant)
}

// Build assembles a palette from already-extracted dominant colours.
func (e *Engine) Build(imageID string, dominant []string) (*Palette, error) {
	if len(dominant) == 0 {
		return nil, ErrNoColours
	}
	seed := dominant[0]

	harmonies, err := colour.Harmonise(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid seed colour: %w", err)
	}

	ratio, err := colour.Contrast(seed, Background)
	if err != nil {
		return nil, fmt.Errorf("invalid seed colour: %w", err)
	}

	css, err := CSSVariables(dominant)
	if err != nil {
		return nil, err
	}
	tailwind, err := TailwindConfig(dominant)
	if err != nil {
		return nil, err
	}

	p := &Palette{
		ID:                   e.newID(),
		ImageID:              imageID,
		DominantColours:      dominant,
		ComplementaryColours: harmonies.Complementary,
		AnalogousColours:     harmonies.Analogous,
		TriadicColours:       harmonies.Triadic,
		Accessibility:        colour.NewAccessibility(ratio),
		CSSVariables:         css,
		TailwindConfig:       tailwind,
		CreatedAt:            e.now(),
	}
	e.logger.Debug("palette built", "id", p.ID, "image", imageID, "seed", seed,
		"contrast", ratio, "wcag_aa", p.Accessibility.WCAGAA)
	return p, nil
}
