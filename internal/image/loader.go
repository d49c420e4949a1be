// Package image provides utilities for loading images from files and URLs.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"slices"
	"strings"
	"time"

	_ "golang.org/x/image/webp" // Register WebP format

	httputil "github.com/gitkarasune/pix/internal/util/http"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path or URL.
	Load(ctx context.Context, src string) (image.Image, error)
}

// IsURL reports whether src is an HTTP(S) URL.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// URLLoader fetches and decodes images over HTTP(S).
type URLLoader struct {
	Timeout time.Duration
}

// Load fetches src and decodes it.
func (l *URLLoader) Load(ctx context.Context, src string) (image.Image, error) {
	if !IsURL(src) {
		return nil, fmt.Errorf("not an HTTP(S) URL: %s", src)
	}

	data, err := httputil.Fetch(ctx, src, httputil.FetchOptions{Timeout: l.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	urlLoader  *URLLoader
}

// NewSmartLoader creates a new SmartLoader instance. A zero timeout uses
// the HTTP default.
func NewSmartLoader(timeout time.Duration) *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
		urlLoader:  &URLLoader{Timeout: timeout},
	}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, src string) (image.Image, error) {
	if IsURL(src) {
		return l.urlLoader.Load(ctx, src)
	}
	return l.fileLoader.Load(ctx, src)
}

// ValidateImagePath checks that path is an HTTP(S) URL or a decodable local
// image. URLs are not fetched here to avoid fetching twice.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}
	if IsURL(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// ExtensionFor returns the file extension for a decodable format name, or
// ".jpg" when the format is unknown.
func ExtensionFor(format string) string {
	ext := "." + strings.ToLower(format)
	if ext == ".jpeg" {
		return ".jpg"
	}
	if slices.Contains(SupportedImageExtensions(), ext) {
		return ext
	}
	return ".jpg"
}

// SniffFormat returns the registered format name of encoded image data.
func SniffFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	return format, nil
}
