// Package config reads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAccessKey       = "PIX_UNSPLASH_ACCESS_KEY"
	EnvAccessKeyLegacy = "UNSPLASH_ACCESS_KEY"
	EnvGoogleAPIKey    = "GOOGLE_API_KEY"
	EnvGenAIModel      = "PIX_GENAI_MODEL"
	EnvDownloadDir     = "PIX_DOWNLOAD_DIR"
	EnvHTTPTimeout     = "PIX_HTTP_TIMEOUT"
)

const (
	// DefaultGenAIModel is the model used for image analysis.
	DefaultGenAIModel = "gemini-2.5-flash"

	// DefaultHTTPTimeout bounds every API and image request.
	DefaultHTTPTimeout = 10 * time.Second
)

// Config holds the resolved settings.
type Config struct {
	UnsplashAccessKey string
	GoogleAPIKey      string
	GenAIModel        string
	DownloadDir       string
	HTTPTimeout       time.Duration
}

// Load reads the given .env files (".env" when none are named) into the
// process environment, then resolves Config from it. Missing files are
// ignored and variables already set win over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv resolves Config using getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		UnsplashAccessKey: getenv(EnvAccessKey),
		GoogleAPIKey:      getenv(EnvGoogleAPIKey),
		GenAIModel:        getenv(EnvGenAIModel),
		DownloadDir:       getenv(EnvDownloadDir),
		HTTPTimeout:       DefaultHTTPTimeout,
	}
	if cfg.UnsplashAccessKey == "" {
		cfg.UnsplashAccessKey = getenv(EnvAccessKeyLegacy)
	}
	if cfg.GenAIModel == "" {
		cfg.GenAIModel = DefaultGenAIModel
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = defaultDownloadDir()
	}

	if raw := getenv(EnvHTTPTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvHTTPTimeout, raw, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid %s %q: must be positive", EnvHTTPTimeout, raw)
		}
		cfg.HTTPTimeout = d
	}
	return cfg, nil
}

func defaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "pix-downloads")
	}
	return filepath.Join(home, "Pictures", "pix")
}
