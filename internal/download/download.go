// Package download saves full-size photos to a local directory.
package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	imgload "github.com/gitkarasune/pix/internal/image"
	"github.com/gitkarasune/pix/internal/photo"
	"github.com/gitkarasune/pix/internal/security"
	httputil "github.com/gitkarasune/pix/internal/util/http"
)

// ErrNoFullImage is returned for photos without a full-size rendition.
var ErrNoFullImage = errors.New("photo has no full-size image URL")

// Tracker records that a photo is being downloaded. *photo.Client
// satisfies it.
type Tracker interface {
	TrackDownload(ctx context.Context, downloadLocation string) error
}

// Options configures a Downloader.
type Options struct {
	// Dir is where photos are saved. It is created if missing.
	Dir string

	// Overwrite replaces an existing download instead of reusing it.
	Overwrite bool

	// Timeout bounds the image fetch. Zero uses the HTTP default.
	Timeout time.Duration

	// Logger receives progress messages. Nil discards them.
	Logger hclog.Logger
}

// Downloader saves photos as <id><ext> inside Options.Dir.
type Downloader struct {
	tracker Tracker
	opts    Options
	logger  hclog.Logger
}

// Result describes a saved photo.
type Result struct {
	Path string

	// Cached is true when an existing file was reused.
	Cached bool
}

// New creates a Downloader. A nil tracker skips download tracking.
func New(tracker Tracker, opts Options) *Downloader {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Downloader{tracker: tracker, opts: opts, logger: logger}
}

// Save downloads p's full rendition. The file extension follows the decoded
// image format, not the URL.
func (d *Downloader) Save(ctx context.Context, p photo.Photo) (*Result, error) {
	if !security.SafeFilename(p.ID) {
		return nil, fmt.Errorf("invalid photo id %q", p.ID)
	}
	if p.URLs.Full == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoFullImage, p.ID)
	}
	if d.opts.Dir == "" {
		return nil, fmt.Errorf("download directory is not set")
	}

	if err := os.MkdirAll(d.opts.Dir, 0o755); err != nil { // #nosec G301 - Download directory needs standard permissions
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	if !d.opts.Overwrite {
		if existing, ok := d.existing(p.ID); ok {
			d.logger.Debug("reusing existing download", "photo", p.ID, "path", existing)
			return &Result{Path: existing, Cached: true}, nil
		}
	}

	if d.tracker != nil && p.Links.DownloadLocation != "" {
		if err := d.tracker.TrackDownload(ctx, p.Links.DownloadLocation); err != nil {
			d.logger.Warn("download tracking failed", "photo", p.ID, "error", err)
		}
	}

	d.logger.Debug("downloading photo", "photo", p.ID, "url", p.URLs.Full)
	data, err := httputil.Fetch(ctx, p.URLs.Full, httputil.FetchOptions{Timeout: d.opts.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	format, err := imgload.SniffFormat(data)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(d.opts.Dir, p.ID+imgload.ExtensionFor(format))
	if err := security.ValidateFilePath(path, d.opts.Dir); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - Downloads need standard read permissions
		return nil, fmt.Errorf("failed to write image: %w", err)
	}

	d.logger.Info("photo saved", "photo", p.ID, "path", path, "bytes", len(data))
	return &Result{Path: path}, nil
}

func (d *Downloader) existing(id string) (string, bool) {
	for _, ext := range imgload.SupportedImageExtensions() {
		path := filepath.Join(d.opts.Dir, id+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
