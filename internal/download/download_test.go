package download

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/gitkarasune/pix/internal/photo"
)

type fakeTracker struct {
	calls []string
	err   error
}

func (f *fakeTracker) TrackDownload(_ context.Context, loc string) error {
	f.calls = append(f.calls, loc)
	return f.err
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func imageServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	data := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/gone" {
			http.NotFound(w, r)
			return
		}
		// served without an extension so the format has to be sniffed
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSave(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)
	dir := filepath.Join(t.TempDir(), "nested")
	tracker := &fakeTracker{}

	p := photo.Photo{
		ID:    "abc",
		URLs:  photo.URLs{Full: srv.URL + "/photo-abc"},
		Links: photo.Links{DownloadLocation: "https://api.example/photos/abc/download"},
	}
	d := New(tracker, Options{Dir: dir})

	res, err := d.Save(context.Background(), p)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if want := filepath.Join(dir, "abc.png"); res.Path != want || res.Cached {
		t.Errorf("Save() = %+v, want fresh %s", res, want)
	}
	if len(tracker.calls) != 1 {
		t.Errorf("tracker called %d times, want 1", len(tracker.calls))
	}

	res, err = d.Save(context.Background(), p)
	if err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	if !res.Cached || hits.Load() != 1 || len(tracker.calls) != 1 {
		t.Errorf("second Save() = %+v, hits %d, tracks %d; want cached reuse", res, hits.Load(), len(tracker.calls))
	}

	res, err = New(tracker, Options{Dir: dir, Overwrite: true}).Save(context.Background(), p)
	if err != nil {
		t.Fatalf("overwrite Save() error = %v", err)
	}
	if res.Cached || hits.Load() != 2 {
		t.Errorf("overwrite Save() = %+v, hits %d", res, hits.Load())
	}
}

func TestSaveTrackingFailureIsNotFatal(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)
	p := photo.Photo{
		ID:    "t1",
		URLs:  photo.URLs{Full: srv.URL + "/x"},
		Links: photo.Links{DownloadLocation: "https://api.example/dl"},
	}
	if _, err := New(&fakeTracker{err: errors.New("401")}, Options{Dir: t.TempDir()}).Save(context.Background(), p); err != nil {
		t.Errorf("Save() error = %v, want nil", err)
	}
}

func TestSaveErrors(t *testing.T) {
	var hits atomic.Int32
	srv := imageServer(t, &hits)
	dir := t.TempDir()

	tests := []struct {
		name    string
		photo   photo.Photo
		opts    Options
		wantErr error
	}{
		{name: "no full url", photo: photo.Photo{ID: "a"}, opts: Options{Dir: dir}, wantErr: ErrNoFullImage},
		{name: "unsafe id", photo: photo.Photo{ID: "../evil", URLs: photo.URLs{Full: srv.URL}}, opts: Options{Dir: dir}},
		{name: "empty id", photo: photo.Photo{URLs: photo.URLs{Full: srv.URL}}, opts: Options{Dir: dir}},
		{name: "no dir", photo: photo.Photo{ID: "a", URLs: photo.URLs{Full: srv.URL}}},
		{name: "404", photo: photo.Photo{ID: "a", URLs: photo.URLs{Full: srv.URL + "/gone"}}, opts: Options{Dir: dir}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(nil, tt.opts).Save(context.Background(), tt.photo)
			if err == nil {
				t.Fatal("Save() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Save() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveRejectsNonImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>rate limited</html>"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	_, err := New(nil, Options{Dir: dir}).Save(context.Background(), photo.Photo{ID: "h", URLs: photo.URLs{Full: srv.URL}})
	if err == nil {
		t.Fatal("Save() should reject non-image data")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("nothing should be written, found %d entries", len(entries))
	}
}
