package photo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-hclog"

	httputil "github.com/gitkarasune/pix/internal/util/http"
)

const (
	// DefaultBaseURL is the Unsplash API root.
	DefaultBaseURL = "https://api.unsplash.com"

	// DefaultPerPage is the page size used when the caller passes zero.
	DefaultPerPage = 30

	// DefaultRandomCount is the number of photos Random returns by default.
	DefaultRandomCount = 30

	// maxRandomCount is the API's upper bound for /photos/random.
	maxRandomCount = 30
)

// ErrNoAccessKey is returned when the client has no Unsplash access key.
var ErrNoAccessKey = errors.New("unsplash access key is not configured (set PIX_UNSPLASH_ACCESS_KEY)")

// APIError is a non-200 response from the Unsplash API.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unsplash API error: %d", e.StatusCode)
}

// Client talks to the Unsplash API.
type Client struct {
	accessKey string
	baseURL   string
	timeout   time.Duration
	logger    hclog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the client logger.
func WithLogger(l hclog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates an Unsplash client authenticating with accessKey.
func NewClient(accessKey string, opts ...Option) *Client {
	c := &Client{
		accessKey: accessKey,
		baseURL:   DefaultBaseURL,
		timeout:   httputil.DefaultTimeout,
		logger:    hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns one page of photos matching query, ordered by relevance.
func (c *Client) Search(ctx context.Context, query string, page, perPage int) (*SearchResponse, error) {
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("order_by", "relevant")

	var resp SearchResponse
	if err := c.get(ctx, "/search/photos", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Random returns count random photos, optionally restricted to query.
func (c *Client) Random(ctx context.Context, count int, query string) ([]Photo, error) {
	if count < 1 {
		count = DefaultRandomCount
	}
	count = min(count, maxRandomCount)

	params := url.Values{}
	params.Set("count", strconv.Itoa(count))
	if query != "" {
		params.Set("query", query)
	}

	var photos []Photo
	if err := c.get(ctx, "/photos/random", params, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// Get returns the photo with the given id.
func (c *Client) Get(ctx context.Context, id string) (*Photo, error) {
	if id == "" {
		return nil, fmt.Errorf("photo id cannot be empty")
	}

	var p Photo
	if err := c.get(ctx, "/photos/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// TrackDownload notifies Unsplash that a photo is being downloaded. The API
// guidelines require this before fetching the file itself.
func (c *Client) TrackDownload(ctx context.Context, downloadLocation string) error {
	if downloadLocation == "" {
		return fmt.Errorf("photo has no download location")
	}
	if c.accessKey == "" {
		return ErrNoAccessKey
	}

	c.logger.Debug("tracking download", "url", downloadLocation)
	_, err := httputil.Fetch(ctx, downloadLocation, c.fetchOptions())
	return c.wrap(err)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.accessKey == "" {
		return ErrNoAccessKey
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	c.logger.Debug("unsplash request", "path", path, "params", params.Encode())
	data, err := httputil.Fetch(ctx, u, c.fetchOptions())
	if err != nil {
		return c.wrap(err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode unsplash response: %w", err)
	}
	return nil
}

func (c *Client) fetchOptions() httputil.FetchOptions {
	return httputil.FetchOptions{
		Timeout: c.timeout,
		Headers: map[string]string{
			"Authorization":  "Client-ID " + c.accessKey,
			"Accept-Version": "v1",
		},
	}
}

func (c *Client) wrap(err error) error {
	if err == nil {
		return nil
	}
	var statusErr *httputil.StatusError
	if errors.As(err, &statusErr) {
		return &APIError{StatusCode: statusErr.StatusCode}
	}
	return fmt.Errorf("unsplash request failed: %w", err)
}
