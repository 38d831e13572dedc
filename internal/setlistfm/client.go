package setlistfm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/setlistsync/internal/shared"
)

const (
	DefaultBaseURL     = "https://api.setlist.fm/rest/1.0"
	DefaultLanguage    = "en"
	DefaultBaseDelay   = time.Second
	DefaultMaxAttempts = 3

	searchTimeout  = 20 * time.Second
	setlistTimeout = 30 * time.Second
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ClientOpts configures a [Client]. Zero values select the defaults.
type ClientOpts struct {
	APIKey      string
	Language    string
	BaseURL     string
	UserAgent   string
	HTTPClient  *http.Client
	BaseDelay   time.Duration
	MaxAttempts int
	Logger      *log.Logger
	Sleep       SleepFunc
}

// Client calls the setlist.fm REST API.
type Client struct {
	apiKey      string
	language    string
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	baseDelay   time.Duration
	maxAttempts int
	logger      *log.Logger
	sleep       SleepFunc
}

// StatusError is returned for a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
	RetryAfter string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("setlist.fm API error: %s (%s)", e.Status, e.URL)
}

// Is lets errors.Is match [shared.ErrNotFound] against a 404.
func (e *StatusError) Is(target error) bool {
	return target == shared.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// NewClient creates a client from opts.
func NewClient(opts ClientOpts) *Client {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "setlistsync/dev"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultBaseDelay
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	if opts.Sleep == nil {
		opts.Sleep = Sleep
	}

	return &Client{
		apiKey:      opts.APIKey,
		language:    opts.Language,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		userAgent:   opts.UserAgent,
		httpClient:  opts.HTTPClient,
		baseDelay:   opts.BaseDelay,
		maxAttempts: opts.MaxAttempts,
		logger:      opts.Logger,
		sleep:       opts.Sleep,
	}
}

// Sleep waits for d, returning early with the context's error if it is cancelled.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Get issues a GET for path with query and returns the response body.
//
// Each attempt is bounded by timeout. Backoff state lives only for this call.
func (c *Client) Get(ctx context.Context, path string, query url.Values, timeout time.Duration) ([]byte, error) {
	reqURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	backoff := c.baseDelay
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		c.logger.Debug("setlist.fm request", "url", reqURL, "attempt", attempt, "max", c.maxAttempts)

		body, err := c.do(ctx, reqURL, timeout)
		if err == nil {
			if err := c.sleep(ctx, c.baseDelay); err != nil {
				return nil, err
			}
			return body, nil
		}

		var statusErr *StatusError
		if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusTooManyRequests {
			return nil, err
		}

		lastErr = err
		backoff = retryAfter(statusErr.RetryAfter, 2*backoff)
		if attempt == c.maxAttempts {
			break
		}

		c.logger.Warn("rate limited", "wait", backoff, "attempt", attempt)
		if err := c.sleep(ctx, backoff); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w after %d attempts: %w", shared.ErrRetryExhausted, c.maxAttempts, lastErr)
}

// Raw fetches an arbitrary API path, e.g. "search/artists?artistName=Low".
func (c *Client) Raw(ctx context.Context, path string) ([]byte, error) {
	path, rawQuery, _ := strings.Cut(path, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid query %q: %v", shared.ErrInvalidArgument, rawQuery, err)
	}
	return c.Get(ctx, path, query, setlistTimeout)
}

func (c *Client) do(ctx context.Context, reqURL string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept-Language", c.language)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        reqURL,
			RetryAfter: resp.Header.Get("Retry-After"),
		}
	}
	return body, nil
}

// retryAfter parses a Retry-After value in seconds, falling back when it is absent or invalid.
func retryAfter(header string, fallback time.Duration) time.Duration {
	if secs, err := strconv.Atoi(strings.TrimSpace(header)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
