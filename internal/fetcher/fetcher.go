// Package fetcher retrieves remote source documents over HTTP with a bounded
// retry budget. Exhausting the budget is the only fatal failure mode of a
// source run.
package fetcher

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/http2"

	"github.com/ragujp/prometheus-sample-configs/internal/config"
	"github.com/ragujp/prometheus-sample-configs/internal/errorwrapper"
)

// Fetcher retrieves one document by URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Client fetches documents with a fixed per-request timeout and a fixed
// number of attempts separated by a fixed delay.
type Client struct {
	httpClient *http.Client
	userAgent  string
	attempts   int
	delay      time.Duration
	logger     zerolog.Logger
}

// NewClient creates a fetcher from the fetch configuration. The user agent is
// sent with every request.
func NewClient(cfg config.FetchConfig, userAgent string, logger zerolog.Logger) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}

	componentLogger := logger.With().Str("component", "Fetcher").Logger()
	if err := http2.ConfigureTransport(transport); err != nil {
		componentLogger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
	}

	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = config.DefaultFetchRetryAttempts
	}

	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = time.Duration(config.DefaultEC2TimeoutSecs) * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		userAgent: userAgent,
		attempts:  attempts,
		delay:     time.Duration(cfg.RetryDelayMs) * time.Millisecond,
		logger:    componentLogger,
	}
}

// Fetch retrieves the document at url, retrying transient failures up to the
// configured attempt budget. Exhaustion returns a FetchError naming the URL
// and the attempt count.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := Attempt(ctx, c.attempts, c.delay, func(attemptCtx context.Context) ([]byte, error) {
		data, fetchErr := c.fetchOnce(attemptCtx, url)
		if fetchErr != nil {
			c.logger.Warn().Str("url", url).Err(fetchErr).Msg("Fetch attempt failed")
		}
		return data, fetchErr
	})
	if err != nil {
		return nil, errorwrapper.NewFetchError(url, c.attempts, err)
	}

	c.logger.Debug().Str("url", url).Int("bytes", len(body)).Msg("Fetched document")
	return body, nil
}

// fetchOnce performs a single request and decodes the body to UTF-8 based on
// the response charset.
func (c *Client) fetchOnce(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to build request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errorwrapper.NewHTTPErrorWithURL(resp.StatusCode, http.StatusText(resp.StatusCode), rawURL)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to prepare charset decoder")
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read response body")
	}

	return body, nil
}
