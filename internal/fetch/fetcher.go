package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

const (
	defaultRetries      = 3
	defaultTimeout      = 20 * time.Second
	defaultRetryWaitMin = 1 * time.Second
	defaultRetryWaitMax = 10 * time.Second
)

// Option configures a Fetcher
type Option func(*retryablehttp.Client)

// WithRetries sets the maximum number of retries
func WithRetries(retries int) Option {
	return func(client *retryablehttp.Client) {
		client.RetryMax = retries
	}
}

// WithTimeout sets the timeout of a single attempt
func WithTimeout(timeout time.Duration) Option {
	return func(client *retryablehttp.Client) {
		client.HTTPClient.Timeout = timeout
	}
}

// WithRetryWait sets the backoff bounds between retries
func WithRetryWait(waitMin, waitMax time.Duration) Option {
	return func(client *retryablehttp.Client) {
		client.RetryWaitMin = waitMin
		client.RetryWaitMax = waitMax
	}
}

// WithTransport sets a custom transport for the HTTP client
func WithTransport(transport http.RoundTripper) Option {
	return func(client *retryablehttp.Client) {
		client.HTTPClient.Transport = transport
	}
}

// Fetcher downloads the OpenAPI document of a Kubernetes release.
// It retries on connection errors and 5xx (except 501) and 429 responses.
type Fetcher struct {
	urlTemplate string
	client      *retryablehttp.Client
	logger      zerolog.Logger
}

// NewFetcher creates a fetcher for a URL template containing {version}
func NewFetcher(urlTemplate string, logger zerolog.Logger, options ...Option) *Fetcher {
	logger = logger.With().Str("component", "fetch").Logger()

	client := retryablehttp.NewClient()
	client.RetryMax = defaultRetries
	client.RetryWaitMin = defaultRetryWaitMin
	client.RetryWaitMax = defaultRetryWaitMax
	client.HTTPClient.Timeout = defaultTimeout
	client.Logger = retryablehttp.LeveledLogger(leveledZerolog{inner: logger})
	// hand the last response back so the status can be reported
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	for _, option := range options {
		option(client)
	}

	return &Fetcher{
		urlTemplate: urlTemplate,
		client:      client,
		logger:      logger,
	}
}

// URL returns the schema URL for a version
func (f *Fetcher) URL(version string) (string, error) {
	version, err := NormalizeVersion(version)
	if err != nil {
		return "", err
	}
	return URLForVersion(f.urlTemplate, TagForVersion(version)), nil
}

// Fetch downloads the schema document for a version
func (f *Fetcher) Fetch(ctx context.Context, version string) ([]byte, error) {
	url, err := f.URL(version)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	f.logger.Info().Str("url", url).Msg("fetching schema")
	start := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s from %s", ErrUnexpectedStatus, resp.Status, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	f.logger.Debug().
		Str("url", url).
		Int("bytes", len(data)).
		Dur("duration", time.Since(start)).
		Msg("schema fetched")

	return data, nil
}

// FetchFile reads a schema document from disk
func FetchFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return data, nil
}
