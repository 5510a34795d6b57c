// Package nflverse downloads NFL datasets from the nflverse release mirror.
package nflverse

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/huangsam/gridcache/internal/contract"
)

// userAgent identifies gridcache to the release host.
const userAgent = "gridcache"

// clientOptions holds the settings applied by New.
type clientOptions struct {
	BaseURL    string
	Timeout    time.Duration
	Workers    int
	RetryCount int
	Now        func() time.Time
}

func defaultClientOptions() clientOptions {
	return clientOptions{
		BaseURL:    contract.DefaultBaseURL,
		Timeout:    contract.DefaultTimeout,
		Workers:    contract.DefaultWorkers,
		RetryCount: 2,
		Now:        time.Now,
	}
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

// WithBaseURL points the client at another release mirror.
func WithBaseURL(url string) ClientOption {
	return func(o *clientOptions) { o.BaseURL = strings.TrimRight(url, "/") }
}

// WithTimeout bounds every single download.
func WithTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) { o.Timeout = d }
}

// WithWorkers caps how many season files download at once.
func WithWorkers(n int) ClientOption {
	return func(o *clientOptions) { o.Workers = n }
}

// WithRetryCount sets how often a failed download is retried.
func WithRetryCount(n int) ClientOption {
	return func(o *clientOptions) { o.RetryCount = n }
}

// WithClock overrides the time source used to bound the latest season.
func WithClock(now func() time.Time) ClientOption {
	return func(o *clientOptions) { o.Now = now }
}

// Client fetches datasets over HTTP and decodes the Parquet release files.
// It implements contract.Fetcher.
type Client struct {
	resty   *resty.Client
	workers int
	now     func() time.Time
}

var _ contract.Fetcher = &Client{} // Compile-time check

// New creates a Client with the given options.
func New(opts ...ClientOption) *Client {
	cfg := defaultClientOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	rc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("User-Agent", userAgent).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond)
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Client{resty: rc, workers: workers, now: cfg.Now}
}

// NewFromConfig creates a Client from the validated runtime configuration.
func NewFromConfig(cfg *contract.Config) *Client {
	return New(
		WithBaseURL(cfg.BaseURL),
		WithTimeout(cfg.Timeout),
		WithWorkers(cfg.Workers),
	)
}
