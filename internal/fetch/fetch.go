package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// maxBodySize caps how much of a page is read.
const maxBodySize = 10 << 20

// Fetcher retrieves raw page markup.
type Fetcher struct {
	client    *http.Client
	userAgent string
	metrics   *Metrics
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTransport replaces the HTTP transport, mainly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.client.Transport = rt
	}
}

// WithMetrics records request metrics on m.
func WithMetrics(m *Metrics) Option {
	return func(f *Fetcher) {
		f.metrics = m
	}
}

// New creates a Fetcher whose requests time out after timeout.
func New(timeout time.Duration, userAgent string, opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the body of url. Any status of 400 or above is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := f.fetch(ctx, url)
	if err != nil {
		f.metrics.IncError(ErrorType(err))
		return nil, err
	}
	return body, nil
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	f.metrics.IncRequest()
	start := time.Now()
	resp, err := f.client.Do(req)
	f.metrics.ObserveDuration(time.Since(start))
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, url); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, classifyTransportError(err)
	}
	return body, nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout{Err: err}
	}
	return ErrConnection{Err: err}
}

func checkStatus(code int, url string) error {
	switch {
	case code < http.StatusBadRequest:
		return nil
	case code == http.StatusForbidden:
		return ErrForbidden{URL: url}
	case code == http.StatusNotFound:
		return ErrNotFound{URL: url}
	case code == http.StatusTooManyRequests:
		return ErrRateLimited{URL: url}
	default:
		return ErrStatus{URL: url, Code: code}
	}
}
