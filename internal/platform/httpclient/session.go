// Package httpclient provides the shared HTTP session used by every probe worker.
package httpclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"userenum/internal/platform/errors"
	"userenum/internal/platform/logx"
)

// DefaultUserAgent matches a plain browser identity.
const DefaultUserAgent = "Mozilla/5.0"

// DefaultTimeout is the per-request timeout.
const DefaultTimeout = 10 * time.Second

// DefaultHeaders returns the header set sent with every probe.
func DefaultHeaders() http.Header {
	h := make(http.Header)
	h.Set("User-Agent", DefaultUserAgent)
	h.Set("Accept", "application/json, text/plain, */*")
	h.Set("X-Requested-With", "XMLHttpRequest")
	h.Set("Cache-Control", "no-cache")
	return h
}

// Config holds the configuration for a Session.
type Config struct {
	// Timeout bounds a whole request, body read included.
	// Default: 10 seconds
	Timeout time.Duration

	// UserAgent overrides the User-Agent header when set.
	UserAgent string

	// Headers are added on top of DefaultHeaders, replacing keys that collide.
	Headers http.Header

	// MaxConns sizes the keep-alive pool, normally the worker count.
	// Default: 10
	MaxConns int

	// ProxyURL routes traffic through an http, https or socks5 proxy.
	ProxyURL string

	// Insecure disables TLS certificate verification.
	Insecure bool

	// RateLimit is the maximum requests per second across all workers.
	// 0 means no rate limiting.
	RateLimit float64

	// RateLimitBurst is the burst size for rate limiting.
	// Default: 1
	RateLimitBurst int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:        DefaultTimeout,
		UserAgent:      DefaultUserAgent,
		MaxConns:       10,
		RateLimitBurst: 1,
	}
}

// Session is a reusable connection context: keep-alive pool, cookie jar and
// header set. It is built once and only read afterwards, so it is safe to
// share between goroutines.
type Session struct {
	client  *http.Client
	headers http.Header
	limiter *rate.Limiter
	logger  logx.Logger
	config  Config
}

// New creates a Session with the given configuration.
func New(config Config, logger logx.Logger) (*Session, error) {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxConns <= 0 {
		config.MaxConns = 10
	}
	if config.RateLimitBurst <= 0 {
		config.RateLimitBurst = 1
	}
	if logger == nil {
		logger = logx.Discard()
	}

	transport, err := newTransport(config)
	if err != nil {
		return nil, err
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Wrap(err, "cookie jar")
	}

	headers := DefaultHeaders()
	for k, vs := range config.Headers {
		headers.Del(k)
		for _, v := range vs {
			headers.Add(k, v)
		}
	}
	if config.UserAgent != "" {
		headers.Set("User-Agent", config.UserAgent)
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimitBurst)
	}

	return &Session{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
			Jar:       jar,
		},
		headers: headers,
		limiter: limiter,
		logger:  logger.With("component", "session"),
		config:  config,
	}, nil
}

func newTransport(config Config) (*http.Transport, error) {
	dialer := &net.Dialer{
		Timeout:   config.Timeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:               nil,
		DialContext:         dialer.DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        config.MaxConns * 2,
		MaxIdleConnsPerHost: config.MaxConns,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: config.Timeout,
	}
	if config.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	if config.ProxyURL == "" {
		return transport, nil
	}

	u, err := url.Parse(config.ProxyURL)
	if err != nil || u.Host == "" {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "proxy url %q", config.ProxyURL)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		transport.Proxy = http.ProxyURL(u)
	case "socks5", "socks5h":
		d, err := proxy.FromURL(u, dialer)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "proxy url %q: %v", config.ProxyURL, err)
		}
		cd, ok := d.(proxy.ContextDialer)
		if !ok {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "proxy %q does not support contexts", u.Scheme)
		}
		transport.DialContext = cd.DialContext
	default:
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unsupported proxy scheme %q", u.Scheme)
	}
	return transport, nil
}

// Get issues a GET with the session headers. Transport failures come back
// classified through errors.ClassifyTransport.
func (s *Session) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, errors.ClassifyTransport(errors.Wrap(err, "rate limit wait"))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request for %s", rawURL)
	}
	req.Header = s.headers.Clone()

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Debug("HTTP request failed",
			"url", rawURL,
			"error", err.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, errors.ClassifyTransport(err)
	}

	s.logger.Debug("HTTP response received",
		"url", rawURL,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

// Headers returns a copy of the header set sent with every request.
func (s *Session) Headers() http.Header {
	return s.headers.Clone()
}

// Timeout returns the per-request timeout.
func (s *Session) Timeout() time.Duration {
	return s.config.Timeout
}

// CloseIdle releases idle keep-alive connections.
func (s *Session) CloseIdle() {
	s.client.CloseIdleConnections()
}

// ReadBody reads at most limit bytes of the body and closes it.
func ReadBody(resp *http.Response, limit int64) ([]byte, error) {
	if resp == nil {
		return nil, errors.New("response is nil")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, errors.ClassifyTransport(errors.Wrap(err, "failed to read response body"))
	}
	return body, nil
}

// Discard drains up to limit bytes so the connection can be reused, then closes the body.
func Discard(resp *http.Response, limit int64) {
	if resp == nil {
		return
	}
	_, _ = io.CopyN(io.Discard, resp.Body, limit)
	resp.Body.Close()
}

// String returns a human-readable representation of the session configuration.
func (s *Session) String() string {
	return fmt.Sprintf("Session{timeout=%s, max_conns=%d, rate_limit=%.1f/s, proxy=%t}",
		s.config.Timeout,
		s.config.MaxConns,
		s.config.RateLimit,
		s.config.ProxyURL != "",
	)
}
