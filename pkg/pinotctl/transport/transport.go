/*
SPDX-FileCopyrightText: 2025 Deutsche Telekom AG

SPDX-License-Identifier: Apache-2.0
*/

package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/telekom/pinotctl/pkg/metrics"
	"github.com/telekom/pinotctl/pkg/pinotctl/client"
	"github.com/telekom/pinotctl/pkg/system"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "pinotctl"
	defaultAccept    = "application/json"
)

// Transport executes client requests against a controller base URL.
type Transport struct {
	rest    *resty.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

type settings struct {
	baseURL     *url.URL
	token       string
	username    string
	password    string
	tokenSource oauth2.TokenSource
	userAgent   string
	timeout     time.Duration
	tlsConfig   *tls.Config
	headers     map[string]string
	limiter     *rate.Limiter
	log         *zap.Logger
	httpClient  *http.Client
}

type Option func(*settings) error

func New(opts ...Option) (*Transport, error) {
	s := &settings{
		userAgent: defaultUserAgent,
		timeout:   defaultTimeout,
		headers:   map[string]string{},
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.baseURL == nil {
		return nil, errors.New("server is required")
	}
	if s.token != "" && s.username != "" {
		return nil, errors.New("token and basic auth are mutually exclusive")
	}

	hc := s.httpClient
	if hc == nil {
		base := http.DefaultTransport.(*http.Transport).Clone()
		if s.tlsConfig != nil {
			base.TLSClientConfig = s.tlsConfig
		}
		var rt http.RoundTripper = base
		if s.tokenSource != nil {
			rt = &oauth2.Transport{Source: oauth2.ReuseTokenSource(nil, s.tokenSource), Base: base}
		}
		hc = &http.Client{Transport: rt}
	}

	rest := resty.NewWithClient(hc).
		SetBaseURL(strings.TrimRight(s.baseURL.String(), "/")).
		SetTimeout(s.timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", s.userAgent).
		SetLogger(s.log.Sugar())
	for k, v := range s.headers {
		rest.SetHeader(k, v)
	}
	switch {
	case s.token != "":
		rest.SetAuthToken(s.token)
	case s.username != "":
		rest.SetBasicAuth(s.username, s.password)
	}

	return &Transport{rest: rest, limiter: s.limiter, log: s.log}, nil
}

func WithServer(server string) Option {
	return func(s *settings) error {
		if server == "" {
			return errors.New("server is required")
		}
		parsed, err := url.Parse(server)
		if err != nil {
			return fmt.Errorf("invalid server: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("invalid server %q: scheme must be http or https", server)
		}
		s.baseURL = parsed
		return nil
	}
}

func WithToken(token string) Option {
	return func(s *settings) error {
		s.token = token
		return nil
	}
}

func WithBasicAuth(username, password string) Option {
	return func(s *settings) error {
		if username == "" {
			return errors.New("username is required for basic auth")
		}
		s.username = username
		s.password = password
		return nil
	}
}

// WithTokenSource authenticates every request with tokens from ts, refreshing
// them as they expire.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(s *settings) error {
		s.tokenSource = ts
		return nil
	}
}

func WithUserAgent(userAgent string) Option {
	return func(s *settings) error {
		s.userAgent = userAgent
		return nil
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", timeout)
		}
		s.timeout = timeout
		return nil
	}
}

func WithTLSConfig(caFile string, insecureSkipTLSVerify bool) Option {
	return func(s *settings) error {
		tlsConfig, err := loadTLSConfig(caFile, insecureSkipTLSVerify)
		if err != nil {
			return err
		}
		s.tlsConfig = tlsConfig
		return nil
	}
}

// WithHeader adds a default header sent with every request. Headers set by an
// operation take precedence.
func WithHeader(key, value string) Option {
	return func(s *settings) error {
		s.headers[key] = value
		return nil
	}
}

// WithRateLimit caps the request rate at qps requests per second with the given
// burst. A qps of zero disables limiting.
func WithRateLimit(qps float64, burst int) Option {
	return func(s *settings) error {
		if qps < 0 {
			return fmt.Errorf("rate limit must not be negative, got %v", qps)
		}
		if qps == 0 {
			s.limiter = nil
			return nil
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(qps), burst)
		return nil
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(s *settings) error {
		if log != nil {
			s.log = log
		}
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client. TLS and token source
// options are ignored when it is set.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *settings) error {
		s.httpClient = hc
		return nil
	}
}

func loadTLSConfig(caFile string, insecure bool) (*tls.Config, error) {
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12, InsecureSkipVerify: insecure} //nolint:gosec // opt-in via flag
	if caFile == "" {
		return tlsConfig, nil
	}
	data, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA file: %w", err)
	}
	pool := x509.NewCertPool()
	if ok := pool.AppendCertsFromPEM(data); !ok {
		return nil, errors.New("failed to parse CA file")
	}
	tlsConfig.RootCAs = pool
	return tlsConfig, nil
}

// Do implements client.Transport.
func (t *Transport) Do(ctx context.Context, req *client.Request) (*client.RawResponse, error) {
	if t.limiter != nil {
		waitStart := time.Now()
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		metrics.ClientRateLimitWait.WithLabelValues(req.Operation).Observe(time.Since(waitStart).Seconds())
	}

	r := t.rest.R().SetContext(ctx)
	for k, values := range req.Header {
		for _, v := range values {
			r.SetHeader(k, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		r.SetHeader("Accept", defaultAccept)
	}
	requestID := req.Header.Get(system.RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
		r.SetHeader(system.RequestIDHeader, requestID)
	}
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		if req.Header.Get("Content-Type") == "" {
			r.SetHeader("Content-Type", defaultAccept)
		}
		r.SetBody(payload)
	}

	log := t.log.With(
		zap.String("operation", req.Operation),
		zap.String("method", req.Method),
		zap.String("url", req.URL()),
		zap.String("requestID", requestID),
	)
	log.Debug("Sending controller request")

	start := time.Now()
	resp, err := r.Execute(req.Method, req.URL())
	elapsed := time.Since(start)
	metrics.ClientRequestDuration.WithLabelValues(req.Operation, req.Method).Observe(elapsed.Seconds())
	if err != nil {
		metrics.ClientRequestErrors.WithLabelValues(req.Operation, req.Method).Inc()
		log.Debug("Controller request failed", zap.Error(err), zap.Duration("duration", elapsed))
		return nil, err
	}

	code := resp.StatusCode()
	metrics.ClientRequests.WithLabelValues(req.Operation, req.Method, strconv.Itoa(code)).Inc()
	log.Debug("Controller response received", zap.Int("status", code), zap.Duration("duration", elapsed))

	raw := &client.RawResponse{
		StatusCode: code,
		Status:     resp.Status(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}
	if code < 200 || code > 299 {
		return nil, newHTTPError(raw)
	}
	return raw, nil
}
