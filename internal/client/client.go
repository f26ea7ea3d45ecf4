// Package client is the single point of contact with the delivery API.
// It owns the bearer credential and normalizes every response into
// decoded data or a *RequestError.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/wbonfim/DeliveryApp/pkg/metrics"
	"github.com/wbonfim/DeliveryApp/pkg/storage"
)

const (
	DefaultBaseURL  = "http://localhost:5000/api"
	DefaultTokenKey = "token"
	defaultTimeout  = 30 * time.Second
	maxBodyBytes    = 8 << 20

	HeaderRequestID = "X-Request-ID"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	// TokenKey is the storage key the credential is persisted under.
	TokenKey string
	// RequestsPerSecond throttles outbound calls; zero disables throttling.
	RequestsPerSecond float64
	Burst             int
	// Transport is the base round tripper; http.DefaultTransport when nil.
	Transport http.RoundTripper
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     storage.Storage
	tokenKey   string
	limiter    *rate.Limiter
	log        zerolog.Logger

	mu    sync.RWMutex
	token string
}

// New builds a client and resumes any credential already in storage.
func New(ctx context.Context, cfg Config, tokens storage.Storage, log zerolog.Logger) (*Client, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("client: invalid base URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	tokenKey := cfg.TokenKey
	if tokenKey == "" {
		tokenKey = DefaultTokenKey
	}
	if tokens == nil {
		tokens = storage.NewMemory()
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(base),
		},
		tokens:   tokens,
		tokenKey: tokenKey,
		log:      log,
	}

	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	token, err := tokens.Get(ctx, tokenKey)
	switch {
	case err == nil:
		c.token = token
	case errors.Is(err, storage.ErrNotFound):
	default:
		return nil, fmt.Errorf("client: load credential: %w", err)
	}

	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetCredential persists the token, then adopts it for subsequent requests.
// If persisting fails the in-memory credential is left unchanged.
func (c *Client) SetCredential(ctx context.Context, token string) error {
	if err := c.tokens.Set(ctx, c.tokenKey, token); err != nil {
		return fmt.Errorf("client: persist credential: %w", err)
	}
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	return nil
}

// ClearCredential removes the token from storage, then from memory.
func (c *Client) ClearCredential(ctx context.Context) error {
	if err := c.tokens.Remove(ctx, c.tokenKey); err != nil {
		return fmt.Errorf("client: remove credential: %w", err)
	}
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	return nil
}

func (c *Client) Credential() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) HasCredential() bool {
	return c.Credential() != ""
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	header http.Header
	query  url.Values
}

// WithHeader sets a header, overriding the defaults.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.header.Set(key, value)
	}
}

// WithQuery appends query parameters to the URL.
func WithQuery(params url.Values) RequestOption {
	return func(o *requestOptions) {
		for k, vs := range params {
			for _, v := range vs {
				o.query.Add(k, v)
			}
		}
	}
}

func (c *Client) defaultHeaders() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set(HeaderRequestID, uuid.NewString())
	if token := c.Credential(); token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// customEndpoint labels metrics for ad hoc Request calls, whose paths may
// carry ids.
const customEndpoint = "custom"

// Request performs one round trip against baseURL+path. body, when not
// nil, is sent as JSON; a successful JSON response is decoded into out
// when out is not nil.
func (c *Client) Request(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	return c.do(ctx, customEndpoint, method, path, body, out, opts...)
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, body, out any, opts ...RequestOption) error {
	ro := &requestOptions{header: c.defaultHeaders(), query: make(url.Values)}
	for _, opt := range opts {
		opt(ro)
	}
	requestID := ro.header.Get(HeaderRequestID)

	fail := func(status int, msg string, err error) error {
		reqErr := &RequestError{
			Method:     method,
			Path:       path,
			StatusCode: status,
			Message:    msg,
			RequestID:  requestID,
			Err:        err,
		}
		c.log.Warn().
			Err(err).
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Str("request_id", requestID).
			Msg(msg)
		return reqErr
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail(0, fmt.Sprintf("rate limit wait: %v", err), err)
		}
	}

	fullURL := c.baseURL + path
	if len(ro.query) > 0 {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		fullURL += sep + ro.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fail(0, fmt.Sprintf("encode request body: %v", err), err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fail(0, fmt.Sprintf("build request: %v", err), err)
	}
	req.Header = ro.header

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ClientRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ClientRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		return fail(0, err.Error(), err)
	}
	defer resp.Body.Close()
	metrics.ClientRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fail(0, fmt.Sprintf("read response body: %v", err), err)
	}
	valid := gjson.ValidBytes(data)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := defaultErrorMessage
		if valid {
			if m := gjson.GetBytes(data, "message"); m.Exists() && m.String() != "" {
				msg = m.String()
			}
		}
		return fail(resp.StatusCode, msg, nil)
	}

	if !valid {
		return fail(0, fmt.Sprintf("invalid JSON response from %s %s", method, path), nil)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fail(0, fmt.Sprintf("decode response: %v", err), err)
	}
	return nil
}
