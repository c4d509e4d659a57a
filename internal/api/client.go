// Package api is the client for the budget REST service.
//
// Responses are normalized into internal/model types immediately on fetch
// (see normalize.go); nothing outside this package sees raw payloads.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theirongolddev/gastos/internal/apperr"
)

const (
	// DefaultBaseURL matches the development backend.
	DefaultBaseURL = "http://localhost:3000/api"
	maxBodySize    = 1 << 20 // 1 MB
	userAgent      = "gastos/1.0"
)

// TokenSource yields the bearer token to attach to each request.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token() string { return string(s) }

// Client talks to the budget REST service.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	timeout time.Duration
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero leaves the transport defaults in place.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client rooted at baseURL.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if tokens == nil {
		tokens = StaticToken("")
	}
	c := &Client{
		baseURL: baseURL,
		tokens:  tokens,
		http:    &http.Client{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doJSON sends body (if non-nil) as JSON and returns the response body.
func (c *Client) doJSON(ctx context.Context, method, path string, body any) ([]byte, error) {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encoding %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(data)
	}
	contentType := ""
	if body != nil {
		contentType = "application/json"
	}
	return c.do(ctx, method, path, contentType, rdr)
}

// do performs an authenticated request and maps failures onto the apperr taxonomy.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	op := method + " " + path

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("op", op), zap.String("request_id", reqID), zap.Error(err))
		return nil, &apperr.NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &apperr.NetworkError{Op: op, Status: resp.StatusCode, Err: err}
	}

	c.log.Debug("request",
		zap.String("op", op),
		zap.String("request_id", reqID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &apperr.AuthError{Reason: "session expired or invalid, log in again", Status: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &apperr.NetworkError{Op: op, Status: resp.StatusCode, Message: backendMessage(data)}
	}
	return data, nil
}

// backendMessage extracts the service's error message, which arrives either
// as a string or as a list of validation strings.
func backendMessage(body []byte) string {
	var raw struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return ""
	}
	for _, field := range []json.RawMessage{raw.Message, raw.Error} {
		if len(field) == 0 {
			continue
		}
		var s string
		if err := json.Unmarshal(field, &s); err == nil && s != "" {
			return s
		}
		var list []string
		if err := json.Unmarshal(field, &list); err == nil && len(list) > 0 {
			return strings.Join(list, ", ")
		}
	}
	return ""
}

// statusOf returns the HTTP status carried by an API error, or 0.
func statusOf(err error) int {
	var ne *apperr.NetworkError
	if errors.As(err, &ne) {
		return ne.Status
	}
	var ae *apperr.AuthError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}
