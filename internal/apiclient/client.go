// Package apiclient implements the shared HTTP request pipeline every API
// call travels through: bearer credentials are attached on the way out, and a
// 401 response triggers a single transparent token refresh followed by one
// retry of the original request.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ross2p/ems-app/internal/dto"
	apierrors "github.com/ross2p/ems-app/internal/errors"
	"github.com/ross2p/ems-app/internal/storage"
)

// RefreshPath is the token renewal endpoint; 401s from it never trigger
// another refresh.
const RefreshPath = "/auth/refresh"

var (
	// ErrNoRefreshToken is returned internally when a 401 cannot be recovered
	// because no refresh token is stored.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrNoAccessToken is returned when the refresh endpoint answered without
	// a usable access token.
	ErrNoAccessToken = errors.New("no access token in refresh response")
)

// Client is the single shared request pipeline for all API calls. It is safe
// for concurrent use; simultaneous 401s share one in-flight refresh.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *storage.TokenStore
	logger     *slog.Logger
	metrics    *Metrics
	refresh    singleflight.Group
}

// Option configures optional Client behaviour.
type Option func(*Client)

// WithTimeout overrides the default 30s request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the structured logger used for pipeline diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics enables request and refresh metrics collection.
func WithMetrics(metrics *Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// WithHTTPClient substitutes the underlying transport (primarily for tests).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client rooted at baseURL that reads and maintains credentials
// through the given token store.
func New(baseURL string, tokens *storage.TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tokens:     tokens,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get issues a GET request and decodes the envelope payload into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, false)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, false)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out, false)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, false)
}

// do runs one request through the pipeline. retried marks a request that has
// already been re-issued after a refresh; such requests propagate any further
// 401 unchanged.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, retried bool) error {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	if token := c.tokens.GetAccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observeRequest(method, 0, time.Since(start))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	c.metrics.observeRequest(method, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized && !retried && path != RefreshPath {
		if refreshErr := c.refreshAccessToken(ctx); refreshErr == nil {
			return c.do(ctx, method, path, query, body, out, true)
		} else if !errors.Is(refreshErr, ErrNoRefreshToken) {
			// The refresh call itself failed: the session is gone. Local
			// credentials were wiped; the original 401 still propagates.
			c.logger.Warn("token refresh failed, session cleared", "error", refreshErr)
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	return decodePayload(respBody, out)
}

// refreshAccessToken exchanges the stored refresh token for a new access
// token. Concurrent callers are coalesced onto a single in-flight refresh;
// late joiners await the same result. On failure all stored session data is
// cleared.
func (c *Client) refreshAccessToken(ctx context.Context) error {
	refreshToken := c.tokens.GetRefreshToken()
	if refreshToken == "" {
		return ErrNoRefreshToken
	}

	_, err, _ := c.refresh.Do("refresh", func() (any, error) {
		var out dto.RefreshResponse
		req := dto.RefreshTokenRequest{RefreshToken: refreshToken}
		if err := c.do(ctx, http.MethodPost, RefreshPath, nil, req, &out, true); err != nil {
			c.metrics.observeRefresh("failure")
			return nil, err
		}
		if !storage.IsValidTokenShape(out.AccessToken) {
			c.metrics.observeRefresh("failure")
			return nil, ErrNoAccessToken
		}
		if !c.tokens.SetAccessToken(out.AccessToken) {
			c.logger.Warn("failed to persist refreshed access token")
		}
		c.metrics.observeRefresh("success")
		return out.AccessToken, nil
	})

	if err != nil {
		c.tokens.ClearAll()
		return err
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// decodeAPIError turns an error response into an *errors.APIError, falling
// back to the bare HTTP status when the envelope cannot be parsed.
func decodeAPIError(statusCode int, body []byte) error {
	var envelope dto.RawResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Name != "" {
		return &apierrors.APIError{
			StatusCode: envelope.StatusCode,
			Message:    envelope.Message,
			Name:       envelope.Name,
		}
	}

	return &apierrors.APIError{
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
		Name:       "HttpError",
	}
}

// decodePayload peels the {statusCode, message, name, data} envelope and
// unmarshals data into out.
func decodePayload(body []byte, out any) error {
	var envelope dto.RawResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode response envelope: %w", err)
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return fmt.Errorf("no data in response")
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
