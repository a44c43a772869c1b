// Package talupapi is the HTTP client of the TalUp backend.
package talupapi

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
)

const maxBackoff = 10 * time.Second

var (
	ErrNoLives      = errors.New("not enough lives")
	ErrNoTasks      = errors.New("no tasks available")
	ErrUnauthorized = errors.New("unauthorized")
)

// HTTPError is a non-2xx backend response.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("talup http %d", e.StatusCode)
	}
	return fmt.Sprintf("talup http %d: %s", e.StatusCode, e.Message)
}

// HTTPStatusCode returns the response status.
func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// Is lets errors.Is match ErrUnauthorized on 401 responses.
func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Client talks to the TalUp backend. Tokens are passed per call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBackoff sets the initial retry delay.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		c.backoff = d
	}
}

// New creates a client for baseURL.
func New(baseURL string, timeout time.Duration, maxRetries int, logger *zap.Logger, opts ...Option) *Client {
	if maxRetries < 0 {
		maxRetries = 0
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		backoff:    time.Second,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	method      string
	path        string
	token       string
	body        []byte
	contentType string
}

func newJSONRequest(method, path, token string, body any) (request, error) {
	r := request{method: method, path: path, token: token}
	if body == nil {
		return r, nil
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return r, fmt.Errorf("encode %s body: %w", path, err)
	}
	r.body = raw
	r.contentType = "application/json"
	return r, nil
}

func (c *Client) doOnce(ctx context.Context, r request) (*http.Response, []byte, error) {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return nil, nil, err
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &HTTPError{StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}
	return resp, raw, nil
}

// do sends the request and decodes the JSON response into out. Only GET requests
// are retried.
func (c *Client) do(ctx context.Context, r request, out any) error {
	retries := 0
	if r.method == http.MethodGet {
		retries = c.maxRetries
	}
	backoff := c.backoff

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		resp, raw, err := c.doOnce(ctx, r)
		if err == nil {
			if out == nil || len(bytes.TrimSpace(raw)) == 0 {
				return nil
			}
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("decode %s response: %w", r.path, uErr)
			}
			return nil
		}

		if attempt >= retries || !isRetryableError(err) {
			return fmt.Errorf("%s %s: %w", r.method, r.path, err)
		}

		sleepFor := jitter(retryAfter(resp, backoff, maxBackoff))
		c.logger.Warn("talup request retrying",
			zap.String("path", r.path),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", retries),
			zap.Duration("sleep", sleepFor),
			zap.Error(err),
		)

		timer := time.NewTimer(sleepFor)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
}

func errorMessage(raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(string(raw))
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}

// Message returns the backend error message carried by err, if any.
func Message(err error) string {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Message
	}
	return ""
}
