// Package client is a Go client for the feedback service HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tritorc/feedback-service/types"
)

// APIError is a non-2xx response from the service, carrying the message and
// validation details from the response envelope.
type APIError struct {
	StatusCode int
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Message, e.StatusCode, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Client calls the feedback service API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a client for the API rooted at baseURL, for example
// "http://localhost:5000/api".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope mirrors the service response with the data payload left raw so
// each call site can decode its own shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Details []string        `json:"details,omitempty"`
}

// do performs one API request and decodes the envelope. A non-success
// envelope becomes an *APIError; transport failures pass through unchanged.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg, Details: env.Details}
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

// SubmitFeedback creates a new feedback record.
func (c *Client) SubmitFeedback(ctx context.Context, req *types.FeedbackCreate) (*types.Feedback, error) {
	var fb types.Feedback
	if err := c.do(ctx, http.MethodPost, "/feedback", req, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// GetAllFeedback lists every feedback record, newest first.
func (c *Client) GetAllFeedback(ctx context.Context) ([]*types.Feedback, error) {
	var list []*types.Feedback
	if err := c.do(ctx, http.MethodGet, "/feedback", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetFeedbackByID retrieves one record.
func (c *Client) GetFeedbackByID(ctx context.Context, id int64) (*types.Feedback, error) {
	var fb types.Feedback
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/feedback/%d", id), nil, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// UpdateFeedback applies a partial update to one record.
func (c *Client) UpdateFeedback(ctx context.Context, id int64, req *types.FeedbackUpdate) (*types.Feedback, error) {
	var fb types.Feedback
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/feedback/%d", id), req, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// DeleteFeedback permanently removes one record.
func (c *Client) DeleteFeedback(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/feedback/%d", id), nil, nil)
}

// GetAnalytics retrieves the aggregate rating summary.
func (c *Client) GetAnalytics(ctx context.Context) (*types.FeedbackAnalytics, error) {
	var a types.FeedbackAnalytics
	if err := c.do(ctx, http.MethodGet, "/feedback/analytics", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CheckHealth queries the service readiness endpoint, which lives above the
// /api prefix.
func (c *Client) CheckHealth(ctx context.Context) (*types.HealthCheck, error) {
	url := strings.TrimSuffix(c.baseURL, "/api") + "/health"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var check types.HealthCheck
	if err := json.NewDecoder(resp.Body).Decode(&check); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}
	return &check, nil
}
