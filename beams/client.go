// Package beams publishes push notifications through the Pusher Beams
// publish API.
package beams

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	userAgent       = "devcheck-beams/1.0"
	contentTypeJSON = "application/json"
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("publish failed: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Response is the raw answer to a publish request.
type Response struct {
	StatusCode int
	Body       []byte
}

// PublishID returns the publishId field of a successful response, or "".
func (r *Response) PublishID() string {
	var body struct {
		PublishID string `json:"publishId"`
	}
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return ""
	}
	return body.PublishID
}

// Pretty returns the body indented as JSON, or as-is when it is not JSON.
func (r *Response) Pretty() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(r.Body), "", "  "); err != nil {
		return string(r.Body)
	}
	return buf.String()
}

// Client publishes to a single Beams instance.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a client with an HTTP client using the configured timeout.
func NewClient(config Config) (*Client, error) {
	return NewClientWithHTTPClient(config, nil)
}

// NewClientWithHTTPClient creates a client using httpClient, or a default
// one with the configured timeout when httpClient is nil.
func NewClientWithHTTPClient(config Config, httpClient *http.Client) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}, nil
}

// Publish sends payload to its interests. A non-2xx answer returns both the
// response and a *StatusError. No retries are made.
func (c *Client) Publish(ctx context.Context, payload Payload) (*Response, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.PublishURL(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	result := &Response{StatusCode: resp.StatusCode, Body: respBody}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, &StatusError{StatusCode: resp.StatusCode, Body: respBody}
	}

	return result, nil
}
