// FILE: pkg/aiclient/client.go
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"pinpoint-be/internal/apperror"
)

// Message is a single transcript entry in the wire format the AI service
// expects. The author is folded into the content by the caller
// (e.g. "[alice] find me pizza").
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the request payload for the AI planning endpoint.
type ChatRequest struct {
	Messages []Message `json:"messages"`
}

// Client issues streaming POST requests against a configured endpoint URL.
// The response body is a newline-delimited stream of data:-prefixed JSON
// events; callers own draining and closing it.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		// No client-level timeout: a streaming read may legitimately stay
		// open for the whole job. Deadlines come from the request context.
		httpClient: &http.Client{},
	}
}

// Stream sends the transcript and returns the raw response body for
// incremental consumption. Connection failures and empty bodies surface as
// UpstreamError. The call is never retried.
func (c *Client) Stream(ctx context.Context, messages []Message) (io.ReadCloser, error) {
	payload := ChatRequest{Messages: messages}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(payloadJSON))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.UpstreamWrap("ai request failed", err)
	}

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		res.Body.Close()
		return nil, apperror.Upstreamf("ai error: status %d, body: %s", res.StatusCode, string(body))
	}

	if res.Body == nil {
		return nil, apperror.Upstreamf("no response body received from ai service")
	}

	return res.Body, nil
}
