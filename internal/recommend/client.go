// Package recommend forwards free-text food requests to the recommendation
// server.
package recommend

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
)

var (
	ErrEmptyMessage  = errors.New("message is required")
	ErrNotConfigured = errors.New("AI_SERVER_URL is not set")
	ErrUpstream      = errors.New("recommendation server call failed")
)

// topK is how many recipes the server is asked for.
const topK = 3

// maxResponseSize caps what is read from the recommendation server.
const maxResponseSize = 8 << 20

// Reply is the server's answer. Foods are passed through untouched.
type Reply struct {
	Reply string            `json:"reply"`
	Foods []json.RawMessage `json:"foods"`
}

type chatRequest struct {
	Message string `json:"message"`
	TopK    int    `json:"top_k"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for baseURL. An empty baseURL yields a client
// that answers ErrNotConfigured.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Configured() bool {
	return c.baseURL != ""
}

func (c *Client) Recommend(ctx context.Context, message string) (*Reply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(chatRequest{Message: message, TopK: topK})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, truncate(raw, 200))
	}

	var reply Reply
	if err := json.Unmarshal(raw, &reply); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrUpstream, err)
	}
	if reply.Foods == nil {
		reply.Foods = []json.RawMessage{}
	}
	return &reply, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
