// Package llm provides the client for the hosted completion proxy.
// Remote failures never propagate to callers: every Complete call
// resolves to displayable content, falling back to a deterministic local
// default when the proxy is unreachable, slow, or returns a non-2xx
// status. One attempt per call, no retries.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/muadel/muadel/ports"
)

// DefaultTimeout bounds one proxy call. The user flow must not hang on a
// third-party outage.
const DefaultTimeout = 20 * time.Second

// Options configures the proxy client.
type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Fallback   ports.Completer
	Logger     zerolog.Logger
}

// Client calls the completion proxy over HTTPS.
type Client struct {
	baseURL  string
	apiKey   string
	client   *http.Client
	fallback ports.Completer
	logger   zerolog.Logger
}

type proxyResponse struct {
	Content   string          `json:"content"`
	Usage     json.RawMessage `json:"usage,omitempty"`
	Remaining *int            `json:"remaining,omitempty"`
}

// NewClient creates a proxy client. A nil Fallback gets the built-in
// Static completer.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("llm: base url is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	fallback := opts.Fallback
	if fallback == nil {
		fallback = NewStatic()
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   opts.APIKey,
		client:   httpClient,
		fallback: fallback,
		logger:   opts.Logger,
	}, nil
}

// Complete sends the request to the proxy and returns its content, or
// the deterministic fallback on any failure.
func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) ports.CompletionResult {
	body, err := json.Marshal(req)
	if err != nil {
		return c.useFallback(ctx, req, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/complete", bytes.NewReader(body))
	if err != nil {
		return c.useFallback(ctx, req, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return c.useFallback(ctx, req, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return c.useFallback(ctx, req, fmt.Errorf("proxy returned status %d", resp.StatusCode))
	}

	var out proxyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return c.useFallback(ctx, req, err)
	}
	if strings.TrimSpace(out.Content) == "" {
		return c.useFallback(ctx, req, fmt.Errorf("proxy returned empty content"))
	}

	remaining := -1
	if out.Remaining != nil {
		remaining = *out.Remaining
	}
	return ports.CompletionResult{Content: out.Content, Remaining: remaining}
}

func (c *Client) useFallback(ctx context.Context, req ports.CompletionRequest, cause error) ports.CompletionResult {
	c.logger.Warn().
		Err(cause).
		Str("feature", req.Feature).
		Msg("completion proxy unavailable, using local fallback")
	res := c.fallback.Complete(ctx, req)
	res.Fallback = true
	return res
}

var _ ports.Completer = (*Client)(nil)
