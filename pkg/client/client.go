package client

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

const (
	DefaultWaitTimeout  = 20 * time.Second // How long WaitForTransaction polls before giving up
	DefaultPollInterval = 1 * time.Second
	DefaultHTTPTimeout  = 15 * time.Second
)

// Ledger is the subset of ledger access the offer service and transaction runner need
type Ledger interface {
	QueryIndexer(ctx context.Context, document string, variables map[string]interface{}, out interface{}) error
	WaitForTransaction(ctx context.Context, hash string) error
	GetTransactionByHash(ctx context.Context, hash string) (*Transaction, error)
}

// Client talks to one network's fullnode REST API and indexer GraphQL API
type Client struct {
	name         string
	fullnodeURL  string
	indexerURL   string
	httpClient   *http.Client
	waitTimeout  time.Duration
	pollInterval time.Duration
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithWaitTimeout overrides DefaultWaitTimeout. Non-positive values are ignored.
func WithWaitTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.waitTimeout = timeout
		}
	}
}

// WithPollInterval overrides DefaultPollInterval. Non-positive values are ignored.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// New creates a client for a single network
func New(name, fullnodeURL, indexerURL string, opts ...Option) *Client {
	c := &Client{
		name:         name,
		fullnodeURL:  strings.TrimRight(fullnodeURL, "/"),
		indexerURL:   indexerURL,
		httpClient:   &http.Client{Timeout: DefaultHTTPTimeout},
		waitTimeout:  DefaultWaitTimeout,
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the network name the client was built for
func (c *Client) Name() string {
	return c.name
}

// FullnodeURL returns the REST base URL
func (c *Client) FullnodeURL() string {
	return c.fullnodeURL
}

// IndexerURL returns the GraphQL endpoint
func (c *Client) IndexerURL() string {
	return c.indexerURL
}

// APIError is the error body returned by the fullnode for non-2xx responses
type APIError struct {
	StatusCode  int    `json:"status_code"`
	Message     string `json:"message"`
	ErrorCode   string `json:"error_code,omitempty"`
	VMErrorCode *int   `json:"vm_error_code,omitempty"`
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("API error (status %d, %s): %s", e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the fullnode
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// doJSON sends a JSON request and decodes a JSON response into out (when non-nil)
func (c *Client) doJSON(ctx context.Context, method, url string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	// Check for successful status codes (200-299)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(respBody, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		apiErr.StatusCode = resp.StatusCode
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
