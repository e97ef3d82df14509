package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"
)

// QueryRequest is the body of POST /query.
type QueryRequest struct {
	Question    string `json:"question"`
	StigID      string `json:"stig_id,omitempty"`
	RHELVersion string `json:"rhel_version,omitempty"`
}

// Source is one retrieved document fragment backing an answer.
type Source struct {
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata"`
}

// QueryResponse is the body of a successful POST /query.
type QueryResponse struct {
	Answer           string   `json:"answer"`
	RHELVersionFocus string   `json:"rhel_version_focus"`
	Sources          []Source `json:"sources"`
	Query            string   `json:"query"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Healthy reports whether the service declared itself healthy.
func (h HealthResponse) Healthy() bool {
	return h.Status == "healthy"
}

// LoadResponse is the body of a successful POST /load-stig.
type LoadResponse struct {
	Message       string `json:"message"`
	ChunksCreated int    `json:"chunks_created"`
}

// SearchResponse is the body of GET /search/{stig_id}.
type SearchResponse struct {
	StigID  string   `json:"stig_id"`
	Results []Source `json:"results"`
}

// Client talks to one STIG RAG service instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a Client for the service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithHTTPClient is the test constructor.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the service URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.get(ctx, "/health", &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Query calls POST /query. stigID and rhelVersion may be empty; the
// service then defaults to RHEL 9 focus.
func (c *Client) Query(ctx context.Context, question, stigID, rhelVersion string) (*QueryResponse, error) {
	body, err := json.Marshal(QueryRequest{
		Question:    question,
		StigID:      stigID,
		RHELVersion: rhelVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result QueryResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// LoadSTIG calls POST /load-stig with a form-encoded file path. The path
// is resolved to an absolute path first; it must be visible to the
// service process, not the caller.
func (c *Client) LoadSTIG(ctx context.Context, filePath string) (*LoadResponse, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", filePath, err)
	}

	form := url.Values{"file_path": []string{absPath}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/load-stig", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var result LoadResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchByID calls GET /search/{stig_id}.
func (c *Client) SearchByID(ctx context.Context, stigID string) (*SearchResponse, error) {
	var result SearchResponse
	if err := c.get(ctx, "/search/"+url.PathEscape(stigID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// WaitReady polls GET /health until the service reports healthy, up to
// retries attempts spaced by interval. progress, when non-nil, is called
// after each failed attempt.
func (c *Client) WaitReady(ctx context.Context, retries int, interval time.Duration, progress func()) error {
	for i := 0; i < retries; i++ {
		health, err := c.Health(ctx)
		if err == nil && health.Healthy() {
			return nil
		}

		if progress != nil {
			progress()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("service at %s is not ready after %d attempts", c.baseURL, retries)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s: %s", req.Method, req.URL.Path, resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}
