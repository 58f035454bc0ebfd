package rossum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"exportbridge/internal/config"
	"exportbridge/internal/domain"
	"exportbridge/internal/port"
)

const (
	defaultTimeout = 60 * time.Second
	chunkSize      = 32 * 1024
	errBodyLimit   = 4096
)

// APIError is a non-2xx response from the Rossum API.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rossum %s failed (status %d): %s", e.Op, e.StatusCode, e.Body)
}

// Unwrap exposes domain.ErrUpstreamAuth for rejected credentials.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return domain.ErrUpstreamAuth
	}
	return nil
}

// Client implements port.ExportSource against the Rossum (Elis) REST API.
// It logs in on every export, so a Client carries no session state.
type Client struct {
	username string
	password string
	baseURL  string
	client   *http.Client
}

// NewClient creates a Rossum API client from config.
func NewClient(cfg *config.RossumConfig) *Client {
	return NewClientWithHTTP(cfg, nil)
}

// NewClientWithHTTP creates a client using the given HTTP client (for testing).
// A nil httpClient gets one with the configured timeout.
func NewClientWithHTTP(cfg *config.RossumConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultRossumBaseURL
	}
	return &Client{
		username: cfg.Username,
		password: cfg.Password,
		baseURL:  baseURL,
		client:   httpClient,
	}
}

// Login exchanges the configured credentials for an API key.
func (c *Client) Login(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{
		"username": c.username,
		"password": c.password,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling rossum login: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", newAPIError("login", resp)
	}

	var out struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding login response: %w", err)
	}
	if out.Key == "" {
		return "", errors.New("rossum login returned an empty key")
	}
	return out.Key, nil
}

// Export logs in and opens a streamed export of one annotation from a queue.
// The caller owns the returned stream and must close it.
func (c *Client) Export(ctx context.Context, in port.ExportRequest) (port.ChunkStream, error) {
	key, err := c.Login(ctx)
	if err != nil {
		return nil, err
	}

	format := in.Format
	if format == "" {
		format = domain.ExportFormatXML
	}
	q := url.Values{}
	q.Set("format", string(format))
	if in.AnnotationID != "" {
		q.Set("id", in.AnnotationID)
	}
	endpoint := fmt.Sprintf("%s/queues/%s/export?%s", c.baseURL, url.PathEscape(in.QueueID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating export request: %w", err)
	}
	req.Header.Set("Authorization", "token "+key)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling rossum export: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer func() { _ = resp.Body.Close() }()
		return nil, newAPIError("export", resp)
	}

	return newBodyStream(resp.Body, chunkSize), nil
}

func newAPIError(op string, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))
	return &APIError{Op: op, StatusCode: resp.StatusCode, Body: string(body)}
}
