package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/opsgrade/obs-scorecard/internal/models"
)

// Client is a Go SDK for the obs-scorecard API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new obs-scorecard client
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SnapshotResponse wraps the stored document and whether it exists
type SnapshotResponse struct {
	Snapshot *models.Snapshot `json:"snapshot"`
	Exists   bool             `json:"exists"`
}

// GetSnapshot retrieves the stored document for the deployment
func (c *Client) GetSnapshot(ctx context.Context) (*SnapshotResponse, error) {
	resp, err := c.doRequest(ctx, "GET", "/api/v1/snapshot", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool              `json:"success"`
		Data    *SnapshotResponse `json:"data"`
		Error   *errorPayload     `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		return nil, fmt.Errorf("API error: %s - %s", result.Error.Code, result.Error.Message)
	}

	return result.Data, nil
}

// SaveSnapshot fully replaces the stored document (last-writer-wins)
func (c *Client) SaveSnapshot(ctx context.Context, snap *models.Snapshot) (*models.Snapshot, error) {
	body, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, "POST", "/api/v1/snapshot", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool             `json:"success"`
		Data    *models.Snapshot `json:"data"`
		Error   *errorPayload    `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		return nil, fmt.Errorf("API error: %s - %s", result.Error.Code, result.Error.Message)
	}

	return result.Data, nil
}

// Evaluate scores a system ad hoc, optionally against a supplied tool list
func (c *Client) Evaluate(ctx context.Context, system *models.System, tools []*models.Tool) (*models.ScoreBreakdown, error) {
	body, err := json.Marshal(models.EvaluateRequest{System: system, Tools: tools})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, "POST", "/api/v1/evaluate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool                   `json:"success"`
		Data    *models.ScoreBreakdown `json:"data"`
		Error   *errorPayload          `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		return nil, fmt.Errorf("API error: %s - %s", result.Error.Code, result.Error.Message)
	}

	return result.Data, nil
}

// GetSystemScore retrieves the breakdown for one stored system
func (c *Client) GetSystemScore(ctx context.Context, systemID string) (*models.SystemScore, error) {
	resp, err := c.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/systems/%s/score", systemID), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool                `json:"success"`
		Data    *models.SystemScore `json:"data"`
		Error   *errorPayload       `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		return nil, fmt.Errorf("API error: %s - %s", result.Error.Code, result.Error.Message)
	}

	return result.Data, nil
}

// ListSystems retrieves all stored systems with their computed breakdowns
func (c *Client) ListSystems(ctx context.Context) ([]*models.SystemScore, error) {
	resp, err := c.doRequest(ctx, "GET", "/api/v1/systems", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool `json:"success"`
		Data    struct {
			Systems []*models.SystemScore `json:"systems"`
			Total   int                   `json:"total"`
		} `json:"data"`
		Error *errorPayload `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		return nil, fmt.Errorf("API error: %s - %s", result.Error.Code, result.Error.Message)
	}

	return result.Data.Systems, nil
}

// ListTools retrieves the effective tool catalog
func (c *Client) ListTools(ctx context.Context) ([]*models.Tool, error) {
	resp, err := c.doRequest(ctx, "GET", "/api/v1/catalog/tools", nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool `json:"success"`
		Data    struct {
			Tools []*models.Tool `json:"tools"`
			Total int            `json:"total"`
		} `json:"data"`
		Error *errorPayload `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		return nil, fmt.Errorf("API error: %s - %s", result.Error.Code, result.Error.Message)
	}

	return result.Data.Tools, nil
}

// GetTool retrieves one tool from the effective catalog
func (c *Client) GetTool(ctx context.Context, id string) (*models.Tool, error) {
	resp, err := c.doRequest(ctx, "GET", fmt.Sprintf("/api/v1/catalog/tools/%s", id), nil)
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool          `json:"success"`
		Data    *models.Tool  `json:"data"`
		Error   *errorPayload `json:"error"`
	}

	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		return nil, fmt.Errorf("API error: %s - %s", result.Error.Code, result.Error.Message)
	}

	return result.Data, nil
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, "GET", "/health", nil)
	return err
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
