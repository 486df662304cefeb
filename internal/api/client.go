// Package api is the client for the MiniERP-style REST backend. It owns the
// shared request layer (auth header, tenant scoping, request ids, error
// taxonomy); per-resource methods live in deals.go, accounts.go and quotes.go.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/oyilmaz/firsat/internal/config"
)

// Client talks to the backend REST API. It is safe for concurrent use;
// all mutable state lives in the underlying http.Client.
type Client struct {
	baseURL  string
	token    string
	tenantID int
	http     *http.Client
}

// NewClient creates a client from the API section of the configuration
func NewClient(cfg config.APIConfig) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		token:    cfg.Token,
		tenantID: cfg.TenantID,
		http:     &http.Client{Timeout: cfg.Timeout},
	}
}

// do performs one request against the backend and decodes the JSON response
// into out when out is non-nil. Every request carries the bearer token, the
// tenant scope and a fresh request id so backend logs can be correlated.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.tenantID > 0 {
		req.Header.Set("X-Tenant-ID", strconv.Itoa(c.tenantID))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Error("error closing response body", "error", closeErr)
		}
	}()

	if resp.StatusCode >= 400 {
		return c.statusError(resp, method, path, requestID)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// statusError reads the FastAPI-style {"detail": ...} error body and wraps
// the status into the client's error taxonomy.
func (c *Client) statusError(resp *http.Response, method, path, requestID string) error {
	detail := ""
	var errBody struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
		detail = errBody.Detail
	}

	slog.Warn("backend request failed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"detail", detail,
	)

	return fmt.Errorf("%s %s: %w", method, path, &StatusError{Status: resp.StatusCode, Detail: detail})
}
