// Package shopify implements the order.Store port against the Shopify
// Admin API. Order reads, updates and fulfillments go through the REST
// Admin API; inventory and product queries go through the GraphQL Admin
// API, mirroring the scopes the store token carries.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/config"
)

// maxResponseSize caps Admin API response bodies (10MB).
const maxResponseSize = 10 * 1024 * 1024

var (
	// ErrRequestFailed indicates a non-2xx Admin API response.
	ErrRequestFailed = errors.New("shopify: request failed")
	// ErrInvalidResponse indicates an Admin API response that could not be
	// decoded.
	ErrInvalidResponse = errors.New("shopify: invalid response")
	// ErrGraphQLErrors indicates the GraphQL layer returned errors.
	ErrGraphQLErrors = errors.New("shopify: graphql errors")
)

// Client is the Shopify Admin API adapter. It implements order.Store.
type Client struct {
	cfg        config.ShopifyConfig
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates an Admin API client for the configured store.
func NewClient(cfg config.ShopifyConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		baseURL:    "https://" + cfg.Store,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("shopify"),
	}
}

// restURL builds a REST Admin API URL for the configured store and API
// version. The path is relative, e.g. "orders.json".
func (c *Client) restURL(path string) string {
	return fmt.Sprintf("%s/admin/api/%s/%s", c.baseURL, c.cfg.APIVersion, path)
}

// graphqlURL builds the GraphQL Admin API endpoint.
func (c *Client) graphqlURL() string {
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", c.baseURL, c.cfg.APIVersion)
}

// rest performs a REST Admin API call. A nil body sends no payload; a nil
// out discards the response body.
func (c *Client) rest(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("shopify: encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.restURL(path), payload)
	if err != nil {
		return fmt.Errorf("shopify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.cfg.AdminToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrInvalidResponse, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("Admin API call rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: %s %s: status %d", ErrRequestFailed, method, path, resp.StatusCode)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// graphqlError is one error entry in a GraphQL response envelope.
type graphqlError struct {
	Message string `json:"message"`
}

// graphql performs a GraphQL Admin API call and unmarshals the data
// object into out.
func (c *Client) graphql(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("shopify: encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("shopify: build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.cfg.AdminToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrInvalidResponse, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: graphql: status %d", ErrRequestFailed, resp.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("%w: %s", ErrGraphQLErrors, envelope.Errors[0].Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
