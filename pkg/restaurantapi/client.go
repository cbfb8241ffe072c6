package restaurantapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang-restaurant-explorer/internal/models"
)

// APIError is returned for non-2xx responses and for envelopes flagged with "error": true
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("restaurant API error (status %d): %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP lets callers supply their own transport
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListRestaurants fetches the whole catalog in one call
func (c *Client) ListRestaurants(ctx context.Context) ([]models.RestaurantSummary, error) {
	respBody, err := c.get(ctx, c.baseURL+"/list")
	if err != nil {
		return nil, err
	}

	var result models.ListResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal list response: %w", err)
	}
	if result.Error {
		return nil, &APIError{StatusCode: http.StatusOK, Message: result.Message}
	}

	return result.Restaurants, nil
}

// GetRestaurantDetail fetches one restaurant. Nothing is cached.
func (c *Client) GetRestaurantDetail(ctx context.Context, id string) (*models.RestaurantDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("restaurant id is required")
	}

	respBody, err := c.get(ctx, c.baseURL+"/detail/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var result models.DetailResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal detail response: %w", err)
	}
	if result.Error || result.Restaurant == nil {
		msg := result.Message
		if msg == "" {
			msg = "restaurant missing from response"
		}
		return nil, &APIError{StatusCode: http.StatusOK, Message: msg}
	}

	return result.Restaurant, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: apiMessage(respBody)}
	}

	return respBody, nil
}

// the API reports failures as {"error": true, "message": "..."}
func apiMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return strings.TrimSpace(string(body))
}
