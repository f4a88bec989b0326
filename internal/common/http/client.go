// internal/common/http/client.go
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"activity-signup/internal/models"
)

// APIError is a non-2xx response from the activity API.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("activity api: %d %s: %s", e.StatusCode, e.Code, e.Detail)
}

// Client talks to a running activity server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) ListActivities(ctx context.Context) (map[string]models.ActivityView, error) {
	var out map[string]models.ActivityView
	if err := c.do(ctx, http.MethodGet, "/activities", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetActivity(ctx context.Context, activity string) (models.ActivityView, error) {
	var out models.ActivityView
	err := c.do(ctx, http.MethodGet, "/activities/"+url.PathEscape(activity), &out)
	return out, err
}

func (c *Client) Signup(ctx context.Context, activity, email string) (string, error) {
	var out models.MessageResponse
	path := "/activities/" + url.PathEscape(activity) + "/signup?email=" + url.QueryEscape(email)
	err := c.do(ctx, http.MethodPost, path, &out)
	return out.Message, err
}

func (c *Client) Unregister(ctx context.Context, activity, email string) (string, error) {
	var out models.MessageResponse
	path := "/activities/" + url.PathEscape(activity) + "/participants?email=" + url.QueryEscape(email)
	err := c.do(ctx, http.MethodDelete, path, &out)
	return out.Message, err
}

func (c *Client) do(ctx context.Context, method, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(body, apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
