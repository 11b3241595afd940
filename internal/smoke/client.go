package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"
)

// client wraps http.Client with the activity routes.
type client struct {
	http     *http.Client
	baseURL  string
	requests atomic.Int64
}

// reply is a decoded API response.
type reply struct {
	Status  int
	Message string
	Detail  string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (c *client) listActivities(ctx context.Context) (map[string]Activity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/activities", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	body, status, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("list activities: unexpected status %d", status)
	}
	var out map[string]Activity
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return out, nil
}

func (c *client) signup(ctx context.Context, activity, email string) (reply, error) {
	return c.roster(ctx, http.MethodPost, activity, "signup", email)
}

func (c *client) unregister(ctx context.Context, activity, email string) (reply, error) {
	return c.roster(ctx, http.MethodDelete, activity, "unregister", email)
}

func (c *client) roster(ctx context.Context, method, activity, action, email string) (reply, error) {
	target := fmt.Sprintf("%s/activities/%s/%s?email=%s",
		c.baseURL, url.PathEscape(activity), action, url.QueryEscape(email))
	req, err := http.NewRequestWithContext(ctx, method, target, http.NoBody)
	if err != nil {
		return reply{}, fmt.Errorf("failed to create request: %w", err)
	}
	body, status, err := c.do(req)
	if err != nil {
		return reply{}, err
	}

	r := reply{Status: status}
	var parsed struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return r, fmt.Errorf("%s %s: %w", method, action, err)
	}
	r.Message = parsed.Message
	// detail is a string for registry errors and a list for validation errors.
	if err := json.Unmarshal(parsed.Detail, &r.Detail); err != nil {
		r.Detail = string(parsed.Detail)
	}
	return r, nil
}

func (c *client) do(req *http.Request) ([]byte, int, error) {
	c.requests.Add(1)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	return body, resp.StatusCode, nil
}
