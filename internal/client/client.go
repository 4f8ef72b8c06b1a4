// Package client is a thin HTTP client for a running kitchend server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kitchend/internal/feed"
	"kitchend/internal/kitchen"
)

// Order is a picked-up order as the server reports it.
type Order struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Temperature      string `json:"temperature"`
	FreshnessSeconds int    `json:"freshness_seconds"`
	Location         string `json:"location"`
}

// SubmitResult is the challenge server's response to an action submission.
type SubmitResult struct {
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	ActionCount int       `json:"action_count"`
	Timestamp   time.Time `json:"timestamp"`
}

// Client talks to one kitchend server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Place submits an order and reports whether the kitchen stored it.
func (c *Client) Place(ctx context.Context, o feed.Order) (bool, error) {
	var resp struct {
		Placed bool `json:"placed"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/orders", o, &resp); err != nil {
		return false, err
	}
	return resp.Placed, nil
}

// Pickup collects an order by id.
func (c *Client) Pickup(ctx context.Context, id string) (Order, error) {
	var o Order
	err := c.do(ctx, http.MethodPost, "/api/pickup?id="+id, nil, &o)
	return o, err
}

// Sweep triggers an expiry sweep and returns the number removed.
func (c *Client) Sweep(ctx context.Context) (int, error) {
	var resp struct {
		Removed int `json:"removed"`
	}
	err := c.do(ctx, http.MethodPost, "/api/sweep", nil, &resp)
	return resp.Removed, err
}

// Status fetches the per-tier occupancy snapshot.
func (c *Client) Status(ctx context.Context) (kitchen.Status, error) {
	var st kitchen.Status
	err := c.do(ctx, http.MethodGet, "/api/status", nil, &st)
	return st, err
}

// Ledger fetches the full action history.
func (c *Client) Ledger(ctx context.Context) ([]kitchen.Action, error) {
	var actions []kitchen.Action
	err := c.do(ctx, http.MethodGet, "/api/ledger", nil, &actions)
	return actions, err
}

// Stats fetches the lifetime counters.
func (c *Client) Stats(ctx context.Context) (kitchen.Stats, error) {
	var st kitchen.Stats
	err := c.do(ctx, http.MethodGet, "/api/stats", nil, &st)
	return st, err
}

// ChallengeOrders fetches n generated orders from the server's feed.
func (c *Client) ChallengeOrders(ctx context.Context, n int) ([]feed.Order, error) {
	var orders []feed.Order
	err := c.do(ctx, http.MethodGet, "/api/challenge/orders?count="+strconv.Itoa(n), nil, &orders)
	return orders, err
}

// SubmitActions posts a run's ledger to the challenge endpoint.
func (c *Client) SubmitActions(ctx context.Context, actions []kitchen.Action) (SubmitResult, error) {
	var res SubmitResult
	err := c.do(ctx, http.MethodPost, "/api/challenge/actions", actions, &res)
	return res, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
			return fmt.Errorf("server: %s", e.Error)
		}
		return fmt.Errorf("server: %s", resp.Status)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
