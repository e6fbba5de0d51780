package event

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Client is a Repository backed by a remote events API exposing
// GET/POST /api/events and PUT/DELETE /api/events/{id}.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type listResponse struct {
	Events []Event `json:"events"`
}

func (c *Client) List(ctx context.Context) ([]Event, error) {
	var response listResponse
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, http.StatusOK, &response); err != nil {
		return nil, err
	}
	if response.Events == nil {
		return []Event{}, nil
	}
	return response.Events, nil
}

func (c *Client) Create(ctx context.Context, event Event) (Event, error) {
	var created Event
	if err := c.do(ctx, http.MethodPost, "/api/events?force=true", event, http.StatusCreated, &created); err != nil {
		return Event{}, err
	}
	return created, nil
}

func (c *Client) Update(ctx context.Context, id string, event Event) (Event, error) {
	var updated Event
	event.ID = id
	if err := c.do(ctx, http.MethodPut, "/api/events/"+url.PathEscape(id)+"?force=true", event, http.StatusOK, &updated); err != nil {
		return Event{}, err
	}
	return updated, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/events/"+url.PathEscape(id), nil, http.StatusOK, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, expectedStatus int, out any) error {
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
		log.Errorf("Failed to create request: %v", err)
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request %s %s: %v", method, path, err)
		return err
	}
	defer resp.Body.Close()

	// 404 means a missing event only for the per-event routes
	if resp.StatusCode == http.StatusNotFound && (method == http.MethodPut || method == http.MethodDelete) {
		return ErrEventNotFound
	}
	if resp.StatusCode != expectedStatus {
		err := fmt.Errorf("events API returned unexpected status %d for %s %s", resp.StatusCode, method, path)
		log.Error(err)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return err
	}
	return nil
}
