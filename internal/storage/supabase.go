// Package storage talks to the Supabase Storage REST API.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client uploads and deletes objects in one public bucket.
type Client struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewClient creates a storage client for bucket.
// Requires the service role key (SUPABASE_KEY).
func NewClient(supabaseURL, serviceKey, bucket string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(supabaseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Error is returned for any non-2xx response
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage returned status %d: %s", e.Status, e.Body)
}

// Object is one entry of a bucket listing
type Object struct {
	Name      string    `json:"name"`
	ID        string    `json:"id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicURL returns the public address of path
func (c *Client) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, path)
}

// Upload stores body at path and returns its public URL.
// Existing objects are not overwritten.
func (c *Client) Upload(ctx context.Context, path, contentType string, body io.Reader, size int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.objectURL(path), body)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if size > 0 {
		req.ContentLength = size
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "max-age=3600")
	req.Header.Set("x-upsert", "false")

	if err := c.send(req, nil); err != nil {
		return "", err
	}
	return c.PublicURL(path), nil
}

// Delete removes the objects at paths. Missing objects are not an error.
func (c *Client) Delete(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	payload, err := json.Marshal(map[string][]string{"prefixes": paths})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s", c.baseURL, c.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, nil)
}

// List returns the objects directly under folder
func (c *Client) List(ctx context.Context, folder string) ([]Object, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"prefix": folder,
		"limit":  1000,
		"offset": 0,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/storage/v1/object/list/%s", c.baseURL, c.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var objects []Object
	if err := c.send(req, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}

func (c *Client) objectURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, path)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("apikey", c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Body: string(body)}
	}

	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
