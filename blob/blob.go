package blob

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

// Client talks to the blob storage service holding temporarily staged images.
// Objects are stored by name under the configured base URL and deleted by
// their full URL.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a blob client. An empty baseURL leaves uploads
// unconfigured; Delete still works because it addresses blobs by full URL.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

type putResponse struct {
	URL string `json:"url"`
}

// Put stores data under name and returns the URL of the stored object.
func (c *Client) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("blob store not configured")
	}

	target := c.baseURL + "/" + strings.TrimLeft(name, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to store blob: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("blob store error (status %d): %s", resp.StatusCode, string(body))
	}

	// The store may answer with a canonical URL (e.g. with a CDN host);
	// fall back to the request URL otherwise.
	var pr putResponse
	if err := json.Unmarshal(body, &pr); err == nil && pr.URL != "" {
		return pr.URL, nil
	}
	return target, nil
}

// Delete removes the blob at url. Callers treat failure as non-fatal; the
// error is returned for logging and metrics only.
func (c *Client) Delete(ctx context.Context, url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("not a blob url: %q", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("blob delete error (status %d)", resp.StatusCode)
	}
	return nil
}
