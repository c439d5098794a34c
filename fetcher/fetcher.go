package fetcher

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"time"

	"scam-analyze-service/models"
)

const defaultMimeType = "image/jpeg"

// Fetcher retrieves a remote image and converts it into an inline attachment.
type Fetcher struct {
	httpClient *http.Client
	maxBytes   int64
}

// New creates a fetcher with an outbound timeout and a size ceiling for
// inline attachments.
func New(timeout time.Duration, maxBytes int64) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		maxBytes:   maxBytes,
	}
}

// Fetch performs a single retrieval of url. Exactly one of the two return
// values is non-nil. A fetch error is not fatal to the caller: the analysis
// proceeds text-only with the reason appended to the prompt. No retry.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*models.InlineImage, *models.ImageFetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &models.ImageFetchError{Reason: "fetch failed", Detail: err.Error()}
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &models.ImageFetchError{Reason: "fetch failed", Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &models.ImageFetchError{Reason: "fetch failed", Detail: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, &models.ImageFetchError{Reason: "not an image", Detail: contentType}
	}

	// Reject oversized bodies before reading them: base64-encoding a large
	// body synchronously is the dominant cost in this path.
	if resp.ContentLength > f.maxBytes {
		return nil, &models.ImageFetchError{Reason: "too large", Detail: resp.ContentLength}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.ImageFetchError{Reason: "fetch failed", Detail: err.Error()}
	}

	mimeType := contentType
	if mimeType == "" {
		mimeType = defaultMimeType
	}

	return &models.InlineImage{
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(body),
	}, nil
}
