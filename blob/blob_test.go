package blob

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutStoresAndReturnsURL(t *testing.T) {
	var gotMethod, gotPath, gotAuth, gotType string
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"url":"https://cdn.example.com/scam-analysis/abc.png"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", 5*time.Second)
	url, err := client.Put(context.Background(), "scam-analysis/abc.png", "image/png", []byte("pngbytes"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/scam-analysis/abc.png", url)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/scam-analysis/abc.png", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, []byte("pngbytes"), gotBody)
}

func TestPutFallsBackToRequestURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "secret", 5*time.Second)
	url, err := client.Put(context.Background(), "a/b.jpg", "image/jpeg", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/a/b.jpg", url)
}

func TestPutUnconfigured(t *testing.T) {
	client := NewClient("", "token", 5*time.Second)
	_, err := client.Put(context.Background(), "a.png", "image/png", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestDelete(t *testing.T) {
	deletes := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes++
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", 5*time.Second)
	require.NoError(t, client.Delete(context.Background(), server.URL+"/scam-analysis/abc.png"))
	assert.Equal(t, 1, deletes)
}

func TestDeleteRejectsNonHTTPURL(t *testing.T) {
	client := NewClient("", "secret", 5*time.Second)
	assert.Error(t, client.Delete(context.Background(), "file:///etc/passwd"))
}

func TestDeleteSurfacesStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", 5*time.Second)
	assert.Error(t, client.Delete(context.Background(), server.URL+"/x"))
}
