package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scam-analyze-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	c := NewClient("test-key", "gemini-1.5-flash", 5*time.Second)
	c.baseURL = serverURL
	return c
}

func TestCompleteReturnsFirstTextPart(t *testing.T) {
	var gotReq geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"risk_level\":\"low\"}"}]}}]}`))
	}))
	defer server.Close()

	image := &models.InlineImage{MimeType: "image/png", Data: "aGVsbG8="}
	text, err := newTestClient(server.URL).Complete(context.Background(), "analyze this", image)
	require.NoError(t, err)
	assert.Equal(t, `{"risk_level":"low"}`, text)

	require.Len(t, gotReq.Contents, 1)
	require.Len(t, gotReq.Contents[0].Parts, 2)
	assert.Equal(t, "analyze this", gotReq.Contents[0].Parts[0].Text)
	require.NotNil(t, gotReq.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/png", gotReq.Contents[0].Parts[1].InlineData.MimeType)
	assert.Equal(t, "application/json", gotReq.GenerationConfig.ResponseMimeType)
}

func TestCompleteFallsBackToSecondEndpoint(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	text, err := newTestClient(server.URL).Complete(context.Background(), "prompt", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 2, calls)
}

func TestCompleteNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Complete(context.Background(), "prompt", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}
