package openai

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

func TestCompleteSendsDataURLAndAuth(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"risk_level\":\"low\"}"}}]}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", "gpt-4o", 5*time.Second)
	client.baseURL = server.URL

	image := &models.InlineImage{MimeType: "image/jpeg", Data: "aGVsbG8="}
	text, err := client.Complete(context.Background(), "analyze this", image)
	require.NoError(t, err)
	assert.Equal(t, `{"risk_level":"low"}`, text)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	require.Len(t, gotReq.Messages, 1)
	require.Len(t, gotReq.Messages[0].Content, 2)
	assert.Equal(t, "analyze this", gotReq.Messages[0].Content[0].Text)
	require.NotNil(t, gotReq.Messages[0].Content[1].ImageURL)
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", gotReq.Messages[0].Content[1].ImageURL.URL)
}

func TestCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", "gpt-4o", 5*time.Second)
	client.baseURL = server.URL

	_, err := client.Complete(context.Background(), "prompt", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}
