package chatbot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Ask(t *testing.T) {
	t.Parallel()

	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  Eat more protein.  "}},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", "mistral-small-latest", server.URL)

	reply, err := client.Ask(context.Background(), "How do I build muscle?")
	require.NoError(t, err)
	assert.Equal(t, "Eat more protein.", reply)

	assert.Equal(t, "mistral-small-latest", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Contains(t, gotReq.Messages[0].Content, "fitness and nutrition expert")
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, "How do I build muscle?", gotReq.Messages[1].Content)
	assert.InDelta(t, 0.7, gotReq.Temperature, 0.001)
	assert.Equal(t, 150, gotReq.MaxTokens)
}

func TestClient_Ask_EmptyQuestion(t *testing.T) {
	t.Parallel()

	client := NewClient("test-key", "mistral-small-latest", "http://unused")

	_, err := client.Ask(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyQuestion)

	_, err = client.Ask(context.Background(), "   \n\t ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestClient_Ask_UpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient("bad-key", "mistral-small-latest", server.URL)

	_, err := client.Ask(context.Background(), "How do I build muscle?")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestClient_Ask_NoChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", "mistral-small-latest", server.URL)

	_, err := client.Ask(context.Background(), "How do I build muscle?")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestClient_Ask_ConnectionRefused(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient("test-key", "mistral-small-latest", server.URL)

	_, err := client.Ask(context.Background(), "How do I build muscle?")
	assert.ErrorIs(t, err, ErrUpstream)
}
