package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hopwise/hopwise/internal/core/ports/driven"
)

func TestChat_FormatAndOptions(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"{\"origin\":\"Times Square\"}"},"done":true}`))
	}))
	defer srv.Close()

	svc := NewLLMService(LLMConfig{BaseURL: srv.URL})
	reply, err := svc.Chat(context.Background(), []driven.ChatMessage{{Role: driven.RoleUser, Content: "x"}}, driven.Deterministic())
	require.NoError(t, err)

	assert.Equal(t, `{"origin":"Times Square"}`, reply)
	assert.Equal(t, DefaultLLMModel, got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, "json", got.Format)
	require.NotNil(t, got.Options)
	require.NotNil(t, got.Options.Temperature)
	assert.Equal(t, 0.0, *got.Options.Temperature)
	assert.Equal(t, 500, got.Options.NumPredict)
}

func TestChat_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model not found"}`))
	}))
	defer srv.Close()

	svc := NewLLMService(LLMConfig{BaseURL: srv.URL})
	_, err := svc.Chat(context.Background(), nil, driven.ChatOptions{})
	assert.ErrorContains(t, err, "model not found")
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	assert.NoError(t, NewLLMService(LLMConfig{BaseURL: srv.URL}).Ping(context.Background()))
	assert.Equal(t, "mistral", NewLLMService(LLMConfig{Model: "mistral"}).ModelName())
}
