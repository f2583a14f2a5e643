package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("", "", SamplingConfig{})

	assert.Equal(t, defaultAPIURL, client.apiURL)
	assert.Equal(t, defaultModel, client.model)
	assert.Equal(t, 0.1, client.sampling.Temperature)
	assert.Equal(t, defaultMaxTokens, client.sampling.MaxTokens)
	assert.True(t, client.IsConfigured())
}

func TestCompleteSendsRequest(t *testing.T) {
	var captured generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(generateResponse{
			Model:    captured.Model,
			Response: "  Hello there!  \n",
			Done:     true,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "mistral", SamplingConfig{
		Temperature: 0.2,
		TopP:        0.9,
		TopK:        40,
		MaxTokens:   512,
	})

	got, err := client.Complete(context.Background(), "You are helpful.", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello there!", got)

	assert.Equal(t, "mistral", captured.Model)
	assert.Equal(t, "You are helpful.", captured.System)
	assert.Equal(t, "hi", captured.Prompt)
	assert.False(t, captured.Stream)
	assert.Equal(t, 0.2, captured.Options.Temperature)
	assert.Equal(t, 0.9, captured.Options.TopP)
	assert.Equal(t, 40, captured.Options.TopK)
	assert.Equal(t, 512, captured.Options.NumPredict)
}

func TestCompleteHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "mistral", SamplingConfig{})

	_, err := client.Complete(context.Background(), "", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Contains(t, err.Error(), "model not found")
}

func TestCompleteAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Error: "out of memory"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "mistral", SamplingConfig{})

	_, err := client.Complete(context.Background(), "", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of memory")
}

func TestCompleteConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, "mistral", SamplingConfig{})

	_, err := client.Complete(context.Background(), "", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send request")
}
