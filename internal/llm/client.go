package llm

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

const (
	defaultAPIURL    = "http://127.0.0.1:11434/api/generate"
	defaultModel     = "mistral"
	defaultMaxTokens = 1024
)

// SamplingConfig controls generation sampling for a completion call.
type SamplingConfig struct {
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
}

// Completer is the text-generation collaborator consumed by the agent.
// Its return value is untrusted free text; the agent imposes structure on it.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	IsConfigured() bool
}

// Client talks to an Ollama generate endpoint.
type Client struct {
	apiURL     string
	model      string
	sampling   SamplingConfig
	httpClient *http.Client
}

// NewClient creates a new Ollama client.
func NewClient(apiURL, model string, sampling SamplingConfig) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	if model == "" {
		model = defaultModel
	}
	if sampling.Temperature <= 0 {
		sampling.Temperature = 0.1
	}
	if sampling.MaxTokens <= 0 {
		sampling.MaxTokens = defaultMaxTokens
	}

	return &Client{
		apiURL:   apiURL,
		model:    model,
		sampling: sampling,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// generateRequest is the Ollama /api/generate request body.
type generateRequest struct {
	Model   string          `json:"model"`
	System  string          `json:"system,omitempty"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p,omitempty"`
	TopK        int     `json:"top_k,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// generateResponse is the Ollama /api/generate response body.
type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error,omitempty"`
}

// Complete sends a prompt to the model and returns the generated text, trimmed.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := generateRequest{
		Model:  c.model,
		System: systemPrompt,
		Prompt: userPrompt,
		Stream: false,
		Options: generateOptions{
			Temperature: c.sampling.Temperature,
			TopP:        c.sampling.TopP,
			TopK:        c.sampling.TopK,
			NumPredict:  c.sampling.MaxTokens,
		},
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generate API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp generateResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if apiResp.Error != "" {
		return "", fmt.Errorf("generate API error: %s", apiResp.Error)
	}

	return strings.TrimSpace(apiResp.Response), nil
}

// IsConfigured returns true if the client has an endpoint and model set.
func (c *Client) IsConfigured() bool {
	return c.apiURL != "" && c.model != ""
}
