package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ice_ai_server/config"
	"ice_ai_server/internal/types"
)

// OllamaClient implements the Caller interface against a local Ollama server.
type OllamaClient struct {
	host       string
	model      string
	fastMode   bool
	httpClient *http.Client
}

// NewOllamaClient creates a new Ollama client from configuration.
func NewOllamaClient(cfg config.Config) *OllamaClient {
	return &OllamaClient{
		host:     strings.TrimSuffix(cfg.OllamaHost, "/"),
		model:    cfg.OllamaModel,
		fastMode: cfg.FastMode,
		// Timeouts are driven by the request context; the orchestrator owns
		// the wall-clock budget.
		httpClient: &http.Client{},
	}
}

// ProviderName returns the provider name.
func (c *OllamaClient) ProviderName() string {
	return "ollama"
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumCtx      int     `json:"num_ctx"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaChatRequest struct {
	Model     string              `json:"model"`
	Messages  []types.ChatMessage `json:"messages"`
	Stream    bool                `json:"stream"`
	Format    string              `json:"format"`
	KeepAlive string              `json:"keep_alive"`
	Options   ollamaOptions       `json:"options"`
}

type ollamaChatResponse struct {
	Message *struct {
		Content string `json:"content"`
	} `json:"message"`
}

// Call sends a non-streaming chat request to {host}/api/chat. An explicit
// per-call model override takes precedence over the configured default.
// JSON-only output mode is always requested; it reduces, but does not
// guarantee, malformed output.
func (c *OllamaClient) Call(ctx context.Context, messages []types.ChatMessage, opts Options) (string, error) {
	model := c.model
	if strings.TrimSpace(opts.Model) != "" {
		model = strings.TrimSpace(opts.Model)
	}

	// FAST_MODE tunes output length for ~1-2 minute generations on modest hardware.
	options := ollamaOptions{
		Temperature: 0.15,
		NumCtx:      8192,
		NumPredict:  4200,
	}
	if c.fastMode {
		options.NumPredict = 2600
	}

	payload := ollamaChatRequest{
		Model:     model,
		Messages:  messages,
		Stream:    false,
		Format:    "json",
		KeepAlive: "10m", // keep the model warm between requests
		Options:   options,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("error marshaling ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling ollama at %s (is Ollama running?): %w", c.host, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading ollama response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &HTTPError{Provider: "ollama", Status: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	var chatResp ollamaChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", &ResponseError{Provider: "ollama", Reason: "body is not valid JSON"}
	}
	if chatResp.Message == nil {
		return "", &ResponseError{Provider: "ollama", Reason: "missing message field"}
	}

	return chatResp.Message.Content, nil
}
