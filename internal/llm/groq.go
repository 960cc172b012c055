package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"ice_ai_server/config"
	"ice_ai_server/internal/types"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqClient implements the Caller interface for Groq's hosted
// OpenAI-compatible chat completions API.
type GroqClient struct {
	client *openai.Client
	model  string
}

// NewGroqClient creates a new Groq client from configuration.
func NewGroqClient(cfg config.Config) *GroqClient {
	return newGroqClient(cfg, groqBaseURL)
}

func newGroqClient(cfg config.Config, baseURL string) *GroqClient {
	clientCfg := openai.DefaultConfig(cfg.GroqAPIKey)
	clientCfg.BaseURL = baseURL

	return &GroqClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.GroqModel,
	}
}

// ProviderName returns the provider name.
func (c *GroqClient) ProviderName() string {
	return "groq"
}

// Call sends a chat completion request to Groq. The per-call model override
// is an Ollama-only knob; Groq always uses the configured model.
func (c *GroqClient) Call(ctx context.Context, messages []types.ChatMessage, _ Options) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    chatMessages,
			Temperature: 0.2, // lower temperature for more predictable code generation
		},
	)

	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &HTTPError{Provider: "groq", Status: apiErr.HTTPStatusCode, Body: apiErr.Message}
		}
		return "", fmt.Errorf("groq chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &ResponseError{Provider: "groq", Reason: "no choices with content"}
	}

	return resp.Choices[0].Message.Content, nil
}
