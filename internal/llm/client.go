package llm

import (
	"context"
	"log"

	"ice_ai_server/config"
	"ice_ai_server/internal/types"
)

// Options carries per-call overrides.
type Options struct {
	Model string // overrides the configured default model (Ollama only)
}

// Caller is the interface for chat-completion providers.
type Caller interface {
	// Call sends a list of role-tagged messages and returns the raw text
	// content of the model's reply. No retries are performed here; retry
	// policy, if any, belongs to the caller.
	Call(ctx context.Context, messages []types.ChatMessage, opts Options) (string, error)

	// ProviderName returns the name of the provider being used.
	ProviderName() string
}

// New selects a provider from configuration. Groq without a configured API
// key silently falls back to the local Ollama provider rather than failing
// every call.
func New(cfg config.Config) Caller {
	if cfg.LLMProvider == "groq" {
		if cfg.GroqAPIKey == "" {
			log.Println("Info: GROQ_API_KEY not configured, using Ollama instead.")
			return NewOllamaClient(cfg)
		}
		return NewGroqClient(cfg)
	}
	// Default: Ollama (free, local)
	return NewOllamaClient(cfg)
}
