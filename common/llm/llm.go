package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// Provider constants for LLM provider selection.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// anthropicDefaultMaxTokens fills the max_tokens field Anthropic requires when none is configured.
const anthropicDefaultMaxTokens = 1024

// ErrEmptyResponse is returned when the provider answers without any text.
var ErrEmptyResponse = errors.New("empty response from provider")

// Config holds LLM client configuration.
type Config struct {
	Provider  string // "gemini", "openai" or "anthropic"
	APIKey    string // Required: API key for the provider
	BaseURL   string // Optional: custom API endpoint
	Model     string // Model name (e.g., "gemini-2.5-flash", "gpt-4o-mini")
	MaxTokens int    // Optional: output cap; zero leaves the provider default
}

// Generator produces text from a single prompt.
// Implementations are safe for concurrent use and hold no per-request state.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	Provider() string
	Model() string
	Close() error
}

// GenerateRequest describes one prompt and its generation options.
type GenerateRequest struct {
	Prompt     string
	JSON       bool   // Constrain provider output to a JSON object; blank text is then an error
	SchemaName string // Optional: name for the structured output schema
	Schema     any    // Optional: JSON schema, used by providers with strict structured output
}

// GenerateResponse carries the extracted text and usage numbers.
type GenerateResponse struct {
	Text             string
	FinishReason     string
	PromptTokens     int
	CompletionTokens int
}

// New creates a Generator for cfg.Provider. Defaults to Gemini.
func New(ctx context.Context, cfg Config) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	provider := strings.ToLower(cfg.Provider)
	if provider == "" {
		provider = ProviderGemini
	}

	switch provider {
	case ProviderGemini:
		return newGeminiGenerator(ctx, cfg)
	case ProviderOpenAI:
		return newOpenAIGenerator(cfg)
	case ProviderAnthropic:
		return newAnthropicGenerator(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// GenerateSchema reflects a strict JSON schema for T.
func GenerateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}
