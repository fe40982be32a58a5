package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Anthropic has no JSON response mode; the system prompt carries the constraint.
const anthropicJSONSystemPrompt = "Respond with a single JSON object only. Do not wrap it in markdown or add any other text."

type anthropicGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

func newAnthropicGenerator(cfg Config) (Generator, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}

	return &anthropicGenerator{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

func (g *anthropicGenerator) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	maxTokens := g.maxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	if req.JSON {
		params.System = []anthropic.TextBlockParam{
			{Text: anthropicJSONSystemPrompt},
		}
	}

	start := time.Now()
	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic messages: %w", err)
	}

	slog.DebugContext(ctx, "llm generate completed",
		"provider", ProviderAnthropic,
		"model", g.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
		"stop_reason", resp.StopReason)

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	if req.JSON && strings.TrimSpace(sb.String()) == "" {
		return nil, fmt.Errorf("anthropic: stop reason %s: %w", resp.StopReason, ErrEmptyResponse)
	}

	return &GenerateResponse{
		Text:             sb.String(),
		FinishReason:     string(resp.StopReason),
		PromptTokens:     int(resp.Usage.InputTokens),
		CompletionTokens: int(resp.Usage.OutputTokens),
	}, nil
}

func (g *anthropicGenerator) Provider() string {
	return ProviderAnthropic
}

func (g *anthropicGenerator) Model() string {
	return g.model
}

func (g *anthropicGenerator) Close() error {
	return nil
}
