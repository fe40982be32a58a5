package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type geminiGenerator struct {
	client    *genai.Client
	model     string
	maxTokens int
}

func newGeminiGenerator(ctx context.Context, cfg Config) (Generator, error) {
	opts := []option.ClientOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &geminiGenerator{
		client:    client,
		model:     model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	// GenerativeModel carries mutable generation settings, so each call gets its own handle.
	model := g.client.GenerativeModel(g.model)
	// 2.5 models spend thinking tokens from the same budget, so no cap unless configured.
	if g.maxTokens > 0 {
		model.SetMaxOutputTokens(int32(g.maxTokens))
	}
	if req.JSON {
		model.ResponseMIMEType = "application/json"
	}

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	result, err := geminiResult(resp, req.JSON)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "llm generate completed",
		"provider", ProviderGemini,
		"model", g.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", result.PromptTokens,
		"completion_tokens", result.CompletionTokens,
		"finish_reason", result.FinishReason)

	return result, nil
}

func (g *geminiGenerator) Provider() string {
	return ProviderGemini
}

func (g *geminiGenerator) Model() string {
	return g.model
}

func (g *geminiGenerator) Close() error {
	return g.client.Close()
}

// geminiResult joins the text parts of the first candidate.
// Blank text is only an error when requireText is set.
func geminiResult(resp *genai.GenerateContentResponse, requireText bool) (*GenerateResponse, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini: no candidates: %w", ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	result := &GenerateResponse{
		FinishReason: candidate.FinishReason.String(),
	}
	if resp.UsageMetadata != nil {
		result.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		result.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	var sb strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	result.Text = sb.String()
	if requireText && strings.TrimSpace(result.Text) == "" {
		return nil, fmt.Errorf("gemini: finish reason %s: %w", result.FinishReason, ErrEmptyResponse)
	}

	return result, nil
}
