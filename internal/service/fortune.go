package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"basegraph.app/fortune/common/llm"
	"basegraph.app/fortune/common/logger"
	"basegraph.app/fortune/internal/model"
)

var (
	// ErrProviderFailure wraps every failure of a fortune request: transport,
	// provider API errors, timeouts, empty and unparseable responses.
	ErrProviderFailure = errors.New("fortune provider failure")

	// ErrMalformedFortune marks provider text that is not a valid structured fortune.
	ErrMalformedFortune = errors.New("malformed fortune")
)

var codeFencePattern = regexp.MustCompile("(?s)^\\s*```[a-zA-Z]*\\s*(.*?)\\s*```\\s*$")

type FortuneService interface {
	Generate(ctx context.Context) (*model.Fortune, error)
}

type FortuneServiceConfig struct {
	Mode    model.FortuneMode
	Timeout time.Duration // zero disables the per-call deadline
}

type fortuneService struct {
	generator llm.Generator
	mode      model.FortuneMode
	timeout   time.Duration
}

// fortunePayload is the JSON object the structured prompt asks for.
type fortunePayload struct {
	Header string `json:"header" jsonschema:"description=오늘의 운세 요약"`
	Body   string `json:"body" jsonschema:"description=운세 설명과 행동 팁을 포함한 2문장 이하의 내용"`
}

var fortuneSchema = llm.GenerateSchema[fortunePayload]()

func NewFortuneService(generator llm.Generator, cfg FortuneServiceConfig) FortuneService {
	mode := cfg.Mode
	if mode == "" {
		mode = model.FortuneModeStructured
	}
	return &fortuneService{
		generator: generator,
		mode:      mode,
		timeout:   cfg.Timeout,
	}
}

func (s *fortuneService) Generate(ctx context.Context) (*model.Fortune, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Mode:      logger.Ptr(string(s.mode)),
		Provider:  logger.Ptr(s.generator.Provider()),
		Model:     logger.Ptr(s.generator.Model()),
		Component: "fortune.service",
	})

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	sc := logger.StartSpan(ctx, "fortune.generate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("fortune.mode", string(s.mode)),
			attribute.String("llm.provider", s.generator.Provider()),
			attribute.String("llm.model", s.generator.Model()),
		),
	)
	defer sc.End()
	ctx = sc.Context()

	req := llm.GenerateRequest{
		Prompt: PromptFor(s.mode),
	}
	if s.mode != model.FortuneModeFreeform {
		req.JSON = true
		req.SchemaName = "fortune"
		req.Schema = fortuneSchema
	}

	start := time.Now()
	resp, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, sc, err)
	}
	sc.Span().SetAttributes(
		attribute.String("llm.finish_reason", resp.FinishReason),
		attribute.Int("llm.prompt_tokens", resp.PromptTokens),
		attribute.Int("llm.completion_tokens", resp.CompletionTokens),
	)

	fortune, err := s.toFortune(resp.Text)
	if err != nil {
		return nil, s.fail(ctx, sc, err)
	}

	slog.InfoContext(ctx, "fortune generated",
		"duration_ms", time.Since(start).Milliseconds(),
		"completion_tokens", resp.CompletionTokens)

	return fortune, nil
}

// fail emits the single diagnostic line for a failed request and wraps err.
func (s *fortuneService) fail(ctx context.Context, sc *logger.SpanContext, err error) error {
	sc.RecordError(err)
	err = fmt.Errorf("%w: %w", ErrProviderFailure, err)
	slog.ErrorContext(ctx, "failed to generate fortune", FailureAttrs(err)...)
	return err
}

func (s *fortuneService) toFortune(text string) (*model.Fortune, error) {
	if s.mode == model.FortuneModeFreeform {
		return &model.Fortune{Mode: model.FortuneModeFreeform, Text: text}, nil
	}

	payload, err := parseStructuredFortune(text)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", logger.Truncate(text, 200), err)
	}

	return &model.Fortune{
		Mode:   model.FortuneModeStructured,
		Header: payload.Header,
		Body:   payload.Body,
	}, nil
}

// parseStructuredFortune accepts exactly one JSON object holding non-empty
// "header" and "body" strings, optionally inside a markdown code fence.
func parseStructuredFortune(text string) (fortunePayload, error) {
	if m := codeFencePattern.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()

	var payload fortunePayload
	if err := dec.Decode(&payload); err != nil {
		return fortunePayload{}, fmt.Errorf("%w: %w", ErrMalformedFortune, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fortunePayload{}, fmt.Errorf("%w: trailing data after JSON object", ErrMalformedFortune)
	}
	if strings.TrimSpace(payload.Header) == "" || strings.TrimSpace(payload.Body) == "" {
		return fortunePayload{}, fmt.Errorf("%w: header and body are required", ErrMalformedFortune)
	}

	return payload, nil
}

// FailureAttrs returns slog key/value pairs describing a failed Generate call.
func FailureAttrs(err error) []any {
	if errors.Is(err, ErrMalformedFortune) {
		return []any{"error", err, "failure_kind", "malformed_response"}
	}
	return llm.ErrorAttrs(err)
}
