package llm

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"google.golang.org/api/googleapi"
)

// ErrorAttrs returns slog key/value pairs describing a provider failure:
// the upstream HTTP status when the provider answered, and the failure kind otherwise.
func ErrorAttrs(err error) []any {
	if err == nil {
		return nil
	}

	attrs := []any{"error", err}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return append(attrs, "failure_kind", "timeout")
	case errors.Is(err, context.Canceled):
		return append(attrs, "failure_kind", "canceled")
	case errors.Is(err, ErrEmptyResponse):
		return append(attrs, "failure_kind", "empty_response")
	}

	var geminiErr *googleapi.Error
	if errors.As(err, &geminiErr) {
		return append(attrs, "failure_kind", "provider_error", "status_code", geminiErr.Code)
	}

	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return append(attrs, "failure_kind", "provider_error",
			"status_code", openaiErr.StatusCode,
			"error_type", openaiErr.Type,
			"error_code", openaiErr.Code)
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return append(attrs, "failure_kind", "provider_error", "status_code", anthropicErr.StatusCode)
	}

	return append(attrs, "failure_kind", "transport")
}
