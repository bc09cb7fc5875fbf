package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// LoggingProvider is a decorator that records every request to the
// structured log, tagging each with a request ID and the purpose label
// from the context.
type LoggingProvider struct {
	inner Provider
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider) Provider {
	return &LoggingProvider{inner: p}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	id := uuid.NewString()
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	attrs := []any{
		"request", id,
		"purpose", PurposeFrom(ctx),
		"model", l.inner.ModelID(),
		"latency_ms", time.Since(start).Milliseconds(),
	}
	if resp != nil {
		attrs = append(attrs,
			"input_tokens", resp.Usage.InputTokens,
			"output_tokens", resp.Usage.OutputTokens,
		)
	}

	if err != nil {
		slog.Warn("llm request failed", append(attrs, "error", err)...)
	} else {
		slog.Info("llm request", attrs...)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
