// Package explain generates AI study explanations for catalog questions
// and caches them so a question is only ever explained once per device.
package explain

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/pyqdeck/internal/catalog"
	"github.com/abhisek/pyqdeck/internal/kvstore"
	"github.com/abhisek/pyqdeck/internal/llm"
)

const cacheKeyPrefix = "explanation_"

// Config tunes the LLM request.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the request settings used by the app.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.3,
	}
}

// Service produces explanations via an LLM provider, with a chunked
// key-value cache in front.
type Service struct {
	provider llm.Provider
	cache    *kvstore.Chunked
	cfg      Config
}

// NewService creates a Service. The cache may be backed by any Store;
// explanations routinely exceed single-value size limits, hence the
// chunked wrapper.
func NewService(provider llm.Provider, cache *kvstore.Chunked, cfg Config) *Service {
	return &Service{provider: provider, cache: cache, cfg: cfg}
}

// explanationOutput is the raw LLM response before rendering.
type explanationOutput struct {
	Explanation string   `json:"explanation"`
	KeyPoints   []string `json:"key_points"`
}

// Explain returns a rendered markdown explanation for the question.
// Cached responses are served without touching the provider; a cache
// write failure is logged and the explanation is still returned.
func (s *Service) Explain(ctx context.Context, q catalog.Question, anc catalog.Ancestry) (string, error) {
	key := cacheKeyPrefix + q.QuestionID

	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return cached, nil
	} else if err != nil {
		slog.Warn("explanation cache read failed", "question_id", q.QuestionID, "error", err)
	}

	ctx = llm.WithPurpose(ctx, "explain")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(q, anc)},
		},
		Schema:      ExplanationSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}

	var raw explanationOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return "", fmt.Errorf("parse explanation response: %w", err)
	}

	rendered := render(raw)

	if err := s.cache.Set(ctx, key, rendered); err != nil {
		slog.Warn("explanation cache write failed", "question_id", q.QuestionID, "error", err)
	}

	return rendered, nil
}

// Cached reports whether an explanation for the question is already
// stored, without generating one.
func (s *Service) Cached(ctx context.Context, questionID string) bool {
	_, ok, err := s.cache.Get(ctx, cacheKeyPrefix+questionID)
	return err == nil && ok
}

// Invalidate removes a cached explanation.
func (s *Service) Invalidate(ctx context.Context, questionID string) error {
	return s.cache.Delete(ctx, cacheKeyPrefix+questionID)
}

// render flattens the structured output into display markdown.
func render(out explanationOutput) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(out.Explanation))

	if len(out.KeyPoints) > 0 {
		b.WriteString("\n\n**Key points**\n")
		for _, p := range out.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(p))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
