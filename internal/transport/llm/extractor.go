// Package llm implements structured filter extraction over an
// OpenAI-compatible chat model via langchaingo.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scholarsearch/internal/domain"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/filters"
	"github.com/kailas-cloud/scholarsearch/internal/metrics"
)

// Config holds the extraction model settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Logger  *zap.Logger
}

// Extractor turns free text into filters with one JSON-mode chat completion.
// There are no retries and no repair: a response either coerces or is malformed.
type Extractor struct {
	model     llms.Model
	modelName string
	logger    *zap.Logger
}

// NewExtractor creates an extractor backed by an OpenAI-compatible endpoint.
func NewExtractor(cfg *Config) (*Extractor, error) {
	if cfg.Model == "" {
		return nil, errors.New("extraction model is required")
	}
	token := cfg.APIKey
	if token == "" {
		// local OpenAI-compatible servers accept any token
		token = "none"
	}

	opts := []openai.Option{
		openai.WithToken(token),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create extraction client: %w", err)
	}
	return New(client, cfg.Model, cfg.Logger), nil
}

// New wraps an existing model.
func New(model llms.Model, modelName string, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{model: model, modelName: modelName, logger: logger}
}

// Extract asks the model for filters.
// Transport failures wrap domain.ErrExtractionUnavailable (and the context error, if any);
// unusable responses wrap domain.ErrExtractionMalformed.
func (e *Extractor) Extract(ctx context.Context, text string) (filters.Filters, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, text),
	}

	start := time.Now()
	resp, err := e.model.GenerateContent(ctx, content, llms.WithTemperature(0), llms.WithJSONMode())
	metrics.ExtractionDuration.WithLabelValues(e.modelName).Observe(time.Since(start).Seconds())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return filters.Filters{}, fmt.Errorf("%w: %w", domain.ErrExtractionUnavailable, ctxErr)
		}
		return filters.Filters{}, fmt.Errorf("%w: %w", domain.ErrExtractionUnavailable, err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return filters.Filters{}, fmt.Errorf("%w: no choices returned", domain.ErrExtractionMalformed)
	}
	choice := resp.Choices[0]
	e.recordTokens(ctx, choice.GenerationInfo)

	payload := stripFences(choice.Content)
	f, err := filters.Coerce([]byte(payload))
	if err != nil {
		e.logger.Debug("Extraction response rejected",
			zap.String("response", truncate(payload, 512)), zap.Error(err))
		return filters.Filters{}, err
	}
	return f, nil
}

func (e *Extractor) recordTokens(ctx context.Context, info map[string]any) {
	n := intValue(info["TotalTokens"])
	if n <= 0 {
		return
	}
	metrics.ExtractionTokensTotal.WithLabelValues(e.modelName).Add(float64(n))
	domain.UsageFromContext(ctx).AddExtractionTokens(n)
}

// stripFences removes a markdown code fence some models wrap JSON in even in JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
