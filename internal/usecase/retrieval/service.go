// Package retrieval finds semantic candidates for a query. It fails closed:
// any error yields an empty candidate set.
package retrieval

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scholarsearch/internal/domain"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/request"
	"github.com/kailas-cloud/scholarsearch/internal/logger"
	"github.com/kailas-cloud/scholarsearch/internal/metrics"
)

// Default per-call timeouts.
const (
	DefaultEmbedTimeout = 2 * time.Second
	DefaultQueryTimeout = time.Second
)

// Options tunes retrieval.
type Options struct {
	TopK         int
	EmbedTimeout time.Duration
	QueryTimeout time.Duration
}

// Service is the semantic candidate retriever.
type Service struct {
	embed Embedder
	index Index
	opts  Options
}

// New creates a retriever. A nil embedder or index disables retrieval.
func New(embed Embedder, index Index, opts Options) *Service {
	if opts.TopK <= 0 {
		opts.TopK = request.DefaultTopK
	}
	if opts.EmbedTimeout <= 0 {
		opts.EmbedTimeout = DefaultEmbedTimeout
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = DefaultQueryTimeout
	}
	return &Service{embed: embed, index: index, opts: opts}
}

// Enabled reports whether retrieval can produce candidates at all.
func (s *Service) Enabled() bool {
	return s != nil && s.embed != nil && s.index != nil
}

// Retrieve returns up to TopK candidates for text. Never fails.
func (s *Service) Retrieve(ctx context.Context, text string) candidate.Set {
	if !s.Enabled() {
		metrics.RetrievalTotal.WithLabelValues("disabled").Inc()
		return candidate.Set{}
	}
	log := logger.FromContext(ctx)

	vec, err := s.vectorize(ctx, text)
	if err != nil {
		metrics.RetrievalTotal.WithLabelValues("embed_error").Inc()
		if ctx.Err() == nil {
			log.Warn("Query embedding failed, continuing without candidates", zap.Error(err))
		}
		return candidate.Set{}
	}

	qctx, cancel := context.WithTimeout(ctx, s.opts.QueryTimeout)
	defer cancel()

	hits, err := s.index.Query(qctx, vec, s.opts.TopK)
	if err != nil {
		metrics.RetrievalTotal.WithLabelValues("query_error").Inc()
		if ctx.Err() == nil {
			log.Warn("Vector query failed, continuing without candidates", zap.Error(err))
		}
		return candidate.Set{}
	}

	set := candidate.NewSet(hits)
	if set.IsEmpty() {
		metrics.RetrievalTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.RetrievalTotal.WithLabelValues("ok").Inc()
	}
	return set
}

func (s *Service) vectorize(ctx context.Context, text string) ([]float32, error) {
	ectx, cancel := context.WithTimeout(ctx, s.opts.EmbedTimeout)
	defer cancel()

	res, err := s.embed.Embed(ectx, text)
	if err != nil {
		return nil, err //nolint:wrapcheck // logged and dropped by the caller
	}
	domain.UsageFromContext(ctx).AddEmbeddingTokens(res.TotalTokens)

	if err := domain.ValidateVector(res.Embedding); err != nil {
		return nil, err //nolint:wrapcheck // logged and dropped by the caller
	}
	return res.Embedding, nil
}
