// Package indexing embeds active scholarships and writes them to the vector index.
package indexing

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scholarsearch/internal/domain"
	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
	"github.com/kailas-cloud/scholarsearch/internal/logger"
	"github.com/kailas-cloud/scholarsearch/internal/metrics"
)

// Defaults.
const (
	DefaultBatchSize = 32
	DefaultWorkers   = 4
)

// Options tunes batching and concurrency.
type Options struct {
	BatchSize int
	Workers   int
}

// Report summarizes a reindex run.
type Report struct {
	Total   int `json:"total"`
	Indexed int `json:"indexed"`
	Failed  int `json:"failed"`
	Pruned  int `json:"pruned"`
}

// Service rebuilds the vector index from the relational store.
type Service struct {
	source Source
	index  Index
	embed  Embedder
	opts   Options
}

// New creates an indexing service.
func New(source Source, index Index, embed Embedder, opts Options) *Service {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &Service{source: source, index: index, embed: embed, opts: opts}
}

// Rebuild drops the vector index and reindexes from scratch.
// Needed after the embedding model or dimensions change.
func (s *Service) Rebuild(ctx context.Context) (Report, error) {
	if err := s.index.DropIndex(ctx); err != nil {
		return Report{}, fmt.Errorf("drop index: %w", err)
	}
	return s.Reindex(ctx)
}

// Reindex evicts vectors of inactive scholarships, then embeds every active
// one and upserts the vectors.
// A failed batch is counted and logged; the remaining batches still run.
func (s *Service) Reindex(ctx context.Context) (Report, error) {
	if err := s.index.EnsureIndex(ctx); err != nil {
		return Report{}, fmt.Errorf("ensure index: %w", err)
	}

	pruned, err := s.prune(ctx)
	if err != nil {
		return Report{}, err
	}

	rows, err := s.source.ListActive(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list active: %w", err)
	}
	report := Report{Total: len(rows), Pruned: pruned}
	if len(rows) == 0 {
		return report, nil
	}

	pool, err := ants.NewPool(s.opts.Workers)
	if err != nil {
		return Report{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	log := logger.FromContext(ctx)
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	tally := func(indexed, failed int) {
		mu.Lock()
		report.Indexed += indexed
		report.Failed += failed
		mu.Unlock()
		metrics.IndexedTotal.WithLabelValues("ok").Add(float64(indexed))
		metrics.IndexedTotal.WithLabelValues("error").Add(float64(failed))
	}

	for offset := 0; offset < len(rows); offset += s.opts.BatchSize {
		batch := rows[offset:min(offset+s.opts.BatchSize, len(rows))]
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			indexed, err := s.indexBatch(ctx, batch)
			if err != nil {
				log.Warn("index batch failed",
					zap.Int64("first_id", batch[0].ID),
					zap.Int("size", len(batch)),
					zap.Error(err),
				)
			}
			tally(indexed, len(batch)-indexed)
		})
		if submitErr != nil {
			wg.Done()
			tally(0, len(batch))
		}
	}
	wg.Wait()

	log.Info("reindex finished",
		zap.Int("total", report.Total),
		zap.Int("indexed", report.Indexed),
		zap.Int("failed", report.Failed),
		zap.Int("pruned", report.Pruned),
	)
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("reindex interrupted: %w", err)
	}
	return report, nil
}

// prune deletes vectors of inactive scholarships so they stop taking
// top-K slots away from live records.
func (s *Service) prune(ctx context.Context) (int, error) {
	ids, err := s.source.ListInactiveIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list inactive: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	if err := s.index.Delete(ctx, ids...); err != nil {
		return 0, fmt.Errorf("prune %d vectors: %w", len(ids), err)
	}
	return len(ids), nil
}

// indexBatch embeds one batch and writes the valid vectors. It returns how many were written.
func (s *Service) indexBatch(ctx context.Context, batch []scholarship.Scholarship) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	texts := make([]string, len(batch))
	for i := range batch {
		texts[i] = batch[i].EmbeddingText()
	}

	var (
		res domain.BatchEmbeddingResult
		err error
	)
	if be, ok := s.embed.(domain.BatchEmbedder); ok {
		res, err = be.BatchEmbed(ctx, texts)
	} else {
		res, err = domain.BatchFallback(ctx, s.embed, texts)
	}
	if err != nil {
		return 0, fmt.Errorf("embed: %w", err)
	}
	if len(res.Embeddings) != len(batch) {
		return 0, fmt.Errorf("embed: got %d vectors for %d records", len(res.Embeddings), len(batch))
	}

	items := make([]scholarship.Embedded, 0, len(batch))
	var invalid error
	for i := range batch {
		if err := domain.ValidateVector(res.Embeddings[i]); err != nil {
			invalid = fmt.Errorf("scholarship %d: %w", batch[i].ID, err)
			continue
		}
		items = append(items, batch[i].Embed(res.Embeddings[i]))
	}
	if len(items) == 0 {
		return 0, invalid
	}

	if err := s.index.Upsert(ctx, items); err != nil {
		return 0, fmt.Errorf("upsert: %w", err)
	}
	return len(items), invalid
}
