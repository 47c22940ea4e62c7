package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scholarsearch/internal/domain"
	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/predicate"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/request"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/resolution"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/result"
	"github.com/kailas-cloud/scholarsearch/internal/logger"
	"github.com/kailas-cloud/scholarsearch/internal/metrics"
)

// Options tunes the search service.
type Options struct {
	PageSize       int
	MaxQueryLength int
	// CandidateFallback re-runs a candidate-narrowed query once without the
	// candidate restriction when it matched nothing.
	CandidateFallback bool
}

// Service handles scholarship search from free text.
type Service struct {
	store     Store
	resolver  Resolver
	retriever Retriever
	opts      Options
}

// New creates a search service.
func New(store Store, resolver Resolver, retriever Retriever, opts Options) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = request.PageSize
	}
	if opts.MaxQueryLength <= 0 {
		opts.MaxQueryLength = request.DefaultMaxQueryLength
	}
	return &Service{store: store, resolver: resolver, retriever: retriever, opts: opts}
}

// Search resolves raw into filters and candidates concurrently, then queries the store.
// An empty query lists the active set without extraction.
func (s *Service) Search(ctx context.Context, raw string) (result.Result, error) {
	req, err := request.New(raw, s.opts.MaxQueryLength)
	if err != nil {
		return result.Result{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}
	if req.IsEmpty() {
		return s.List(ctx)
	}

	start := time.Now()
	defer func() {
		metrics.SearchDuration.WithLabelValues("query").Observe(time.Since(start).Seconds())
	}()

	active, err := s.store.CountActive(ctx)
	if err != nil {
		return result.Result{}, s.storeFailure(ctx, "count active", err)
	}
	if active == 0 {
		metrics.SearchResults.WithLabelValues("query").Observe(0)
		return result.Empty(nil), nil
	}

	res, cands, err := s.interpret(ctx, req.Query())
	if err != nil {
		return result.Result{}, err
	}

	items, err := s.execute(ctx, predicate.Build(res.Filters, cands), cands)
	if err != nil {
		return result.Result{}, err
	}

	if len(items) == 0 && !cands.IsEmpty() && s.opts.CandidateFallback {
		cands = candidate.Set{}
		if items, err = s.execute(ctx, predicate.Build(res.Filters, cands), cands); err != nil {
			return result.Result{}, err
		}
	}

	logger.FromContext(ctx).Debug("Search resolved",
		zap.String("source", string(res.Source)),
		zap.String("reason", string(res.Reason)),
		zap.Stringer("filters", res.Filters),
		zap.Int("candidates", cands.Len()),
		zap.Int("results", len(items)),
	)
	metrics.SearchResults.WithLabelValues("query").Observe(float64(len(items)))

	return result.New(items, &res, cands.Len()), nil
}

// interpret runs the resolver and the retriever in parallel and waits for both.
// A cancelled caller discards whatever they produced.
func (s *Service) interpret(ctx context.Context, text string) (resolution.Resolution, candidate.Set, error) {
	var (
		wg    sync.WaitGroup
		res   resolution.Resolution
		cands candidate.Set
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		res = s.resolver.Resolve(ctx, text)
	}()
	go func() {
		defer wg.Done()
		cands = s.retriever.Retrieve(ctx, text)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return resolution.Resolution{}, candidate.Set{}, fmt.Errorf("search interrupted: %w", err)
	}
	return res, cands, nil
}

// List returns the default-sorted active set, bypassing extraction and retrieval.
func (s *Service) List(ctx context.Context) (result.Result, error) {
	start := time.Now()
	defer func() {
		metrics.SearchDuration.WithLabelValues("browse").Observe(time.Since(start).Seconds())
	}()

	items, err := s.execute(ctx, predicate.Active(), candidate.Set{})
	if err != nil {
		return result.Result{}, err
	}
	metrics.SearchResults.WithLabelValues("browse").Observe(float64(len(items)))
	return result.New(items, nil, 0), nil
}

// Get returns one scholarship by id, active or not.
func (s *Service) Get(ctx context.Context, id int64) (scholarship.Scholarship, error) {
	sch, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return scholarship.Scholarship{}, fmt.Errorf("scholarship %d: %w", id, err)
		}
		return scholarship.Scholarship{}, s.storeFailure(ctx, "get", err)
	}
	return sch, nil
}

// storeFailure hides the store error behind ErrSearchFailed; the cause is only logged.
func (s *Service) storeFailure(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("search interrupted: %w", ctxErr)
	}
	logger.FromContext(ctx).Error("Relational store failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, domain.ErrSearchFailed)
}
