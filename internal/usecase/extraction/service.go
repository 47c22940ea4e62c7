// Package extraction resolves a raw query into filters, preferring the
// structured extractor and falling back to the heuristic one wholesale.
package extraction

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scholarsearch/internal/domain"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/filters"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/resolution"
	"github.com/kailas-cloud/scholarsearch/internal/logger"
	"github.com/kailas-cloud/scholarsearch/internal/metrics"
)

// DefaultTimeout bounds one structured extraction call.
const DefaultTimeout = 3 * time.Second

// Service is the extraction resolver.
type Service struct {
	structured StructuredExtractor // nil disables structured extraction
	heuristic  HeuristicExtractor
	timeout    time.Duration
}

// New creates a resolver. A nil structured extractor resolves every query heuristically.
func New(structured StructuredExtractor, heuristic HeuristicExtractor, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{structured: structured, heuristic: heuristic, timeout: timeout}
}

type outcome struct {
	filters filters.Filters
	err     error
}

// Resolve never fails and returns within the timeout.
// The structured result is taken whole or not at all.
func (s *Service) Resolve(ctx context.Context, text string) resolution.Resolution {
	if s.structured == nil {
		return s.fallback(ctx, text, resolution.ReasonDisabled, nil)
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Buffered so a late reply never blocks the extractor goroutine.
	done := make(chan outcome, 1)
	go func() {
		f, err := s.structured.Extract(cctx, text)
		done <- outcome{filters: f, err: err}
	}()

	select {
	case out := <-done:
		if out.err == nil {
			return s.record(resolution.Resolution{
				Filters: out.filters,
				Source:  resolution.SourceStructured,
				Reason:  resolution.ReasonOK,
			})
		}
		return s.fallback(ctx, text, classify(ctx, cctx, out.err), out.err)
	case <-cctx.Done():
		return s.fallback(ctx, text, classify(ctx, cctx, cctx.Err()), cctx.Err())
	}
}

// classify maps a structured extraction failure to an outcome reason.
// Cancellation of the caller wins over everything else.
func classify(parent, call context.Context, err error) resolution.Reason {
	switch {
	case parent.Err() != nil:
		return resolution.ReasonCanceled
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(call.Err(), context.DeadlineExceeded):
		return resolution.ReasonTimeout
	case errors.Is(err, domain.ErrExtractionMalformed):
		return resolution.ReasonMalformed
	default:
		return resolution.ReasonUnavailable
	}
}

func (s *Service) fallback(ctx context.Context, text string, reason resolution.Reason, cause error) resolution.Resolution {
	if cause != nil && reason != resolution.ReasonCanceled {
		logger.FromContext(ctx).Warn("Structured extraction failed, using heuristic filters",
			zap.String("reason", string(reason)), zap.Error(cause))
	}
	return s.record(resolution.Resolution{
		Filters: s.heuristic.Extract(text),
		Source:  resolution.SourceHeuristic,
		Reason:  reason,
	})
}

func (s *Service) record(r resolution.Resolution) resolution.Resolution {
	metrics.ExtractionOutcomesTotal.WithLabelValues(string(r.Source), string(r.Reason)).Inc()
	return r
}
