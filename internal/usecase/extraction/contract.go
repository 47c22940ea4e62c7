package extraction

import (
	"context"

	"github.com/kailas-cloud/scholarsearch/internal/domain/search/filters"
)

// StructuredExtractor asks an external model for filters. It may fail.
type StructuredExtractor interface {
	Extract(ctx context.Context, text string) (filters.Filters, error)
}

// HeuristicExtractor is the lexicon fallback. It never fails.
type HeuristicExtractor interface {
	Extract(text string) filters.Filters
}
