package retrieval

import (
	"context"

	"github.com/kailas-cloud/scholarsearch/internal/domain"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/candidate"
)

// Embedder vectorizes the raw query.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Index answers nearest-neighbor queries.
type Index interface {
	Query(ctx context.Context, vec []float32, topK int) ([]candidate.Hit, error)
}
