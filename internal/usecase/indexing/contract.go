package indexing

import (
	"context"

	"github.com/kailas-cloud/scholarsearch/internal/domain"
	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
)

// Source lists the records to index and the ones to evict.
type Source interface {
	ListActive(ctx context.Context) ([]scholarship.Scholarship, error)
	ListInactiveIDs(ctx context.Context) ([]int64, error)
}

// Index stores scholarship vectors.
type Index interface {
	EnsureIndex(ctx context.Context) error
	DropIndex(ctx context.Context) error
	Upsert(ctx context.Context, items []scholarship.Embedded) error
	Delete(ctx context.Context, ids ...int64) error
}

// Embedder vectorizes document text. Implementations that also satisfy
// domain.BatchEmbedder are called once per batch.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
