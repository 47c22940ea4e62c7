package search

import (
	"context"

	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/predicate"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/resolution"
)

// Store is the relational store contract. It is read-only from this package.
type Store interface {
	FindByPredicate(
		ctx context.Context, p predicate.Predicate, order predicate.Order, limit int,
	) ([]scholarship.Scholarship, error)
	CountActive(ctx context.Context) (int, error)
	Get(ctx context.Context, id int64) (scholarship.Scholarship, error)
}

// Resolver turns a raw query into filters. Never fails.
type Resolver interface {
	Resolve(ctx context.Context, text string) resolution.Resolution
}

// Retriever finds semantic candidates. Never fails.
type Retriever interface {
	Retrieve(ctx context.Context, text string) candidate.Set
}
