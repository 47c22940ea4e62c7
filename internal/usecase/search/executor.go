package search

import (
	"cmp"
	"context"
	"slices"

	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/predicate"
)

// execute applies p to the store in the default order and, when candidates
// narrowed the query, breaks order ties by similarity.
func (s *Service) execute(ctx context.Context, p predicate.Predicate, cands candidate.Set) ([]scholarship.Scholarship, error) {
	order := predicate.DefaultOrder()

	items, err := s.store.FindByPredicate(ctx, p, order, s.opts.PageSize)
	if err != nil {
		return nil, s.storeFailure(ctx, "find by predicate", err)
	}
	if len(items) > s.opts.PageSize {
		items = items[:s.opts.PageSize]
	}
	if !cands.IsEmpty() {
		rank(items, order, cands)
	}
	return items, nil
}

// rank re-sorts items by order, then by descending similarity. Similarity
// never moves a record across the declared order. The sort is stable so rows
// that tie on both keep the store's order.
func rank(items []scholarship.Scholarship, order predicate.Order, cands candidate.Set) {
	slices.SortStableFunc(items, func(a, b scholarship.Scholarship) int {
		if c := order.Compare(&a, &b); c != 0 {
			return c
		}
		sa, _ := cands.Score(a.ID)
		sb, _ := cands.Score(b.ID)
		return cmp.Compare(sb, sa)
	})
}
