package search

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/kailas-cloud/scholarsearch/internal/domain"
	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/predicate"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/resolution"
)

// memStore evaluates predicates in memory with the same semantics the SQL store compiles to.
type memStore struct {
	mu       sync.Mutex
	rows     []scholarship.Scholarship
	findErr  error
	countErr error
	finds    []predicate.Predicate
}

func (m *memStore) FindByPredicate(
	_ context.Context, p predicate.Predicate, order predicate.Order, limit int,
) ([]scholarship.Scholarship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds = append(m.finds, p)
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []scholarship.Scholarship
	for i := range m.rows {
		if p.Matches(&m.rows[i]) {
			out = append(out, m.rows[i])
		}
	}
	slices.SortStableFunc(out, func(a, b scholarship.Scholarship) int {
		if c := order.Compare(&a, &b); c != 0 {
			return c
		}
		return int(a.ID - b.ID)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) CountActive(_ context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	n := 0
	for _, r := range m.rows {
		if r.IsActive {
			n++
		}
	}
	return n, nil
}

func (m *memStore) Get(_ context.Context, id int64) (scholarship.Scholarship, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return scholarship.Scholarship{}, domain.ErrNotFound
}

type resolverFunc func(ctx context.Context, text string) resolution.Resolution

func (f resolverFunc) Resolve(ctx context.Context, text string) resolution.Resolution {
	return f(ctx, text)
}

type retrieverFunc func(ctx context.Context, text string) candidate.Set

func (f retrieverFunc) Retrieve(ctx context.Context, text string) candidate.Set {
	return f(ctx, text)
}

func noCandidates() retrieverFunc {
	return func(context.Context, string) candidate.Set { return candidate.Set{} }
}

func candidates(hits ...candidate.Hit) retrieverFunc {
	return func(context.Context, string) candidate.Set { return candidate.NewSet(hits) }
}

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func record(id int64, mod func(*scholarship.Scholarship)) scholarship.Scholarship {
	s := scholarship.Scholarship{
		ID:        id,
		Name:      "Scholarship",
		Amount:    10000,
		Location:  scholarship.Wildcard,
		Type:      scholarship.Wildcard,
		Religious: scholarship.Wildcard,
		Gender:    scholarship.Wildcard,
		Category:  scholarship.Wildcard,
		IsActive:  true,
	}
	if mod != nil {
		mod(&s)
	}
	return s
}

func ids(items []scholarship.Scholarship) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
