package result

import (
	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/resolution"
)

// Result is an ordered page of scholarships plus how the query was interpreted.
type Result struct {
	items      []scholarship.Scholarship
	resolution *resolution.Resolution
	candidates int
}

// New creates a search result. res is nil for the unfiltered listing.
func New(items []scholarship.Scholarship, res *resolution.Resolution, candidates int) Result {
	if items == nil {
		items = []scholarship.Scholarship{}
	}
	return Result{items: items, resolution: res, candidates: candidates}
}

// Empty returns a result without records.
func Empty(res *resolution.Resolution) Result { return New(nil, res, 0) }

// Items returns the ordered scholarships. Never nil.
func (r *Result) Items() []scholarship.Scholarship { return r.items }

// Len returns the number of scholarships.
func (r *Result) Len() int { return len(r.items) }

// Resolution returns the extraction outcome, nil for the unfiltered listing.
func (r *Result) Resolution() *resolution.Resolution { return r.resolution }

// Candidates returns how many semantic candidates constrained the query.
func (r *Result) Candidates() int { return r.candidates }
