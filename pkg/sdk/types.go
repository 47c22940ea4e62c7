package scholarsearch

import (
	"encoding/json"
	"time"

	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/resolution"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/result"
)

// Wildcard is the dimension value meaning "open to everyone".
const Wildcard = scholarship.Wildcard

// Scholarship is a stored scholarship. Nil pointer fields are unknown.
type Scholarship struct {
	ID          int64
	Name        string
	Description string
	Amount      int64
	Location    string
	Type        string
	Religious   string
	Gender      string
	MinAge      int
	MaxAge      int
	Category    string
	Institution *string
	Deadline    *time.Time
	Income      *int64
	Disability  *bool
	ExService   *bool
	Active      bool
}

// Interpretation reports how a query was read.
type Interpretation struct {
	Source  string          // "structured" or "heuristic"
	Reason  string          // "ok", "disabled", "timeout", "unavailable", "malformed", "canceled"
	Filters json.RawMessage // accepted filters as JSON
}

// Results is the outcome of Search or List.
type Results struct {
	Items []Scholarship
	// Interpretation is nil for List and for an empty query.
	Interpretation *Interpretation
	// Candidates is the number of semantic candidates that narrowed the result.
	Candidates int
}

// IndexReport summarizes a Reindex run.
type IndexReport struct {
	Total   int
	Indexed int
	Failed  int
}

func (s *Scholarship) toDomain() scholarship.Scholarship {
	return scholarship.Scholarship{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Amount:      s.Amount,
		Location:    s.Location,
		Type:        s.Type,
		Religious:   s.Religious,
		Gender:      s.Gender,
		MinAge:      s.MinAge,
		MaxAge:      s.MaxAge,
		Category:    s.Category,
		Institution: s.Institution,
		Deadline:    s.Deadline,
		Income:      s.Income,
		Disability:  s.Disability,
		ExService:   s.ExService,
		IsActive:    s.Active,
	}
}

func scholarshipFromDomain(sc *scholarship.Scholarship) Scholarship {
	return Scholarship{
		ID:          sc.ID,
		Name:        sc.Name,
		Description: sc.Description,
		Amount:      sc.Amount,
		Location:    sc.Location,
		Type:        sc.Type,
		Religious:   sc.Religious,
		Gender:      sc.Gender,
		MinAge:      sc.MinAge,
		MaxAge:      sc.MaxAge,
		Category:    sc.Category,
		Institution: sc.Institution,
		Deadline:    sc.Deadline,
		Income:      sc.Income,
		Disability:  sc.Disability,
		ExService:   sc.ExService,
		Active:      sc.IsActive,
	}
}

func interpretationFromDomain(rs *resolution.Resolution) Interpretation {
	return Interpretation{
		Source:  string(rs.Source),
		Reason:  string(rs.Reason),
		Filters: json.RawMessage(rs.Filters.String()),
	}
}

func resultsFromDomain(res *result.Result) Results {
	items := make([]Scholarship, res.Len())
	for i := range res.Items() {
		items[i] = scholarshipFromDomain(&res.Items()[i])
	}
	out := Results{Items: items, Candidates: res.Candidates()}
	if rs := res.Resolution(); rs != nil {
		in := interpretationFromDomain(rs)
		out.Interpretation = &in
	}
	return out
}
