// Package candidate holds the advisory result of semantic retrieval.
package candidate

import (
	"cmp"
	"slices"
)

// Hit is a single nearest-neighbor match.
type Hit struct {
	ID    int64
	Score float64
}

// Set maps record ids to similarity scores in [0, 1].
// The zero value is an empty set.
type Set struct {
	scores map[int64]float64
	ids    []int64 // score descending, id ascending on ties
}

// NewSet builds a set from hits. Scores are clamped to [0, 1];
// a duplicated id keeps its best score.
func NewSet(hits []Hit) Set {
	if len(hits) == 0 {
		return Set{}
	}
	scores := make(map[int64]float64, len(hits))
	for _, h := range hits {
		score := min(max(h.Score, 0), 1)
		if prev, ok := scores[h.ID]; ok && prev >= score {
			continue
		}
		scores[h.ID] = score
	}

	ids := make([]int64, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b int64) int {
		if c := cmp.Compare(scores[b], scores[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return Set{scores: scores, ids: ids}
}

// Len returns the number of candidates.
func (s Set) Len() int { return len(s.ids) }

// IsEmpty reports whether the set has no candidates.
func (s Set) IsEmpty() bool { return len(s.ids) == 0 }

// IDs returns candidate ids, best score first.
func (s Set) IDs() []int64 { return slices.Clone(s.ids) }

// Score returns the similarity of id; ok is false when id is not a candidate.
func (s Set) Score(id int64) (float64, bool) {
	v, ok := s.scores[id]
	return v, ok
}
