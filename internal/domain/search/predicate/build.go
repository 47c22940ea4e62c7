package predicate

import (
	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/filters"
)

// Build turns resolved filters and semantic candidates into a predicate.
// Dimensions are conjoined; values inside a dimension are disjoined together
// with the wildcard. An empty dimension adds nothing. Build is pure: equal
// inputs yield equal trees.
func Build(f filters.Filters, c candidate.Set) Predicate {
	var nodes []Node

	if !c.IsEmpty() {
		nodes = append(nodes, Leaf(In(FieldID, c.IDs())))
	}

	if n, ok := dimension(FieldCategory, strs(f.Category), Contains); ok {
		nodes = append(nodes, n)
	}
	if n, ok := dimension(FieldLocation, f.Location, Contains,
		scholarship.LocationIndia, scholarship.LocationAllIndia); ok {
		nodes = append(nodes, n)
	}
	// Gender matches whole words: "male" is a substring of "female".
	if n, ok := dimension(FieldGender, strs(f.Gender), ContainsWord); ok {
		nodes = append(nodes, n)
	}
	if n, ok := dimension(FieldReligious, strs(f.Religious), Contains); ok {
		nodes = append(nodes, n)
	}
	if n, ok := dimension(FieldType, f.Type, Contains); ok {
		nodes = append(nodes, n)
	}
	if n, ok := dimension(FieldInstitution, f.Institution, Contains); ok {
		nodes = append(nodes, n)
	}

	if f.Amount.IsSet() {
		nodes = append(nodes, Leaf(Between(FieldAmount, bounds(f.Amount))))
	}
	if f.Income.IsSet() {
		nodes = append(nodes, Leaf(Between(FieldIncome, bounds(f.Income))))
	}
	if f.Age.IsSet() {
		nodes = append(nodes, ageOverlap(f.Age))
	}

	if f.Disability.Known() {
		nodes = append(nodes, Leaf(BoolEq(FieldDisability, f.Disability.Bool())))
	}
	if f.ExService.Known() {
		nodes = append(nodes, Leaf(BoolEq(FieldExService, f.ExService.Bool())))
	}

	if len(f.Keywords) > 0 && len(f.Category) == 0 && len(f.Type) == 0 {
		nodes = append(nodes, keywords(f.Keywords))
	}

	return New(nodes...)
}

// dimension ORs one condition per value with the wildcard and any extra
// nationwide tokens. ok is false for an empty value set.
func dimension(field Field, values []string, match func(Field, string) Condition, extra ...string) (Node, bool) {
	if len(values) == 0 {
		return Node{}, false
	}
	alts := make([]Node, 0, len(values)+1+len(extra))
	for _, v := range values {
		alts = append(alts, Leaf(match(field, v)))
	}
	alts = append(alts, Leaf(EqualFold(field, scholarship.Wildcard)))
	for _, e := range extra {
		alts = append(alts, Leaf(EqualFold(field, e)))
	}
	return Or(alts...), true
}

// ageOverlap keeps records whose eligible age window intersects the requested one.
// A record without an upper age limit is open above its min_age.
func ageOverlap(r filters.Range) Node {
	var parts []Node
	if r.Min != nil {
		open := float64(scholarship.OpenMaxAge)
		parts = append(parts, Or(
			Leaf(Between(FieldMaxAge, Bounds{Gte: r.Min})),
			Leaf(Between(FieldMaxAge, Bounds{Gte: &open, Lte: &open})),
		))
	}
	if r.Max != nil {
		parts = append(parts, Leaf(Between(FieldMinAge, Bounds{Lte: r.Max})))
	}
	return And(parts...)
}

func keywords(words []string) Node {
	alts := make([]Node, 0, len(words)*3)
	for _, w := range words {
		alts = append(alts,
			Leaf(Contains(FieldName, w)),
			Leaf(Contains(FieldDescription, w)),
			Leaf(Contains(FieldType, w)),
		)
	}
	return Or(alts...)
}

func bounds(r filters.Range) Bounds {
	return Bounds{Gte: r.Min, Lte: r.Max}
}

func strs[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
