// Package heuristic extracts search filters from free text with fixed lexicons.
// It makes no external calls and never fails.
package heuristic

import (
	"strings"
	"unicode"

	"github.com/kailas-cloud/scholarsearch/internal/domain/search/filters"
)

// Extractor is the lexicon-driven extractor.
type Extractor struct{}

// New creates a heuristic extractor.
func New() *Extractor { return &Extractor{} }

// Extract returns the filters for text. Total: any input yields a valid value.
func (*Extractor) Extract(text string) filters.Filters {
	return Extract(text)
}

// Extract applies the lexicon tables to text.
func Extract(text string) filters.Filters {
	t := tokenize(text)
	f := filters.New()

	if c, ok := firstMatch(t, categoryRules); ok {
		f.Category = append(f.Category, c)
	}
	if city, ok := firstMatch(t, gazetteer); ok {
		f.Location = append(f.Location, city)
		if wider, ok := enclosingCity[city]; ok {
			f.Location = append(f.Location, wider)
		}
	}
	for _, g := range allMatches(t, genderRules) {
		f.Gender = filters.AppendUnique(f.Gender, g)
	}
	for _, r := range allMatches(t, religionRules) {
		f.Religious = filters.AppendUnique(f.Religious, r)
	}
	for _, ty := range allMatches(t, typeRules) {
		f.Type = filters.AppendUnique(f.Type, ty)
	}
	if t.findAny(disabilityPhrases) {
		f.Disability = filters.True
	}
	if t.findAny(exServicePhrases) {
		f.ExService = filters.True
	}

	f.Keywords = t.leftovers(filters.MaxKeywords)
	return f
}

// firstMatch scans every rule so all lexicon tokens are consumed,
// but only the first matching rule's value is kept.
func firstMatch[T any](t *tokens, table []rule[T]) (T, bool) {
	var (
		winner T
		found  bool
	)
	for _, r := range table {
		if t.findAny(r.phrases) && !found {
			winner, found = r.value, true
		}
	}
	return winner, found
}

func allMatches[T any](t *tokens, table []rule[T]) []T {
	var out []T
	for _, r := range table {
		if t.findAny(r.phrases) {
			out = append(out, r.value)
		}
	}
	return out
}

// tokens is the lowercased word sequence of a query, with a mark
// for every position consumed by a lexicon phrase.
type tokens struct {
	words []string
	used  []bool
}

func tokenize(s string) *tokens {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return &tokens{words: words, used: make([]bool, len(words))}
}

// findAny marks every occurrence of every phrase and reports whether any was found.
func (t *tokens) findAny(phrases []string) bool {
	found := false
	for _, p := range phrases {
		if t.find(strings.Fields(p)) {
			found = true
		}
	}
	return found
}

func (t *tokens) find(phrase []string) bool {
	if len(phrase) == 0 {
		return false
	}
	found := false
	for i := 0; i+len(phrase) <= len(t.words); i++ {
		if !t.matchAt(i, phrase) {
			continue
		}
		for j := range phrase {
			t.used[i+j] = true
		}
		found = true
	}
	return found
}

func (t *tokens) matchAt(i int, phrase []string) bool {
	for j, w := range phrase {
		if t.words[i+j] != w {
			return false
		}
	}
	return true
}

// leftovers returns unconsumed, non-stopword tokens in query order, deduplicated.
func (t *tokens) leftovers(limit int) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for i, w := range t.words {
		if len(out) == limit {
			break
		}
		if t.used[i] || len(w) < 2 || isNumber(w) {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func isNumber(w string) bool {
	for _, r := range w {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
