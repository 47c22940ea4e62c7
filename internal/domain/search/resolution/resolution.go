// Package resolution describes how a raw query was turned into filters.
package resolution

import "github.com/kailas-cloud/scholarsearch/internal/domain/search/filters"

// Source names the extractor whose output was accepted.
type Source string

// Extraction sources.
const (
	SourceStructured Source = "structured"
	SourceHeuristic  Source = "heuristic"
)

// Reason explains why the source was chosen.
type Reason string

// Outcome reasons.
const (
	ReasonOK          Reason = "ok"
	ReasonDisabled    Reason = "disabled"
	ReasonUnavailable Reason = "unavailable"
	ReasonMalformed   Reason = "malformed"
	ReasonTimeout     Reason = "timeout"
	ReasonCanceled    Reason = "canceled"
)

// Resolution is the accepted filters plus their provenance.
type Resolution struct {
	Filters filters.Filters `json:"filters"`
	Source  Source          `json:"source"`
	Reason  Reason          `json:"reason"`
}

// IsFallback reports whether the heuristic result replaced a structured attempt.
func (r Resolution) IsFallback() bool {
	return r.Source == SourceHeuristic && r.Reason != ReasonDisabled
}
