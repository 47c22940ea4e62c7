package result

import (
	"testing"

	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/resolution"
)

func TestNew_NilItemsBecomeEmpty(t *testing.T) {
	r := Empty(nil)
	if r.Items() == nil || r.Len() != 0 {
		t.Fatalf("expected empty non-nil items, got %v", r.Items())
	}
	if r.Resolution() != nil {
		t.Error("expected nil resolution")
	}
}

func TestNew_CarriesMetadata(t *testing.T) {
	res := &resolution.Resolution{Source: resolution.SourceHeuristic, Reason: resolution.ReasonTimeout}
	r := New([]scholarship.Scholarship{{ID: 1}, {ID: 2}}, res, 7)

	if r.Len() != 2 || r.Candidates() != 7 {
		t.Errorf("unexpected result: len=%d candidates=%d", r.Len(), r.Candidates())
	}
	if !r.Resolution().IsFallback() {
		t.Error("timeout resolution must be a fallback")
	}
}
