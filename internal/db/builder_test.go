package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_ScholarshipIndex(t *testing.T) {
	idx, err := NewIndex("scholarsearch:idx").
		Prefix("scholarsearch:vec:").
		TagSeparated("category", ",").
		Tag("type").
		Text("name").
		Numeric("amount").
		VectorHNSW("vector", 768, DistanceCosine, 16, 200).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(idx.Fields) != 5 {
		t.Fatalf("fields count = %d, want 5", len(idx.Fields))
	}
	if c := idx.Fields[0]; c.Type != IndexFieldTag || c.TagSeparator != "," {
		t.Errorf("unexpected category field: %+v", c)
	}
	if a := idx.Fields[3]; a.Type != IndexFieldNumeric {
		t.Errorf("unexpected amount field: %+v", a)
	}
	v := idx.Fields[4]
	if v.Type != IndexFieldVector || v.VectorAlgo != VectorHNSW || v.VectorDim != 768 {
		t.Errorf("unexpected vector field: %+v", v)
	}
	if v.VectorM != 16 || v.VectorEFConstruct != 200 {
		t.Errorf("unexpected HNSW params: M=%d EF=%d", v.VectorM, v.VectorEFConstruct)
	}

	s := idx.String()
	for _, want := range []string{"FT.CREATE scholarsearch:idx ON HASH", "PREFIX scholarsearch:vec:", "amount NUMERIC", "vector VECTOR HNSW"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in %q", want, s)
		}
	}
}

func TestIndexBuilder_BuildReturnsCopy(t *testing.T) {
	b := NewIndex("idx").Tag("a")
	first, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.Tag("b")
	if len(first.Fields) != 1 {
		t.Errorf("built definition changed after builder reuse: %+v", first.Fields)
	}
}

func TestIndexDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		b       *IndexBuilder
		wantErr string
	}{
		{"empty name", NewIndex("").Tag("a"), "index name is required"},
		{"bad name", NewIndex("bad name").Tag("a"), "invalid characters"},
		{"no fields", NewIndex("idx"), "at least one field"},
		{"duplicate", NewIndex("idx").Tag("a").Numeric("a"), "duplicate field name: a"},
		{"zero dim", NewIndex("idx").VectorHNSW("v", 0, DistanceCosine, 16, 200), "positive DIM"},
		{"two vectors", NewIndex("idx").VectorHNSW("v1", 3, DistanceCosine, 16, 200).VectorHNSW("v2", 3, DistanceL2, 16, 200), "at most one vector"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.Build()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestIsValidIdentifier(t *testing.T) {
	for s, want := range map[string]bool{
		"scholarsearch:idx": true,
		"a-b_c":             true,
		"":                  false,
		"a b":               false,
		"a*":                false,
	} {
		if got := IsValidIdentifier(s); got != want {
			t.Errorf("IsValidIdentifier(%q) = %v, want %v", s, got, want)
		}
	}
}
