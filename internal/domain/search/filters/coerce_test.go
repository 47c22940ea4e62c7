package filters

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/kailas-cloud/scholarsearch/internal/domain"
)

func TestCoerce_FullPayload(t *testing.T) {
	payload := `{
		"category": ["sc", "st"],
		"location": "new delhi",
		"type": ["engineering"],
		"institution_name": null,
		"gender": "female",
		"religion": ["HINDU"],
		"amount": {"min": 10000, "max": null},
		"income": {"max": "250000"},
		"age": null,
		"disability": true,
		"exService": false,
		"keywords": ["Robotics", " AI ", "robotics"],
		"confidence": 0.9
	}`

	f, err := Coerce([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(f.Category, []Category{CategorySC, CategoryST}) {
		t.Errorf("category: %v", f.Category)
	}
	if !slices.Equal(f.Location, []string{"New Delhi"}) {
		t.Errorf("location should be promoted and Title-cased: %v", f.Location)
	}
	if !slices.Equal(f.Type, []string{"Engineering"}) {
		t.Errorf("type: %v", f.Type)
	}
	if f.Institution == nil || len(f.Institution) != 0 {
		t.Errorf("institution should be an empty set, got %#v", f.Institution)
	}
	if !slices.Equal(f.Gender, []Gender{GenderFemale}) || !slices.Equal(f.Religious, []Religion{ReligionHindu}) {
		t.Errorf("gender/religious: %v %v", f.Gender, f.Religious)
	}
	if f.Amount.Min == nil || *f.Amount.Min != 10000 || f.Amount.Max != nil {
		t.Errorf("amount: %+v", f.Amount)
	}
	if f.Income.Min != nil || f.Income.Max == nil || *f.Income.Max != 250000 {
		t.Errorf("income: %+v", f.Income)
	}
	if f.Age.IsSet() {
		t.Errorf("age should be unset: %+v", f.Age)
	}
	if f.Disability != True || f.ExService != False {
		t.Errorf("flags: %v %v", f.Disability, f.ExService)
	}
	if !slices.Equal(f.Keywords, []string{"robotics", "ai"}) {
		t.Errorf("keywords: %v", f.Keywords)
	}
}

func TestCoerce_EmptyObject(t *testing.T) {
	f, err := Coerce([]byte(`{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.IsEmpty() || f.Category == nil || f.Keywords == nil {
		t.Errorf("expected empty filters with non-nil sets, got %+v", f)
	}
}

func TestCoerce_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{"invalid json", `{"category": [`, ""},
		{"not an object", `["sc"]`, ""},
		{"null payload", `null`, "not an object"},
		{"trailing data", `{} {}`, "trailing data"},
		{"unknown category", `{"category": "minority"}`, `unknown value "minority"`},
		{"unknown gender", `{"gender": ["other"]}`, "unknown value"},
		{"number where set expected", `{"location": 42}`, "expected string or array"},
		{"non-string element", `{"type": ["law", 3]}`, "element 1 is not a string"},
		{"bool as string", `{"disability": "yes"}`, "expected boolean"},
		{"range scalar", `{"amount": 5000}`, "expected object"},
		{"range bound text", `{"age": {"min": "young"}}`, "not a number"},
		{"inverted range", `{"age": {"min": 30, "max": 18}}`, "exceeds max"},
		{"negative bound", `{"income": {"max": -1}}`, "negative"},
		{"duplicate alias", `{"religion": "sikh", "religious": "hindu"}`, "more than once"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Coerce([]byte(tt.payload))
			if !errors.Is(err, domain.ErrExtractionMalformed) {
				t.Fatalf("expected ErrExtractionMalformed, got %v", err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected %q in %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestCoerce_TooManyValues(t *testing.T) {
	vals := make([]string, MaxValuesPerField+1)
	for i := range vals {
		vals[i] = `"x"`
	}
	_, err := Coerce([]byte(`{"location": [` + strings.Join(vals, ",") + `]}`))
	if !errors.Is(err, domain.ErrExtractionMalformed) {
		t.Fatalf("expected malformed, got %v", err)
	}
}

func TestCoerce_KeywordCap(t *testing.T) {
	vals := make([]string, MaxKeywords+5)
	for i := range vals {
		vals[i] = `"k` + string(rune('a'+i)) + `"`
	}
	f, err := Coerce([]byte(`{"keywords": [` + strings.Join(vals, ",") + `]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.Keywords) != MaxKeywords {
		t.Errorf("expected %d keywords, got %d", MaxKeywords, len(f.Keywords))
	}
}
