package scholarship

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/scholarsearch/internal/domain"
)

func validRecord() Scholarship {
	return Scholarship{
		Name:        "Post Matric Scholarship",
		Description: "Support for SC students in higher education",
		Amount:      50000,
		Location:    "Delhi",
		Type:        "Undergraduate",
		Religious:   "Any",
		Gender:      "Any",
		MinAge:      17,
		MaxAge:      30,
		Category:    "SC",
		IsActive:    true,
	}
}

func TestValidate_OK(t *testing.T) {
	s := validRecord()
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	neg := int64(-1)
	tests := []struct {
		name    string
		mutate  func(*Scholarship)
		wantMsg string
	}{
		{"missing name", func(s *Scholarship) { s.Name = "  " }, "name is required"},
		{"missing description", func(s *Scholarship) { s.Description = "" }, "description is required"},
		{"negative amount", func(s *Scholarship) { s.Amount = -5 }, "amount must be non-negative"},
		{"inverted ages", func(s *Scholarship) { s.MinAge, s.MaxAge = 30, 18 }, "exceeds max_age"},
		{"negative income", func(s *Scholarship) { s.Income = &neg }, "income must be non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validRecord()
			tt.mutate(&s)
			err := s.Validate()
			if !errors.Is(err, domain.ErrInvalidScholarship) {
				t.Fatalf("expected ErrInvalidScholarship, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected %q in %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestNormalize_FillsWildcard(t *testing.T) {
	blank := "   "
	s := Scholarship{Name: " X ", Gender: "", Location: " Pune ", Institution: &blank}
	s.Normalize()

	if s.Name != "X" || s.Location != "Pune" {
		t.Errorf("expected trimmed values, got %q %q", s.Name, s.Location)
	}
	if s.Gender != Wildcard || s.Category != Wildcard || s.Religious != Wildcard || s.Type != Wildcard {
		t.Errorf("expected wildcard dimensions, got %+v", s)
	}
	if s.Institution != nil {
		t.Errorf("expected blank institution to become nil")
	}
}

func TestEmbeddingText(t *testing.T) {
	s := validRecord()
	text := s.EmbeddingText()
	for _, want := range []string{"Name: Post Matric Scholarship", "Category: SC", "Location: Delhi"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in embedding text:\n%s", want, text)
		}
	}
}
