// Package scholarship holds the searchable scholarship record.
package scholarship

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/scholarsearch/internal/domain"
)

// Wildcard is the stored value meaning "eligible regardless of this dimension".
const Wildcard = "Any"

// Nationwide location values. A record with one of them is open to every city.
const (
	LocationIndia    = "India"
	LocationAllIndia = "All India"
)

// OpenMaxAge is the stored max_age of a record with no upper age limit.
const OpenMaxAge = 0

// Scholarship is a single scholarship row as owned by the relational store.
// Nullable columns are pointers; nil means the column is NULL.
type Scholarship struct {
	ID          int64      `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Amount      int64      `json:"amount" yaml:"amount"`
	Location    string     `json:"location" yaml:"location"`
	Type        string     `json:"type" yaml:"type"`
	Religious   string     `json:"religious" yaml:"religious"`
	Gender      string     `json:"gender" yaml:"gender"`
	MinAge      int        `json:"min_age" yaml:"min_age"`
	MaxAge      int        `json:"max_age" yaml:"max_age"`
	Category    string     `json:"category" yaml:"category"`
	Institution *string    `json:"institution_name,omitempty" yaml:"institution_name"`
	Deadline    *time.Time `json:"deadline,omitempty" yaml:"deadline"`
	Income      *int64     `json:"income,omitempty" yaml:"income"`
	Disability  *bool      `json:"disability,omitempty" yaml:"disability"`
	ExService   *bool      `json:"ex_service,omitempty" yaml:"ex_service"`
	IsActive    bool       `json:"is_active" yaml:"is_active"`
	CreatedAt   time.Time  `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time  `json:"updated_at" yaml:"-"`
}

// Validate checks the record before it is written.
// Missing dimension values are set to the wildcard by Normalize, not rejected here.
func (s *Scholarship) Validate() error {
	var errs []error
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(s.Description) == "" {
		errs = append(errs, errors.New("description is required"))
	}
	if s.Amount < 0 {
		errs = append(errs, fmt.Errorf("amount must be non-negative, got %d", s.Amount))
	}
	if s.MinAge < 0 || s.MaxAge < 0 {
		errs = append(errs, errors.New("age bounds must be non-negative"))
	}
	if s.MaxAge != OpenMaxAge && s.MinAge > s.MaxAge {
		errs = append(errs, fmt.Errorf("min_age %d exceeds max_age %d", s.MinAge, s.MaxAge))
	}
	if s.Income != nil && *s.Income < 0 {
		errs = append(errs, fmt.Errorf("income must be non-negative, got %d", *s.Income))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidScholarship, errors.Join(errs...))
	}
	return nil
}

// Normalize trims text columns and fills empty dimension columns with the wildcard.
func (s *Scholarship) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)
	for _, f := range []*string{&s.Location, &s.Type, &s.Religious, &s.Gender, &s.Category} {
		*f = strings.TrimSpace(*f)
		if *f == "" {
			*f = Wildcard
		}
	}
	if s.Institution != nil {
		v := strings.TrimSpace(*s.Institution)
		if v == "" {
			s.Institution = nil
		} else {
			s.Institution = &v
		}
	}
}

// EmbeddingText renders the document text that is embedded into the vector index.
func (s *Scholarship) EmbeddingText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", s.Name)
	fmt.Fprintf(&b, "Description: %s\n", s.Description)
	fmt.Fprintf(&b, "Type: %s\n", s.Type)
	fmt.Fprintf(&b, "Category: %s\n", s.Category)
	fmt.Fprintf(&b, "Religious: %s\n", s.Religious)
	fmt.Fprintf(&b, "Gender: %s\n", s.Gender)
	fmt.Fprintf(&b, "Location: %s", s.Location)
	return b.String()
}

// Metadata returns the fields stored next to the vector.
func (s *Scholarship) Metadata() map[string]string {
	return map[string]string{
		"name":     s.Name,
		"category": s.Category,
		"type":     s.Type,
		"amount":   strconv.FormatInt(s.Amount, 10),
	}
}
