// Package filters defines the normalized parameters extracted from a raw search query.
package filters

import (
	"encoding/json"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is a reservation category in uppercase canonical form.
type Category string

// Known categories.
const (
	CategorySC      Category = "SC"
	CategoryST      Category = "ST"
	CategoryOBC     Category = "OBC"
	CategoryGeneral Category = "GENERAL"
)

// Gender is a canonical gender value.
type Gender string

// Known genders.
const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Religion is a canonical religion value.
type Religion string

// Known religions.
const (
	ReligionHindu     Religion = "Hindu"
	ReligionMuslim    Religion = "Muslim"
	ReligionChristian Religion = "Christian"
	ReligionSikh      Religion = "Sikh"
)

var (
	categories = []Category{CategorySC, CategoryST, CategoryOBC, CategoryGeneral}
	genders    = []Gender{GenderMale, GenderFemale}
	religions  = []Religion{ReligionHindu, ReligionMuslim, ReligionChristian, ReligionSikh}
)

// ParseCategory accepts any casing of a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	return c, slices.Contains(categories, c)
}

// ParseGender accepts any casing of a known gender.
func ParseGender(s string) (Gender, bool) {
	g := Gender(TitleCase(s))
	return g, slices.Contains(genders, g)
}

// ParseReligion accepts any casing of a known religion.
func ParseReligion(s string) (Religion, bool) {
	r := Religion(TitleCase(s))
	return r, slices.Contains(religions, r)
}

// TitleCase canonicalizes free text: trimmed, inner whitespace collapsed, Title Case.
func TitleCase(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	// Caser is stateful, one per call.
	return cases.Title(language.English).String(s)
}

// Range is a numeric interval; a nil bound is open on that side.
type Range struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// IsSet reports whether at least one bound is present.
func (r Range) IsSet() bool { return r.Min != nil || r.Max != nil }

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// Bound returns a pointer to v, for building ranges inline.
func Bound(v float64) *float64 { return &v }

// TriState is a boolean that can also be unknown.
type TriState int8

// TriState values. The zero value is Unknown.
const (
	Unknown TriState = iota
	True
	False
)

// TriOf converts a known boolean.
func TriOf(b bool) TriState {
	if b {
		return True
	}
	return False
}

// Known reports whether the value is true or false.
func (t TriState) Known() bool { return t == True || t == False }

// Bool returns the boolean value; only meaningful when Known.
func (t TriState) Bool() bool { return t == True }

// MarshalJSON encodes Unknown as null.
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case True:
		return []byte("true"), nil
	case False:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// Filters is the normalized, strongly typed result of extraction.
// Set-valued fields are never nil once built through New; an empty set means
// "no constraint on this dimension".
type Filters struct {
	Category    []Category `json:"category"`
	Location    []string   `json:"location"`
	Type        []string   `json:"type"`
	Institution []string   `json:"institution"`
	Gender      []Gender   `json:"gender"`
	Religious   []Religion `json:"religious"`
	Amount      Range      `json:"amount"`
	Income      Range      `json:"income"`
	Age         Range      `json:"age"`
	Disability  TriState   `json:"disability"`
	ExService   TriState   `json:"ex_service"`
	Keywords    []string   `json:"keywords"`
}

// New returns filters with every set initialized to empty.
func New() Filters {
	return Filters{
		Category:    []Category{},
		Location:    []string{},
		Type:        []string{},
		Institution: []string{},
		Gender:      []Gender{},
		Religious:   []Religion{},
		Keywords:    []string{},
	}
}

// IsEmpty reports whether no dimension carries a constraint.
func (f Filters) IsEmpty() bool {
	return len(f.Category) == 0 && len(f.Location) == 0 && len(f.Type) == 0 &&
		len(f.Institution) == 0 && len(f.Gender) == 0 && len(f.Religious) == 0 &&
		!f.Amount.IsSet() && !f.Income.IsSet() && !f.Age.IsSet() &&
		!f.Disability.Known() && !f.ExService.Known() && len(f.Keywords) == 0
}

// String renders the filters as compact JSON for logs.
func (f Filters) String() string {
	b, err := json.Marshal(f)
	if err != nil {
		return "<filters>"
	}
	return string(b)
}

// AppendUnique appends v unless an equal value (case-insensitively) is already present.
func AppendUnique[T ~string](set []T, v T) []T {
	for _, x := range set {
		if strings.EqualFold(string(x), string(v)) {
			return set
		}
	}
	return append(set, v)
}
