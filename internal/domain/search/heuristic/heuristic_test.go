package heuristic

import (
	"slices"
	"testing"

	"github.com/kailas-cloud/scholarsearch/internal/domain/search/filters"
)

func TestExtract_ScenarioSCFemaleDelhi(t *testing.T) {
	f := Extract("SC female Delhi")

	if !slices.Equal(f.Category, []filters.Category{filters.CategorySC}) {
		t.Errorf("category: got %v", f.Category)
	}
	if !slices.Equal(f.Gender, []filters.Gender{filters.GenderFemale}) {
		t.Errorf("gender: got %v", f.Gender)
	}
	if !slices.Equal(f.Location, []string{"Delhi"}) {
		t.Errorf("location: got %v", f.Location)
	}
	if len(f.Keywords) != 0 {
		t.Errorf("expected no keywords, got %v", f.Keywords)
	}
}

func TestExtract_CategoryPriority(t *testing.T) {
	tests := []struct {
		query string
		want  filters.Category
	}{
		{"SC/ST hostel grant", filters.CategoryST},
		{"scheduled caste students", filters.CategorySC},
		{"tribal girls", filters.CategoryST},
		{"OBC or general", filters.CategoryOBC},
		{"open category merit", filters.CategoryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			f := Extract(tt.query)
			if len(f.Category) != 1 || f.Category[0] != tt.want {
				t.Errorf("got %v, want [%s]", f.Category, tt.want)
			}
		})
	}
}

func TestExtract_NoSubstringFalsePositives(t *testing.T) {
	// "student" contains "st", "women" contains "men", "general" is not "gen".
	f := Extract("student from womens college in generalganj")
	if len(f.Category) != 0 {
		t.Errorf("expected no category, got %v", f.Category)
	}
	if len(f.Gender) != 0 {
		t.Errorf("expected no gender, got %v", f.Gender)
	}
}

func TestExtract_GazetteerFirstMatch(t *testing.T) {
	if f := Extract("girls in New Delhi"); !slices.Equal(f.Location, []string{"New Delhi", "Delhi"}) {
		t.Errorf("expected New Delhi widened to Delhi, got %v", f.Location)
	}
	if f := Extract("navi mumbai engineering"); !slices.Equal(f.Location, []string{"Navi Mumbai", "Mumbai"}) {
		t.Errorf("expected Navi Mumbai widened to Mumbai, got %v", f.Location)
	}
	if f := Extract("bangalore or pune"); !slices.Equal(f.Location, []string{"Bengaluru"}) {
		t.Errorf("expected first gazetteer entry to win, got %v", f.Location)
	}
}

func TestExtract_Flags(t *testing.T) {
	f := Extract("SC student in Delhi, female, disability")
	if f.Disability != filters.True {
		t.Errorf("expected disability=true, got %v", f.Disability)
	}
	if f.ExService.Known() {
		t.Errorf("expected ex_service unknown, got %v", f.ExService)
	}

	f = Extract("children of ex-servicemen")
	if f.ExService != filters.True {
		t.Errorf("expected ex_service=true, got %v", f.ExService)
	}
	if f.Disability.Known() {
		t.Error("flags must stay unknown without an exact keyword")
	}
}

func TestExtract_ReligionGenderTypes(t *testing.T) {
	f := Extract("Muslim and Sikh girls pursuing engineering or MBBS")

	if !slices.Equal(f.Religious, []filters.Religion{filters.ReligionMuslim, filters.ReligionSikh}) {
		t.Errorf("religious: got %v", f.Religious)
	}
	if !slices.Equal(f.Gender, []filters.Gender{filters.GenderFemale}) {
		t.Errorf("gender: got %v", f.Gender)
	}
	if !slices.Equal(f.Type, []string{"Engineering", "Medical"}) {
		t.Errorf("type: got %v", f.Type)
	}
}

func TestExtract_Keywords(t *testing.T) {
	f := Extract("Scholarship for Robotics and robotics AI in 2026")
	if want := []string{"robotics", "ai"}; !slices.Equal(f.Keywords, want) {
		t.Errorf("expected %v, got %v", want, f.Keywords)
	}
}

func TestExtract_Total(t *testing.T) {
	for _, q := range []string{"", "   ", "!!!", "\x00\xff", "日本語のクエリ"} {
		f := Extract(q)
		if f.Category == nil || f.Location == nil || f.Keywords == nil {
			t.Errorf("%q: sets must be non-nil", q)
		}
	}
}
