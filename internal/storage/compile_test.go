package storage

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/scholarsearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/filters"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/predicate"
)

func TestCompile_ContainsEscapesLikeMetacharacters(t *testing.T) {
	p := predicate.New(predicate.Leaf(predicate.Contains(predicate.FieldName, `50%_OFF\`)))

	c := newCompiler(sqliteDialect)
	where, err := c.where(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantWhere := `(is_active = ? AND LOWER(name) LIKE ? ESCAPE '\')`
	if where != wantWhere {
		t.Errorf("where = %q, want %q", where, wantWhere)
	}
	wantArgs := []any{true, `%50\%\_off\\%`}
	if !reflect.DeepEqual(c.args, wantArgs) {
		t.Errorf("args = %#v, want %#v", c.args, wantArgs)
	}
}

func TestCompile_PostgresNumbersPlaceholders(t *testing.T) {
	f := filters.New()
	f.Category = []filters.Category{filters.CategorySC}
	f.Income = filters.Range{Max: filters.Bound(250000)}
	p := predicate.Build(f, candidate.Set{})

	c := newCompiler(postgresDialect)
	where, err := c.where(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `(is_active = $1 AND (LOWER(category) LIKE $2 ESCAPE '\' OR LOWER(category) = $3) AND income <= $4::float8)`
	if where != want {
		t.Errorf("where = %q, want %q", where, want)
	}
	wantArgs := []any{true, "%sc%", "any", float64(250000)}
	if !reflect.DeepEqual(c.args, wantArgs) {
		t.Errorf("args = %#v, want %#v", c.args, wantArgs)
	}
}

func TestCompile_ContainsWordPadsAndSpacesSeparators(t *testing.T) {
	p := predicate.New(predicate.Leaf(predicate.ContainsWord(predicate.FieldGender, "Female")))

	c := newCompiler(sqliteDialect)
	where, err := c.where(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expr := "LOWER(gender)"
	for _, r := range predicate.WordSeparators {
		expr = "REPLACE(" + expr + ", '" + string(r) + "', ' ')"
	}
	wantWhere := "(is_active = ? AND (' ' || " + expr + ` || ' ') LIKE ? ESCAPE '\')`
	if where != wantWhere {
		t.Errorf("where = %q, want %q", where, wantWhere)
	}
	wantArgs := []any{true, "% female %"}
	if !reflect.DeepEqual(c.args, wantArgs) {
		t.Errorf("args = %#v, want %#v", c.args, wantArgs)
	}
}

func TestCompile_EmptyGroupsAndRanges(t *testing.T) {
	tests := []struct {
		name string
		node predicate.Node
		want string
	}{
		{"empty and", predicate.And(), "(is_active = ? AND 1=1)"},
		{"empty or", predicate.Or(), "(is_active = ? AND 1=0)"},
		{"unbounded range", predicate.Leaf(predicate.Between(predicate.FieldAmount, predicate.Bounds{})), "(is_active = ? AND 1=1)"},
		{"empty id set", predicate.Leaf(predicate.In(predicate.FieldID, nil)), "(is_active = ? AND 1=0)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCompiler(sqliteDialect)
			got, err := c.where(predicate.New(tt.node))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("where = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompile_InBindsEveryID(t *testing.T) {
	p := predicate.New(predicate.Leaf(predicate.In(predicate.FieldID, []int64{7, 3})))

	c := newCompiler(sqliteDialect)
	where, err := c.where(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if where != "(is_active = ? AND id IN (?, ?))" {
		t.Errorf("where = %q", where)
	}
	if !reflect.DeepEqual(c.args, []any{true, int64(7), int64(3)}) {
		t.Errorf("args = %#v", c.args)
	}
}

func TestCompile_UnknownFieldRejected(t *testing.T) {
	p := predicate.New(predicate.Leaf(predicate.Contains(predicate.Field("name; DROP TABLE x"), "a")))

	if _, err := newCompiler(sqliteDialect).where(p); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if _, err := orderBy(predicate.Order{{Field: "nope"}}); err == nil {
		t.Fatal("expected error for unknown order field")
	}
}

func TestOrderBy_Default(t *testing.T) {
	got, err := orderBy(predicate.DefaultOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "ORDER BY (deadline IS NULL) ASC, deadline ASC, (amount IS NULL) DESC, amount DESC, id ASC"
	if got != want {
		t.Errorf("orderBy = %q, want %q", got, want)
	}
}
