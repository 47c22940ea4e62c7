package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/scholarsearch/internal/domain"
	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/predicate"
)

const selectColumns = `id, name, description, amount, location, type, religious, gender,
	min_age, max_age, category, institution_name, deadline, income, disability, ex_service,
	is_active, created_at, updated_at`

// writeColumns are the columns set on insert, in bind order.
var writeColumns = []string{
	"name", "description", "amount", "location", "type", "religious", "gender",
	"min_age", "max_age", "category", "institution_name", "deadline", "income",
	"disability", "ex_service", "is_active", "created_at", "updated_at",
}

// FindByPredicate returns up to limit rows matching p, sorted by order.
// A non-positive limit returns every match.
func (s *Store) FindByPredicate(
	ctx context.Context, p predicate.Predicate, order predicate.Order, limit int,
) ([]scholarship.Scholarship, error) {
	c := newCompiler(s.dialect)
	where, err := c.where(p)
	if err != nil {
		return nil, err
	}
	ob, err := orderBy(order)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + selectColumns + " FROM scholarships WHERE " + where + " " + ob
	if limit > 0 {
		query += " LIMIT " + c.bind(limit)
	}

	rows, err := s.db.QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, fmt.Errorf("find scholarships: %w", err)
	}
	return scanAll(rows)
}

// ListActive returns every active row in the default order.
func (s *Store) ListActive(ctx context.Context) ([]scholarship.Scholarship, error) {
	return s.FindByPredicate(ctx, predicate.Active(), predicate.DefaultOrder(), 0)
}

// ListInactiveIDs returns the ids of rows that are no longer active, ascending.
func (s *Store) ListInactiveIDs(ctx context.Context) ([]int64, error) {
	query := "SELECT id FROM scholarships WHERE is_active = " + s.dialect.param(1) + " ORDER BY id"
	rows, err := s.db.QueryContext(ctx, query, false)
	if err != nil {
		return nil, fmt.Errorf("list inactive scholarships: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan inactive id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list inactive scholarships: %w", err)
	}
	return ids, nil
}

// CountActive returns the number of active rows.
func (s *Store) CountActive(ctx context.Context) (int, error) {
	var n int
	query := "SELECT COUNT(*) FROM scholarships WHERE is_active = " + s.dialect.param(1)
	if err := s.db.QueryRowContext(ctx, query, true).Scan(&n); err != nil {
		return 0, fmt.Errorf("count scholarships: %w", err)
	}
	return n, nil
}

// Get returns a single row by id, active or not.
func (s *Store) Get(ctx context.Context, id int64) (scholarship.Scholarship, error) {
	query := "SELECT " + selectColumns + " FROM scholarships WHERE id = " + s.dialect.param(1)
	sc, err := scan(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return scholarship.Scholarship{}, fmt.Errorf("scholarship %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return scholarship.Scholarship{}, fmt.Errorf("get scholarship %d: %w", id, err)
	}
	return sc, nil
}

// Upsert writes records in one transaction and returns their ids in input order.
// Records with a zero id are inserted; others replace the row with that id.
func (s *Store) Upsert(ctx context.Context, records []scholarship.Scholarship) ([]int64, error) {
	if len(records) == 0 {
		return nil, nil
	}
	for i := range records {
		records[i].Normalize()
		if err := records[i].Validate(); err != nil {
			return nil, fmt.Errorf("record %d (%q): %w", i, records[i].Name, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insert := s.insertQuery(false)
	upsert := s.insertQuery(true)
	now := time.Now().UTC()
	ids := make([]int64, len(records))
	explicit := false

	for i := range records {
		r := &records[i]
		args := writeArgs(r, now)
		query := insert
		if r.ID > 0 {
			explicit = true
			query = upsert
			args = append([]any{r.ID}, args...)
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&ids[i]); err != nil {
			return nil, fmt.Errorf("upsert %q: %w", r.Name, err)
		}
		r.ID = ids[i]
	}

	if explicit && s.dialect.afterExplicitIDs != "" {
		if _, err := tx.ExecContext(ctx, s.dialect.afterExplicitIDs); err != nil {
			return nil, fmt.Errorf("realign id sequence: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit upsert: %w", err)
	}
	return ids, nil
}

func (s *Store) insertQuery(withID bool) string {
	cols := writeColumns
	if withID {
		cols = append([]string{"id"}, writeColumns...)
	}
	ph := make([]string, len(cols))
	for i := range cols {
		ph[i] = s.dialect.param(i + 1)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO scholarships (%s) VALUES (%s)",
		strings.Join(cols, ", "), strings.Join(ph, ", "))
	if withID {
		b.WriteString(" ON CONFLICT (id) DO UPDATE SET ")
		first := true
		for _, c := range writeColumns {
			if c == "created_at" {
				continue
			}
			if !first {
				b.WriteString(", ")
			}
			first = false
			fmt.Fprintf(&b, "%s = excluded.%s", c, c)
		}
	}
	b.WriteString(" RETURNING id")
	return b.String()
}

func writeArgs(r *scholarship.Scholarship, now time.Time) []any {
	var deadline any
	if r.Deadline != nil {
		deadline = r.Deadline.UTC()
	}
	return []any{
		r.Name, r.Description, r.Amount, r.Location, r.Type, r.Religious, r.Gender,
		r.MinAge, r.MaxAge, r.Category, r.Institution, deadline, r.Income,
		r.Disability, r.ExService, r.IsActive, now, now,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scan(row rowScanner) (scholarship.Scholarship, error) {
	var (
		sc          scholarship.Scholarship
		institution sql.NullString
		deadline    sql.NullTime
		income      sql.NullInt64
		disability  sql.NullBool
		exService   sql.NullBool
	)
	err := row.Scan(
		&sc.ID, &sc.Name, &sc.Description, &sc.Amount, &sc.Location, &sc.Type,
		&sc.Religious, &sc.Gender, &sc.MinAge, &sc.MaxAge, &sc.Category,
		&institution, &deadline, &income, &disability, &exService,
		&sc.IsActive, &sc.CreatedAt, &sc.UpdatedAt,
	)
	if err != nil {
		return scholarship.Scholarship{}, err
	}
	if institution.Valid {
		sc.Institution = &institution.String
	}
	if deadline.Valid {
		t := deadline.Time.UTC()
		sc.Deadline = &t
	}
	if income.Valid {
		sc.Income = &income.Int64
	}
	if disability.Valid {
		sc.Disability = &disability.Bool
	}
	if exService.Valid {
		sc.ExService = &exService.Bool
	}
	sc.CreatedAt = sc.CreatedAt.UTC()
	sc.UpdatedAt = sc.UpdatedAt.UTC()
	return sc, nil
}

func scanAll(rows *sql.Rows) ([]scholarship.Scholarship, error) {
	defer func() { _ = rows.Close() }()

	var out []scholarship.Scholarship
	for rows.Next() {
		sc, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scholarship: %w", err)
		}
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scholarships: %w", err)
	}
	return out, nil
}
