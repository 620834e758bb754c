package selector

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"

	"github.com/Marian1309/go-select-utils/schema"
)

// fakeExec records every query and serves canned results, standing in for a
// database connector.
type fakeExec struct {
	queries  []string
	args     [][]any
	rows     []map[string]any
	queryErr error
	getFn    func(dest any) error
}

func (f *fakeExec) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.rows, nil
}

func (f *fakeExec) Get(ctx context.Context, dest any, query string, args ...any) error {
	f.queries = append(f.queries, query)
	f.args = append(f.args, args)
	if f.getFn != nil {
		return f.getFn(dest)
	}
	return nil
}

func users() *schema.Table {
	return &schema.Table{
		Name: "users",
		Columns: []schema.Column{
			{Name: "id", Type: "bigint"},
			{Name: "name", Type: "text"},
			{Name: "email", Type: "text"},
		},
	}
}

func TestFieldsDefaults(t *testing.T) {
	db := &fakeExec{rows: []map[string]any{{"id": int64(1), "email": "a@b.c"}}}
	s := New(db)

	rows, err := s.Fields(context.Background(), users(), []string{"id", "email"}, nil)
	if err != nil {
		t.Fatalf("Fields() = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %v, want 1 row", rows)
	}

	want := "SELECT id, email FROM users LIMIT 25 OFFSET 0"
	if db.queries[0] != want {
		t.Errorf("query = %q, want %q", db.queries[0], want)
	}
}

func TestFieldsValidationFailsBeforeExecution(t *testing.T) {
	db := &fakeExec{}
	s := New(db)

	_, err := s.Fields(context.Background(), users(), []string{"id", "password"}, nil)

	var invErr *schema.InvalidFieldError
	if !errors.As(err, &invErr) {
		t.Fatalf("Fields() = %v, want InvalidFieldError", err)
	}
	if len(db.queries) != 0 {
		t.Errorf("query executed despite validation failure: %v", db.queries)
	}
}

func TestFieldsEmptyListRunsAndReturnsEmptyRecords(t *testing.T) {
	db := &fakeExec{rows: []map[string]any{{"1": int64(1)}, {"1": int64(1)}}}
	s := New(db)

	rows, err := s.Fields(context.Background(), users(), []string{}, nil)
	if err != nil {
		t.Fatalf("Fields() = %v", err)
	}

	want := "SELECT 1 FROM users LIMIT 25 OFFSET 0"
	if db.queries[0] != want {
		t.Errorf("query = %q, want %q", db.queries[0], want)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %v, want 2 records", rows)
	}
	for i, row := range rows {
		if len(row) != 0 {
			t.Errorf("rows[%d] = %v, want empty record", i, row)
		}
	}
}

func TestWithoutDefaults(t *testing.T) {
	db := &fakeExec{}
	s := New(db)

	_, err := s.Without(context.Background(), users(), []string{"email"}, nil)
	if err != nil {
		t.Fatalf("Without() = %v", err)
	}

	want := "SELECT id, name FROM users LIMIT 10 OFFSET 0"
	if db.queries[0] != want {
		t.Errorf("query = %q, want %q", db.queries[0], want)
	}
}

func TestAllSelectsEveryColumn(t *testing.T) {
	db := &fakeExec{}
	s := New(db)

	_, err := s.All(context.Background(), users(), nil)
	if err != nil {
		t.Fatalf("All() = %v", err)
	}

	want := "SELECT id, name, email FROM users LIMIT 25 OFFSET 0"
	if db.queries[0] != want {
		t.Errorf("query = %q, want %q", db.queries[0], want)
	}
}

func TestClausesApplyInOrder(t *testing.T) {
	db := &fakeExec{}
	s := New(db)

	opts := &Options{
		Where:   Where(sq.Eq{"active": true}),
		GroupBy: []string{"name"},
		OrderBy: []string{"name ASC", "id DESC"},
	}
	_, err := s.Fields(context.Background(), users(), []string{"id", "email"}, opts)
	if err != nil {
		t.Fatalf("Fields() = %v", err)
	}

	want := "SELECT id, email FROM users WHERE active = ? GROUP BY name ORDER BY name ASC, id DESC LIMIT 25 OFFSET 0"
	if db.queries[0] != want {
		t.Errorf("query = %q, want %q", db.queries[0], want)
	}
	if !reflect.DeepEqual(db.args[0], []any{true}) {
		t.Errorf("args = %v, want [true]", db.args[0])
	}
}

func TestFilterNormalization(t *testing.T) {
	cond := sq.Eq{"email": "a@b.c"}

	run := func(where []sq.Sqlizer) string {
		db := &fakeExec{}
		s := New(db)
		if _, err := s.Fields(context.Background(), users(), []string{"id"}, &Options{Where: where}); err != nil {
			t.Fatalf("Fields() = %v", err)
		}
		return db.queries[0]
	}

	single := run(Where(cond))
	asList := run([]sq.Sqlizer{cond})
	withNils := run([]sq.Sqlizer{nil, cond, nil})

	if single != asList {
		t.Errorf("single condition %q != one-element list %q", single, asList)
	}
	if single != withNils {
		t.Errorf("nil entries changed the filter: %q != %q", single, withNils)
	}
}

func TestFilterAllNilMeansNoFilter(t *testing.T) {
	db := &fakeExec{}
	s := New(db)

	_, err := s.Fields(context.Background(), users(), []string{"id"}, &Options{Where: []sq.Sqlizer{nil, nil}})
	if err != nil {
		t.Fatalf("Fields() = %v", err)
	}
	if strings.Contains(db.queries[0], "WHERE") {
		t.Errorf("query %q has a WHERE clause, want none", db.queries[0])
	}
}

func TestMultipleConditionsCombineWithAnd(t *testing.T) {
	db := &fakeExec{}
	s := New(db)

	opts := &Options{Where: Where(sq.Eq{"active": true}, sq.Gt{"id": 10})}
	_, err := s.Fields(context.Background(), users(), []string{"id"}, opts)
	if err != nil {
		t.Fatalf("Fields() = %v", err)
	}

	q := db.queries[0]
	if !strings.Contains(q, "active = ? AND id > ?") {
		t.Errorf("query %q does not AND the conditions", q)
	}
}

func TestPaginationFallbackPerPiece(t *testing.T) {
	tests := []struct {
		name string
		page *Page
		want string
	}{
		{"limit only", &Page{Limit: Int(5)}, "LIMIT 5 OFFSET 0"},
		{"offset only", &Page{Offset: Int(30)}, "LIMIT 25 OFFSET 30"},
		{"both", &Page{Limit: Int(5), Offset: Int(30)}, "LIMIT 5 OFFSET 30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeExec{}
			s := New(db)

			_, err := s.Fields(context.Background(), users(), []string{"id"}, &Options{Page: tt.page})
			if err != nil {
				t.Fatalf("Fields() = %v", err)
			}
			if !strings.HasSuffix(db.queries[0], tt.want) {
				t.Errorf("query = %q, want suffix %q", db.queries[0], tt.want)
			}
		})
	}
}

func TestOneReturnsFirstRow(t *testing.T) {
	db := &fakeExec{rows: []map[string]any{{"id": int64(1), "name": "ann", "email": "a@b.c"}}}
	s := New(db)

	row, err := s.One(context.Background(), users(), nil)
	if err != nil {
		t.Fatalf("One() = %v", err)
	}
	if row["name"] != "ann" {
		t.Errorf("row = %v", row)
	}

	want := "SELECT id, name, email FROM users LIMIT 1 OFFSET 0"
	if db.queries[0] != want {
		t.Errorf("query = %q, want %q", db.queries[0], want)
	}
}

func TestOneNotFoundIsNilNotError(t *testing.T) {
	db := &fakeExec{}
	s := New(db)

	row, err := s.One(context.Background(), users(), nil)
	if err != nil {
		t.Fatalf("One() = %v, want nil error on zero matches", err)
	}
	if row != nil {
		t.Errorf("row = %v, want nil", row)
	}
}

func TestOneForcesLimitHonorsOffset(t *testing.T) {
	db := &fakeExec{}
	s := New(db)

	opts := &Options{Page: &Page{Limit: Int(100), Offset: Int(4)}}
	if _, err := s.One(context.Background(), users(), opts); err != nil {
		t.Fatalf("One() = %v", err)
	}

	if !strings.HasSuffix(db.queries[0], "LIMIT 1 OFFSET 4") {
		t.Errorf("query = %q, want forced LIMIT 1 with OFFSET 4", db.queries[0])
	}
}

func TestCountIgnoresPagination(t *testing.T) {
	db := &fakeExec{getFn: func(dest any) error {
		*dest.(*sql.NullInt64) = sql.NullInt64{Int64: 7, Valid: true}
		return nil
	}}
	s := New(db)

	opts := &Options{Page: &Page{Limit: Int(1), Offset: Int(99)}}
	n, err := s.Count(context.Background(), users(), opts)
	if err != nil {
		t.Fatalf("Count() = %v", err)
	}
	if n != 7 {
		t.Errorf("Count() = %d, want 7", n)
	}

	want := "SELECT COUNT(*) FROM users"
	if db.queries[0] != want {
		t.Errorf("query = %q, want %q", db.queries[0], want)
	}
}

func TestCountNullAggregateIsZero(t *testing.T) {
	db := &fakeExec{} // Get leaves the NullInt64 invalid
	s := New(db)

	n, err := s.Count(context.Background(), users(), nil)
	if err != nil {
		t.Fatalf("Count() = %v", err)
	}
	if n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}
}

func TestCountAppliesFilter(t *testing.T) {
	db := &fakeExec{}
	s := New(db)

	_, err := s.Count(context.Background(), users(), &Options{Where: Where(sq.Eq{"active": true})})
	if err != nil {
		t.Fatalf("Count() = %v", err)
	}

	want := "SELECT COUNT(*) FROM users WHERE active = ?"
	if db.queries[0] != want {
		t.Errorf("query = %q, want %q", db.queries[0], want)
	}
}

func TestExistsRequiresCondition(t *testing.T) {
	tests := []struct {
		name string
		opts *Options
	}{
		{"nil options", nil},
		{"empty where", &Options{}},
		{"only nil conditions", &Options{Where: []sq.Sqlizer{nil, nil}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &fakeExec{}
			s := New(db)

			_, err := s.Exists(context.Background(), users(), tt.opts)
			if !errors.Is(err, ErrMissingCondition) {
				t.Errorf("Exists() = %v, want ErrMissingCondition", err)
			}
			if len(db.queries) != 0 {
				t.Errorf("query executed despite missing condition: %v", db.queries)
			}
		})
	}
}

func TestExists(t *testing.T) {
	db := &fakeExec{rows: []map[string]any{{"1": int64(1)}}}
	s := New(db)

	ok, err := s.Exists(context.Background(), users(), &Options{Where: Where(sq.Eq{"email": "a@b.c"})})
	if err != nil {
		t.Fatalf("Exists() = %v", err)
	}
	if !ok {
		t.Error("Exists() = false, want true")
	}

	want := "SELECT 1 FROM users WHERE email = ? LIMIT 1"
	if db.queries[0] != want {
		t.Errorf("query = %q, want %q", db.queries[0], want)
	}

	db.rows = nil
	ok, err = s.Exists(context.Background(), users(), &Options{Where: Where(sq.Eq{"email": "x@y.z"})})
	if err != nil {
		t.Fatalf("Exists() = %v", err)
	}
	if ok {
		t.Error("Exists() = true, want false on zero rows")
	}
}

func TestPluckReturnsAlignedValues(t *testing.T) {
	db := &fakeExec{rows: []map[string]any{
		{"email": "a@b.c"},
		{"email": "d@e.f"},
		{"email": "g@h.i"},
	}}
	s := New(db)

	values, err := s.Pluck(context.Background(), users(), "email", nil)
	if err != nil {
		t.Fatalf("Pluck() = %v", err)
	}

	want := []any{"a@b.c", "d@e.f", "g@h.i"}
	if !reflect.DeepEqual(values, want) {
		t.Errorf("Pluck() = %v, want %v", values, want)
	}

	wantQuery := "SELECT email FROM users LIMIT 25 OFFSET 0"
	if db.queries[0] != wantQuery {
		t.Errorf("query = %q, want %q", db.queries[0], wantQuery)
	}
}

func TestPluckValidatesField(t *testing.T) {
	db := &fakeExec{}
	s := New(db)

	_, err := s.Pluck(context.Background(), users(), "password", nil)

	var invErr *schema.InvalidFieldError
	if !errors.As(err, &invErr) {
		t.Fatalf("Pluck() = %v, want InvalidFieldError", err)
	}
}

func TestRawPassesThrough(t *testing.T) {
	db := &fakeExec{rows: []map[string]any{{"n": int64(2)}}}
	s := New(db)

	rows, err := s.Raw(context.Background(), sq.Expr("SELECT COUNT(*) AS n FROM users WHERE id > ?", 9))
	if err != nil {
		t.Fatalf("Raw() = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %v", rows)
	}

	want := "SELECT COUNT(*) AS n FROM users WHERE id > ?"
	if db.queries[0] != want {
		t.Errorf("query = %q, want %q", db.queries[0], want)
	}
	if !reflect.DeepEqual(db.args[0], []any{9}) {
		t.Errorf("args = %v, want [9]", db.args[0])
	}
}

func TestExecutorErrorsPropagateUnwrapped(t *testing.T) {
	boom := errors.New("connection refused")
	db := &fakeExec{queryErr: boom}
	s := New(db)

	_, err := s.All(context.Background(), users(), nil)
	if !errors.Is(err, boom) {
		t.Errorf("All() = %v, want the executor error", err)
	}
}

func TestPlaceholderFormat(t *testing.T) {
	db := &fakeExec{}
	s := New(db, WithPlaceholderFormat(sq.Dollar))

	_, err := s.Fields(context.Background(), users(), []string{"id"}, &Options{Where: Where(sq.Eq{"email": "a@b.c"})})
	if err != nil {
		t.Fatalf("Fields() = %v", err)
	}
	if !strings.Contains(db.queries[0], "email = $1") {
		t.Errorf("query = %q, want $1 placeholder", db.queries[0])
	}
}

func TestRepeatedCallsAreIdentical(t *testing.T) {
	db := &fakeExec{rows: []map[string]any{{"id": int64(1)}}}
	s := New(db)

	opts := &Options{Where: Where(sq.Eq{"active": true}), OrderBy: []string{"id ASC"}}
	first, err := s.Fields(context.Background(), users(), []string{"id"}, opts)
	if err != nil {
		t.Fatalf("Fields() = %v", err)
	}
	second, err := s.Fields(context.Background(), users(), []string{"id"}, opts)
	if err != nil {
		t.Fatalf("Fields() = %v", err)
	}

	if db.queries[0] != db.queries[1] {
		t.Errorf("queries differ between calls: %q vs %q", db.queries[0], db.queries[1])
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ between calls")
	}
}
