// Package selector implements column-subset convenience queries on top of
// squirrel select builders: pick a set of fields, pick everything but a set
// of fields, fetch one row, count, probe existence, pluck a single column,
// or run a raw expression. Field lists are validated against the table's
// schema before any SQL is built.
package selector

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/Marian1309/go-select-utils/schema"
)

// Default pagination applied when the caller supplies none. Exclusion
// queries surface more columns per row, so they page smaller.
const (
	DefaultLimit        = 25
	DefaultWithoutLimit = 10
	DefaultOffset       = 0
)

// ErrMissingCondition is returned by Exists when no usable filter condition
// was supplied.
var ErrMissingCondition = errors.New("selector: exists requires at least one filter condition")

// Executor is the narrow execution contract the selector needs: run a bound
// query returning rows, or scan a single scalar. databases.Connector
// satisfies it.
type Executor interface {
	Query(ctx context.Context, query string, args ...any) ([]map[string]any, error)
	Get(ctx context.Context, dest any, query string, args ...any) error
}

// Selector builds and executes select queries against a single Executor.
// It holds no per-call state; methods may be called concurrently.
type Selector struct {
	db     Executor
	format sq.PlaceholderFormat
}

type Option func(*Selector)

// WithPlaceholderFormat sets the bind-parameter style, e.g. squirrel.Dollar
// for Postgres. The default is squirrel.Question.
func WithPlaceholderFormat(f sq.PlaceholderFormat) Option {
	return func(s *Selector) {
		s.format = f
	}
}

func New(db Executor, opts ...Option) *Selector {
	s := &Selector{
		db:     db,
		format: sq.Question,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fields returns rows containing only the named columns. The field list is
// validated; an empty list yields rows with no columns.
func (s *Selector) Fields(ctx context.Context, t *schema.Table, fields []string, opts *Options) ([]map[string]any, error) {
	proj, err := t.Select(fields)
	if err != nil {
		return nil, err
	}
	return s.runSelect(ctx, t.Name, proj.Names(), opts.orEmpty(), DefaultLimit, DefaultOffset)
}

// Without returns rows containing every column except the named ones. The
// exclusion list is validated against the same rules as Fields.
func (s *Selector) Without(ctx context.Context, t *schema.Table, fields []string, opts *Options) ([]map[string]any, error) {
	proj, err := t.Without(fields)
	if err != nil {
		return nil, err
	}
	return s.runSelect(ctx, t.Name, proj.Names(), opts.orEmpty(), DefaultWithoutLimit, DefaultOffset)
}

// All returns rows with every selectable column.
func (s *Selector) All(ctx context.Context, t *schema.Table, opts *Options) ([]map[string]any, error) {
	return s.runSelect(ctx, t.Name, t.ColumnNames(), opts.orEmpty(), DefaultLimit, DefaultOffset)
}

// One returns the first matching row, or nil when nothing matches. Zero
// matches is not an error. The limit is forced to 1; a supplied offset is
// honored.
func (s *Selector) One(ctx context.Context, t *schema.Table, opts *Options) (map[string]any, error) {
	o := opts.orEmpty()
	_, offset := o.page(1, DefaultOffset)
	b := s.selectBuilder(t.Name, t.ColumnNames(), o).Limit(1).Offset(offset)
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// Count returns the number of matching rows. Pagination, grouping and
// ordering options are accepted but ignored; a NULL aggregate counts as 0.
func (s *Selector) Count(ctx context.Context, t *schema.Table, opts *Options) (int64, error) {
	b := sq.Select("COUNT(*)").From(t.Name).PlaceholderFormat(s.format)
	if w := combineWhere(opts.orEmpty().Where); w != nil {
		b = b.Where(w)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var n sql.NullInt64
	if err := s.db.Get(ctx, &n, query, args...); err != nil {
		return 0, err
	}
	if !n.Valid || n.Int64 < 0 {
		return 0, nil
	}
	return n.Int64, nil
}

// Exists reports whether any row matches the filter. A filter is mandatory:
// calling Exists with no conditions, or with only nil conditions, returns
// ErrMissingCondition. Caller pagination is ignored; the probe is limit 1.
func (s *Selector) Exists(ctx context.Context, t *schema.Table, opts *Options) (bool, error) {
	o := opts.orEmpty()
	w := combineWhere(o.Where)
	if w == nil {
		return false, ErrMissingCondition
	}
	b := sq.Select("1").From(t.Name).PlaceholderFormat(s.format).Where(w).Limit(1)
	query, args, err := b.ToSql()
	if err != nil {
		return false, err
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// Pluck returns the values of a single column, one per matching row, in
// result order. The field is validated like a one-element Fields list.
func (s *Selector) Pluck(ctx context.Context, t *schema.Table, field string, opts *Options) ([]any, error) {
	proj, err := t.Select([]string{field})
	if err != nil {
		return nil, err
	}
	rows, err := s.runSelect(ctx, t.Name, proj.Names(), opts.orEmpty(), DefaultLimit, DefaultOffset)
	if err != nil {
		return nil, err
	}
	values := make([]any, 0, len(rows))
	for _, row := range rows {
		values = append(values, row[field])
	}
	return values, nil
}

// Raw executes a fully-formed query expression, bypassing projection,
// filtering, ordering, grouping and pagination. squirrel.Expr covers
// hand-written SQL with bindings. Execution errors pass through unchanged.
func (s *Selector) Raw(ctx context.Context, q sq.Sqlizer) ([]map[string]any, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return s.db.Query(ctx, query, args...)
}

func (s *Selector) selectBuilder(table string, cols []string, o *Options) sq.SelectBuilder {
	b := sq.Select(cols...).From(table).PlaceholderFormat(s.format)
	if w := combineWhere(o.Where); w != nil {
		b = b.Where(w)
	}
	if len(o.GroupBy) > 0 {
		b = b.GroupBy(o.GroupBy...)
	}
	if len(o.OrderBy) > 0 {
		b = b.OrderBy(o.OrderBy...)
	}
	return b
}

// runSelect executes the assembled query. SQL cannot project zero columns,
// so an empty projection selects a constant and each row comes back as an
// empty record, preserving row multiplicity.
func (s *Selector) runSelect(ctx context.Context, table string, cols []string, o *Options, defLimit, defOffset int) ([]map[string]any, error) {
	empty := len(cols) == 0
	if empty {
		cols = []string{"1"}
	}
	limit, offset := o.page(defLimit, defOffset)
	b := s.selectBuilder(table, cols, o).Limit(limit).Offset(offset)
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if empty {
		blank := make([]map[string]any, len(rows))
		for i := range blank {
			blank[i] = map[string]any{}
		}
		return blank, nil
	}
	return rows, nil
}
