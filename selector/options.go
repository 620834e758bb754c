package selector

import (
	sq "github.com/Masterminds/squirrel"
)

// Options carries the four independent query clauses. Every part is
// optional; a zero Options (or a nil *Options) applies no clauses beyond the
// operation's pagination defaults.
type Options struct {
	// Where conditions are combined with AND. Nil entries are dropped; if
	// nothing remains, no filter is applied.
	Where []sq.Sqlizer
	// GroupBy expressions, applied in listed order.
	GroupBy []string
	// OrderBy expressions, applied in listed order (first entry is the
	// primary sort key).
	OrderBy []string
	// Page overrides the operation's default limit and offset. A nil Limit
	// or Offset falls back to the default for that piece only.
	Page *Page
}

type Page struct {
	Limit  *int
	Offset *int
}

// Where wraps one or more conditions into the sequence Options.Where expects,
// so a single condition reads the same as a list.
func Where(conds ...sq.Sqlizer) []sq.Sqlizer {
	return conds
}

// Int returns a pointer to n, for Page literals.
func Int(n int) *int {
	return &n
}

func (o *Options) orEmpty() *Options {
	if o == nil {
		return &Options{}
	}
	return o
}

// combineWhere drops nil conditions and ANDs the rest. A single surviving
// condition is applied as-is so it renders identically to passing it alone.
func combineWhere(conds []sq.Sqlizer) sq.Sqlizer {
	kept := make([]sq.Sqlizer, 0, len(conds))
	for _, c := range conds {
		if c != nil {
			kept = append(kept, c)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return sq.And(kept)
	}
}

// page resolves the effective limit and offset, falling back to the given
// defaults piece by piece.
func (o *Options) page(defLimit, defOffset int) (uint64, uint64) {
	limit, offset := defLimit, defOffset
	if o.Page != nil {
		if o.Page.Limit != nil {
			limit = *o.Page.Limit
		}
		if o.Page.Offset != nil {
			offset = *o.Page.Offset
		}
	}
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return uint64(limit), uint64(offset)
}
