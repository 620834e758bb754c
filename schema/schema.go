package schema

// InternalKey is the reserved bookkeeping entry some table sources carry
// alongside real columns. It is never selectable, even when a Table literal
// contains a column with this name.
const InternalKey = "_"

type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

// Table describes the columns of a single database table. Columns keeps
// ordinal order so derived projections are deterministic.
type Table struct {
	Name        string   `json:"name"`
	Columns     []Column `json:"columns"`
	PrimaryKeys []string `json:"primary_keys,omitempty"`
	RowEstimate int64    `json:"row_estimate,omitempty"`
}

// Column returns the named column descriptor. The reserved internal key is
// reported as absent regardless of the Columns contents.
func (t *Table) Column(name string) (Column, bool) {
	if name == InternalKey {
		return Column{}, false
	}
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// ColumnNames returns all selectable column names in ordinal order,
// skipping the reserved internal key.
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Name == InternalKey {
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

// Projection is the ordered column subset a query will return.
type Projection []Column

func (p Projection) Names() []string {
	names := make([]string, len(p))
	for i, c := range p {
		names[i] = c.Name
	}
	return names
}

// Select derives the projection containing exactly the given fields, in the
// order they are listed. The field list is validated first; an empty list is
// valid and yields an empty projection.
func (t *Table) Select(fields []string) (Projection, error) {
	if err := ValidateFields(t, fields, OpSelect); err != nil {
		return nil, err
	}
	proj := make(Projection, 0, len(fields))
	for _, f := range fields {
		c, _ := t.Column(f)
		proj = append(proj, c)
	}
	return proj, nil
}

// Without derives the projection of every selectable column except the given
// fields, keeping the table's ordinal order. The exclusion list is validated
// against the same rules as Select, so excluding the reserved internal key is
// rejected even though it was never selectable.
func (t *Table) Without(fields []string) (Projection, error) {
	if err := ValidateFields(t, fields, OpExclude); err != nil {
		return nil, err
	}
	excluded := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		excluded[f] = struct{}{}
	}
	proj := make(Projection, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.Name == InternalKey {
			continue
		}
		if _, skip := excluded[c.Name]; skip {
			continue
		}
		proj = append(proj, c)
	}
	return proj, nil
}
