package schema

import (
	"fmt"
	"strings"
)

// Operation labels used in validation error messages.
const (
	OpSelect  = "select"
	OpExclude = "exclude"
)

// DuplicateFieldError reports every repeated occurrence in a field list.
type DuplicateFieldError struct {
	Op     string
	Fields []string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("%s: duplicate fields: %s", e.Op, strings.Join(e.Fields, ", "))
}

// InvalidFieldError reports field names that are not selectable columns of
// the table, along with the names that are.
type InvalidFieldError struct {
	Op        string
	Fields    []string
	Available []string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%s: invalid fields: %s (available: %s)",
		e.Op, strings.Join(e.Fields, ", "), strings.Join(e.Available, ", "))
}

// ValidateFields checks a caller-supplied field list against the table.
// Duplicates are checked first: every occurrence after a name's first is
// collected and reported together. Only if no duplicates exist are unknown
// names checked; a name is invalid when it is not a column of the table or is
// the reserved internal key. An empty list is valid. The table and the list
// are never mutated.
func ValidateFields(t *Table, fields []string, op string) error {
	seen := make(map[string]struct{}, len(fields))
	var dups []string
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			dups = append(dups, f)
			continue
		}
		seen[f] = struct{}{}
	}
	if len(dups) > 0 {
		return &DuplicateFieldError{Op: op, Fields: dups}
	}

	var invalid []string
	for _, f := range fields {
		if f == InternalKey || !t.HasColumn(f) {
			invalid = append(invalid, f)
		}
	}
	if len(invalid) > 0 {
		return &InvalidFieldError{Op: op, Fields: invalid, Available: t.ColumnNames()}
	}
	return nil
}
