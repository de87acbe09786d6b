package output

import "fmt"

// Item is one resource record as returned by the manager API, keyed by
// field name. Render order is taken from the FieldSpec slice, not the map.
type Item map[string]any

// FieldSpec describes one displayable column of a resource.
type FieldSpec struct {
	// FieldName is the API-side attribute name, e.g. "created_at".
	FieldName string

	// HumanizedName is the column header shown to the user, e.g. "Created At".
	HumanizedName string

	// Formatter converts the raw attribute value into display text.
	Formatter Formatter
}

// Field constructs a FieldSpec with the plain text formatter.
func Field(name, humanized string) FieldSpec {
	return FieldSpec{FieldName: name, HumanizedName: humanized, Formatter: TextFormatter{}}
}

// WithFormatter returns a copy of the spec using the given formatter.
func (f FieldSpec) WithFormatter(fmtr Formatter) FieldSpec {
	f.Formatter = fmtr
	return f
}

// PageResult is one response of a paginated list query. TotalCount is
// authoritative for loop termination, not len(Items).
type PageResult struct {
	Items      []Item
	TotalCount int
	Fields     []FieldSpec
}

// FetchFunc retrieves one page of a remote listing. Implementations are
// built per command, closed over the command's filter and ordering flags.
type FetchFunc func(offset, pageSize int) (*PageResult, error)

// fieldIndex builds a lookup from field name to spec and is used to enforce
// the superset invariant: every key of every rendered item must be covered
// by the field set.
func fieldIndex(fields []FieldSpec) map[string]FieldSpec {
	m := make(map[string]FieldSpec, len(fields))
	for _, f := range fields {
		m[f.FieldName] = f
	}
	return m
}

// checkCovered returns an error naming the first item key that has no
// FieldSpec. Rendering an item with an uncovered key is a programming
// defect in the calling command.
func checkCovered(item Item, index map[string]FieldSpec) error {
	for k := range item {
		if _, ok := index[k]; !ok {
			return fmt.Errorf("no field spec for item key %q", k)
		}
	}
	return nil
}
