// Package iopreprocess turns raw KB items and catalog records into the
// column-oriented, schema-validated Table shape the blocker and feature
// extractor operate on: name/URL/genre columns normalized and tokenized,
// date columns paired with their precision, occupation columns coerced
// into QID sets, and all-null columns dropped.
package iopreprocess

import (
	"sort"

	"github.com/soweego-go/soweego/pkg/model"
)

// Table is the preprocessor's output: one row per QID (KB side) or TID
// (catalog side), columns keyed by name exactly as declared in the
// entity schema that produced it.
type Table struct {
	Schema model.EntitySchema
	order  []string
	rows   map[string]map[string]any
}

// New creates an empty table for schema.
func New(schema model.EntitySchema) *Table {
	return &Table{Schema: schema, rows: make(map[string]map[string]any)}
}

// Set stores the value of column for row, creating the row if absent.
func (t *Table) Set(row, column string, value any) {
	r, ok := t.rows[row]
	if !ok {
		r = make(map[string]any)
		t.rows[row] = r
		t.order = append(t.order, row)
	}
	r[column] = value
}

// Rows returns every row identifier, in the order rows were first set.
func (t *Table) Rows() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Column returns the value of column for row and whether it is present.
func (t *Table) Column(row, column string) (any, bool) {
	r, ok := t.rows[row]
	if !ok {
		return nil, false
	}
	v, ok := r[column]
	return v, ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// dropAllNullColumns removes any declared column for which no row has a
// non-nil value, mirroring the original preprocessor dropping all-NaN
// columns before feature extraction.
func (t *Table) dropAllNullColumns() {
	kept := make([]model.ColumnSpec, 0, len(t.Schema.Columns))
	for _, col := range t.Schema.Columns {
		hasValue := false
		for _, row := range t.rows {
			if v, ok := row[col.Name]; ok && v != nil {
				hasValue = true
				break
			}
		}
		if hasValue || col.Required {
			kept = append(kept, col)
		} else {
			for _, row := range t.rows {
				delete(row, col.Name)
			}
		}
	}
	t.Schema.Columns = kept
}

// sortedRows returns Rows() sorted for deterministic iteration in tests
// and logs.
func (t *Table) sortedRows() []string {
	rows := t.Rows()
	sort.Strings(rows)
	return rows
}
