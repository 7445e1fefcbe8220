package dbx

import (
	"fmt"
	"sort"
	"strings"
)

// UpdateBuilder renders partial UPDATE statements from an allow-listed set of
// fields. Keys outside the allow list are rejected, so an open field map can
// never reach the statement text.
type UpdateBuilder struct {
	table    string
	idColumn string
	// columns maps an inbound field name to the column it may update.
	columns map[string]string
}

// NewUpdateBuilder creates a builder for table, keyed by idColumn, accepting
// only the fields named in columns.
func NewUpdateBuilder(table, idColumn string, columns map[string]string) *UpdateBuilder {
	return &UpdateBuilder{table: table, idColumn: idColumn, columns: columns}
}

// Fields reports the allowed field names in sorted order.
func (b *UpdateBuilder) Fields() []string {
	fields := make([]string, 0, len(b.columns))
	for f := range b.columns {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Allows reports whether field may be updated through this builder.
func (b *UpdateBuilder) Allows(field string) bool {
	_, ok := b.columns[field]
	return ok
}

// Build renders "UPDATE <table> SET c1 = $1, ... WHERE <id> = $n" with args
// in deterministic (sorted field) order, the id last. An empty field map or
// an unknown key yields an error and no statement.
func (b *UpdateBuilder) Build(fields map[string]any, id int64) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("no fields to update")
	}

	names := make([]string, 0, len(fields))
	for f := range fields {
		if _, ok := b.columns[f]; !ok {
			return "", nil, fmt.Errorf("unknown field: %s", f)
		}
		names = append(names, f)
	}
	sort.Strings(names)

	assignments := make([]string, 0, len(names))
	args := make([]any, 0, len(names)+1)
	for i, f := range names {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", b.columns[f], i+1))
		args = append(args, fields[f])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		b.table, strings.Join(assignments, ", "), b.idColumn, len(args))

	return query, args, nil
}
