package model

import (
	"fmt"
	"slices"
	"strings"
)

// SchemaError reports a column that a table does not have.
type SchemaError struct {
	Column    string
	Available []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("column %q not found (have %s)", e.Column, strings.Join(e.Available, ", "))
}

// Table is an ordered set of transactions loaded from one source.
// Tables are treated as read-only: every operation returns a new Table.
type Table struct {
	Source  string
	Columns []string
	Rows    []Transaction
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// HasColumn reports whether the table exposes the named column.
func (t Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// Require returns a SchemaError for the first name the table lacks.
func (t Table) Require(names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return &SchemaError{Column: name, Available: slices.Clone(t.Columns)}
		}
	}
	return nil
}

// Project returns a table holding exactly the given columns, in that order.
// An empty list returns the table unchanged.
func (t Table) Project(columns []string) (Table, error) {
	if len(columns) == 0 {
		return t, nil
	}
	if err := t.Require(columns...); err != nil {
		return Table{}, err
	}

	rows := make([]Transaction, len(t.Rows))
	for i, row := range t.Rows {
		values := make(map[string]string, len(columns))
		for _, c := range columns {
			values[c] = row.Values[c]
		}
		rows[i] = Transaction{Values: values, Amount: row.Amount}
	}
	return Table{Source: t.Source, Columns: slices.Clone(columns), Rows: rows}, nil
}

// Where returns the rows whose column equals value, preserving order.
func (t Table) Where(column, value string) (Table, error) {
	if err := t.Require(column); err != nil {
		return Table{}, err
	}
	return t.Filter(func(row Transaction) bool {
		return row.Get(column) == value
	}), nil
}

// Filter returns the rows for which keep returns true, preserving order.
func (t Table) Filter(keep func(Transaction) bool) Table {
	var rows []Transaction
	for _, row := range t.Rows {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	return Table{Source: t.Source, Columns: slices.Clone(t.Columns), Rows: rows}
}
