package model

import (
	"github.com/shopspring/decimal"
)

// Canonical column names shared by every normalized source.
const (
	ColumnDate    = "Date"
	ColumnAmount  = "Amount"
	ColumnNote    = "Note"
	ColumnAccount = "Account"
)

// CanonicalColumns is the projection used before comparing sources.
var CanonicalColumns = []string{ColumnDate, ColumnAmount, ColumnNote}

// Transaction is a single row of a source export.
type Transaction struct {
	Values map[string]string // raw cell text keyed by column name
	Amount decimal.Decimal   // parsed from the Amount column
}

// Get returns the raw text of a column, or "" if the row has no such column.
func (t Transaction) Get(column string) string {
	return t.Values[column]
}

// Date returns the display date, "DD/MM/YYYY" once normalized.
func (t Transaction) Date() string { return t.Get(ColumnDate) }

// Note returns the free-text description.
func (t Transaction) Note() string { return t.Get(ColumnNote) }

// Account returns the app account the row was booked on, if any.
func (t Transaction) Account() string { return t.Get(ColumnAccount) }

// AmountKey returns the map key for an amount. Equal values share a key
// regardless of trailing zeros: 10.00, 10.0 and 10 all map to "10".
func AmountKey(d decimal.Decimal) string {
	return d.String()
}
