// Package compare finds transaction amounts that occur a different number
// of times in a bank export and in the app, and pulls out the rows behind them.
package compare

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/recon/internal/model"
)

// Counts maps a value key to its number of occurrences. For the Amount
// column the key is model.AmountKey; for any other column it is the raw text.
type Counts map[string]int

// Mismatches maps an amount key to count(Bank) - count(App). Positive means
// the bank has more rows with that amount, negative means the app does.
// Zero deltas are never stored.
type Mismatches map[string]int

// Sources names the two sides of a comparison. The sign of every
// Mismatches entry is relative to this pairing.
type Sources struct {
	Bank model.Table
	App  model.Table
}

// Result is the outcome of SearchMismatches.
type Result struct {
	Mismatches Mismatches
	Bank       model.Table // bank rows whose amount is mismatched
	App        model.Table // app rows whose amount is mismatched
}

// CountValues counts the rows carrying each distinct value of field.
// Duplicate rows are all counted.
func CountValues(t model.Table, field string) (Counts, error) {
	if err := t.Require(field); err != nil {
		return nil, err
	}

	counts := make(Counts)
	for _, row := range t.Rows {
		if field == model.ColumnAmount {
			counts[model.AmountKey(row.Amount)]++
		} else {
			counts[row.Get(field)]++
		}
	}
	return counts, nil
}

// CompareCounts returns every amount whose frequency differs between
// s.Bank and s.App. Amounts missing from one side count as zero there.
func CompareCounts(s Sources) (Mismatches, error) {
	bank, err := CountValues(s.Bank, model.ColumnAmount)
	if err != nil {
		return nil, err
	}
	app, err := CountValues(s.App, model.ColumnAmount)
	if err != nil {
		return nil, err
	}

	mismatches := make(Mismatches)
	for key, n := range bank {
		if delta := n - app[key]; delta != 0 {
			mismatches[key] = delta
		}
	}
	for key, n := range app {
		if _, seen := bank[key]; !seen {
			mismatches[key] = -n
		}
	}
	return mismatches, nil
}

// ExtractRows returns the rows of t whose amount is in amounts, in their
// original order. t is not modified.
func ExtractRows(t model.Table, amounts AmountSet) model.Table {
	return t.Filter(func(row model.Transaction) bool {
		return amounts.Contains(row.Amount)
	})
}

// SearchMismatches compares s and extracts the rows of both sides whose
// amount frequency disagrees.
func SearchMismatches(s Sources) (Result, error) {
	mismatches, err := CompareCounts(s)
	if err != nil {
		return Result{}, err
	}

	amounts := mismatches.Set()
	return Result{
		Mismatches: mismatches,
		Bank:       ExtractRows(s.Bank, amounts),
		App:        ExtractRows(s.App, amounts),
	}, nil
}

// Set returns the mismatched amounts as an AmountSet.
func (m Mismatches) Set() AmountSet {
	set := make(AmountSet, len(m))
	for key := range m {
		set[key] = struct{}{}
	}
	return set
}

// Amounts returns the mismatched amounts in ascending order.
func (m Mismatches) Amounts() []decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(m))
	for key := range m {
		amounts = append(amounts, decimal.RequireFromString(key))
	}
	slices.SortFunc(amounts, func(a, b decimal.Decimal) int { return a.Cmp(b) })
	return amounts
}

// Negate returns a copy with every delta sign flipped, i.e. the result of
// comparing with Bank and App swapped.
func (m Mismatches) Negate() Mismatches {
	out := make(Mismatches, len(m))
	for key, delta := range m {
		out[key] = -delta
	}
	return out
}

// Set returns the counted amounts as an AmountSet. Only meaningful for
// counts taken over the Amount column.
func (c Counts) Set() AmountSet {
	set := make(AmountSet, len(c))
	for key := range c {
		set[key] = struct{}{}
	}
	return set
}

// AmountSet is a set of exact amounts.
type AmountSet map[string]struct{}

// NewAmountSet builds a set from amounts.
func NewAmountSet(amounts ...decimal.Decimal) AmountSet {
	set := make(AmountSet, len(amounts))
	for _, d := range amounts {
		set[model.AmountKey(d)] = struct{}{}
	}
	return set
}

// Contains reports whether d is in the set.
func (s AmountSet) Contains(d decimal.Decimal) bool {
	_, ok := s[model.AmountKey(d)]
	return ok
}
