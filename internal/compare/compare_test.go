package compare

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/recon/internal/model"
)

func tableOf(source string, amounts ...string) model.Table {
	tbl := model.Table{Source: source, Columns: model.CanonicalColumns}
	for i, a := range amounts {
		tbl.Rows = append(tbl.Rows, model.Transaction{
			Values: map[string]string{
				model.ColumnDate:   fmt.Sprintf("%02d/01/2023", i+1),
				model.ColumnAmount: a,
				model.ColumnNote:   fmt.Sprintf("%s row %d", source, i),
			},
			Amount: decimal.RequireFromString(a),
		})
	}
	return tbl
}

func amountsOf(t model.Table) []string {
	var out []string
	for _, row := range t.Rows {
		out = append(out, row.Amount.StringFixed(2))
	}
	return out
}

// fixtures used by the property tests.
var fixtures = []model.Table{
	tableOf("empty"),
	tableOf("a", "10.00", "10.00", "5.00"),
	tableOf("b", "10.00", "5.00", "5.00"),
	tableOf("c", "-4.00", "2500", "-23.45", "-23.45", "-12.60"),
	tableOf("d", "-4", "2500.00", "-23.45", "-12.06", "-30.00"),
	tableOf("e", "0.1", "0.10", "0.100", "7"),
}

func TestCountValues(t *testing.T) {
	counts, err := CountValues(tableOf("a", "10.00", "10.0", "5.00", "-1"), model.ColumnAmount)
	require.NoError(t, err)
	assert.Equal(t, Counts{"10": 2, "5": 1, "-1": 1}, counts)
}

func TestCountValues_OtherColumn(t *testing.T) {
	tbl := tableOf("a", "1", "2")
	tbl.Rows[1].Values[model.ColumnNote] = tbl.Rows[0].Note()

	counts, err := CountValues(tbl, model.ColumnNote)
	require.NoError(t, err)
	assert.Equal(t, Counts{"a row 0": 2}, counts)
}

func TestCountValues_UnknownField(t *testing.T) {
	_, err := CountValues(tableOf("a", "1"), "Account")
	var schemaErr *model.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestCompareCounts_Scenario(t *testing.T) {
	bank := tableOf("bank", "10.00", "10.00", "5.00")
	app := tableOf("app", "10.00", "5.00", "5.00")

	got, err := CompareCounts(Sources{Bank: bank, App: app})
	require.NoError(t, err)
	assert.Equal(t, Mismatches{"10": 1, "5": -1}, got)
}

func TestCompareCounts_OneSided(t *testing.T) {
	got, err := CompareCounts(Sources{
		Bank: tableOf("bank", "1.00", "2.00"),
		App:  tableOf("app", "2.00", "3.00", "3.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, Mismatches{"1": 1, "3": -2}, got)
}

func TestCompareCounts_MissingAmountColumn(t *testing.T) {
	bank, err := tableOf("bank", "1").Project([]string{model.ColumnDate})
	require.NoError(t, err)

	_, err = CompareCounts(Sources{Bank: bank, App: tableOf("app", "1")})
	var schemaErr *model.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestCompareCounts_SelfIsEmpty(t *testing.T) {
	for _, tbl := range fixtures {
		got, err := CompareCounts(Sources{Bank: tbl, App: tbl})
		require.NoError(t, err)
		assert.Empty(t, got, "table %s", tbl.Source)
	}
}

func TestCompareCounts_Antisymmetric(t *testing.T) {
	for _, a := range fixtures {
		for _, b := range fixtures {
			ab, err := CompareCounts(Sources{Bank: a, App: b})
			require.NoError(t, err)
			ba, err := CompareCounts(Sources{Bank: b, App: a})
			require.NoError(t, err)
			assert.Equal(t, ab, ba.Negate(), "%s vs %s", a.Source, b.Source)
		}
	}
}

func TestCompareCounts_NoZeroDeltas(t *testing.T) {
	for _, a := range fixtures {
		for _, b := range fixtures {
			got, err := CompareCounts(Sources{Bank: a, App: b})
			require.NoError(t, err)
			for key, delta := range got {
				assert.NotZero(t, delta, "%s vs %s: key %s", a.Source, b.Source, key)
			}
		}
	}
}

func TestCompareCounts_Deterministic(t *testing.T) {
	s := Sources{Bank: fixtures[3], App: fixtures[4]}
	first, err := CompareCounts(s)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := CompareCounts(s)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, Mismatches{"-23.45": 1, "-12.6": 1, "-12.06": -1, "-30": -1}, first)
}

func TestExtractRows(t *testing.T) {
	tbl := tableOf("t", "1.00", "2.00", "3.00", "2.0", "1")
	got := ExtractRows(tbl, NewAmountSet(decimal.NewFromInt(1), decimal.NewFromInt(2)))

	assert.Equal(t, []string{"1.00", "2.00", "2.00", "1.00"}, amountsOf(got))
	assert.Equal(t, "t row 0", got.Rows[0].Note())
	assert.Equal(t, "t row 4", got.Rows[3].Note())
	assert.Equal(t, tbl.Columns, got.Columns)

	// Input untouched.
	assert.Len(t, tbl.Rows, 5)
}

func TestExtractRows_Subsequence(t *testing.T) {
	for _, tbl := range fixtures {
		counts, err := CountValues(tbl, model.ColumnAmount)
		require.NoError(t, err)
		for key := range counts {
			set := NewAmountSet(decimal.RequireFromString(key))
			got := ExtractRows(tbl, set)

			// Every extracted row matches, and every matching row was extracted in order.
			var want []model.Transaction
			for _, row := range tbl.Rows {
				if set.Contains(row.Amount) {
					want = append(want, row)
				}
			}
			assert.Equal(t, want, got.Rows)
			assert.Len(t, got.Rows, counts[key])
		}
	}
}

func TestExtractRows_EmptySet(t *testing.T) {
	got := ExtractRows(fixtures[1], AmountSet{})
	assert.Equal(t, 0, got.Len())
}

func TestExtractRows_RoundTrip(t *testing.T) {
	for _, tbl := range fixtures[1:] {
		counts, err := CountValues(tbl, model.ColumnAmount)
		require.NoError(t, err)
		assert.Equal(t, tbl, ExtractRows(tbl, counts.Set()), "table %s", tbl.Source)
	}
}

func TestSearchMismatches_Scenario(t *testing.T) {
	bank := tableOf("bank", "10.00", "10.00", "5.00")
	app := tableOf("app", "10.00", "5.00", "5.00")

	res, err := SearchMismatches(Sources{Bank: bank, App: app})
	require.NoError(t, err)

	assert.Equal(t, Mismatches{"10": 1, "5": -1}, res.Mismatches)
	assert.Equal(t, bank.Rows, res.Bank.Rows)
	assert.Equal(t, app.Rows, res.App.Rows)
}

func TestSearchMismatches_OnlyMismatchedRows(t *testing.T) {
	res, err := SearchMismatches(Sources{Bank: fixtures[3], App: fixtures[4]})
	require.NoError(t, err)

	assert.Equal(t, []string{"-23.45", "-23.45", "-12.60"}, amountsOf(res.Bank))
	assert.Equal(t, []string{"-23.45", "-12.06", "-30.00"}, amountsOf(res.App))
}

func TestMismatches_Amounts(t *testing.T) {
	m := Mismatches{"10": 1, "-4.5": -2, "0.1": 3}
	got := m.Amounts()
	require.Len(t, got, 3)
	assert.Equal(t, "-4.5", got[0].String())
	assert.Equal(t, "0.1", got[1].String())
	assert.Equal(t, "10", got[2].String())
}
