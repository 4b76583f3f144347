// Package report renders reconciliation results as console tables.
package report

import (
	"fmt"
	"io"

	"github.com/Rhymond/go-money"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/recon/internal/compare"
	"github.com/cleared-dev/recon/internal/model"
)

// Report is one reconciliation ready to print.
type Report struct {
	Name        string
	Bank        string // label of the bank side
	App         string // label of the app side
	Result      compare.Result
	Suggestions []compare.Suggestion
}

// Renderer prints reports. Amounts are displayed in Currency.
type Renderer struct {
	Currency string
}

// Render writes rep to w: a summary of mismatched amounts followed by the
// rows behind them from each side and any likely mistyped amounts.
func (r Renderer) Render(w io.Writer, rep Report) error {
	if _, err := fmt.Fprintf(w, "== %s: %s vs %s ==\n", rep.Name, rep.Bank, rep.App); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if len(rep.Result.Mismatches) == 0 {
		_, err := fmt.Fprint(w, "No mismatches.\n\n")
		return err
	}

	if _, err := fmt.Fprintf(w, "%d mismatched amounts (positive delta: more in %s)\n", len(rep.Result.Mismatches), rep.Bank); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	r.summary(w, rep)

	if _, err := fmt.Fprintf(w, "\n%s rows:\n", rep.Bank); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	r.rows(w, rep.Result.Bank)

	if _, err := fmt.Fprintf(w, "\n%s rows:\n", rep.App); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	r.rows(w, rep.Result.App)

	if len(rep.Suggestions) > 0 {
		if _, err := fmt.Fprintf(w, "\nPossible mistyped amounts:\n"); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		r.suggestions(w, rep)
	}

	_, err := fmt.Fprintln(w)
	return err
}

func (r Renderer) summary(w io.Writer, rep Report) {
	bank := countAmounts(rep.Result.Bank)
	app := countAmounts(rep.Result.App)

	table := newTable(w, []string{"Amount", rep.Bank, rep.App, "Delta"})
	for _, amount := range rep.Result.Mismatches.Amounts() {
		key := model.AmountKey(amount)
		table.Append([]string{
			FormatAmount(amount, r.Currency),
			fmt.Sprint(bank[key]),
			fmt.Sprint(app[key]),
			fmt.Sprintf("%+d", rep.Result.Mismatches[key]),
		})
	}
	table.Render()
}

func (r Renderer) rows(w io.Writer, t model.Table) {
	table := newTable(w, []string{"Date", "Amount", "Note"})
	for _, row := range t.Rows {
		table.Append([]string{row.Date(), FormatAmount(row.Amount, r.Currency), row.Note()})
	}
	table.Render()
}

func (r Renderer) suggestions(w io.Writer, rep Report) {
	table := newTable(w, []string{"Date", rep.Bank, rep.App, "Bank note", "App note", "Similarity"})
	for _, s := range rep.Suggestions {
		table.Append([]string{
			s.Bank.Date(),
			FormatAmount(s.Bank.Amount, r.Currency),
			FormatAmount(s.App.Amount, r.Currency),
			s.Bank.Note(),
			s.App.Note(),
			fmt.Sprintf("%.0f%%", s.Similarity*100),
		})
	}
	table.Render()
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	return table
}

func countAmounts(t model.Table) map[string]int {
	counts := make(map[string]int, t.Len())
	for _, row := range t.Rows {
		counts[model.AmountKey(row.Amount)]++
	}
	return counts
}

// FormatAmount displays d in the given ISO currency. Unknown currencies and
// amounts finer than the currency's minor unit fall back to the plain decimal.
func FormatAmount(d decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return d.String()
	}
	minor := d.Shift(int32(cur.Fraction))
	if !minor.Equal(minor.Truncate(0)) {
		return d.String()
	}
	return money.New(minor.IntPart(), cur.Code).Display()
}
