package importer

import (
	"fmt"
	"io"

	"github.com/cleared-dev/recon/internal/model"
)

// ingRename maps ING header names to canonical columns.
var ingRename = map[string]string{
	"Datum":               model.ColumnDate,
	"Bedrag (EUR)":        model.ColumnAmount,
	"Naam / Omschrijving": model.ColumnNote,
}

// INGParser parses ING current account exports. The header uses Dutch
// column names and dates arrive as YYYYMMDD.
type INGParser struct{}

// Format returns the parser name.
func (p *INGParser) Format() string { return "ing" }

// Parse reads an ING export, renames its columns and converts dates to DD/MM/YYYY.
func (p *INGParser) Parse(r io.Reader) (model.Table, error) {
	cr := newReader(r, 0)

	header, err := readHeader(cr)
	if err != nil {
		return model.Table{}, fmt.Errorf("reading ing CSV: %w", err)
	}
	for i, name := range header {
		if canonical, ok := ingRename[name]; ok {
			header[i] = canonical
		}
	}
	if err := checkDuplicates(header); err != nil {
		return model.Table{}, fmt.Errorf("reading ing CSV: %w", &ParseError{Line: 1, Err: fmt.Errorf("after renaming: %w", err)})
	}

	// Renaming must have produced every column the comparison relies on.
	probe := model.Table{Columns: header}
	if err := probe.Require(model.ColumnDate, model.ColumnAmount, model.ColumnNote); err != nil {
		return model.Table{}, fmt.Errorf("reading ing CSV: %w", err)
	}

	tbl, err := readRows(cr, p.Format(), header, convertDateColumn)
	if err != nil {
		return model.Table{}, fmt.Errorf("reading ing CSV: %w", err)
	}
	return tbl, nil
}

func convertDateColumn(values map[string]string) error {
	date, err := ConvertDate(values[model.ColumnDate])
	if err != nil {
		return err
	}
	values[model.ColumnDate] = date
	return nil
}
