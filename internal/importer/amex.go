package importer

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/cleared-dev/recon/internal/model"
)

// amexColumns names the positional fields of a headerless AMEX export.
// The trailing field is always blank.
var amexColumns = []string{
	model.ColumnDate,
	"Reference",
	model.ColumnAmount,
	model.ColumnNote,
	"Datum verwerkt",
	"",
}

// AmexParser parses AMEX credit card exports: no header row, six fields.
type AmexParser struct{}

// Format returns the parser name.
func (p *AmexParser) Format() string { return "amex" }

// Parse reads an AMEX export.
func (p *AmexParser) Parse(r io.Reader) (model.Table, error) {
	cr := newReader(r, len(amexColumns))

	tbl, err := readRows(cr, p.Format(), slices.Clone(amexColumns), nil)
	if err != nil {
		return model.Table{}, fmt.Errorf("reading amex CSV: %w", err)
	}
	if tbl.Len() == 0 {
		return model.Table{}, fmt.Errorf("reading amex CSV: %w", &ParseError{Err: errors.New("empty file")})
	}
	return tbl, nil
}
