package importer

import (
	"fmt"
	"io"

	"github.com/cleared-dev/recon/internal/model"
)

// AppParser parses money-management app exports. The header row already
// uses canonical names (Date, Account, Amount, Note, ...), so columns are
// taken verbatim.
type AppParser struct{}

// Format returns the parser name.
func (p *AppParser) Format() string { return "app" }

// Parse reads an app export and returns all of its columns.
func (p *AppParser) Parse(r io.Reader) (model.Table, error) {
	cr := newReader(r, 0)

	header, err := readHeader(cr)
	if err != nil {
		return model.Table{}, fmt.Errorf("reading app CSV: %w", err)
	}

	tbl, err := readRows(cr, p.Format(), header, nil)
	if err != nil {
		return model.Table{}, fmt.Errorf("reading app CSV: %w", err)
	}
	return tbl, nil
}
