package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/recon/internal/model"
)

const (
	fieldSeparator   = ';'
	decimalSeparator = ","
	utf8BOM          = "\ufeff"
)

// rowHook adjusts the values of one row before its amount is parsed.
type rowHook func(values map[string]string) error

func newReader(r io.Reader, fields int) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = fieldSeparator
	cr.FieldsPerRecord = fields
	return cr
}

// readHeader reads the first record as column names.
func readHeader(cr *csv.Reader) ([]string, error) {
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Err: errors.New("empty file: missing header row")}
	}
	if err != nil {
		return nil, csvError(err)
	}

	if err := checkUTF8(header); err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}

	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}
	if err := checkDuplicates(header); err != nil {
		return nil, &ParseError{Line: 1, Err: err}
	}
	return header, nil
}

// checkDuplicates rejects a header naming the same non-blank column twice.
func checkDuplicates(header []string) error {
	for i, name := range header {
		if name != "" && slices.Contains(header[:i], name) {
			return fmt.Errorf("duplicate column %q", name)
		}
	}
	return nil
}

// checkUTF8 rejects records that are not valid UTF-8, such as Latin-1 exports.
func checkUTF8(rec []string) error {
	for i, field := range rec {
		if !utf8.ValidString(field) {
			return fmt.Errorf("invalid UTF-8 in field %d", i+1)
		}
	}
	return nil
}

// readRows decodes every remaining record into a Table with the given columns.
// Every row must carry a parseable Amount; nothing is skipped.
func readRows(cr *csv.Reader, source string, columns []string, hook rowHook) (model.Table, error) {
	tbl := model.Table{Source: source, Columns: columns}
	if err := tbl.Require(model.ColumnAmount); err != nil {
		return model.Table{}, err
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.Table{}, csvError(err)
		}
		line, _ := cr.FieldPos(0)
		if err := checkUTF8(rec); err != nil {
			return model.Table{}, &ParseError{Line: line, Err: err}
		}

		values := make(map[string]string, len(columns))
		for i, c := range columns {
			values[c] = rec[i]
		}
		if hook != nil {
			if err := hook(values); err != nil {
				return model.Table{}, fmt.Errorf("line %d: %w", line, err)
			}
		}

		amount, err := parseAmount(values[model.ColumnAmount])
		if err != nil {
			return model.Table{}, &ParseError{Line: line, Err: err}
		}
		tbl.Rows = append(tbl.Rows, model.Transaction{Values: values, Amount: amount})
	}
	return tbl, nil
}

// parseAmount parses a decimal-comma number such as "-1234,56".
func parseAmount(s string) (decimal.Decimal, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return decimal.Decimal{}, errors.New("parsing amount: empty value")
	}
	if strings.Contains(text, ".") {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: unexpected '.' (decimal separator is %q)", s, decimalSeparator)
	}
	d, err := decimal.NewFromString(strings.Replace(text, decimalSeparator, ".", 1))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}

func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Err: err}
}
