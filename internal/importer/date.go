package importer

import (
	"fmt"
	"strings"
	"time"
)

const (
	compactDateFormat = "20060102"
	displayDateFormat = "02/01/2006"
)

// ConvertDate turns a compact YYYYMMDD date, given as digits or as an
// integer, into display form DD/MM/YYYY.
//
//	ConvertDate(20230115)   // "15/01/2023"
//	ConvertDate("20230230") // FormatError: no such day
func ConvertDate[T ~int | ~int64 | ~string](v T) (string, error) {
	s := strings.TrimSpace(fmt.Sprint(v))
	if len(s) != len(compactDateFormat) || strings.Trim(s, "0123456789") != "" {
		return "", &FormatError{Value: s}
	}

	t, err := time.Parse(compactDateFormat, s)
	if err != nil {
		return "", &FormatError{Value: s, Err: err}
	}
	return t.Format(displayDateFormat), nil
}
