package importer

import "fmt"

// ParseError reports an export that cannot be read or decoded as
// semicolon-separated text with decimal-comma amounts.
type ParseError struct {
	Path string
	Line int // 0 when the failure is not tied to a line
	Err  error
}

func (e *ParseError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// FormatError reports a date that is not a valid YYYYMMDD calendar date.
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid date %q: want YYYYMMDD", e.Value)
	}
	return fmt.Sprintf("invalid date %q: %v", e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
