package sheet

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput = errors.New("uploaded file is empty")
	ErrNoHeader   = errors.New("no header row found")
	ErrNoSheets   = errors.New("workbook has no sheets")
)

// ParseError reports an upload that could not be decoded into a table
type ParseError struct {
	Filename string
	Format   string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s file %q: %v", e.Format, e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
