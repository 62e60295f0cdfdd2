package strictcsv

import (
	"errors"
	"fmt"
	"strings"
)

// maxRowInError bounds how much of the offending row ParseError.Error prints.
const maxRowInError = 64

var (
	// ErrBareQuote is returned when a quote appears anywhere but at the start of a field.
	ErrBareQuote = errors.New("strictcsv: bare quote in non-quoted field")
	// ErrUnterminatedQuote is returned when the row ends inside a quoted field.
	ErrUnterminatedQuote = errors.New("strictcsv: unterminated quoted field")
	// ErrTrailingQuote is returned when a closing quote is followed by anything but a comma or the end of the row.
	ErrTrailingQuote = errors.New("strictcsv: unexpected character after closing quote")
	// ErrFieldCount is returned when a record contains an unexpected number of fields.
	ErrFieldCount = errors.New("strictcsv: wrong number of fields")
)

// ParseError describes a row rejected by Split.
type ParseError struct {
	// Line is the 1-based line the row was read from, or 0 when Split was called directly.
	Line int
	// Column is the 1-based byte offset in Row where the problem was detected.
	Column int
	// Row is the rejected row text.
	Row string
	Err error
}

// Error formats the parse error message with the stored position, cause and row.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	row := e.Row
	if len(row) > maxRowInError {
		row = row[:maxRowInError] + "..."
	}
	if e.Line > 0 {
		return fmt.Sprintf("strictcsv: parse error on line %d, column %d: %v (row %q)", e.Line, e.Column, e.Err, row)
	}
	return fmt.Sprintf("strictcsv: parse error at column %d: %v (row %q)", e.Column, e.Err, row)
}

// Unwrap returns the underlying Err so ParseError participates in errors.Is.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// fieldState is the parser state for the field under the cursor.
type fieldState uint8

const (
	stateFieldStart fieldState = iota
	statePlainField
	stateQuotedField
)

// Split parses one row into its column values.
//
// The row is scanned once, left to right. A field starting with a quote is read
// in quoted mode, where "" stands for one literal quote and the closing quote must
// be followed by a comma or the end of the row. Any other field is copied verbatim
// up to the next comma, including spaces and raw newlines. An empty row yields a
// single empty column. On malformed input Split returns a *ParseError and no columns.
func Split(row string) ([]string, error) {
	columns := make([]string, 0, strings.Count(row, ",")+1)

	// field collects quoted content only; plain fields are sliced from row.
	var field []byte
	state := stateFieldStart
	start := 0

	for i := 0; i < len(row); i++ {
		switch state {
		case stateFieldStart:
			switch row[i] {
			case Quote:
				state = stateQuotedField
				field = field[:0]
			case Comma:
				columns = append(columns, "")
			default:
				state = statePlainField
				start = i
			}

		case statePlainField:
			// Jump to the next byte that matters.
			n := strings.IndexAny(row[i:], `,"`)
			if n < 0 {
				i = len(row)
				continue
			}
			i += n
			if row[i] == Quote {
				return nil, &ParseError{Column: i + 1, Row: row, Err: ErrBareQuote}
			}
			columns = append(columns, row[start:i])
			state = stateFieldStart

		case stateQuotedField:
			n := strings.IndexByte(row[i:], Quote)
			if n < 0 {
				return nil, &ParseError{Column: len(row) + 1, Row: row, Err: ErrUnterminatedQuote}
			}
			field = append(field, row[i:i+n]...)
			i += n

			// i is at a quote: escaped quote, separator, end of row, or garbage.
			if i+1 == len(row) {
				return append(columns, string(field)), nil
			}
			switch row[i+1] {
			case Quote:
				field = append(field, Quote)
			case Comma:
				columns = append(columns, string(field))
				state = stateFieldStart
			default:
				return nil, &ParseError{Column: i + 2, Row: row, Err: ErrTrailingQuote}
			}
			i++
		}
	}

	switch state {
	case statePlainField:
		columns = append(columns, row[start:])
	case stateQuotedField:
		return nil, &ParseError{Column: len(row) + 1, Row: row, Err: ErrUnterminatedQuote}
	default:
		// Empty row, or a row ending in a comma.
		columns = append(columns, "")
	}
	return columns, nil
}
