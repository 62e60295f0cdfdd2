// # StrictCSV: A Strict CSV Row Codec for Go
//
// StrictCSV splits one raw CSV row into its column values and joins column values back into one row. The two operations are exact inverses: Split(Join(c)) == c for every column slice, and Join always produces the canonical, minimally quoted form.
//
// # Features
//
// - Split / Join over a single already-delimited row, with a fixed `,` separator and `"` quote.
// - Strict acceptance: a quote must open a field, and a closing quote must be followed by `,` or end of row. Malformed rows are rejected whole.
// - Raw newlines inside a row are ordinary data. Line segmentation is left to the caller, or to `Reader`.
// - Structured error reporting via `ParseError`, `ErrBareQuote`, `ErrUnterminatedQuote`, `ErrTrailingQuote`, and `ErrFieldCount`.
// - `JoinRows`, `Writer` and `Reader` for multi-row text, and the `rowfile` package for compressed row files.
//
// # Getting Started
//
// The module path is `github.com/oleg578/strictcsv`.
package strictcsv

const (
	// Comma is the column separator. It is not configurable.
	Comma = ','
	// Quote opens and closes quoted fields. It is not configurable.
	Quote = '"'
	// LineTerminator follows every row produced by JoinRows and Writer.
	LineTerminator = "\n"
)
