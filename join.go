package strictcsv

import "strings"

// Join encodes columns as one row in canonical form.
//
// A column is written as is unless it contains a comma, a quote, or a newline
// character, in which case it is wrapped in quotes and its inner quotes are
// doubled. Join(nil) returns "", the same row as Join([]string{""}).
func Join(columns []string) string {
	return string(AppendRow(nil, columns))
}

// AppendRow appends the canonical encoding of columns to dst and returns the extended buffer.
func AppendRow(dst []byte, columns []string) []byte {
	for i, column := range columns {
		if i > 0 {
			dst = append(dst, Comma)
		}
		dst = appendField(dst, column)
	}
	return dst
}

// JoinRows encodes every row with Join and terminates each one with LineTerminator.
func JoinRows(rows [][]string) string {
	var buf []byte
	for _, row := range rows {
		buf = AppendRow(buf, row)
		buf = append(buf, LineTerminator...)
	}
	return string(buf)
}

func appendField(dst []byte, field string) []byte {
	if !fieldNeedsQuote(field) {
		return append(dst, field...)
	}

	dst = append(dst, Quote)
	for {
		i := strings.IndexByte(field, Quote)
		if i < 0 {
			break
		}
		dst = append(dst, field[:i]...)
		dst = append(dst, Quote, Quote)
		field = field[i+1:]
	}
	dst = append(dst, field...)
	return append(dst, Quote)
}

func fieldNeedsQuote(field string) bool {
	return strings.ContainsAny(field, ",\"\r\n")
}
