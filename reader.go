package strictcsv

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

const defaultMaxRowSize = 1 << 20 // 1 MiB

// Reader reads rows line by line and splits each line with Split.
//
// A line ends at \n, \r\n or \r. Line segmentation happens before Split, so
// values holding raw newlines do not survive a Writer to Reader round trip.
type Reader struct {
	src     io.Reader
	scanner *bufio.Scanner

	// FieldsPerRecord expects each row to contain this many fields. Zero captures
	// the width of the first row; a negative value disables the check.
	FieldsPerRecord int
	// MaxRowSize is the longest accepted line in bytes, not counting its terminator.
	// It must be set before the first Read.
	MaxRowSize int

	line     int
	finished bool
}

// NewReader creates a Reader that consumes rows from r, panicking if r is nil.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		panic("strictcsv: reader source cannot be nil")
	}
	return &Reader{
		src:        r,
		MaxRowSize: defaultMaxRowSize,
	}
}

// Read returns the columns of the next line; io.EOF signals that no more rows remain.
// A *ParseError returned by Read carries the line number of the rejected row.
func (r *Reader) Read() ([]string, error) {
	if r == nil || r.src == nil {
		return nil, io.EOF
	}
	if r.finished {
		return nil, io.EOF
	}
	if r.scanner == nil {
		r.scanner = newRowScanner(r.src, r.MaxRowSize)
	}

	if !r.scanner.Scan() {
		r.finished = true
		if err := r.scanner.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	r.line++

	record, err := Split(r.scanner.Text())
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Line = r.line
		}
		return nil, err
	}
	return r.checkFieldCount(record)
}

// ReadAll exhausts the reader and returns every row, or nil and the first non-EOF error.
func (r *Reader) ReadAll() (records [][]string, err error) {
	for {
		record, err := r.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// Line reports the number of the last line read.
func (r *Reader) Line() int {
	if r == nil {
		return 0
	}
	return r.line
}

func (r *Reader) checkFieldCount(record []string) ([]string, error) {
	switch {
	case r.FieldsPerRecord == 0:
		r.FieldsPerRecord = len(record)
	case r.FieldsPerRecord > 0 && len(record) != r.FieldsPerRecord:
		return record, fmt.Errorf("%w: line %d has %d fields, want %d", ErrFieldCount, r.line, len(record), r.FieldsPerRecord)
	}
	return record, nil
}

func newRowScanner(src io.Reader, maxRowSize int) *bufio.Scanner {
	if maxRowSize <= 0 {
		maxRowSize = defaultMaxRowSize
	}
	// The buffer also has to hold a \r\n terminator after the longest row.
	bufSize := maxRowSize + 2
	s := bufio.NewScanner(src)
	s.Buffer(make([]byte, 0, min(defaultBufferSize, bufSize)), bufSize)
	s.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		advance, token, err := scanRows(data, atEOF)
		if len(token) > maxRowSize {
			return 0, nil, bufio.ErrTooLong
		}
		return advance, token, err
	})
	return s
}

// scanRows is a bufio.SplitFunc yielding lines terminated by \n, \r\n or \r, without the terminator.
func scanRows(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// A \r at the end of the buffer may be the first half of \r\n.
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
