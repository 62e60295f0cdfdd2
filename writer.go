package strictcsv

import (
	"bufio"
	"errors"
	"io"
)

const defaultBufferSize = 1 << 12 // 4096 bytes

var (
	errNilWriter      = errors.New("strictcsv: writer is nil")
	errWriterNoTarget = errors.New("strictcsv: writer destination cannot be nil")
)

// Writer emits canonical rows, one per line, through an internal buffer.
type Writer struct {
	dst *bufio.Writer

	// UseCRLF writes rows terminated with \r\n when set.
	UseCRLF bool

	scratch []byte
	err     error
}

// NewWriter creates a new Writer buffering output to w.
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst: bufio.NewWriterSize(w, defaultBufferSize),
	}
}

// Reset points w at dst, dropping unflushed rows and any stored error. UseCRLF is kept,
// so one Writer can encode a sequence of row files.
func (w *Writer) Reset(dst io.Writer) {
	if w == nil {
		panic(errNilWriter.Error())
	}
	if dst == nil {
		panic(errWriterNoTarget.Error())
	}
	if w.dst == nil {
		w.dst = bufio.NewWriterSize(dst, defaultBufferSize)
	} else {
		w.dst.Reset(dst)
	}
	w.err = nil
}

// Write encodes columns with AppendRow and terminates the row.
func (w *Writer) Write(columns []string) error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}

	w.scratch = AppendRow(w.scratch[:0], columns)
	if w.UseCRLF {
		w.scratch = append(w.scratch, '\r', '\n')
	} else {
		w.scratch = append(w.scratch, LineTerminator...)
	}
	if _, err := w.dst.Write(w.scratch); err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteAll writes rows in order and flushes. It stops at the first failing row.
func (w *Writer) WriteAll(rows [][]string) error {
	if w == nil {
		return errNilWriter
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush pushes buffered rows to the destination. A failure is stored and returned
// from every later Write, Flush and Error call.
func (w *Writer) Flush() error {
	if w == nil {
		return errNilWriter
	}
	if w.dst == nil {
		return errWriterNoTarget
	}
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.err = err
		return err
	}
	return nil
}

// Error returns the stored I/O error, if any. Rows are never rejected, so it is only
// set by a failing destination.
func (w *Writer) Error() error {
	if w == nil {
		return errNilWriter
	}
	return w.err
}
