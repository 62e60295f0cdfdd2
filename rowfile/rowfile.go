// Package rowfile persists rows to files through the strictcsv codec, one row per
// line, optionally compressed with gzip, zstd or xz.
package rowfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/oleg578/strictcsv"
)

// ErrUnsupportedCompression is returned for a Compression value rowfile cannot handle.
var ErrUnsupportedCompression = errors.New("rowfile: unsupported compression")

type options struct {
	compression     Compression
	crlf            bool
	fieldsPerRecord int
	logger          *slog.Logger
}

// Option configures Write and Read.
type Option func(*options)

// WithCompression overrides the compression picked from the file extension.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCRLF terminates written rows with \r\n.
func WithCRLF() Option {
	return func(o *options) {
		o.crlf = true
	}
}

// WithFieldsPerRecord sets strictcsv.Reader.FieldsPerRecord for Read.
func WithFieldsPerRecord(n int) Option {
	return func(o *options) {
		o.fieldsPerRecord = n
	}
}

// WithLogger sets the logger used for debug records. A nil logger is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		compression: Auto,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func supported(c Compression) bool {
	switch c {
	case None, Gzip, Zstd, XZ:
		return true
	default:
		return false
	}
}

// Write creates or truncates path and writes every row to it in canonical form.
// On any failure after path was created, including a cancelled ctx, the partial
// file is removed.
func Write(ctx context.Context, path string, rows [][]string, opts ...Option) (err error) {
	o := newOptions(opts)
	c := o.compression.resolve(path)
	if !supported(c) {
		return fmt.Errorf("%w: %v", ErrUnsupportedCompression, c)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rowfile: failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("rowfile: failed to close %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	zw, closeCompression, err := c.newWriter(f)
	if err != nil {
		return err
	}

	w := strictcsv.NewWriter(zw)
	w.UseCRLF = o.crlf
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			_ = closeCompression()
			return fmt.Errorf("rowfile: write %s: %w", path, err)
		}
		if err := w.Write(row); err != nil {
			_ = closeCompression()
			return fmt.Errorf("rowfile: write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = closeCompression()
		return fmt.Errorf("rowfile: write %s: %w", path, err)
	}
	if err := closeCompression(); err != nil {
		return fmt.Errorf("rowfile: failed to finish %s stream for %s: %w", c, path, err)
	}

	o.logger.Debug("rows written", "path", path, "rows", len(rows), "compression", c.String())
	return nil
}

// Read opens path and returns every row in it, split with strictcsv.Split.
func Read(ctx context.Context, path string, opts ...Option) (rows [][]string, err error) {
	o := newOptions(opts)
	c := o.compression.resolve(path)
	if !supported(c) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedCompression, c)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rowfile: failed to open %s: %w", path, err)
	}
	defer f.Close()

	zr, closeCompression, err := c.newReader(f)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := closeCompression(); cerr != nil && err == nil {
			rows, err = nil, fmt.Errorf("rowfile: failed to close %s stream for %s: %w", c, path, cerr)
		}
	}()

	r := strictcsv.NewReader(zr)
	r.FieldsPerRecord = o.fieldsPerRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("rowfile: read %s: %w", path, err)
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("rowfile: read %s: %w", path, err)
		}
		rows = append(rows, row)
	}

	o.logger.Debug("rows read", "path", path, "rows", len(rows), "compression", c.String())
	return rows, nil
}
