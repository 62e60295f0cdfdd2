package rowfile

import (
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression selects the stream codec wrapped around a row file.
type Compression int

const (
	// Auto picks the compression from the file extension.
	Auto Compression = iota
	// None stores rows as plain text.
	None
	// Gzip wraps rows in a gzip stream (.gz).
	Gzip
	// Zstd wraps rows in a zstd stream (.zst).
	Zstd
	// XZ wraps rows in an xz stream (.xz).
	XZ
)

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case Auto:
		return "auto"
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case XZ:
		return "xz"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

// Extension returns the file extension for c, including the dot.
func (c Compression) Extension() string {
	switch c {
	case Gzip:
		return ".gz"
	case Zstd:
		return ".zst"
	case XZ:
		return ".xz"
	default:
		return ""
	}
}

// CompressionFromPath maps a file extension to its Compression; unknown extensions are None.
func CompressionFromPath(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return Gzip
	case ".zst":
		return Zstd
	case ".xz":
		return XZ
	default:
		return None
	}
}

func (c Compression) resolve(path string) Compression {
	if c == Auto {
		return CompressionFromPath(path)
	}
	return c
}

// newReader wraps r with a decompression reader. The returned func releases it.
func (c Compression) newReader(r io.Reader) (io.Reader, func() error, error) {
	switch c {
	case None:
		return r, func() error { return nil }, nil

	case Gzip:
		gzReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("rowfile: failed to create gzip reader: %w", err)
		}
		return gzReader, gzReader.Close, nil

	case Zstd:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("rowfile: failed to create zstd reader: %w", err)
		}
		return decoder, func() error {
			decoder.Close()
			return nil
		}, nil

	case XZ:
		xzReader, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("rowfile: failed to create xz reader: %w", err)
		}
		// xz.Reader has nothing to release
		return xzReader, func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedCompression, c)
	}
}

// newWriter wraps w with a compression writer. The returned func flushes and closes it,
// leaving w open.
func (c Compression) newWriter(w io.Writer) (io.Writer, func() error, error) {
	switch c {
	case None:
		return w, func() error { return nil }, nil

	case Gzip:
		gzWriter := gzip.NewWriter(w)
		return gzWriter, gzWriter.Close, nil

	case Zstd:
		encoder, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, fmt.Errorf("rowfile: failed to create zstd writer: %w", err)
		}
		return encoder, encoder.Close, nil

	case XZ:
		xzWriter, err := xz.NewWriter(w)
		if err != nil {
			return nil, nil, fmt.Errorf("rowfile: failed to create xz writer: %w", err)
		}
		return xzWriter, xzWriter.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedCompression, c)
	}
}
