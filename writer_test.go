package strictcsv

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterWrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		records [][]string
		config  func(*Writer)
		want    string
	}{
		{
			name:    "basic",
			records: [][]string{{"a", "b", "c"}},
			want:    "a,b,c\n",
		},
		{
			name: "multipleRecords",
			records: [][]string{
				{"alpha", "beta"},
				{"gamma", "delta"},
			},
			want: "alpha,beta\ngamma,delta\n",
		},
		{
			name:    "emptyField",
			records: [][]string{{"", "b"}},
			want:    ",b\n",
		},
		{
			name:    "singleEmptyColumn",
			records: [][]string{{""}},
			want:    "\n",
		},
		{
			name:    "commaForcesQuote",
			records: [][]string{{"alpha,beta"}},
			want:    "\"alpha,beta\"\n",
		},
		{
			name: "quoteEscaping",
			records: [][]string{
				{"he said \"hello\"", "plain"},
			},
			want: "\"he said \"\"hello\"\"\",plain\n",
		},
		{
			name: "newlineForcesQuote",
			records: [][]string{
				{"multi\nline", "z"},
			},
			want: "\"multi\nline\",z\n",
		},
		{
			name: "useCRLF",
			records: [][]string{
				{"a"},
				{"b"},
			},
			config: func(w *Writer) {
				w.UseCRLF = true
			},
			want: "a\r\nb\r\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			w := NewWriter(&buf)
			if tc.config != nil {
				tc.config(w)
			}
			for _, rec := range tc.records {
				require.NoError(t, w.Write(rec))
			}
			require.NoError(t, w.Flush())
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestWriterMatchesJoinRows(t *testing.T) {
	t.Parallel()

	records := [][]string{
		{"1", "true", "x,y"},
		{"", `"q"`, " "},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteAll(records))
	assert.Equal(t, JoinRows(records), buf.String())
}

func TestWriterWriteAll(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	records := [][]string{
		{"alpha", "beta"},
		{"gamma", "delta"},
	}

	require.NoError(t, w.WriteAll(records))
	assert.Equal(t, "alpha,beta\ngamma,delta\n", buf.String())
}

func TestWriterReset(t *testing.T) {
	t.Parallel()

	var buf1 bytes.Buffer
	var buf2 bytes.Buffer

	var w Writer
	w.Reset(&buf1)

	require.NoError(t, w.Write([]string{"a"}))
	require.NoError(t, w.Flush())
	assert.Equal(t, "a\n", buf1.String())

	w.UseCRLF = true
	w.Reset(&buf2)
	require.NoError(t, w.Write([]string{"x", "y"}))
	require.NoError(t, w.Flush())
	assert.Equal(t, "x,y\r\n", buf2.String())

	var buf3 bytes.Buffer
	require.NoError(t, w.Write([]string{"unflushed"}))
	w.Reset(&buf3)
	require.NoError(t, w.Flush())
	assert.Empty(t, buf3.String())
	assert.Equal(t, "x,y\r\n", buf2.String(), "Reset must drop rows that were never flushed")
}

type flushFailWriter struct {
	fail error
}

func (f *flushFailWriter) Write([]byte) (int, error) {
	return 0, f.fail
}

func TestWriterFlushError(t *testing.T) {
	t.Parallel()

	exp := errors.New("flush failed")
	w := NewWriter(&flushFailWriter{fail: exp})

	require.NoError(t, w.Write([]string{"a"}))
	assert.ErrorIs(t, w.Flush(), exp)
	assert.ErrorIs(t, w.Write([]string{"b"}), exp, "Write() should return the stored error")
	assert.ErrorIs(t, w.Error(), exp)
}

func TestWriterErrorMethod(t *testing.T) {
	t.Parallel()

	w := NewWriter(&strings.Builder{})
	assert.NoError(t, w.Error())

	var nilWriter *Writer
	assert.ErrorIs(t, nilWriter.Error(), errNilWriter)
	assert.ErrorIs(t, nilWriter.Write([]string{"a"}), errNilWriter)

	var zero Writer
	assert.ErrorIs(t, zero.Write([]string{"a"}), errWriterNoTarget)
	assert.ErrorIs(t, zero.Flush(), errWriterNoTarget)
}

func TestNewWriterNilPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewWriter(nil) })
	assert.Panics(t, func() { (&Writer{}).Reset(nil) })
}
