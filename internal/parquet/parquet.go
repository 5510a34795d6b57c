// Package parquet encodes dataset rows and fetch history as Parquet using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
)

// Key-value metadata written into every cache entry footer.
const (
	MetaKind      = "gridcache.kind"
	MetaFormat    = "gridcache.format"
	FormatVersion = "1"
)

// ErrKindMismatch is returned when an entry was written for a different dataset kind.
var ErrKindMismatch = errors.New("dataset kind mismatch")

// ErrUnsupportedFormat is returned when an entry carries an unknown format version.
var ErrUnsupportedFormat = errors.New("unsupported entry format")

// EncodeRows serializes rows into a Parquet blob tagged with kind.
// The schema is derived from the struct tags of T.
func EncodeRows[T any](kind string, rows []T) ([]byte, error) {
	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[T](&buf,
		parquet.KeyValueMetadata(MetaKind, kind),
		parquet.KeyValueMetadata(MetaFormat, FormatVersion),
	)

	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("failed to write rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize parquet data: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeRows parses a blob produced by EncodeRows and checks that it was written for kind.
func DecodeRows[T any](kind string, blob []byte) ([]T, error) {
	f, err := openFile(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, err
	}

	format, ok := f.Lookup(MetaFormat)
	if !ok || format != FormatVersion {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if got, _ := f.Lookup(MetaKind); got != kind {
		return nil, fmt.Errorf("%w: want %q, got %q", ErrKindMismatch, kind, got)
	}

	return readFileRows[T](f)
}

// ReadRows reads every row of a Parquet file into T, matching columns by name.
// Columns missing from the file are left as zero values.
func ReadRows[T any](r io.ReaderAt, size int64) ([]T, error) {
	f, err := openFile(r, size)
	if err != nil {
		return nil, err
	}
	return readFileRows[T](f)
}

func readFileRows[T any](f *parquet.File) (rows []T, err error) {
	defer func() {
		if p := recover(); p != nil {
			rows, err = nil, fmt.Errorf("malformed parquet data: %v", p)
		}
	}()

	reader := parquet.NewGenericReader[T](f)
	defer func() { _ = reader.Close() }()

	rows = make([]T, reader.NumRows())
	total := 0
	for total < len(rows) {
		n, readErr := reader.Read(rows[total:])
		total += n
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read rows: %w", readErr)
		}
		if n == 0 {
			break
		}
	}
	if total != len(rows) {
		return nil, fmt.Errorf("short read: got %d of %d rows", total, len(rows))
	}
	return rows, nil
}

// openFile opens Parquet data and converts decoder panics into errors.
func openFile(r io.ReaderAt, size int64) (f *parquet.File, err error) {
	defer func() {
		if p := recover(); p != nil {
			f, err = nil, fmt.Errorf("malformed parquet data: %v", p)
		}
	}()

	f, err = parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("invalid parquet data: %w", err)
	}
	return f, nil
}
