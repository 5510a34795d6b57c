package iocache

import (
	"github.com/huangsam/gridcache/internal/contract"
	"github.com/huangsam/gridcache/internal/parquet"
)

// ReadEntry loads and decodes the rows stored under key.
// A blob that cannot be decoded as kind yields a CorruptEntryError.
func ReadEntry[T any](store contract.CacheStore, kind, key string) ([]T, error) {
	blob, err := store.Read(key)
	if err != nil {
		return nil, err
	}
	rows, err := parquet.DecodeRows[T](kind, blob)
	if err != nil {
		return nil, &CorruptEntryError{Key: key, Err: err}
	}
	return rows, nil
}

// WriteEntry encodes rows as kind and stores them under key.
func WriteEntry[T any](store contract.CacheStore, kind, key string, rows []T) error {
	blob, err := parquet.EncodeRows(kind, rows)
	if err != nil {
		return &StorageError{Op: "encode", Path: store.Path(key), Err: err}
	}
	return store.Write(key, blob)
}
