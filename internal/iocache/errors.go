package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/gridcache/internal/contract"
)

// ErrNoPeriods is wrapped by FetchError when a request names no periods.
var ErrNoPeriods = errors.New("invalid period range: no periods requested")

// ErrUnknownKind is wrapped by FetchError for an unrecognized dataset kind.
var ErrUnknownKind = errors.New("unknown dataset kind")

// FetchError reports that remote data was unavailable or malformed.
type FetchError struct {
	Kind    string
	Periods []int
	Err     error
}

func (e *FetchError) Error() string {
	if len(e.Periods) == 0 {
		return fmt.Sprintf("fetch %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("fetch %s for seasons %s: %v", e.Kind, contract.FormatSeasons(e.Periods), e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StorageError reports a write or purge failure on the cache root.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NotFoundError reports a read of a key with no entry.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cache entry %q not found", e.Key)
}

// CorruptEntryError reports an entry that exists but cannot be decoded.
type CorruptEntryError struct {
	Key string
	Err error
}

func (e *CorruptEntryError) Error() string {
	return fmt.Sprintf("cache entry %q is corrupt: %v", e.Key, e.Err)
}

func (e *CorruptEntryError) Unwrap() error { return e.Err }

// IsCacheMiss reports whether err is a read-time fault the manager treats as a miss.
func IsCacheMiss(err error) bool {
	var nf *NotFoundError
	var ce *CorruptEntryError
	return errors.As(err, &nf) || errors.As(err, &ce)
}
