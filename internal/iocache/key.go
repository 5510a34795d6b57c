package iocache

import (
	"cmp"
	"fmt"
	"slices"
)

// EntryExt is the file extension of every cache entry.
const EntryExt = ".parquet"

// BuildKey derives the cache key for a dataset kind and a set of periods.
// One period gives "kind_p"; more give "kind_min-max", so only the extremes matter.
// An empty set gives the bare kind; callers reject that case before keying.
func BuildKey[P cmp.Ordered](kind string, periods []P) string {
	switch len(periods) {
	case 0:
		return kind
	case 1:
		return fmt.Sprintf("%s_%v", kind, periods[0])
	default:
		return fmt.Sprintf("%s_%v-%v", kind, slices.Min(periods), slices.Max(periods))
	}
}

// EntryFileName returns the on-disk file name for a key.
func EntryFileName(key string) string {
	return key + EntryExt
}
