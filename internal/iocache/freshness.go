package iocache

import "time"

// DefaultMaxAge is how long an entry stays usable unless overridden.
const DefaultMaxAge = 7 * 24 * time.Hour

// IsFresh reports whether an entry written at writtenAt may still be served at now.
// The boundary is exclusive: an entry exactly maxAge old is stale.
// A zero writtenAt stands for an absent entry and is never fresh,
// and a non-positive maxAge disables reuse entirely.
func IsFresh(writtenAt, now time.Time, maxAge time.Duration) bool {
	if writtenAt.IsZero() || maxAge <= 0 {
		return false
	}
	return now.Sub(writtenAt) < maxAge
}

// MaxAgeFromDays converts a day count into a max age.
func MaxAgeFromDays(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}
