package iocache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsFresh(t *testing.T) {
	written := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	maxAge := 7 * 24 * time.Hour

	tests := []struct {
		name      string
		writtenAt time.Time
		now       time.Time
		maxAge    time.Duration
		want      bool
	}{
		{"just written", written, written, maxAge, true},
		{"one nanosecond before expiry", written, written.Add(maxAge - time.Nanosecond), maxAge, true},
		{"exactly max age old", written, written.Add(maxAge), maxAge, false},
		{"well past expiry", written, written.Add(10 * 24 * time.Hour), maxAge, false},
		{"absent entry", time.Time{}, written, maxAge, false},
		{"zero max age", written, written, 0, false},
		{"negative max age", written, written, -time.Hour, false},
		{"written in the future", written.Add(time.Hour), written, maxAge, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFresh(tt.writtenAt, tt.now, tt.maxAge))
		})
	}
}

func TestMaxAgeFromDays(t *testing.T) {
	assert.Equal(t, DefaultMaxAge, MaxAgeFromDays(7))
	assert.Equal(t, time.Duration(0), MaxAgeFromDays(0))
	assert.Equal(t, 24*time.Hour, MaxAgeFromDays(1))
}
