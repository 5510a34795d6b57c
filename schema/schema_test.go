package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSizeMB(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected string
	}{
		{"zero", 0, "0.0 MB"},
		{"one megabyte", 1024 * 1024, "1.0 MB"},
		{"one and a half", 1536 * 1024, "1.5 MB"},
		{"small file rounds down", 10 * 1024, "0.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSizeMB(tt.input))
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "-", FormatTimestamp(time.Time{}))

	ts := time.Date(2024, 9, 5, 13, 4, 5, 0, time.Local)
	assert.Equal(t, "2024-09-05 13:04:05", FormatTimestamp(ts))
}

func TestTotalSizeBytes(t *testing.T) {
	entries := []CacheEntryInfo{
		{Name: "weekly_2023.parquet", SizeBytes: 100},
		{Name: "draft_2020.parquet", SizeBytes: 250},
	}
	assert.Equal(t, int64(350), TotalSizeBytes(entries))
	assert.Equal(t, int64(0), TotalSizeBytes(nil))
}

func TestEarliestSeason(t *testing.T) {
	assert.Equal(t, 1999, EarliestSeason(WeeklyKind))
	assert.Equal(t, 1999, EarliestSeason(PlayByPlayKind))
	assert.Equal(t, 1980, EarliestSeason(DraftKind))
}

func TestDatasetKindValidity(t *testing.T) {
	for _, kind := range AllDatasetKinds {
		_, ok := ValidDatasetKinds[kind]
		assert.True(t, ok, "kind %s should be valid", kind)
	}
	_, ok := ValidDatasetKinds[DatasetKind("roster")]
	assert.False(t, ok)
	assert.Equal(t, "play-by-play", PlayByPlayKind.DisplayName())
}

func TestDatasetResultHead(t *testing.T) {
	result := DatasetResult{
		Kind:     DraftKind,
		RowCount: 3,
		Rows:     []DraftPick{{Pick: 1}, {Pick: 2}, {Pick: 3}},
	}

	head := result.Head(2)
	assert.Equal(t, []DraftPick{{Pick: 1}, {Pick: 2}}, head.Rows)
	assert.Equal(t, 3, head.RowCount)
	assert.Len(t, result.Rows, 3, "original result is untouched")

	assert.Len(t, result.Head(10).Rows, 3)
	assert.Nil(t, result.Head(0).Rows)
}
