package contract

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	assert.Equal(t, FreshValue, GetPlainLabel(true))
	assert.Equal(t, StaleValue, GetPlainLabel(false))
}

func TestGetColorLabel(t *testing.T) {
	// Should contain the plain label whether or not color is enabled
	assert.Contains(t, GetColorLabel(true), FreshValue)
	assert.Contains(t, GetColorLabel(false), StaleValue)
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestIsTerminalWriter(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, IsTerminalWriter(&buf))

	f, err := os.CreateTemp(t.TempDir(), "tty")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.False(t, IsTerminalWriter(f))
}

func TestIsTerminalReader(t *testing.T) {
	assert.False(t, IsTerminalReader(strings.NewReader("y\n")))

	f, err := os.CreateTemp(t.TempDir(), "tty")
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.False(t, IsTerminalReader(f))
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()
	assert.NotEmpty(t, path)
	assert.Contains(t, path, ".gridcache_history.db")

	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("sometimes")
	assert.Error(t, err)
}

func TestParseSeasons(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    []int
		expectError bool
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "2023", expected: []int{2023}},
		{name: "list", input: "2022,2020", expected: []int{2020, 2022}},
		{name: "range", input: "2020-2022", expected: []int{2020, 2021, 2022}},
		{name: "mixed with spaces", input: " 2018 , 2020 - 2021 ", expected: []int{2018, 2020, 2021}},
		{name: "duplicates collapse", input: "2020,2020-2021,2021", expected: []int{2020, 2021}},
		{name: "trailing comma", input: "2020,", expected: []int{2020}},
		{name: "reversed range", input: "2022-2020", expectError: true},
		{name: "not a number", input: "twenty", expectError: true},
		{name: "half range", input: "2020-", expectError: true},
		{name: "too wide", input: "1-5000", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeasons(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatSeasons(t *testing.T) {
	assert.Equal(t, "", FormatSeasons(nil))
	assert.Equal(t, "2023", FormatSeasons([]int{2023}))
	assert.Equal(t, "2020-2022", FormatSeasons([]int{2022, 2020, 2021}))
	assert.Equal(t, "2018, 2020-2021", FormatSeasons([]int{2018, 2020, 2021, 2020}))
}

func TestLogWarnWritesToLogger(t *testing.T) {
	var buf bytes.Buffer
	InitLogger("warn", &buf)
	t.Cleanup(func() { InitLogger("info", nil) })

	LogWarn("cache write failed", errors.New("disk full"))
	out := buf.String()
	assert.Contains(t, out, "cache write failed")
	assert.Contains(t, out, "disk full")
}

func TestInitLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	InitLogger("error", &buf)
	t.Cleanup(func() { InitLogger("info", nil) })

	LogWarn("should be filtered", errors.New("nope"))
	assert.Empty(t, buf.String())

	InitLogger("bogus", &buf)
	Logger.Info().Msg("info passes at fallback level")
	assert.Contains(t, buf.String(), "info passes at fallback level")
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		in       string
		width    int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"(12:55) P.Mahomes pass deep right", 16, "(12:55) P.Mah..."},
		{"tiny width", 3, "tiny width"},
		{"ünïcödé text", 6, "ünï..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, TruncateText(tt.in, tt.width))
	}
}
