package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	now := time.Date(2025, 6, 16, 14, 30, 0, 0, time.UTC)
	today := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"", today},
		{"today", today},
		{"Yesterday", today.AddDate(0, 0, -1)},
		{"tomorrow", today.AddDate(0, 0, 1)},
		{"-3", today.AddDate(0, 0, -3)},
		{"+2", today.AddDate(0, 0, 2)},
		{"2025-01-31", time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseDay(tc.in, now)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %s", got)
		})
	}

	for _, bad := range []string{"3", "31/01/2025", "someday"} {
		_, err := parseDay(bad, now)
		assert.Error(t, err, bad)
	}
}

func TestParseClock(t *testing.T) {
	day := time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC)

	got, err := parseClock("09:45", day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 16, 9, 45, 0, 0, time.UTC), got)

	got, err = parseClock("14.05", day)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 16, 14, 5, 0, 0, time.UTC), got)

	for _, bad := range []string{"25:00", "9am", ""} {
		_, err := parseClock(bad, day)
		assert.Error(t, err, bad)
	}
}

func TestEventTypeFlag(t *testing.T) {
	var typ domain.EventType
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v := addEventTypeFlag(fs, domain.EventTask, &typ)

	assert.Equal(t, domain.EventTask, typ)
	assert.Equal(t, "task", v.String())

	require.NoError(t, fs.Parse([]string{"-t", "Code Review"}))
	assert.Equal(t, domain.EventCodeReview, typ)
	assert.Equal(t, "code-review", v.String())
	assert.True(t, fs.Changed("type"))

	assert.Error(t, fs.Parse([]string{"--type", "lunch"}))
	assert.Contains(t, fs.Lookup("type").Usage, "meeting")
}
