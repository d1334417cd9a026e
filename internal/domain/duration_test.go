package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{-5, "0 min"},
		{0, "0 min"},
		{1, "1 min"},
		{59, "59 min"},
		{60, "1h 0m"},
		{61, "1h 1m"},
		{3661, "61h 1m"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatMinutes(tc.minutes), "minutes=%d", tc.minutes)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{-time.Minute, "0 min"},
		{0, "0 min"},
		{59 * time.Second, "0 min"},
		{90 * time.Second, "1 min"},
		{1800 * time.Second, "30 min"},
		{3599 * time.Second, "59 min"},
		{3600 * time.Second, "1h 0m"},
		{3661 * time.Second, "1h 1m"},
		{26*time.Hour + 5*time.Minute, "26h 5m"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDuration(tc.d), "d=%s", tc.d)
	}
}

func TestFormatCompact(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-3 * time.Second, "00:00"},
		{5 * time.Second, "00:05"},
		{65 * time.Second, "01:05"},
		{59*time.Minute + 59*time.Second, "59:59"},
		// Minutes wrap at the hour.
		{time.Hour, "00:00"},
		{time.Hour + 2*time.Minute + 3*time.Second, "02:03"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCompact(tc.d), "d=%s", tc.d)
	}
}

func TestFormatHoursMinutes(t *testing.T) {
	assert.Equal(t, "0h 0m", FormatHoursMinutes(0))
	assert.Equal(t, "0h 30m", FormatHoursMinutes(30*time.Minute))
	assert.Equal(t, "2h 5m", FormatHoursMinutes(2*time.Hour+5*time.Minute+59*time.Second))
}
