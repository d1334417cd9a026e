package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"earlier today", now.Add(-11 * time.Hour), "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"just after midnight", now.Add(12*time.Hour + time.Minute), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestDayLabel(t *testing.T) {
	now := time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "Today", DayLabel(now, now))
	assert.Equal(t, "Yesterday", DayLabel(now.AddDate(0, 0, -1), now))
	assert.Equal(t, "Mon, Jun 16 2025", DayLabel(now.AddDate(0, 0, -2), now))
}

func TestClockTime(t *testing.T) {
	assert.Equal(t, "09.05", ClockTime(time.Date(2025, 6, 16, 9, 5, 59, 0, time.UTC)))
	assert.Equal(t, "23.30", ClockTime(time.Date(2025, 6, 16, 23, 30, 0, 0, time.UTC)))
}

func TestTimeRange(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	e := testutil.NewTestEvent("Standup",
		testutil.WithStartTime(start),
		testutil.WithEndTime(start.Add(20*time.Minute)),
	)
	assert.Equal(t, "09.00-09.20", TimeRange(*e, domain.StateStopped))
	assert.Equal(t, "09.00-", TimeRange(*e, domain.StatePaused))
	assert.Equal(t, "09.00-", TimeRange(*e, domain.StateRunning))
}

func TestStateFor(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	running := testutil.NewTestEvent("a", testutil.WithEventID("run"), testutil.WithRunningSince(start))
	paused := testutil.NewTestEvent("b", testutil.WithEventID("pause"), testutil.WithAccumulated(time.Minute))
	stopped := testutil.NewTestEvent("c", testutil.WithEventID("stop"), testutil.WithAccumulated(time.Minute))

	assert.Equal(t, domain.StateRunning, StateFor(*running, "run"))
	assert.Equal(t, domain.StatePaused, StateFor(*paused, "pause"))
	assert.Equal(t, domain.StateStopped, StateFor(*stopped, "pause"))
	assert.Equal(t, domain.StateStopped, StateFor(domain.WorkEvent{IsPaused: true}, ""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "a longer…", Truncate("a longer title", 9))
	assert.Equal(t, "anything", Truncate("anything", 0))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f2a9c1e", ShortID("3f2a9c1e-77aa-4c4e-9a55-0d1f6b1e2c33"))
	assert.Equal(t, "abc", ShortID("abc"))
	assert.Equal(t, "3f2a9c1e", stripANSI(TruncID("3f2a9c1e-77aa")))
}

func TestRenderTableRight_AlignsNumericColumn(t *testing.T) {
	out := stripANSI(RenderTableRight([]string{"NAME", "MIN"}, [][]string{
		{"a", "5"},
		{"bb", "120"},
	}, 1))
	assert.Equal(t, "NAME  MIN\n────  ───\na       5\nbb    120\n", out)
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "BY TYPE\n───────", stripANSI(Header("By type")))
}
