package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/worklog/internal/db"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/testutil"
	"github.com/alexanderramin/worklog/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ tracker.EventStore = (*SQLiteEventRepo)(nil)
	_ tracker.StateStore = (*SQLiteStateRepo)(nil)
	_ EventRepo          = (*SQLiteEventRepo)(nil)
	_ TodoRepo           = (*SQLiteTodoRepo)(nil)
	_ StateRepo          = (*SQLiteStateRepo)(nil)
)

var baseTime = time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

func TestEventRepo_CreateAndGet_RoundTrip(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	running := baseTime.Add(30*time.Minute + 123456789*time.Nanosecond)
	e := testutil.NewTestEvent("Deep focus",
		testutil.WithEventType(domain.EventCodeReview),
		testutil.WithNotes("PR #42"),
		testutil.WithStartTime(baseTime),
		testutil.WithAccumulated(17*time.Minute+3*time.Second+42*time.Nanosecond),
		testutil.WithRunningSince(running),
	)
	require.NoError(t, repo.CreateEvent(ctx, e))

	got, err := repo.GetEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, "Deep focus", got.Title)
	assert.Equal(t, "PR #42", got.Notes)
	assert.Equal(t, domain.EventCodeReview, got.Type)
	assert.True(t, e.StartTime.Equal(got.StartTime))
	assert.True(t, e.EndTime.Equal(got.EndTime))
	assert.False(t, got.IsPaused)
	assert.Equal(t, e.TotalAccumulated, got.TotalAccumulated, "durations round-trip to the nanosecond")
	require.NotNil(t, got.LastStartTime)
	assert.True(t, running.Equal(*got.LastStartTime))
	assert.NoError(t, got.Validate())
}

func TestEventRepo_GetEvent_NotFound(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))

	_, err := repo.GetEvent(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventRepo_UpdateEvent(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e := testutil.NewTestEvent("Draft", testutil.WithStartTime(baseTime), testutil.WithRunningSince(baseTime))
	require.NoError(t, repo.CreateEvent(ctx, e))

	require.NoError(t, e.Finish(baseTime.Add(25*time.Minute)))
	e.Title = "Final"
	require.NoError(t, repo.UpdateEvent(ctx, e))

	got, err := repo.GetEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)
	assert.True(t, got.IsPaused)
	assert.Nil(t, got.LastStartTime)
	assert.Equal(t, 25*time.Minute, got.TotalAccumulated)
	assert.True(t, baseTime.Add(25*time.Minute).Equal(got.EndTime))
}

func TestEventRepo_UpdateEvent_InsertsMissingRow(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e := testutil.NewTestEvent("Never created", testutil.WithStartTime(baseTime))
	require.NoError(t, repo.UpdateEvent(ctx, e))

	got, err := repo.GetEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Never created", got.Title)
}

func TestEventRepo_DeleteEvent(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	e := testutil.NewTestEvent("Gone")
	require.NoError(t, repo.CreateEvent(ctx, e))
	require.NoError(t, repo.DeleteEvent(ctx, e.ID))

	_, err := repo.GetEvent(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, repo.DeleteEvent(ctx, e.ID), "deleting twice is harmless")
}

func TestEventRepo_ListEvents_NewestFirst(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	older := testutil.NewTestEvent("Older", testutil.WithStartTime(baseTime))
	newer := testutil.NewTestEvent("Newer", testutil.WithStartTime(baseTime.Add(2*time.Hour)))
	middle := testutil.NewTestEvent("Middle", testutil.WithStartTime(baseTime.Add(time.Hour+500*time.Millisecond)))
	for _, e := range []*domain.WorkEvent{older, newer, middle} {
		require.NoError(t, repo.CreateEvent(ctx, e))
	}

	list, err := repo.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, middle.ID, list[1].ID)
	assert.Equal(t, older.ID, list[2].ID)
}

func TestEventRepo_ListEvents_OrdersAcrossZones(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	tokyo := time.FixedZone("JST", 9*3600)
	// 08:00 JST is 23:00 UTC the previous day: earlier than baseTime.
	early := testutil.NewTestEvent("Early", testutil.WithStartTime(time.Date(2025, 6, 16, 8, 0, 0, 0, tokyo)))
	late := testutil.NewTestEvent("Late", testutil.WithStartTime(baseTime))
	require.NoError(t, repo.CreateEvent(ctx, late))
	require.NoError(t, repo.CreateEvent(ctx, early))

	list, err := repo.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, late.ID, list[0].ID)
	assert.Equal(t, early.ID, list[1].ID)
}

func TestEventRepo_ListEventsBetween(t *testing.T) {
	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	before := testutil.NewTestEvent("Before", testutil.WithStartTime(baseTime.Add(-24*time.Hour)))
	first := testutil.NewTestEvent("First", testutil.WithStartTime(baseTime))
	second := testutil.NewTestEvent("Second", testutil.WithStartTime(baseTime.Add(3*time.Hour)))
	after := testutil.NewTestEvent("After", testutil.WithStartTime(baseTime.Add(24*time.Hour)))
	for _, e := range []*domain.WorkEvent{second, after, before, first} {
		require.NoError(t, repo.CreateEvent(ctx, e))
	}

	list, err := repo.ListEventsBetween(ctx, baseTime, baseTime.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, list, 2, "upper bound is exclusive")
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestEventRepo_UnknownTypeFallsBackToOthers(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEventRepo(database)
	ctx := context.Background()

	_, err := database.Exec(`INSERT INTO work_events (id, title, start_time, end_time, type)
		VALUES ('legacy', 'Old row', '2025-01-15T10:00:00Z', '2025-01-15T10:45:00Z', 'Lunch')`)
	require.NoError(t, err)

	got, err := repo.GetEvent(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, domain.EventOthers, got.Type)
	assert.True(t, got.IsPaused)
	assert.True(t, time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC).Equal(got.StartTime))
}

func TestEventRepo_WithinTransaction(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	e := testutil.NewTestEvent("Tx")
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteEventRepo(tx).CreateEvent(ctx, e)
	})
	require.NoError(t, err)

	_, err = NewSQLiteEventRepo(database).GetEvent(ctx, e.ID)
	assert.NoError(t, err)
}

func TestEventRepo_ReadsTimesInLocalZone(t *testing.T) {
	saved := time.Local
	time.Local = time.FixedZone("UTC+7", 7*60*60)
	t.Cleanup(func() { time.Local = saved })

	repo := NewSQLiteEventRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	nine := time.Date(2025, 6, 16, 9, 0, 0, 0, time.Local)
	e := testutil.NewTestEvent("Morning", testutil.WithStartTime(nine), testutil.WithRunningSince(nine))
	require.NoError(t, repo.CreateEvent(ctx, e))

	list, err := repo.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got := list[0]

	assert.Equal(t, time.Local, got.StartTime.Location())
	assert.Equal(t, "09:00", got.StartTime.Format("15:04"))
	assert.Equal(t, "10:00", got.EndTime.Format("15:04"))
	require.NotNil(t, got.LastStartTime)
	assert.Equal(t, "09:00", got.LastStartTime.Format("15:04"))
}
