package tracker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("evt-%02d", n)
	}
}

func newTestTracker(t *testing.T, opts ...Option) (*Tracker, *testutil.MemoryEventStore, *testutil.FakeClock) {
	t.Helper()
	store := testutil.NewMemoryEventStore()
	clock := testutil.NewFakeClock(t0)
	base := []Option{WithClock(clock), WithStateStore(store), WithIDGenerator(sequentialIDs())}
	tr := New(store, append(base, opts...)...)
	require.NoError(t, tr.Load(context.Background()))
	return tr, store, clock
}

func elapsed(t *testing.T, e domain.WorkEvent, now time.Time) time.Duration {
	t.Helper()
	d, err := e.Elapsed(now)
	require.NoError(t, err)
	return d
}

func TestStart_CreatesRunningActiveEvent(t *testing.T) {
	tr, store, _ := newTestTracker(t)
	ctx := context.Background()

	e, err := tr.Start(ctx, "Standup", "daily sync", domain.EventMeeting)
	require.NoError(t, err)

	assert.Equal(t, "Standup", e.Title)
	assert.Equal(t, "daily sync", e.Notes)
	assert.Equal(t, domain.EventMeeting, e.Type)
	assert.False(t, e.IsPaused)
	require.NotNil(t, e.LastStartTime)
	assert.Equal(t, t0, *e.LastStartTime)
	assert.Equal(t, t0, e.StartTime)
	assert.Equal(t, t0.Add(time.Hour), e.EndTime)
	assert.Zero(t, e.TotalAccumulated)

	active, ok := tr.Active()
	require.True(t, ok)
	assert.Equal(t, e.ID, active.ID)

	stored, ok := store.Stored(e.ID)
	require.True(t, ok, "start must persist the new event")
	assert.Equal(t, e.Title, stored.Title)
	assert.Equal(t, 1, store.Creates)

	activeID, _ := store.ActiveEventID(ctx)
	assert.Equal(t, e.ID, activeID)
}

func TestStart_InsertsAtFront(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	ctx := context.Background()

	a, err := tr.Start(ctx, "A", "", domain.EventTask)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	b, err := tr.Start(ctx, "B", "", domain.EventTask)
	require.NoError(t, err)

	events := tr.Events()
	require.Len(t, events, 2)
	assert.Equal(t, b.ID, events[0].ID)
	assert.Equal(t, a.ID, events[1].ID)
}

func TestStart_StopsPreviousActive(t *testing.T) {
	tr, store, clock := newTestTracker(t)
	ctx := context.Background()

	a, err := tr.Start(ctx, "A", "", domain.EventTask)
	require.NoError(t, err)
	b, err := tr.Start(ctx, "B", "", domain.EventTask)
	require.NoError(t, err)

	events := tr.Events()
	require.Len(t, events, 2, "collection holds both events")

	active, ok := tr.Active()
	require.True(t, ok)
	assert.Equal(t, b.ID, active.ID, "only B is active")

	prevA, ok := tr.Get(a.ID)
	require.True(t, ok)
	assert.True(t, prevA.IsPaused, "A is stopped, not running")
	assert.Nil(t, prevA.LastStartTime)
	assert.Equal(t, t0, prevA.EndTime, "A end time finalized at the start of B")
	assert.Zero(t, elapsed(t, prevA, clock.Now()))

	state, _ := tr.StateOf(a.ID)
	assert.Equal(t, domain.StateStopped, state)
	state, _ = tr.StateOf(b.ID)
	assert.Equal(t, domain.StateRunning, state)

	storedA, _ := store.Stored(a.ID)
	assert.True(t, storedA.IsPaused)
	assert.Equal(t, t0, storedA.EndTime)
}

func TestStart_PreemptsPausedActive(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	ctx := context.Background()

	a, err := tr.Start(ctx, "A", "", domain.EventTask)
	require.NoError(t, err)
	clock.Advance(10 * time.Minute)
	_, _, err = tr.Pause(ctx)
	require.NoError(t, err)
	stopAt := clock.Advance(5 * time.Minute)

	_, err = tr.Start(ctx, "B", "", domain.EventTask)
	require.NoError(t, err)

	prevA, _ := tr.Get(a.ID)
	assert.Equal(t, 10*time.Minute, prevA.TotalAccumulated, "paused time is not counted")
	assert.Equal(t, stopAt, prevA.EndTime)
}

func TestPause_FoldsOpenSession(t *testing.T) {
	tr, store, clock := newTestTracker(t)
	ctx := context.Background()

	e, err := tr.Start(ctx, "Task", "", domain.EventTask)
	require.NoError(t, err)
	clock.Advance(300 * time.Second)

	paused, ok, err := tr.Pause(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, paused.IsPaused)
	assert.Nil(t, paused.LastStartTime)
	assert.Equal(t, 300*time.Second, paused.TotalAccumulated)

	active, ok := tr.Active()
	require.True(t, ok, "paused event remains the active reference")
	assert.Equal(t, e.ID, active.ID)

	state, _ := tr.StateOf(e.ID)
	assert.Equal(t, domain.StatePaused, state)

	stored, _ := store.Stored(e.ID)
	assert.Equal(t, 300*time.Second, stored.TotalAccumulated)

	// Duration is frozen while paused.
	later := clock.Advance(time.Hour)
	assert.Equal(t, 300*time.Second, elapsed(t, active, later))
}

func TestPause_NoOps(t *testing.T) {
	tr, store, clock := newTestTracker(t)
	ctx := context.Background()

	_, ok, err := tr.Pause(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "pause without an active event is a no-op")

	_, err = tr.Start(ctx, "Task", "", domain.EventTask)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, ok, err = tr.Pause(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	updates := store.Updates

	clock.Advance(time.Minute)
	again, ok, err := tr.Pause(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "pausing a paused event is a no-op")
	assert.Zero(t, again)
	assert.Equal(t, updates, store.Updates)
}

func TestPauseResume_PreservesDuration(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.Start(ctx, "Task", "", domain.EventTask)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		now := clock.Advance(time.Duration(i+1) * time.Minute)
		before, _ := tr.Active()
		durBefore := elapsed(t, before, now)

		_, _, err := tr.Pause(ctx)
		require.NoError(t, err)
		_, _, err = tr.Resume(ctx, "")
		require.NoError(t, err)

		after, _ := tr.Active()
		assert.Equal(t, durBefore, elapsed(t, after, now), "cycle %d", i)
	}
}

func TestResume_DefaultsToActive(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	ctx := context.Background()

	e, err := tr.Start(ctx, "Task", "", domain.EventTask)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, _, err = tr.Pause(ctx)
	require.NoError(t, err)

	resumeAt := clock.Advance(time.Minute)
	resumed, ok, err := tr.Resume(ctx, "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, e.ID, resumed.ID)
	assert.False(t, resumed.IsPaused)
	require.NotNil(t, resumed.LastStartTime)
	assert.Equal(t, resumeAt, *resumed.LastStartTime)
}

func TestResume_NoActiveIsNoOp(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	_, ok, err := tr.Resume(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResume_RunningActiveIsNoOp(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	ctx := context.Background()

	_, err := tr.Start(ctx, "Task", "", domain.EventTask)
	require.NoError(t, err)
	now := clock.Advance(10 * time.Minute)

	e, ok, err := tr.Resume(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 10*time.Minute, elapsed(t, e, now), "open session is not reset")
}

func TestResume_UnknownIDIsNotFound(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	_, _, err := tr.Resume(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResume_DifferentEventStopsActive(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	ctx := context.Background()

	a, err := tr.Start(ctx, "A", "", domain.EventTask)
	require.NoError(t, err)
	clock.Advance(5 * time.Minute)
	b, err := tr.Start(ctx, "B", "", domain.EventMeeting)
	require.NoError(t, err)
	switchAt := clock.Advance(7 * time.Minute)

	resumed, ok, err := tr.Resume(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, a.ID, resumed.ID)
	assert.Equal(t, 5*time.Minute, resumed.TotalAccumulated)

	active, _ := tr.Active()
	assert.Equal(t, a.ID, active.ID)

	stoppedB, _ := tr.Get(b.ID)
	assert.True(t, stoppedB.IsPaused)
	assert.Equal(t, switchAt, stoppedB.EndTime)
	assert.Equal(t, 7*time.Minute, stoppedB.TotalAccumulated)

	running := 0
	for _, e := range tr.Events() {
		if e.IsRunning() {
			running++
		}
	}
	assert.Equal(t, 1, running, "only one event accrues time")
}

func TestStop_FoldsSessionAndClearsActive(t *testing.T) {
	tr, store, clock := newTestTracker(t)
	ctx := context.Background()

	e, err := tr.Start(ctx, "Task", "", domain.EventTask)
	require.NoError(t, err)
	before := e.TotalAccumulated
	stopAt := clock.Advance(42 * time.Minute)

	stopped, ok, err := tr.Stop(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, before+stopAt.Sub(*e.LastStartTime), stopped.TotalAccumulated)
	assert.Nil(t, stopped.LastStartTime)
	assert.True(t, stopped.IsPaused)
	assert.Equal(t, stopAt, stopped.EndTime)

	_, ok = tr.Active()
	assert.False(t, ok)

	activeID, _ := store.ActiveEventID(ctx)
	assert.Empty(t, activeID)

	_, ok, err = tr.Stop(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "stop without an active event is a no-op")
}

func TestScenario_PauseResumeStop(t *testing.T) {
	tr, _, clock := newTestTracker(t)
	ctx := context.Background()

	e, err := tr.Start(ctx, "Standup", "", domain.EventMeeting)
	require.NoError(t, err)

	clock.Set(t0.Add(300 * time.Second))
	_, _, err = tr.Pause(ctx)
	require.NoError(t, err)

	clock.Set(t0.Add(600 * time.Second))
	_, _, err = tr.Resume(ctx, "")
	require.NoError(t, err)

	clock.Set(t0.Add(900 * time.Second))
	_, _, err = tr.Stop(ctx)
	require.NoError(t, err)

	final, ok := tr.Get(e.ID)
	require.True(t, ok)
	assert.Equal(t, 600*time.Second, final.TotalAccumulated)
	assert.True(t, final.IsPaused)
	assert.Equal(t, t0.Add(900*time.Second), final.EndTime)
}

func TestStop_PushesToCalendarWhenAuthenticated(t *testing.T) {
	cal := &testutil.RecordingSync{Auth: true}
	tr, _, clock := newTestTracker(t, WithCalendarSync(cal))
	ctx := context.Background()

	e, err := tr.Start(ctx, "Review", "", domain.EventCodeReview)
	require.NoError(t, err)
	clock.Advance(20 * time.Minute)
	_, _, err = tr.Stop(ctx)
	require.NoError(t, err)
	tr.Wait()

	pushed := cal.PushedEvents()
	require.Len(t, pushed, 1)
	assert.Equal(t, e.ID, pushed[0].ID)
	assert.Equal(t, 20*time.Minute, pushed[0].TotalAccumulated)
}

func TestStop_SkipsCalendarWhenUnauthenticated(t *testing.T) {
	cal := &testutil.RecordingSync{Auth: false}
	tr, _, _ := newTestTracker(t, WithCalendarSync(cal))
	ctx := context.Background()

	_, err := tr.Start(ctx, "Task", "", domain.EventTask)
	require.NoError(t, err)
	_, _, err = tr.Stop(ctx)
	require.NoError(t, err)
	tr.Wait()
	assert.Empty(t, cal.PushedEvents())
}

func TestStop_CalendarFailureDoesNotAffectState(t *testing.T) {
	cal := &testutil.RecordingSync{Auth: true, Err: fmt.Errorf("calendar down")}
	tr, _, _ := newTestTracker(t, WithCalendarSync(cal))
	ctx := context.Background()

	e, err := tr.Start(ctx, "Task", "", domain.EventTask)
	require.NoError(t, err)
	_, ok, err := tr.Stop(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	tr.Wait()

	got, _ := tr.Get(e.ID)
	assert.True(t, got.IsPaused)
	_, ok = tr.Active()
	assert.False(t, ok)
}

func TestStop_DoesNotBlockOnCalendar(t *testing.T) {
	cal := &testutil.RecordingSync{Auth: true, Block: make(chan struct{})}
	tr, _, _ := newTestTracker(t, WithCalendarSync(cal))
	ctx := context.Background()

	_, err := tr.Start(ctx, "Task", "", domain.EventTask)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		_, _, _ = tr.Stop(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stop blocked on calendar push")
	}

	close(cal.Block)
	tr.Wait()
	assert.Len(t, cal.PushedEvents(), 1)
}

func TestDelete_ActiveClearsReference(t *testing.T) {
	tr, store, _ := newTestTracker(t)
	ctx := context.Background()

	e, err := tr.Start(ctx, "Task", "", domain.EventTask)
	require.NoError(t, err)

	assert.True(t, tr.Delete(ctx, e.ID))
	_, ok := tr.Active()
	assert.False(t, ok)
	assert.Empty(t, tr.Events())
	assert.Equal(t, 0, store.Len())

	activeID, _ := store.ActiveEventID(ctx)
	assert.Empty(t, activeID)
}

func TestDelete_OtherKeepsActive(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()

	a, err := tr.Start(ctx, "A", "", domain.EventTask)
	require.NoError(t, err)
	b, err := tr.Start(ctx, "B", "", domain.EventTask)
	require.NoError(t, err)

	assert.True(t, tr.Delete(ctx, a.ID))
	active, ok := tr.Active()
	require.True(t, ok)
	assert.Equal(t, b.ID, active.ID)
	assert.Len(t, tr.Events(), 1)
}

func TestDelete_MissingIsNoOp(t *testing.T) {
	tr, store, _ := newTestTracker(t)
	assert.False(t, tr.Delete(context.Background(), "missing"))
	assert.Equal(t, 0, store.Deletes)
}

func TestUpdate_PatchesFieldsAndKeepsTrackingState(t *testing.T) {
	tr, store, clock := newTestTracker(t)
	ctx := context.Background()

	e, err := tr.Start(ctx, "Draft", "", domain.EventTask)
	require.NoError(t, err)
	clock.Advance(3 * time.Minute)

	title := "Design review"
	notes := "with platform team"
	typ := domain.EventMeeting
	updated, ok, err := tr.Update(ctx, e.ID, EventPatch{Title: &title, Notes: &notes, Type: &typ})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, title, updated.Title)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, typ, updated.Type)
	assert.False(t, updated.IsPaused, "tracking state preserved")
	require.NotNil(t, updated.LastStartTime)
	assert.Equal(t, t0, *updated.LastStartTime)
	assert.Equal(t, e.StartTime, updated.StartTime)

	active, _ := tr.Active()
	assert.Equal(t, title, active.Title, "active reference reflects the update")

	stored, _ := store.Stored(e.ID)
	assert.Equal(t, title, stored.Title)
}

func TestUpdate_AccumulatedAndEndTime(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()

	e, err := tr.Start(ctx, "Task", "", domain.EventTask)
	require.NoError(t, err)
	_, _, err = tr.Stop(ctx)
	require.NoError(t, err)

	total := 25 * time.Minute
	end := t0.Add(25 * time.Minute)
	updated, ok, err := tr.Update(ctx, e.ID, EventPatch{TotalAccumulated: &total, EndTime: &end})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, total, updated.TotalAccumulated)
	assert.Equal(t, end, updated.EndTime)

	negative := -time.Minute
	_, _, err = tr.Update(ctx, e.ID, EventPatch{TotalAccumulated: &negative})
	assert.Error(t, err)
}

func TestUpdate_MissingIsNoOp(t *testing.T) {
	tr, store, _ := newTestTracker(t)
	title := "x"
	_, ok, err := tr.Update(context.Background(), "missing", EventPatch{Title: &title})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Updates)
}

func TestPersistenceFailuresAreSwallowed(t *testing.T) {
	store := testutil.FailingEventStore{}
	clock := testutil.NewFakeClock(t0)
	tr := New(store, WithClock(clock), WithStateStore(store))
	ctx := context.Background()
	require.NoError(t, tr.Load(ctx))

	e, err := tr.Start(ctx, "Task", "", domain.EventTask)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, ok, err := tr.Pause(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = tr.Resume(ctx, "")
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = tr.Stop(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, tr.Delete(ctx, e.ID))
}

func TestLoad_RestoresPausedActiveFromState(t *testing.T) {
	paused := testutil.NewTestEvent("Paused", testutil.WithStartTime(t0), testutil.WithAccumulated(5*time.Minute))
	older := testutil.NewTestEvent("Older", testutil.WithStartTime(t0.Add(-time.Hour)), testutil.WithAccumulated(time.Minute))
	store := testutil.NewMemoryEventStore(paused, older)
	require.NoError(t, store.SetActiveEventID(context.Background(), paused.ID))

	tr := New(store, WithStateStore(store), WithClock(testutil.NewFakeClock(t0.Add(time.Hour))))
	require.NoError(t, tr.Load(context.Background()))

	active, ok := tr.Active()
	require.True(t, ok)
	assert.Equal(t, paused.ID, active.ID)
	assert.Len(t, tr.Events(), 2)
	assert.Equal(t, paused.ID, tr.Events()[0].ID, "newest first")
}

func TestLoad_FallsBackToRunningEvent(t *testing.T) {
	running := testutil.NewTestEvent("Running", testutil.WithStartTime(t0), testutil.WithRunningSince(t0))
	store := testutil.NewMemoryEventStore(running)

	tr := New(store, WithStateStore(store))
	require.NoError(t, tr.Load(context.Background()))

	active, ok := tr.Active()
	require.True(t, ok)
	assert.Equal(t, running.ID, active.ID)
}

func TestLoad_StopsStrayRunningEvents(t *testing.T) {
	active := testutil.NewTestEvent("Local", testutil.WithStartTime(t0), testutil.WithRunningSince(t0))
	stray := testutil.NewTestEvent("Imported", testutil.WithStartTime(t0.Add(-time.Hour)), testutil.WithRunningSince(t0.Add(-30*time.Minute)))
	store := testutil.NewMemoryEventStore(active, stray)
	require.NoError(t, store.SetActiveEventID(context.Background(), active.ID))

	clock := testutil.NewFakeClock(t0.Add(10 * time.Minute))
	tr := New(store, WithStateStore(store), WithClock(clock), WithIDGenerator(sequentialIDs()))
	require.NoError(t, tr.Load(context.Background()))

	got, ok := tr.Active()
	require.True(t, ok)
	assert.Equal(t, active.ID, got.ID)

	state, ok := tr.StateOf(stray.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StateStopped, state)

	stored, ok := store.Stored(stray.ID)
	require.True(t, ok)
	assert.True(t, stored.IsPaused)
	assert.Equal(t, 40*time.Minute, stored.TotalAccumulated)
	assert.Equal(t, clock.Now(), stored.EndTime)

	clock.Advance(10 * time.Minute)
	_, err := tr.Start(context.Background(), "New", "", domain.EventTask)
	require.NoError(t, err)

	running := 0
	for _, e := range tr.Events() {
		if e.IsRunning() {
			running++
		}
	}
	assert.Equal(t, 1, running)
}

func TestLoad_StrayRunningWithoutActiveReference(t *testing.T) {
	newer := testutil.NewTestEvent("Newer", testutil.WithStartTime(t0), testutil.WithRunningSince(t0))
	older := testutil.NewTestEvent("Older", testutil.WithStartTime(t0.Add(-time.Hour)), testutil.WithRunningSince(t0.Add(-time.Hour)))
	store := testutil.NewMemoryEventStore(newer, older)

	tr := New(store, WithStateStore(store), WithClock(testutil.NewFakeClock(t0.Add(time.Minute))))
	require.NoError(t, tr.Load(context.Background()))

	got, ok := tr.Active()
	require.True(t, ok)
	assert.Equal(t, newer.ID, got.ID)
	state, _ := tr.StateOf(older.ID)
	assert.Equal(t, domain.StateStopped, state)
}

// blockingStore holds ListEvents open until released.
type blockingStore struct {
	*testutil.MemoryEventStore
	entered chan struct{}
	release chan struct{}
}

func (s *blockingStore) ListEvents(ctx context.Context) ([]*domain.WorkEvent, error) {
	close(s.entered)
	<-s.release
	return s.MemoryEventStore.ListEvents(ctx)
}

func TestLoad_DoesNotLoseConcurrentStart(t *testing.T) {
	mem := testutil.NewMemoryEventStore()
	store := &blockingStore{MemoryEventStore: mem, entered: make(chan struct{}), release: make(chan struct{})}
	tr := New(store, WithStateStore(mem), WithClock(testutil.NewFakeClock(t0)), WithIDGenerator(sequentialIDs()))
	ctx := context.Background()

	loaded := make(chan error, 1)
	go func() { loaded <- tr.Load(ctx) }()
	<-store.entered

	started := make(chan error, 1)
	go func() {
		_, err := tr.Start(ctx, "Concurrent", "", domain.EventTask)
		started <- err
	}()

	select {
	case <-started:
		t.Fatal("start completed while load was reading the store")
	case <-time.After(50 * time.Millisecond):
	}

	close(store.release)
	require.NoError(t, <-loaded)
	require.NoError(t, <-started)

	active, ok := tr.Active()
	require.True(t, ok)
	assert.Equal(t, "Concurrent", active.Title)
	assert.Len(t, tr.Events(), 1)
}

func TestLoad_RejectsInvariantViolation(t *testing.T) {
	broken := testutil.NewTestEvent("Broken")
	broken.IsPaused = false
	broken.LastStartTime = nil
	store := testutil.NewMemoryEventStore(broken)

	err := New(store).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
}

func TestResolveID(t *testing.T) {
	a := testutil.NewTestEvent("A", testutil.WithEventID("abc123"))
	b := testutil.NewTestEvent("B", testutil.WithEventID("abd456"))
	tr := New(testutil.NewMemoryEventStore(a, b))
	require.NoError(t, tr.Load(context.Background()))

	id, err := tr.ResolveID("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)

	_, err = tr.ResolveID("ab")
	assert.ErrorIs(t, err, domain.ErrAmbiguousID)

	_, err = tr.ResolveID("zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubscribe_ReceivesChanges(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()
	ch := tr.Subscribe(8)

	e, err := tr.Start(ctx, "Task", "", domain.EventTask)
	require.NoError(t, err)
	_, _, err = tr.Pause(ctx)
	require.NoError(t, err)
	_, _, err = tr.Stop(ctx)
	require.NoError(t, err)

	var kinds []ChangeKind
	for i := 0; i < 3; i++ {
		c := <-ch
		assert.Equal(t, e.ID, c.Event.ID)
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []ChangeKind{ChangeStarted, ChangePaused, ChangeStopped}, kinds)

	tr.Unsubscribe(ch)
	_, open := <-ch
	assert.False(t, open)
}

func TestSubscribe_FullChannelDoesNotBlock(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()
	_ = tr.Subscribe(1)

	for i := 0; i < 5; i++ {
		_, err := tr.Start(ctx, fmt.Sprintf("T%d", i), "", domain.EventTask)
		require.NoError(t, err)
	}
	assert.Len(t, tr.Events(), 5)
}

func TestEvents_ReturnsSnapshots(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	_, err := tr.Start(context.Background(), "Task", "", domain.EventTask)
	require.NoError(t, err)

	events := tr.Events()
	events[0].Title = "mutated"
	*events[0].LastStartTime = t0.Add(time.Hour)

	fresh := tr.Events()
	assert.Equal(t, "Task", fresh[0].Title)
	assert.Equal(t, t0, *fresh[0].LastStartTime)
}
