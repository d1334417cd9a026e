// Package tracker owns the collection of work events and the single active
// event reference. All transitions mutate memory first; the EventStore is a
// downstream mirror whose failures are logged and never returned.
package tracker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/google/uuid"
)

// DefaultSyncTimeout bounds a single calendar push.
const DefaultSyncTimeout = 10 * time.Second

// Tracker is the event tracking state machine.
type Tracker struct {
	mu sync.Mutex

	store       EventStore
	state       StateStore
	calendar    CalendarSync
	clock       Clock
	logger      *slog.Logger
	newID       func() string
	syncTimeout time.Duration

	// events is kept newest-created first.
	events      []*domain.WorkEvent
	activeID    string
	subscribers []chan Change
	pushes      sync.WaitGroup
}

// Option configures a Tracker.
type Option func(*Tracker)

func WithClock(c Clock) Option {
	return func(t *Tracker) { t.clock = c }
}

func WithStateStore(s StateStore) Option {
	return func(t *Tracker) { t.state = s }
}

func WithCalendarSync(c CalendarSync) Option {
	return func(t *Tracker) { t.calendar = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

func WithSyncTimeout(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.syncTimeout = d
		}
	}
}

// WithIDGenerator replaces uuid generation, mainly for tests.
func WithIDGenerator(f func() string) Option {
	return func(t *Tracker) { t.newID = f }
}

// New creates an empty Tracker backed by store. Call Load to populate it.
func New(store EventStore, opts ...Option) *Tracker {
	t := &Tracker{
		store:       store,
		state:       noopStateStore{},
		clock:       SystemClock{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:       func() string { return uuid.New().String() },
		syncTimeout: DefaultSyncTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Now returns the tracker clock's current time.
func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

// Load replaces the in-memory collection with the store's contents and
// restores the active reference. Any running event other than the restored
// active one is stopped at the current time, so at most one event accrues.
// The store is read under the tracker lock so a concurrent transition is
// never overwritten by a stale list.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	loaded, err := t.store.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}
	for _, e := range loaded {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("loading events: %w", err)
		}
	}

	activeID, err := t.state.ActiveEventID(ctx)
	if err != nil {
		t.logger.WarnContext(ctx, "reading active event id", "error", err)
		activeID = ""
	}

	t.events = loaded
	t.activeID = ""
	if activeID != "" && t.findLocked(activeID) != nil {
		t.activeID = activeID
	} else {
		for _, e := range t.events {
			if e.IsRunning() {
				t.activeID = e.ID
				break
			}
		}
	}

	now := t.clock.Now()
	for _, e := range t.events {
		if !e.IsRunning() || e.ID == t.activeID {
			continue
		}
		t.logger.WarnContext(ctx, "stopping stray running event", "event_id", e.ID, "active_id", t.activeID)
		if err := e.Finish(now); err != nil {
			return fmt.Errorf("loading events: %w", err)
		}
		t.persistUpdateLocked(ctx, e)
		t.pushLocked(ctx, e.Clone())
	}

	t.notifyLocked(ChangeLoaded, domain.WorkEvent{}, now)
	return nil
}

// Events returns a snapshot of the collection in collection order.
func (t *Tracker) Events() []domain.WorkEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.WorkEvent, 0, len(t.events))
	for _, e := range t.events {
		out = append(out, e.Clone())
	}
	return out
}

// Active returns a snapshot of the active event, if any.
func (t *Tracker) Active() (domain.WorkEvent, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e := t.activeLocked(); e != nil {
		return e.Clone(), true
	}
	return domain.WorkEvent{}, false
}

// Get returns a snapshot of the event with the given id.
func (t *Tracker) Get(id string) (domain.WorkEvent, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e := t.findLocked(id); e != nil {
		return e.Clone(), true
	}
	return domain.WorkEvent{}, false
}

// StateOf reports the tracking state of the event with the given id.
func (t *Tracker) StateOf(id string) (domain.EventState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.findLocked(id)
	if e == nil {
		return "", false
	}
	switch {
	case e.IsRunning():
		return domain.StateRunning, true
	case e.ID == t.activeID:
		return domain.StatePaused, true
	default:
		return domain.StateStopped, true
	}
}

// ResolveID expands a unique id prefix to a full event id.
func (t *Tracker) ResolveID(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("event %q: %w", prefix, domain.ErrNotFound)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var match string
	for _, e := range t.events {
		if e.ID == prefix {
			return e.ID, nil
		}
		if strings.HasPrefix(e.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("event %q: %w", prefix, domain.ErrAmbiguousID)
			}
			match = e.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("event %q: %w", prefix, domain.ErrNotFound)
	}
	return match, nil
}

// Start stops the active event, if any, and begins tracking a new one.
func (t *Tracker) Start(ctx context.Context, title, notes string, typ domain.EventType) (domain.WorkEvent, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	if _, _, err := t.stopLocked(ctx, now); err != nil {
		return domain.WorkEvent{}, err
	}

	e := domain.NewWorkEvent(t.newID(), title, notes, typ, now)
	t.events = append([]*domain.WorkEvent{&e}, t.events...)
	t.activeID = e.ID

	snapshot := e.Clone()
	t.persist(ctx, "create", e.ID, func() error { return t.store.CreateEvent(ctx, &snapshot) })
	t.persistActiveLocked(ctx)
	t.notifyLocked(ChangeStarted, e, now)
	return e.Clone(), nil
}

// Pause closes the active event's open session. It reports false when there
// is no running active event.
func (t *Tracker) Pause(ctx context.Context) (domain.WorkEvent, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.activeLocked()
	if e == nil || e.IsPaused {
		return domain.WorkEvent{}, false, nil
	}
	now := t.clock.Now()
	if err := e.CloseSession(now); err != nil {
		return domain.WorkEvent{}, false, err
	}

	t.persistUpdateLocked(ctx, e)
	t.notifyLocked(ChangePaused, *e, now)
	return e.Clone(), true, nil
}

// Resume reopens the event with the given id, or the active event when id
// is empty. A different active event is stopped first. Resuming an unknown
// id returns domain.ErrNotFound.
func (t *Tracker) Resume(ctx context.Context, id string) (domain.WorkEvent, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	targetID := id
	if targetID == "" {
		targetID = t.activeID
	}
	if targetID == "" {
		return domain.WorkEvent{}, false, nil
	}
	target := t.findLocked(targetID)
	if target == nil {
		return domain.WorkEvent{}, false, fmt.Errorf("resuming event %s: %w", targetID, domain.ErrNotFound)
	}
	if err := target.Validate(); err != nil {
		return domain.WorkEvent{}, false, err
	}

	now := t.clock.Now()
	if t.activeID != "" && t.activeID != target.ID {
		if _, _, err := t.stopLocked(ctx, now); err != nil {
			return domain.WorkEvent{}, false, err
		}
	}

	if target.IsRunning() && t.activeID == target.ID {
		return target.Clone(), false, nil
	}

	target.OpenSession(now)
	t.activeID = target.ID

	t.persistUpdateLocked(ctx, target)
	t.persistActiveLocked(ctx)
	t.notifyLocked(ChangeResumed, *target, now)
	return target.Clone(), true, nil
}

// Stop finalizes the active event and clears the active reference. The
// stopped event is pushed to the calendar in the background.
func (t *Tracker) Stop(ctx context.Context) (domain.WorkEvent, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopLocked(ctx, t.clock.Now())
}

func (t *Tracker) stopLocked(ctx context.Context, now time.Time) (domain.WorkEvent, bool, error) {
	e := t.activeLocked()
	if e == nil {
		t.activeID = ""
		return domain.WorkEvent{}, false, nil
	}
	if err := e.Finish(now); err != nil {
		return domain.WorkEvent{}, false, err
	}
	t.activeID = ""

	t.persistUpdateLocked(ctx, e)
	t.persistActiveLocked(ctx)
	t.pushLocked(ctx, e.Clone())
	t.notifyLocked(ChangeStopped, *e, now)
	return e.Clone(), true, nil
}

// Delete removes the event with the given id. Unknown ids are ignored.
func (t *Tracker) Delete(ctx context.Context, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexLocked(id)
	if idx < 0 {
		return false
	}
	removed := t.events[idx]
	t.events = append(t.events[:idx], t.events[idx+1:]...)

	wasActive := removed.ID == t.activeID
	if wasActive {
		t.activeID = ""
	}

	t.persist(ctx, "delete", id, func() error { return t.store.DeleteEvent(ctx, id) })
	if wasActive {
		t.persistActiveLocked(ctx)
	}
	t.notifyLocked(ChangeDeleted, *removed, t.clock.Now())
	return true
}

// EventPatch lists the fields Update may replace. Nil fields are kept.
// StartTime is immutable and not patchable; pause state is owned by the
// transitions above.
type EventPatch struct {
	Title            *string
	Notes            *string
	Type             *domain.EventType
	EndTime          *time.Time
	TotalAccumulated *time.Duration
}

// IsEmpty reports whether the patch changes nothing.
func (p EventPatch) IsEmpty() bool {
	return p.Title == nil && p.Notes == nil && p.Type == nil && p.EndTime == nil && p.TotalAccumulated == nil
}

// Update applies patch to the event with the given id. It reports false,
// without error, when the id is unknown.
func (t *Tracker) Update(ctx context.Context, id string, patch EventPatch) (domain.WorkEvent, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.findLocked(id)
	if e == nil {
		return domain.WorkEvent{}, false, nil
	}

	updated := e.Clone()
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Notes != nil {
		updated.Notes = *patch.Notes
	}
	if patch.Type != nil {
		updated.Type = *patch.Type
	}
	if patch.EndTime != nil {
		updated.EndTime = *patch.EndTime
	}
	if patch.TotalAccumulated != nil {
		if *patch.TotalAccumulated < 0 {
			return domain.WorkEvent{}, false, fmt.Errorf("updating event %s: accumulated duration must not be negative", id)
		}
		updated.TotalAccumulated = *patch.TotalAccumulated
	}
	if err := updated.Validate(); err != nil {
		return domain.WorkEvent{}, false, err
	}
	*e = updated

	t.persistUpdateLocked(ctx, e)
	t.notifyLocked(ChangeUpdated, *e, t.clock.Now())
	return e.Clone(), true, nil
}

// Wait blocks until all in-flight calendar pushes have returned.
func (t *Tracker) Wait() {
	t.pushes.Wait()
}

func (t *Tracker) activeLocked() *domain.WorkEvent {
	if t.activeID == "" {
		return nil
	}
	return t.findLocked(t.activeID)
}

func (t *Tracker) findLocked(id string) *domain.WorkEvent {
	if i := t.indexLocked(id); i >= 0 {
		return t.events[i]
	}
	return nil
}

func (t *Tracker) indexLocked(id string) int {
	for i, e := range t.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) persistUpdateLocked(ctx context.Context, e *domain.WorkEvent) {
	snapshot := e.Clone()
	t.persist(ctx, "update", e.ID, func() error { return t.store.UpdateEvent(ctx, &snapshot) })
}

func (t *Tracker) persistActiveLocked(ctx context.Context) {
	id := t.activeID
	if err := t.state.SetActiveEventID(ctx, id); err != nil {
		t.logger.WarnContext(ctx, "persisting active event id failed", "active_id", id, "error", err)
	}
}

func (t *Tracker) persist(ctx context.Context, op, id string, fn func() error) {
	if err := fn(); err != nil {
		t.logger.WarnContext(ctx, "persisting event failed", "op", op, "event_id", id, "error", err)
	}
}

func (t *Tracker) pushLocked(ctx context.Context, e domain.WorkEvent) {
	if t.calendar == nil || !t.calendar.Authenticated() {
		return
	}
	t.pushes.Add(1)
	go func() {
		defer t.pushes.Done()
		pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.syncTimeout)
		defer cancel()
		if err := t.calendar.Push(pushCtx, e); err != nil {
			t.logger.Warn("calendar sync failed", "event_id", e.ID, "error", err)
			return
		}
		t.logger.Debug("calendar sync ok", "event_id", e.ID)
	}()
}
