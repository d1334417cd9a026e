package testutil

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/alexanderramin/worklog/internal/domain"
)

// ErrStoreDown is returned by FailingEventStore for every call.
var ErrStoreDown = errors.New("store unavailable")

// MemoryEventStore is an in-memory EventStore and StateStore that records
// the calls it receives.
type MemoryEventStore struct {
	mu       sync.Mutex
	events   map[string]domain.WorkEvent
	activeID string

	Creates int
	Updates int
	Deletes int
}

func NewMemoryEventStore(seed ...*domain.WorkEvent) *MemoryEventStore {
	s := &MemoryEventStore{events: make(map[string]domain.WorkEvent)}
	for _, e := range seed {
		s.events[e.ID] = e.Clone()
	}
	return s
}

func (s *MemoryEventStore) CreateEvent(_ context.Context, e *domain.WorkEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[e.ID]; ok {
		return fmt.Errorf("event %s already exists", e.ID)
	}
	s.events[e.ID] = e.Clone()
	s.Creates++
	return nil
}

func (s *MemoryEventStore) UpdateEvent(_ context.Context, e *domain.WorkEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.ID] = e.Clone()
	s.Updates++
	return nil
}

func (s *MemoryEventStore) DeleteEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, id)
	s.Deletes++
	return nil
}

func (s *MemoryEventStore) ListEvents(_ context.Context) ([]*domain.WorkEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.WorkEvent, 0, len(s.events))
	for _, e := range s.events {
		c := e.Clone()
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

// Stored returns the persisted copy of an event.
func (s *MemoryEventStore) Stored(id string) (domain.WorkEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	return e.Clone(), ok
}

func (s *MemoryEventStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func (s *MemoryEventStore) ActiveEventID(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID, nil
}

func (s *MemoryEventStore) SetActiveEventID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeID = id
	return nil
}

// FailingEventStore fails every write and every state call. ListEvents
// returns an empty collection.
type FailingEventStore struct{}

func (FailingEventStore) CreateEvent(context.Context, *domain.WorkEvent) error { return ErrStoreDown }
func (FailingEventStore) UpdateEvent(context.Context, *domain.WorkEvent) error { return ErrStoreDown }
func (FailingEventStore) DeleteEvent(context.Context, string) error            { return ErrStoreDown }
func (FailingEventStore) ListEvents(context.Context) ([]*domain.WorkEvent, error) {
	return nil, nil
}
func (FailingEventStore) ActiveEventID(context.Context) (string, error)  { return "", ErrStoreDown }
func (FailingEventStore) SetActiveEventID(context.Context, string) error { return ErrStoreDown }

// RecordingSync is a CalendarSync that records pushed events.
type RecordingSync struct {
	mu     sync.Mutex
	Auth   bool
	Err    error
	Pushed []domain.WorkEvent
	// Block, when non-nil, is received from before each push returns.
	Block chan struct{}
}

func (r *RecordingSync) Authenticated() bool { return r.Auth }

func (r *RecordingSync) Push(ctx context.Context, e domain.WorkEvent) error {
	if r.Block != nil {
		select {
		case <-r.Block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Pushed = append(r.Pushed, e)
	return r.Err
}

func (r *RecordingSync) PushedEvents() []domain.WorkEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.WorkEvent(nil), r.Pushed...)
}
