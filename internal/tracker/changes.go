package tracker

import (
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// ChangeKind names the transition that produced a Change.
type ChangeKind string

const (
	ChangeLoaded  ChangeKind = "loaded"
	ChangeStarted ChangeKind = "started"
	ChangePaused  ChangeKind = "paused"
	ChangeResumed ChangeKind = "resumed"
	ChangeStopped ChangeKind = "stopped"
	ChangeDeleted ChangeKind = "deleted"
	ChangeUpdated ChangeKind = "updated"
)

// Change is delivered to subscribers after every transition. Event is a
// snapshot of the affected event (zero for ChangeLoaded).
type Change struct {
	Kind     ChangeKind
	Event    domain.WorkEvent
	ActiveID string
	At       time.Time
}

// Subscribe registers a buffered observer channel. Notifications are
// dropped when the channel is full.
func (t *Tracker) Subscribe(buffer int) <-chan Change {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Change, buffer)
	t.mu.Lock()
	t.subscribers = append(t.subscribers, ch)
	t.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
func (t *Tracker) Unsubscribe(ch <-chan Change) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, sub := range t.subscribers {
		if sub == ch {
			t.subscribers = append(t.subscribers[:i], t.subscribers[i+1:]...)
			close(sub)
			return
		}
	}
}

// notifyLocked must be called with t.mu held.
func (t *Tracker) notifyLocked(kind ChangeKind, e domain.WorkEvent, now time.Time) {
	c := Change{Kind: kind, Event: e.Clone(), ActiveID: t.activeID, At: now}
	for _, ch := range t.subscribers {
		select {
		case ch <- c:
		default:
			t.logger.Debug("dropping tracker change", "kind", kind, "event_id", e.ID)
		}
	}
}
