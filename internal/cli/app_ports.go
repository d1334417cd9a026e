package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/tracker"
)

// Tracker is the tracking surface the CLI drives. Implemented by
// *tracker.Tracker.
type Tracker interface {
	Now() time.Time
	Load(ctx context.Context) error
	Events() []domain.WorkEvent
	Active() (domain.WorkEvent, bool)
	Get(id string) (domain.WorkEvent, bool)
	StateOf(id string) (domain.EventState, bool)
	ResolveID(prefix string) (string, error)

	Start(ctx context.Context, title, notes string, typ domain.EventType) (domain.WorkEvent, error)
	Pause(ctx context.Context) (domain.WorkEvent, bool, error)
	Resume(ctx context.Context, id string) (domain.WorkEvent, bool, error)
	Stop(ctx context.Context) (domain.WorkEvent, bool, error)
	Delete(ctx context.Context, id string) bool
	Update(ctx context.Context, id string, patch tracker.EventPatch) (domain.WorkEvent, bool, error)

	Subscribe(buffer int) <-chan tracker.Change
	Unsubscribe(ch <-chan tracker.Change)
	Wait()
}

var _ Tracker = (*tracker.Tracker)(nil)

// activeID returns the id of the active event, or "" when idle.
func (a *App) activeID() string {
	if e, ok := a.Tracker.Active(); ok {
		return e.ID
	}
	return ""
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) refreshInterval() time.Duration {
	if a.RefreshInterval <= 0 {
		return time.Second
	}
	return a.RefreshInterval
}
