package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/importer"
	"github.com/alexanderramin/worklog/internal/summary"
)

// EventStarter begins tracking a new event. Implemented by *tracker.Tracker.
type EventStarter interface {
	Start(ctx context.Context, title, notes string, typ domain.EventType) (domain.WorkEvent, error)
}

// EventSource exposes the tracker's in-memory collection. Implemented by
// *tracker.Tracker.
type EventSource interface {
	Events() []domain.WorkEvent
	Now() time.Time
}

type TodoService interface {
	Add(ctx context.Context, t *domain.TodoItem) error
	// Get accepts a full id or a unique id prefix.
	Get(ctx context.Context, id string) (*domain.TodoItem, error)
	ListForDate(ctx context.Context, day time.Time) ([]*domain.TodoItem, error)
	Update(ctx context.Context, t *domain.TodoItem) error
	Toggle(ctx context.Context, id string) (*domain.TodoItem, error)
	Delete(ctx context.Context, id string) error
	// Start tracks a new event from the todo. The todo itself is unchanged.
	Start(ctx context.Context, id string) (domain.WorkEvent, error)
}

type SummaryService interface {
	Day(ctx context.Context, day time.Time) (summary.DaySummary, error)
	Standup(ctx context.Context, day time.Time) (string, error)
	Report(ctx context.Context, from, to time.Time, groupBy summary.GroupBy) (summary.Report, error)
}

// ExportOptions limits an export to events starting in [From, To).
// Zero values mean unbounded.
type ExportOptions struct {
	From time.Time
	To   time.Time
}

// ExportResult holds the outcome of an export.
type ExportResult struct {
	EventCount int
	TodoCount  int
}

// ImportResult holds the outcome of an import.
type ImportResult struct {
	EventCount int
	TodoCount  int
}

type TransferService interface {
	Export(ctx context.Context, w io.Writer, format importer.Format, opts ExportOptions) (*ExportResult, error)
	Import(ctx context.Context, r io.Reader, format importer.Format) (*ImportResult, error)
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportDocument(ctx context.Context, doc *importer.Document) (*ImportResult, error)
}
