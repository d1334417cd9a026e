package service

import (
	"context"
	"time"

	"github.com/alexanderramin/worklog/internal/summary"
)

type summaryService struct {
	source   EventSource
	observer UseCaseObserver
}

func NewSummaryService(source EventSource, observers ...UseCaseObserver) SummaryService {
	return &summaryService{source: source, observer: useCaseObserverOrNoop(observers)}
}

func (s *summaryService) Day(ctx context.Context, day time.Time) (summary.DaySummary, error) {
	return summary.Build(s.source.Events(), day, s.source.Now())
}

func (s *summaryService) Standup(ctx context.Context, day time.Time) (text string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"day": day.Format("2006-01-02")}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "standup",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	ds, err := s.Day(ctx, day)
	if err != nil {
		return "", err
	}
	fields["event_count"] = ds.Count
	return summary.Standup(ds), nil
}

func (s *summaryService) Report(ctx context.Context, from, to time.Time, groupBy summary.GroupBy) (report summary.Report, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "report",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields: map[string]any{
				"from":     from.Format("2006-01-02"),
				"to":       to.Format("2006-01-02"),
				"group_by": string(groupBy),
			},
		})
	}()

	return summary.BuildReport(s.source.Events(), from, to, groupBy, s.source.Now())
}
