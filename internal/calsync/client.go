// Package calsync pushes finished work events to Google Calendar.
package calsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// GoogleClient creates calendar events through the Google Calendar v3 API.
type GoogleClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewGoogleClient creates a client for cfg. A nil observer discards events.
func NewGoogleClient(cfg Config, observer Observer) *GoogleClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &GoogleClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// Authenticated reports whether sync is enabled and a token is configured.
func (c *GoogleClient) Authenticated() bool {
	return c.cfg.Enabled && c.cfg.Token != ""
}

// eventTime is the start/end object of the events API.
type eventTime struct {
	DateTime string `json:"dateTime"`
}

// eventRequest is the JSON body sent to POST .../events.
type eventRequest struct {
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Start       eventTime `json:"start"`
	End         eventTime `json:"end"`
}

// newEventRequest maps a work event to the calendar payload. The summary is
// prefixed with the bracketed event type.
func newEventRequest(e domain.WorkEvent) eventRequest {
	return eventRequest{
		Summary:     fmt.Sprintf("[%s] %s", e.Type, e.Title),
		Description: e.Notes,
		Start:       eventTime{DateTime: e.StartTime.Format(time.RFC3339)},
		End:         eventTime{DateTime: e.EndTime.Format(time.RFC3339)},
	}
}

// Push creates a calendar event for e. Server errors and connection
// failures are retried up to MaxRetries times; 4xx responses are not.
func (c *GoogleClient) Push(ctx context.Context, e domain.WorkEvent) error {
	if !c.Authenticated() {
		return ErrUnauthorized
	}
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	body := newEventRequest(e)

	var lastErr error
	var status int
	attempts := 1 + c.cfg.MaxRetries
	tried := 0

	for i := 0; i < attempts; i++ {
		tried++
		status, lastErr = c.doRequest(ctx, body)
		if lastErr == nil {
			c.observer.OnPushComplete(PushEvent{
				EventID:   e.ID,
				Attempts:  tried,
				LatencyMs: time.Since(start).Milliseconds(),
				Status:    status,
				Success:   true,
			})
			return nil
		}

		// Don't retry on context cancellation/timeout or client errors.
		if ctx.Err() != nil || errors.Is(lastErr, ErrUnauthorized) || errors.Is(lastErr, ErrRejected) {
			break
		}
	}

	err := classify(ctx, lastErr)
	c.observer.OnPushComplete(PushEvent{
		EventID:   e.ID,
		Attempts:  tried,
		LatencyMs: time.Since(start).Milliseconds(),
		Status:    status,
		Success:   false,
		ErrorCode: errorCode(err),
	})
	return err
}

func (c *GoogleClient) doRequest(ctx context.Context, body eventRequest) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.EventsURL(), bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 64<<10))
	if err != nil {
		return httpResp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	switch code := httpResp.StatusCode; {
	case code >= 200 && code < 300:
		return code, nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return code, fmt.Errorf("%w: status %d: %s", ErrUnauthorized, code, string(respBody))
	case code >= 400 && code < 500 && code != http.StatusTooManyRequests:
		return code, fmt.Errorf("%w: status %d: %s", ErrRejected, code, string(respBody))
	default:
		return code, fmt.Errorf("calendar returned status %d: %s", code, string(respBody))
	}
}

func classify(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil:
		return ErrTimeout
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrRejected):
		return err
	case isConnectionError(err):
		return ErrUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Noop never reports authenticated, so the tracker never pushes to it.
type Noop struct{}

func (Noop) Authenticated() bool                         { return false }
func (Noop) Push(context.Context, domain.WorkEvent) error { return nil }
