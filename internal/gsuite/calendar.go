package gsuite

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// CalendarClient answers availability questions from the coaching
// calendar's free/busy data.
type CalendarClient struct {
	svc        *calendar.Service
	calendarID string
}

func NewCalendarClient(ctx context.Context, calendarID string, opts ...option.ClientOption) (*CalendarClient, error) {
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &CalendarClient{svc: svc, calendarID: calendarID}, nil
}

// BusyWindow is one occupied interval on the coaching calendar.
type BusyWindow struct {
	Start time.Time
	End   time.Time
}

// BusyWindows returns the occupied intervals between from and to.
func (c *CalendarClient) BusyWindows(ctx context.Context, from, to time.Time) ([]BusyWindow, error) {
	resp, err := c.svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: c.calendarID}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	cal, ok := resp.Calendars[c.calendarID]
	if !ok {
		return nil, nil
	}

	windows := make([]BusyWindow, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, fmt.Errorf("parse busy start %q: %w", period.Start, err)
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, fmt.Errorf("parse busy end %q: %w", period.End, err)
		}
		windows = append(windows, BusyWindow{Start: start, End: end})
	}
	return windows, nil
}

// Overlaps reports whether the slot [start, end) intersects any window.
func Overlaps(windows []BusyWindow, start, end time.Time) bool {
	for _, w := range windows {
		if start.Before(w.End) && w.Start.Before(end) {
			return true
		}
	}
	return false
}
