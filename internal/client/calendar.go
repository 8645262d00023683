package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/swvikum/cake-bucket-sync/internal/core/domain"
)

// maxResults caps a single sync run's cost. The bakery's calendar never gets
// anywhere near this in a year.
const maxResults = 250

// GoogleCalendarSource fetches events from one Google Calendar in a single
// bulk list call, recurring events already expanded by the API.
type GoogleCalendarSource struct {
	calendarID string
	now        func() time.Time
}

func NewGoogleCalendarSource(calendarID string) *GoogleCalendarSource {
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleCalendarSource{
		calendarID: calendarID,
		now:        time.Now,
	}
}

func (s *GoogleCalendarSource) ListEvents(ctx context.Context, accessToken string, daysBack, daysAhead int) ([]domain.CalendarEvent, error) {
	svc, err := calendar.NewService(ctx, option.WithTokenSource(
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}),
	))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	now := s.now()
	timeMin := now.AddDate(0, 0, -daysBack)
	timeMax := now.AddDate(0, 0, daysAhead)

	events, err := svc.Events.List(s.calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, &domain.FetchError{
				Status: apiErr.Code,
				Body:   domain.TruncateBody(apiErr.Body),
			}
		}
		return nil, &domain.FetchError{Body: err.Error()}
	}

	converted := make([]domain.CalendarEvent, 0, len(events.Items))
	for _, item := range events.Items {
		converted = append(converted, convertEvent(item))
	}

	return converted, nil
}

func convertEvent(item *calendar.Event) domain.CalendarEvent {
	event := domain.CalendarEvent{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
	}

	if item.Start == nil {
		return event
	}

	if item.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, item.Start.DateTime); err == nil {
			event.StartsAt = &t
		}
		return event
	}

	if item.Start.Date != "" {
		if t, err := time.Parse("2006-01-02", item.Start.Date); err == nil {
			event.StartsAt = &t
			event.AllDay = true
		}
	}

	return event
}
