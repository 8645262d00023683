package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/swvikum/cake-bucket-sync/internal/core/domain"
	"github.com/swvikum/cake-bucket-sync/internal/core/port"
)

// SyncService reconciles calendar events into the orders store: fetch, parse,
// idempotent insert. One run is strictly sequential; repeated invocation by
// the scheduler is the retry mechanism, made safe by the per-event existence
// check.
type SyncService struct {
	tokens   port.TokenService
	source   port.EventSource
	orders   port.OrderStorage
	notifier port.Notifier
	now      func() time.Time
}

func NewSyncService(
	tokens port.TokenService,
	source port.EventSource,
	orders port.OrderStorage,
	notifier port.Notifier,
) *SyncService {
	return &SyncService{
		tokens:   tokens,
		source:   source,
		orders:   orders,
		notifier: notifier,
		now:      time.Now,
	}
}

// Run syncs the window [now-daysBack, now+daysAhead]. Credential and fetch
// failures abort the whole batch; per-event failures are collected into the
// report and never stop the loop.
func (s *SyncService) Run(ctx context.Context, daysBack, daysAhead int) (*domain.SyncReport, error) {
	accessToken, err := s.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	events, err := s.source.ListEvents(ctx, accessToken, daysBack, daysAhead)
	if err != nil {
		return nil, err
	}

	report := &domain.SyncReport{TotalEvents: len(events)}

	for _, event := range events {
		s.syncEvent(ctx, event, report)
	}

	log.WithFields(log.Fields{
		"totalEvents": report.TotalEvents,
		"created":     report.Created,
		"skipped":     report.Skipped,
		"errors":      len(report.Errors),
	}).Info("Calendar sync run completed")

	s.notifySynced(ctx, report)

	return report, nil
}

func (s *SyncService) syncEvent(ctx context.Context, event domain.CalendarEvent, report *domain.SyncReport) {
	_, exists, err := s.orders.FindIDByCalendarEventID(ctx, event.ID)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("event %s: lookup: %v", event.ID, err))
		return
	}
	if exists {
		report.Skipped++
		return
	}

	result := ParseEvent(event, s.now())
	if result.Skip {
		report.Skipped++
		return
	}

	orderID, err := s.orders.InsertOrder(ctx, &result.Order, event.ID)
	if err != nil {
		report.Errors = append(report.Errors, fmt.Sprintf("event %s: %v", event.ID, err))
		return
	}

	// The order is already committed at this point; a failed item insert
	// leaves an order without items rather than no order at all.
	if len(result.Items) > 0 {
		if err := s.orders.InsertOrderItems(ctx, orderID, result.Items); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("event %s items: %v", event.ID, err))
		}
	}

	report.Created++
}

func (s *SyncService) notifySynced(ctx context.Context, report *domain.SyncReport) {
	message := &domain.CalendarSyncedMessage{
		SyncID:      uuid.New(),
		Created:     report.Created,
		Skipped:     report.Skipped,
		TotalEvents: report.TotalEvents,
		Errors:      report.Errors,
		CompletedAt: s.now(),
	}
	if err := s.notifier.NotifyCalendarSynced(ctx, message); err != nil {
		log.WithError(err).Warn("Failed to publish calendar synced message")
	}
}
