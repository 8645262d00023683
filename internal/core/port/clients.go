package port

import (
	"context"

	"github.com/swvikum/cake-bucket-sync/internal/core/domain"
)

type EventSource interface {
	// ListEvents returns all events in the window [now-daysBack, now+daysAhead],
	// recurring events expanded, in ascending start-time order. An empty
	// window is an empty slice, not an error.
	ListEvents(ctx context.Context, accessToken string, daysBack, daysAhead int) ([]domain.CalendarEvent, error)
}

type TokenExchanger interface {
	// Refresh exchanges a refresh token for a new access credential.
	Refresh(ctx context.Context, refreshToken string) (*domain.AccessCredential, error)
}

type Notifier interface {
	NotifyCalendarSynced(ctx context.Context, message *domain.CalendarSyncedMessage) error
}
