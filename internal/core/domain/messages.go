package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrdersExchange = "orders"

	RoutingKeyCalendarSynced = "orders.calendar.synced"
)

// CalendarSyncedMessage is published after every completed sync run so the
// dashboard (and anything else listening) can refresh without polling.
type CalendarSyncedMessage struct {
	SyncID      uuid.UUID `json:"sync_id" validate:"required"`
	Created     int       `json:"created"`
	Skipped     int       `json:"skipped"`
	TotalEvents int       `json:"total_events"`
	Errors      []string  `json:"errors,omitempty"`
	CompletedAt time.Time `json:"completed_at" validate:"required"`
}
