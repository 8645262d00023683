package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order workflow states. Calendar-sourced orders always enter as confirmed;
// the later states are only ever set through the dashboard.
const (
	OrderStatusDraft          = "draft"
	OrderStatusPendingConfirm = "pending_confirm"
	OrderStatusConfirmed      = "confirmed"
)

// CalendarEvent is one event as returned by the calendar provider,
// normalized from the Google Calendar API shape.
type CalendarEvent struct {
	ID          string
	Summary     string
	Description string
	StartsAt    *time.Time // nil when the event carries no start at all
	AllDay      bool       // StartsAt came from an all-day date, not a timed start
}

// ParsedOrder is the order extracted from one calendar event. It lives only
// for the duration of a sync run; the driver either persists it or drops it.
type ParsedOrder struct {
	CustomerName  string
	CustomerPhone *string
	CustomerEmail *string
	DueAt         time.Time
	Status        string
	Notes         *string

	// Calendar events carry no pricing; these stay zero and are filled in
	// later through the dashboard's order edit screen.
	Subtotal    float64
	Discount    float64
	DeliveryFee float64
	Total       float64
	DepositPaid float64
	BalanceDue  float64
}

// OrderItem is one line item of a parsed order.
type OrderItem struct {
	ItemName  string
	Quantity  int
	UnitPrice float64
	LineTotal float64
	Notes     *string
}

// ParseResult is the outcome of parsing a single calendar event.
// When Skip is true the partial fields carry no guarantees and must be
// discarded entirely, never partially persisted.
type ParseResult struct {
	Order ParsedOrder
	Items []OrderItem
	Skip  bool
}

// TokenRecord is the persisted OAuth credential for the calendar
// integration. Created once through the interactive consent flow; only the
// access token and expiry are mutated afterwards, by the refresh cycle.
type TokenRecord struct {
	ID           uuid.UUID
	RefreshToken string
	AccessToken  *string
	ExpiresAt    *time.Time
	UpdatedAt    time.Time
}

// AccessCredential is a freshly exchanged access token with its absolute expiry.
type AccessCredential struct {
	AccessToken string
	ExpiresAt   time.Time
}

// SyncReport summarizes one reconciliation run.
type SyncReport struct {
	Created     int
	Skipped     int
	TotalEvents int
	Errors      []string
}
