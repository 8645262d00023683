package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/swvikum/cake-bucket-sync/internal/core/domain"
)

type OrderStorage interface {
	// FindIDByCalendarEventID reports whether an order already exists for the
	// given calendar event. This existence check is the idempotency guard;
	// the orders schema is external and not guaranteed to enforce uniqueness.
	FindIDByCalendarEventID(ctx context.Context, eventID string) (uuid.UUID, bool, error)
	InsertOrder(ctx context.Context, order *domain.ParsedOrder, eventID string) (uuid.UUID, error)
	InsertOrderItems(ctx context.Context, orderID uuid.UUID, items []domain.OrderItem) error
}

type TokenStorage interface {
	// LoadLatest returns the most recently updated token record, or nil when
	// the consent flow has never been completed.
	LoadLatest(ctx context.Context) (*domain.TokenRecord, error)
	Upsert(ctx context.Context, record *domain.TokenRecord) error
}
