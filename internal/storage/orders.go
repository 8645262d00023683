package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/swvikum/cake-bucket-sync/internal/core/domain"
)

// OrdersStorage writes calendar-sourced orders into the dashboard's orders
// tables. This is the only write path the sync owns: insert new rows, never
// update existing ones.
type OrdersStorage struct {
	db *PostgresDB
}

func NewOrdersStorage(db *PostgresDB) *OrdersStorage {
	return &OrdersStorage{
		db: db,
	}
}

func (s *OrdersStorage) FindIDByCalendarEventID(ctx context.Context, eventID string) (uuid.UUID, bool, error) {
	var id uuid.UUID
	err := s.db.QueryRow(ctx,
		"SELECT id FROM orders WHERE source_calendar_event_id = $1",
		eventID,
	).Scan(&id)

	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}

	return id, true, nil
}

func (s *OrdersStorage) InsertOrder(ctx context.Context, order *domain.ParsedOrder, eventID string) (uuid.UUID, error) {
	// created_by and assigned_user_id stay NULL: the row was made by the
	// sync, not by a dashboard user.
	var id uuid.UUID
	err := s.db.QueryRow(ctx,
		`INSERT INTO orders (
		     customer_name, customer_phone, customer_email, due_at, status,
		     assigned_user_id, subtotal, discount, delivery_fee, total,
		     deposit_paid, balance_due, notes, created_by, source_calendar_event_id
		 )
		 VALUES ($1, $2, $3, $4, $5, NULL, $6, $7, $8, $9, $10, $11, $12, NULL, $13)
		 RETURNING id`,
		order.CustomerName,
		order.CustomerPhone,
		order.CustomerEmail,
		order.DueAt,
		order.Status,
		order.Subtotal,
		order.Discount,
		order.DeliveryFee,
		order.Total,
		order.DepositPaid,
		order.BalanceDue,
		order.Notes,
		eventID,
	).Scan(&id)

	if err != nil {
		return uuid.Nil, fmt.Errorf("insert order: %w", err)
	}

	return id, nil
}

func (s *OrdersStorage) InsertOrderItems(ctx context.Context, orderID uuid.UUID, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO order_items (order_id, item_name, quantity, unit_price, line_total, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, item := range items {
		_, err := tx.Exec(ctx, insert,
			orderID,
			item.ItemName,
			item.Quantity,
			item.UnitPrice,
			item.LineTotal,
			item.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit(ctx)
}
