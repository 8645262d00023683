package client

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/swvikum/cake-bucket-sync/internal/core/domain"
)

type Publisher interface {
	Publish(ctx context.Context, exchange, routingKey string, message any) error
}

// AMQPNotifier announces finished sync runs on the orders exchange.
type AMQPNotifier struct {
	publisher Publisher
}

func NewAMQPNotifier(publisher Publisher) *AMQPNotifier {
	return &AMQPNotifier{
		publisher: publisher,
	}
}

func (n *AMQPNotifier) NotifyCalendarSynced(ctx context.Context, message *domain.CalendarSyncedMessage) error {
	return n.publisher.Publish(ctx, domain.OrdersExchange, domain.RoutingKeyCalendarSynced, message)
}

// NoopNotifier stands in when no broker is configured; the sync result is
// still in the HTTP response and the logs.
type NoopNotifier struct{}

func (NoopNotifier) NotifyCalendarSynced(_ context.Context, message *domain.CalendarSyncedMessage) error {
	log.WithField("syncID", message.SyncID).Debug("AMQP not configured, sync notification dropped")
	return nil
}
