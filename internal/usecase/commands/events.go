package commands

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bruceg7333/water-shop-api/internal/domain/order"
	"github.com/bruceg7333/water-shop-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const notificationKindOrder = "order_event"

// Order event topics written to the notification outbox.
const (
	TopicOrderCreated   = "order.created"
	TopicOrderPaid      = "order.paid"
	TopicOrderShipped   = "order.shipped"
	TopicOrderCompleted = "order.completed"
	TopicOrderCanceled  = "order.canceled"
)

type orderEventPayload struct {
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	UserID      uuid.UUID       `json:"user_id"`
	Status      string          `json:"status"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

// enqueueOrderEvent writes the outbox row inside the caller's transaction so it commits with the state change.
func enqueueOrderEvent(ctx context.Context, tx shared.Tx, topic string, o *order.Order, now time.Time) error {
	payload, err := json.Marshal(orderEventPayload{
		OrderID:     o.ID(),
		OrderNumber: o.Number().String(),
		UserID:      o.UserID(),
		Status:      o.Status().String(),
		GrandTotal:  o.GrandTotal(),
		OccurredAt:  now,
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), notificationKindOrder, topic, payload, now)
}
