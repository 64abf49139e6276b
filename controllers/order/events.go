package orderControllers

import (
	"context"
	"encoding/json"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/framecart/eyewear-api/models"
)

// OrderPlacedMessage is the payload published when an order is created. The
// fulfilment consumer works from this instead of polling the orders table.
type OrderPlacedMessage struct {
	OrderID     uint               `json:"order_id"`
	Reference   string             `json:"reference"`
	UserID      string             `json:"user_id"`
	TotalAmount float64            `json:"total_amount"`
	Items       []models.OrderItem `json:"items"`
}

// OrderPublisher wraps the AMQP channel used for order events. A nil
// publisher (or one with a nil channel) is a no-op so the API keeps working
// when the broker is not configured.
type OrderPublisher struct {
	ch        *amqp.Channel
	queueName string
}

func NewOrderPublisher(ch *amqp.Channel, queueName string) *OrderPublisher {
	return &OrderPublisher{ch: ch, queueName: queueName}
}

// PublishOrderPlaced publishes fire-and-forget; a broker failure must not
// fail the checkout that already committed.
func (p *OrderPublisher) PublishOrderPlaced(ctx context.Context, order models.Order) {
	if p == nil || p.ch == nil {
		return
	}

	body, err := json.Marshal(OrderPlacedMessage{
		OrderID:     order.ID,
		Reference:   order.Reference,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Items:       order.Items,
	})
	if err != nil {
		slog.Error("marshal order event", "order_id", order.ID, "error", err)
		return
	}

	err = p.ch.PublishWithContext(ctx,
		"",          // default exchange
		p.queueName, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		slog.Error("publish order event", "order_id", order.ID, "error", err)
	}
}
