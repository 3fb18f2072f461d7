package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	amqp "github.com/rabbitmq/amqp091-go"
)

// OrderApplier receives confirmed sale orders.
type OrderApplier interface {
	ApplyConfirmedOrder(ctx context.Context, order domain.ConfirmedOrder) ([]domain.LedgerEntry, error)
}

// Acknowledger is the part of amqp.Delivery the consumer settles messages with.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// SaleOrderConsumer applies sale-order confirmations from a durable queue. Messages are
// acknowledged only after the ledger write commits; replays are harmless because orders
// are applied at most once.
type SaleOrderConsumer struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	queue   string
	applier OrderApplier
	logger  *slog.Logger
}

// NewSaleOrderConsumer dials the broker and declares the queue.
func NewSaleOrderConsumer(url, queue string, applier OrderApplier, logger *slog.Logger) (*SaleOrderConsumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("set qos: %w", err)
	}
	return &SaleOrderConsumer{
		conn:    conn,
		ch:      ch,
		queue:   queue,
		applier: applier,
		logger:  logger.With(slog.String("job", "sale_order_consumer"), slog.String("queue", queue)),
	}, nil
}

// Run consumes until ctx is cancelled or the channel closes.
func (c *SaleOrderConsumer) Run(ctx context.Context) error {
	deliveries, err := c.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	c.logger.Info("Consuming sale-order confirmations")
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("amqp delivery channel closed")
			}
			c.Handle(ctx, d.Body, &d)
		}
	}
}

// Handle applies one message and settles it. Malformed or invalid orders are dropped;
// other failures are requeued.
func (c *SaleOrderConsumer) Handle(ctx context.Context, body []byte, ack Acknowledger) {
	ctx = middleware.WithLogger(ctx, c.logger)

	var order domain.ConfirmedOrder
	if err := json.Unmarshal(body, &order); err != nil {
		c.logger.Error("Dropping malformed sale order", slog.String("error", err.Error()))
		c.settle(ack.Nack(false, false))
		return
	}

	entries, err := c.applier.ApplyConfirmedOrder(ctx, order)
	switch {
	case err == nil:
		c.logger.Info("Sale order applied", slog.String("order_ref", order.OrderRef), slog.Int("entries", len(entries)))
		c.settle(ack.Ack(false))
	case errors.Is(err, apperrors.ErrValidation):
		c.logger.Error("Dropping invalid sale order", slog.String("order_ref", order.OrderRef), slog.String("error", err.Error()))
		c.settle(ack.Nack(false, false))
	default:
		c.logger.Error("Failed to apply sale order, requeueing", slog.String("order_ref", order.OrderRef), slog.String("error", err.Error()))
		c.settle(ack.Nack(false, true))
	}
}

func (c *SaleOrderConsumer) settle(err error) {
	if err != nil {
		c.logger.Error("Failed to settle delivery", slog.String("error", err.Error()))
	}
}

// Close closes the channel and the connection.
func (c *SaleOrderConsumer) Close() error {
	if err := c.ch.Close(); err != nil {
		return err
	}
	return c.conn.Close()
}
