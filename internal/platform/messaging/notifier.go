// Package messaging connects the services to the message brokers: outbound
// notifications go to Kafka, sale-order confirmations arrive over AMQP.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/core/ports/gateways"
	"github.com/SscSPs/cowork_membership_app/internal/middleware"
	"github.com/segmentio/kafka-go"
)

// Writer is the subset of kafka.Writer the notifier needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Notification is the payload published for every templated notification.
type Notification struct {
	TemplateID string    `json:"template_id"`
	RecordID   string    `json:"record_id"`
	SentAt     time.Time `json:"sent_at"`
}

// KafkaNotifier publishes notifications keyed by record id, so every message about one
// record lands on the same partition.
type KafkaNotifier struct {
	writer Writer
	now    func() time.Time
}

var _ gateways.Notifier = (*KafkaNotifier)(nil)

// NewKafkaNotifier creates a notifier writing to topic on the given brokers.
func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return NewKafkaNotifierWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	})
}

// NewKafkaNotifierWithWriter allows injecting a test writer.
func NewKafkaNotifierWithWriter(w Writer) *KafkaNotifier {
	return &KafkaNotifier{writer: w, now: time.Now}
}

func (n *KafkaNotifier) Send(ctx context.Context, templateID, recordID string) error {
	b, err := json.Marshal(Notification{TemplateID: templateID, RecordID: recordID, SentAt: n.now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := n.writer.WriteMessages(ctx, kafka.Message{Key: []byte(recordID), Value: b}); err != nil {
		return fmt.Errorf("publish notification %s for %s: %w", templateID, recordID, err)
	}
	return nil
}

// Close closes the underlying writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// LogNotifier only logs. It is used when no broker is configured.
type LogNotifier struct{}

var _ gateways.Notifier = LogNotifier{}

func (LogNotifier) Send(ctx context.Context, templateID, recordID string) error {
	middleware.GetLoggerFromCtx(ctx).Info("Notification",
		slog.String("template_id", templateID),
		slog.String("record_id", recordID))
	return nil
}
