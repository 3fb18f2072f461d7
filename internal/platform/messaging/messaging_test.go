package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/cowork_membership_app/internal/apperrors"
	"github.com/SscSPs/cowork_membership_app/internal/core/domain"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaNotifier_Send(t *testing.T) {
	fw := &fakeWriter{}
	n := NewKafkaNotifierWithWriter(fw)
	n.now = func() time.Time { return time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC) }

	err := n.Send(context.Background(), domain.TemplateMembershipReminder, "m-1")

	require.NoError(t, err)
	require.Len(t, fw.msgs, 1)
	assert.Equal(t, "m-1", string(fw.msgs[0].Key))
	var payload Notification
	require.NoError(t, json.Unmarshal(fw.msgs[0].Value, &payload))
	assert.Equal(t, domain.TemplateMembershipReminder, payload.TemplateID)
	assert.Equal(t, "m-1", payload.RecordID)
}

func TestKafkaNotifier_SendError(t *testing.T) {
	n := NewKafkaNotifierWithWriter(&fakeWriter{err: errors.New("broker down")})

	err := n.Send(context.Background(), domain.TemplateAccessRequestApproved, "ar-1")

	assert.ErrorContains(t, err, "broker down")
}

type mockApplier struct {
	mock.Mock
}

func (m *mockApplier) ApplyConfirmedOrder(ctx context.Context, order domain.ConfirmedOrder) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

type recordingAck struct {
	acked, requeued, dropped bool
}

func (r *recordingAck) Ack(bool) error { r.acked = true; return nil }
func (r *recordingAck) Nack(_ bool, requeue bool) error {
	if requeue {
		r.requeued = true
	} else {
		r.dropped = true
	}
	return nil
}

func newTestConsumer(applier OrderApplier) *SaleOrderConsumer {
	return &SaleOrderConsumer{applier: applier, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestSaleOrderConsumer_Handle(t *testing.T) {
	order := domain.ConfirmedOrder{
		OrderRef:  "SO-0042",
		PartnerID: "member-1",
		Lines:     []domain.ConfirmedOrderLine{{ProductID: "prod-credits-10", Quantity: decimal.NewFromInt(2)}},
	}
	body, err := json.Marshal(order)
	require.NoError(t, err)

	t.Run("applied orders are acked", func(t *testing.T) {
		applier := new(mockApplier)
		applier.On("ApplyConfirmedOrder", mock.Anything, mock.MatchedBy(func(o domain.ConfirmedOrder) bool {
			return o.OrderRef == "SO-0042" && len(o.Lines) == 1
		})).Return([]domain.LedgerEntry{{EntryID: "e-1"}}, nil).Once()
		ack := &recordingAck{}

		newTestConsumer(applier).Handle(context.Background(), body, ack)

		assert.True(t, ack.acked)
		applier.AssertExpectations(t)
	})

	t.Run("invalid orders are dropped", func(t *testing.T) {
		applier := new(mockApplier)
		applier.On("ApplyConfirmedOrder", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: order reference required", apperrors.ErrValidation)).Once()
		ack := &recordingAck{}

		newTestConsumer(applier).Handle(context.Background(), body, ack)

		assert.True(t, ack.dropped)
	})

	t.Run("transient failures are requeued", func(t *testing.T) {
		applier := new(mockApplier)
		applier.On("ApplyConfirmedOrder", mock.Anything, mock.Anything).Return(nil, errors.New("connection reset")).Once()
		ack := &recordingAck{}

		newTestConsumer(applier).Handle(context.Background(), body, ack)

		assert.True(t, ack.requeued)
	})

	t.Run("malformed bodies are dropped", func(t *testing.T) {
		applier := new(mockApplier)
		ack := &recordingAck{}

		newTestConsumer(applier).Handle(context.Background(), []byte("{not json"), ack)

		assert.True(t, ack.dropped)
		applier.AssertNotCalled(t, "ApplyConfirmedOrder", mock.Anything, mock.Anything)
	})
}
