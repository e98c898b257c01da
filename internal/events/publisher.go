package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pako24/pako24-backend/internal/config"
	"github.com/pako24/pako24-backend/internal/entities"
	"github.com/pako24/pako24-backend/pkg/utils"

	"github.com/segmentio/kafka-go"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent сообщение для внешних потребителей (уведомления, витрины).
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	Status     string    `json:"status"`
	FromStatus string    `json:"from_status,omitempty"`
	TotalEUR   string    `json:"total_eur"`
	OccurredAt time.Time `json:"occurred_at"`
}

type publisher struct {
	logger *slog.Logger
	writer *kafka.Writer
}

func NewPublisher(logger *slog.Logger, cfg config.Kafka) *publisher {
	return &publisher{
		logger: logger.With(slog.String("component", "events")),
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
	}
}

func (p *publisher) OrderCreated(ctx context.Context, o entities.Order) error {
	return p.publish(ctx, OrderEvent{
		Type:       EventOrderCreated,
		OrderID:    o.ID.String(),
		UserID:     o.UserID.String(),
		Status:     string(o.Status),
		TotalEUR:   o.TotalPriceEUR.StringFixed(2),
		OccurredAt: time.Now(),
	})
}

func (p *publisher) OrderStatusChanged(ctx context.Context, o entities.Order, from entities.OrderStatus) error {
	return p.publish(ctx, OrderEvent{
		Type:       EventOrderStatusChanged,
		OrderID:    o.ID.String(),
		UserID:     o.UserID.String(),
		Status:     string(o.Status),
		FromStatus: string(from),
		TotalEUR:   o.TotalPriceEUR.StringFixed(2),
		OccurredAt: time.Now(),
	})
}

func (p *publisher) publish(ctx context.Context, event OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
	}

	cfg := utils.RetryConfig{
		InitialDelay: 50 * time.Millisecond,
		MaxAttempts:  3,
		Multiplier:   2,
	}

	return utils.Retry(cfg, func() error {
		return p.writer.WriteMessages(ctx, msg)
	})
}

func (p *publisher) Close() error {
	return p.writer.Close()
}
