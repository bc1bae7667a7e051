// Package listener consumes stock adjustment events from outside systems
// (supplier deliveries, warehouse counts) and funnels them through the same
// ledger path as manual adjustments.
package listener

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/mkadlec/salonpos/internal/model"
	"github.com/mkadlec/salonpos/internal/stock"
	"github.com/mkadlec/salonpos/internal/stock/dto"
	"github.com/mkadlec/salonpos/pkg/broker"
	"github.com/mkadlec/salonpos/pkg/logger"
)

type StockListener struct {
	consumer *broker.KafkaConsumer
	uc       stock.UseCase
	logger   logger.ZapLogger
}

func NewStockListener(consumer *broker.KafkaConsumer, uc stock.UseCase, log logger.ZapLogger) *StockListener {
	return &StockListener{
		consumer: consumer,
		uc:       uc,
		logger:   log,
	}
}

func (l *StockListener) Start(ctx context.Context) {
	l.logger.Info("starting stock adjustment listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping stock adjustment listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type StockAdjustedEvent struct {
	EventID   string               `json:"event_id"`
	EventType string               `json:"event_type"`
	Payload   StockAdjustedPayload `json:"payload"`
	Timestamp time.Time            `json:"timestamp"`
}

type StockAdjustedPayload struct {
	ItemID      string `json:"item_id"`
	Kind        string `json:"kind"` // in, out or adjustment
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes"`
	ReferenceID string `json:"reference_id"`
}

func (l *StockListener) processMessage(ctx context.Context, value []byte) {
	var event StockAdjustedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "StockAdjusted" {
		return
	}

	input := &dto.AdjustStockInput{
		ItemID:        event.Payload.ItemID,
		Kind:          model.MovementKind(event.Payload.Kind),
		Quantity:      event.Payload.Quantity,
		Notes:         event.Payload.Notes,
		ReferenceID:   event.Payload.ReferenceID,
		ReferenceType: "external",
		ActorID:       "system",
	}

	if _, err := l.uc.Adjust(ctx, input); err != nil {
		l.logger.Error("failed to apply external stock adjustment",
			zap.String("event_id", event.EventID),
			zap.String("item_id", event.Payload.ItemID),
			zap.Error(err),
		)
	}
}
