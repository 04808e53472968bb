package listener

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-poultry-service/internal/event"
	"github.com/fekuna/omnipos-poultry-service/internal/inventory"
	"github.com/fekuna/omnipos-poultry-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-poultry-service/internal/logger"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// RestockListener applies StockReceived events as restock movements.
type RestockListener struct {
	consumer MessageReader
	uc       inventory.UseCase
	logger   logger.ZapLogger
	backoff  time.Duration
}

func NewRestockListener(consumer MessageReader, uc inventory.UseCase, logger logger.ZapLogger) *RestockListener {
	return &RestockListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
		backoff:  time.Second,
	}
}

// Start blocks until ctx is cancelled.
func (l *RestockListener) Start(ctx context.Context) {
	l.logger.Info("Starting restock Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping restock Kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *RestockListener) processMessage(ctx context.Context, value []byte) {
	var payload event.StockReceived
	env, err := event.Decode(value, event.TypeStockReceived, &payload)
	if err != nil {
		l.logger.Warn("Skipping unreadable stock event", zap.Error(err))
		return
	}

	log := l.logger.With(
		zap.String("event_id", env.EventID),
		zap.String("item_type", payload.ItemType),
		zap.String("item_id", payload.ItemID),
	)

	if payload.Quantity <= 0 {
		log.Warn("Skipping stock event with non-positive quantity", zap.Int("quantity", payload.Quantity))
		return
	}

	_, err = l.uc.AdjustStock(ctx, &dto.AdjustStockInput{
		ItemType:     model.ItemType(payload.ItemType),
		ItemID:       payload.ItemID,
		Change:       payload.Quantity,
		MovementType: model.MovementRestock,
		ReferenceID:  payload.ReferenceID,
		Notes:        payload.Notes,
	})
	if err != nil {
		log.Error("Failed to apply restock", zap.Error(err))
		return
	}
	log.Info("Restock applied", zap.Int("quantity", payload.Quantity))
}
