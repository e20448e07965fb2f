package service

import (
	"context"
	"encoding/json"
	"errors"

	"restaurant-backend/agg-svc/internal/domain"

	"github.com/sirupsen/logrus"
)

type Consumer struct {
	Reader MessageReader
	Store  StoreInterface
	Log    *logrus.Entry
}

func NewConsumer(reader MessageReader, store StoreInterface, log *logrus.Entry) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
		Log:    log,
	}
}

// Start reads order line events until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.Log.Info("starting order line consumer")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.Log.Info("order line consumer stopped")
				return
			}
			c.Log.WithError(err).Error("failed to read message")
			continue
		}

		var event domain.OrderLineEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			c.Log.WithError(err).WithField("offset", message.Offset).Warn("skipping undecodable message")
			continue
		}
		c.Process(ctx, event)
	}
}

func (c *Consumer) Process(ctx context.Context, event domain.OrderLineEvent) {
	if event.Delta() == 0 {
		c.Log.WithField("type", event.Type).Debug("ignoring event")
		return
	}

	entry := c.Log.WithFields(logrus.Fields{
		"type":      event.Type,
		"order_id":  event.OrderID,
		"item_kind": event.ItemKind,
		"item_id":   event.ItemID,
		"quantity":  event.Quantity,
	})
	if err := c.Store.ApplyLineEvent(ctx, event); err != nil {
		entry.WithError(err).Error("failed to update sales counters")
		return
	}
	entry.Debug("sales counters updated")
}
