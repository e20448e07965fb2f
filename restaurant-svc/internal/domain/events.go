package domain

import "time"

const (
	EventLineAdded   = "line_added"
	EventLineRemoved = "line_removed"
)

// OrderLineEvent is published to kafka whenever an order line is written
// or removed. agg-svc decodes the same JSON shape.
type OrderLineEvent struct {
	Type      string    `json:"type"`
	OrderID   int64     `json:"order_id"`
	LineID    int64     `json:"line_id"`
	ItemKind  string    `json:"item_kind"`
	ItemID    int64     `json:"item_id"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLineEvent(eventType string, line OrderDetails, at time.Time) OrderLineEvent {
	kind, id := line.Item()
	return OrderLineEvent{
		Type:      eventType,
		OrderID:   line.OrderID,
		LineID:    line.ID,
		ItemKind:  kind,
		ItemID:    id,
		Quantity:  line.Quantity,
		Timestamp: at,
	}
}

// SalesEntry is one ranked item of today's sales counters.
type SalesEntry struct {
	ItemKind string  `json:"item_kind"`
	ItemID   int64   `json:"item_id"`
	Quantity float64 `json:"quantity"`
}
