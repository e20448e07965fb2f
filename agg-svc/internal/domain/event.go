package domain

import "time"

const (
	EventLineAdded   = "line_added"
	EventLineRemoved = "line_removed"
)

// OrderLineEvent mirrors the message restaurant-svc publishes for every
// order line write.
type OrderLineEvent struct {
	Type      string    `json:"type"`
	OrderID   int64     `json:"order_id"`
	LineID    int64     `json:"line_id"`
	ItemKind  string    `json:"item_kind"`
	ItemID    int64     `json:"item_id"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// Delta is the signed change the event makes to its item's counter. It is
// zero for events that carry nothing to count.
func (e OrderLineEvent) Delta() int {
	if e.ItemKind == "" || e.ItemID <= 0 || e.Quantity <= 0 {
		return 0
	}
	switch e.Type {
	case EventLineAdded:
		return e.Quantity
	case EventLineRemoved:
		return -e.Quantity
	default:
		return 0
	}
}
