package service

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QRGenerator renders the PNG a table scans to open its order.
type QRGenerator interface {
	Generate(orderID int64) ([]byte, error)
}

// DefaultQRGenerator points the code at the order page of the frontend
// served from BaseURL, e.g. http://localhost:5173/orders/42.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID int64) ([]byte, error) {
	return qrcode.Encode(g.OrderURL(orderID), qrcode.Medium, 256)
}

func (g DefaultQRGenerator) OrderURL(orderID int64) string {
	return fmt.Sprintf("%s/orders/%d", strings.TrimRight(g.BaseURL, "/"), orderID)
}
