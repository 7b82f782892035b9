// Package events defines goods-in domain events.
package events

import "time"

// GoodsReceived is emitted when a delivery line is registered.
type GoodsReceived struct {
	ReceiptID       string    `json:"receipt_id"`
	ItemDescription string    `json:"item_description"`
	WeightKg        float64   `json:"weight_kg"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// StockPlaced is emitted when a receipt is booked into a storage slot.
type StockPlaced struct {
	ReceiptID    string    `json:"receipt_id"`
	LocationID   string    `json:"location_id"`
	LocationCode string    `json:"location_code"`
	WeightKg     float64   `json:"weight_kg"`
	OccurredAt   time.Time `json:"occurred_at"`
}
