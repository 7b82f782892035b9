package events

import "time"

// PickCompleted is emitted when stock leaves a slot.
type PickCompleted struct {
	PickID       string    `json:"pick_id"`
	ReceiptID    string    `json:"receipt_id"`
	Department   string    `json:"department"`
	LocationID   string    `json:"location_id"`
	LocationCode string    `json:"location_code"`
	WeightKg     float64   `json:"weight_kg"`
	CompletedAt  time.Time `json:"completed_at"`
}
