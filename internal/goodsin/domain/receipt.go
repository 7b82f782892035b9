package goodsin

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptStatus tracks a goods receipt through its lifecycle.
type ReceiptStatus string

const (
	// StatusPending marks stock that arrived but has no slot yet.
	StatusPending ReceiptStatus = "pending"
	// StatusStored marks stock booked into a storage slot.
	StatusStored ReceiptStatus = "stored"
	// StatusPicked marks stock that left the warehouse.
	StatusPicked ReceiptStatus = "picked"
)

// GoodsReceipt records one incoming delivery line.
type GoodsReceipt struct {
	ID              string
	ItemDescription string
	Quantity        int
	GrossWeightKg   float64
	UnitValue       decimal.Decimal
	Department      string
	Status          ReceiptStatus
	LocationID      string
	LocationCode    string
	CreatedAt       time.Time
	StoredAt        time.Time
	UpdatedAt       time.Time
}

// NewGoodsReceipt validates and creates a pending receipt.
func NewGoodsReceipt(id, item string, quantity int, grossWeightKg float64, unitValue decimal.Decimal, department string, now time.Time) (*GoodsReceipt, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return nil, ErrEmptyItem
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if grossWeightKg <= 0 {
		return nil, ErrInvalidWeight
	}
	if unitValue.IsNegative() {
		return nil, ErrNegativeValue
	}
	return &GoodsReceipt{
		ID:              id,
		ItemDescription: item,
		Quantity:        quantity,
		GrossWeightKg:   grossWeightKg,
		UnitValue:       unitValue,
		Department:      strings.TrimSpace(department),
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// TotalValue is the monetary value of the whole receipt line.
func (g *GoodsReceipt) TotalValue() decimal.Decimal {
	return g.UnitValue.Mul(decimal.NewFromInt(int64(g.Quantity)))
}

// MarkStored books the receipt into a slot.
func (g *GoodsReceipt) MarkStored(locationID, locationCode string, now time.Time) error {
	if g.Status != StatusPending {
		return ErrNotPending
	}
	g.Status = StatusStored
	g.LocationID = locationID
	g.LocationCode = locationCode
	g.StoredAt = now
	g.UpdatedAt = now
	return nil
}

// MarkPicked records that the stock left its slot.
func (g *GoodsReceipt) MarkPicked(now time.Time) error {
	if g.Status != StatusStored {
		return ErrNotStored
	}
	g.Status = StatusPicked
	g.UpdatedAt = now
	return nil
}
