package picking

import (
	"strings"
	"time"
)

// PickStatus tracks a pick order through its lifecycle.
type PickStatus string

const (
	// StatusOpen marks a pick waiting to be executed.
	StatusOpen PickStatus = "open"
	// StatusCompleted marks a finished pick.
	StatusCompleted PickStatus = "completed"
)

// PickOrder requests stock to be taken from a slot for a department.
type PickOrder struct {
	ID           string
	Department   string
	ReceiptID    string
	LocationID   string
	LocationCode string
	WeightKg     float64
	Status       PickStatus
	CreatedAt    time.Time
	CompletedAt  time.Time
	UpdatedAt    time.Time
}

// NewPickOrder validates and creates an open pick.
func NewPickOrder(id, department, receiptID, locationID, locationCode string, weightKg float64, now time.Time) (*PickOrder, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	department = strings.TrimSpace(department)
	if department == "" {
		return nil, ErrEmptyDepartment
	}
	if receiptID == "" || locationID == "" {
		return nil, ErrMissingReference
	}
	if weightKg <= 0 {
		return nil, ErrInvalidWeight
	}
	return &PickOrder{
		ID:           id,
		Department:   department,
		ReceiptID:    receiptID,
		LocationID:   locationID,
		LocationCode: locationCode,
		WeightKg:     weightKg,
		Status:       StatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Complete finishes the pick.
func (p *PickOrder) Complete(now time.Time) error {
	if p.Status != StatusOpen {
		return ErrNotOpen
	}
	p.Status = StatusCompleted
	p.CompletedAt = now
	p.UpdatedAt = now
	return nil
}
