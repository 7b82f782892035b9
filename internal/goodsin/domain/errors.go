package goodsin

import "errors"

var (
	// ErrEmptyID is returned when a receipt id is empty.
	ErrEmptyID = errors.New("goodsin: empty id")
	// ErrEmptyItem is returned when the item description is empty.
	ErrEmptyItem = errors.New("goodsin: empty item description")
	// ErrInvalidQuantity is returned for a non-positive quantity.
	ErrInvalidQuantity = errors.New("goodsin: quantity must be positive")
	// ErrInvalidWeight is returned for a non-positive gross weight.
	ErrInvalidWeight = errors.New("goodsin: gross weight must be positive")
	// ErrNegativeValue is returned for a negative unit value.
	ErrNegativeValue = errors.New("goodsin: negative unit value")
	// ErrNotFound is returned when a receipt does not exist.
	ErrNotFound = errors.New("goodsin: receipt not found")
	// ErrNotPending is returned when storing a receipt that is not pending.
	ErrNotPending = errors.New("goodsin: receipt not pending")
	// ErrNotStored is returned when picking a receipt that is not stored.
	ErrNotStored = errors.New("goodsin: receipt not stored")
	// ErrNoViableSlot is returned when the warehouse cannot take the
	// receipt's weight anywhere. Normal capacity exhaustion, not a fault.
	ErrNoViableSlot = errors.New("goodsin: no viable storage slot")
	// ErrPlacementContention is returned when every placement attempt
	// lost the conditional weight commit to concurrent callers.
	ErrPlacementContention = errors.New("goodsin: placement contention, retry later")
)
