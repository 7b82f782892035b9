package locations

import (
	"strconv"
	"strings"
	"time"
)

// Location is a physical storage slot in the racking grid.
// Identity: row + bay + tier, rendered as a code like "A01-0".
type Location struct {
	ID              string
	Code            string
	Row             string
	Bay             string
	Level           string
	MaxWeightKg     float64
	CurrentWeightKg float64
	Available       bool
	Verified        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BuildCode renders the canonical slot code.
func BuildCode(row, bay, level string) string {
	return row + bay + "-" + level
}

// NewLocation validates coordinates and creates an unverified, available slot.
func NewLocation(id, row, bay, level string, maxWeightKg float64, now time.Time) (*Location, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	row = strings.ToUpper(strings.TrimSpace(row))
	if len(row) != 1 || row[0] < 'A' || row[0] > 'Z' {
		return nil, ErrInvalidRow
	}
	bay = strings.TrimSpace(bay)
	bayValue, err := strconv.Atoi(bay)
	if err != nil || bayValue < 1 || len(bay) != 2 {
		return nil, ErrInvalidBay
	}
	level = strings.TrimSpace(level)
	if _, err := strconv.Atoi(level); err != nil {
		return nil, ErrInvalidLevel
	}
	if maxWeightKg < 0 {
		return nil, ErrNegativeWeight
	}

	return &Location{
		ID:          id,
		Code:        BuildCode(row, bay, level),
		Row:         row,
		Bay:         bay,
		Level:       level,
		MaxWeightKg: maxWeightKg,
		Available:   true,
		Verified:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Verify marks the slot as physically confirmed by an operator.
func (l *Location) Verify(now time.Time) {
	l.Verified = true
	l.UpdatedAt = now
}

// SetAvailability toggles whether the slot may receive new stock.
func (l *Location) SetAvailability(available bool, now time.Time) {
	l.Available = available
	l.UpdatedAt = now
}
