package locations

import (
	"errors"
	"testing"
	"time"
)

func TestNewLocation_BuildsCode(t *testing.T) {
	slot, err := NewLocation("loc-1", "b", "03", "2", 500, time.Now().UTC())
	if err != nil {
		t.Fatalf("new location: %v", err)
	}
	if slot.Code != "B03-2" {
		t.Fatalf("expected code B03-2, got %q", slot.Code)
	}
	if !slot.Available || slot.Verified {
		t.Fatalf("expected available and unverified, got %+v", slot)
	}
}

func TestNewLocation_Validation(t *testing.T) {
	now := time.Now().UTC()
	cases := []struct {
		name    string
		id      string
		row     string
		bay     string
		level   string
		weight  float64
		wantErr error
	}{
		{"empty id", "", "A", "01", "0", 500, ErrEmptyID},
		{"multi-char row", "loc-1", "AB", "01", "0", 500, ErrInvalidRow},
		{"lowercase digit row", "loc-1", "1", "01", "0", 500, ErrInvalidRow},
		{"one-digit bay", "loc-1", "A", "1", "0", 500, ErrInvalidBay},
		{"zero bay", "loc-1", "A", "00", "0", 500, ErrInvalidBay},
		{"alpha level", "loc-1", "A", "01", "x", 500, ErrInvalidLevel},
		{"negative weight", "loc-1", "A", "01", "0", -1, ErrNegativeWeight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLocation(tc.id, tc.row, tc.bay, tc.level, tc.weight, now)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestVerifyAndAvailability(t *testing.T) {
	slot, err := NewLocation("loc-1", "A", "01", "0", 500, time.Now().UTC())
	if err != nil {
		t.Fatalf("new location: %v", err)
	}

	slot.Verify(time.Now().UTC())
	if !slot.Verified {
		t.Fatal("expected verified slot")
	}
	slot.SetAvailability(false, time.Now().UTC())
	if slot.Available {
		t.Fatal("expected unavailable slot")
	}
}
