package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	locations "warehouse-cloud/internal/locations/domain"
)

func newSlot(t *testing.T, id, row, bay, level string) *locations.Location {
	t.Helper()
	slot, err := locations.NewLocation(id, row, bay, level, 500, time.Now().UTC())
	if err != nil {
		t.Fatalf("new location: %v", err)
	}
	slot.Verify(time.Now().UTC())
	return slot
}

func TestInsert_RejectsDuplicateCode(t *testing.T) {
	repo := NewLocationRepository()
	ctx := context.Background()

	if err := repo.Insert(ctx, newSlot(t, "loc-1", "A", "01", "0")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	err := repo.Insert(ctx, newSlot(t, "loc-2", "A", "01", "0"))
	if !errors.Is(err, locations.ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}
}

func TestAdjustWeight_AppliesDelta(t *testing.T) {
	repo := NewLocationRepository()
	ctx := context.Background()
	if err := repo.Insert(ctx, newSlot(t, "loc-1", "A", "01", "0")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.AdjustWeight(ctx, "loc-1", 120, 2000); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	slot, err := repo.FindByID(ctx, "loc-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if slot.CurrentWeightKg != 120 {
		t.Fatalf("expected 120kg, got %.1f", slot.CurrentWeightKg)
	}
}

func TestAdjustWeight_LevelCapConflict(t *testing.T) {
	repo := NewLocationRepository()
	ctx := context.Background()

	left := newSlot(t, "loc-1", "A", "01", "0")
	right := newSlot(t, "loc-2", "A", "01", "0")
	right.Code = "A01-0b"
	right.CurrentWeightKg = 1900
	if err := repo.Insert(ctx, left); err != nil {
		t.Fatalf("insert left: %v", err)
	}
	if err := repo.Insert(ctx, right); err != nil {
		t.Fatalf("insert right: %v", err)
	}

	err := repo.AdjustWeight(ctx, "loc-1", 150, 2000)
	if !errors.Is(err, locations.ErrWeightConflict) {
		t.Fatalf("expected ErrWeightConflict, got %v", err)
	}
	if err := repo.AdjustWeight(ctx, "loc-1", 100, 2000); err != nil {
		t.Fatalf("adjust within cap: %v", err)
	}
}

func TestAdjustWeight_PositiveDeltaRequiresOpenSlot(t *testing.T) {
	repo := NewLocationRepository()
	ctx := context.Background()

	slot := newSlot(t, "loc-1", "A", "01", "0")
	slot.CurrentWeightKg = 200
	slot.Available = false
	if err := repo.Insert(ctx, slot); err != nil {
		t.Fatalf("insert: %v", err)
	}

	err := repo.AdjustWeight(ctx, "loc-1", 50, 2000)
	if !errors.Is(err, locations.ErrWeightConflict) {
		t.Fatalf("expected conflict on closed slot, got %v", err)
	}
	// releases still pass so picks can drain closed slots
	if err := repo.AdjustWeight(ctx, "loc-1", -50, 2000); err != nil {
		t.Fatalf("release on closed slot: %v", err)
	}
}

func TestAdjustWeight_NeverGoesNegative(t *testing.T) {
	repo := NewLocationRepository()
	ctx := context.Background()
	if err := repo.Insert(ctx, newSlot(t, "loc-1", "A", "01", "0")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	err := repo.AdjustWeight(ctx, "loc-1", -10, 2000)
	if !errors.Is(err, locations.ErrWeightConflict) {
		t.Fatalf("expected conflict on negative balance, got %v", err)
	}
}

func TestListAvailableVerified_Filters(t *testing.T) {
	repo := NewLocationRepository()
	ctx := context.Background()

	open := newSlot(t, "loc-1", "A", "01", "0")
	closed := newSlot(t, "loc-2", "A", "02", "0")
	closed.Available = false
	unverified := newSlot(t, "loc-3", "A", "03", "0")
	unverified.Verified = false
	for _, slot := range []*locations.Location{open, closed, unverified} {
		if err := repo.Insert(ctx, slot); err != nil {
			t.Fatalf("insert %s: %v", slot.ID, err)
		}
	}

	list, err := repo.ListAvailableVerified(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "loc-1" {
		t.Fatalf("expected only loc-1, got %+v", list)
	}
}
