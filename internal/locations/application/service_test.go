package application

import (
	"context"
	"errors"
	"testing"

	allocation "warehouse-cloud/internal/allocation/domain"
	locations "warehouse-cloud/internal/locations/domain"
	"warehouse-cloud/internal/locations/infrastructure/memory"
)

func newService(t *testing.T) (*Service, *memory.LocationRepository) {
	t.Helper()
	repo := memory.NewLocationRepository()
	service, err := NewService(repo, allocation.DefaultCapacityTable())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service, repo
}

func TestRegister_CreatesUnverifiedSlot(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	slot, err := service.Register(ctx, RegisterRequest{Row: "A", Bay: "01", Level: "0", MaxWeightKg: 500})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if slot.Code != "A01-0" {
		t.Fatalf("expected code A01-0, got %q", slot.Code)
	}
	if slot.Verified {
		t.Fatal("new slots must start unverified")
	}
}

func TestRegister_RejectsUnknownTier(t *testing.T) {
	service, _ := newService(t)

	_, err := service.Register(context.Background(), RegisterRequest{Row: "A", Bay: "01", Level: "7", MaxWeightKg: 500})
	if !errors.Is(err, allocation.ErrUnknownTier) {
		t.Fatalf("expected ErrUnknownTier, got %v", err)
	}
}

func TestRegister_RejectsDuplicate(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	if _, err := service.Register(ctx, RegisterRequest{Row: "A", Bay: "01", Level: "0", MaxWeightKg: 500}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := service.Register(ctx, RegisterRequest{Row: "A", Bay: "01", Level: "0", MaxWeightKg: 500})
	if !errors.Is(err, locations.ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode, got %v", err)
	}
}

func TestVerify_MarksSlot(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	slot, err := service.Register(ctx, RegisterRequest{Row: "A", Bay: "01", Level: "0", MaxWeightKg: 500})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	verified, err := service.Verify(ctx, slot.ID)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !verified.Verified {
		t.Fatal("expected verified slot")
	}
}

func TestVerify_NotFound(t *testing.T) {
	service, _ := newService(t)

	_, err := service.Verify(context.Background(), "loc-missing")
	if !errors.Is(err, locations.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSetAvailability_Toggles(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	slot, err := service.Register(ctx, RegisterRequest{Row: "A", Bay: "01", Level: "0", MaxWeightKg: 500})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	updated, err := service.SetAvailability(ctx, slot.ID, false)
	if err != nil {
		t.Fatalf("set availability: %v", err)
	}
	if updated.Available {
		t.Fatal("expected unavailable slot")
	}
}
