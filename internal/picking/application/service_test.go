package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	allocation "warehouse-cloud/internal/allocation/domain"
	goodsin "warehouse-cloud/internal/goodsin/domain"
	goodsinmemory "warehouse-cloud/internal/goodsin/infrastructure/memory"
	locations "warehouse-cloud/internal/locations/domain"
	locationsmemory "warehouse-cloud/internal/locations/infrastructure/memory"
	picking "warehouse-cloud/internal/picking/domain"
	pickingmemory "warehouse-cloud/internal/picking/infrastructure/memory"
)

type recordingPublisher struct {
	events []any
}

func (p *recordingPublisher) Publish(ctx context.Context, event any) error {
	p.events = append(p.events, event)
	return nil
}

type fixture struct {
	service   *Service
	picks     *pickingmemory.PickRepository
	receipts  *goodsinmemory.ReceiptRepository
	slots     *locationsmemory.LocationRepository
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		picks:     pickingmemory.NewPickRepository(),
		receipts:  goodsinmemory.NewReceiptRepository(),
		slots:     locationsmemory.NewLocationRepository(),
		publisher: &recordingPublisher{},
	}
	service, err := NewService(f.picks, f.receipts, f.slots, allocation.DefaultCapacityTable(), f.publisher, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	f.service = service
	return f
}

func (f *fixture) seedStoredReceipt(t *testing.T, weightKg float64) *goodsin.GoodsReceipt {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()

	slot, err := locations.NewLocation("loc-1", "A", "01", "0", 500, now)
	if err != nil {
		t.Fatalf("new location: %v", err)
	}
	slot.Verify(now)
	slot.CurrentWeightKg = weightKg
	if err := f.slots.Insert(ctx, slot); err != nil {
		t.Fatalf("insert slot: %v", err)
	}

	receipt, err := goodsin.NewGoodsReceipt("rcpt-1", "copper wire", 5, weightKg,
		decimal.NewFromInt(20), "electrical", now)
	if err != nil {
		t.Fatalf("new receipt: %v", err)
	}
	if err := receipt.MarkStored(slot.ID, slot.Code, now); err != nil {
		t.Fatalf("mark stored: %v", err)
	}
	if err := f.receipts.Insert(ctx, receipt); err != nil {
		t.Fatalf("insert receipt: %v", err)
	}
	return receipt
}

func TestCreatePick_OpensOrder(t *testing.T) {
	f := newFixture(t)
	receipt := f.seedStoredReceipt(t, 80)

	order, err := f.service.CreatePick(context.Background(), receipt.ID, "electrical")
	if err != nil {
		t.Fatalf("create pick: %v", err)
	}
	if order.Status != picking.StatusOpen {
		t.Fatalf("expected open pick, got %s", order.Status)
	}
	if order.WeightKg != 80 || order.LocationCode != "A01-0" {
		t.Fatalf("unexpected pick order: %+v", order)
	}
}

func TestCreatePick_RequiresStoredReceipt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	receipt, err := goodsin.NewGoodsReceipt("rcpt-1", "copper wire", 5, 80,
		decimal.NewFromInt(20), "electrical", time.Now().UTC())
	if err != nil {
		t.Fatalf("new receipt: %v", err)
	}
	if err := f.receipts.Insert(ctx, receipt); err != nil {
		t.Fatalf("insert receipt: %v", err)
	}

	_, err = f.service.CreatePick(ctx, receipt.ID, "electrical")
	if !errors.Is(err, goodsin.ErrNotStored) {
		t.Fatalf("expected ErrNotStored, got %v", err)
	}
}

func TestCompletePick_ReleasesWeight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	receipt := f.seedStoredReceipt(t, 80)

	order, err := f.service.CreatePick(ctx, receipt.ID, "electrical")
	if err != nil {
		t.Fatalf("create pick: %v", err)
	}
	completed, err := f.service.CompletePick(ctx, order.ID)
	if err != nil {
		t.Fatalf("complete pick: %v", err)
	}
	if completed.Status != picking.StatusCompleted {
		t.Fatalf("expected completed pick, got %s", completed.Status)
	}

	slot, err := f.slots.FindByID(ctx, "loc-1")
	if err != nil {
		t.Fatalf("find slot: %v", err)
	}
	if slot.CurrentWeightKg != 0 {
		t.Fatalf("expected released weight, got %.1f", slot.CurrentWeightKg)
	}

	updated, err := f.receipts.FindByID(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("find receipt: %v", err)
	}
	if updated.Status != goodsin.StatusPicked {
		t.Fatalf("expected picked receipt, got %s", updated.Status)
	}
	if len(f.publisher.events) != 1 {
		t.Fatalf("expected one PickCompleted event, got %d", len(f.publisher.events))
	}
}

func TestCompletePick_WorksOnClosedSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	receipt := f.seedStoredReceipt(t, 80)

	order, err := f.service.CreatePick(ctx, receipt.ID, "electrical")
	if err != nil {
		t.Fatalf("create pick: %v", err)
	}

	slot, err := f.slots.FindByID(ctx, "loc-1")
	if err != nil {
		t.Fatalf("find slot: %v", err)
	}
	slot.SetAvailability(false, time.Now().UTC())
	if err := f.slots.Update(ctx, slot); err != nil {
		t.Fatalf("close slot: %v", err)
	}

	if _, err := f.service.CompletePick(ctx, order.ID); err != nil {
		t.Fatalf("complete pick on closed slot: %v", err)
	}
}

func TestCompletePick_RejectsDoubleComplete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	receipt := f.seedStoredReceipt(t, 80)

	order, err := f.service.CreatePick(ctx, receipt.ID, "electrical")
	if err != nil {
		t.Fatalf("create pick: %v", err)
	}
	if _, err := f.service.CompletePick(ctx, order.ID); err != nil {
		t.Fatalf("complete pick: %v", err)
	}
	_, err = f.service.CompletePick(ctx, order.ID)
	if !errors.Is(err, picking.ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}
}
