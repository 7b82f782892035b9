package application

import (
	"context"
	"errors"
	"log"
	"time"

	allocation "warehouse-cloud/internal/allocation/domain"
	goodsin "warehouse-cloud/internal/goodsin/domain"
	"warehouse-cloud/internal/ident"
	locations "warehouse-cloud/internal/locations/domain"
	"warehouse-cloud/internal/observability/metrics"
	"warehouse-cloud/internal/picking/application/events"
	picking "warehouse-cloud/internal/picking/domain"
)

// Publisher publishes domain events.
type Publisher interface {
	Publish(ctx context.Context, event any) error
}

// Service handles the picking workflow: open a pick against a stored
// receipt, then complete it and release the slot's weight.
type Service struct {
	picks      picking.Repository
	receipts   goodsin.Repository
	slots      locations.Repository
	capacities allocation.CapacityTable
	publisher  Publisher
	logger     *log.Logger
}

// NewService constructs a Service.
func NewService(picks picking.Repository, receipts goodsin.Repository, slots locations.Repository, capacities allocation.CapacityTable, publisher Publisher, logger *log.Logger) (*Service, error) {
	if picks == nil {
		return nil, errors.New("picking service: nil pick repo")
	}
	if receipts == nil {
		return nil, errors.New("picking service: nil receipt repo")
	}
	if slots == nil {
		return nil, errors.New("picking service: nil slot repo")
	}
	if len(capacities) == 0 {
		return nil, errors.New("picking service: empty capacity table")
	}
	return &Service{
		picks:      picks,
		receipts:   receipts,
		slots:      slots,
		capacities: capacities,
		publisher:  publisher,
		logger:     logger,
	}, nil
}

// CreatePick opens a pick order for a stored receipt.
func (s *Service) CreatePick(ctx context.Context, receiptID, department string) (*picking.PickOrder, error) {
	receipt, err := s.receipts.FindByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, goodsin.ErrNotFound
	}
	if receipt.Status != goodsin.StatusStored {
		return nil, goodsin.ErrNotStored
	}
	order, err := picking.NewPickOrder(ident.New("pick"), department, receipt.ID,
		receipt.LocationID, receipt.LocationCode, receipt.GrossWeightKg, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.picks.Insert(ctx, order); err != nil {
		return nil, err
	}
	metrics.IncPickEvent("created")
	return order, nil
}

// CompletePick releases the receipt's weight from its slot and closes the
// pick. The weight release is a negative adjustment, which is accepted even
// when the slot has since been closed for new placements.
func (s *Service) CompletePick(ctx context.Context, pickID string) (*picking.PickOrder, error) {
	order, err := s.picks.FindByID(ctx, pickID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, picking.ErrNotFound
	}
	if order.Status != picking.StatusOpen {
		return nil, picking.ErrNotOpen
	}

	receipt, err := s.receipts.FindByID(ctx, order.ReceiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, goodsin.ErrNotFound
	}

	slot, err := s.slots.FindByID(ctx, order.LocationID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, locations.ErrNotFound
	}
	capKg, err := s.capacities.MaxWeight(slot.Level)
	if err != nil {
		capKg = allocation.RepairDefaultMaxWeightKg
		if s.logger != nil {
			s.logger.Printf("picking: unknown tier for %s, using repair default cap", slot.Code)
		}
	}
	if err := s.slots.AdjustWeight(ctx, order.LocationID, -order.WeightKg, capKg); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := order.Complete(now); err != nil {
		return nil, err
	}
	if err := s.picks.Update(ctx, order); err != nil {
		return nil, err
	}
	if err := receipt.MarkPicked(now); err != nil {
		return nil, err
	}
	if err := s.receipts.Update(ctx, receipt); err != nil {
		return nil, err
	}

	metrics.IncPickEvent("completed")
	s.publish(ctx, events.PickCompleted{
		PickID:       order.ID,
		ReceiptID:    order.ReceiptID,
		Department:   order.Department,
		LocationID:   order.LocationID,
		LocationCode: order.LocationCode,
		WeightKg:     order.WeightKg,
		CompletedAt:  now,
	})
	return order, nil
}

// Get loads a pick order by id.
func (s *Service) Get(ctx context.Context, id string) (*picking.PickOrder, error) {
	order, err := s.picks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, picking.ErrNotFound
	}
	return order, nil
}

// ListByStatus returns pick orders in the given status.
func (s *Service) ListByStatus(ctx context.Context, status picking.PickStatus) ([]*picking.PickOrder, error) {
	return s.picks.ListByStatus(ctx, status)
}

func (s *Service) publish(ctx context.Context, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil && s.logger != nil {
		s.logger.Printf("picking: publish error: %v", err)
	}
}
