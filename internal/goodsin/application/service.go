package application

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"

	allocation "warehouse-cloud/internal/allocation/domain"
	"warehouse-cloud/internal/goodsin/application/events"
	goodsin "warehouse-cloud/internal/goodsin/domain"
	"warehouse-cloud/internal/ident"
	locations "warehouse-cloud/internal/locations/domain"
	"warehouse-cloud/internal/observability/metrics"
)

const defaultPlacementAttempts = 3

// Allocator suggests a storage slot for a weight.
type Allocator interface {
	Suggest(ctx context.Context, requiredWeightKg float64) (*allocation.Location, error)
	CapacityTable() allocation.CapacityTable
}

// Publisher publishes domain events.
type Publisher interface {
	Publish(ctx context.Context, event any) error
}

// Service handles the goods-in workflow: register arrivals, then book them
// into a slot suggested by the allocation engine.
type Service struct {
	receipts  goodsin.Repository
	slots     locations.Repository
	allocator Allocator
	publisher Publisher
	logger    *log.Logger
	attempts  int
}

// NewService constructs a Service.
func NewService(receipts goodsin.Repository, slots locations.Repository, allocator Allocator, publisher Publisher, logger *log.Logger) (*Service, error) {
	if receipts == nil {
		return nil, errors.New("goodsin service: nil receipt repo")
	}
	if slots == nil {
		return nil, errors.New("goodsin service: nil slot repo")
	}
	if allocator == nil {
		return nil, errors.New("goodsin service: nil allocator")
	}
	return &Service{
		receipts:  receipts,
		slots:     slots,
		allocator: allocator,
		publisher: publisher,
		logger:    logger,
		attempts:  defaultPlacementAttempts,
	}, nil
}

// RegisterRequest describes an incoming delivery line.
type RegisterRequest struct {
	ItemDescription string          `json:"item_description"`
	Quantity        int             `json:"quantity"`
	GrossWeightKg   float64         `json:"gross_weight_kg"`
	UnitValue       decimal.Decimal `json:"unit_value"`
	Department      string          `json:"department"`
}

// RegisterArrival records a pending receipt.
func (s *Service) RegisterArrival(ctx context.Context, req RegisterRequest) (*goodsin.GoodsReceipt, error) {
	receipt, err := goodsin.NewGoodsReceipt(ident.New("rcpt"), req.ItemDescription, req.Quantity,
		req.GrossWeightKg, req.UnitValue, req.Department, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.receipts.Insert(ctx, receipt); err != nil {
		return nil, err
	}
	s.publish(ctx, events.GoodsReceived{
		ReceiptID:       receipt.ID,
		ItemDescription: receipt.ItemDescription,
		WeightKg:        receipt.GrossWeightKg,
		OccurredAt:      receipt.CreatedAt,
	})
	return receipt, nil
}

// Store books a pending receipt into the best available slot. The slot
// suggestion runs against a fresh snapshot each attempt and the weight is
// committed conditionally: when a concurrent placement consumes the
// level's remaining capacity first, the commit fails and the suggestion
// is retried against the new state.
func (s *Service) Store(ctx context.Context, receiptID string) (*goodsin.GoodsReceipt, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveGoodsIn(result, time.Since(start))
	}()

	receipt, err := s.receipts.FindByID(ctx, receiptID)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if receipt == nil {
		result = metrics.ResultError
		return nil, goodsin.ErrNotFound
	}
	if receipt.Status != goodsin.StatusPending {
		result = metrics.ResultError
		return nil, goodsin.ErrNotPending
	}

	for attempt := 0; attempt < s.attempts; attempt++ {
		chosen, err := s.allocator.Suggest(ctx, receipt.GrossWeightKg)
		if err != nil {
			result = metrics.ResultError
			return nil, err
		}
		if chosen == nil {
			result = metrics.AllocationResultNoLocation
			return nil, goodsin.ErrNoViableSlot
		}

		capKg, err := s.allocator.CapacityTable().MaxWeight(chosen.Level)
		if err != nil {
			result = metrics.ResultError
			return nil, err
		}
		err = s.slots.AdjustWeight(ctx, chosen.ID, receipt.GrossWeightKg, capKg)
		if errors.Is(err, locations.ErrWeightConflict) {
			metrics.IncPlacementConflict()
			if s.logger != nil {
				s.logger.Printf("goods-in: lost placement race for %s, retrying", chosen.Code)
			}
			continue
		}
		if err != nil {
			result = metrics.ResultError
			return nil, err
		}

		now := time.Now().UTC()
		if err := receipt.MarkStored(chosen.ID, chosen.Code, now); err != nil {
			result = metrics.ResultError
			return nil, err
		}
		if err := s.receipts.Update(ctx, receipt); err != nil {
			result = metrics.ResultError
			return nil, err
		}
		s.publish(ctx, events.StockPlaced{
			ReceiptID:    receipt.ID,
			LocationID:   chosen.ID,
			LocationCode: chosen.Code,
			WeightKg:     receipt.GrossWeightKg,
			OccurredAt:   now,
		})
		return receipt, nil
	}

	result = metrics.ResultError
	return nil, goodsin.ErrPlacementContention
}

// Get loads a receipt by id.
func (s *Service) Get(ctx context.Context, id string) (*goodsin.GoodsReceipt, error) {
	receipt, err := s.receipts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, goodsin.ErrNotFound
	}
	return receipt, nil
}

// ListByStatus returns receipts in the given status.
func (s *Service) ListByStatus(ctx context.Context, status goodsin.ReceiptStatus) ([]*goodsin.GoodsReceipt, error) {
	return s.receipts.ListByStatus(ctx, status)
}

func (s *Service) publish(ctx context.Context, event any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil && s.logger != nil {
		s.logger.Printf("goods-in: publish error: %v", err)
	}
}
