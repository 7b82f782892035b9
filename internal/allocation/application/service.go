package application

import (
	"context"
	"errors"
	"time"

	allocation "warehouse-cloud/internal/allocation/domain"
	"warehouse-cloud/internal/observability/metrics"
)

// SnapshotSource supplies the candidate slot snapshot for one allocation
// call. Callers must fetch a fresh snapshot per call: the engine performs
// no reservation of its own.
type SnapshotSource interface {
	CandidateLocations(ctx context.Context) ([]allocation.Location, error)
}

// Service runs slot allocation over a fresh snapshot.
type Service struct {
	source     SnapshotSource
	capacities allocation.CapacityTable
}

// NewService constructs a Service.
func NewService(source SnapshotSource, capacities allocation.CapacityTable) (*Service, error) {
	if source == nil {
		return nil, errors.New("allocation service: nil snapshot source")
	}
	if len(capacities) == 0 {
		return nil, errors.New("allocation service: empty capacity table")
	}
	return &Service{source: source, capacities: capacities}, nil
}

// Suggest picks the best slot for the required weight, or (nil, nil) when
// the warehouse has no viable slot.
func (s *Service) Suggest(ctx context.Context, requiredWeightKg float64) (*allocation.Location, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveAllocation(result, time.Since(start))
	}()

	candidates, err := s.source.CandidateLocations(ctx)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}

	chosen, err := allocation.FindOptimalLocation(candidates, requiredWeightKg, s.capacities)
	if err != nil {
		if errors.Is(err, allocation.ErrUnknownTier) {
			result = metrics.AllocationResultUnknownTier
		} else {
			result = metrics.ResultError
		}
		return nil, err
	}
	if chosen == nil {
		result = metrics.AllocationResultNoLocation
		return nil, nil
	}
	return chosen, nil
}

// CapacityTable exposes the configured tier capacities for collaborators
// that must commit weight changes against the same caps.
func (s *Service) CapacityTable() allocation.CapacityTable {
	return s.capacities
}
