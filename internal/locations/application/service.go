package application

import (
	"context"
	"errors"
	"time"

	allocation "warehouse-cloud/internal/allocation/domain"
	"warehouse-cloud/internal/ident"
	locations "warehouse-cloud/internal/locations/domain"
)

// Service manages location master data.
type Service struct {
	repo       locations.Repository
	capacities allocation.CapacityTable
}

// NewService constructs a Service.
func NewService(repo locations.Repository, capacities allocation.CapacityTable) (*Service, error) {
	if repo == nil {
		return nil, errors.New("location service: nil repo")
	}
	if len(capacities) == 0 {
		return nil, errors.New("location service: empty capacity table")
	}
	return &Service{repo: repo, capacities: capacities}, nil
}

// RegisterRequest describes a new slot.
type RegisterRequest struct {
	Row         string  `json:"row"`
	Bay         string  `json:"bay"`
	Level       string  `json:"level"`
	MaxWeightKg float64 `json:"max_weight_kg"`
}

// Register creates an unverified slot. The tier must exist in the capacity
// table: slots on unconfigured tiers would poison the allocation path.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*locations.Location, error) {
	if _, err := s.capacities.MaxWeight(req.Level); err != nil {
		return nil, err
	}
	location, err := locations.NewLocation(ident.New("loc"), req.Row, req.Bay, req.Level, req.MaxWeightKg, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// Verify confirms a slot physically exists.
func (s *Service) Verify(ctx context.Context, id string) (*locations.Location, error) {
	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, locations.ErrNotFound
	}
	location.Verify(time.Now().UTC())
	if err := s.repo.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// SetAvailability toggles whether a slot may receive stock.
func (s *Service) SetAvailability(ctx context.Context, id string, available bool) (*locations.Location, error) {
	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, locations.ErrNotFound
	}
	location.SetAvailability(available, time.Now().UTC())
	if err := s.repo.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// Get loads a slot by id.
func (s *Service) Get(ctx context.Context, id string) (*locations.Location, error) {
	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, locations.ErrNotFound
	}
	return location, nil
}

// List returns all slots.
func (s *Service) List(ctx context.Context) ([]*locations.Location, error) {
	return s.repo.List(ctx)
}
