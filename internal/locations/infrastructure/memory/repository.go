package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	locations "warehouse-cloud/internal/locations/domain"
)

// LocationRepository is an in-memory slot store for tests and tooling.
type LocationRepository struct {
	mu   sync.RWMutex
	data map[string]*locations.Location
}

// NewLocationRepository constructs an empty repository.
func NewLocationRepository() *LocationRepository {
	return &LocationRepository{data: make(map[string]*locations.Location)}
}

// Insert stores a new slot.
func (r *LocationRepository) Insert(ctx context.Context, location *locations.Location) error {
	_ = ctx
	if location == nil {
		return locations.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if existing.Code == location.Code {
			return locations.ErrDuplicateCode
		}
	}
	clone := *location
	r.data[location.ID] = &clone
	return nil
}

// FindByID loads one slot; (nil, nil) when absent.
func (r *LocationRepository) FindByID(ctx context.Context, id string) (*locations.Location, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	location := r.data[id]
	if location == nil {
		return nil, nil
	}
	clone := *location
	return &clone, nil
}

// FindByCode loads one slot by code; (nil, nil) when absent.
func (r *LocationRepository) FindByCode(ctx context.Context, code string) (*locations.Location, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, location := range r.data {
		if location.Code == code {
			clone := *location
			return &clone, nil
		}
	}
	return nil, nil
}

// List returns all slots ordered by code.
func (r *LocationRepository) List(ctx context.Context) ([]*locations.Location, error) {
	return r.list(ctx, func(*locations.Location) bool { return true })
}

// ListAvailableVerified returns the allocation candidate snapshot.
func (r *LocationRepository) ListAvailableVerified(ctx context.Context) ([]*locations.Location, error) {
	return r.list(ctx, func(location *locations.Location) bool {
		return location.Available && location.Verified
	})
}

func (r *LocationRepository) list(ctx context.Context, keep func(*locations.Location) bool) ([]*locations.Location, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*locations.Location
	for _, location := range r.data {
		if keep(location) {
			clone := *location
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

// Update overwrites mutable slot fields.
func (r *LocationRepository) Update(ctx context.Context, location *locations.Location) error {
	_ = ctx
	if location == nil {
		return locations.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[location.ID]; !ok {
		return locations.ErrNotFound
	}
	clone := *location
	r.data[location.ID] = &clone
	return nil
}

// AdjustWeight applies the conditional weight change under the lock,
// mirroring the Postgres compare-and-swap semantics.
func (r *LocationRepository) AdjustWeight(ctx context.Context, id string, deltaKg, levelCapKg float64) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	target := r.data[id]
	if target == nil {
		return locations.ErrWeightConflict
	}
	if deltaKg > 0 && (!target.Available || !target.Verified) {
		return locations.ErrWeightConflict
	}
	if target.CurrentWeightKg+deltaKg < 0 {
		return locations.ErrWeightConflict
	}

	var levelWeight float64
	for _, sibling := range r.data {
		if sibling.Row == target.Row && sibling.Bay == target.Bay && sibling.Level == target.Level {
			levelWeight += sibling.CurrentWeightKg
		}
	}
	if levelWeight+deltaKg > levelCapKg {
		return locations.ErrWeightConflict
	}

	target.CurrentWeightKg += deltaKg
	target.UpdatedAt = time.Now().UTC()
	return nil
}
