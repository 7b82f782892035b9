package memory

import (
	"context"
	"sort"
	"sync"

	picking "warehouse-cloud/internal/picking/domain"
)

// PickRepository is an in-memory pick order store for tests.
type PickRepository struct {
	mu   sync.RWMutex
	data map[string]*picking.PickOrder
}

// NewPickRepository constructs an empty repository.
func NewPickRepository() *PickRepository {
	return &PickRepository{data: make(map[string]*picking.PickOrder)}
}

// Insert stores a new pick order.
func (r *PickRepository) Insert(ctx context.Context, order *picking.PickOrder) error {
	_ = ctx
	if order == nil {
		return picking.ErrNotFound
	}
	r.mu.Lock()
	clone := *order
	r.data[order.ID] = &clone
	r.mu.Unlock()
	return nil
}

// Update overwrites mutable pick order fields.
func (r *PickRepository) Update(ctx context.Context, order *picking.PickOrder) error {
	_ = ctx
	if order == nil {
		return picking.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[order.ID]; !ok {
		return picking.ErrNotFound
	}
	clone := *order
	r.data[order.ID] = &clone
	return nil
}

// FindByID loads one pick order; (nil, nil) when absent.
func (r *PickRepository) FindByID(ctx context.Context, id string) (*picking.PickOrder, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	order := r.data[id]
	if order == nil {
		return nil, nil
	}
	clone := *order
	return &clone, nil
}

// ListByStatus returns pick orders in a status, oldest first.
func (r *PickRepository) ListByStatus(ctx context.Context, status picking.PickStatus) ([]*picking.PickOrder, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*picking.PickOrder
	for _, order := range r.data {
		if order.Status == status {
			clone := *order
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// CountByStatus counts pick orders in a status.
func (r *PickRepository) CountByStatus(ctx context.Context, status picking.PickStatus) (int, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, order := range r.data {
		if order.Status == status {
			count++
		}
	}
	return count, nil
}
