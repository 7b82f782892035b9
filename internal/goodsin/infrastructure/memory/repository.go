package memory

import (
	"context"
	"sort"
	"sync"

	goodsin "warehouse-cloud/internal/goodsin/domain"
)

// ReceiptRepository is an in-memory receipt store for tests.
type ReceiptRepository struct {
	mu   sync.RWMutex
	data map[string]*goodsin.GoodsReceipt
}

// NewReceiptRepository constructs an empty repository.
func NewReceiptRepository() *ReceiptRepository {
	return &ReceiptRepository{data: make(map[string]*goodsin.GoodsReceipt)}
}

// Insert stores a new receipt.
func (r *ReceiptRepository) Insert(ctx context.Context, receipt *goodsin.GoodsReceipt) error {
	_ = ctx
	if receipt == nil {
		return goodsin.ErrNotFound
	}
	r.mu.Lock()
	clone := *receipt
	r.data[receipt.ID] = &clone
	r.mu.Unlock()
	return nil
}

// FindByID loads one receipt; (nil, nil) when absent.
func (r *ReceiptRepository) FindByID(ctx context.Context, id string) (*goodsin.GoodsReceipt, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	receipt := r.data[id]
	if receipt == nil {
		return nil, nil
	}
	clone := *receipt
	return &clone, nil
}

// ListByStatus returns receipts in a status, oldest first.
func (r *ReceiptRepository) ListByStatus(ctx context.Context, status goodsin.ReceiptStatus) ([]*goodsin.GoodsReceipt, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*goodsin.GoodsReceipt
	for _, receipt := range r.data {
		if receipt.Status == status {
			clone := *receipt
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// Update overwrites mutable receipt fields.
func (r *ReceiptRepository) Update(ctx context.Context, receipt *goodsin.GoodsReceipt) error {
	_ = ctx
	if receipt == nil {
		return goodsin.ErrNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[receipt.ID]; !ok {
		return goodsin.ErrNotFound
	}
	clone := *receipt
	r.data[receipt.ID] = &clone
	return nil
}

// StoredWeightByLocation sums stored receipt weights per slot id.
func (r *ReceiptRepository) StoredWeightByLocation(ctx context.Context) (map[string]float64, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	weights := make(map[string]float64)
	for _, receipt := range r.data {
		if receipt.Status == goodsin.StatusStored && receipt.LocationID != "" {
			weights[receipt.LocationID] += receipt.GrossWeightKg
		}
	}
	return weights, nil
}
