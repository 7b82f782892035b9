package goodsin

import "context"

// Repository persists goods receipts.
type Repository interface {
	Insert(ctx context.Context, receipt *GoodsReceipt) error
	FindByID(ctx context.Context, id string) (*GoodsReceipt, error)
	ListByStatus(ctx context.Context, status ReceiptStatus) ([]*GoodsReceipt, error)
	Update(ctx context.Context, receipt *GoodsReceipt) error

	// StoredWeightByLocation sums stored receipt weights per slot id.
	// Feeds the nightly weight reconciliation.
	StoredWeightByLocation(ctx context.Context) (map[string]float64, error)
}
