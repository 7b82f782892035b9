package picking

import "context"

// Repository persists pick orders.
type Repository interface {
	Insert(ctx context.Context, order *PickOrder) error
	Update(ctx context.Context, order *PickOrder) error
	FindByID(ctx context.Context, id string) (*PickOrder, error)
	ListByStatus(ctx context.Context, status PickStatus) ([]*PickOrder, error)
	CountByStatus(ctx context.Context, status PickStatus) (int, error)
}
