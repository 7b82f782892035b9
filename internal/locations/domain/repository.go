package locations

import "context"

// Repository persists storage slots.
type Repository interface {
	Insert(ctx context.Context, location *Location) error
	FindByID(ctx context.Context, id string) (*Location, error)
	FindByCode(ctx context.Context, code string) (*Location, error)
	List(ctx context.Context) ([]*Location, error)
	ListAvailableVerified(ctx context.Context) ([]*Location, error)
	Update(ctx context.Context, location *Location) error

	// AdjustWeight applies a conditional weight change to one slot: a
	// positive delta only takes effect while the slot is available and
	// verified and the aggregate weight of its shelf level stays within
	// levelCapKg after the change; a negative delta releases stock and
	// skips the availability check. ErrWeightConflict reports that a
	// concurrent placement won the race and the caller must re-read the
	// snapshot.
	AdjustWeight(ctx context.Context, id string, deltaKg, levelCapKg float64) error
}
