// Package locationsadapter bridges the location master data store into the
// allocation engine's snapshot contract.
package locationsadapter

import (
	"context"
	"errors"

	allocation "warehouse-cloud/internal/allocation/domain"
	locations "warehouse-cloud/internal/locations/domain"
)

// SnapshotAdapter reads available+verified slots as engine candidates.
type SnapshotAdapter struct {
	repo locations.Repository
}

// NewSnapshotAdapter constructs a SnapshotAdapter.
func NewSnapshotAdapter(repo locations.Repository) (*SnapshotAdapter, error) {
	if repo == nil {
		return nil, errors.New("snapshot adapter: nil repo")
	}
	return &SnapshotAdapter{repo: repo}, nil
}

// CandidateLocations loads a fresh candidate snapshot.
func (a *SnapshotAdapter) CandidateLocations(ctx context.Context) ([]allocation.Location, error) {
	slots, err := a.repo.ListAvailableVerified(ctx)
	if err != nil {
		return nil, err
	}
	candidates := make([]allocation.Location, 0, len(slots))
	for _, slot := range slots {
		candidates = append(candidates, allocation.Location{
			ID:            slot.ID,
			Code:          slot.Code,
			Row:           slot.Row,
			Bay:           slot.Bay,
			Level:         slot.Level,
			MaxWeightKg:   slot.MaxWeightKg,
			CurrentWeight: slot.CurrentWeightKg,
			Available:     slot.Available,
			Verified:      slot.Verified,
		})
	}
	return candidates, nil
}
