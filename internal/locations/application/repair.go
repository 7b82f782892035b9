package application

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	allocation "warehouse-cloud/internal/allocation/domain"
	locations "warehouse-cloud/internal/locations/domain"
)

// StoredWeightSource reports the weight currently booked into each slot
// according to the goods ledger, keyed by location id.
type StoredWeightSource interface {
	StoredWeightByLocation(ctx context.Context) (map[string]float64, error)
}

// Repairer reconciles slot weights against the goods ledger and flags
// levels whose aggregate weight breaches the configured cap.
type Repairer struct {
	repo       locations.Repository
	source     StoredWeightSource
	capacities allocation.CapacityTable
	logger     *log.Logger
}

// NewRepairer constructs a Repairer.
func NewRepairer(repo locations.Repository, source StoredWeightSource, capacities allocation.CapacityTable, logger *log.Logger) (*Repairer, error) {
	if repo == nil {
		return nil, errors.New("repairer: nil repo")
	}
	if source == nil {
		return nil, errors.New("repairer: nil weight source")
	}
	if len(capacities) == 0 {
		return nil, errors.New("repairer: empty capacity table")
	}
	return &Repairer{repo: repo, source: source, capacities: capacities, logger: logger}, nil
}

// LevelOverload flags a level whose reconciled weight exceeds its cap.
type LevelOverload struct {
	LevelKey    string  `json:"level_key"`
	WeightKg    float64 `json:"weight_kg"`
	CapKg       float64 `json:"cap_kg"`
	UnknownTier bool    `json:"unknown_tier"`
}

// RepairReport summarizes one reconciliation run.
type RepairReport struct {
	CheckedSlots  int             `json:"checked_slots"`
	AdjustedSlots int             `json:"adjusted_slots"`
	Overloads     []LevelOverload `json:"overloads"`
	RanAt         time.Time       `json:"ran_at"`
}

// Run recomputes every slot's current weight from the goods ledger and
// reports level overloads. Slots on tiers missing from the capacity table
// are judged against the 500kg repair default; the allocation
// path itself never applies that fallback.
func (r *Repairer) Run(ctx context.Context) (RepairReport, error) {
	report := RepairReport{RanAt: time.Now().UTC()}

	booked, err := r.source.StoredWeightByLocation(ctx)
	if err != nil {
		return report, err
	}
	slots, err := r.repo.List(ctx)
	if err != nil {
		return report, err
	}

	levelWeights := make(map[string]float64)
	levelTiers := make(map[string]string)
	for _, slot := range slots {
		report.CheckedSlots++
		expected := booked[slot.ID]
		if math.Abs(slot.CurrentWeightKg-expected) > 1e-9 {
			slot.CurrentWeightKg = expected
			slot.UpdatedAt = report.RanAt
			if err := r.repo.Update(ctx, slot); err != nil {
				return report, err
			}
			report.AdjustedSlots++
			if r.logger != nil {
				r.logger.Printf("repair: slot %s weight corrected to %.3fkg", slot.Code, expected)
			}
		}
		key := locations.BuildCode(slot.Row, slot.Bay, slot.Level)
		levelWeights[key] += expected
		levelTiers[key] = slot.Level
	}

	for key, weight := range levelWeights {
		capKg, err := r.capacities.MaxWeight(levelTiers[key])
		unknown := false
		if err != nil {
			capKg = allocation.RepairDefaultMaxWeightKg
			unknown = true
		}
		if weight > capKg {
			report.Overloads = append(report.Overloads, LevelOverload{
				LevelKey:    key,
				WeightKg:    weight,
				CapKg:       capKg,
				UnknownTier: unknown,
			})
		}
	}
	return report, nil
}
