package allocation

import (
	"math"
	"strconv"
)

// InfinitePenalty marks a candidate whose placement would push its level
// over the configured cap. Such candidates are excluded from selection
// regardless; the sentinel mirrors the eligibility check.
const InfinitePenalty = math.MaxFloat64

// CanAccept decides whether a slot may take the given weight. The siblings
// list holds every slot of the same level, including the slot itself; all
// slots of one level are judged against the same baseline level total
// within a single call (no provisional reservation between candidates).
func CanAccept(loc Location, weightKg float64, siblings []Location, table CapacityTable) (bool, error) {
	if !loc.Eligible() {
		return false, nil
	}
	max, err := table.MaxWeight(loc.Level)
	if err != nil {
		return false, err
	}
	// Boundary is <=: a level filled exactly to its cap admits weight zero
	// but nothing more.
	return LevelWeight(siblings)+weightKg <= max, nil
}

// Score computes the desirability of placing weightKg on the slot, given
// the current aggregate weight of its level. Lower is better.
func Score(loc Location, weightKg, levelWeightKg float64, table CapacityTable) (float64, error) {
	max, err := table.MaxWeight(loc.Level)
	if err != nil {
		return 0, err
	}
	tier, err := TierIndex(loc.Level)
	if err != nil {
		return 0, err
	}

	newLevelWeight := levelWeightKg + weightKg
	if newLevelWeight > max {
		return InfinitePenalty, nil
	}

	heightPenalty := weightKg * float64(tier) * 2
	// Headroom share scaled to [0,100] so it rewards filling a level close
	// to its cap without drowning out the height penalty across levels of
	// different capacities. The utilization penalty below still dominates.
	capacityScore := math.Abs(max-newLevelWeight) / max * 100
	levelPenalty := newLevelWeight / max * 1000

	return distanceScore(loc) + heightPenalty + capacityScore + levelPenalty, nil
}

// distanceScore models travel cost from the A01 origin. Rows weigh far more
// than bays so "B01" always loses to any bay in row A.
func distanceScore(loc Location) float64 {
	var rowRank float64
	if loc.Row != "" && loc.Row[0] >= 'A' && loc.Row[0] <= 'Z' {
		rowRank = float64(loc.Row[0] - 'A')
	}
	bay, _ := strconv.Atoi(loc.Bay)
	var bayScore float64
	if bay > 0 {
		bayScore = float64(bay - 1)
	}
	return rowRank*100 + bayScore
}

// FindOptimalLocation picks the single best slot for the required weight,
// or (nil, nil) when no candidate can take it. Candidates that are
// unavailable or unverified are skipped; candidates whose level would
// exceed its cap are skipped; the remainder is ranked by score with ties
// resolved in favor of the earliest-listed candidate. The only fault is an
// eligible candidate referencing a tier absent from the capacity table.
//
// The engine performs no reservation: two calls against the same stale
// snapshot can pick the same slot. Callers must commit the weight change
// conditionally (see the locations repository AdjustWeight) before the
// next allocation runs.
func FindOptimalLocation(candidates []Location, requiredWeightKg float64, table CapacityTable) (*Location, error) {
	if requiredWeightKg <= 0 {
		return nil, ErrNonPositiveWeight
	}

	levelWeights := make(map[string]float64)
	for key, group := range GroupByLevel(candidates) {
		levelWeights[key] = LevelWeight(group)
	}

	var best *Location
	bestScore := InfinitePenalty
	for i := range candidates {
		loc := candidates[i]
		if !loc.Eligible() {
			continue
		}
		max, err := table.MaxWeight(loc.Level)
		if err != nil {
			return nil, err
		}
		levelWeight := levelWeights[loc.LevelKey()]
		if levelWeight+requiredWeightKg > max {
			continue
		}
		score, err := Score(loc, requiredWeightKg, levelWeight, table)
		if err != nil {
			return nil, err
		}
		if score == InfinitePenalty {
			continue
		}
		if best == nil || score < bestScore {
			chosen := loc
			best = &chosen
			bestScore = score
		}
	}
	return best, nil
}
