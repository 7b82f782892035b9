package allocation

import "strconv"

// CapacityTable maps a tier identifier ("0".."4" in the reference layout)
// to the maximum aggregate weight in kg allowed across one shelf level of
// that tier. The table is read-only configuration and is passed explicitly
// into every engine entry point.
type CapacityTable map[string]float64

// DefaultCapacityTable returns the reference deployment capacities:
// ground tier carries the most, capacity decreases with height.
func DefaultCapacityTable() CapacityTable {
	return CapacityTable{
		"0": 2000,
		"1": 1500,
		"2": 1000,
		"3": 800,
		"4": 500,
	}
}

// RepairDefaultMaxWeightKg is the fallback level capacity applied by data
// repair routines when a slot references a tier absent from the table.
// The allocation path itself never falls back; it fails with ErrUnknownTier.
const RepairDefaultMaxWeightKg = 500

// MaxWeight resolves the aggregate weight cap for a tier.
func (t CapacityTable) MaxWeight(tier string) (float64, error) {
	max, ok := t[tier]
	if !ok {
		return 0, ErrUnknownTier
	}
	if max <= 0 {
		return 0, ErrUnknownTier
	}
	return max, nil
}

// TierIndex parses the numeric tier index used by the height penalty.
func TierIndex(tier string) (int, error) {
	index, err := strconv.Atoi(tier)
	if err != nil || index < 0 {
		return 0, ErrUnknownTier
	}
	return index, nil
}
