package allocation

// Location is a read-only snapshot of a single storage slot, as supplied by
// the caller for one allocation call. The engine never mutates it.
type Location struct {
	ID            string
	Code          string
	Row           string
	Bay           string
	Level         string
	MaxWeightKg   float64
	CurrentWeight float64
	Available     bool
	Verified      bool
}

// LevelKey identifies the group of slots sharing one shelf level. Slots in
// the same row, bay and tier share a single aggregate weight budget.
func (l Location) LevelKey() string {
	return l.Row + l.Bay + "-" + l.Level
}

// Eligible reports whether the slot may receive new stock at all.
// The level weight check is applied separately.
func (l Location) Eligible() bool {
	return l.Available && l.Verified
}

// GroupByLevel maps level keys to the slots sharing that level.
// Empty input yields an empty map.
func GroupByLevel(locations []Location) map[string][]Location {
	groups := make(map[string][]Location, len(locations))
	for _, loc := range locations {
		key := loc.LevelKey()
		groups[key] = append(groups[key], loc)
	}
	return groups
}

// LevelWeight sums the current weight over the slots of one level.
func LevelWeight(locations []Location) float64 {
	var total float64
	for _, loc := range locations {
		if loc.CurrentWeight > 0 {
			total += loc.CurrentWeight
		}
	}
	return total
}
