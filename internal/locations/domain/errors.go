package locations

import "errors"

var (
	// ErrEmptyID is returned when a slot id is empty.
	ErrEmptyID = errors.New("locations: empty id")
	// ErrInvalidRow is returned for a row outside A-Z.
	ErrInvalidRow = errors.New("locations: row must be a single letter A-Z")
	// ErrInvalidBay is returned for a bay that is not a two-digit number.
	ErrInvalidBay = errors.New("locations: bay must be a two-digit number")
	// ErrInvalidLevel is returned for a non-numeric tier identifier.
	ErrInvalidLevel = errors.New("locations: level must be numeric")
	// ErrNegativeWeight is returned for a negative weight value.
	ErrNegativeWeight = errors.New("locations: negative weight")
	// ErrNotFound is returned when a slot does not exist.
	ErrNotFound = errors.New("locations: not found")
	// ErrDuplicateCode is returned when a slot code already exists.
	ErrDuplicateCode = errors.New("locations: duplicate code")
	// ErrWeightConflict is returned when a conditional weight adjustment
	// does not apply, typically because a concurrent placement consumed
	// the remaining level capacity first.
	ErrWeightConflict = errors.New("locations: weight adjustment conflict")
)
